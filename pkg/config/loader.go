package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// cache stores one parsed copy per configuration type.
type cache struct {
	mu     sync.RWMutex
	values map[string]any
}

var (
	global = &cache{values: make(map[string]any)}

	dotenvOnce sync.Once
)

// LoadEnv reads the given .env files into the process environment.
// Variables already present in the environment are not overridden.
// Without arguments it loads ./.env and ignores a missing file.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Load parses environment variables into v.
// The default .env file is read on first use. A successfully parsed type is
// cached, so later calls for the same type return the cached copy even if the
// environment has changed since.
//
//	var srv httpserver.Config
//	if err := config.Load(&srv); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	dotenvOnce.Do(func() { _ = LoadEnv() })
	if v == nil {
		return ErrNilPointer
	}

	key := typeKey[T]()

	global.mu.RLock()
	cached, ok := global.values[key]
	global.mu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	global.mu.Lock()
	defer global.mu.Unlock()

	// Another goroutine may have parsed it while we waited for the lock.
	if cached, ok := global.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	global.values[key] = parsed
	*v = parsed

	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// Intended for start-up code where a broken configuration must stop the process.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// ResetCache drops every cached configuration.
func ResetCache() {
	global.mu.Lock()
	global.values = make(map[string]any)
	global.mu.Unlock()
}

func typeKey[T any]() string {
	t := reflect.TypeFor[T]()
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
