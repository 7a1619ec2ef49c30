package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed services.yaml
var defaultCatalog []byte

var (
	ErrInvalidCatalog = errors.New("catalog: invalid catalog")
	ErrDuplicateSlug  = errors.New("catalog: duplicate slug")
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Subject is one option of the contact form subject select.
type Subject struct {
	Slug  string `yaml:"slug" json:"slug"`
	Title string `yaml:"title" json:"title"`
}

// Service is one entry of the services showcase.
type Service struct {
	Slug        string `yaml:"slug" json:"slug"`
	Title       string `yaml:"title" json:"title"`
	Subtitle    string `yaml:"subtitle" json:"subtitle"`
	Description string `yaml:"description" json:"description"`
}

// Catalog holds subjects and services in file order.
// It is read-only after Load and safe for concurrent use.
type Catalog struct {
	Subjects []Subject `yaml:"subjects" json:"subjects"`
	Services []Service `yaml:"services" json:"services"`

	bySlug map[string]Subject
}

// Load parses a YAML catalog and validates slugs.
func Load(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	c.bySlug = make(map[string]Subject, len(c.Subjects))
	for _, s := range c.Subjects {
		if !slugRegex.MatchString(s.Slug) || s.Title == "" {
			return nil, fmt.Errorf("%w: subject %q", ErrInvalidCatalog, s.Slug)
		}
		if _, ok := c.bySlug[s.Slug]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSlug, s.Slug)
		}
		c.bySlug[s.Slug] = s
	}

	seen := make(map[string]bool, len(c.Services))
	for _, s := range c.Services {
		if !slugRegex.MatchString(s.Slug) || s.Title == "" {
			return nil, fmt.Errorf("%w: service %q", ErrInvalidCatalog, s.Slug)
		}
		if seen[s.Slug] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSlug, s.Slug)
		}
		seen[s.Slug] = true
	}

	return &c, nil
}

// Default returns the embedded catalog. It panics if the embedded file is invalid.
var Default = sync.OnceValue(func() *Catalog {
	c, err := Load(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(err)
	}
	return c
})

// Slugs returns subject slugs in file order.
func (c *Catalog) Slugs() []string {
	slugs := make([]string, 0, len(c.Subjects))
	for _, s := range c.Subjects {
		slugs = append(slugs, s.Slug)
	}
	return slugs
}

// Lookup finds a subject by slug.
func (c *Catalog) Lookup(slug string) (Subject, bool) {
	s, ok := c.bySlug[slug]
	return s, ok
}

// SubjectTitle returns the catalog title for slug, if known.
func (c *Catalog) SubjectTitle(slug string) (string, bool) {
	s, ok := c.Lookup(slug)
	return s.Title, ok
}
