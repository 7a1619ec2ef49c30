// Package sanitizer provides small string transformations for user input.
//
// Each function takes and returns a string, so they chain with Apply or
// Compose:
//
//	clean := sanitizer.Compose(
//		sanitizer.Trim,
//		sanitizer.PreventHeaderInjection,
//	)
//	name := clean(sub.Name)
//
// Functions never fail. Validation belongs to the validator package.
package sanitizer
