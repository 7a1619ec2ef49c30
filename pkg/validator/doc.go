// Package validator provides small declarative validation rules.
//
// A Rule pairs a Check func with the ValidationError reported when the check
// fails. Apply evaluates rules and aggregates failures into ValidationErrors,
// which satisfies the error interface:
//
//	err := validator.Apply(
//		validator.Required("name", sub.Name),
//		validator.ValidEmail("email", sub.Email),
//		validator.When(max > 0, validator.MaxLen("message", sub.Message, max)),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs.HasCode(validator.CodeRequired) {
//		// ...
//	}
//
// Rules are stateless and safe for concurrent use.
package validator
