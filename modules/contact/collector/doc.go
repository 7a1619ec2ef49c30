// Package collector is the client side of the contact form: it gathers
// field values, checks required fields, posts the submission once and
// tracks the Idle, Submitting and Submitted UI states.
//
//	form := collector.NewForm(collector.NewClient("https://example.com/api/contact"),
//		collector.OnChange(render),
//	)
//	_ = form.Set(collector.FieldName, "Jane Doe")
//	...
//	if err := form.Submit(ctx); err != nil {
//		// required fields missing or a submission already in flight
//	}
//
// Failures return the form to Idle with a displayable error. There is no
// automatic retry.
package collector
