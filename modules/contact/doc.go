// Package contact relays contact form submissions to the agency inbox.
//
// Service.Submit is the whole pipeline: normalize, validate, compose the
// notification (plain text and HTML), send it through an email.EmailSender
// and map the outcome to a Result that is safe to show to the submitter.
//
// Validation fails before anything is sent:
//   - name, email or message empty: ErrRequiredFields
//   - email not shaped like local@domain.tld: ErrInvalidEmail
//   - message over Config.MaxMessageLength: ErrMessageTooLong
//
// Transport failures are classified by email.KindOf:
//   - KindAuth, or invalid transport config: ErrConfiguration (500)
//   - KindNetwork, or the send timeout expiring: ErrTransient (503)
//   - anything else: ErrSendFailed (500)
//
// The raw transport error is logged and never returned to the client.
//
// Routes mounts the HTTP endpoint:
//
//	svc, err := contact.NewService(cfg, sender, contact.WithLogger(log))
//	r.Mount("/api/contact", contact.Routes(svc, contact.WithRouteLogger(log)))
//
// Identical submissions are sent as independent messages.
package contact
