// Package email provides a provider-agnostic interface for sending notification
// emails, with Postmark, SMTP and on-disk development transports.
//
// # Architecture
//
// The package is built around the EmailSender interface. Implementations:
//   - NewPostmarkClient delivers through Postmark's transactional API
//   - NewSMTPClient delivers through an authenticated SMTP account (Gmail style)
//   - NewDevSender writes messages to disk for local development
//
// New picks one of them from Config.Provider. All implementations validate
// SendEmailParams before sending.
//
// # Sender identity
//
// The From address is always Config.SenderEmail, the authenticated account.
// SendEmailParams.FromName only changes the display name, and ReplyTo routes
// answers to another address:
//
//	err := sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "owner@example.com",
//		FromName: "Jane Doe",
//		ReplyTo:  "jane@example.com",
//		Subject:  "Portfolio Contact: Jane Doe",
//		BodyText: text,
//		BodyHTML: html,
//	})
//
// # Errors
//
// Transport failures are returned as *Error values tagged with a Kind:
// KindAuth for rejected credentials, KindNetwork for connectivity problems and
// timeouts, KindOther for everything else. KindOf resolves the kind of any
// error, falling back to message inspection for errors that were not tagged.
//
//	if err := sender.SendEmail(ctx, params); err != nil {
//		switch email.KindOf(err) {
//		case email.KindAuth:
//			// credentials need attention
//		case email.KindNetwork:
//			// retry later
//		}
//	}
//
// Every *Error also matches ErrFailedToSendEmail with errors.Is.
package email
