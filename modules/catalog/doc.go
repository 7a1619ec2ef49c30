// Package catalog holds the agency's service catalog: the subjects offered by
// the contact form and the services showcased on the landing page.
//
// The catalog ships embedded as services.yaml and is exposed read-only over
// HTTP by Routes. The contact module uses it to print a readable service name
// in notification subjects.
package catalog
