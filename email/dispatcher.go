package email

import "Remitente/Models"

// Dispatcher adapts SendEmail to the campaign runner. One Dispatcher is built
// per campaign; the transport config is resolved once and each send opens its
// own transient connection, which keeps rate-limited SMTP endpoints happy.
type Dispatcher struct {
	Config Models.SMTPConfig
}

func NewDispatcher(config Models.SMTPConfig) *Dispatcher {
	return &Dispatcher{Config: config}
}

func (d *Dispatcher) Send(to, subject, htmlBody string) error {
	return SendEmail(d.Config, Models.EmailMessage{
		To:      to,
		Subject: subject,
		Body:    htmlBody,
	})
}
