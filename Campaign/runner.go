package Campaign

import (
	"context"

	"Remitente/Models"
)

// Dispatcher performs one outbound delivery. The SMTP implementation lives in
// the email package; tests substitute their own.
type Dispatcher interface {
	Send(to, subject, htmlBody string) error
}

// Profile carries the sending account's persisted branding and SMTP settings.
// These always come from the stored account, never from the client request.
type Profile struct {
	SMTP           Models.SMTPConfig
	Signature      string
	SignatureImage string
	Logo           string
}

// ConfigError marks a batch-level precondition failure. It aborts the whole
// campaign before any send is attempted, as opposed to per-recipient failures
// which are recorded in the result list.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return e.Reason
}

// Runner orchestrates merge, composition and dispatch over a recipient list.
type Runner struct {
	Dispatcher Dispatcher
}

// Run processes the recipients strictly sequentially in input order and
// returns exactly one SendResult per recipient. A failing recipient never
// aborts the batch; only configuration problems do, before any send.
// The context is only consulted between recipients, an in-flight send is
// never interrupted.
func (r *Runner) Run(ctx context.Context, tpl Template, recipients []Recipient, profile Profile) ([]SendResult, error) {
	if len(recipients) == 0 || (tpl.Subject == "" && tpl.Body == "") {
		return nil, &ConfigError{Reason: "Faltan destinatarios o plantilla"}
	}
	if !profile.SMTP.IsComplete() {
		return nil, &ConfigError{Reason: "Configuración SMTP incompleta. Por favor configúrala en tu perfil."}
	}

	results := make([]SendResult, 0, len(recipients))
	for _, recipient := range recipients {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		address, ok := ResolveEmail(recipient)
		if !ok {
			results = append(results, SendResult{
				Email:  address,
				Status: StatusFailed,
				Error:  "no se encontró una dirección de correo en los datos del destinatario",
			})
			continue
		}

		subject, body := MergeTemplate(tpl, recipient)
		body = Compose(body, profile.Logo, profile.Signature, profile.SignatureImage)

		if err := r.Dispatcher.Send(address, subject, body); err != nil {
			results = append(results, SendResult{Email: address, Status: StatusFailed, Error: err.Error()})
			continue
		}
		results = append(results, SendResult{Email: address, Status: StatusSent})
	}

	return results, nil
}
