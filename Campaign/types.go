package Campaign

// Recipient is one row of the uploaded list. There is no fixed schema, the
// columns come from the spreadsheet, so it stays an open mapping consumed by
// key name.
type Recipient map[string]interface{}

// Template is the shared campaign content. Placeholders of the form
// {{fieldName}} refer to Recipient keys.
type Template struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// SendResult is the per-recipient outcome, one per submitted recipient in
// input order.
type SendResult struct {
	Email  string `json:"email"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// UnknownEmail is reported when no email-like column resolves on a recipient.
const UnknownEmail = "Desconocido"
