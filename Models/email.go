package Models

// EmailMessage represents one outbound personalized email. Every message in
// this system is HTML and addressed to a single recipient.
type EmailMessage struct {
	To      string
	Subject string
	Body    string
}
