package email

import (
	"Remitente/Models"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
)

// SendEmail sends a single message using the account's SMTP configuration.
// Port "465" means implicit TLS; every other port goes through the standard
// path where STARTTLS is negotiated by the transport when offered.
func SendEmail(config Models.SMTPConfig, message Models.EmailMessage) error {
	from := senderAddress(config)
	messageBody := buildMessage(from, message)

	auth := smtp.PlainAuth("", config.User, config.Pass, config.Host)
	serverAddr := serverAddress(config)

	if config.Port == "465" {
		// Implicit TLS from the first byte
		tlsConfig := &tls.Config{ServerName: config.Host}

		conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
		if err != nil {
			return fmt.Errorf("failed to connect to SMTP server: %v", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, config.Host)
		if err != nil {
			return fmt.Errorf("failed to create SMTP client: %v", err)
		}
		defer client.Close()

		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %v", err)
		}

		if err = client.Mail(from); err != nil {
			return fmt.Errorf("failed to set sender: %v", err)
		}

		if err = client.Rcpt(message.To); err != nil {
			return fmt.Errorf("failed to add recipient %s: %v", message.To, err)
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("failed to open data connection: %v", err)
		}

		if _, err = w.Write([]byte(messageBody)); err != nil {
			return fmt.Errorf("failed to write email body: %v", err)
		}

		if err = w.Close(); err != nil {
			return fmt.Errorf("failed to close data connection: %v", err)
		}

		return client.Quit()
	}

	return smtp.SendMail(
		serverAddr,
		auth,
		from,
		[]string{message.To},
		[]byte(messageBody),
	)
}

// buildMessage assembles the raw RFC 5322 payload for one HTML message.
func buildMessage(from string, message Models.EmailMessage) string {
	headers := make(map[string]string)
	headers["From"] = from
	headers["To"] = message.To
	headers["Subject"] = message.Subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	var messageBody strings.Builder
	for key, value := range headers {
		messageBody.WriteString(fmt.Sprintf("%s: %s\r\n", key, value))
	}
	messageBody.WriteString("\r\n")
	messageBody.WriteString(message.Body)
	return messageBody.String()
}

// senderAddress falls back to the SMTP username when no From is configured.
func senderAddress(config Models.SMTPConfig) string {
	if config.From != "" {
		return config.From
	}
	return config.User
}

// VerifyConnection checks connectivity and credentials without sending a
// message. Backs the "test connection" feature; an authentication failure is
// reported as a failure, never swallowed.
func VerifyConnection(config Models.SMTPConfig) error {
	auth := smtp.PlainAuth("", config.User, config.Pass, config.Host)
	serverAddr := serverAddress(config)

	var client *smtp.Client

	if config.Port == "465" {
		conn, err := tls.Dial("tcp", serverAddr, &tls.Config{ServerName: config.Host})
		if err != nil {
			return fmt.Errorf("failed to connect to SMTP server: %v", err)
		}
		client, err = smtp.NewClient(conn, config.Host)
		if err != nil {
			conn.Close()
			return fmt.Errorf("failed to create SMTP client: %v", err)
		}
	} else {
		var err error
		client, err = smtp.Dial(serverAddr)
		if err != nil {
			return fmt.Errorf("failed to connect to SMTP server: %v", err)
		}
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err = client.StartTLS(&tls.Config{ServerName: config.Host}); err != nil {
				client.Close()
				return fmt.Errorf("STARTTLS failed: %v", err)
			}
		}
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %v", err)
	}

	return client.Quit()
}

func serverAddress(config Models.SMTPConfig) string {
	port := config.Port
	if port == "" {
		port = "587"
	}
	return fmt.Sprintf("%s:%s", config.Host, port)
}
