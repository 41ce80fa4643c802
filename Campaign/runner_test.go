package Campaign

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"Remitente/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedSend struct {
	To      string
	Subject string
	Body    string
}

// fakeDispatcher records sends and fails the addresses listed in failWith.
type fakeDispatcher struct {
	sends    []recordedSend
	failWith map[string]error
}

func (d *fakeDispatcher) Send(to, subject, htmlBody string) error {
	d.sends = append(d.sends, recordedSend{To: to, Subject: subject, Body: htmlBody})
	if err, ok := d.failWith[to]; ok {
		return err
	}
	return nil
}

func validProfile() Profile {
	return Profile{
		SMTP: Models.SMTPConfig{
			Host: "smtp.example.com",
			Port: "587",
			User: "ana@example.com",
			Pass: "secret",
			From: "ana@example.com",
		},
	}
}

func TestRunReturnsOneResultPerRecipientInOrder(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	runner := Runner{Dispatcher: dispatcher}

	recipients := make([]Recipient, 0, 5)
	for i := 0; i < 5; i++ {
		recipients = append(recipients, Recipient{"email": fmt.Sprintf("r%d@x.com", i)})
	}

	results, err := runner.Run(context.Background(), Template{Subject: "Hola"}, recipients, validProfile())
	require.NoError(t, err)

	require.Len(t, results, 5)
	for i, result := range results {
		assert.Equal(t, fmt.Sprintf("r%d@x.com", i), result.Email)
		assert.Equal(t, StatusSent, result.Status)
	}
}

func TestRunFailureNeverAbortsBatch(t *testing.T) {
	dispatcher := &fakeDispatcher{failWith: map[string]error{
		"b@x.com": errors.New("554 relay access denied"),
	}}
	runner := Runner{Dispatcher: dispatcher}

	recipients := []Recipient{
		{"email": "a@x.com"},
		{"email": "b@x.com"},
		{"email": "c@x.com"},
	}

	results, err := runner.Run(context.Background(), Template{Subject: "Hola"}, recipients, validProfile())
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, StatusSent, results[0].Status)
	assert.Equal(t, StatusFailed, results[1].Status)
	// The transport error is preserved untouched for diagnostics
	assert.Equal(t, "554 relay access denied", results[1].Error)
	assert.Equal(t, StatusSent, results[2].Status)
}

func TestRunUnresolvableEmailIsIsolated(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	runner := Runner{Dispatcher: dispatcher}

	recipients := []Recipient{
		{"email": "a@x.com"},
		{"Nombre": "SinCorreo"},
		{"Correo": "c@x.com"},
	}

	results, err := runner.Run(context.Background(), Template{Subject: "Hola"}, recipients, validProfile())
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, UnknownEmail, results[1].Email)
	assert.Equal(t, StatusFailed, results[1].Status)
	assert.NotEmpty(t, results[1].Error)

	// No send attempted for the unresolvable recipient
	require.Len(t, dispatcher.sends, 2)
	assert.Equal(t, "a@x.com", dispatcher.sends[0].To)
	assert.Equal(t, "c@x.com", dispatcher.sends[1].To)
}

func TestRunSentPlusFailedEqualsTotal(t *testing.T) {
	dispatcher := &fakeDispatcher{failWith: map[string]error{
		"r1@x.com": errors.New("timeout"),
		"r3@x.com": errors.New("timeout"),
	}}
	runner := Runner{Dispatcher: dispatcher}

	recipients := make([]Recipient, 0, 6)
	for i := 0; i < 6; i++ {
		recipients = append(recipients, Recipient{"email": fmt.Sprintf("r%d@x.com", i)})
	}

	results, err := runner.Run(context.Background(), Template{Body: "<p>Hola</p>"}, recipients, validProfile())
	require.NoError(t, err)

	sent, failed := 0, 0
	for _, result := range results {
		switch result.Status {
		case StatusSent:
			sent++
		case StatusFailed:
			failed++
		}
	}
	assert.Equal(t, len(recipients), sent+failed)
	assert.Equal(t, 4, sent)
	assert.Equal(t, 2, failed)
}

func TestRunAbortsOnMissingRecipients(t *testing.T) {
	runner := Runner{Dispatcher: &fakeDispatcher{}}

	results, err := runner.Run(context.Background(), Template{Subject: "Hola"}, nil, validProfile())

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Empty(t, results)
}

func TestRunAbortsOnEmptyTemplate(t *testing.T) {
	runner := Runner{Dispatcher: &fakeDispatcher{}}

	results, err := runner.Run(context.Background(), Template{}, []Recipient{{"email": "a@x.com"}}, validProfile())

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Empty(t, results)
}

func TestRunAbortsOnIncompleteSMTPConfigBeforeAnySend(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	runner := Runner{Dispatcher: dispatcher}

	profile := validProfile()
	profile.SMTP.Host = ""

	results, err := runner.Run(context.Background(), Template{Subject: "Hola"},
		[]Recipient{{"email": "a@x.com"}, {"email": "b@x.com"}}, profile)

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Empty(t, results)
	assert.Empty(t, dispatcher.sends)
}

func TestRunComposesWithProfileBranding(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	runner := Runner{Dispatcher: dispatcher}

	profile := validProfile()
	profile.Logo = testLogo
	profile.Signature = testSignature
	profile.SignatureImage = testFirma

	template := Template{Subject: "Hola {{Nombre}}", Body: "<p>{{Empresa}} te saluda</p>"}
	recipient := Recipient{"Nombre": "Ana", "Email": "ana@x.com", "Empresa": "Acme"}

	_, err := runner.Run(context.Background(), template, []Recipient{recipient}, profile)
	require.NoError(t, err)
	require.Len(t, dispatcher.sends, 1)

	send := dispatcher.sends[0]
	assert.Equal(t, "Hola Ana", send.Subject)

	// The dispatched body must be exactly what Compose produces for the
	// merged body, which is also what the preview shows.
	_, merged := MergeTemplate(template, recipient)
	expected := Compose(merged, profile.Logo, profile.Signature, profile.SignatureImage)
	assert.Equal(t, expected, send.Body)
}

func TestRunStopsBetweenRecipientsOnCancelledContext(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	runner := Runner{Dispatcher: dispatcher}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := runner.Run(ctx, Template{Subject: "Hola"},
		[]Recipient{{"email": "a@x.com"}}, validProfile())

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
	assert.Empty(t, dispatcher.sends)
}
