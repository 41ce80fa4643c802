package Campaign

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeTemplateSubstitutesAllKeys(t *testing.T) {
	template := Template{
		Subject: "Hola {{Nombre}}",
		Body:    "<p>{{Empresa}} te saluda</p>",
	}
	recipient := Recipient{
		"Nombre":  "Ana",
		"Email":   "ana@x.com",
		"Empresa": "Acme",
	}

	subject, body := MergeTemplate(template, recipient)

	assert.Equal(t, "Hola Ana", subject)
	assert.Equal(t, "<p>Acme te saluda</p>", body)
}

func TestMergeTemplateReplacesEveryOccurrence(t *testing.T) {
	template := Template{
		Subject: "{{Nombre}} y {{Nombre}}",
		Body:    "{{Nombre}}, {{Nombre}}, {{Nombre}}",
	}
	recipient := Recipient{"Nombre": "Ana"}

	subject, body := MergeTemplate(template, recipient)

	assert.Equal(t, "Ana y Ana", subject)
	assert.Equal(t, "Ana, Ana, Ana", body)
	assert.NotContains(t, subject, "{{")
	assert.NotContains(t, body, "{{")
}

func TestMergeTemplateLeavesUnknownPlaceholders(t *testing.T) {
	template := Template{
		Subject: "Hola {{Nombre}}",
		Body:    "<p>{{Empresa}} te saluda</p>",
	}
	recipient := Recipient{"Correo": "b@x.com"}

	subject, body := MergeTemplate(template, recipient)

	assert.Equal(t, "Hola {{Nombre}}", subject)
	assert.Equal(t, "<p>{{Empresa}} te saluda</p>", body)
}

func TestMergeTemplateIsIdempotent(t *testing.T) {
	template := Template{
		Subject: "Hola {{Nombre}}",
		Body:    "<p>{{Empresa}} te saluda, {{Nombre}}</p>",
	}
	recipient := Recipient{"Nombre": "Ana", "Empresa": "Acme"}

	subject, body := MergeTemplate(template, recipient)
	subjectAgain, bodyAgain := MergeTemplate(Template{Subject: subject, Body: body}, recipient)

	assert.Equal(t, subject, subjectAgain)
	assert.Equal(t, body, bodyAgain)
}

func TestMergeTemplateValueWithPlaceholderSyntaxIsNotRescanned(t *testing.T) {
	template := Template{Body: "{{a}} {{b}}"}
	recipient := Recipient{"a": "{{b}}", "b": "beta"}

	_, body := MergeTemplate(template, recipient)

	// The substituted value must come through verbatim, never re-expanded.
	assert.Equal(t, "{{b}} beta", body)
}

func TestMergeTemplateFieldNamesAreLiteralText(t *testing.T) {
	template := Template{Body: "Precio: {{importe (EUR)}}"}
	recipient := Recipient{"importe (EUR)": "9.99"}

	_, body := MergeTemplate(template, recipient)

	assert.Equal(t, "Precio: 9.99", body)
}

func TestMergeTemplateStringifiesPrimitives(t *testing.T) {
	template := Template{Body: "{{lineas}} líneas, activo: {{activo}}, saldo: {{saldo}}"}
	recipient := Recipient{
		"lineas": float64(3), // JSON numbers decode as float64
		"activo": true,
		"saldo":  12.5,
	}

	_, body := MergeTemplate(template, recipient)

	assert.Equal(t, "3 líneas, activo: true, saldo: 12.5", body)
}

func TestMergeTemplateStringifiesStructuredValues(t *testing.T) {
	template := Template{Body: "datos: {{extra}}, vacio: {{nada}}"}
	recipient := Recipient{
		"extra": map[string]interface{}{"plan": "fibra"},
		"nada":  nil,
	}

	_, body := MergeTemplate(template, recipient)

	assert.Equal(t, `datos: {"plan":"fibra"}, vacio: `, body)
}

func TestMergeTemplateNoHTMLEscaping(t *testing.T) {
	template := Template{Body: "<p>{{Nombre}}</p>"}
	recipient := Recipient{"Nombre": `<b>Ana & "co"</b>`}

	_, body := MergeTemplate(template, recipient)

	assert.Equal(t, `<p><b>Ana & "co"</b></p>`, body)
}

func TestResolveEmailPriorityOrder(t *testing.T) {
	tests := []struct {
		name      string
		recipient Recipient
		want      string
		ok        bool
	}{
		{"lowercase email", Recipient{"email": "a@x.com"}, "a@x.com", true},
		{"capitalized Email", Recipient{"Email": "b@x.com"}, "b@x.com", true},
		{"Correo", Recipient{"Correo": "c@x.com"}, "c@x.com", true},
		{"correo", Recipient{"correo": "d@x.com"}, "d@x.com", true},
		{"CORREO", Recipient{"CORREO": "e@x.com"}, "e@x.com", true},
		{"email wins over Correo", Recipient{"Correo": "c@x.com", "email": "a@x.com"}, "a@x.com", true},
		{"no email key", Recipient{"Nombre": "Ana"}, UnknownEmail, false},
		{"blank email falls through", Recipient{"email": "  ", "Correo": "c@x.com"}, "c@x.com", true},
		{"non-string email skipped", Recipient{"email": 42, "Correo": "c@x.com"}, "c@x.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveEmail(tt.recipient)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
