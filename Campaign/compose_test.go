package Campaign

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testLogo      = "data:image/png;base64,bG9nbw=="
	testFirma     = "data:image/png;base64,ZmlybWE="
	testSignature = "<p>Saludos,<br><strong>Ana</strong></p>"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestComposeWithoutBrandingReturnsBodyUnchanged(t *testing.T) {
	body := "<p>Hola</p>"
	assert.Equal(t, body, Compose(body, "", "", ""))
}

func TestComposePrependsLogoBlock(t *testing.T) {
	result := Compose("<p>Hola</p>", testLogo, "", "")

	assert.True(t, strings.HasPrefix(result, `<div style="text-align: center;`))

	doc := parseHTML(t, result)
	logo := doc.Find(`img[alt="Logo"]`)
	require.Equal(t, 1, logo.Length())
	src, _ := logo.Attr("src")
	assert.Equal(t, testLogo, src)
}

func TestComposeAppendsSignatureTextBeforeImage(t *testing.T) {
	result := Compose("<p>Hola</p>", "", testSignature, testFirma)

	doc := parseHTML(t, result)
	signatureDiv := doc.Find("div.signature")
	require.Equal(t, 1, signatureDiv.Length())

	html, err := signatureDiv.Html()
	require.NoError(t, err)
	textIndex := strings.Index(html, "<strong>Ana</strong>")
	imageIndex := strings.Index(html, `alt="Firma"`)
	require.GreaterOrEqual(t, textIndex, 0)
	require.GreaterOrEqual(t, imageIndex, 0)
	assert.Less(t, textIndex, imageIndex)
}

func TestComposeSignatureImageOnly(t *testing.T) {
	result := Compose("<p>Hola</p>", "", "", testFirma)

	doc := parseHTML(t, result)
	assert.Equal(t, 1, doc.Find("div.signature").Length())
	assert.Equal(t, 1, doc.Find(`img[alt="Firma"]`).Length())
	assert.Equal(t, 0, doc.Find(`img[alt="Logo"]`).Length())
}

func TestComposeIsDeterministic(t *testing.T) {
	// Preview and send call this same function; two calls over the same
	// inputs must agree byte for byte.
	first := Compose("<p>Hola {{Nombre}}</p>", testLogo, testSignature, testFirma)
	second := Compose("<p>Hola {{Nombre}}</p>", testLogo, testSignature, testFirma)
	assert.Equal(t, first, second)
}

func TestComposeOrderLogoBodySignature(t *testing.T) {
	result := Compose("<p>CUERPO</p>", testLogo, testSignature, "")

	logoIndex := strings.Index(result, `alt="Logo"`)
	bodyIndex := strings.Index(result, "CUERPO")
	signatureIndex := strings.Index(result, `class="signature"`)
	assert.Less(t, logoIndex, bodyIndex)
	assert.Less(t, bodyIndex, signatureIndex)
}
