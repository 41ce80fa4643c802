package Campaign

import "strings"

// Compose wraps a merged body with the account's branding: an optional
// centered logo block first, then the body, then a signature block holding
// the signature text and/or signature image. Both the live preview and the
// outbound send go through this exact function, so what the user previews is
// byte for byte what gets sent.
func Compose(body, logo, signature, signatureImage string) string {
	if logo != "" {
		body = `<div style="text-align: center; margin-bottom: 20px;"><img src="` + logo +
			`" alt="Logo" style="max-width: 200px;"></div>` + body
	}

	if signature == "" && signatureImage == "" {
		return body
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString(`<br><br><div class="signature">`)
	if signature != "" {
		b.WriteString(signature)
	}
	if signatureImage != "" {
		b.WriteString(`<br><img src="` + signatureImage +
			`" alt="Firma" style="max-width: 300px; margin-top: 10px;">`)
	}
	b.WriteString(`</div>`)
	return b.String()
}
