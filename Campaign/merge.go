package Campaign

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// emailKeys are the accepted email column variants, in priority order.
var emailKeys = []string{"email", "Email", "Correo", "correo", "CORREO"}

// ResolveEmail finds the recipient's address by trying the accepted key
// variants in order. When none resolves it returns UnknownEmail and false.
func ResolveEmail(r Recipient) (string, bool) {
	for _, key := range emailKeys {
		value, ok := r[key]
		if !ok {
			continue
		}
		if address, ok := value.(string); ok && strings.TrimSpace(address) != "" {
			return address, true
		}
	}
	return UnknownEmail, false
}

// MergeTemplate substitutes every {{key}} occurrence for the keys present in
// the recipient, in both subject and body. Unmatched placeholders stay
// verbatim and values are inserted without escaping.
func MergeTemplate(tpl Template, r Recipient) (subject, body string) {
	return substitute(tpl.Subject, r), substitute(tpl.Body, r)
}

// substitute walks the template in a single pass. Field names are matched as
// literal text, never as pattern syntax, and substituted values are not
// re-scanned, so a value containing {{...}} comes through untouched and the
// operation is idempotent.
func substitute(s string, r Recipient) string {
	var b strings.Builder
	for {
		open := strings.Index(s, "{{")
		if open < 0 {
			b.WriteString(s)
			break
		}
		close := strings.Index(s[open+2:], "}}")
		if close < 0 {
			b.WriteString(s)
			break
		}
		key := s[open+2 : open+2+close]
		end := open + 2 + close + 2
		if value, ok := r[key]; ok {
			b.WriteString(s[:open])
			b.WriteString(stringify(value))
		} else {
			b.WriteString(s[:end])
		}
		s = s[end:]
	}
	return b.String()
}

// stringify renders a recipient value as literal text. Primitives keep their
// JSON literal form; anything structured is JSON-encoded rather than rejected
// so a single odd cell never fails its recipient.
func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	}
}
