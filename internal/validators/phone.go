package validators

import "strings"

// NormalizePhone keeps the digits of phone, so that "(11) 99999-0000" and
// "11999990000" identify the same client.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
