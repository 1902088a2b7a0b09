package validators

import (
	"net"
	"net/mail"
	"strings"
)

// NormalizeEmail lowercases and trims email, returning "" when it is not
// a single bare address.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ""
	}
	return email
}

// IsEmailDomainValid reports whether the domain of email resolves to a mail
// exchanger or at least to an address.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
