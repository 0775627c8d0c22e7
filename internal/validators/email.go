package validators

import (
	"context"
	"net"
	"net/mail"
	"strings"
	"time"
)

const dnsTimeout = 3 * time.Second

// NormalizeEmail trims and lowercases. Returns "" when the address does not
// parse.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ""
	}
	return email
}

// IsEmailDomainValid checks that the domain answers MX or A/AAAA. Used only
// on sign-up, never on the queue path.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	ctx, cancel := context.WithTimeout(context.Background(), dnsTimeout)
	defer cancel()

	if mx, err := net.DefaultResolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	if ips, err := net.DefaultResolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}
	return false
}
