package validators

import (
	"net"
	"net/mail"
	"strings"
)

// EmailCheck reports whether an address is acceptable.
type EmailCheck func(email string) bool

// IsEmailSyntaxValid accepts a bare address only, no display name.
func IsEmailSyntaxValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email && strings.Contains(email[strings.LastIndex(email, "@")+1:], ".")
}

// IsEmailDomainValid resolves the domain's MX or A records.
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

// EmailChecker picks the syntax-only check or the syntax+DNS check.
func EmailChecker(checkDomain bool) EmailCheck {
	if !checkDomain {
		return IsEmailSyntaxValid
	}
	return func(email string) bool {
		return IsEmailSyntaxValid(email) && IsEmailDomainValid(email)
	}
}
