// Package email holds helpers for the email addresses that key user accounts.
package email

import (
	"strings"
	"unicode"
)

// Normalize trims and lowercases an address. Accounts, registrations and
// token claims all compare emails in this form.
func Normalize(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// DisplayName derives a readable name from the local part of addr, e.g.
// "jane.doe+camps@example.com" becomes "Jane Doe". Tags after '+' are dropped.
func DisplayName(addr string) string {
	local := addr
	if at := strings.IndexByte(addr, '@'); at >= 0 {
		local = addr[:at]
	}
	if plus := strings.IndexByte(local, '+'); plus >= 0 {
		local = local[:plus]
	}

	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	if len(parts) == 0 {
		return "Participant"
	}
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
