package email

import (
	"strings"
	"unicode"
)

// LooksLikeAddress mirrors the loose `%@%.%` filter used when resolving
// notification recipients: something before an '@', and a '.' somewhere after it.
func LooksLikeAddress(addr string) bool {
	addr = strings.TrimSpace(addr)
	if addr == "" || strings.ContainsFunc(addr, unicode.IsSpace) {
		return false
	}
	at := strings.IndexByte(addr, '@')
	if at <= 0 {
		return false
	}
	dot := strings.LastIndexByte(addr, '.')
	return dot > at+1 && dot < len(addr)-1
}

// Normalize trims surrounding whitespace and lowercases the domain part.
func Normalize(addr string) string {
	addr = strings.TrimSpace(addr)
	at := strings.LastIndexByte(addr, '@')
	if at < 0 {
		return addr
	}
	return addr[:at] + "@" + strings.ToLower(addr[at+1:])
}

// DisplayName derives a readable name from the local part of an address.
func DisplayName(addr string) string {
	localPart := addr
	if at := strings.IndexByte(addr, '@'); at > 0 {
		localPart = addr[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
