package domain

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// Normalize maps a raw token from any supported list format (plain domain,
// URL, hosts-file entry, adblock filter rule) to its canonical lowercase
// ASCII form. It reports ok=false for anything that does not contain a valid
// domain; a rejected token is routine input, not an error.
//
// Wildcard "*." prefixes are collapsed to the bare domain: the output feeds
// plain hosts/dnsmasq style consumers, where the bare name is the usable
// form.
func Normalize(raw string) (canonical string, ok bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", false
	}

	// One layer of surrounding quotes, as seen in CSV-ish exports.
	s = strings.Trim(s, `"' `)

	// Drop URL scheme and everything past the host.
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		s = s[strings.Index(s, "://")+3:]
		if i := strings.IndexByte(s, '/'); i >= 0 {
			s = s[:i]
		}
	}

	// Trailing :port.
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}

	// Adblock decorations and wildcard markers.
	s = strings.TrimPrefix(s, "||")
	s = strings.TrimPrefix(s, ".")
	s = strings.TrimPrefix(s, "*.")
	s = strings.TrimSuffix(s, "^")

	s = strings.Trim(s, ".")

	if s == "" || IsIPv4(s) {
		return "", false
	}

	encoded, err := toASCII(s)
	if err != nil {
		return "", false
	}

	if !IsDomain(encoded) {
		return "", false
	}
	return encoded, true
}

// toASCII converts internationalized names to their ASCII-compatible
// encoding. Names that are already ASCII pass through untouched; the grammar
// check stays the sole authority on their shape.
func toASCII(s string) (string, error) {
	if isASCII(s) {
		return s, nil
	}
	return idna.Lookup.ToASCII(s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
