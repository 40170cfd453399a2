package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// rxDomain matches one or more dot-separated labels (1-63 chars of [a-z0-9]
// with interior hyphens) followed by an alphabetic top-level label.
// Lowercase input only; callers lowercase before validating.
var rxDomain = regexp.MustCompile(`^([a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,63}$`)

// IsDomain validates str as a registrable domain name. A leading "*."
// wildcard marker is permitted. Purely syntactic, no DNS lookups.
func IsDomain(str string) bool {
	if str == "" {
		return false
	}
	str = strings.TrimPrefix(str, "*.")
	if len(str) > 253 {
		// constraints already violated
		return false
	}
	return !IsIPv4(str) && rxDomain.MatchString(str)
}

// IsIPv4 reports whether str is a dotted-quad IPv4 address: four
// dot-separated integer groups in the range 0-255. These look superficially
// like domains and must be excluded both during normalization and during
// validation, so both paths share this one check.
func IsIPv4(str string) bool {
	parts := strings.Split(str, ".")
	if len(parts) != 4 {
		return false
	}
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 255 {
			return false
		}
	}
	return true
}
