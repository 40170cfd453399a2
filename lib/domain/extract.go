package domain

import "strings"

// ExtractLine yields every canonical domain found on a single line of list
// text. Comment lines and empty lines yield nothing. Each call is
// independent; the returned slice is freshly allocated.
//
// Hosts-file lines ("0.0.0.0 ads.example.com tracker.example.com") need no
// dedicated branch: the address token fails normalization on its own, and
// every alias normalizes independently, which is exactly the treatment every
// other format gets. That attempt-and-reject pass over whitespace-separated
// tokens also covers plain domain lists, adblock filter lines and URL lists
// without any per-format parser.
func ExtractLine(line string) []string {
	s := strings.TrimSpace(line)
	if s == "" || strings.HasPrefix(s, "#") || strings.HasPrefix(s, "//") {
		return nil
	}

	// A '#' preceded by whitespace starts an inline comment; a '#' glued to
	// a token does not, so the token survives to be rejected on its own.
	if i := inlineCommentIndex(s); i >= 0 {
		s = strings.TrimSpace(s[:i])
		if s == "" {
			return nil
		}
	}

	var domains []string
	for _, token := range strings.Fields(s) {
		if d, ok := Normalize(token); ok {
			domains = append(domains, d)
		}
	}
	return domains
}

func inlineCommentIndex(s string) int {
	for i := 1; i < len(s); i++ {
		if s[i] == '#' && isSpace(s[i-1]) {
			return i
		}
	}
	return -1
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
