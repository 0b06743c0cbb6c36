package attach

import (
	"encoding/base64"
	"strconv"
	"strings"
)

// IsBase64 reports whether s looks base64 encoded: length a multiple of 4,
// only base64 alphabet characters, and at most two '=' padding characters at
// the end.
func IsBase64(s string) bool {
	if s == "" || len(s)%4 != 0 {
		return false
	}
	body := strings.TrimRight(s, "=")
	if pad := len(s) - len(body); pad > 2 {
		return false
	}
	for i := 0; i < len(body); i++ {
		if !isBase64Char(body[i]) {
			return false
		}
	}
	return true
}

func isBase64Char(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '+' || c == '/':
		return true
	}
	return false
}

// DecodeIfBase64 decodes s when it passes the IsBase64 heuristic, otherwise
// returns s unchanged. Invalid UTF-8 in the decoded bytes is replaced.
func DecodeIfBase64(s string) string {
	if !IsBase64(s) {
		return s
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return s
	}
	return strings.ToValidUTF8(string(decoded), "�")
}

// EscapeHTML replaces every character outside [0-9A-Za-z ] with a numeric
// HTML entity.
func EscapeHTML(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isPlain(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteString("&#")
		b.WriteString(strconv.Itoa(int(r)))
		b.WriteByte(';')
	}
	return b.String()
}

func isPlain(r rune) bool {
	return r == ' ' || (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// SanitizeID replaces every character outside [A-Za-z0-9_-] with a hyphen.
func SanitizeID(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isPlain(r) && r != ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('-')
	}
	return b.String()
}
