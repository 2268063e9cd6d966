package accounts

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const MaxUsernameLen = 20

// DeriveUsername genera el username a partir del nombre completo:
// minúsculas, trim, espacios -> "_", solo [a-z0-9_.-], máximo 20.
// Los acentos se descartan junto con el carácter ("José" -> "jos").
func DeriveUsername(name string) string {
	s := strings.ToLower(name)
	s = strings.Join(strings.Fields(s), "_")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if allowedUsernameRune(r) {
			b.WriteRune(r)
		}
	}

	out := b.String()
	if len(out) > MaxUsernameLen {
		out = out[:MaxUsernameLen]
	}
	return out
}

// DeriveUsernameFolded pliega diacríticos antes de filtrar ("José" -> "jose").
func DeriveUsernameFolded(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	return DeriveUsername(folded)
}

func allowedUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_' || r == '.' || r == '-':
		return true
	default:
		return false
	}
}
