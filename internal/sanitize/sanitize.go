// internal/sanitize/sanitize.go
//
// Trampô: raw input normalisation.
//
// Context
//   Every value typed into the lead and job forms passes through one of these
//   helpers before any rule runs.  They strip the handful of characters that
//   make HTML or attribute injection possible while leaving accented letters
//   alone, and they cap length so oversized payloads never reach the
//   validator.  All helpers are total: they never fail and never allocate
//   state between calls.
//
// Notes
//   Length limits count Unicode code points, not bytes.
//
//------------------------------------------------------------------------------

package sanitize

import "strings"

// Maximum lengths enforced by the helpers.
const (
	MaxText     = 1000
	MaxName     = 100
	MaxEmail    = 255
	MaxRawPhone = 15
	MaxURL      = 2048
)

// unsafeChars are removed from free text and names.
var unsafeChars = strings.NewReplacer(
	"<", "",
	">", "",
	`\`, "",
	`"`, "",
	"'", "",
	"&", "",
)

// Text trims s, removes < > \ " ' and &, and truncates to MaxText characters.
func Text(s string) string {
	return truncate(unsafeChars.Replace(strings.TrimSpace(s)), MaxText)
}

// Name behaves like Text with a MaxName limit.  Accented letters survive.
func Name(s string) string {
	return truncate(unsafeChars.Replace(strings.TrimSpace(s)), MaxName)
}

// Email trims, lowercases, and truncates to MaxEmail characters.  No
// characters are removed so address syntax stays intact.  The result is
// trimmed again after truncation so Email(Email(s)) == Email(s).
func Email(s string) string {
	return strings.TrimSpace(truncate(strings.ToLower(strings.TrimSpace(s)), MaxEmail))
}

// URL trims and truncates to MaxURL characters.  Query strings keep their
// ampersands, so Text must not be used for links.
func URL(s string) string {
	return truncate(strings.TrimSpace(s), MaxURL)
}

// Phone reduces s to its digits and formats Brazilian numbers:
//
//	10 digits  → (DD) DDDD-DDDD
//	11 digits  → (DD) DDDDD-DDDD
//	< 10 digits → the bare digits, so partial input keeps its shape while typed
//
// More than 11 digits is treated as malformed input and the raw string is
// returned truncated to MaxRawPhone characters.
func Phone(s string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)

	switch n := len(digits); {
	case n > 11:
		return truncate(s, MaxRawPhone)
	case n == 11:
		return "(" + digits[:2] + ") " + digits[2:7] + "-" + digits[7:]
	case n == 10:
		return "(" + digits[:2] + ") " + digits[2:6] + "-" + digits[6:]
	default:
		return digits
	}
}

// truncate cuts s to at most n code points.
func truncate(s string, n int) string {
	if len(s) <= n { // byte length bounds rune count
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
