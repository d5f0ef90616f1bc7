// internal/sanitize/sanitize_test.go
//
// Unit and property tests for the input sanitizers.
//
// Run: go test ./internal/sanitize -v

package sanitize

import (
	"regexp"
	"strings"
	"testing"
	"testing/quick"
	"unicode/utf8"
)

func TestText_RemovesUnsafeChars(t *testing.T) {
	got := Text(`  <script>alert("x & 'y'")</script>\  `)
	want := "scriptalert(x  y)/script"
	if got != want {
		t.Fatalf("Text = %q, want %q", got, want)
	}
}

func TestText_KeepsAccents(t *testing.T) {
	if got := Text(" João Conceição "); got != "João Conceição" {
		t.Fatalf("Text = %q", got)
	}
}

func TestText_Property(t *testing.T) {
	f := func(s string) bool {
		out := Text(s)
		return !strings.ContainsAny(out, `<>\"'&`) && utf8.RuneCountInString(out) <= MaxText
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}

	long := strings.Repeat("á", 1500)
	if n := utf8.RuneCountInString(Text(long)); n != MaxText {
		t.Fatalf("rune count = %d, want %d", n, MaxText)
	}
}

func TestName_Truncates(t *testing.T) {
	out := Name(strings.Repeat("é", 150))
	if n := utf8.RuneCountInString(out); n != MaxName {
		t.Fatalf("rune count = %d, want %d", n, MaxName)
	}
	if !utf8.ValidString(out) {
		t.Fatal("truncation split a code point")
	}
}

func TestEmail_NormalisesAndIsIdempotent(t *testing.T) {
	if got := Email("  Ana.Silva@Example.COM "); got != "ana.silva@example.com" {
		t.Fatalf("Email = %q", got)
	}

	f := func(s string) bool { return Email(s) == Email(Email(s)) }
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}

	// Truncation boundary lands on a space.
	edge := strings.Repeat("a", MaxEmail-1) + " b"
	if Email(edge) != Email(Email(edge)) {
		t.Fatal("Email not idempotent at truncation boundary")
	}
}

func TestPhone_Formats(t *testing.T) {
	cases := []struct{ in, want string }{
		{"11999999999", "(11) 99999-9999"},
		{"1133334444", "(11) 3333-4444"},
		{"(11) 99999-9999", "(11) 99999-9999"},
		{"11 9 9999 9999", "(11) 99999-9999"},
		{"1199", "1199"},
		{"", ""},
		{"+55 (11) 99999-9999", "+55 (11) 99999-"},
		{"abc", ""},
	}
	for _, c := range cases {
		if got := Phone(c.in); got != c.want {
			t.Errorf("Phone(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPhone_DigitProperty(t *testing.T) {
	formatted := regexp.MustCompile(`^\(\d{2}\) \d{4,5}-\d{4}$`)
	nonDigit := regexp.MustCompile(`\D`)

	for _, n := range []int{10, 11} {
		for seed := 0; seed < 50; seed++ {
			var b strings.Builder
			for i := 0; i < n; i++ {
				b.WriteByte(byte('0' + (seed*7+i*3)%10))
			}
			d := b.String()
			out := Phone(d)
			if !formatted.MatchString(out) {
				t.Fatalf("Phone(%q) = %q, not formatted", d, out)
			}
			if got := nonDigit.ReplaceAllString(out, ""); got != d {
				t.Fatalf("Phone(%q) digits = %q, want %q", d, got, d)
			}
		}
	}
}

func TestURL_KeepsQuery(t *testing.T) {
	in := " https://example.com/jobs?a=1&b=2 "
	if got := URL(in); got != "https://example.com/jobs?a=1&b=2" {
		t.Fatalf("URL = %q", got)
	}
}
