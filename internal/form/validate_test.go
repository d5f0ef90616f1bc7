// internal/form/validate_test.go
//
// Unit-tests for Schema, the custom validator tags, and the message catalog.
//
// Run: go test ./internal/form -v

package form

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type contact struct {
	Name  string
	Email string
	Phone string
	Link  string
	Mail  string
}

var contactSchema = NewSchema("test/contact",
	Rule[contact]{Field: "name", Tag: "min=2,max=100,personname,fullname", Value: func(c contact) any { return c.Name }},
	Rule[contact]{Field: "email", Tag: "required,max=255,email", Value: func(c contact) any { return c.Email }},
	Rule[contact]{Field: "phone", Tag: "omitempty,brphone", Value: func(c contact) any { return c.Phone }},
)

func TestSchema_ValidRecord(t *testing.T) {
	errs := contactSchema.Validate(contact{Name: "Ana Silva", Email: "ana@x.com", Phone: "(11) 99999-9999"})
	if !errs.OK() {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	if errs.Err() != nil {
		t.Fatal("Err() should be nil for valid record")
	}
}

func TestSchema_FirstRuleWinsAndAllFieldsEvaluated(t *testing.T) {
	errs := contactSchema.Validate(contact{Name: "A", Email: "", Phone: "123"})
	if len(errs) != 3 {
		t.Fatalf("want 3 field errors, got %+v", errs)
	}
	if errs[0].Name != "name" || errs[0].Rule != "min" {
		t.Errorf("name error = %+v, want rule min", errs[0])
	}
	if errs[1].Name != "email" || errs[1].Rule != "required" {
		t.Errorf("email error = %+v, want rule required", errs[1])
	}
	if errs[2].Name != "phone" || errs[2].Rule != "brphone" {
		t.Errorf("phone error = %+v, want rule brphone", errs[2])
	}
}

func TestSchema_FullName(t *testing.T) {
	errs := contactSchema.Validate(contact{Name: "Madonna", Email: "m@x.com"})
	if errs.Message("name") != "Por favor, insira nome e sobrenome" {
		t.Fatalf("name message = %q", errs.Message("name"))
	}
}

func TestSchema_CustomTags(t *testing.T) {
	cases := []struct {
		tag   string
		value string
		ok    bool
	}{
		{"personname", "José da Silva & Filhos (ME)", true},
		{"personname", "Robert'); DROP", false},
		{"personname", "R2D2", false},
		{"safetext", "Dev Sênior #1 - React/Go?", false}, // slash is not allowed
		{"safetext", "Dev Sênior #1 - React, Go!", true},
		{"brphone", "(11) 99999-9999", true},
		{"brphone", "+55 (11) 99999-9999", true},
		{"brphone", "11 3333-4444", true},
		{"brphone", "99999-9999", true},
		{"brphone", "999999999", true},
		{"brphone", "(11) 9999-999", false},
		{"brphone", "phone", false},
	}
	for _, c := range cases {
		err := validate.Var(c.value, c.tag)
		if (err == nil) != c.ok {
			t.Errorf("%s(%q) ok=%v, want %v", c.tag, c.value, err == nil, c.ok)
		}
	}
}

func TestSchema_ExtendDoesNotMutateParent(t *testing.T) {
	strict := contactSchema.Extend("test/strict",
		Rule[contact]{Field: "phone", Tag: "required,brphone", Value: func(c contact) any { return c.Phone }},
	)
	rec := contact{Name: "Ana Silva", Email: "ana@x.com"}

	if errs := contactSchema.Validate(rec); !errs.OK() {
		t.Fatalf("parent changed by Extend: %+v", errs)
	}
	errs := strict.Validate(rec)
	if !errs.Has("phone") {
		t.Fatalf("extended schema should require phone: %+v", errs)
	}
	if got := strings.Join(strict.Fields(), ","); got != "name,email,phone" {
		t.Fatalf("replaced rule should keep position, fields = %s", got)
	}
}

func TestSchema_RefineSkipsFailedField(t *testing.T) {
	s := NewSchema("test/refine",
		Rule[contact]{Field: "link", Tag: "omitempty,url", Value: func(c contact) any { return c.Link }},
		Rule[contact]{Field: "mail", Tag: "omitempty,email", Value: func(c contact) any { return c.Mail }},
	).Refine("link", "contact", func(c contact) bool { return c.Link != "" || c.Mail != "" })

	errs := s.Validate(contact{})
	if len(errs) != 1 || errs[0].Name != "link" || errs[0].Rule != "contact" {
		t.Fatalf("want single contact error on link, got %+v", errs)
	}

	errs = s.Validate(contact{Link: "not a url"})
	if len(errs) != 1 || errs[0].Rule != "url" {
		t.Fatalf("want url error only, got %+v", errs)
	}
}

func TestValidationError_SentinelMatching(t *testing.T) {
	errTerms := Sentinel("acceptedTerms", "terms not accepted")
	err := Errors{{Name: "acceptedTerms", Rule: "eq", Message: "x"}}.Err()

	if !IsValidationError(err) {
		t.Fatal("IsValidationError = false")
	}
	if !errors.Is(err, errTerms) {
		t.Fatal("errors.Is should match the terms sentinel")
	}
	if errors.Is(Errors{{Name: "name"}}.Err(), errTerms) {
		t.Fatal("sentinel matched unrelated field")
	}
}

func TestErrors_Helpers(t *testing.T) {
	errs := Errors{{Name: "a", Message: "A"}, {Name: "b", Message: "B"}}
	if m := errs.Map(); m["a"] != "A" || m["b"] != "B" {
		t.Fatalf("Map = %v", m)
	}
	if rest := errs.Without("a"); len(rest) != 1 || rest[0].Name != "b" {
		t.Fatalf("Without = %+v", rest)
	}
	if len(errs) != 2 {
		t.Fatal("Without mutated receiver")
	}
}

func TestMessages_DefaultsUseParam(t *testing.T) {
	if got := lookupMessage([]string{"unknown"}, "x", "min", "7"); got != "Deve ter pelo menos 7 caracteres." {
		t.Fatalf("default min message = %q", got)
	}
	if got := lookupMessage([]string{"unknown"}, "x", "nonexistent", ""); got != fallbackMessage {
		t.Fatalf("fallback = %q", got)
	}
}

func TestRegisterMessages_Override(t *testing.T) {
	dir := t.TempDir()
	override := "forms:\n  test/contact:\n    name:\n      fullname: \"Informe o nome completo\"\n"
	if err := os.WriteFile(filepath.Join(dir, "custom.yaml"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = RegisterMessages([]string{filepath.Join(dir, "missing")}) })

	if err := RegisterMessages([]string{dir}); err != nil {
		t.Fatalf("RegisterMessages: %v", err)
	}
	errs := contactSchema.Validate(contact{Name: "Madonna", Email: "m@x.com"})
	if errs.Message("name") != "Informe o nome completo" {
		t.Fatalf("override not applied: %q", errs.Message("name"))
	}
	if Message("lead", "email", "email") != "E-mail inválido" {
		t.Fatal("embedded messages lost after override")
	}
}

func TestLoadCatalog_RejectsEmptyMessage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("defaults:\n  min: \"  \"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCatalog(path); err == nil {
		t.Fatal("expected error for empty message")
	}
}

func TestCSRF_RoundTrip(t *testing.T) {
	if SetCSRFKey([]byte("short")) {
		t.Fatal("short key accepted")
	}
	if !SetCSRFKey([]byte(strings.Repeat("k", 32))) {
		t.Fatal("32-byte key refused")
	}
	tok, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if !VerifyToken(tok) {
		t.Fatal("fresh token rejected")
	}
	raw, _ := base64.RawURLEncoding.DecodeString(tok)
	raw[len(raw)-1] ^= 0xff
	if VerifyToken(base64.RawURLEncoding.EncodeToString(raw)) {
		t.Fatal("tampered token accepted")
	}
	if VerifyToken("") {
		t.Fatal("empty token accepted")
	}
}
