package lead

import (
	"context"
	"errors"
	"testing"

	"github.com/edupaziani/trampo-conecta-talentos/internal/form"
)

func validTalent() Submission {
	return Submission{
		Role:            RoleTalent,
		Name:            "Ana Silva",
		Email:           "ana@example.com",
		Phone:           "(11) 99999-9999",
		Title:           "Dev",
		InterestArea:    "Tecnologia",
		ExperienceLevel: LevelMid,
		AcceptedTerms:   true,
	}
}

func TestValidate_TalentSuccess(t *testing.T) {
	_, errs := Validate(validTalent())
	if !errs.OK() {
		t.Fatalf("unexpected errors: %+v", errs)
	}
}

func TestValidate_NormalisesEmailAndWhitespace(t *testing.T) {
	s := validTalent()
	s.Email = "  Ana@Example.COM "
	s.Name = " Ana Silva "
	clean, errs := Validate(s)
	if !errs.OK() {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	if clean.Email != "ana@example.com" || clean.Name != "Ana Silva" {
		t.Fatalf("clean = %+v", clean)
	}
}

func TestValidate_TermsNotAccepted(t *testing.T) {
	s := validTalent()
	s.AcceptedTerms = false

	_, errs := Validate(s)
	if len(errs) != 1 || errs[0].Name != FieldAcceptedTerms {
		t.Fatalf("want single acceptedTerms error, got %+v", errs)
	}
	if !errors.Is(errs.Err(), ErrTermsNotAccepted) {
		t.Fatal("errors.Is(err, ErrTermsNotAccepted) = false")
	}
	want := "É necessário aceitar os termos de uso e política de privacidade"
	if errs[0].Message != want {
		t.Fatalf("message = %q", errs[0].Message)
	}
}

func TestValidate_CompanyRequiresCompanyNotExperience(t *testing.T) {
	s := validTalent()
	s.Role = RoleCompany
	s.ExperienceLevel = ""
	s.Company = ""

	_, errs := Validate(s)
	if errs.Message(FieldCompany) != "Nome da empresa é obrigatório" {
		t.Fatalf("company message = %q (errs %+v)", errs.Message(FieldCompany), errs)
	}
	if errs.Has(FieldExperienceLevel) {
		t.Fatal("company lead must not require experienceLevel")
	}
}

func TestValidate_TalentRequiresExperience(t *testing.T) {
	s := validTalent()
	s.ExperienceLevel = ""
	_, errs := Validate(s)
	if errs.Message(FieldExperienceLevel) != "Nível de experiência é obrigatório" {
		t.Fatalf("errs = %+v", errs)
	}

	s.ExperienceLevel = "guru"
	_, errs = Validate(s)
	if errs.Message(FieldExperienceLevel) != "Selecione um nível de experiência válido" {
		t.Fatalf("errs = %+v", errs)
	}
}

func TestValidate_SingleWordNameFails(t *testing.T) {
	s := validTalent()
	s.Name = "Madonna"
	_, errs := Validate(s)
	if len(errs) != 1 || errs.Message(FieldName) != "Por favor, insira nome e sobrenome" {
		t.Fatalf("errs = %+v", errs)
	}
}

func TestValidate_FieldRules(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*Submission)
		field string
		msg   string
	}{
		{"short name", func(s *Submission) { s.Name = "A" }, FieldName, "Nome deve ter pelo menos 2 caracteres"},
		{"bad email", func(s *Submission) { s.Email = "ana" }, FieldEmail, "E-mail inválido"},
		{"no email", func(s *Submission) { s.Email = "" }, FieldEmail, "E-mail é obrigatório"},
		{"bad phone", func(s *Submission) { s.Phone = "12345" }, FieldPhone, "Formato de telefone inválido. Use: (11) 99999-9999"},
		{"no area", func(s *Submission) { s.InterestArea = "" }, FieldInterestArea, "Área de interesse é obrigatória"},
		{"short title", func(s *Submission) { s.Title = "x" }, FieldTitle, "Cargo/área deve ter pelo menos 2 caracteres"},
		{"unsafe message", func(s *Submission) { s.Message = "oi <b>" }, FieldMessage, "Descrição contém caracteres inválidos"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := validTalent()
			c.edit(&s)
			_, errs := Validate(s)
			if len(errs) != 1 || errs.Message(c.field) != c.msg {
				t.Fatalf("errs = %+v, want only %s=%q", errs, c.field, c.msg)
			}
		})
	}
}

func TestValidate_UnknownRole(t *testing.T) {
	s := validTalent()
	s.Role = "recruiter"
	_, errs := Validate(s)
	if !errs.Has(FieldRole) {
		t.Fatalf("want role error, got %+v", errs)
	}
	if errs[0].Name != FieldRole {
		t.Fatal("role error should come first")
	}
}

func TestSanitize_StripsAndFormats(t *testing.T) {
	s := Sanitize(Submission{
		Name:    "Ana <Silva>",
		Email:   " ANA@X.COM ",
		Phone:   "11999999999",
		Message: `diga "oi"`,
	})
	if s.Name != "Ana Silva" {
		t.Errorf("Name = %q", s.Name)
	}
	if s.Email != "ana@x.com" {
		t.Errorf("Email = %q", s.Email)
	}
	if s.Phone != "(11) 99999-9999" {
		t.Errorf("Phone = %q", s.Phone)
	}
	if s.Message != "diga oi" {
		t.Errorf("Message = %q", s.Message)
	}
}

// -----------------------------------------------------------------------------
// Form
// -----------------------------------------------------------------------------

type recorder struct {
	got []Submission
	err error
}

func (r *recorder) SubmitLead(_ context.Context, s Submission) error {
	r.got = append(r.got, s)
	return r.err
}

func TestForm_EditValidatePersistReset(t *testing.T) {
	rec := &recorder{}
	f := NewForm(rec, RoleTalent)

	edits := map[string]any{
		FieldName:            "Ana <Silva>",
		FieldEmail:           "ANA@EXAMPLE.COM",
		FieldPhone:           "11999999999",
		FieldTitle:           "Dev",
		FieldInterestArea:    "Tecnologia",
		FieldExperienceLevel: LevelSenior,
		FieldAcceptedTerms:   "on",
	}
	for k, v := range edits {
		if err := f.Edit(k, v); err != nil {
			t.Fatalf("Edit(%s): %v", k, err)
		}
	}
	if f.Draft().Phone != "(11) 99999-9999" {
		t.Fatalf("phone not formatted on edit: %q", f.Draft().Phone)
	}
	if errs := f.Validate(); !errs.OK() {
		t.Fatalf("Validate: %+v", errs)
	}
	if err := f.Persist(context.Background()); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if len(rec.got) != 1 || rec.got[0].Email != "ana@example.com" || rec.got[0].Name != "Ana Silva" {
		t.Fatalf("persisted = %+v", rec.got)
	}

	f.Reset()
	if d := f.Draft(); d.Role != RoleTalent || d.Name != "" || d.AcceptedTerms {
		t.Fatalf("Reset left %+v", d)
	}
}

func TestForm_EditErrors(t *testing.T) {
	f := NewForm(&recorder{}, RoleCompany)
	if err := f.Edit("salary", "1"); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("unknown field err = %v", err)
	}
	if err := f.Edit(FieldName, 42); !errors.Is(err, form.ErrFieldType) {
		t.Fatalf("type err = %v", err)
	}
	if err := f.Edit(FieldAcceptedTerms, "maybe"); !errors.Is(err, form.ErrFieldType) {
		t.Fatalf("bool err = %v", err)
	}
}

func TestForm_RoleSwitchKeepsValues(t *testing.T) {
	f := NewForm(&recorder{}, RoleCompany)
	_ = f.Edit(FieldName, "Ana Silva")
	_ = f.Edit(FieldRole, string(RoleTalent))
	if d := f.Draft(); d.Role != RoleTalent || d.Name != "Ana Silva" {
		t.Fatalf("draft = %+v", d)
	}
}
