package job

import (
	"context"
	"errors"
	"testing"
)

func validPosting() Posting {
	return Posting{
		CompanyName:     "Acme Ltda",
		ContactEmail:    "rh@acme.com.br",
		Title:           "Desenvolvedor Go",
		Type:            TypePermanent,
		Area:            "Tecnologia",
		Description:     "Construir APIs e cuidar da plataforma de vagas.",
		Modality:        ModalityRemote,
		ApplicationLink: "https://acme.com.br/vagas/1?ref=trampo&src=lp",
	}
}

func TestValidate_ValidPosting(t *testing.T) {
	if _, errs := Validate(validPosting()); !errs.OK() {
		t.Fatalf("unexpected errors: %+v", errs)
	}
}

func TestValidate_EmailOnlyIsEnough(t *testing.T) {
	p := validPosting()
	p.ApplicationLink = ""
	p.ApplicationEmail = "Vagas@Acme.com.br"
	clean, errs := Validate(p)
	if !errs.OK() {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	if clean.ApplicationEmail != "vagas@acme.com.br" {
		t.Fatalf("email not lowercased: %q", clean.ApplicationEmail)
	}
}

func TestValidate_NeedsLinkOrEmail(t *testing.T) {
	p := validPosting()
	p.ApplicationLink = ""

	_, errs := Validate(p)
	if len(errs) != 1 || errs[0].Name != FieldApplicationLink || errs[0].Rule != "contact" {
		t.Fatalf("want contact error on applicationLink, got %+v", errs)
	}
	if errs[0].Message != "Forneça um link de candidatura ou e-mail" {
		t.Fatalf("message = %q", errs[0].Message)
	}
}

func TestValidate_FieldRules(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*Posting)
		field string
	}{
		{"company short", func(p *Posting) { p.CompanyName = "A" }, FieldCompanyName},
		{"contact email", func(p *Posting) { p.ContactEmail = "rh" }, FieldContactEmail},
		{"contact phone", func(p *Posting) { p.ContactPhone = "123" }, FieldContactPhone},
		{"title short", func(p *Posting) { p.Title = "Dev" }, FieldTitle},
		{"type", func(p *Posting) { p.Type = "clt" }, FieldType},
		{"area", func(p *Posting) { p.Area = "T" }, FieldArea},
		{"description", func(p *Posting) { p.Description = "curta" }, FieldDescription},
		{"modality", func(p *Posting) { p.Modality = "" }, FieldModality},
		{"link", func(p *Posting) { p.ApplicationLink = "acme" }, FieldApplicationLink},
		{"application email", func(p *Posting) { p.ApplicationEmail = "x@" }, FieldApplicationEmail},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := validPosting()
			c.edit(&p)
			_, errs := Validate(p)
			if len(errs) != 1 || !errs.Has(c.field) {
				t.Fatalf("errs = %+v, want only %s", errs, c.field)
			}
		})
	}
}

func TestSanitize_KeepsURLQuery(t *testing.T) {
	p := Sanitize(Posting{ApplicationLink: " https://x.com/a?b=1&c=2 ", Title: "Dev <Go>"})
	if p.ApplicationLink != "https://x.com/a?b=1&c=2" {
		t.Errorf("link = %q", p.ApplicationLink)
	}
	if p.Title != "Dev Go" {
		t.Errorf("title = %q", p.Title)
	}
}

func TestPublic_HidesContact(t *testing.T) {
	p := validPosting()
	p.ContactPhone = "(11) 3333-4444"
	pub := p.Public()
	if pub.ContactEmail != "" || pub.ContactPhone != "" || pub.CompanyName != p.CompanyName {
		t.Fatalf("Public() = %+v", pub)
	}
}

// ── status ─────────────────────────────────────────────────────────────────

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "approved", "rejected"} {
		if got, err := ParseStatus(s); err != nil || string(got) != s {
			t.Errorf("ParseStatus(%q) = %q, %v", s, got, err)
		}
	}
	if _, err := ParseStatus("archived"); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("ParseStatus(archived) err = %v", err)
	}
}

func TestTransitions(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusApproved},
		{StatusPending, StatusRejected},
	}
	for _, tr := range allowed {
		if !IsTransitionAllowed(tr.from, tr.to) {
			t.Errorf("%s -> %s should be allowed", tr.from, tr.to)
		}
	}
	denied := []struct{ from, to Status }{
		{StatusApproved, StatusRejected},
		{StatusRejected, StatusApproved},
		{StatusApproved, StatusPending},
		{StatusPending, StatusPending},
	}
	for _, tr := range denied {
		if IsTransitionAllowed(tr.from, tr.to) {
			t.Errorf("%s -> %s should be denied", tr.from, tr.to)
		}
	}
	if StatusPending.IsTerminal() || !StatusApproved.IsTerminal() || !StatusRejected.IsTerminal() {
		t.Error("terminal states wrong")
	}
}

// ── form ───────────────────────────────────────────────────────────────────

type fakePersister struct {
	got Posting
	err error
}

func (f *fakePersister) SubmitJobPosting(_ context.Context, p Posting) (ID, error) {
	f.got = p
	if f.err != nil {
		return "", f.err
	}
	return "job-1", nil
}

func TestForm_PersistsPending(t *testing.T) {
	fp := &fakePersister{}
	f := NewForm(fp)
	v := validPosting()
	for field, val := range map[string]any{
		FieldCompanyName:     v.CompanyName,
		FieldContactEmail:    "RH@ACME.COM.BR",
		FieldTitle:           v.Title,
		FieldType:            string(v.Type),
		FieldArea:            v.Area,
		FieldDescription:     v.Description,
		FieldModality:        string(v.Modality),
		FieldApplicationLink: v.ApplicationLink,
	} {
		if err := f.Edit(field, val); err != nil {
			t.Fatalf("Edit(%s): %v", field, err)
		}
	}
	if errs := f.Validate(); !errs.OK() {
		t.Fatalf("Validate: %+v", errs)
	}
	ctx, id := WithIDSink(context.Background())
	if err := f.Persist(ctx); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if fp.got.Status != StatusPending || fp.got.ContactEmail != "rh@acme.com.br" {
		t.Fatalf("persisted %+v", fp.got)
	}
	if *id != "job-1" {
		t.Fatalf("sink id = %q", *id)
	}
	f.Reset()
	if f.Draft() != (Posting{}) {
		t.Fatal("Reset should clear draft")
	}
}

func TestForm_PersistError(t *testing.T) {
	boom := errors.New("boom")
	f := NewForm(&fakePersister{err: boom})
	ctx, id := WithIDSink(context.Background())
	if err := f.Persist(ctx); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if *id != "" {
		t.Fatal("sink id set on failure")
	}
}
