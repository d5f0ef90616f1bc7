// internal/lead/form.go
//
// Lead form state for one visitor session.  The submission coordinator owns
// a Form and drives it: Edit on every keystroke, Validate and Persist on
// submit, Reset after a successful hand-off.

package lead

import (
	"context"

	"github.com/edupaziani/trampo-conecta-talentos/internal/form"
	"github.com/edupaziani/trampo-conecta-talentos/internal/sanitize"
)

// Persister stores a validated lead.  Implementations are remote; any error
// is treated as a generic failure by the caller.
type Persister interface {
	SubmitLead(ctx context.Context, s Submission) error
}

// Form is the editable lead draft.  It is not safe for concurrent use; the
// coordinator serialises access.
type Form struct {
	persist   Persister
	draft     Submission
	validated Submission
}

// NewForm returns an empty draft for role r.
func NewForm(p Persister, r Role) *Form {
	return &Form{persist: p, draft: Submission{Role: r}}
}

// ID names the form in logs and metrics.
func (f *Form) ID() string { return "lead" }

// Draft returns the current, sanitized values.
func (f *Form) Draft() Submission { return f.draft }

// Edit sanitizes value and stores it in field.
func (f *Form) Edit(field string, value any) error {
	if field == FieldAcceptedTerms || field == FieldAcceptedMarketing {
		b, err := form.BoolValue(field, value)
		if err != nil {
			return err
		}
		if field == FieldAcceptedTerms {
			f.draft.AcceptedTerms = b
		} else {
			f.draft.AcceptedMarketing = b
		}
		return nil
	}

	s, err := form.StringValue(field, value)
	if err != nil {
		return err
	}
	switch field {
	case FieldRole:
		f.draft.Role = Role(sanitize.Text(s))
	case FieldName:
		f.draft.Name = sanitize.Name(s)
	case FieldEmail:
		f.draft.Email = sanitize.Email(s)
	case FieldPhone:
		f.draft.Phone = sanitize.Phone(s)
	case FieldCompany:
		f.draft.Company = sanitize.Name(s)
	case FieldTitle:
		f.draft.Title = sanitize.Text(s)
	case FieldInterestArea:
		f.draft.InterestArea = sanitize.Text(s)
	case FieldExperienceLevel:
		f.draft.ExperienceLevel = sanitize.Text(s)
	case FieldMessage:
		f.draft.Message = sanitize.Text(s)
	default:
		return form.UnknownField(f.ID(), field)
	}
	return nil
}

// Validate checks the draft and keeps the normalised copy for Persist.
func (f *Form) Validate() form.Errors {
	clean, errs := Validate(f.draft)
	if errs.OK() {
		f.validated = clean
	}
	return errs
}

// Persist hands the last validated record to the persister.
func (f *Form) Persist(ctx context.Context) error {
	return f.persist.SubmitLead(ctx, f.validated)
}

// Reset clears every field except the role tab.
func (f *Form) Reset() {
	f.draft = Submission{Role: f.draft.Role}
	f.validated = Submission{}
}
