// internal/job/form.go
//
// Job posting form state for one employer session, driven by the
// submission coordinator.

package job

import (
	"context"

	"github.com/edupaziani/trampo-conecta-talentos/internal/form"
	"github.com/edupaziani/trampo-conecta-talentos/internal/sanitize"
)

// Persister stores a validated posting, with its company, and returns the
// new posting ID.
type Persister interface {
	SubmitJobPosting(ctx context.Context, p Posting) (ID, error)
}

// Form is the editable posting draft.  Not safe for concurrent use.
type Form struct {
	persist   Persister
	draft     Posting
	validated Posting
}

func NewForm(p Persister) *Form { return &Form{persist: p} }

func (f *Form) ID() string { return "job" }

// Draft returns the current sanitized values.
func (f *Form) Draft() Posting { return f.draft }

type idSinkKey struct{}

// WithIDSink returns a context that captures the posting ID assigned by a
// successful Persist run with it.  The form itself may be reused by the
// next request as soon as Persist returns, so the ID travels with the
// request rather than the form.
func WithIDSink(ctx context.Context) (context.Context, *ID) {
	id := new(ID)
	return context.WithValue(ctx, idSinkKey{}, id), id
}

// Edit sanitizes value and stores it in field.
func (f *Form) Edit(field string, value any) error {
	s, err := form.StringValue(field, value)
	if err != nil {
		return err
	}
	d := &f.draft
	switch field {
	case FieldCompanyName:
		d.CompanyName = sanitize.Name(s)
	case FieldContactEmail:
		d.ContactEmail = sanitize.Email(s)
	case FieldContactPhone:
		d.ContactPhone = sanitize.Phone(s)
	case FieldTitle:
		d.Title = sanitize.Text(s)
	case FieldType:
		d.Type = Type(sanitize.Text(s))
	case FieldArea:
		d.Area = sanitize.Text(s)
	case FieldDescription:
		d.Description = sanitize.Text(s)
	case FieldModality:
		d.Modality = Modality(sanitize.Text(s))
	case FieldApplicationLink:
		d.ApplicationLink = sanitize.URL(s)
	case FieldApplicationEmail:
		d.ApplicationEmail = sanitize.Email(s)
	default:
		return form.UnknownField(f.ID(), field)
	}
	return nil
}

func (f *Form) Validate() form.Errors {
	clean, errs := Validate(f.draft)
	if errs.OK() {
		f.validated = clean
	}
	return errs
}

// Persist submits the validated posting in pending state.
func (f *Form) Persist(ctx context.Context) error {
	p := f.validated
	p.Status = StatusPending
	id, err := f.persist.SubmitJobPosting(ctx, p)
	if err != nil {
		return err
	}
	if sink, ok := ctx.Value(idSinkKey{}).(*ID); ok {
		*sink = id
	}
	return nil
}

// Reset clears the draft.
func (f *Form) Reset() {
	f.draft = Posting{}
	f.validated = Posting{}
}
