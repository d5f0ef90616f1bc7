// Package job models employer job postings: the record submitted through the
// public form, its owning company, the validation schema, and the moderation
// status machine.
package job

import (
	"strings"
	"time"

	"github.com/edupaziani/trampo-conecta-talentos/internal/form"
	"github.com/edupaziani/trampo-conecta-talentos/internal/sanitize"
)

// ID identifies a stored posting.
type ID string

// Type is the contract kind.
type Type string

const (
	TypeInternship Type = "internship"
	TypePermanent  Type = "permanent"
	TypeFreelance  Type = "freelance"
)

// Modality is where the work happens.
type Modality string

const (
	ModalityOnsite Modality = "onsite"
	ModalityRemote Modality = "remote"
	ModalityHybrid Modality = "hybrid"
)

const (
	FieldCompanyName      = "companyName"
	FieldContactEmail     = "contactEmail"
	FieldContactPhone     = "contactPhone"
	FieldTitle            = "title"
	FieldType             = "type"
	FieldArea             = "area"
	FieldDescription      = "description"
	FieldModality         = "modality"
	FieldApplicationLink  = "applicationLink"
	FieldApplicationEmail = "applicationEmail"
)

// Company owns postings.  Contact details are visible to moderators only.
type Company struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	ContactEmail string    `db:"contact_email" json:"contactEmail"`
	ContactPhone string    `db:"contact_phone" json:"contactPhone,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// Posting is a job listing together with its company's public details.
type Posting struct {
	ID               ID        `db:"id" json:"id,omitempty"`
	CompanyID        string    `db:"company_id" json:"companyId,omitempty"`
	CompanyName      string    `db:"company_name" json:"companyName"`
	ContactEmail     string    `db:"contact_email" json:"contactEmail,omitempty"`
	ContactPhone     string    `db:"contact_phone" json:"contactPhone,omitempty"`
	Title            string    `db:"title" json:"title"`
	Type             Type      `db:"job_type" json:"type"`
	Area             string    `db:"area" json:"area"`
	Description      string    `db:"description" json:"description"`
	Modality         Modality  `db:"modality" json:"modality"`
	ApplicationLink  string    `db:"application_link" json:"applicationLink,omitempty"`
	ApplicationEmail string    `db:"application_email" json:"applicationEmail,omitempty"`
	Status           Status    `db:"status" json:"status"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

// Public strips the company contact details shown only to moderators.
func (p Posting) Public() Posting {
	p.ContactEmail = ""
	p.ContactPhone = ""
	return p
}

type rule = form.Rule[Posting]

// Schema validates a posting submitted through the public form.  A posting
// must offer at least one way to apply; the failure is reported on
// applicationLink.
var Schema = form.NewSchema("job",
	rule{Field: FieldCompanyName, Tag: "min=2,max=100", Value: func(p Posting) any { return p.CompanyName }},
	rule{Field: FieldContactEmail, Tag: "required,max=255,email", Value: func(p Posting) any { return p.ContactEmail }},
	rule{Field: FieldContactPhone, Tag: "omitempty,brphone", Value: func(p Posting) any { return p.ContactPhone }},
	rule{Field: FieldTitle, Tag: "min=5,max=120", Value: func(p Posting) any { return p.Title }},
	rule{Field: FieldType, Tag: "required,oneof=internship permanent freelance", Value: func(p Posting) any { return string(p.Type) }},
	rule{Field: FieldArea, Tag: "min=2,max=50", Value: func(p Posting) any { return p.Area }},
	rule{Field: FieldDescription, Tag: "min=20,max=1000", Value: func(p Posting) any { return p.Description }},
	rule{Field: FieldModality, Tag: "required,oneof=onsite remote hybrid", Value: func(p Posting) any { return string(p.Modality) }},
	rule{Field: FieldApplicationLink, Tag: "omitempty,max=2048,url", Value: func(p Posting) any { return p.ApplicationLink }},
	rule{Field: FieldApplicationEmail, Tag: "omitempty,max=255,email", Value: func(p Posting) any { return p.ApplicationEmail }},
).Refine(FieldApplicationLink, "contact", func(p Posting) bool {
	return p.ApplicationLink != "" || p.ApplicationEmail != ""
})

// Validate normalises p and checks it against Schema.
func Validate(p Posting) (Posting, form.Errors) {
	clean := p.normalized()
	return clean, Schema.Validate(clean)
}

// Sanitize runs every user-editable field through its sanitizer.
func Sanitize(p Posting) Posting {
	p.CompanyName = sanitize.Name(p.CompanyName)
	p.ContactEmail = sanitize.Email(p.ContactEmail)
	p.ContactPhone = sanitize.Phone(p.ContactPhone)
	p.Title = sanitize.Text(p.Title)
	p.Type = Type(sanitize.Text(string(p.Type)))
	p.Area = sanitize.Text(p.Area)
	p.Description = sanitize.Text(p.Description)
	p.Modality = Modality(sanitize.Text(string(p.Modality)))
	p.ApplicationLink = sanitize.URL(p.ApplicationLink)
	p.ApplicationEmail = sanitize.Email(p.ApplicationEmail)
	return p
}

func (p Posting) normalized() Posting {
	p.CompanyName = strings.TrimSpace(p.CompanyName)
	p.ContactEmail = strings.ToLower(strings.TrimSpace(p.ContactEmail))
	p.ContactPhone = strings.TrimSpace(p.ContactPhone)
	p.Title = strings.TrimSpace(p.Title)
	p.Type = Type(strings.TrimSpace(string(p.Type)))
	p.Area = strings.TrimSpace(p.Area)
	p.Description = strings.TrimSpace(p.Description)
	p.Modality = Modality(strings.TrimSpace(string(p.Modality)))
	p.ApplicationLink = strings.TrimSpace(p.ApplicationLink)
	p.ApplicationEmail = strings.ToLower(strings.TrimSpace(p.ApplicationEmail))
	return p
}
