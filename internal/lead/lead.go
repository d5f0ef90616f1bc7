// Package lead holds the landing-page contact request: its data model, the
// two role-specific schemas, and the form used by the submission
// coordinator.
//
// A lead is either a company looking to hire or a talent looking for work.
// Both share one base rule set; the company variant additionally requires
// the company name and the talent variant requires an experience level.
package lead

import (
	"strings"

	"github.com/edupaziani/trampo-conecta-talentos/internal/form"
	"github.com/edupaziani/trampo-conecta-talentos/internal/sanitize"
)

// Role discriminates the two lead kinds.
type Role string

const (
	RoleCompany Role = "company"
	RoleTalent  Role = "talent"
)

// Experience levels offered to talents.
const (
	LevelJunior     = "junior"
	LevelMid        = "mid"
	LevelSenior     = "senior"
	LevelSpecialist = "specialist"
)

// Field names, shared by schemas, Edit, and error maps.
const (
	FieldRole              = "role"
	FieldName              = "name"
	FieldEmail             = "email"
	FieldPhone             = "phone"
	FieldCompany           = "company"
	FieldTitle             = "title"
	FieldInterestArea      = "interestArea"
	FieldExperienceLevel   = "experienceLevel"
	FieldMessage           = "message"
	FieldAcceptedTerms     = "acceptedTerms"
	FieldAcceptedMarketing = "acceptedMarketing"
)

// ErrTermsNotAccepted matches, through errors.Is, a validation error whose
// acceptedTerms field failed.
var ErrTermsNotAccepted = form.Sentinel(FieldAcceptedTerms, "terms of use not accepted")

// Submission is one contact request as typed into the form.
type Submission struct {
	Role              Role   `json:"role"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Company           string `json:"company,omitempty"`
	Title             string `json:"title"`
	InterestArea      string `json:"interestArea"`
	ExperienceLevel   string `json:"experienceLevel,omitempty"`
	Message           string `json:"message,omitempty"`
	AcceptedTerms     bool   `json:"acceptedTerms"`
	AcceptedMarketing bool   `json:"acceptedMarketing"`
}

// -----------------------------------------------------------------------------
// Schemas
// -----------------------------------------------------------------------------

type rule = form.Rule[Submission]

// BaseSchema applies to every lead regardless of role.
var BaseSchema = form.NewSchema("lead",
	rule{Field: FieldName, Tag: "min=2,max=100,personname,fullname", Value: func(s Submission) any { return s.Name }},
	rule{Field: FieldEmail, Tag: "required,max=255,email", Value: func(s Submission) any { return s.Email }},
	rule{Field: FieldPhone, Tag: "required,brphone", Value: func(s Submission) any { return s.Phone }},
	rule{Field: FieldCompany, Tag: "omitempty,max=100,personname", Value: func(s Submission) any { return s.Company }},
	rule{Field: FieldTitle, Tag: "min=2,max=100,safetext", Value: func(s Submission) any { return s.Title }},
	rule{Field: FieldInterestArea, Tag: "required,max=50", Value: func(s Submission) any { return s.InterestArea }},
	rule{Field: FieldExperienceLevel, Tag: "omitempty,max=50", Value: func(s Submission) any { return s.ExperienceLevel }},
	rule{Field: FieldMessage, Tag: "omitempty,max=1000,safetext", Value: func(s Submission) any { return s.Message }},
	rule{Field: FieldAcceptedTerms, Tag: "eq=true", Value: func(s Submission) any { return s.AcceptedTerms }},
)

// CompanySchema requires the company name.
var CompanySchema = BaseSchema.Extend("lead/company",
	rule{Field: FieldCompany, Tag: "required,min=2,max=100,personname", Value: func(s Submission) any { return s.Company }},
)

// TalentSchema requires an experience level from the closed set.
var TalentSchema = BaseSchema.Extend("lead/talent",
	rule{
		Field: FieldExperienceLevel,
		Tag:   "required,max=50,oneof=" + strings.Join([]string{LevelJunior, LevelMid, LevelSenior, LevelSpecialist}, " "),
		Value: func(s Submission) any { return s.ExperienceLevel },
	},
)

// SchemaFor returns the schema variant for r.  ok is false for an unknown
// role.
func SchemaFor(r Role) (form.Schema[Submission], bool) {
	switch r {
	case RoleCompany:
		return CompanySchema, true
	case RoleTalent:
		return TalentSchema, true
	default:
		return BaseSchema, false
	}
}

// -----------------------------------------------------------------------------
// Public API
// -----------------------------------------------------------------------------

// Validate checks s against the schema selected by s.Role and returns the
// normalised record (trimmed, email lowercased) with any field errors.  An
// unknown role is reported under "role" on top of the base rule errors.
func Validate(s Submission) (Submission, form.Errors) {
	clean := s.normalized()

	schema, ok := SchemaFor(clean.Role)
	errs := schema.Validate(clean)
	if !ok {
		tag := "oneof"
		if clean.Role == "" {
			tag = "required"
		}
		errs = append(form.Errors{{
			Name:    FieldRole,
			Rule:    tag,
			Message: form.Message(BaseSchema.ID(), FieldRole, tag),
		}}, errs...)
	}
	return clean, errs
}

// Sanitize runs every field through its sanitizer.
func Sanitize(s Submission) Submission {
	s.Name = sanitize.Name(s.Name)
	s.Email = sanitize.Email(s.Email)
	s.Phone = sanitize.Phone(s.Phone)
	s.Company = sanitize.Name(s.Company)
	s.Title = sanitize.Text(s.Title)
	s.InterestArea = sanitize.Text(s.InterestArea)
	s.ExperienceLevel = sanitize.Text(s.ExperienceLevel)
	s.Message = sanitize.Text(s.Message)
	return s
}

func (s Submission) normalized() Submission {
	s.Role = Role(strings.TrimSpace(string(s.Role)))
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	s.Phone = strings.TrimSpace(s.Phone)
	s.Company = strings.TrimSpace(s.Company)
	s.Title = strings.TrimSpace(s.Title)
	s.InterestArea = strings.TrimSpace(s.InterestArea)
	s.ExperienceLevel = strings.TrimSpace(s.ExperienceLevel)
	s.Message = strings.TrimSpace(s.Message)
	return s
}
