// internal/form/validate.go
//
// Trampô: forms subsystem, field validation.
//
// Context
//   Each public form (lead capture, job posting) is described by a Schema: an
//   ordered list of field rules written as go-playground/validator tag strings,
//   plus optional cross-field refinements.  Callers sanitize input first, then
//   hand the record to Schema.Validate, which returns an Errors value listing
//   at most one message per field.
//
// Workflow
//   •  Rules run in declaration order.  Every field is evaluated, but each
//      field stops at its first failing tag, so the user sees one message.
//   •  Refinements run after field rules and only for fields that do not
//      already carry an error.
//   •  Messages are resolved through the catalog (messages.go) using the
//      schema lineage, so an extended schema inherits its parent's wording.
//   •  A non-empty Errors converts to *ValidationError through Err().
//
//------------------------------------------------------------------------------

package form

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// -----------------------------------------------------------------------------
// Error types
// -----------------------------------------------------------------------------

// ErrorField describes a single validation failure so the caller can render
// a field-level message.
type ErrorField struct {
	Name    string `json:"field"`   // field name
	Rule    string `json:"-"`       // failing validator tag or refinement name
	Message string `json:"message"` // user-facing message
}

// Errors is the result of a validation pass.  Empty means valid.
type Errors []ErrorField

// OK reports whether no field failed.
func (e Errors) OK() bool { return len(e) == 0 }

// Has reports whether name carries an error.
func (e Errors) Has(name string) bool {
	for _, f := range e {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Message returns the message for name or "".
func (e Errors) Message(name string) string {
	for _, f := range e {
		if f.Name == name {
			return f.Message
		}
	}
	return ""
}

// Without returns a copy of e minus the entry for name.
func (e Errors) Without(name string) Errors {
	out := make(Errors, 0, len(e))
	for _, f := range e {
		if f.Name != name {
			out = append(out, f)
		}
	}
	return out
}

// Map returns field → message, the shape the HTTP layer encodes.
func (e Errors) Map() map[string]string {
	m := make(map[string]string, len(e))
	for _, f := range e {
		m[f.Name] = f.Message
	}
	return m
}

// Err returns nil when e is empty and a *ValidationError otherwise.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return &ValidationError{Fields: e}
}

// ValidationError wraps Errors and satisfies the error interface.  It lets
// callers tell user input errors apart from system failures.
type ValidationError struct{ Fields Errors }

func (ve *ValidationError) Error() string { return "form validation failed" }

// Is matches field sentinels created by Sentinel.
func (ve *ValidationError) Is(target error) bool {
	s, ok := target.(*fieldSentinel)
	return ok && ve.Fields.Has(s.field)
}

// IsValidationError reports whether err came from a failed validation.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// fieldSentinel is an error value that a *ValidationError matches when the
// named field failed.
type fieldSentinel struct{ field, text string }

func (s *fieldSentinel) Error() string { return s.text }

// Sentinel returns an error usable with errors.Is against any
// *ValidationError that carries a failure on field.
func Sentinel(field, text string) error { return &fieldSentinel{field: field, text: text} }

// -----------------------------------------------------------------------------
// Schema
// -----------------------------------------------------------------------------

// Rule binds a field name to a validator tag string and an accessor.
type Rule[T any] struct {
	Field string
	Tag   string
	Value func(T) any
}

// refinement is a cross-field predicate reported under Field.
type refinement[T any] struct {
	field string
	rule  string
	check func(T) bool
}

// Schema is an immutable rule set for records of type T.  Extend and Refine
// return new schemas; the receiver is never modified.
type Schema[T any] struct {
	lineage []string // own ID first, then ancestors
	rules   []Rule[T]
	refines []refinement[T]
}

// NewSchema builds a schema identified by id.  The ID selects messages in
// the catalog.
func NewSchema[T any](id string, rules ...Rule[T]) Schema[T] {
	return Schema[T]{
		lineage: []string{id},
		rules:   append([]Rule[T](nil), rules...),
	}
}

// ID returns the schema identifier.
func (s Schema[T]) ID() string { return s.lineage[0] }

// Fields lists field names in evaluation order.
func (s Schema[T]) Fields() []string {
	out := make([]string, 0, len(s.rules))
	for _, r := range s.rules {
		out = append(out, r.Field)
	}
	return out
}

// Extend derives a schema named id.  A rule whose Field already exists
// replaces the inherited rule in place; other rules are appended.
func (s Schema[T]) Extend(id string, rules ...Rule[T]) Schema[T] {
	out := Schema[T]{
		lineage: append([]string{id}, s.lineage...),
		rules:   append([]Rule[T](nil), s.rules...),
		refines: append([]refinement[T](nil), s.refines...),
	}
	for _, nr := range rules {
		replaced := false
		for i := range out.rules {
			if out.rules[i].Field == nr.Field {
				out.rules[i] = nr
				replaced = true
				break
			}
		}
		if !replaced {
			out.rules = append(out.rules, nr)
		}
	}
	return out
}

// Refine adds a record-level check reported under field with the given rule
// name.  It is skipped when field already failed a field rule.
func (s Schema[T]) Refine(field, rule string, check func(T) bool) Schema[T] {
	out := s
	out.refines = append(append([]refinement[T](nil), s.refines...), refinement[T]{field, rule, check})
	return out
}

// Validate evaluates every rule against v and returns the collected errors.
func (s Schema[T]) Validate(v T) Errors {
	var errs Errors

	for _, r := range s.rules {
		err := validate.Var(r.Value(v), r.Tag)
		if err == nil {
			continue
		}
		tag, param := failedTag(err)
		errs = append(errs, ErrorField{
			Name:    r.Field,
			Rule:    tag,
			Message: lookupMessage(s.lineage, r.Field, tag, param),
		})
	}

	for _, rf := range s.refines {
		if errs.Has(rf.field) || rf.check(v) {
			continue
		}
		errs = append(errs, ErrorField{
			Name:    rf.field,
			Rule:    rf.rule,
			Message: lookupMessage(s.lineage, rf.field, rf.rule, ""),
		})
	}

	return errs
}

// failedTag extracts the first failing tag and its parameter.
func failedTag(err error) (string, string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Tag(), verrs[0].Param()
	}
	return "invalid", ""
}

// -----------------------------------------------------------------------------
// Validator instance and custom tags
// -----------------------------------------------------------------------------

var (
	// Brazilian phone: optional +55, optional area code, optional leading 9.
	brPhoneRe = regexp.MustCompile(`^(?:\+55\s?)?(?:\(?0?[1-9]{2}\)?\s?)?9?\d{4}-?\d{4}$`)

	// Letters (accented included), spaces, and . , - & ( ).
	personNameRe = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s\.,\-&()]*$`)

	// Alphanumerics, accented letters, spaces, and . , - _ ( ) ! ? @ # &.
	safeTextRe = regexp.MustCompile(`^[a-zA-ZÀ-ÿ0-9\s\.,\-_()!?@#&]*$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, "brphone", matcher(brPhoneRe))
	mustRegister(v, "personname", matcher(personNameRe))
	mustRegister(v, "safetext", matcher(safeTextRe))
	mustRegister(v, "fullname", func(fl validator.FieldLevel) bool {
		return len(strings.Split(fl.Field().String(), " ")) >= 2
	})
	return v
}

func matcher(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool { return re.MatchString(fl.Field().String()) }
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("form: register " + tag + ": " + err.Error())
	}
}
