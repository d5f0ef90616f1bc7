// internal/form/fields.go
//
// Field value coercion shared by the concrete forms.  Edits arrive either as
// typed Go values (library callers) or as decoded JSON (HTTP), so a checkbox
// may show up as true, "true", or "on".

package form

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownField is returned by Edit for a field the form does not have.
	ErrUnknownField = errors.New("unknown field")
	// ErrFieldType is returned by Edit when the value has the wrong shape.
	ErrFieldType = errors.New("unsupported value type")
)

// StringValue coerces v to a string.  nil becomes "".
func StringValue(field string, v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return "", fmt.Errorf("field %q: %w %T", field, ErrFieldType, v)
	}
}

// BoolValue coerces v to a bool.  HTML checkbox spellings are accepted.
func BoolValue(field string, v any) (bool, error) {
	switch t := v.(type) {
	case nil:
		return false, nil
	case bool:
		return t, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "on", "1", "yes":
			return true, nil
		case "", "false", "off", "0", "no":
			return false, nil
		}
	}
	return false, fmt.Errorf("field %q: %w %T", field, ErrFieldType, v)
}

// UnknownField builds the error for an edit on a missing field.
func UnknownField(formID, field string) error {
	return fmt.Errorf("form %s: %w %q", formID, ErrUnknownField, field)
}
