// internal/core/form.go
package core

import (
	"math"
	"strconv"
	"strings"
)

// Attachment is a file staged on a form, e.g. an identification document.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// FormState maps field names (dot paths for nested fields such as
// "address.city") to scalar values: string, number, bool, []string,
// *Attachment or []*Attachment.
type FormState map[string]any

// String returns the value of field as a trimmed string. Numbers and
// booleans are formatted; anything else yields "".
func (f FormState) String(field string) string {
	switch v := f[field].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

// Raw returns the untrimmed string value of field.
func (f FormState) Raw(field string) string {
	if s, ok := f[field].(string); ok {
		return s
	}
	return f.String(field)
}

// Float returns the numeric value of field. ok is false when the field is
// missing, not a number, NaN or infinite.
func (f FormState) Float(field string) (float64, bool) {
	var n float64
	switch v := f[field].(type) {
	case float64:
		n = v
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// Strings returns a multi-select value. A single string counts as a one
// element set when non-empty.
func (f FormState) Strings(field string) []string {
	switch v := f[field].(type) {
	case []string:
		return v
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}

// Attachments returns the files staged under field.
func (f FormState) Attachments(field string) []*Attachment {
	switch v := f[field].(type) {
	case *Attachment:
		if v == nil {
			return nil
		}
		return []*Attachment{v}
	case []*Attachment:
		out := make([]*Attachment, 0, len(v))
		for _, a := range v {
			if a != nil {
				out = append(out, a)
			}
		}
		return out
	}
	return nil
}

// Attachment returns the first file staged under field, or nil.
func (f FormState) Attachment(field string) *Attachment {
	files := f.Attachments(field)
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

// Form couples a FormState with the errors of its last validation so that
// editing a field clears its message right away.
type Form struct {
	State  FormState
	Errors ValidationErrors
	rules  RuleSet
	flags  Flags
}

// NewForm creates an empty form validated by rules.
func NewForm(rules RuleSet, flags Flags) *Form {
	return &Form{State: FormState{}, Errors: ValidationErrors{}, rules: rules, flags: flags}
}

// Set updates one field and optimistically clears its error.
func (f *Form) Set(field string, value any) {
	f.State[field] = value
	f.Errors.Clear(field)
}

// Submit re-runs the whole rule set and reports whether the form may be sent.
func (f *Form) Submit() bool {
	f.Errors = f.rules.Validate(f.State, f.flags)
	return f.Errors.Valid()
}
