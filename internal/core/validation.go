// internal/core/validation.go
package core

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"
)

// Regular expressions for contact fields
var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Dutch (06) and Belgian (04) mobile numbers, local or international prefix
	phoneRegex = regexp.MustCompile(`^(\+31|0)6\d{8}$|^(\+32|0)4\d{8}$`)
)

// OthersSentinel is the multi-select choice that unlocks a free-text field.
const OthersSentinel = "Others"

// ValidationErrors maps a field name to a human readable message. An empty
// map means the form is valid.
type ValidationErrors map[string]string

// Error implements error with the fields in a stable order.
func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Valid reports whether no rule failed.
func (e ValidationErrors) Valid() bool {
	return len(e) == 0
}

// Clear drops the message for field, used while the user is editing it.
func (e ValidationErrors) Clear(field string) {
	delete(e, field)
}

// Flags are the discriminators that switch rules on or off.
type Flags struct {
	UserType string
}

// Condition decides whether a rule applies to the current form.
type Condition func(form FormState, flags Flags) bool

// Rule checks a single field. Check returns "" when the value passes.
type Rule struct {
	Field string
	When  Condition
	Check func(form FormState) string
}

// OnlyIf returns a copy of r that is skipped unless cond holds. Conditions
// stack: every one of them must hold.
func (r Rule) OnlyIf(cond Condition) Rule {
	prev := r.When
	r.When = func(form FormState, flags Flags) bool {
		if prev != nil && !prev(form, flags) {
			return false
		}
		return cond(form, flags)
	}
	return r
}

// RuleSet is an ordered list of rules. When several rules fail for the same
// field, the first one wins.
type RuleSet []Rule

// Validate evaluates every applicable rule and returns all failures.
// It never modifies form.
func (rs RuleSet) Validate(form FormState, flags Flags) ValidationErrors {
	errs := ValidationErrors{}
	for _, r := range rs {
		if _, failed := errs[r.Field]; failed {
			continue
		}
		if r.When != nil && !r.When(form, flags) {
			continue
		}
		if msg := r.Check(form); msg != "" {
			errs[r.Field] = msg
		}
	}
	return errs
}

// --- Conditions ---

// UserTypeIs applies a rule only to one kind of account.
func UserTypeIs(userType string) Condition {
	return func(_ FormState, flags Flags) bool {
		return flags.UserType == userType
	}
}

// SetContains applies a rule when the multi-select field holds value.
func SetContains(field, value string) Condition {
	return func(form FormState, _ Flags) bool {
		return slices.Contains(form.Strings(field), value)
	}
}

// --- Rule constructors ---

// Required fails when the trimmed value is empty.
func Required(field, msg string) Rule {
	return Rule{Field: field, Check: func(form FormState) string {
		if form.String(field) == "" {
			return msg
		}
		return ""
	}}
}

// Pattern fails when a non-empty value does not match re. Empty values are
// left to Required.
func Pattern(field string, re *regexp.Regexp, msg string) Rule {
	return Rule{Field: field, Check: func(form FormState) string {
		v := form.String(field)
		if v != "" && !re.MatchString(v) {
			return msg
		}
		return ""
	}}
}

// Email checks the local@domain.tld shape.
func Email(field, msg string) Rule {
	return Pattern(field, emailRegex, msg)
}

// Phone checks for a Dutch or Belgian mobile number.
func Phone(field, msg string) Rule {
	return Pattern(field, phoneRegex, msg)
}

// Contains fails when a non-empty value lacks substr.
func Contains(field, substr, msg string) Rule {
	return Rule{Field: field, Check: func(form FormState) string {
		v := form.String(field)
		if v != "" && !strings.Contains(v, substr) {
			return msg
		}
		return ""
	}}
}

// MinLength fails when a non-empty value is shorter than n characters.
func MinLength(field string, n int, msg string) Rule {
	return Rule{Field: field, Check: func(form FormState) string {
		v := form.Raw(field)
		if v != "" && len([]rune(v)) < n {
			return msg
		}
		return ""
	}}
}

// EqualTo fails when field differs from other, compared untrimmed.
func EqualTo(field, other, msg string) Rule {
	return Rule{Field: field, Check: func(form FormState) string {
		if form.Raw(field) != form.Raw(other) {
			return msg
		}
		return ""
	}}
}

// GreaterThan fails unless the numeric value is strictly above min.
func GreaterThan(field string, min float64, msg string) Rule {
	return Rule{Field: field, Check: func(form FormState) string {
		v, ok := form.Float(field)
		if !ok || v <= min {
			return msg
		}
		return ""
	}}
}

// GreaterThanField fails unless field is strictly above other.
func GreaterThanField(field, other, msg string) Rule {
	return Rule{Field: field, Check: func(form FormState) string {
		v, ok := form.Float(field)
		if !ok {
			return msg
		}
		o, _ := form.Float(other)
		if v <= o {
			return msg
		}
		return ""
	}}
}

// NonEmptySet fails when a multi-select has no choice.
func NonEmptySet(field, msg string) Rule {
	return Rule{Field: field, Check: func(form FormState) string {
		if len(form.Strings(field)) == 0 {
			return msg
		}
		return ""
	}}
}

// FilePresent fails when no attachment is staged under field.
func FilePresent(field, msg string) Rule {
	return Rule{Field: field, Check: func(form FormState) string {
		if form.Attachment(field) == nil {
			return msg
		}
		return ""
	}}
}

// --- Tax identifiers ---

// TaxIDValidator checks a tax identifier for one country and returns a
// message on failure.
type TaxIDValidator func(value string) string

func patternValidator(re *regexp.Regexp, msg string) TaxIDValidator {
	return func(value string) string {
		if !re.MatchString(value) {
			return msg
		}
		return ""
	}
}

// TaxIDValidators dispatches on the country chosen in the address. Countries
// without an entry accept any non-empty value.
var TaxIDValidators = map[string]TaxIDValidator{
	"Belgium": patternValidator(regexp.MustCompile(`^BE\d{10}$`),
		"Ongeldig BTW-nummer formaat (moet beginnen met BE gevolgd door 10 cijfers)"),
	"Netherlands": patternValidator(regexp.MustCompile(`^\d{8}$`),
		"Ongeldig KVK-nummer formaat (moet 8 cijfers zijn)"),
}

// TaxID requires field and validates it with the format registered for the
// country found in countryField.
func TaxID(field, countryField, requiredMsg string) Rule {
	return Rule{Field: field, Check: func(form FormState) string {
		v := form.String(field)
		if v == "" {
			return requiredMsg
		}
		if validate, ok := TaxIDValidators[form.String(countryField)]; ok {
			return validate(v)
		}
		return ""
	}}
}
