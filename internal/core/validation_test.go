// internal/core/validation_test.go
package core

import (
	"reflect"
	"strings"
	"testing"
)

func validRegistration() FormState {
	return FormState{
		FieldFirstName:              "Jan",
		FieldLastName:               "Peeters",
		FieldEmail:                  "jan@example.be",
		FieldPassword:               "geheim123",
		FieldConfirmPassword:        "geheim123",
		FieldPhoneNumber:            "0471234567",
		FieldDateOfBirth:            "1990-04-01",
		FieldAddressCountry:         "Belgium",
		FieldCompanyName:            "Peeters Bouw",
		FieldVatOrKvKNumber:         "BE1234567890",
		FieldIdentificationDocument: &Attachment{Filename: "id.pdf", ContentType: "application/pdf"},
	}
}

func TestRegistrationRulesValid(t *testing.T) {
	errs := RegistrationRules.Validate(validRegistration(), Flags{UserType: "craftsman"})
	if !errs.Valid() {
		t.Fatalf("expected valid craftsman registration, got %v", errs)
	}
}

func TestRegistrationRules(t *testing.T) {
	testCases := []struct {
		name      string
		userType  string
		mutate    func(f FormState)
		wantField string
		wantMsg   string
	}{
		{"missing first name", "craftsman", func(f FormState) { f[FieldFirstName] = "" }, FieldFirstName, "Voornaam is verplicht"},
		{"whitespace last name", "craftsman", func(f FormState) { f[FieldLastName] = "   " }, FieldLastName, "Achternaam is verplicht"},
		{"missing email", "craftsman", func(f FormState) { delete(f, FieldEmail) }, FieldEmail, "E-mailadres is verplicht"},
		{"bad email", "craftsman", func(f FormState) { f[FieldEmail] = "jan@example" }, FieldEmail, "Ongeldig e-mailadres formaat"},
		{"missing country", "craftsman", func(f FormState) { f[FieldAddressCountry] = "" }, FieldAddressCountry, "Land is verplicht"},
		{"password mismatch", "craftsman", func(f FormState) { f[FieldConfirmPassword] = "other" }, FieldConfirmPassword, "Wachtwoorden komen niet overeen"},
		{"bad phone", "craftsman", func(f FormState) { f[FieldPhoneNumber] = "0212345678" }, FieldPhoneNumber, "Ongeldig telefoonnummer formaat"},
		{"craftsman needs company", "craftsman", func(f FormState) { f[FieldCompanyName] = "" }, FieldCompanyName, "Bedrijfsnaam is verplicht"},
		{"craftsman needs tax id", "craftsman", func(f FormState) { f[FieldVatOrKvKNumber] = "" }, FieldVatOrKvKNumber, "BTW-nummer of KVK-nummer is verplicht voor vakmensen"},
		{"missing id document", "craftsman", func(f FormState) { delete(f, FieldIdentificationDocument) }, FieldIdentificationDocument, "Identificatiedocument is verplicht"},
		{"individual needs interest", "individual", func(f FormState) {}, FieldProjectInterest, "Selecteer ten minste één projectinteresse"},
		{"others needs free text", "individual", func(f FormState) { f[FieldProjectInterest] = []string{"Painting", OthersSentinel} }, FieldOtherProjectInterest, "Specificeer andere projectinteresses"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			form := validRegistration()
			tc.mutate(form)
			errs := RegistrationRules.Validate(form, Flags{UserType: tc.userType})
			if got := errs[tc.wantField]; got != tc.wantMsg {
				t.Errorf("errors[%q] = %q; want %q (all: %v)", tc.wantField, got, tc.wantMsg, errs)
			}
		})
	}
}

func TestRegistrationRulesDiscriminator(t *testing.T) {
	form := validRegistration()
	form[FieldCompanyName] = ""
	form[FieldVatOrKvKNumber] = ""
	form[FieldProjectInterest] = []string{"Painting"}

	errs := RegistrationRules.Validate(form, Flags{UserType: "individual"})
	if !errs.Valid() {
		t.Errorf("craftsman-only fields must not be required for individuals, got %v", errs)
	}

	delete(form, FieldProjectInterest)
	errs = RegistrationRules.Validate(form, Flags{UserType: "craftsman"})
	if _, ok := errs[FieldProjectInterest]; ok {
		t.Errorf("projectInterest must not be required for craftsmen")
	}
}

func TestTaxIDByCountry(t *testing.T) {
	testCases := []struct {
		name    string
		country string
		value   string
		want    bool
	}{
		{"belgium valid", "Belgium", "BE1234567890", true},
		{"belgium missing prefix", "Belgium", "1234567890", false},
		{"belgium too short", "Belgium", "BE123456789", false},
		{"netherlands valid", "Netherlands", "12345678", true},
		{"netherlands too short", "Netherlands", "123", false},
		{"netherlands with prefix", "Netherlands", "NL12345678", false},
		{"other country any value", "Germany", "DE999", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			form := FormState{FieldAddressCountry: tc.country, FieldVatOrKvKNumber: tc.value}
			rules := RuleSet{TaxID(FieldVatOrKvKNumber, FieldAddressCountry, "required")}
			errs := rules.Validate(form, Flags{})
			if got := errs.Valid(); got != tc.want {
				t.Errorf("TaxID(%s, %q) valid = %v; want %v (%v)", tc.country, tc.value, got, tc.want, errs)
			}
		})
	}
}

func TestPhoneFormat(t *testing.T) {
	testCases := []struct {
		input string
		want  bool
	}{
		{"0612345678", true},
		{"+31612345678", true},
		{"0471234567", true},
		{"+32471234567", true},
		{"0712345678", false},
		{"061234567", false},
		{"+33612345678", false},
	}
	rules := RuleSet{Phone(FieldPhoneNumber, "bad")}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			errs := rules.Validate(FormState{FieldPhoneNumber: tc.input}, Flags{})
			if errs.Valid() != tc.want {
				t.Errorf("phone %q valid = %v; want %v", tc.input, errs.Valid(), tc.want)
			}
		})
	}
}

func TestProjectBudgetRules(t *testing.T) {
	base := func() FormState {
		return FormState{
			FieldTitle:           "Badkamer renoveren",
			FieldDescription:     "Volledige renovatie",
			FieldCategory:        "plumbing",
			FieldLocationCity:    "Gent",
			FieldLocationCountry: "Belgium",
			FieldDeadline:        "2030-01-01",
		}
	}

	testCases := []struct {
		name      string
		min, max  any
		wantField string
	}{
		{"valid range", 1000.0, 5000.0, ""},
		{"zero minimum", 0.0, 5000.0, FieldBudgetMin},
		{"equal bounds", 5000.0, 5000.0, FieldBudgetMax},
		{"max below min", 5000.0, 1000.0, FieldBudgetMax},
		{"string numbers", "1000", "5000", ""},
		{"not a number", "abc", "5000", FieldBudgetMin},
		{"nan minimum", "NaN", "5000", FieldBudgetMin},
		{"nan both", "NaN", "NaN", FieldBudgetMin},
		{"infinite maximum", "100", "Inf", FieldBudgetMax},
		{"negative infinite minimum", "-Inf", "5000", FieldBudgetMin},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			form := base()
			form[FieldBudgetMin] = tc.min
			form[FieldBudgetMax] = tc.max
			errs := ProjectRules.Validate(form, Flags{})
			if tc.wantField == "" {
				if !errs.Valid() {
					t.Errorf("expected valid, got %v", errs)
				}
				return
			}
			if _, ok := errs[tc.wantField]; !ok {
				t.Errorf("expected error on %s, got %v", tc.wantField, errs)
			}
		})
	}
}

func TestValidateReportsAllFailures(t *testing.T) {
	errs := ProjectRules.Validate(FormState{}, Flags{})
	want := []string{
		FieldTitle, FieldDescription, FieldCategory, FieldBudgetMin, FieldBudgetMax,
		FieldLocationCity, FieldLocationCountry, FieldDeadline,
	}
	if len(errs) != len(want) {
		t.Fatalf("got %d errors, want %d: %v", len(errs), len(want), errs)
	}
	for _, f := range want {
		if _, ok := errs[f]; !ok {
			t.Errorf("missing error for %s", f)
		}
	}
	if !strings.HasPrefix(errs.Error(), "validation failed: budget.max:") {
		t.Errorf("Error() should list fields sorted, got %q", errs.Error())
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	form := validRegistration()
	form[FieldEmail] = "broken"
	form[FieldCompanyName] = ""
	snapshot := FormState{}
	for k, v := range form {
		snapshot[k] = v
	}

	first := RegistrationRules.Validate(form, Flags{UserType: "craftsman"})
	second := RegistrationRules.Validate(form, Flags{UserType: "craftsman"})
	if !reflect.DeepEqual(first, second) {
		t.Errorf("validation not idempotent: %v vs %v", first, second)
	}
	if !reflect.DeepEqual(form, snapshot) {
		t.Errorf("validation mutated the form")
	}
}

func TestLoginRules(t *testing.T) {
	testCases := []struct {
		name     string
		email    string
		password string
		want     ValidationErrors
	}{
		{"valid", "a@b.nl", "secret1", ValidationErrors{}},
		{"empty", "", "", ValidationErrors{FieldEmail: "Email is verplicht", FieldPassword: "Wachtwoord is verplicht"}},
		{"no at sign", "ab.nl", "secret1", ValidationErrors{FieldEmail: "Ongeldig email adres"}},
		{"short password", "a@b.nl", "12345", ValidationErrors{FieldPassword: "Wachtwoord moet minimaal 6 karakters bevatten"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := LoginRules.Validate(FormState{FieldEmail: tc.email, FieldPassword: tc.password}, Flags{})
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("LoginRules = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestFormClearsErrorOnEdit(t *testing.T) {
	form := NewForm(LoginRules, Flags{})
	if form.Submit() {
		t.Fatal("empty login form should not submit")
	}
	if _, ok := form.Errors[FieldEmail]; !ok {
		t.Fatal("expected email error")
	}

	form.Set(FieldEmail, "a@b.nl")
	if _, ok := form.Errors[FieldEmail]; ok {
		t.Error("editing email should clear its error")
	}
	if _, ok := form.Errors[FieldPassword]; !ok {
		t.Error("password error should remain until edited")
	}

	form.Set(FieldPassword, "secret1")
	if !form.Submit() {
		t.Errorf("expected valid form, got %v", form.Errors)
	}
}
