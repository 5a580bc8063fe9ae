// internal/core/rulesets.go
package core

import "github.com/AbdulAhad210904/Pro-connect/internal/domain"

// Field names shared by the forms below and the request builders.
const (
	FieldFirstName              = "firstName"
	FieldLastName               = "lastName"
	FieldEmail                  = "email"
	FieldPassword               = "password"
	FieldConfirmPassword        = "confirmPassword"
	FieldPhoneNumber            = "phoneNumber"
	FieldDateOfBirth            = "dateOfBirth"
	FieldAddressStreet          = "address.street"
	FieldAddressCity            = "address.city"
	FieldAddressState           = "address.state"
	FieldAddressZipCode         = "address.zipCode"
	FieldAddressCountry         = "address.country"
	FieldCompanyName            = "companyName"
	FieldVatOrKvKNumber         = "vatOrKvKNumber"
	FieldProjectInterest        = "projectInterest"
	FieldOtherProjectInterest   = "otherProjectInterest"
	FieldProfilePicture         = "profilePicture"
	FieldIdentificationDocument = "identificationDocument"
	FieldCertificates           = "professionalCertificates"

	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldCategory        = "category"
	FieldSubCategory     = "subCategory"
	FieldBudgetMin       = "budget.min"
	FieldBudgetMax       = "budget.max"
	FieldBudgetCurrency  = "budget.currency"
	FieldLocationCity    = "location.city"
	FieldLocationState   = "location.state"
	FieldLocationCountry = "location.country"
	FieldDeadline        = "deadline"
	FieldProjectImages   = "projectImages"

	FieldCurrentPassword  = "currentPassword"
	FieldNewPassword      = "newPassword"
	FieldVerificationCode = "verificationCode"
)

// RegistrationRules validates the sign-up form. userType selects the
// craftsman-only and individual-only rules.
var RegistrationRules = RuleSet{
	Required(FieldFirstName, "Voornaam is verplicht"),
	Required(FieldLastName, "Achternaam is verplicht"),
	Required(FieldEmail, "E-mailadres is verplicht"),
	Email(FieldEmail, "Ongeldig e-mailadres formaat"),
	Required(FieldPassword, "Wachtwoord is verplicht"),
	Required(FieldDateOfBirth, "Geboortedatum is verplicht"),
	Required(FieldAddressCountry, "Land is verplicht"),
	EqualTo(FieldConfirmPassword, FieldPassword, "Wachtwoorden komen niet overeen"),
	Phone(FieldPhoneNumber, "Ongeldig telefoonnummer formaat"),

	TaxID(FieldVatOrKvKNumber, FieldAddressCountry,
		"BTW-nummer of KVK-nummer is verplicht voor vakmensen").
		OnlyIf(UserTypeIs(domain.UserTypeCraftsman)),
	Required(FieldCompanyName, "Bedrijfsnaam is verplicht").
		OnlyIf(UserTypeIs(domain.UserTypeCraftsman)),

	NonEmptySet(FieldProjectInterest, "Selecteer ten minste één projectinteresse").
		OnlyIf(UserTypeIs(domain.UserTypeIndividual)),
	Required(FieldOtherProjectInterest, "Specificeer andere projectinteresses").
		OnlyIf(UserTypeIs(domain.UserTypeIndividual)).
		OnlyIf(SetContains(FieldProjectInterest, OthersSentinel)),

	FilePresent(FieldIdentificationDocument, "Identificatiedocument is verplicht"),
}

// ProjectRules validates the post-a-project form.
var ProjectRules = RuleSet{
	Required(FieldTitle, "Title is required"),
	Required(FieldDescription, "Description is required"),
	Required(FieldCategory, "Category is required"),
	GreaterThan(FieldBudgetMin, 0, "Minimum budget must be greater than 0"),
	GreaterThanField(FieldBudgetMax, FieldBudgetMin, "Maximum budget must be greater than minimum"),
	Required(FieldLocationCity, "City is required"),
	Required(FieldLocationCountry, "Country is required"),
	Required(FieldDeadline, "Deadline is required"),
}

// LoginRules validates the login form.
var LoginRules = RuleSet{
	Required(FieldEmail, "Email is verplicht"),
	Contains(FieldEmail, "@", "Ongeldig email adres"),
	Required(FieldPassword, "Wachtwoord is verplicht"),
	MinLength(FieldPassword, 6, "Wachtwoord moet minimaal 6 karakters bevatten"),
}

// PasswordChangeRules validates the settings page password change.
var PasswordChangeRules = RuleSet{
	Required(FieldCurrentPassword, "Current password is required"),
	Required(FieldNewPassword, "New password is required"),
	EqualTo(FieldConfirmPassword, FieldNewPassword, "New password and confirm password do not match."),
}

// PasswordResetRules validates the forgot-password form.
var PasswordResetRules = RuleSet{
	Required(FieldEmail, "Email is verplicht"),
	Email(FieldEmail, "Ongeldig e-mailadres formaat"),
	Required(FieldVerificationCode, "Verification code is required"),
	Required(FieldNewPassword, "New password is required"),
	EqualTo(FieldConfirmPassword, FieldNewPassword, "Passwords do not match. Please try again."),
}

// PasswordResetRequestRules validates the "send me a reset code" step.
var PasswordResetRequestRules = RuleSet{
	Required(FieldEmail, "Email is verplicht"),
	Email(FieldEmail, "Ongeldig e-mailadres formaat"),
}

// VerificationCodeRules validates an email code or phone OTP entry.
var VerificationCodeRules = RuleSet{
	Required(FieldVerificationCode, "Verification code is required"),
}

// PhoneRules validates the phone number a verification OTP is sent to.
var PhoneRules = RuleSet{
	Required(FieldPhoneNumber, "Phone number is required"),
	Phone(FieldPhoneNumber, "Ongeldig telefoonnummer formaat"),
}
