// api/models/settings_models.go
package models

import "github.com/AbdulAhad210904/Pro-connect/internal/core"

// ChangePasswordRequest is the settings page password form.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (r ChangePasswordRequest) Form() core.FormState {
	return core.FormState{
		core.FieldCurrentPassword: r.CurrentPassword,
		core.FieldNewPassword:     r.NewPassword,
		core.FieldConfirmPassword: r.ConfirmPassword,
	}
}

// VerifyCodeRequest carries an email verification code.
type VerifyCodeRequest struct {
	Code string `json:"code"`
}

func (r VerifyCodeRequest) Form() core.FormState {
	return core.FormState{core.FieldVerificationCode: r.Code}
}

// PhoneOTPRequest asks for an OTP, or verifies one when OTP is set.
type PhoneOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	OTP         string `json:"otp,omitempty"`
}

func (r PhoneOTPRequest) Form() core.FormState {
	return core.FormState{
		core.FieldPhoneNumber:      r.PhoneNumber,
		core.FieldVerificationCode: r.OTP,
	}
}
