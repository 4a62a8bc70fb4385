package server

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/logichain/backend/auth"
)

// RegisterPayload is the registration request body
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
}

// Validate will validate the payload
func (r RegisterPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&r.Role, validation.Required, validation.In(anyRole()...)),
		validation.Field(&r.Phone, validation.Length(7, 15)),
	)
}

func anyRole() []any {
	roles := auth.GetAllRoles()
	out := make([]any, len(roles))
	for i, r := range roles {
		out[i] = r
	}
	return out
}

// LoginPayload is the login request body
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will validate the payload
func (l LoginPayload) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Email, validation.Required, is.Email),
		validation.Field(&l.Password, validation.Required),
	)
}

// ForgotPasswordPayload starts the reset flow
type ForgotPasswordPayload struct {
	Email string `json:"email"`
}

// Validate will validate the payload
func (f ForgotPasswordPayload) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, validation.Required, is.Email),
	)
}

// VerifyOTPPayload trades a code for a reset token
type VerifyOTPPayload struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// Validate will validate the payload
func (v VerifyOTPPayload) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.Email, validation.Required, is.Email),
		validation.Field(&v.OTP, validation.Required, validation.Length(6, 6), is.Digit),
	)
}

// ResetPasswordPayload finishes the reset flow
type ResetPasswordPayload struct {
	Email       string `json:"email"`
	ResetToken  string `json:"reset_token"`
	NewPassword string `json:"new_password"`
}

// Validate will validate the payload
func (r ResetPasswordPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.ResetToken, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(8, 100)),
	)
}

// UpdateProfilePayload edits the caller's own account
type UpdateProfilePayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Validate will validate the payload
func (u UpdateProfilePayload) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Username, validation.Length(3, 50)),
		validation.Field(&u.Email, validation.Length(6, 100), is.Email),
		validation.Field(&u.Phone, validation.Length(7, 15)),
	)
}

// ChangePasswordPayload rotates the caller's own credential
type ChangePasswordPayload struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Validate will validate the payload
func (p ChangePasswordPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.CurrentPassword, validation.Required),
		validation.Field(&p.NewPassword, validation.Required, validation.Length(8, 100)),
	)
}

// ApprovalPayload moves an account through the approval state machine
type ApprovalPayload struct {
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason"`
}

// Validate will validate the payload
func (a ApprovalPayload) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Status, validation.Required, validation.In(
			auth.ApprovalApproved,
			auth.ApprovalRejected,
			auth.ApprovalPending,
		)),
		validation.Field(&a.RejectionReason, validation.Length(0, 500)),
	)
}
