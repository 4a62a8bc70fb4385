package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/logichain/backend/auth"
)

// AuthHandlers exposes registration, login, and the password reset flow
type AuthHandlers struct {
	auther *auth.Authenticator
	reset  *auth.PasswordResetFlow
	logger auth.Logger
}

func NewAuthHandlers(auther *auth.Authenticator, reset *auth.PasswordResetFlow, logger auth.Logger) *AuthHandlers {
	return &AuthHandlers{
		auther: auther,
		reset:  reset,
		logger: logger,
	}
}

func (h *AuthHandlers) Register(c *fiber.Ctx) error {
	payload := new(RegisterPayload)

	if err := c.BodyParser(payload); err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RespondValidation(c, err)
	}

	result, err := h.auther.Register(c.UserContext(), auth.RegisterMessage{
		Username: payload.Username,
		Email:    payload.Email,
		Password: payload.Password,
		Role:     payload.Role,
		Phone:    payload.Phone,
	})
	if err != nil {
		return RespondError(c, err)
	}

	return RespondCreated(c, result.Message, result.Identity)
}

func (h *AuthHandlers) Login(c *fiber.Ctx) error {
	payload := new(LoginPayload)

	if err := c.BodyParser(payload); err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RespondValidation(c, err)
	}

	result, err := h.auther.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return RespondError(c, err)
	}

	return RespondOK(c, "Login successful", result)
}

func (h *AuthHandlers) ForgotPassword(c *fiber.Ctx) error {
	payload := new(ForgotPasswordPayload)

	if err := c.BodyParser(payload); err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RespondValidation(c, err)
	}

	if err := h.reset.ForgotPassword(c.UserContext(), payload.Email); err != nil {
		return RespondError(c, err)
	}

	return RespondOK(c, "OTP sent to your email", nil)
}

func (h *AuthHandlers) VerifyOTP(c *fiber.Ctx) error {
	payload := new(VerifyOTPPayload)

	if err := c.BodyParser(payload); err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RespondValidation(c, err)
	}

	token, err := h.reset.VerifyOTP(c.UserContext(), payload.Email, payload.OTP)
	if err != nil {
		return RespondError(c, err)
	}

	return RespondOK(c, "OTP verified successfully", fiber.Map{
		"reset_token": token,
	})
}

func (h *AuthHandlers) ResetPassword(c *fiber.Ctx) error {
	payload := new(ResetPasswordPayload)

	if err := c.BodyParser(payload); err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RespondValidation(c, err)
	}

	if err := h.reset.ResetPassword(c.UserContext(), payload.Email, payload.ResetToken, payload.NewPassword); err != nil {
		return RespondError(c, err)
	}

	return RespondOK(c, "Password reset successfully", nil)
}
