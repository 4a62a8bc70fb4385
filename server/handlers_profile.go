package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/logichain/backend/auth"
	"github.com/logichain/backend/repository"
)

// ProfileHandlers lets any authenticated account read and edit itself
type ProfileHandlers struct {
	accounts repository.Accounts
	logger   auth.Logger
}

func NewProfileHandlers(accounts repository.Accounts, logger auth.Logger) *ProfileHandlers {
	return &ProfileHandlers{accounts: accounts, logger: logger}
}

func (h *ProfileHandlers) currentAccount(c *fiber.Ctx) (*auth.Account, error) {
	claims := ClaimsFromCtx(c)
	if claims == nil {
		return nil, auth.ErrUnauthenticated
	}

	id, err := uuid.Parse(claims.AccountID())
	if err != nil {
		return nil, auth.ErrUnauthenticated
	}

	account, err := h.accounts.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, auth.ErrAccountNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load account")
	}

	return account, nil
}

func (h *ProfileHandlers) Get(c *fiber.Ctx) error {
	account, err := h.currentAccount(c)
	if err != nil {
		return RespondError(c, err)
	}

	return RespondOK(c, "Profile retrieved", auth.IdentityOf(account))
}

// Update edits username, email, or phone. Uniqueness is re-checked for
// any identifier that actually changes.
func (h *ProfileHandlers) Update(c *fiber.Ctx) error {
	payload := new(UpdateProfilePayload)

	if err := c.BodyParser(payload); err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RespondValidation(c, err)
	}

	account, err := h.currentAccount(c)
	if err != nil {
		return RespondError(c, err)
	}

	ctx := c.UserContext()

	if payload.Email != "" && payload.Email != account.Email {
		taken, err := h.accounts.ExistsByEmail(ctx, payload.Email)
		if err != nil {
			return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "failed to check email uniqueness"))
		}
		if taken {
			return RespondError(c, auth.ErrDuplicateEmail)
		}
		account.Email = payload.Email
	}

	if payload.Username != "" && payload.Username != account.Username {
		taken, err := h.accounts.ExistsByUsername(ctx, payload.Username)
		if err != nil {
			return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "failed to check username uniqueness"))
		}
		if taken {
			return RespondError(c, auth.ErrDuplicateUsername)
		}
		account.Username = payload.Username
	}

	if payload.Phone != "" {
		account.Phone = payload.Phone
	}

	updated, err := h.accounts.UpdateProfile(ctx, account)
	if err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "failed to update profile"))
	}

	return RespondOK(c, "Profile updated", auth.IdentityOf(updated))
}

// ChangePassword rotates the credential after verifying the current one
func (h *ProfileHandlers) ChangePassword(c *fiber.Ctx) error {
	payload := new(ChangePasswordPayload)

	if err := c.BodyParser(payload); err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RespondValidation(c, err)
	}

	account, err := h.currentAccount(c)
	if err != nil {
		return RespondError(c, err)
	}

	if err := auth.ComparePasswordAndHash(payload.CurrentPassword, account.PasswordHash); err != nil {
		return RespondError(c, auth.ErrInvalidCredentials)
	}

	hash, err := auth.HashPassword(payload.NewPassword)
	if err != nil {
		return RespondError(c, err)
	}

	if err := h.accounts.UpdatePassword(c.UserContext(), account.ID, hash); err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "failed to persist new password"))
	}

	return RespondOK(c, "Password changed successfully", nil)
}
