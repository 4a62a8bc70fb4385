package repository

import (
	"context"

	"github.com/logichain/backend/auth"

	"github.com/goliatone/go-errors"
)

// AdminSeed configures the default administrator bootstrap
type AdminSeed struct {
	Enabled  bool
	Username string
	Email    string
	Password string
}

// EnsureDefaultAdmin creates the bootstrap administrator account when
// enabled and absent. Existing accounts are left untouched, so rotating
// the seeded password happens through the normal reset flow.
func EnsureDefaultAdmin(ctx context.Context, accounts Accounts, seed AdminSeed, logger auth.Logger) error {
	if !seed.Enabled {
		return nil
	}

	exists, err := accounts.ExistsByEmail(ctx, seed.Email)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to check for default admin")
	}

	if exists {
		if logger != nil {
			logger.Debug("default admin present", "email", seed.Email)
		}
		return nil
	}

	hash, err := auth.HashPassword(seed.Password)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to hash default admin password")
	}

	if _, err := accounts.Create(ctx, &auth.Account{
		Username:       seed.Username,
		Email:          seed.Email,
		PasswordHash:   hash,
		Role:           auth.RoleAdmin,
		ApprovalStatus: auth.ApprovalApproved,
	}); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to create default admin")
	}

	if logger != nil {
		logger.Info("default admin created", "email", seed.Email)
	}
	return nil
}
