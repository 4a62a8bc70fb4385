package auth_test

import (
	"context"
	"testing"

	"github.com/logichain/backend/auth"

	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticator_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("customer registers approved and may login immediately", func(t *testing.T) {
		store := newFakeAccountStore()
		svc := auth.NewAuthenticator(store, newTestTokenService())

		res, err := svc.Register(ctx, auth.RegisterMessage{
			Username: "jane",
			Email:    "jane@example.com",
			Password: "s3cret-password",
			Role:     auth.RoleCustomer,
		})
		require.NoError(t, err)

		assert.Equal(t, auth.MsgRegisteredApproved, res.Message)
		assert.Equal(t, auth.ApprovalApproved, res.Identity.ApprovalStatus)

		login, err := svc.Login(ctx, "jane@example.com", "s3cret-password")
		require.NoError(t, err)
		assert.NotEmpty(t, login.Token)
		assert.Equal(t, res.Identity.ID, login.Identity.ID)
	})

	t.Run("gated role registers pending", func(t *testing.T) {
		store := newFakeAccountStore()
		svc := auth.NewAuthenticator(store, newTestTokenService())

		res, err := svc.Register(ctx, auth.RegisterMessage{
			Username: "wm",
			Email:    "wm@example.com",
			Password: "s3cret-password",
			Role:     auth.RoleWarehouseManager,
		})
		require.NoError(t, err)

		assert.Equal(t, auth.MsgRegisteredPending, res.Message)
		assert.Equal(t, auth.ApprovalPending, res.Identity.ApprovalStatus)
	})

	t.Run("duplicate email wins over duplicate username", func(t *testing.T) {
		store := newFakeAccountStore(&auth.Account{
			Username: "taken",
			Email:    "taken@example.com",
			Role:     auth.RoleCustomer,
		})
		svc := auth.NewAuthenticator(store, newTestTokenService())

		_, err := svc.Register(ctx, auth.RegisterMessage{
			Username: "taken",
			Email:    "taken@example.com",
			Password: "s3cret-password",
			Role:     auth.RoleCustomer,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, auth.ErrDuplicateEmail))
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		store := newFakeAccountStore(&auth.Account{
			Username: "taken",
			Email:    "other@example.com",
			Role:     auth.RoleCustomer,
		})
		svc := auth.NewAuthenticator(store, newTestTokenService())

		_, err := svc.Register(ctx, auth.RegisterMessage{
			Username: "taken",
			Email:    "new@example.com",
			Password: "s3cret-password",
			Role:     auth.RoleCustomer,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, auth.ErrDuplicateUsername))
	})

	t.Run("unknown role rejected before any store access", func(t *testing.T) {
		store := newFakeAccountStore()
		svc := auth.NewAuthenticator(store, newTestTokenService())

		_, err := svc.Register(ctx, auth.RegisterMessage{
			Username: "x",
			Email:    "x@example.com",
			Password: "s3cret-password",
			Role:     "SUPERUSER",
		})
		require.Error(t, err)

		var richErr *errors.Error
		require.True(t, errors.As(err, &richErr))
		assert.Equal(t, errors.CategoryValidation, richErr.Category)
	})

	t.Run("empty password rejected", func(t *testing.T) {
		store := newFakeAccountStore()
		svc := auth.NewAuthenticator(store, newTestTokenService())

		_, err := svc.Register(ctx, auth.RegisterMessage{
			Username: "x",
			Email:    "x@example.com",
			Role:     auth.RoleCustomer,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, auth.ErrNoEmptyString))
	})
}

func TestAuthenticator_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("missing account and wrong password share one error", func(t *testing.T) {
		store := newFakeAccountStore(&auth.Account{
			Username:       "jane",
			Email:          "jane@example.com",
			PasswordHash:   mustHash("right-password"),
			Role:           auth.RoleCustomer,
			ApprovalStatus: auth.ApprovalApproved,
		})
		svc := auth.NewAuthenticator(store, newTestTokenService())

		_, missErr := svc.Login(ctx, "ghost@example.com", "whatever")
		_, pwdErr := svc.Login(ctx, "jane@example.com", "wrong-password")

		assert.True(t, errors.Is(missErr, auth.ErrInvalidCredentials))
		assert.True(t, errors.Is(pwdErr, auth.ErrInvalidCredentials))
		assert.Equal(t, missErr.Error(), pwdErr.Error())
	})

	t.Run("pending account is blocked before password check", func(t *testing.T) {
		store := newFakeAccountStore(&auth.Account{
			Username:       "wm",
			Email:          "wm@example.com",
			PasswordHash:   mustHash("right-password"),
			Role:           auth.RoleWarehouseManager,
			ApprovalStatus: auth.ApprovalPending,
		})
		svc := auth.NewAuthenticator(store, newTestTokenService())

		// even the correct password must not get through
		_, err := svc.Login(ctx, "wm@example.com", "right-password")
		require.Error(t, err)

		var richErr *errors.Error
		require.True(t, errors.As(err, &richErr))
		assert.Equal(t, auth.TextCodeAccountDisabled, richErr.TextCode)
		assert.Contains(t, richErr.Message, "pending approval")
	})

	t.Run("rejected account surfaces the stored reason", func(t *testing.T) {
		store := newFakeAccountStore(&auth.Account{
			Username:        "cs",
			Email:           "cs@example.com",
			PasswordHash:    mustHash("right-password"),
			Role:            auth.RoleCustomerSupport,
			ApprovalStatus:  auth.ApprovalRejected,
			RejectionReason: "Background check failed",
		})
		svc := auth.NewAuthenticator(store, newTestTokenService())

		_, err := svc.Login(ctx, "cs@example.com", "right-password")
		require.Error(t, err)

		var richErr *errors.Error
		require.True(t, errors.As(err, &richErr))
		assert.Contains(t, richErr.Message, "Reason: Background check failed")
	})

	t.Run("rejected account without reason gets the generic message", func(t *testing.T) {
		store := newFakeAccountStore(&auth.Account{
			Username:       "pm",
			Email:          "pm@example.com",
			PasswordHash:   mustHash("right-password"),
			Role:           auth.RoleProductManager,
			ApprovalStatus: auth.ApprovalRejected,
		})
		svc := auth.NewAuthenticator(store, newTestTokenService())

		_, err := svc.Login(ctx, "pm@example.com", "right-password")
		require.Error(t, err)

		var richErr *errors.Error
		require.True(t, errors.As(err, &richErr))
		assert.Contains(t, richErr.Message, "contact an administrator for more information")
	})

	t.Run("approved gated role logs in", func(t *testing.T) {
		store := newFakeAccountStore(&auth.Account{
			Username:       "wm",
			Email:          "wm@example.com",
			PasswordHash:   mustHash("right-password"),
			Role:           auth.RoleWarehouseManager,
			ApprovalStatus: auth.ApprovalApproved,
		})
		svc := auth.NewAuthenticator(store, newTestTokenService())

		res, err := svc.Login(ctx, "wm@example.com", "right-password")
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, auth.RoleWarehouseManager, res.Identity.Role)
	})
}
