package auth_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/logichain/backend/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := auth.GenerateOTP()
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestMemoryCredentialStore_VerifyOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("valid code verifies exactly once", func(t *testing.T) {
		store := auth.NewMemoryCredentialStore(0, 0)

		require.NoError(t, store.StoreOTP(ctx, "user@example.com", "123456"))

		assert.True(t, store.VerifyOTP(ctx, "user@example.com", "123456"))
		assert.False(t, store.VerifyOTP(ctx, "user@example.com", "123456"), "code must be single use")
	})

	t.Run("unknown email fails", func(t *testing.T) {
		store := auth.NewMemoryCredentialStore(0, 0)
		assert.False(t, store.VerifyOTP(ctx, "nobody@example.com", "123456"))
	})

	t.Run("mismatch keeps code alive until attempt ceiling", func(t *testing.T) {
		store := auth.NewMemoryCredentialStore(0, 0)
		require.NoError(t, store.StoreOTP(ctx, "user@example.com", "123456"))

		assert.False(t, store.VerifyOTP(ctx, "user@example.com", "000000"))
		assert.False(t, store.VerifyOTP(ctx, "user@example.com", "000001"))

		// two failures used, the correct code still works
		assert.True(t, store.VerifyOTP(ctx, "user@example.com", "123456"))
	})

	t.Run("third failure burns the record", func(t *testing.T) {
		store := auth.NewMemoryCredentialStore(0, 0)
		require.NoError(t, store.StoreOTP(ctx, "user@example.com", "123456"))

		for i := 0; i < auth.MaxOTPAttempts; i++ {
			assert.False(t, store.VerifyOTP(ctx, "user@example.com", "000000"))
		}

		assert.False(t, store.VerifyOTP(ctx, "user@example.com", "123456"),
			"correct code must fail after attempts are exhausted")
	})

	t.Run("expired code fails and is removed", func(t *testing.T) {
		now := time.Now()
		clock := func() time.Time { return now }
		store := auth.NewMemoryCredentialStore(5*time.Minute, 0, auth.WithStoreClock(func() time.Time { return clock() }))

		require.NoError(t, store.StoreOTP(ctx, "user@example.com", "123456"))

		clock = func() time.Time { return now.Add(5*time.Minute + time.Millisecond) }
		assert.False(t, store.VerifyOTP(ctx, "user@example.com", "123456"))

		// re-storing after expiry works as usual
		clock = func() time.Time { return now }
		require.NoError(t, store.StoreOTP(ctx, "user@example.com", "654321"))
		assert.True(t, store.VerifyOTP(ctx, "user@example.com", "654321"))
	})

	t.Run("overwrite replaces code and resets attempts", func(t *testing.T) {
		store := auth.NewMemoryCredentialStore(0, 0)
		require.NoError(t, store.StoreOTP(ctx, "user@example.com", "111111"))

		assert.False(t, store.VerifyOTP(ctx, "user@example.com", "000000"))
		assert.False(t, store.VerifyOTP(ctx, "user@example.com", "000000"))

		require.NoError(t, store.StoreOTP(ctx, "user@example.com", "222222"))

		assert.False(t, store.VerifyOTP(ctx, "user@example.com", "111111"), "old code must be gone")
		assert.False(t, store.VerifyOTP(ctx, "user@example.com", "000000"))
		assert.False(t, store.VerifyOTP(ctx, "user@example.com", "000001"))

		// fresh counter: still within the ceiling after three misses total
		assert.True(t, store.VerifyOTP(ctx, "user@example.com", "222222"))
	})

	t.Run("emails are independent", func(t *testing.T) {
		store := auth.NewMemoryCredentialStore(0, 0)
		require.NoError(t, store.StoreOTP(ctx, "a@example.com", "111111"))
		require.NoError(t, store.StoreOTP(ctx, "b@example.com", "222222"))

		assert.False(t, store.VerifyOTP(ctx, "a@example.com", "222222"))
		assert.True(t, store.VerifyOTP(ctx, "b@example.com", "222222"))
		assert.True(t, store.VerifyOTP(ctx, "a@example.com", "111111"))
	})
}

func TestMemoryCredentialStore_ResetTokens(t *testing.T) {
	ctx := context.Background()

	t.Run("verify does not consume the token", func(t *testing.T) {
		store := auth.NewMemoryCredentialStore(0, 0)

		token, err := store.GenerateResetToken(ctx, "user@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		assert.True(t, store.VerifyResetToken(ctx, "user@example.com", token))
		assert.True(t, store.VerifyResetToken(ctx, "user@example.com", token),
			"token stays valid until explicitly cleared")
	})

	t.Run("wrong token fails without side effects", func(t *testing.T) {
		store := auth.NewMemoryCredentialStore(0, 0)

		token, err := store.GenerateResetToken(ctx, "user@example.com")
		require.NoError(t, err)

		assert.False(t, store.VerifyResetToken(ctx, "user@example.com", "not-the-token"))
		assert.True(t, store.VerifyResetToken(ctx, "user@example.com", token))
	})

	t.Run("expired token fails and is removed", func(t *testing.T) {
		now := time.Now()
		clock := func() time.Time { return now }
		store := auth.NewMemoryCredentialStore(0, 15*time.Minute, auth.WithStoreClock(func() time.Time { return clock() }))

		token, err := store.GenerateResetToken(ctx, "user@example.com")
		require.NoError(t, err)

		clock = func() time.Time { return now.Add(15*time.Minute + time.Millisecond) }
		assert.False(t, store.VerifyResetToken(ctx, "user@example.com", token))
	})

	t.Run("new token overwrites the previous one", func(t *testing.T) {
		store := auth.NewMemoryCredentialStore(0, 0)

		first, err := store.GenerateResetToken(ctx, "user@example.com")
		require.NoError(t, err)

		second, err := store.GenerateResetToken(ctx, "user@example.com")
		require.NoError(t, err)
		require.NotEqual(t, first, second)

		assert.False(t, store.VerifyResetToken(ctx, "user@example.com", first))
		assert.True(t, store.VerifyResetToken(ctx, "user@example.com", second))
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		store := auth.NewMemoryCredentialStore(0, 0)

		token, err := store.GenerateResetToken(ctx, "user@example.com")
		require.NoError(t, err)

		require.NoError(t, store.ClearResetToken(ctx, "user@example.com"))
		require.NoError(t, store.ClearResetToken(ctx, "user@example.com"))

		assert.False(t, store.VerifyResetToken(ctx, "user@example.com", token))
	})
}
