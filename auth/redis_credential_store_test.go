package auth_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/logichain/backend/auth"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*auth.RedisCredentialStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return auth.NewRedisCredentialStore(client, time.Minute, time.Minute, nil), mr
}

func TestRedisCredentialStore_VerifyOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("correct code verifies exactly once", func(t *testing.T) {
		store, _ := newRedisStore(t)
		require.NoError(t, store.StoreOTP(ctx, "jane@example.com", "123456"))

		assert.True(t, store.VerifyOTP(ctx, "jane@example.com", "123456"))
		assert.False(t, store.VerifyOTP(ctx, "jane@example.com", "123456"), "code must be consumed")
	})

	t.Run("unknown email fails", func(t *testing.T) {
		store, _ := newRedisStore(t)
		assert.False(t, store.VerifyOTP(ctx, "ghost@example.com", "123456"))
	})

	t.Run("mismatches burn attempts but keep the code alive", func(t *testing.T) {
		store, _ := newRedisStore(t)
		require.NoError(t, store.StoreOTP(ctx, "jane@example.com", "123456"))

		assert.False(t, store.VerifyOTP(ctx, "jane@example.com", "000000"))
		assert.False(t, store.VerifyOTP(ctx, "jane@example.com", "111111"))
		assert.True(t, store.VerifyOTP(ctx, "jane@example.com", "123456"))
	})

	t.Run("attempt ceiling burns the record", func(t *testing.T) {
		store, _ := newRedisStore(t)
		require.NoError(t, store.StoreOTP(ctx, "jane@example.com", "123456"))

		for i := 0; i < auth.MaxOTPAttempts; i++ {
			assert.False(t, store.VerifyOTP(ctx, "jane@example.com", "000000"))
		}

		assert.False(t, store.VerifyOTP(ctx, "jane@example.com", "123456"),
			"correct code must fail after the ceiling")
	})

	t.Run("overwrite resets the attempt counter", func(t *testing.T) {
		store, _ := newRedisStore(t)
		require.NoError(t, store.StoreOTP(ctx, "jane@example.com", "123456"))

		assert.False(t, store.VerifyOTP(ctx, "jane@example.com", "000000"))
		assert.False(t, store.VerifyOTP(ctx, "jane@example.com", "000000"))

		require.NoError(t, store.StoreOTP(ctx, "jane@example.com", "654321"))

		assert.False(t, store.VerifyOTP(ctx, "jane@example.com", "000000"))
		assert.True(t, store.VerifyOTP(ctx, "jane@example.com", "654321"))
	})

	t.Run("ttl expiry fails the code", func(t *testing.T) {
		store, mr := newRedisStore(t)
		require.NoError(t, store.StoreOTP(ctx, "jane@example.com", "123456"))

		mr.FastForward(2 * time.Minute)

		assert.False(t, store.VerifyOTP(ctx, "jane@example.com", "123456"))
	})
}

func TestRedisCredentialStore_SingleUseUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)

	require.NoError(t, store.StoreOTP(ctx, "jane@example.com", "123456"))

	var wg sync.WaitGroup
	var hits int32
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if store.VerifyOTP(ctx, "jane@example.com", "123456") {
				atomic.AddInt32(&hits, 1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, hits, "concurrent verifications must consume the code once")
}

func TestRedisCredentialStore_ResetToken(t *testing.T) {
	ctx := context.Background()

	t.Run("verification does not consume the token", func(t *testing.T) {
		store, _ := newRedisStore(t)

		token, err := store.GenerateResetToken(ctx, "jane@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		assert.True(t, store.VerifyResetToken(ctx, "jane@example.com", token))
		assert.True(t, store.VerifyResetToken(ctx, "jane@example.com", token))
	})

	t.Run("wrong token fails without clearing", func(t *testing.T) {
		store, _ := newRedisStore(t)

		token, err := store.GenerateResetToken(ctx, "jane@example.com")
		require.NoError(t, err)

		assert.False(t, store.VerifyResetToken(ctx, "jane@example.com", "not-the-token"))
		assert.True(t, store.VerifyResetToken(ctx, "jane@example.com", token))
	})

	t.Run("regeneration invalidates the prior token", func(t *testing.T) {
		store, _ := newRedisStore(t)

		first, err := store.GenerateResetToken(ctx, "jane@example.com")
		require.NoError(t, err)

		second, err := store.GenerateResetToken(ctx, "jane@example.com")
		require.NoError(t, err)

		assert.False(t, store.VerifyResetToken(ctx, "jane@example.com", first))
		assert.True(t, store.VerifyResetToken(ctx, "jane@example.com", second))
	})

	t.Run("clear removes the token and is idempotent", func(t *testing.T) {
		store, _ := newRedisStore(t)

		token, err := store.GenerateResetToken(ctx, "jane@example.com")
		require.NoError(t, err)

		require.NoError(t, store.ClearResetToken(ctx, "jane@example.com"))
		assert.False(t, store.VerifyResetToken(ctx, "jane@example.com", token))

		require.NoError(t, store.ClearResetToken(ctx, "jane@example.com"))
	})

	t.Run("ttl expiry fails the token", func(t *testing.T) {
		store, mr := newRedisStore(t)

		token, err := store.GenerateResetToken(ctx, "jane@example.com")
		require.NoError(t, err)

		mr.FastForward(2 * time.Minute)

		assert.False(t, store.VerifyResetToken(ctx, "jane@example.com", token))
	})
}
