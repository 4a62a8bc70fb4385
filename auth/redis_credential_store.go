package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	otpNamespace        = "otp"
	otpAttemptNamespace = "otp_attempts"
	resetNamespace      = "pwdreset"
)

// RedisCredentialStore backs the credential store with a shared cache so
// multiple nodes see the same OTP/reset records. Expiry is delegated to
// key TTLs; a missing key and an expired key are indistinguishable,
// which matches the store contract.
type RedisCredentialStore struct {
	client        redis.UniversalClient
	otpLifetime   time.Duration
	resetLifetime time.Duration
	logger        Logger
}

var _ CredentialStore = (*RedisCredentialStore)(nil)

// NewRedisCredentialStore creates a Redis-backed credential store
func NewRedisCredentialStore(client redis.UniversalClient, otpLifetime, resetLifetime time.Duration, logger Logger) *RedisCredentialStore {
	if otpLifetime <= 0 {
		otpLifetime = DefaultOTPLifetime
	}
	if resetLifetime <= 0 {
		resetLifetime = DefaultResetTokenLifetime
	}
	if logger == nil {
		logger = defLogger{}
	}

	return &RedisCredentialStore{
		client:        client,
		otpLifetime:   otpLifetime,
		resetLifetime: resetLifetime,
		logger:        logger,
	}
}

func nsKey(namespace, email string) string {
	return namespace + ":" + email
}

// StoreOTP overwrites the code and resets the attempt counter, both
// under the OTP lifetime TTL.
func (s *RedisCredentialStore) StoreOTP(ctx context.Context, email, code string) error {
	if err := s.client.Set(ctx, nsKey(otpNamespace, email), code, s.otpLifetime).Err(); err != nil {
		return err
	}
	return s.client.Set(ctx, nsKey(otpAttemptNamespace, email), 0, s.otpLifetime).Err()
}

// verifyOTPScript runs the whole check-and-consume sequence server-side
// in one atomic step, so concurrent verifications of the same email can
// never both observe a live code: exactly one caller gets 1 back for a
// matching code, every other path returns 0.
// KEYS[1] = code key, KEYS[2] = attempt counter, ARGV[1] = submitted
// code, ARGV[2] = attempt ceiling.
var verifyOTPScript = redis.NewScript(`
local code = redis.call('GET', KEYS[1])
if not code then
  return 0
end
local attempts = tonumber(redis.call('GET', KEYS[2])) or 0
if attempts >= tonumber(ARGV[2]) then
  redis.call('DEL', KEYS[1], KEYS[2])
  return 0
end
if code ~= ARGV[1] then
  redis.call('INCR', KEYS[2])
  return 0
end
redis.call('DEL', KEYS[1], KEYS[2])
return 1
`)

// VerifyOTP mirrors the in-memory semantics: absent or TTL-expired keys
// fail, the third failed attempt burns the record, a match consumes it.
// The consume runs as a single script so two concurrent calls with the
// correct code cannot both succeed.
func (s *RedisCredentialStore) VerifyOTP(ctx context.Context, email, code string) bool {
	keys := []string{nsKey(otpNamespace, email), nsKey(otpAttemptNamespace, email)}

	res, err := verifyOTPScript.Run(ctx, s.client, keys, code, MaxOTPAttempts).Int()
	if err != nil {
		s.logger.Error("redis otp verify failed", "error", err)
		return false
	}

	return res == 1
}

// GenerateResetToken mints and stores an opaque token under the reset
// lifetime TTL, overwriting any prior token for the email.
func (s *RedisCredentialStore) GenerateResetToken(ctx context.Context, email string) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, nsKey(resetNamespace, email), token, s.resetLifetime).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// VerifyResetToken checks for an exact match without consuming the
// token; TTL expiry surfaces as a missing key.
func (s *RedisCredentialStore) VerifyResetToken(ctx context.Context, email, token string) bool {
	stored, err := s.client.Get(ctx, nsKey(resetNamespace, email)).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Error("redis reset token lookup failed", "error", err)
		}
		return false
	}
	return stored == token
}

// ClearResetToken removes any stored token; idempotent.
func (s *RedisCredentialStore) ClearResetToken(ctx context.Context, email string) error {
	return s.client.Del(ctx, nsKey(resetNamespace, email)).Err()
}
