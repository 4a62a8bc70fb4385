package auth

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
)

// MaxOTPAttempts is the verification attempt ceiling per stored code
const MaxOTPAttempts = 3

const (
	// DefaultOTPLifetime applies when no lifetime is configured
	DefaultOTPLifetime = 5 * time.Minute
	// DefaultResetTokenLifetime applies when no lifetime is configured
	DefaultResetTokenLifetime = 15 * time.Minute
)

// CredentialStore manages short-lived, single-use credential artifacts
// (OTP codes and password reset tokens) keyed by account email, with
// expiry and abuse limits. Implementations must be safe for concurrent
// use by independent request handlers.
type CredentialStore interface {
	StoreOTP(ctx context.Context, email, code string) error
	VerifyOTP(ctx context.Context, email, code string) bool
	GenerateResetToken(ctx context.Context, email string) (string, error)
	VerifyResetToken(ctx context.Context, email, token string) bool
	ClearResetToken(ctx context.Context, email string) error
}

// GenerateOTP produces a 6-digit numeric code from a cryptographically
// secure source, uniform over [100000, 999999]. No side effects.
func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand only fails when the platform entropy source is
		// broken, at which point issuing credentials is unsafe anyway.
		panic(err)
	}
	return big.NewInt(0).Add(n, big.NewInt(100000)).String()
}

type otpRecord struct {
	code      string
	expiresAt time.Time
	attempts  int
}

type resetTokenRecord struct {
	token     string
	expiresAt time.Time
}

// MemoryCredentialStore keeps records in per-key-atomic concurrent maps.
// Operations on different emails never block each other; same-key
// mutations are serialized by the map's per-entry compute semantics.
type MemoryCredentialStore struct {
	otps          *xsync.MapOf[string, *otpRecord]
	resetTokens   *xsync.MapOf[string, *resetTokenRecord]
	otpLifetime   time.Duration
	resetLifetime time.Duration
	now           func() time.Time
}

var _ CredentialStore = (*MemoryCredentialStore)(nil)

// MemoryStoreOption customizes store construction
type MemoryStoreOption func(*MemoryCredentialStore)

// WithStoreClock injects a custom clock (useful for tests)
func WithStoreClock(clock func() time.Time) MemoryStoreOption {
	return func(s *MemoryCredentialStore) {
		if clock != nil {
			s.now = clock
		}
	}
}

// NewMemoryCredentialStore creates an in-memory credential store. Zero
// lifetimes fall back to the 5-minute OTP / 15-minute reset defaults.
func NewMemoryCredentialStore(otpLifetime, resetLifetime time.Duration, opts ...MemoryStoreOption) *MemoryCredentialStore {
	if otpLifetime <= 0 {
		otpLifetime = DefaultOTPLifetime
	}
	if resetLifetime <= 0 {
		resetLifetime = DefaultResetTokenLifetime
	}

	s := &MemoryCredentialStore{
		otps:          xsync.NewMapOf[string, *otpRecord](),
		resetTokens:   xsync.NewMapOf[string, *resetTokenRecord](),
		otpLifetime:   otpLifetime,
		resetLifetime: resetLifetime,
		now:           time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// StoreOTP inserts or overwrites the OTP record for the email with a
// fresh attempt counter. At most one active OTP per email.
func (s *MemoryCredentialStore) StoreOTP(_ context.Context, email, code string) error {
	s.otps.Store(email, &otpRecord{
		code:      code,
		expiresAt: s.now().Add(s.otpLifetime),
	})
	return nil
}

// VerifyOTP checks the code against the stored record. Missing, expired
// and attempt-exhausted records are removed and fail; a mismatch burns
// one attempt but keeps the record; a match consumes the record.
func (s *MemoryCredentialStore) VerifyOTP(_ context.Context, email, code string) bool {
	verified := false

	s.otps.Compute(email, func(rec *otpRecord, loaded bool) (*otpRecord, bool) {
		if !loaded {
			return nil, true
		}

		if s.now().After(rec.expiresAt) {
			return nil, true
		}

		if rec.attempts >= MaxOTPAttempts {
			return nil, true
		}

		if rec.code != code {
			next := &otpRecord{
				code:      rec.code,
				expiresAt: rec.expiresAt,
				attempts:  rec.attempts + 1,
			}
			return next, false
		}

		verified = true
		return nil, true
	})

	return verified
}

// GenerateResetToken mints an opaque token and stores it for the email,
// overwriting any prior token. Only called after a successful VerifyOTP.
func (s *MemoryCredentialStore) GenerateResetToken(_ context.Context, email string) (string, error) {
	token := uuid.NewString()
	s.resetTokens.Store(email, &resetTokenRecord{
		token:     token,
		expiresAt: s.now().Add(s.resetLifetime),
	})
	return token, nil
}

// VerifyResetToken checks the token without consuming it; expired
// records are removed as a side effect. Deletion on success is explicit
// via ClearResetToken so the token stays valid between the verify and
// consume steps of the reset protocol.
func (s *MemoryCredentialStore) VerifyResetToken(_ context.Context, email, token string) bool {
	valid := false

	s.resetTokens.Compute(email, func(rec *resetTokenRecord, loaded bool) (*resetTokenRecord, bool) {
		if !loaded {
			return nil, true
		}

		if rec.token != token {
			return rec, false
		}

		if s.now().After(rec.expiresAt) {
			return nil, true
		}

		valid = true
		return rec, false
	})

	return valid
}

// ClearResetToken unconditionally removes any stored token; idempotent.
func (s *MemoryCredentialStore) ClearResetToken(_ context.Context, email string) error {
	s.resetTokens.Delete(email)
	return nil
}
