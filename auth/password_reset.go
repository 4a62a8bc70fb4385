package auth

import (
	"context"

	"github.com/goliatone/go-errors"
)

// PasswordResetFlow drives the three-step email reset protocol: request
// an OTP, trade the OTP for a reset token, trade the token for a new
// password. OTP codes are single use; reset tokens survive verification
// and are cleared only when the password write succeeds.
type PasswordResetFlow struct {
	accounts AccountStore
	store    CredentialStore
	mailer   Mailer
	logger   Logger
}

// NewPasswordResetFlow returns a new PasswordResetFlow
func NewPasswordResetFlow(accounts AccountStore, store CredentialStore, mailer Mailer) *PasswordResetFlow {
	return &PasswordResetFlow{
		accounts: accounts,
		store:    store,
		mailer:   mailer,
		logger:   defLogger{},
	}
}

func (f *PasswordResetFlow) WithLogger(logger Logger) *PasswordResetFlow {
	if logger != nil {
		f.logger = logger
	}
	return f
}

// ForgotPassword generates and stores a fresh OTP for the account and
// emails it. A repeat request overwrites the previous code and resets
// the attempt counter. Unknown emails are reported as not found; a
// dispatch failure after the code is stored surfaces as a server error
// so the client does not wait for mail that never left.
func (f *PasswordResetFlow) ForgotPassword(ctx context.Context, email string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return f.forgotPassword(ctx, email)
	}
}

func (f *PasswordResetFlow) forgotPassword(ctx context.Context, email string) error {
	if _, err := f.accounts.GetByEmail(ctx, email); err != nil {
		if errors.IsNotFound(err) {
			return ErrAccountNotFound
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to retrieve account")
	}

	code := GenerateOTP()
	if err := f.store.StoreOTP(ctx, email, code); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to store OTP")
	}

	if err := f.mailer.SendOTPEmail(ctx, email, code); err != nil {
		f.logger.Error("otp delivery failed", "email", email, "error", err)
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			return richErr
		}
		return errors.Wrap(err, ErrDeliveryFailure.Category, ErrDeliveryFailure.Message).
			WithTextCode(ErrDeliveryFailure.TextCode)
	}

	f.logger.Info("password reset otp issued", "email", email)
	return nil
}

// VerifyOTP exchanges a valid code for a reset token. All failure modes
// (unknown email, wrong code, expiry, attempt exhaustion) collapse into
// one error so the endpoint leaks nothing about which occurred.
func (f *PasswordResetFlow) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if !f.store.VerifyOTP(ctx, email, code) {
		return "", ErrInvalidOrExpired
	}

	token, err := f.store.GenerateResetToken(ctx, email)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to issue reset token")
	}

	f.logger.Info("otp verified, reset token issued", "email", email)
	return token, nil
}

// ResetPassword consumes a reset token and writes the new credential.
// The token stays valid until the password write succeeds; only then is
// it explicitly cleared, so a failed write leaves the user able to
// retry with the same token.
func (f *PasswordResetFlow) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return f.resetPassword(ctx, email, token, newPassword)
	}
}

func (f *PasswordResetFlow) resetPassword(ctx context.Context, email, token, newPassword string) error {
	if !f.store.VerifyResetToken(ctx, email, token) {
		return ErrInvalidOrExpired
	}

	account, err := f.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return ErrAccountNotFound
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to retrieve account")
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			return richErr
		}
		return errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	if err := f.accounts.UpdatePassword(ctx, account.ID, hash); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to persist new password")
	}

	if err := f.store.ClearResetToken(ctx, email); err != nil {
		// the password already changed; a dangling token expires on its own
		f.logger.Warn("failed to clear reset token", "email", email, "error", err)
	}

	f.logger.Info("password reset completed", "email", email)
	return nil
}
