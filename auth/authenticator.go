package auth

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// AccountStore is the persistence surface the auth flows need; the
// repository package provides the bun-backed implementation.
type AccountStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, account *Account) (*Account, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// Registration outcome messages surfaced to the client
const (
	MsgRegisteredPending  = "Registration successful. Your account is pending approval from an administrator."
	MsgRegisteredApproved = "Registration successful. You can now login."
)

type RegisterMessage struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
}

type RegisterResult struct {
	Identity Identity `json:"identity"`
	Message  string   `json:"message"`
}

type LoginResult struct {
	Token    string   `json:"token"`
	Identity Identity `json:"identity"`
}

// Authenticator orchestrates registration and login: uniqueness checks,
// credential verification, approval gating, and token issuance.
type Authenticator struct {
	accounts AccountStore
	tokens   TokenService
	logger   Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(accounts AccountStore, tokens TokenService) *Authenticator {
	return &Authenticator{
		accounts: accounts,
		tokens:   tokens,
		logger:   defLogger{},
	}
}

func (s *Authenticator) WithLogger(logger Logger) *Authenticator {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Register checks email then username uniqueness before any write,
// hashes the credential, and persists the account with the role-derived
// approval status.
func (s *Authenticator) Register(ctx context.Context, msg RegisterMessage) (*RegisterResult, error) {
	role, ok := ParseRole(msg.Role)
	if !ok {
		return nil, errors.New("unknown or invalid role", errors.CategoryValidation).
			WithCode(errors.CodeBadRequest).
			WithMetadata(map[string]any{"role": msg.Role})
	}

	emailTaken, err := s.accounts.ExistsByEmail(ctx, msg.Email)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check email uniqueness")
	}

	usernameTaken, err := s.accounts.ExistsByUsername(ctx, msg.Username)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check username uniqueness")
	}

	if emailTaken {
		return nil, ErrDuplicateEmail
	}

	if usernameTaken {
		return nil, ErrDuplicateUsername
	}

	hash, err := HashPassword(msg.Password)
	if err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	account := &Account{
		Username:     msg.Username,
		Email:        msg.Email,
		PasswordHash: hash,
		Role:         role,
		Phone:        msg.Phone,
	}
	account.EnsureApprovalStatus()

	if account.ApprovalStatus == ApprovalApproved {
		now := time.Now()
		account.ApprovedAt = &now
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		// the unique constraints are the authoritative guard against
		// concurrent registrations that pass both pre-write checks
		if IsDuplicateFieldError(err) {
			return nil, errors.Wrap(err, errors.CategoryConflict, "email or username already exists").
				WithCode(errors.CodeConflict)
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "could not create account")
	}

	message := MsgRegisteredApproved
	if created.NeedsApproval() {
		message = MsgRegisteredPending
	}

	s.logger.Info("account registered", "email", created.Email, "role", created.Role, "status", created.ApprovalStatus)

	return &RegisterResult{
		Identity: IdentityOf(created),
		Message:  message,
	}, nil
}

// Login resolves the account by email, checks approval eligibility
// before touching the password so a blocked account learns its status,
// then verifies the credential and issues a session token. A missing
// account and a wrong password are indistinguishable to the caller.
func (s *Authenticator) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve account during login")
	}

	if !account.CanLogin() {
		s.logger.Warn("login blocked by approval status", "email", email, "status", account.ApprovalStatus)
		return nil, NewAccountDisabled(loginDenialMessage(account))
	}

	if err := ComparePasswordAndHash(password, account.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	identity := IdentityOf(account)

	token, err := s.tokens.Generate(identity)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to issue session token")
	}

	s.logger.Info("login successful", "email", email)

	return &LoginResult{
		Token:    token,
		Identity: identity,
	}, nil
}

func loginDenialMessage(account *Account) string {
	switch account.ApprovalStatus {
	case ApprovalPending:
		return "Your account is pending approval. Please wait for an administrator to approve your account."
	case ApprovalRejected:
		if reason := strings.TrimSpace(account.RejectionReason); reason != "" {
			return "Your account has been rejected. Reason: " + reason + ". Please contact an administrator."
		}
		return "Your account has been rejected. Please contact an administrator for more information."
	default:
		return "Your account is not active. Please contact an administrator."
	}
}
