package auth_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/logichain/backend/auth"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// fakeAccountStore is an in-memory AccountStore for flow tests
type fakeAccountStore struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*auth.Account

	createErr error
	lookupErr error
}

func newFakeAccountStore(seed ...*auth.Account) *fakeAccountStore {
	s := &fakeAccountStore{accounts: map[uuid.UUID]*auth.Account{}}
	for _, a := range seed {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		s.accounts[a.ID] = a
	}
	return s
}

func (s *fakeAccountStore) GetByID(_ context.Context, id uuid.UUID) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	if a, ok := s.accounts[id]; ok {
		return a, nil
	}
	return nil, errors.New("account not found", errors.CategoryNotFound)
}

func (s *fakeAccountStore) GetByEmail(_ context.Context, email string) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	for _, a := range s.accounts {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return nil, errors.New("account not found", errors.CategoryNotFound)
}

func (s *fakeAccountStore) GetByUsername(_ context.Context, username string) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, errors.New("account not found", errors.CategoryNotFound)
}

func (s *fakeAccountStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if strings.EqualFold(a.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeAccountStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeAccountStore) Create(_ context.Context, account *auth.Account) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	s.accounts[account.ID] = account
	return account, nil
}

func (s *fakeAccountStore) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return errors.New("account not found", errors.CategoryNotFound)
	}
	a.PasswordHash = passwordHash
	return nil
}

// fakeMailer records the last dispatched OTP and can simulate failure
type fakeMailer struct {
	mu       sync.Mutex
	lastTo   string
	lastCode string
	sendErr  error
}

func (m *fakeMailer) SendOTPEmail(_ context.Context, to, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.lastTo = to
	m.lastCode = code
	return nil
}

func (m *fakeMailer) sent() (string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastTo, m.lastCode
}

func mustHash(password string) string {
	h, err := auth.HashPassword(password)
	if err != nil {
		panic(err)
	}
	return h
}

func newTestTokenService() auth.TokenService {
	ts, err := auth.NewTokenService([]byte("test-signing-key"), time.Hour, "logichain-test", nil)
	if err != nil {
		panic(err)
	}
	return ts
}
