package repository

import (
	"context"
	"sync"

	"news-app/internal/domain"

	"github.com/google/uuid"
)

// FakeUserRepository is a test-only in-memory UserRepository. It keeps
// accounts in a map guarded by a mutex and exposes error fields for
// behavior injection.
type FakeUserRepository struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account

	CreateErr error
	GetErr    error
	UpdateErr error
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (f *FakeUserRepository) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.CreateErr != nil {
		return nil, f.CreateErr
	}

	for _, existing := range f.accounts {
		if existing.Email == account.Email || existing.Username == account.Username {
			return nil, domain.ErrDuplicateUser
		}
	}

	stored := *account
	stored.ID = uuid.NewString()
	f.accounts[stored.ID] = &stored

	copied := stored
	return &copied, nil
}

func (f *FakeUserRepository) GetByEmailOrUsername(_ context.Context, identifier string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.GetErr != nil {
		return nil, f.GetErr
	}

	for _, account := range f.accounts {
		if account.Email == identifier || account.Username == identifier {
			copied := *account
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *FakeUserRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.GetErr != nil {
		return nil, f.GetErr
	}

	account, ok := f.accounts[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *account
	return &copied, nil
}

func (f *FakeUserRepository) UpdateRefreshToken(_ context.Context, id string, token *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.UpdateErr != nil {
		return f.UpdateErr
	}

	account, ok := f.accounts[id]
	if !ok {
		return domain.ErrUserNotFound
	}

	if token == nil {
		account.RefreshToken = nil
		return nil
	}
	copied := *token
	account.RefreshToken = &copied
	return nil
}

func (f *FakeUserRepository) RotateRefreshToken(_ context.Context, id, presented, next string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.UpdateErr != nil {
		return f.UpdateErr
	}

	account, ok := f.accounts[id]
	if !ok {
		return domain.ErrTokenMismatch
	}
	if account.RefreshToken == nil || *account.RefreshToken != presented {
		return domain.ErrTokenMismatch
	}

	copied := next
	account.RefreshToken = &copied
	return nil
}

func (f *FakeUserRepository) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.accounts[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(f.accounts, id)
	return nil
}

// StoredRefreshToken exposes the current slot value for assertions.
func (f *FakeUserRepository) StoredRefreshToken(id string) *string {
	f.mu.Lock()
	defer f.mu.Unlock()

	account, ok := f.accounts[id]
	if !ok || account.RefreshToken == nil {
		return nil
	}
	copied := *account.RefreshToken
	return &copied
}
