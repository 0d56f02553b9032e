package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"news-app/internal/domain"
	"news-app/internal/repository"
	"news-app/pkg/security"
	"news-app/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) (*AuthService, *repository.FakeUserRepository) {
	t.Helper()

	codec, err := token.NewCodec("test-secret-test-secret-test-secret", "HS256")
	require.NoError(t, err)

	repo := repository.NewFakeUserRepository()
	svc := NewAuthService(repo, security.NewArgon2Hasher(), codec, 15*time.Minute, 7*24*time.Hour)
	return svc, repo
}

func registerTestUser(t *testing.T, svc *AuthService, username, email, password string) *domain.Account {
	t.Helper()

	account, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Test",
		LastName:  "User",
		Username:  username,
		Email:     email,
		Password:  password,
	})
	require.NoError(t, err)
	return account
}

func TestAuthService_Register(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	account := registerTestUser(t, svc, "alice", "alice@example.com", "SecurePass123!")
	assert.NotEmpty(t, account.ID)
	assert.NotEmpty(t, account.PasswordHash)
	assert.NotEqual(t, "SecurePass123!", account.PasswordHash)

	found, err := svc.userRepo.GetByEmailOrUsername(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, found.ID)

	found, err = svc.userRepo.GetByEmailOrUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, account.ID, found.ID)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
	}{
		{"same email distinct username", "alice2", "alice@example.com"},
		{"same username distinct email", "alice", "alice2@example.com"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			svc, _ := newTestAuthService(t)
			registerTestUser(t, svc, "alice", "alice@example.com", "SecurePass123!")

			_, err := svc.Register(context.Background(), RegisterInput{
				Username: test.username,
				Email:    test.email,
				Password: "OtherPass123!",
			})
			assert.ErrorIs(t, err, domain.ErrDuplicateUser)
		})
	}
}

// Both an unknown identifier and a wrong password must surface the exact
// same error, so callers cannot learn which field was wrong.
func TestAuthService_Authenticate(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()
	registerTestUser(t, svc, "alice", "alice@example.com", "SecurePass123!")

	t.Run("by email", func(t *testing.T) {
		account, err := svc.Authenticate(ctx, "alice@example.com", "SecurePass123!")
		require.NoError(t, err)
		assert.Equal(t, "alice", account.Username)
	})

	t.Run("by username", func(t *testing.T) {
		account, err := svc.Authenticate(ctx, "alice", "SecurePass123!")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", account.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "alice@example.com", "WrongPass123!")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody@example.com", "SecurePass123!")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestAuthService_LoginStoresRefreshToken(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()
	registerTestUser(t, svc, "alice", "alice@example.com", "SecurePass123!")

	account, access, refresh, err := svc.Login(ctx, "alice", "SecurePass123!")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	stored := repo.StoredRefreshToken(account.ID)
	require.NotNil(t, stored)
	assert.Equal(t, refresh, *stored, "the slot must hold exactly the issued refresh token")
}

func TestAuthService_RefreshRotation(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()
	registerTestUser(t, svc, "alice", "alice@example.com", "SecurePass123!")

	account, _, original, err := svc.Login(ctx, "alice", "SecurePass123!")
	require.NoError(t, err)

	// First rotation succeeds and overwrites the slot.
	_, rotated, err := svc.Refresh(ctx, original)
	require.NoError(t, err)
	assert.NotEqual(t, original, rotated)

	stored := repo.StoredRefreshToken(account.ID)
	require.NotNil(t, stored)
	assert.Equal(t, rotated, *stored)

	// Replaying the superseded token must fail.
	_, _, err = svc.Refresh(ctx, original)
	assert.ErrorIs(t, err, domain.ErrTokenMismatch)

	// The freshly rotated token keeps working.
	_, _, err = svc.Refresh(ctx, rotated)
	assert.NoError(t, err)
}

func TestAuthService_RefreshRejections(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()
	registerTestUser(t, svc, "alice", "alice@example.com", "SecurePass123!")

	t.Run("garbage token", func(t *testing.T) {
		_, _, err := svc.Refresh(ctx, "not.a.token")
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("access token presented as refresh", func(t *testing.T) {
		account, access, _, err := svc.Login(ctx, "alice", "SecurePass123!")
		require.NoError(t, err)
		_ = account

		_, _, err = svc.Refresh(ctx, access)
		assert.ErrorIs(t, err, domain.ErrWrongTokenType)
	})

	t.Run("subject account deleted", func(t *testing.T) {
		account, _, refresh, err := svc.Login(ctx, "alice", "SecurePass123!")
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, account.ID))

		_, _, err = svc.Refresh(ctx, refresh)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestAuthService_InvalidateClearsSlot(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()
	registerTestUser(t, svc, "alice", "alice@example.com", "SecurePass123!")

	account, _, refresh, err := svc.Login(ctx, "alice", "SecurePass123!")
	require.NoError(t, err)

	require.NoError(t, svc.Invalidate(ctx, account.ID))
	assert.Nil(t, repo.StoredRefreshToken(account.ID))

	// A previously valid refresh token no longer matches the cleared slot.
	_, _, err = svc.Refresh(ctx, refresh)
	assert.ErrorIs(t, err, domain.ErrTokenMismatch)

	// Invalidate is idempotent.
	assert.NoError(t, svc.Invalidate(ctx, account.ID))
}

// Two concurrent refresh calls presenting the same valid token: exactly one
// wins, the other observes a rotated-out slot.
func TestAuthService_ConcurrentRefresh(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()
	registerTestUser(t, svc, "alice", "alice@example.com", "SecurePass123!")

	_, _, refresh, err := svc.Login(ctx, "alice", "SecurePass123!")
	require.NoError(t, err)

	const callers = 2
	errs := make([]error, callers)

	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer done.Done()
			start.Wait()
			_, _, errs[i] = svc.Refresh(ctx, refresh)
		}(i)
	}
	start.Done()
	done.Wait()

	var successes, mismatches int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, domain.ErrTokenMismatch):
			mismatches++
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent refresh must win")
	assert.Equal(t, callers-1, mismatches)
}

func TestAuthService_VerifyAccess(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()
	registered := registerTestUser(t, svc, "alice", "alice@example.com", "SecurePass123!")

	_, access, _, err := svc.Login(ctx, "alice", "SecurePass123!")
	require.NoError(t, err)

	account, err := svc.VerifyAccess(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, account.ID)

	_, err = svc.VerifyAccess(ctx, "bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	require.NoError(t, svc.Delete(ctx, registered.ID))
	_, err = svc.VerifyAccess(ctx, access)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
