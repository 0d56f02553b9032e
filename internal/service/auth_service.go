package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"news-app/internal/domain"
	"news-app/internal/repository"
	"news-app/pkg/security"
	"news-app/pkg/token"
)

// AuthService owns the session-token lifecycle: password authentication,
// access/refresh pair issuance, single-slot refresh rotation and
// invalidation.
type AuthService struct {
	userRepo   repository.UserRepository
	hasher     security.Hasher
	codec      *token.Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

func NewAuthService(
	userRepo repository.UserRepository,
	hasher security.Hasher,
	codec *token.Codec,
	accessTTL, refreshTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		hasher:     hasher,
		codec:      codec,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}

	created, err := s.userRepo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			return nil, domain.ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("Registered new user %s", created.ID)
	return created, nil
}

// Authenticate looks up an account by email or username and checks the
// password. An unknown identifier and a wrong password return the same
// ErrInvalidCredentials, so callers cannot learn which part was wrong.
func (s *AuthService) Authenticate(ctx context.Context, identifier, password string) (*domain.Account, error) {
	account, err := s.userRepo.GetByEmailOrUsername(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return account, nil
}

// IssuePair signs a fresh access/refresh token pair for the account. It
// does not persist anything; the caller stores the refresh token.
func (s *AuthService) IssuePair(accountID string) (access, refresh string, err error) {
	access, err = s.codec.Encode(token.NewAccessClaims(accountID, s.accessTTL))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err = s.codec.Encode(token.NewRefreshClaims(accountID, s.refreshTTL))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return access, refresh, nil
}

// Login authenticates, issues a token pair and stores the refresh token in
// the account's single refresh slot.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.Account, string, string, error) {
	account, err := s.Authenticate(ctx, identifier, password)
	if err != nil {
		return nil, "", "", err
	}

	access, refresh, err := s.IssuePair(account.ID)
	if err != nil {
		return nil, "", "", err
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, account.ID, &refresh); err != nil {
		return nil, "", "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	log.Printf("User %s logged in", account.ID)
	return account, access, refresh, nil
}

// Refresh rotates a presented refresh token for a new pair. The presented
// token must decode, be typed "refresh", name an existing account and
// exactly equal the stored slot; the slot swap is a compare-and-swap, so
// a superseded or raced token fails with ErrTokenMismatch.
func (s *AuthService) Refresh(ctx context.Context, presented string) (access, refresh string, err error) {
	claims, err := s.codec.Decode(presented)
	if err != nil {
		return "", "", domain.ErrInvalidToken
	}

	if !claims.IsRefresh() {
		return "", "", domain.ErrWrongTokenType
	}

	if claims.Subject == "" {
		return "", "", domain.ErrInvalidSubject
	}

	account, err := s.userRepo.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", "", domain.ErrUserNotFound
		}
		return "", "", fmt.Errorf("failed to look up user: %w", err)
	}

	access, refresh, err = s.IssuePair(account.ID)
	if err != nil {
		return "", "", err
	}

	if err := s.userRepo.RotateRefreshToken(ctx, account.ID, presented, refresh); err != nil {
		if errors.Is(err, domain.ErrTokenMismatch) {
			return "", "", domain.ErrTokenMismatch
		}
		return "", "", fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return access, refresh, nil
}

// VerifyAccess validates an access token and loads its account. Every
// authenticated endpoint goes through here.
func (s *AuthService) VerifyAccess(ctx context.Context, presented string) (*domain.Account, error) {
	claims, err := s.codec.Decode(presented)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, domain.ErrInvalidSubject
	}

	account, err := s.userRepo.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return account, nil
}

// Invalidate clears the account's refresh-token slot. Idempotent: clearing
// an already-empty slot succeeds.
func (s *AuthService) Invalidate(ctx context.Context, accountID string) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, accountID, nil); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}

	log.Printf("User %s logged out", accountID)
	return nil
}

func (s *AuthService) Delete(ctx context.Context, accountID string) error {
	if err := s.userRepo.Delete(ctx, accountID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	log.Printf("User %s deleted", accountID)
	return nil
}
