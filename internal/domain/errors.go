package domain

import "errors"

var (
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrInvalidUsername   = errors.New("invalid username")
	ErrEmptyPasswordHash = errors.New("password hash must not be empty")

	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("email or username already exists")

	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("not a refresh token")
	ErrInvalidSubject = errors.New("invalid token subject")
	ErrTokenMismatch  = errors.New("refresh token does not match stored token")

	ErrInvalidArticleURL = errors.New("invalid article URL")
	ErrScrapeFailed      = errors.New("failed to scrape article")
	ErrUpstreamFetch     = errors.New("failed to fetch news articles")
)
