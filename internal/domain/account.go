package domain

import "time"

// Account is the stored representation of a registered user. It carries
// credential material and the current refresh-token slot, so it must never
// be serialized directly in a response; use Profile for that.
type Account struct {
	ID            string
	FirstName     string
	LastName      string
	Username      string
	Email         string
	PasswordHash  string
	RefreshToken  *string
	SavedArticles []string
	CreatedAt     time.Time
}

// Profile is the public projection of an Account.
type Profile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

func (a *Account) Profile() Profile {
	return Profile{
		ID:       a.ID,
		Email:    a.Email,
		Username: a.Username,
	}
}

func (a *Account) Validate() error {
	if a.Email == "" {
		return ErrInvalidEmail
	}
	if a.Username == "" {
		return ErrInvalidUsername
	}
	if a.PasswordHash == "" {
		return ErrEmptyPasswordHash
	}
	return nil
}
