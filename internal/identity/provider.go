// Package identity connects the storefront to the external identity provider.
//
// The storefront never checks credentials itself. Sign-in and sign-up are
// forwarded to the provider and its error messages are surfaced verbatim.
package identity

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
)

// ErrNotConfigured is returned when no identity provider was set up
var ErrNotConfigured = errors.New("identity provider not configured")

// Session is an authenticated session issued by the provider
type Session struct {
	UserID       string `json:"uid"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthError is a rejection reported by the identity provider.
// Message is the provider's own text, e.g. EMAIL_EXISTS or INVALID_PASSWORD.
type AuthError struct {
	Code    int
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("identity provider rejected request: %s", e.Message)
}

// Provider signs shoppers in and up with email and password
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string) (*Session, error)
}

// Unconfigured is the Provider used when no identity provider is set up
type Unconfigured struct{}

func (Unconfigured) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) SignUp(ctx context.Context, email, password string) (*Session, error) {
	return nil, ErrNotConfigured
}
