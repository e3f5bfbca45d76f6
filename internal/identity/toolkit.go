package identity

import (
	"context"

	"github.com/go-faster/errors"
	"google.golang.org/api/googleapi"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// ToolkitProvider signs shoppers in and up through the Google Identity
// Toolkit relying party API, which backs Firebase email/password accounts.
type ToolkitProvider struct {
	svc *identitytoolkit.Service
}

// NewToolkitProvider creates a provider authenticating with the project's web API key.
// Extra options are appended, which lets tests point the client at a fake endpoint.
func NewToolkitProvider(ctx context.Context, apiKey string, opts ...option.ClientOption) (*ToolkitProvider, error) {
	if apiKey == "" {
		return nil, errors.New("identity api key is required")
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create identity toolkit service")
	}

	return &ToolkitProvider{svc: svc}, nil
}

// SignIn verifies the email and password with the provider
func (p *ToolkitProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	resp, err := p.svc.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, toAuthError(err, "sign in")
	}

	return &Session{
		UserID:       resp.LocalId,
		Email:        resp.Email,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

// SignUp creates a new email/password account with the provider
func (p *ToolkitProvider) SignUp(ctx context.Context, email, password string) (*Session, error) {
	resp, err := p.svc.Relyingparty.SignupNewUser(&identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:    email,
		Password: password,
	}).Context(ctx).Do()
	if err != nil {
		return nil, toAuthError(err, "sign up")
	}

	return &Session{
		UserID:       resp.LocalId,
		Email:        resp.Email,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

// toAuthError turns 4xx responses into an AuthError carrying the provider
// message; anything else is a transport failure.
func toAuthError(err error, op string) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code >= 400 && apiErr.Code < 500 {
		return &AuthError{Code: apiErr.Code, Message: apiErr.Message}
	}
	return errors.Wrap(err, op)
}
