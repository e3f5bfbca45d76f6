package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/identity"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
)

type fakeProvider struct {
	users map[string]string
	down  bool
}

func (p *fakeProvider) SignIn(ctx context.Context, email, password string) (*identity.Session, error) {
	if p.down {
		return nil, errors.New("connection refused")
	}
	if pw, ok := p.users[email]; !ok || pw != password {
		return nil, &identity.AuthError{Code: http.StatusBadRequest, Message: "INVALID_LOGIN_CREDENTIALS"}
	}
	return &identity.Session{UserID: "uid-" + email, Email: email, IDToken: "id-token"}, nil
}

func (p *fakeProvider) SignUp(ctx context.Context, email, password string) (*identity.Session, error) {
	if _, ok := p.users[email]; ok {
		return nil, &identity.AuthError{Code: http.StatusBadRequest, Message: "EMAIL_EXISTS"}
	}
	p.users[email] = password
	return &identity.Session{UserID: "uid-" + email, Email: email, IDToken: "id-token"}, nil
}

func TestAuthHandler(t *testing.T) {
	provider := &fakeProvider{users: map[string]string{"asha@kart.example": "s3cret!"}}
	handler := NewAuthHandler(provider, logger.New("error"))

	tests := []struct {
		name            string
		handler         http.HandlerFunc
		body            string
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:           "sign in",
			handler:        handler.SignIn,
			body:           `{"email":"asha@kart.example","password":"s3cret!"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:            "sign in with wrong password",
			handler:         handler.SignIn,
			body:            `{"email":"asha@kart.example","password":"guess"}`,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "INVALID_LOGIN_CREDENTIALS",
		},
		{
			name:           "sign up",
			handler:        handler.SignUp,
			body:           `{"email":"ravi@kart.example","password":"hunter22"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:            "sign up existing email",
			handler:         handler.SignUp,
			body:            `{"email":"asha@kart.example","password":"another1"}`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "EMAIL_EXISTS",
		},
		{
			name:            "missing password",
			handler:         handler.SignIn,
			body:            `{"email":"asha@kart.example"}`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Email and password are required",
		},
		{
			name:           "malformed body",
			handler:        handler.SignUp,
			body:           `{"email":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			tt.handler(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			if tt.expectedMessage != "" {
				var response map[string]string
				if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
					t.Fatalf("failed to decode error response: %v", err)
				}
				if response["error"] != tt.expectedMessage {
					t.Errorf("expected error %q, got %q", tt.expectedMessage, response["error"])
				}
			}
		})
	}
}

func TestAuthHandler_ProviderUnavailable(t *testing.T) {
	log := logger.New("error")
	body := `{"email":"asha@kart.example","password":"s3cret!"}`

	tests := []struct {
		name           string
		provider       identity.Provider
		expectedStatus int
	}{
		{name: "not configured", provider: identity.Unconfigured{}, expectedStatus: http.StatusServiceUnavailable},
		{name: "provider down", provider: &fakeProvider{down: true}, expectedStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(tt.provider, log)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", strings.NewReader(body))
			w := httptest.NewRecorder()

			handler.SignIn(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}
