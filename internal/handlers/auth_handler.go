package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/identity"
	"github.com/go-faster/errors"
)

// CredentialsRequest is the body of the sign-in and sign-up endpoints
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthHandler forwards credentials to the identity provider
type AuthHandler struct {
	provider identity.Provider
	log      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(provider identity.Provider, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		provider: provider,
		log:      log,
	}
}

// SignIn handles POST /api/auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "sign in", http.StatusOK, http.StatusUnauthorized, h.provider.SignIn)
}

// SignUp handles POST /api/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "sign up", http.StatusCreated, http.StatusBadRequest, h.provider.SignUp)
}

func (h *AuthHandler) handle(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	okStatus, rejectedStatus int,
	call func(ctx context.Context, email, password string) (*identity.Session, error),
) {
	var req CredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "Email and password are required", h.log)
		return
	}

	session, err := call(r.Context(), email, req.Password)
	if err != nil {
		var authErr *identity.AuthError
		switch {
		case errors.As(err, &authErr):
			h.log.Info("identity provider rejected "+op, "reason", authErr.Message)
			WriteError(w, rejectedStatus, authErr.Message, h.log)
		case errors.Is(err, identity.ErrNotConfigured):
			WriteError(w, http.StatusServiceUnavailable, "Authentication is not available", h.log)
		default:
			h.log.Error(op+" failed", "error", err)
			WriteError(w, http.StatusBadGateway, "Identity provider unavailable", h.log)
		}
		return
	}

	h.log.Info(op+" succeeded", "uid", session.UserID)
	WriteJSON(w, okStatus, session, h.log)
}
