package handler

import (
	"errors"
	"net/http"

	"github.com/teamfolio/teamfolio-go/internal/model"
	"github.com/teamfolio/teamfolio-go/internal/service"
)

// AuthHandler handles HTTP requests for registration, login and logout.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleRegister handles POST /api/auth/register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if !decodeJSON(w, r, maxJSONBody, &req) {
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameRequired),
			errors.Is(err, service.ErrEmailRequired),
			errors.Is(err, service.ErrPasswordRequired),
			errors.Is(err, service.ErrEmailTaken),
			errors.Is(err, service.ErrIDTaken):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			internalError(w, r, "register failed", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": model.NewUserResponse(user, registerProjection)})
}

// HandleLogin handles POST /api/auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, maxJSONBody, &req) {
		return
	}

	token, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired), errors.Is(err, service.ErrPasswordRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrUserNotRegistered), errors.Is(err, service.ErrWrongPassword):
			writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
		default:
			internalError(w, r, "login failed", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, model.TokenResponse{Token: token})
}

// HandleLogout handles POST /api/auth/logout requests. Tokens are not
// revoked; the client is told to drop its token cookie.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
