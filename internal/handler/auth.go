package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"pizza-orders-be/internal/auth"
	"pizza-orders-be/internal/logger"
	"pizza-orders-be/internal/utils"

	"go.uber.org/zap"
)

type Authenticator interface {
	Authenticate(email, password string) (*auth.User, error)
}

type TokenIssuer interface {
	Generate(u auth.User) (string, error)
	TTL() time.Duration
}

type AuthHandler struct {
	authn        Authenticator
	tokens       TokenIssuer
	secureCookie bool
}

func NewAuthHandler(authn Authenticator, tokens TokenIssuer, secureCookie bool) *AuthHandler {
	return &AuthHandler{authn: authn, tokens: tokens, secureCookie: secureCookie}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	User          *auth.User `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.For(r.Context(), "handler", "Login")

	var req loginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		utils.WriteJSONError(w, "email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.authn.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Warn("login rejected", zap.String("email", req.Email))
			utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
			return
		}
		log.Error("authentication failed", zap.Error(err))
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	token, err := h.tokens.Generate(*user)
	if err != nil {
		log.Error("failed to sign session token", zap.Error(err))
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, auth.SessionCookie(token, h.tokens.TTL(), h.secureCookie))
	log.Info("login succeeded", zap.String("user_id", user.ID))
	utils.WriteJSON(w, http.StatusOK, sessionResponse{Authenticated: true, User: user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ClearedCookie(h.secureCookie))
	utils.WriteJSON(w, http.StatusOK, sessionResponse{})
}

func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		utils.WriteJSON(w, http.StatusOK, sessionResponse{})
		return
	}
	utils.WriteJSON(w, http.StatusOK, sessionResponse{Authenticated: true, User: user})
}
