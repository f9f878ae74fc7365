package handlers

import (
	"net/http"

	"github.com/rahulAtGit/ZentriqVision/application/services"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"

	"go.uber.org/zap"
)

// AuthHandler serves the public account endpoints
type AuthHandler struct {
	accounts *services.AccountService
	errors   *apperrors.ErrorHandler
	logger   *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accounts *services.AccountService, errs *apperrors.ErrorHandler, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		errors:   errs,
		logger:   logger,
	}
}

// SignUp handles POST /auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req services.SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.accounts.SignUp(r.Context(), req)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "User registered successfully. Please check your email for verification code.",
		"userId":        result.UserSub,
		"userConfirmed": result.UserConfirmed,
	}, h.logger)
}

// SignIn handles POST /auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req services.SignInRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	tokens, err := h.accounts.SignIn(r.Context(), req)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Sign in successful",
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"idToken":      tokens.IDToken,
		"expiresIn":    tokens.ExpiresIn,
	}, h.logger)
}

// ConfirmSignUp handles POST /auth/confirm
func (h *AuthHandler) ConfirmSignUp(w http.ResponseWriter, r *http.Request) {
	var req services.ConfirmSignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if err := h.accounts.ConfirmSignUp(r.Context(), req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Email confirmed successfully. You can now sign in.",
	}, h.logger)
}

// ForgotPassword handles POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req services.ForgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if err := h.accounts.ForgotPassword(r.Context(), req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Password reset code sent to your email",
	}, h.logger)
}

// ResetPassword handles POST /auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req services.ResetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if err := h.accounts.ResetPassword(r.Context(), req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Password reset successfully. You can now sign in with your new password.",
	}, h.logger)
}

// ValidateToken handles POST /auth/validate
func (h *AuthHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	var req services.ValidateTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	user, err := h.accounts.ValidateToken(r.Context(), req)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Token is valid",
		"user":    user,
	}, h.logger)
}
