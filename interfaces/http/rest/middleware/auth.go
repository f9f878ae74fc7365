package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rahulAtGit/ZentriqVision/pkg/auth"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"

	"github.com/awslabs/aws-lambda-go-api-proxy/core"
	"go.uber.org/zap"
)

// Authenticate resolves the principal of every request. Under API Gateway
// the Cognito authorizer claims are trusted as is; otherwise the bearer
// token is validated locally.
func Authenticate(validator auth.TokenValidator, errs *apperrors.ErrorHandler, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := principal(r, validator)
			if err != nil {
				logger.Debug("Authentication failed",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				errs.Handle(w, r, unauthorized(err))
				return
			}

			ctx := auth.SetUserInContext(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func principal(r *http.Request, validator auth.TokenValidator) (*auth.UserContext, error) {
	if proxyCtx, ok := core.GetAPIGatewayContextFromContext(r.Context()); ok {
		if claims, ok := proxyCtx.Authorizer["claims"].(map[string]interface{}); ok {
			return auth.UserFromAuthorizerClaims(claims)
		}
	}

	token := extractToken(r)
	if token == "" {
		return nil, auth.ErrMissingToken
	}
	if validator == nil {
		return nil, auth.ErrInvalidToken
	}
	return validator.ValidateToken(r.Context(), token)
}

func unauthorized(err error) error {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return apperrors.NewUnauthorizedError("Missing authorization header")
	case errors.Is(err, auth.ErrExpiredToken):
		return apperrors.NewUnauthorizedError("Token has expired")
	case errors.Is(err, auth.ErrInvalidSignature):
		return apperrors.NewUnauthorizedError("Invalid token signature")
	default:
		return apperrors.NewUnauthorizedError("Invalid token")
	}
}

// extractToken reads the bearer token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return authHeader
}

// RateLimit rejects clients over the limiter's budget, keyed by remote
// address. Place it after chi's RealIP so proxies are unwrapped.
func RateLimit(limiter auth.RateLimiter, errs *apperrors.ErrorHandler, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Error("Rate limiter error", zap.Error(err))
				errs.Handle(w, r, apperrors.NewInternalError("rate limiter unavailable"))
				return
			}
			if !allowed {
				limit, window := limiter.Limits()
				errs.Handle(w, r, apperrors.NewRateLimitError(limit, window.String()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr
func clientIP(r *http.Request) string {
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 && !strings.HasSuffix(addr, "]") {
		return addr[:idx]
	}
	return addr
}
