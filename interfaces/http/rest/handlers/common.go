package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rahulAtGit/ZentriqVision/pkg/auth"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"

	"go.uber.org/zap"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

func respondJSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

// decodeJSON reads a JSON body. An empty body decodes to the zero value.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.NewValidationError("Invalid request body")
	}
	return nil
}

// currentUser returns the principal set by the auth middleware
func currentUser(r *http.Request) (*auth.UserContext, error) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}
	return user, nil
}
