package handlers

import (
	"net/http"

	"github.com/rahulAtGit/ZentriqVision/application/commands"
	"github.com/rahulAtGit/ZentriqVision/application/commands/bus"
	"github.com/rahulAtGit/ZentriqVision/application/queries"
	querybus "github.com/rahulAtGit/ZentriqVision/application/queries/bus"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"

	"go.uber.org/zap"
)

// ProfileHandler serves the caller's own profile
type ProfileHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *apperrors.ErrorHandler
	logger     *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errs *apperrors.ErrorHandler,
	logger *zap.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errs,
		logger:     logger,
	}
}

// UpdateProfileRequest is the body of PUT /user/profile. Other fields are ignored.
type UpdateProfileRequest struct {
	GivenName   *string `json:"givenName"`
	PhoneNumber *string `json:"phoneNumber"`
}

// GetProfile handles GET /user/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetProfileQuery{
		UserID:    user.UserID,
		Email:     user.Email,
		GivenName: user.GivenName,
		OrgID:     user.OrgID,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result, h.logger)
}

// UpdateProfile handles PUT /user/profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	var req UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.UpdateProfileCommand{
		UserID:       user.UserID,
		Email:        user.Email,
		GivenName:    user.GivenName,
		OrgID:        user.OrgID,
		NewGivenName: req.GivenName,
		PhoneNumber:  req.PhoneNumber,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result, h.logger)
}
