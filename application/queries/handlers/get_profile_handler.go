package handlers

import (
	"context"
	"time"

	"github.com/rahulAtGit/ZentriqVision/application/ports"
	"github.com/rahulAtGit/ZentriqVision/application/queries"
	"github.com/rahulAtGit/ZentriqVision/domain/core/entities"
	"github.com/rahulAtGit/ZentriqVision/domain/core/valueobjects"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"

	"go.uber.org/zap"
)

// GetProfileHandler reads the caller's profile
type GetProfileHandler struct {
	store  ports.ItemStore
	clock  ports.Clock
	logger *zap.Logger
}

// NewGetProfileHandler creates a new profile handler
func NewGetProfileHandler(store ports.ItemStore, clock ports.Clock, logger *zap.Logger) *GetProfileHandler {
	if clock == nil {
		clock = time.Now
	}
	return &GetProfileHandler{
		store:  store,
		clock:  clock,
		logger: logger,
	}
}

// Handle returns the stored profile, creating the default one on first read
func (h *GetProfileHandler) Handle(ctx context.Context, query queries.GetProfileQuery) (*queries.ProfileResult, error) {
	rec, err := h.store.Get(ctx, valueobjects.UserKey(query.UserID), valueobjects.ProfileKey(query.UserID))
	if err != nil {
		return nil, storeFailure("get_profile", err)
	}

	if rec != nil {
		profile, err := entities.DecodeUserProfile(rec)
		if err != nil {
			return nil, apperrors.NewInternalError("stored profile is malformed").WithCause(err)
		}
		return queries.PresentProfile(profile), nil
	}

	profile, err := entities.NewUserProfile(query.UserID, query.Email, query.GivenName, query.OrgID, h.clock())
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	item, err := entities.EncodeRecord(profile)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode profile").WithCause(err)
	}
	if err := h.store.Put(ctx, item); err != nil {
		return nil, storeFailure("put_profile", err)
	}

	h.logger.Info("Created default user profile",
		zap.String("userID", query.UserID),
		zap.String("orgID", query.OrgID),
	)
	return queries.PresentProfile(profile), nil
}
