package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/rahulAtGit/ZentriqVision/application/commands"
	"github.com/rahulAtGit/ZentriqVision/application/ports"
	"github.com/rahulAtGit/ZentriqVision/application/queries"
	"github.com/rahulAtGit/ZentriqVision/domain/core/entities"
	"github.com/rahulAtGit/ZentriqVision/domain/core/valueobjects"
	"github.com/rahulAtGit/ZentriqVision/domain/events"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"

	"go.uber.org/zap"
)

// UpdateProfileHandler applies profile edits, last writer wins
type UpdateProfileHandler struct {
	store     ports.ItemStore
	publisher ports.EventPublisher
	clock     ports.Clock
	logger    *zap.Logger
}

// NewUpdateProfileHandler creates a new handler instance
func NewUpdateProfileHandler(store ports.ItemStore, publisher ports.EventPublisher, clock ports.Clock, logger *zap.Logger) *UpdateProfileHandler {
	if clock == nil {
		clock = time.Now
	}
	return &UpdateProfileHandler{
		store:     store,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// Handle executes the update profile command
func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd commands.UpdateProfileCommand) (*queries.ProfileResult, error) {
	now := h.clock()

	rec, err := h.store.Get(ctx, valueobjects.UserKey(cmd.UserID), valueobjects.ProfileKey(cmd.UserID))
	if err != nil {
		return nil, storeError("get_profile", err)
	}

	var profile *entities.UserProfile
	if rec == nil {
		profile, err = entities.NewUserProfile(cmd.UserID, cmd.Email, cmd.GivenName, cmd.OrgID, now)
	} else {
		profile, err = entities.DecodeUserProfile(rec)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load profile").WithCause(err)
	}

	if err := profile.ApplyUpdate(cmd.NewGivenName, cmd.PhoneNumber, now); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	item, err := entities.EncodeRecord(profile)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode profile").WithCause(err)
	}
	if err := h.store.Put(ctx, item); err != nil {
		return nil, storeError("put_profile", err)
	}

	var changed []string
	if cmd.NewGivenName != nil {
		changed = append(changed, "givenName")
	}
	if cmd.PhoneNumber != nil {
		changed = append(changed, "phoneNumber")
	}
	if err := h.publisher.Publish(ctx, events.NewUserProfileUpdated(cmd.UserID, changed, now)); err != nil {
		h.logger.Warn("Failed to publish profile event",
			zap.String("userID", cmd.UserID),
			zap.Error(err),
		)
	}

	h.logger.Info("User profile updated",
		zap.String("userID", cmd.UserID),
		zap.Strings("fields", changed),
	)
	return queries.PresentProfile(profile), nil
}

func storeError(op string, err error) error {
	if apperrors.IsAppError(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return apperrors.NewDatabaseError(op, err)
}
