package handlers

import (
	"context"
	"time"

	"github.com/rahulAtGit/ZentriqVision/application/commands"
	"github.com/rahulAtGit/ZentriqVision/application/ports"
	"github.com/rahulAtGit/ZentriqVision/domain/core/entities"
	"github.com/rahulAtGit/ZentriqVision/domain/core/valueobjects"
	"github.com/rahulAtGit/ZentriqVision/domain/events"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"
	"github.com/rahulAtGit/ZentriqVision/pkg/utils"

	"go.uber.org/zap"
)

// MarkProcessingHandler moves a freshly uploaded video to PROCESSING
type MarkProcessingHandler struct {
	updater   ports.VideoStatusUpdater
	publisher ports.EventPublisher
	clock     ports.Clock
	logger    *zap.Logger
}

// NewMarkProcessingHandler creates a new handler instance
func NewMarkProcessingHandler(updater ports.VideoStatusUpdater, publisher ports.EventPublisher, clock ports.Clock, logger *zap.Logger) *MarkProcessingHandler {
	if clock == nil {
		clock = time.Now
	}
	return &MarkProcessingHandler{
		updater:   updater,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// Handle transitions UPLOADING to PROCESSING. A video that already left
// UPLOADING is reported with Transition false and no error, so redelivered
// notifications are harmless.
func (h *MarkProcessingHandler) Handle(ctx context.Context, cmd commands.MarkProcessingCommand) (*commands.MarkProcessingResult, error) {
	orgID, videoID, _, err := entities.ParseObjectKey(cmd.Key)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	result := &commands.MarkProcessingResult{OrgID: orgID, VideoID: videoID}

	now := h.clock()
	attrs := map[string]interface{}{
		"processingStartedAt": utils.Timestamp(now),
		"fileSize":            cmd.Size,
	}
	err = h.updater.TransitionStatus(ctx, orgID, videoID, valueobjects.StatusUploading, valueobjects.StatusProcessing, attrs)
	switch {
	case apperrors.IsConflict(err):
		h.logger.Info("Video already past upload, skipping",
			zap.String("orgID", orgID),
			zap.String("videoID", videoID),
		)
		return result, nil
	case apperrors.IsNotFound(err):
		h.logger.Warn("Uploaded object has no video record",
			zap.String("bucket", cmd.Bucket),
			zap.String("key", cmd.Key),
		)
		return result, nil
	case err != nil:
		return nil, storeError("transition_status", err)
	}
	result.Transition = true

	event := events.NewVideoProcessingStarted(videoID, orgID, cmd.Bucket, cmd.Key, cmd.Size, now)
	if err := h.publisher.Publish(ctx, event); err != nil {
		// A redelivery would find the video already PROCESSING, so
		// failing here cannot get the event out either.
		h.logger.Error("Failed to publish processing event",
			zap.String("orgID", orgID),
			zap.String("videoID", videoID),
			zap.Error(err),
		)
	}

	h.logger.Info("Video processing started",
		zap.String("orgID", orgID),
		zap.String("videoID", videoID),
		zap.Int64("fileSize", cmd.Size),
	)
	return result, nil
}
