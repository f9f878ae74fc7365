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

	"go.uber.org/zap"
)

// RequestUploadHandler creates the video record and issues an upload URL
type RequestUploadHandler struct {
	store     ports.ItemStore
	blobs     ports.BlobStore
	publisher ports.EventPublisher
	clock     ports.Clock
	ttl       time.Duration
	logger    *zap.Logger
}

// NewRequestUploadHandler creates a new handler instance
func NewRequestUploadHandler(
	store ports.ItemStore,
	blobs ports.BlobStore,
	publisher ports.EventPublisher,
	clock ports.Clock,
	ttl time.Duration,
	logger *zap.Logger,
) *RequestUploadHandler {
	if clock == nil {
		clock = time.Now
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RequestUploadHandler{
		store:     store,
		blobs:     blobs,
		publisher: publisher,
		clock:     clock,
		ttl:       ttl,
		logger:    logger,
	}
}

// Handle executes the request upload command
func (h *RequestUploadHandler) Handle(ctx context.Context, cmd commands.RequestUploadCommand) (*commands.RequestUploadResult, error) {
	if cmd.RequestedOrgID != "" && cmd.RequestedOrgID != cmd.OrgID {
		h.logger.Warn("Ignoring client-supplied organization",
			zap.String("orgID", cmd.OrgID),
			zap.String("requestedOrgID", cmd.RequestedOrgID),
		)
	}

	now := h.clock()
	video, err := entities.NewVideo(valueobjects.NewVideoID(), cmd.OrgID, cmd.UserID, cmd.FileName, cmd.FileType, cmd.FileSize, now)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	item, err := entities.EncodeRecord(video)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode video").WithCause(err)
	}
	if err := h.store.Put(ctx, item); err != nil {
		return nil, storeError("put_video", err)
	}

	url, err := h.blobs.PresignPut(ctx, video.S3Key, video.FileType, h.ttl)
	if err != nil {
		h.logger.Error("Failed to presign upload URL",
			zap.String("videoID", video.VideoID),
			zap.String("s3Key", video.S3Key),
			zap.Error(err),
		)
		return nil, apperrors.NewExternalError("s3", err)
	}

	event := events.NewVideoUploadRequested(video.VideoID, video.OrgID, video.UserID, video.S3Key, video.FileType, now)
	if err := h.publisher.Publish(ctx, event); err != nil {
		// The upload can proceed without the notification
		h.logger.Warn("Failed to publish upload event",
			zap.String("videoID", video.VideoID),
			zap.Error(err),
		)
	}

	h.logger.Info("Video upload requested",
		zap.String("videoID", video.VideoID),
		zap.String("orgID", video.OrgID),
		zap.String("userID", video.UserID),
		zap.String("fileType", video.FileType),
	)

	return &commands.RequestUploadResult{
		VideoID:      video.VideoID,
		PresignedURL: url,
		S3Key:        video.S3Key,
		ExpiresIn:    int(h.ttl.Seconds()),
	}, nil
}
