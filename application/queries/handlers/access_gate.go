package handlers

import (
	"context"

	"github.com/rahulAtGit/ZentriqVision/application/ports"
	"github.com/rahulAtGit/ZentriqVision/domain/core/entities"
	"github.com/rahulAtGit/ZentriqVision/domain/core/valueobjects"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"

	"go.uber.org/zap"
)

// Purpose tells the access gate what the caller wants to do with the video
type Purpose int

const (
	// PurposeMetadata reads are allowed at any status
	PurposeMetadata Purpose = iota
	// PurposePlayback requires a processed video
	PurposePlayback
)

func (p Purpose) String() string {
	if p == PurposePlayback {
		return "playback"
	}
	return "metadata"
}

// AccessGate loads a video and enforces ownership and readiness
type AccessGate struct {
	store  ports.ItemStore
	logger *zap.Logger
}

// NewAccessGate creates a new access gate
func NewAccessGate(store ports.ItemStore, logger *zap.Logger) *AccessGate {
	return &AccessGate{
		store:  store,
		logger: logger,
	}
}

// Open returns the video when orgID owns it and it is ready for purpose
func (g *AccessGate) Open(ctx context.Context, orgID, videoID string, purpose Purpose) (*entities.Video, error) {
	if orgID == "" {
		return nil, apperrors.NewValidationError("organization ID is required")
	}
	id, err := valueobjects.NewVideoIDFromString(videoID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	rec, err := g.store.Get(ctx, valueobjects.OrgKey(orgID), valueobjects.VideoKey(id.String()))
	if err != nil {
		return nil, storeFailure("get_video", err)
	}
	if rec == nil {
		return nil, apperrors.NewNotFoundError("video")
	}

	video, err := entities.DecodeVideo(rec)
	if err != nil {
		return nil, apperrors.NewInternalError("stored video record is malformed").WithCause(err)
	}

	if !video.BelongsTo(orgID) {
		g.logger.Warn("Security event: video ownership mismatch",
			zap.String("orgID", orgID),
			zap.String("recordOrgID", video.OrgID),
			zap.String("videoID", video.VideoID),
			zap.String("purpose", purpose.String()),
			zap.Bool("security_event", true),
		)
		return nil, apperrors.NewForbiddenError("access to this video is not allowed")
	}

	if purpose == PurposePlayback && !video.Status.IsPlayable() {
		return nil, apperrors.NewNotReadyError("video", video.Status.String())
	}
	return video, nil
}
