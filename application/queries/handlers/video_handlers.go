package handlers

import (
	"context"
	"time"

	"github.com/rahulAtGit/ZentriqVision/application/ports"
	"github.com/rahulAtGit/ZentriqVision/application/queries"
	"github.com/rahulAtGit/ZentriqVision/domain/core/entities"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"

	"go.uber.org/zap"
)

// DefaultPresignTTL is the lifetime of playback and upload URLs
const DefaultPresignTTL = time.Hour

// SearchVideosHandler handles video and detection search
type SearchVideosHandler struct {
	router *SearchRouter
	logger *zap.Logger
}

// NewSearchVideosHandler creates a new search handler
func NewSearchVideosHandler(router *SearchRouter, logger *zap.Logger) *SearchVideosHandler {
	return &SearchVideosHandler{
		router: router,
		logger: logger,
	}
}

// Handle executes the search query
func (h *SearchVideosHandler) Handle(ctx context.Context, query queries.SearchVideosQuery) (*queries.SearchVideosResult, error) {
	if query.RequestedOrgID != "" && query.RequestedOrgID != query.OrgID {
		h.logger.Warn("Ignoring client-supplied organization",
			zap.String("orgID", query.OrgID),
			zap.String("requestedOrgID", query.RequestedOrgID),
		)
	}

	records, err := h.router.Search(ctx, query.OrgID, query.Filters)
	if err != nil {
		return nil, err
	}

	results := queries.PresentRecords(records)
	return &queries.SearchVideosResult{
		Results: results,
		Count:   len(results),
		OrgID:   query.OrgID,
		Filters: query.Filters,
	}, nil
}

// ListVideosHandler lists an organization's videos
type ListVideosHandler struct {
	router *SearchRouter
}

// NewListVideosHandler creates a new list handler
func NewListVideosHandler(router *SearchRouter) *ListVideosHandler {
	return &ListVideosHandler{router: router}
}

// Handle lists videos through the router's default branch. The status
// filter applies before the limit.
func (h *ListVideosHandler) Handle(ctx context.Context, query queries.ListVideosQuery) (*queries.SearchVideosResult, error) {
	filters := queries.SearchFilters{Limit: query.Limit}
	records, _, err := h.router.candidates(ctx, query.OrgID, filters)
	if err != nil {
		return nil, err
	}

	if query.Status != "" {
		matched := make([]entities.Record, 0, len(records))
		for _, rec := range records {
			if rec.String("status") == query.Status {
				matched = append(matched, rec)
			}
		}
		records = matched
	}
	if limit := h.router.limit(query.Limit); len(records) > limit {
		records = records[:limit]
	}

	results := queries.PresentRecords(records)
	return &queries.SearchVideosResult{
		Results: results,
		Count:   len(results),
		OrgID:   query.OrgID,
		Filters: filters,
	}, nil
}

// GetVideoHandler returns a video's metadata
type GetVideoHandler struct {
	gate *AccessGate
}

// NewGetVideoHandler creates a new video metadata handler
func NewGetVideoHandler(gate *AccessGate) *GetVideoHandler {
	return &GetVideoHandler{gate: gate}
}

// Handle executes the metadata query
func (h *GetVideoHandler) Handle(ctx context.Context, query queries.GetVideoQuery) (*queries.GetVideoResult, error) {
	video, err := h.gate.Open(ctx, query.OrgID, query.VideoID, PurposeMetadata)
	if err != nil {
		return nil, err
	}
	return queries.PresentVideo(video), nil
}

// GetPlaybackHandler issues playback URLs for processed videos
type GetPlaybackHandler struct {
	gate   *AccessGate
	blobs  ports.BlobStore
	ttl    time.Duration
	logger *zap.Logger
}

// NewGetPlaybackHandler creates a new playback handler
func NewGetPlaybackHandler(gate *AccessGate, blobs ports.BlobStore, ttl time.Duration, logger *zap.Logger) *GetPlaybackHandler {
	if ttl <= 0 {
		ttl = DefaultPresignTTL
	}
	return &GetPlaybackHandler{
		gate:   gate,
		blobs:  blobs,
		ttl:    ttl,
		logger: logger,
	}
}

// Handle executes the playback query
func (h *GetPlaybackHandler) Handle(ctx context.Context, query queries.GetPlaybackQuery) (*queries.GetPlaybackResult, error) {
	video, err := h.gate.Open(ctx, query.OrgID, query.VideoID, PurposePlayback)
	if err != nil {
		return nil, err
	}

	url, err := h.blobs.PresignGet(ctx, video.S3Key, video.FileType, h.ttl)
	if err != nil {
		h.logger.Error("Failed to presign playback URL",
			zap.String("videoID", video.VideoID),
			zap.String("s3Key", video.S3Key),
			zap.Error(err),
		)
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.NewExternalError("s3", err)
	}

	return &queries.GetPlaybackResult{
		VideoID:      video.VideoID,
		FileName:     video.FileName,
		Status:       video.Status.String(),
		PresignedURL: url,
		ExpiresIn:    int(h.ttl.Seconds()),
		Metadata: queries.PlaybackMetadata{
			Duration:   video.Duration,
			Size:       video.FileSize,
			UploadedAt: video.UploadedAt,
		},
	}, nil
}
