package queries

import (
	"github.com/rahulAtGit/ZentriqVision/domain/core/entities"
	"github.com/rahulAtGit/ZentriqVision/domain/core/valueobjects"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"
)

// GetVideoQuery reads a video's metadata at any status
type GetVideoQuery struct {
	OrgID   string
	VideoID string
}

// Validate validates the GetVideoQuery
func (q GetVideoQuery) Validate() error {
	return validateVideoRef(q.OrgID, q.VideoID)
}

// GetPlaybackQuery requests a playback URL for a processed video
type GetPlaybackQuery struct {
	OrgID   string
	VideoID string
}

// Validate validates the GetPlaybackQuery
func (q GetPlaybackQuery) Validate() error {
	return validateVideoRef(q.OrgID, q.VideoID)
}

func validateVideoRef(orgID, videoID string) error {
	if orgID == "" {
		return apperrors.NewValidationError("organization ID is required")
	}
	if _, err := valueobjects.NewVideoIDFromString(videoID); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

// VideoMetadata groups storage and processing details of a video
type VideoMetadata struct {
	Size                  *int64 `json:"size"`
	S3Key                 string `json:"s3Key"`
	ProcessingStartedAt   string `json:"processingStartedAt,omitempty"`
	ProcessingCompletedAt string `json:"processingCompletedAt,omitempty"`
}

// DetectionView is a person detection as presented to clients
type DetectionView struct {
	PersonID        string                       `json:"personId"`
	Timestamp       string                       `json:"timestamp"`
	Confidence      float64                      `json:"confidence"`
	ConfidenceLabel string                       `json:"confidenceLabel"`
	Attributes      entities.DetectionAttributes `json:"attributes"`
}

// GetVideoResult is the video metadata response body
type GetVideoResult struct {
	VideoID      string          `json:"videoId"`
	FileName     string          `json:"fileName"`
	FileType     string          `json:"fileType"`
	Status       string          `json:"status"`
	OrgID        string          `json:"orgId"`
	UserID       string          `json:"userId"`
	UploadedAt   string          `json:"uploadedAt"`
	Duration     *float64        `json:"duration,omitempty"`
	FaceCount    *int            `json:"faceCount,omitempty"`
	ThumbnailURL string          `json:"thumbnailUrl,omitempty"`
	Metadata     VideoMetadata   `json:"metadata"`
	Detections   []DetectionView `json:"detections"`
}

// PlaybackMetadata is the metadata block of a playback response
type PlaybackMetadata struct {
	Duration   *float64 `json:"duration"`
	Size       *int64   `json:"size"`
	UploadedAt string   `json:"uploadedAt"`
}

// GetPlaybackResult is the playback response body
type GetPlaybackResult struct {
	VideoID      string           `json:"videoId"`
	FileName     string           `json:"fileName"`
	Status       string           `json:"status"`
	PresignedURL string           `json:"presignedUrl"`
	ExpiresIn    int              `json:"expiresIn"`
	Metadata     PlaybackMetadata `json:"metadata"`
}
