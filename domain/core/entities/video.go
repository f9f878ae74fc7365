package entities

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/rahulAtGit/ZentriqVision/domain/core/valueobjects"
)

// Video is the metadata record of an uploaded file, stored under ORG#<orgId>/VIDEO#<videoId>
type Video struct {
	PK     string `dynamodbav:"PK"`
	SK     string `dynamodbav:"SK"`
	GSI2PK string `dynamodbav:"GSI2PK,omitempty"`
	GSI2SK string `dynamodbav:"GSI2SK,omitempty"`
	GSI3PK string `dynamodbav:"GSI3PK,omitempty"`
	GSI3SK string `dynamodbav:"GSI3SK,omitempty"`

	VideoID               string                   `dynamodbav:"videoId"`
	FileName              string                   `dynamodbav:"fileName"`
	FileType              string                   `dynamodbav:"fileType"`
	Status                valueobjects.VideoStatus `dynamodbav:"status"`
	OrgID                 string                   `dynamodbav:"orgId"`
	UserID                string                   `dynamodbav:"userId"`
	S3Key                 string                   `dynamodbav:"s3Key"`
	UploadedAt            string                   `dynamodbav:"uploadedAt"`
	Duration              *float64                 `dynamodbav:"duration,omitempty"`
	FileSize              *int64                   `dynamodbav:"fileSize,omitempty"`
	ProcessingStartedAt   string                   `dynamodbav:"processingStartedAt,omitempty"`
	ProcessingCompletedAt string                   `dynamodbav:"processingCompletedAt,omitempty"`
	FaceCount             *int                     `dynamodbav:"faceCount,omitempty"`
	ThumbnailURL          string                   `dynamodbav:"thumbnailUrl,omitempty"`
	Detections            []PersonDetection        `dynamodbav:"detections,omitempty"`
}

// NewVideo creates a video in the UPLOADING state with its key projections
func NewVideo(videoID valueobjects.VideoID, orgID, userID, fileName, fileType string, fileSize *int64, now time.Time) (*Video, error) {
	if orgID == "" {
		return nil, errors.New("organization ID is required")
	}
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	if fileName == "" || strings.ContainsAny(fileName, "/\\") {
		return nil, fmt.Errorf("invalid file name %q", fileName)
	}

	uploadedAt := now.UTC().Format(time.RFC3339)
	id := videoID.String()
	return &Video{
		PK:         valueobjects.OrgKey(orgID),
		SK:         valueobjects.VideoKey(id),
		GSI2PK:     valueobjects.VideoKey(id),
		GSI2SK:     valueobjects.OrgKey(orgID),
		GSI3PK:     valueobjects.TimeKey(valueobjects.DayOf(now)),
		GSI3SK:     uploadedAt,
		VideoID:    id,
		FileName:   fileName,
		FileType:   fileType,
		Status:     valueobjects.StatusUploading,
		OrgID:      orgID,
		UserID:     userID,
		S3Key:      ObjectKey(orgID, id, fileName),
		UploadedAt: uploadedAt,
		FileSize:   fileSize,
	}, nil
}

// DecodeVideo converts a stored record into a Video
func DecodeVideo(r Record) (*Video, error) {
	var v Video
	if err := DecodeRecord(r, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// BelongsTo reports whether the stored owner matches the organization
func (v *Video) BelongsTo(orgID string) bool {
	return v.OrgID == orgID
}

// ObjectKey is the blob key of an upload: videos/<orgId>/<videoId>/<fileName>
func ObjectKey(orgID, videoID, fileName string) string {
	return path.Join("videos", orgID, videoID, fileName)
}

// ParseObjectKey reverses ObjectKey
func ParseObjectKey(key string) (orgID, videoID, fileName string, err error) {
	parts := strings.Split(key, "/")
	if len(parts) != 4 || parts[0] != "videos" {
		return "", "", "", fmt.Errorf("unexpected object key %q", key)
	}
	if parts[1] == "" || parts[2] == "" || parts[3] == "" {
		return "", "", "", fmt.Errorf("unexpected object key %q", key)
	}
	return parts[1], parts[2], parts[3], nil
}
