package events

import (
	"time"
)

// Event sources published on the bus
const (
	SourceBackend      = "zentriqvision.backend"
	SourceUploadEvents = "zentriqvision.uploadEvents"
)

// Event types
const (
	TypeVideoUploadRequested   = "video.upload_requested"
	TypeVideoProcessingStarted = "video.processing_started"
	TypeUserProfileUpdated     = "user.profile_updated"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// Video Events

// VideoUploadRequested is raised when an upload URL has been issued
type VideoUploadRequested struct {
	BaseEvent
	VideoID  string `json:"video_id"`
	OrgID    string `json:"org_id"`
	UserID   string `json:"user_id"`
	S3Key    string `json:"s3_key"`
	FileType string `json:"file_type"`
}

// NewVideoUploadRequested creates a VideoUploadRequested event
func NewVideoUploadRequested(videoID, orgID, userID, s3Key, fileType string, timestamp time.Time) VideoUploadRequested {
	return VideoUploadRequested{
		BaseEvent: BaseEvent{
			AggregateID: videoID,
			EventType:   TypeVideoUploadRequested,
			Timestamp:   timestamp,
			Version:     1,
		},
		VideoID:  videoID,
		OrgID:    orgID,
		UserID:   userID,
		S3Key:    s3Key,
		FileType: fileType,
	}
}

// VideoProcessingStarted is raised once the uploaded object has landed and
// the video moved to PROCESSING. The processing pipeline subscribes to it.
type VideoProcessingStarted struct {
	BaseEvent
	VideoID  string `json:"video_id"`
	OrgID    string `json:"org_id"`
	Bucket   string `json:"bucket"`
	S3Key    string `json:"s3_key"`
	FileSize int64  `json:"file_size"`
}

// NewVideoProcessingStarted creates a VideoProcessingStarted event
func NewVideoProcessingStarted(videoID, orgID, bucket, s3Key string, fileSize int64, timestamp time.Time) VideoProcessingStarted {
	return VideoProcessingStarted{
		BaseEvent: BaseEvent{
			AggregateID: videoID,
			EventType:   TypeVideoProcessingStarted,
			Timestamp:   timestamp,
			Version:     1,
		},
		VideoID:  videoID,
		OrgID:    orgID,
		Bucket:   bucket,
		S3Key:    s3Key,
		FileSize: fileSize,
	}
}

// User Events

// UserProfileUpdated is raised after a profile edit
type UserProfileUpdated struct {
	BaseEvent
	UserID        string   `json:"user_id"`
	ChangedFields []string `json:"changed_fields"`
}

// NewUserProfileUpdated creates a UserProfileUpdated event
func NewUserProfileUpdated(userID string, changed []string, timestamp time.Time) UserProfileUpdated {
	return UserProfileUpdated{
		BaseEvent: BaseEvent{
			AggregateID: userID,
			EventType:   TypeUserProfileUpdated,
			Timestamp:   timestamp,
			Version:     1,
		},
		UserID:        userID,
		ChangedFields: changed,
	}
}
