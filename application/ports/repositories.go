package ports

import (
	"context"
	"time"

	"github.com/rahulAtGit/ZentriqVision/domain/core/entities"
	"github.com/rahulAtGit/ZentriqVision/domain/core/valueobjects"
	"github.com/rahulAtGit/ZentriqVision/domain/events"
)

// IndexName identifies one of the logical secondary indexes of the data table.
// Implementations map each logical name onto a physical index and its key attribute.
type IndexName string

const (
	// AttributeIndex is keyed by ATTR#<dimension>#<value> (GSI1PK)
	AttributeIndex IndexName = "AttributeIndex"
	// VideoIndex is keyed by VIDEO#<videoId> (GSI2PK)
	VideoIndex IndexName = "VideoIndex"
	// TimeIndex is keyed by TIME#<YYYY-MM-DD> (GSI3PK)
	TimeIndex IndexName = "TimeIndex"
)

// ItemStore is the data table seen as a key-value document store.
// This is a port in hexagonal architecture - the application doesn't know about the implementation
type ItemStore interface {
	// Get returns the record with the exact key, or nil when absent
	Get(ctx context.Context, pk, sk string) (entities.Record, error)

	// Put writes a record, replacing any existing one (last writer wins)
	Put(ctx context.Context, record entities.Record) error

	// Query returns all records in a partition whose sort key begins with skPrefix
	Query(ctx context.Context, pk, skPrefix string) ([]entities.Record, error)

	// QueryIndex returns all records whose index key equals indexPK
	QueryIndex(ctx context.Context, index IndexName, indexPK string) ([]entities.Record, error)
}

// VideoStatusUpdater applies conditional status transitions to video records
type VideoStatusUpdater interface {
	// TransitionStatus moves a video from one status to the next only if its
	// current status is still from. Extra attributes are written atomically
	// with the transition. A failed condition is reported as a conflict.
	TransitionStatus(ctx context.Context, orgID, videoID string, from, to valueobjects.VideoStatus, attrs map[string]interface{}) error
}

// BlobStore issues time-limited URLs for video objects
type BlobStore interface {
	// PresignGet returns a URL to download the object
	PresignGet(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)

	// PresignPut returns a URL to upload the object with the given content type
	PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish publishes a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch publishes multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// Clock returns the current time
type Clock func() time.Time
