package memory

import (
	"context"
	"testing"

	"github.com/rahulAtGit/ZentriqVision/application/ports"
	"github.com/rahulAtGit/ZentriqVision/domain/core/entities"
	"github.com/rahulAtGit/ZentriqVision/domain/core/valueobjects"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemStore_GetPut(t *testing.T) {
	ctx := context.Background()
	store := NewItemStore()

	rec, err := store.Get(ctx, "ORG#a", "VIDEO#v1")
	require.NoError(t, err)
	assert.Nil(t, rec)

	require.NoError(t, store.Put(ctx, entities.Record{"PK": "ORG#a", "SK": "VIDEO#v1", "status": "UPLOADING"}))
	require.NoError(t, store.Put(ctx, entities.Record{"PK": "ORG#a", "SK": "VIDEO#v1", "status": "PROCESSING"}))

	rec, err = store.Get(ctx, "ORG#a", "VIDEO#v1")
	require.NoError(t, err)
	assert.Equal(t, "PROCESSING", rec.String("status"))
	assert.Equal(t, 1, store.Len())

	rec["status"] = "mutated"
	again, _ := store.Get(ctx, "ORG#a", "VIDEO#v1")
	assert.Equal(t, "PROCESSING", again.String("status"))

	assert.Error(t, store.Put(ctx, entities.Record{"PK": "ORG#a"}))
}

func TestItemStore_Query(t *testing.T) {
	ctx := context.Background()
	store := NewItemStore()
	require.NoError(t, store.Put(ctx, entities.Record{"PK": "ORG#a", "SK": "VIDEO#v2"}))
	require.NoError(t, store.Put(ctx, entities.Record{"PK": "ORG#a", "SK": "VIDEO#v1"}))
	require.NoError(t, store.Put(ctx, entities.Record{"PK": "ORG#a", "SK": "DETECTION#v1#p1#t"}))
	require.NoError(t, store.Put(ctx, entities.Record{"PK": "ORG#b", "SK": "VIDEO#v3"}))

	recs, err := store.Query(ctx, "ORG#a", "VIDEO#")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "VIDEO#v1", recs[0].SK())
	assert.Equal(t, "VIDEO#v2", recs[1].SK())
}

func TestItemStore_QueryIndex(t *testing.T) {
	ctx := context.Background()
	store := NewItemStore()
	require.NoError(t, store.Put(ctx, entities.Record{"PK": "ORG#a", "SK": "D1", "GSI1PK": "ATTR#color#red", "GSI1SK": "2"}))
	require.NoError(t, store.Put(ctx, entities.Record{"PK": "ORG#b", "SK": "D2", "GSI1PK": "ATTR#color#red", "GSI1SK": "1"}))
	require.NoError(t, store.Put(ctx, entities.Record{"PK": "ORG#a", "SK": "D3", "GSI2PK": "ATTR#color#red"}))
	require.NoError(t, store.Put(ctx, entities.Record{"PK": "ORG#a", "SK": "D4", "GSI3PK": "TIME#2024-01-01"}))

	recs, err := store.QueryIndex(ctx, ports.AttributeIndex, "ATTR#color#red")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "D2", recs[0].SK())
	assert.Equal(t, "D1", recs[1].SK())

	recs, err = store.QueryIndex(ctx, ports.TimeIndex, "TIME#2024-01-01")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "D4", recs[0].SK())

	_, err = store.QueryIndex(ctx, ports.IndexName("Bogus"), "x")
	assert.Error(t, err)
}

func TestItemStore_TransitionStatus(t *testing.T) {
	ctx := context.Background()
	store := NewItemStore()
	require.NoError(t, store.Put(ctx, entities.Record{"PK": "ORG#a", "SK": "VIDEO#v1", "status": "UPLOADING"}))

	err := store.TransitionStatus(ctx, "a", "v1", valueobjects.StatusUploading, valueobjects.StatusProcessing,
		map[string]interface{}{"processingStartedAt": "2024-01-01T00:00:00Z"})
	require.NoError(t, err)

	rec, _ := store.Get(ctx, "ORG#a", "VIDEO#v1")
	assert.Equal(t, "PROCESSING", rec.String("status"))
	assert.Equal(t, "2024-01-01T00:00:00Z", rec.String("processingStartedAt"))

	err = store.TransitionStatus(ctx, "a", "v1", valueobjects.StatusUploading, valueobjects.StatusProcessing, nil)
	assert.True(t, apperrors.IsConflict(err))

	err = store.TransitionStatus(ctx, "a", "missing", valueobjects.StatusUploading, valueobjects.StatusProcessing, nil)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestItemStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewItemStore().Query(ctx, "ORG#a", "VIDEO#")
	assert.ErrorIs(t, err, context.Canceled)
}
