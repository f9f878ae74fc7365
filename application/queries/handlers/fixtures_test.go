package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/rahulAtGit/ZentriqVision/domain/core/entities"
	"github.com/rahulAtGit/ZentriqVision/domain/core/valueobjects"
	"github.com/rahulAtGit/ZentriqVision/infrastructure/persistence/memory"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func putVideo(t *testing.T, store *memory.ItemStore, orgID, videoID string, status valueobjects.VideoStatus) *entities.Video {
	t.Helper()
	id, err := valueobjects.NewVideoIDFromString(videoID)
	require.NoError(t, err)
	size := int64(1024)
	video, err := entities.NewVideo(id, orgID, "user-1", videoID+".mp4", "video/mp4", &size, fixedNow)
	require.NoError(t, err)
	video.Status = status

	rec, err := entities.EncodeRecord(video)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), rec))
	return video
}

type detectionSpec struct {
	orgID    string
	videoID  string
	personID string
	ts       string
	dim      valueobjects.Dimension
	value    string
	mask     *bool
	conf     float64
}

func putDetection(t *testing.T, store *memory.ItemStore, d detectionSpec) entities.Record {
	t.Helper()
	if d.ts == "" {
		d.ts = "2024-03-10T12:00:00Z"
	}
	if d.conf == 0 {
		d.conf = 0.9
	}
	attrs := entities.DetectionAttributes{Mask: d.mask}
	switch d.dim {
	case valueobjects.DimensionColor:
		attrs.UpperColor = d.value
	case valueobjects.DimensionEmotion:
		attrs.Emotion = d.value
	case valueobjects.DimensionAge:
		attrs.AgeBucket = d.value
	}
	det := entities.IndexedDetection(d.orgID, entities.PersonDetection{
		PersonID:   d.personID,
		VideoID:    d.videoID,
		Timestamp:  d.ts,
		Confidence: valueobjects.Confidence(d.conf),
		Attributes: attrs,
	}, d.dim, d.value)

	rec, err := entities.EncodeRecord(det)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), rec))
	return rec
}

func boolPtr(b bool) *bool { return &b }

func identities(recs []entities.Record) []string {
	out := make([]string, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.Identity())
	}
	return out
}
