// Package seed writes a small demo organization into the data table.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rahulAtGit/ZentriqVision/application/ports"
	"github.com/rahulAtGit/ZentriqVision/domain/core/entities"
	"github.com/rahulAtGit/ZentriqVision/domain/core/valueobjects"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VideoIDs returns the deterministic ids of the demo videos of an organization
// in the order processed, processing, error
func VideoIDs(orgID string) [3]string {
	return [3]string{
		demoID(orgID, "processed"),
		demoID(orgID, "processing"),
		demoID(orgID, "error"),
	}
}

func demoID(orgID, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("zentriqvision:"+orgID+":"+name)).String()
}

type person struct {
	id, color, emotion, age string
	mask                    bool
	offset                  time.Duration
	confidence              float64
}

var people = []person{
	{id: "person-1", color: "red", emotion: "happy", age: "25-34", offset: 5 * time.Second, confidence: 0.95},
	{id: "person-2", color: "blue", emotion: "neutral", age: "35-44", mask: true, offset: 12 * time.Second, confidence: 0.87},
}

// Demo builds the demo records: three videos in distinct states, with
// detections indexed by color, emotion and age on the processed one
func Demo(orgID, userID string, now time.Time) ([]entities.Record, error) {
	if orgID == "" || userID == "" {
		return nil, fmt.Errorf("organization and user are required")
	}
	now = now.UTC().Truncate(time.Second)
	ids := VideoIDs(orgID)
	statuses := []valueobjects.VideoStatus{
		valueobjects.StatusProcessed,
		valueobjects.StatusProcessing,
		valueobjects.StatusError,
	}

	var records []entities.Record
	for i, status := range statuses {
		id, err := valueobjects.NewVideoIDFromString(ids[i])
		if err != nil {
			return nil, err
		}
		size := int64(5*1024*1024 + i)
		video, err := entities.NewVideo(id, orgID, userID, fmt.Sprintf("demo-%s.mp4", status), "video/mp4", &size, now)
		if err != nil {
			return nil, err
		}
		video.Status = status
		if status != valueobjects.StatusUploading {
			video.ProcessingStartedAt = now.Add(time.Minute).Format(time.RFC3339)
		}

		if status == valueobjects.StatusProcessed {
			duration := 42.5
			faces := len(people)
			video.Duration = &duration
			video.FaceCount = &faces
			video.ProcessingCompletedAt = now.Add(3 * time.Minute).Format(time.RFC3339)
			for _, p := range people {
				video.Detections = append(video.Detections, detection(video.VideoID, p, now))
			}
			for _, p := range people {
				recs, err := indexed(orgID, video.VideoID, p, now)
				if err != nil {
					return nil, err
				}
				records = append(records, recs...)
			}
		}

		rec, err := entities.EncodeRecord(video)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func detection(videoID string, p person, now time.Time) entities.PersonDetection {
	mask := p.mask
	return entities.PersonDetection{
		PersonID:   p.id,
		VideoID:    videoID,
		Timestamp:  now.Add(p.offset).Format(time.RFC3339),
		Confidence: valueobjects.Confidence(p.confidence),
		Attributes: entities.DetectionAttributes{
			AgeBucket:  p.age,
			Emotion:    p.emotion,
			Mask:       &mask,
			UpperColor: p.color,
		},
	}
}

func indexed(orgID, videoID string, p person, now time.Time) ([]entities.Record, error) {
	d := detection(videoID, p, now)
	dims := []struct {
		dim   valueobjects.Dimension
		value string
	}{
		{valueobjects.DimensionColor, p.color},
		{valueobjects.DimensionEmotion, p.emotion},
		{valueobjects.DimensionAge, p.age},
	}
	out := make([]entities.Record, 0, len(dims))
	for _, dv := range dims {
		rec, err := entities.EncodeRecord(entities.IndexedDetection(orgID, d, dv.dim, dv.value))
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Load writes records one by one, stopping at the first failure
func Load(ctx context.Context, store ports.ItemStore, records []entities.Record, logger *zap.Logger) (int, error) {
	for i, rec := range records {
		if err := store.Put(ctx, rec); err != nil {
			return i, fmt.Errorf("failed to write %s: %w", rec.Identity(), err)
		}
	}
	logger.Info("Seeded demo records", zap.Int("count", len(records)))
	return len(records), nil
}
