package queries

import (
	"github.com/rahulAtGit/ZentriqVision/domain/core/entities"
	"github.com/rahulAtGit/ZentriqVision/domain/core/valueobjects"
)

// ConfidenceLabelField is added to presented records carrying a confidence
const ConfidenceLabelField = "confidenceLabel"

// PresentRecord copies a stored record for a response body. Stored
// confidence stays a fraction; the percentage only appears in the label.
func PresentRecord(rec entities.Record) map[string]interface{} {
	out := map[string]interface{}(rec.Clone())
	if c, ok := numeric(rec["confidence"]); ok {
		out[ConfidenceLabelField] = valueobjects.Confidence(c).Label()
	}
	return out
}

// PresentRecords presents every record, never returning nil
func PresentRecords(recs []entities.Record) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(recs))
	for _, rec := range recs {
		out = append(out, PresentRecord(rec))
	}
	return out
}

// PresentDetection renders a detection with its confidence label
func PresentDetection(d entities.PersonDetection) DetectionView {
	return DetectionView{
		PersonID:        d.PersonID,
		Timestamp:       d.Timestamp,
		Confidence:      d.Confidence.Fraction(),
		ConfidenceLabel: d.Confidence.Label(),
		Attributes:      d.Attributes,
	}
}

// PresentVideo builds the metadata view of a video
func PresentVideo(v *entities.Video) *GetVideoResult {
	detections := make([]DetectionView, 0, len(v.Detections))
	for _, d := range v.Detections {
		detections = append(detections, PresentDetection(d))
	}
	return &GetVideoResult{
		VideoID:      v.VideoID,
		FileName:     v.FileName,
		FileType:     v.FileType,
		Status:       v.Status.String(),
		OrgID:        v.OrgID,
		UserID:       v.UserID,
		UploadedAt:   v.UploadedAt,
		Duration:     v.Duration,
		FaceCount:    v.FaceCount,
		ThumbnailURL: v.ThumbnailURL,
		Metadata: VideoMetadata{
			Size:                  v.FileSize,
			S3Key:                 v.S3Key,
			ProcessingStartedAt:   v.ProcessingStartedAt,
			ProcessingCompletedAt: v.ProcessingCompletedAt,
		},
		Detections: detections,
	}
}

// PresentProfile builds the profile response body
func PresentProfile(p *entities.UserProfile) *ProfileResult {
	return &ProfileResult{
		UserID:      p.UserID,
		Email:       p.Email,
		GivenName:   p.GivenName,
		PhoneNumber: p.PhoneNumber,
		OrgID:       p.OrgID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func numeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case valueobjects.Confidence:
		return float64(n), true
	}
	return 0, false
}
