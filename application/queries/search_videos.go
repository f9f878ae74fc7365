package queries

import (
	"strings"

	"github.com/rahulAtGit/ZentriqVision/domain/core/valueobjects"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"
)

// SearchFilters is the optional filter set accepted by video search
type SearchFilters struct {
	Color     string                  `json:"color,omitempty"`
	Emotion   string                  `json:"emotion,omitempty"`
	AgeBucket string                  `json:"ageBucket,omitempty"`
	Mask      *bool                   `json:"mask,omitempty"`
	VideoID   string                  `json:"videoId,omitempty"`
	PersonID  string                  `json:"personId,omitempty"`
	TimeRange *valueobjects.TimeRange `json:"timeRange,omitempty"`
	Limit     int                     `json:"limit,omitempty"`
}

// HasAttributeFilter reports whether any attribute-index dimension is set
func (f SearchFilters) HasAttributeFilter() bool {
	return f.Color != "" || f.Emotion != "" || f.AgeBucket != ""
}

// VideoOnly reports whether videoId is the only filter set. Limit is not a filter.
func (f SearchFilters) VideoOnly() bool {
	return f.VideoID != "" &&
		!f.HasAttributeFilter() &&
		f.Mask == nil &&
		f.PersonID == "" &&
		f.TimeRange == nil
}

// AttributeKeys returns the attribute index keys for every set dimension
func (f SearchFilters) AttributeKeys() []string {
	var keys []string
	if f.Color != "" {
		keys = append(keys, valueobjects.AttributeKey(valueobjects.DimensionColor, f.Color))
	}
	if f.Emotion != "" {
		keys = append(keys, valueobjects.AttributeKey(valueobjects.DimensionEmotion, f.Emotion))
	}
	if f.AgeBucket != "" {
		keys = append(keys, valueobjects.AttributeKey(valueobjects.DimensionAge, f.AgeBucket))
	}
	return keys
}

// Validate checks filter values that would otherwise produce malformed keys
func (f SearchFilters) Validate() error {
	if f.Limit < 0 {
		return apperrors.NewValidationError("limit must not be negative")
	}
	for name, v := range map[string]string{
		"color":     f.Color,
		"emotion":   f.Emotion,
		"ageBucket": f.AgeBucket,
		"videoId":   f.VideoID,
	} {
		if strings.Contains(v, valueobjects.KeyDelimiter) {
			return apperrors.NewValidationError(name + " contains an invalid character")
		}
	}
	if f.TimeRange != nil {
		if err := f.TimeRange.Validate(); err != nil {
			return apperrors.NewValidationError(err.Error())
		}
	}
	return nil
}

// SearchVideosQuery searches an organization's videos and detections
type SearchVideosQuery struct {
	OrgID string
	// RequestedOrgID is the client-supplied orgId. It is logged, never used.
	RequestedOrgID string
	Filters        SearchFilters
}

// Validate validates the SearchVideosQuery
func (q SearchVideosQuery) Validate() error {
	if q.OrgID == "" {
		return apperrors.NewValidationError("organization ID is required")
	}
	return q.Filters.Validate()
}

// SearchVideosResult is the search response body
type SearchVideosResult struct {
	Results []map[string]interface{} `json:"results"`
	Count   int                      `json:"count"`
	OrgID   string                   `json:"orgId"`
	Filters SearchFilters            `json:"filters"`
}

// ListVideosQuery lists an organization's videos, optionally by status
type ListVideosQuery struct {
	OrgID  string
	Status string
	Limit  int
}

// Validate validates the ListVideosQuery
func (q ListVideosQuery) Validate() error {
	if q.OrgID == "" {
		return apperrors.NewValidationError("organization ID is required")
	}
	if q.Limit < 0 {
		return apperrors.NewValidationError("limit must not be negative")
	}
	if q.Status != "" {
		if _, err := valueobjects.ParseVideoStatus(q.Status); err != nil {
			return apperrors.NewValidationError(err.Error())
		}
	}
	return nil
}
