package handlers

import (
	"net/url"
	"testing"

	"github.com/rahulAtGit/ZentriqVision/domain/core/valueobjects"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSearchFilters(t *testing.T) {
	q := url.Values{}
	q.Set("color", " red ")
	q.Set("emotion", "happy")
	q.Set("ageBucket", "25-34")
	q.Set("personId", "person-1")
	q.Set("mask", "false")
	q.Set("limit", "10")
	q.Set("start", "2024-03-10T00:00:00Z")
	q.Set("end", "2024-03-11T00:00:00Z")

	f, err := ParseSearchFilters(q)
	require.NoError(t, err)

	assert.Equal(t, "red", f.Color)
	assert.Equal(t, "happy", f.Emotion)
	assert.Equal(t, "25-34", f.AgeBucket)
	assert.Equal(t, "person-1", f.PersonID)
	require.NotNil(t, f.Mask)
	assert.False(t, *f.Mask)
	assert.Equal(t, 10, f.Limit)
	assert.Equal(t, &valueobjects.TimeRange{Start: "2024-03-10T00:00:00Z", End: "2024-03-11T00:00:00Z"}, f.TimeRange)
}

func TestParseSearchFilters_TimeRangeParamWins(t *testing.T) {
	q := url.Values{}
	q.Set("timeRange", `{"start":"2024-01-01T00:00:00Z","end":"2024-01-02T00:00:00Z"}`)
	q.Set("start", "2030-01-01T00:00:00Z")

	f, err := ParseSearchFilters(q)
	require.NoError(t, err)
	require.NotNil(t, f.TimeRange)
	assert.Equal(t, "2024-01-01T00:00:00Z", f.TimeRange.Start)
}

func TestParseSearchFilters_Empty(t *testing.T) {
	f, err := ParseSearchFilters(url.Values{})
	require.NoError(t, err)
	assert.Nil(t, f.Mask)
	assert.Nil(t, f.TimeRange)
	assert.Zero(t, f.Limit)
	assert.False(t, f.HasAttributeFilter())
}

func TestParseSearchFilters_SingleBoundIgnored(t *testing.T) {
	for name, q := range map[string]url.Values{
		"start only": {"start": {"2024-03-10T00:00:00Z"}},
		"end only":   {"end": {"2024-03-11T00:00:00Z"}},
	} {
		t.Run(name, func(t *testing.T) {
			f, err := ParseSearchFilters(q)
			require.NoError(t, err)
			assert.Nil(t, f.TimeRange)
		})
	}
}

func TestParseSearchFilters_Invalid(t *testing.T) {
	for name, q := range map[string]url.Values{
		"mask":      {"mask": {"sometimes"}},
		"limit":     {"limit": {"ten"}},
		"timeRange": {"timeRange": {"2024-01-01"}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSearchFilters(q)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}
