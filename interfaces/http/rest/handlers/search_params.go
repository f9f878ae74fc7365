package handlers

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/rahulAtGit/ZentriqVision/application/queries"
	"github.com/rahulAtGit/ZentriqVision/domain/core/valueobjects"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"
)

// ParseSearchFilters reads search filters from query parameters. The time
// window comes either from a timeRange JSON object or from start and end;
// a lone start or end is ignored.
func ParseSearchFilters(q url.Values) (queries.SearchFilters, error) {
	f := queries.SearchFilters{
		Color:     strings.TrimSpace(q.Get("color")),
		Emotion:   strings.TrimSpace(q.Get("emotion")),
		AgeBucket: strings.TrimSpace(q.Get("ageBucket")),
		VideoID:   strings.TrimSpace(q.Get("videoId")),
		PersonID:  strings.TrimSpace(q.Get("personId")),
	}

	if raw := q.Get("mask"); raw != "" {
		mask, err := strconv.ParseBool(raw)
		if err != nil {
			return f, apperrors.NewValidationError("mask must be true or false")
		}
		f.Mask = &mask
	}

	limit, err := parseLimit(q)
	if err != nil {
		return f, err
	}
	f.Limit = limit

	start, end := q.Get("start"), q.Get("end")
	switch {
	case q.Get("timeRange") != "":
		var tr valueobjects.TimeRange
		if err := json.Unmarshal([]byte(q.Get("timeRange")), &tr); err != nil {
			return f, apperrors.NewValidationError("timeRange must be a JSON object with start and end")
		}
		f.TimeRange = &tr
	case start != "" && end != "":
		f.TimeRange = &valueobjects.TimeRange{Start: start, End: end}
	}

	return f, nil
}

func parseLimit(q url.Values) (int, error) {
	raw := q.Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError("limit must be an integer")
	}
	return limit, nil
}
