package valueobjects

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// VideoID is a value object representing a unique video identifier
type VideoID struct {
	value string
}

// NewVideoID creates a new random VideoID
func NewVideoID() VideoID {
	return VideoID{value: uuid.New().String()}
}

// NewVideoIDFromString creates a VideoID from an existing string.
// Identifiers written by the processing pipeline are not required to be UUIDs,
// but they can never contain the key delimiter.
func NewVideoIDFromString(id string) (VideoID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return VideoID{}, errors.New("video ID cannot be empty")
	}
	if strings.Contains(id, KeyDelimiter) {
		return VideoID{}, errors.New("video ID cannot contain '#'")
	}
	return VideoID{value: id}, nil
}

// String returns the string representation of the VideoID
func (id VideoID) String() string {
	return id.value
}

// Equals checks if two VideoIDs are equal
func (id VideoID) Equals(other VideoID) bool {
	return id.value == other.value
}

// IsZero checks if the VideoID is the zero value
func (id VideoID) IsZero() bool {
	return id.value == ""
}

// IsUUID reports whether the identifier was generated by this service
func (id VideoID) IsUUID() bool {
	_, err := uuid.Parse(id.value)
	return err == nil
}

// MarshalJSON implements json.Marshaler
func (id VideoID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *VideoID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("VideoID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}
