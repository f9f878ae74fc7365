package valueobjects

import "fmt"

// VideoStatus is the processing state of an uploaded video
type VideoStatus string

const (
	StatusUploading  VideoStatus = "UPLOADING"
	StatusProcessing VideoStatus = "PROCESSING"
	StatusProcessed  VideoStatus = "PROCESSED"
	StatusError      VideoStatus = "ERROR"
)

// ParseVideoStatus validates a status string
func ParseVideoStatus(s string) (VideoStatus, error) {
	status := VideoStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid video status: %q", s)
	}
	return status, nil
}

// IsValid reports whether the status is one of the known states
func (s VideoStatus) IsValid() bool {
	switch s {
	case StatusUploading, StatusProcessing, StatusProcessed, StatusError:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible
func (s VideoStatus) IsTerminal() bool {
	return s == StatusProcessed || s == StatusError
}

// IsPlayable reports whether a playback URL may be issued
func (s VideoStatus) IsPlayable() bool {
	return s == StatusProcessed
}

// CanTransitionTo enforces UPLOADING -> PROCESSING -> {PROCESSED | ERROR}.
// ERROR is reachable from any non-terminal state.
func (s VideoStatus) CanTransitionTo(next VideoStatus) bool {
	switch s {
	case StatusUploading:
		return next == StatusProcessing || next == StatusError
	case StatusProcessing:
		return next == StatusProcessed || next == StatusError
	}
	return false
}

func (s VideoStatus) String() string {
	return string(s)
}
