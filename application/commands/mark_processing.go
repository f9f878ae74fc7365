package commands

import (
	"github.com/rahulAtGit/ZentriqVision/domain/core/entities"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"
)

// MarkProcessingCommand records that an uploaded object has landed
type MarkProcessingCommand struct {
	Bucket string
	Key    string
	Size   int64
}

// Validate validates the MarkProcessingCommand
func (c MarkProcessingCommand) Validate() error {
	if c.Bucket == "" {
		return apperrors.NewValidationError("bucket is required")
	}
	if _, _, _, err := entities.ParseObjectKey(c.Key); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

// MarkProcessingResult reports whether the video moved to PROCESSING
type MarkProcessingResult struct {
	OrgID      string
	VideoID    string
	Transition bool
}
