package commands

import (
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"
	"github.com/rahulAtGit/ZentriqVision/pkg/utils"
)

// RequestUploadCommand registers a new video and asks for an upload URL
type RequestUploadCommand struct {
	OrgID    string `json:"orgId" validate:"required"`
	UserID   string `json:"userId" validate:"required"`
	FileName string `json:"fileName" validate:"required,max=255,objectname"`
	FileType string `json:"fileType" validate:"required,videomime"`
	FileSize *int64 `json:"fileSize" validate:"omitempty,min=1"`
	// RequestedOrgID is the client-supplied orgId. It is logged, never used.
	RequestedOrgID string `json:"-"`
}

// Validate validates the RequestUploadCommand
func (c RequestUploadCommand) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

// RequestUploadResult is the upload response body
type RequestUploadResult struct {
	VideoID      string `json:"videoId"`
	PresignedURL string `json:"presignedUrl"`
	S3Key        string `json:"s3Key"`
	ExpiresIn    int    `json:"expiresIn"`
}
