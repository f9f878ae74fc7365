package queries

import (
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"
)

// GetProfileQuery reads the caller's profile, creating the default on first read
type GetProfileQuery struct {
	UserID    string
	Email     string
	GivenName string
	OrgID     string
}

// Validate validates the GetProfileQuery
func (q GetProfileQuery) Validate() error {
	if q.UserID == "" {
		return apperrors.NewValidationError("user ID is required")
	}
	return nil
}

// ProfileResult is the profile response body
type ProfileResult struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	GivenName   string `json:"givenName"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	OrgID       string `json:"orgId"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}
