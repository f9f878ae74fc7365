package commands

import (
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"
	"github.com/rahulAtGit/ZentriqVision/pkg/utils"
)

// UpdateProfileCommand edits the caller's profile. Only the given name and
// phone number are editable; the principal fields seed a missing profile.
type UpdateProfileCommand struct {
	UserID    string `json:"userId" validate:"required"`
	Email     string `json:"-"`
	GivenName string `json:"-"`
	OrgID     string `json:"-"`

	NewGivenName *string `json:"givenName" validate:"omitempty,max=100"`
	PhoneNumber  *string `json:"phoneNumber" validate:"omitempty,e164"`
}

// Validate validates the UpdateProfileCommand
func (c UpdateProfileCommand) Validate() error {
	if c.NewGivenName == nil && c.PhoneNumber == nil {
		return apperrors.NewValidationError("no valid fields to update")
	}
	if err := utils.ValidateStruct(c); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}
