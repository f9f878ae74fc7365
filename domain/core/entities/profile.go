package entities

import (
	"errors"
	"strings"
	"time"

	"github.com/rahulAtGit/ZentriqVision/domain/core/valueobjects"
)

// UserProfile is stored under USER#<userId>/PROFILE#<userId>
type UserProfile struct {
	PK          string `dynamodbav:"PK"`
	SK          string `dynamodbav:"SK"`
	UserID      string `dynamodbav:"userId"`
	Email       string `dynamodbav:"email"`
	GivenName   string `dynamodbav:"givenName"`
	PhoneNumber string `dynamodbav:"phoneNumber,omitempty"`
	OrgID       string `dynamodbav:"orgId"`
	CreatedAt   string `dynamodbav:"createdAt"`
	UpdatedAt   string `dynamodbav:"updatedAt"`
}

// NewUserProfile builds the default profile of an authenticated principal
func NewUserProfile(userID, email, givenName, orgID string, now time.Time) (*UserProfile, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	ts := now.UTC().Format(time.RFC3339)
	return &UserProfile{
		PK:        valueobjects.UserKey(userID),
		SK:        valueobjects.ProfileKey(userID),
		UserID:    userID,
		Email:     email,
		GivenName: givenName,
		OrgID:     orgID,
		CreatedAt: ts,
		UpdatedAt: ts,
	}, nil
}

// DecodeUserProfile converts a stored record into a UserProfile
func DecodeUserProfile(r Record) (*UserProfile, error) {
	var p UserProfile
	if err := DecodeRecord(r, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ApplyUpdate changes only the caller-editable fields
func (p *UserProfile) ApplyUpdate(givenName, phoneNumber *string, now time.Time) error {
	if givenName == nil && phoneNumber == nil {
		return errors.New("no updatable fields supplied")
	}
	if givenName != nil {
		name := strings.TrimSpace(*givenName)
		if name == "" {
			return errors.New("givenName cannot be empty")
		}
		p.GivenName = name
	}
	if phoneNumber != nil {
		p.PhoneNumber = strings.TrimSpace(*phoneNumber)
	}
	p.UpdatedAt = now.UTC().Format(time.RFC3339)
	return nil
}
