package services

import (
	"context"
	"strings"

	"github.com/rahulAtGit/ZentriqVision/application/ports"
	"github.com/rahulAtGit/ZentriqVision/pkg/auth"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"
	"github.com/rahulAtGit/ZentriqVision/pkg/utils"

	"go.uber.org/zap"
)

// SignUpRequest registers a new account
type SignUpRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	GivenName   string `json:"givenName" validate:"required,max=100"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,e164"`
	OrgID       string `json:"orgId" validate:"omitempty,max=64"`
}

// SignInRequest exchanges credentials for tokens
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ConfirmSignUpRequest confirms an account with the emailed code
type ConfirmSignUpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// ForgotPasswordRequest starts a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest completes a password reset
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// ValidateTokenRequest asks whether a token is still good
type ValidateTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// AccountService fronts the user pool flows used by the public auth endpoints
type AccountService struct {
	identity  ports.IdentityProvider
	validator auth.TokenValidator
	logger    *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(identity ports.IdentityProvider, validator auth.TokenValidator, logger *zap.Logger) *AccountService {
	return &AccountService{
		identity:  identity,
		validator: validator,
		logger:    logger,
	}
}

// SignUp registers the account and reports whether confirmation is pending
func (s *AccountService) SignUp(ctx context.Context, req SignUpRequest) (*ports.SignUpResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	result, err := s.identity.SignUp(ctx, ports.SignUpInput{
		Email:       strings.ToLower(req.Email),
		Password:    req.Password,
		GivenName:   req.GivenName,
		PhoneNumber: req.PhoneNumber,
		OrgID:       req.OrgID,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("User registered", zap.String("userSub", result.UserSub))
	return result, nil
}

// SignIn authenticates with email and password
func (s *AccountService) SignIn(ctx context.Context, req SignInRequest) (*ports.AuthTokens, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return s.identity.SignIn(ctx, strings.ToLower(req.Email), req.Password)
}

// ConfirmSignUp confirms a registered account
func (s *AccountService) ConfirmSignUp(ctx context.Context, req ConfirmSignUpRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	return s.identity.ConfirmSignUp(ctx, strings.ToLower(req.Email), req.Code)
}

// ForgotPassword sends a reset code
func (s *AccountService) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	return s.identity.ForgotPassword(ctx, strings.ToLower(req.Email))
}

// ResetPassword sets a new password with the emailed code
func (s *AccountService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if err := validate(req); err != nil {
		return err
	}
	return s.identity.ConfirmForgotPassword(ctx, strings.ToLower(req.Email), req.Code, req.NewPassword)
}

// ValidateToken returns the principal a token authenticates
func (s *AccountService) ValidateToken(ctx context.Context, req ValidateTokenRequest) (*auth.UserContext, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	user, err := s.validator.ValidateToken(ctx, req.Token)
	if err != nil {
		s.logger.Debug("Token rejected", zap.Error(err))
		return nil, apperrors.NewUnauthorizedError("Invalid token")
	}
	return user, nil
}

func validate(req interface{}) error {
	if err := utils.ValidateStruct(req); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}
