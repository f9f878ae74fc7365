// Package cognito implements the account flows against a Cognito user pool.
package cognito

import (
	"context"
	"errors"

	"github.com/rahulAtGit/ZentriqVision/application/ports"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// API is the subset of the user pool client used by the provider
type API interface {
	SignUp(ctx context.Context, params *cip.SignUpInput, optFns ...func(*cip.Options)) (*cip.SignUpOutput, error)
	InitiateAuth(ctx context.Context, params *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	ConfirmSignUp(ctx context.Context, params *cip.ConfirmSignUpInput, optFns ...func(*cip.Options)) (*cip.ConfirmSignUpOutput, error)
	ForgotPassword(ctx context.Context, params *cip.ForgotPasswordInput, optFns ...func(*cip.Options)) (*cip.ForgotPasswordOutput, error)
	ConfirmForgotPassword(ctx context.Context, params *cip.ConfirmForgotPasswordInput, optFns ...func(*cip.Options)) (*cip.ConfirmForgotPasswordOutput, error)
}

// Provider implements ports.IdentityProvider
type Provider struct {
	client   API
	clientID string
	logger   *zap.Logger
}

var _ ports.IdentityProvider = (*Provider)(nil)

// NewProvider creates a provider for the given app client
func NewProvider(client API, clientID string, logger *zap.Logger) *Provider {
	return &Provider{
		client:   client,
		clientID: clientID,
		logger:   logger,
	}
}

// SignUp registers a user with email as the username
func (p *Provider) SignUp(ctx context.Context, in ports.SignUpInput) (*ports.SignUpResult, error) {
	attrs := []types.AttributeType{
		{Name: aws.String("email"), Value: aws.String(in.Email)},
		{Name: aws.String("given_name"), Value: aws.String(in.GivenName)},
	}
	if in.PhoneNumber != "" {
		attrs = append(attrs, types.AttributeType{Name: aws.String("phone_number"), Value: aws.String(in.PhoneNumber)})
	}
	if in.OrgID != "" {
		attrs = append(attrs, types.AttributeType{Name: aws.String("custom:orgId"), Value: aws.String(in.OrgID)})
	}

	out, err := p.client.SignUp(ctx, &cip.SignUpInput{
		ClientId:       aws.String(p.clientID),
		Username:       aws.String(in.Email),
		Password:       aws.String(in.Password),
		UserAttributes: attrs,
	})
	if err != nil {
		return nil, p.classify("sign_up", err, map[string]errorMapping{
			"UsernameExistsException":   conflict("User already exists"),
			"InvalidPasswordException":  invalid("Password does not meet requirements"),
			"InvalidParameterException": invalid("Invalid parameters provided"),
		})
	}
	return &ports.SignUpResult{
		UserSub:       aws.ToString(out.UserSub),
		UserConfirmed: out.UserConfirmed,
	}, nil
}

// SignIn runs the USER_PASSWORD_AUTH flow
func (p *Provider) SignIn(ctx context.Context, email, password string) (*ports.AuthTokens, error) {
	out, err := p.client.InitiateAuth(ctx, &cip.InitiateAuthInput{
		ClientId: aws.String(p.clientID),
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	})
	if err != nil {
		return nil, p.classify("sign_in", err, map[string]errorMapping{
			"UserNotConfirmedException": invalid("Please confirm your email address"),
			"NotAuthorizedException":    unauthorized("Incorrect email or password"),
			"UserNotFoundException":     notFound("User"),
		})
	}

	if res := out.AuthenticationResult; res != nil {
		return &ports.AuthTokens{
			AccessToken:  aws.ToString(res.AccessToken),
			IDToken:      aws.ToString(res.IdToken),
			RefreshToken: aws.ToString(res.RefreshToken),
			ExpiresIn:    res.ExpiresIn,
			TokenType:    aws.ToString(res.TokenType),
		}, nil
	}

	switch out.ChallengeName {
	case types.ChallengeNameTypeNewPasswordRequired:
		return nil, apperrors.NewValidationError("New password required")
	case types.ChallengeNameTypeSmsMfa:
		return nil, apperrors.NewValidationError("SMS MFA required")
	default:
		return nil, apperrors.NewValidationError("Authentication failed")
	}
}

// ConfirmSignUp confirms a user with the emailed code
func (p *Provider) ConfirmSignUp(ctx context.Context, email, code string) error {
	_, err := p.client.ConfirmSignUp(ctx, &cip.ConfirmSignUpInput{
		ClientId:         aws.String(p.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
	})
	if err != nil {
		return p.classify("confirm_sign_up", err, map[string]errorMapping{
			"CodeMismatchException": invalid("Invalid verification code"),
			"ExpiredCodeException":  invalid("Verification code has expired"),
		})
	}
	return nil
}

// ForgotPassword sends a reset code
func (p *Provider) ForgotPassword(ctx context.Context, email string) error {
	_, err := p.client.ForgotPassword(ctx, &cip.ForgotPasswordInput{
		ClientId: aws.String(p.clientID),
		Username: aws.String(email),
	})
	if err != nil {
		return p.classify("forgot_password", err, map[string]errorMapping{
			"UserNotFoundException": notFound("User"),
		})
	}
	return nil
}

// ConfirmForgotPassword sets a new password with the reset code
func (p *Provider) ConfirmForgotPassword(ctx context.Context, email, code, newPassword string) error {
	_, err := p.client.ConfirmForgotPassword(ctx, &cip.ConfirmForgotPasswordInput{
		ClientId:         aws.String(p.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
		Password:         aws.String(newPassword),
	})
	if err != nil {
		return p.classify("confirm_forgot_password", err, map[string]errorMapping{
			"CodeMismatchException":    invalid("Invalid reset code"),
			"ExpiredCodeException":     invalid("Reset code has expired"),
			"InvalidPasswordException": invalid("New password does not meet requirements"),
		})
	}
	return nil
}

type errorMapping func() *apperrors.AppError

func invalid(msg string) errorMapping {
	return func() *apperrors.AppError { return apperrors.NewValidationError(msg) }
}

func conflict(msg string) errorMapping {
	return func() *apperrors.AppError { return apperrors.NewConflictError(msg) }
}

func unauthorized(msg string) errorMapping {
	return func() *apperrors.AppError { return apperrors.NewUnauthorizedError(msg) }
}

func notFound(resource string) errorMapping {
	return func() *apperrors.AppError { return apperrors.NewNotFoundError(resource) }
}

// classify maps user pool error names onto application errors. Anything
// unmapped is an external failure.
func (p *Provider) classify(op string, err error, known map[string]errorMapping) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if mapping, ok := known[apiErr.ErrorCode()]; ok {
			p.logger.Debug("User pool rejected request",
				zap.String("operation", op),
				zap.String("code", apiErr.ErrorCode()),
			)
			return mapping().WithCode(apiErr.ErrorCode()).WithCause(err)
		}
	}
	p.logger.Error("User pool call failed",
		zap.String("operation", op),
		zap.Error(err),
	)
	return apperrors.NewExternalError("cognito", err)
}
