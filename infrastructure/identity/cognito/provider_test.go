package cognito

import (
	"context"
	"errors"
	"testing"

	"github.com/rahulAtGit/ZentriqVision/application/ports"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAPI struct {
	err        error
	signUpIn   *cip.SignUpInput
	authIn     *cip.InitiateAuthInput
	authOut    *cip.InitiateAuthOutput
	confirmIn  *cip.ConfirmSignUpInput
	forgotIn   *cip.ForgotPasswordInput
	resetInput *cip.ConfirmForgotPasswordInput
}

func (f *fakeAPI) SignUp(ctx context.Context, params *cip.SignUpInput, optFns ...func(*cip.Options)) (*cip.SignUpOutput, error) {
	f.signUpIn = params
	if f.err != nil {
		return nil, f.err
	}
	return &cip.SignUpOutput{UserSub: aws.String("sub-1")}, nil
}

func (f *fakeAPI) InitiateAuth(ctx context.Context, params *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error) {
	f.authIn = params
	if f.err != nil {
		return nil, f.err
	}
	return f.authOut, nil
}

func (f *fakeAPI) ConfirmSignUp(ctx context.Context, params *cip.ConfirmSignUpInput, optFns ...func(*cip.Options)) (*cip.ConfirmSignUpOutput, error) {
	f.confirmIn = params
	if f.err != nil {
		return nil, f.err
	}
	return &cip.ConfirmSignUpOutput{}, nil
}

func (f *fakeAPI) ForgotPassword(ctx context.Context, params *cip.ForgotPasswordInput, optFns ...func(*cip.Options)) (*cip.ForgotPasswordOutput, error) {
	f.forgotIn = params
	if f.err != nil {
		return nil, f.err
	}
	return &cip.ForgotPasswordOutput{}, nil
}

func (f *fakeAPI) ConfirmForgotPassword(ctx context.Context, params *cip.ConfirmForgotPasswordInput, optFns ...func(*cip.Options)) (*cip.ConfirmForgotPasswordOutput, error) {
	f.resetInput = params
	if f.err != nil {
		return nil, f.err
	}
	return &cip.ConfirmForgotPasswordOutput{}, nil
}

func apiError(code string) error {
	return &smithy.GenericAPIError{Code: code, Message: code + " raised"}
}

func attribute(attrs []types.AttributeType, name string) string {
	for _, a := range attrs {
		if aws.ToString(a.Name) == name {
			return aws.ToString(a.Value)
		}
	}
	return ""
}

func TestProvider_SignUp(t *testing.T) {
	api := &fakeAPI{}
	p := NewProvider(api, "client-1", zap.NewNop())

	result, err := p.SignUp(context.Background(), ports.SignUpInput{
		Email:       "ada@example.com",
		Password:    "pw",
		GivenName:   "Ada",
		PhoneNumber: "+15551234567",
		OrgID:       "acme",
	})

	require.NoError(t, err)
	assert.Equal(t, "sub-1", result.UserSub)
	assert.Equal(t, "client-1", aws.ToString(api.signUpIn.ClientId))
	assert.Equal(t, "ada@example.com", aws.ToString(api.signUpIn.Username))
	assert.Equal(t, "Ada", attribute(api.signUpIn.UserAttributes, "given_name"))
	assert.Equal(t, "+15551234567", attribute(api.signUpIn.UserAttributes, "phone_number"))
	assert.Equal(t, "acme", attribute(api.signUpIn.UserAttributes, "custom:orgId"))
}

func TestProvider_SignIn(t *testing.T) {
	api := &fakeAPI{authOut: &cip.InitiateAuthOutput{
		AuthenticationResult: &types.AuthenticationResultType{
			AccessToken:  aws.String("access"),
			IdToken:      aws.String("id"),
			RefreshToken: aws.String("refresh"),
			ExpiresIn:    3600,
			TokenType:    aws.String("Bearer"),
		},
	}}

	tokens, err := NewProvider(api, "client-1", zap.NewNop()).SignIn(context.Background(), "ada@example.com", "pw")

	require.NoError(t, err)
	assert.Equal(t, "access", tokens.AccessToken)
	assert.Equal(t, "id", tokens.IDToken)
	assert.Equal(t, int32(3600), tokens.ExpiresIn)
	assert.Equal(t, types.AuthFlowTypeUserPasswordAuth, api.authIn.AuthFlow)
	assert.Equal(t, "ada@example.com", api.authIn.AuthParameters["USERNAME"])
}

func TestProvider_SignInChallenges(t *testing.T) {
	for _, challenge := range []types.ChallengeNameType{
		types.ChallengeNameTypeNewPasswordRequired,
		types.ChallengeNameTypeSmsMfa,
		types.ChallengeNameTypeCustomChallenge,
	} {
		api := &fakeAPI{authOut: &cip.InitiateAuthOutput{ChallengeName: challenge}}
		_, err := NewProvider(api, "c", zap.NewNop()).SignIn(context.Background(), "a@b.c", "pw")
		assert.True(t, apperrors.IsValidation(err), "challenge %s", challenge)
	}
}

func TestProvider_ErrorClassification(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		code   string
		call   func(p *Provider) error
		status int
	}{
		{"existing user", "UsernameExistsException", func(p *Provider) error {
			_, err := p.SignUp(ctx, ports.SignUpInput{Email: "a@b.c"})
			return err
		}, 409},
		{"weak password", "InvalidPasswordException", func(p *Provider) error {
			_, err := p.SignUp(ctx, ports.SignUpInput{Email: "a@b.c"})
			return err
		}, 400},
		{"wrong password", "NotAuthorizedException", func(p *Provider) error {
			_, err := p.SignIn(ctx, "a@b.c", "pw")
			return err
		}, 401},
		{"unknown user", "UserNotFoundException", func(p *Provider) error {
			_, err := p.SignIn(ctx, "a@b.c", "pw")
			return err
		}, 404},
		{"unconfirmed", "UserNotConfirmedException", func(p *Provider) error {
			_, err := p.SignIn(ctx, "a@b.c", "pw")
			return err
		}, 400},
		{"code mismatch", "CodeMismatchException", func(p *Provider) error {
			return p.ConfirmSignUp(ctx, "a@b.c", "123")
		}, 400},
		{"expired code", "ExpiredCodeException", func(p *Provider) error {
			return p.ConfirmForgotPassword(ctx, "a@b.c", "123", "pw")
		}, 400},
		{"forgot unknown user", "UserNotFoundException", func(p *Provider) error {
			return p.ForgotPassword(ctx, "a@b.c")
		}, 404},
		{"unmapped", "InternalErrorException", func(p *Provider) error {
			return p.ForgotPassword(ctx, "a@b.c")
		}, 502},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProvider(&fakeAPI{err: apiError(tt.code)}, "c", zap.NewNop())
			appErr := apperrors.GetAppError(tt.call(p))
			require.NotNil(t, appErr)
			assert.Equal(t, tt.status, appErr.HTTPStatus)
		})
	}
}

func TestProvider_NonAPIErrors(t *testing.T) {
	ctx := context.Background()

	err := NewProvider(&fakeAPI{err: errors.New("dial tcp: timeout")}, "c", zap.NewNop()).ForgotPassword(ctx, "a@b.c")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))

	err = NewProvider(&fakeAPI{err: context.Canceled}, "c", zap.NewNop()).ForgotPassword(ctx, "a@b.c")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, apperrors.IsAppError(err))
}
