package services

import (
	"context"
	"testing"
	"time"

	"github.com/rahulAtGit/ZentriqVision/application/ports"
	"github.com/rahulAtGit/ZentriqVision/application/ports/mocks"
	"github.com/rahulAtGit/ZentriqVision/pkg/auth"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T, identity ports.IdentityProvider) *AccountService {
	t.Helper()
	validator, err := auth.NewJWTValidator(context.Background(), auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     "secret",
	})
	require.NoError(t, err)
	return NewAccountService(identity, validator, zap.NewNop())
}

func TestAccountService_SignUp(t *testing.T) {
	ctx := context.Background()
	identity := new(mocks.MockIdentityProvider)
	identity.On("SignUp", ctx, ports.SignUpInput{
		Email:     "ada@example.com",
		Password:  "Secr3t!pass",
		GivenName: "Ada",
		OrgID:     "acme",
	}).Return(&ports.SignUpResult{UserSub: "sub-1"}, nil)

	result, err := newService(t, identity).SignUp(ctx, SignUpRequest{
		Email:     "Ada@Example.com",
		Password:  "Secr3t!pass",
		GivenName: "Ada",
		OrgID:     "acme",
	})

	require.NoError(t, err)
	assert.Equal(t, "sub-1", result.UserSub)
	identity.AssertExpectations(t)
}

func TestAccountService_ValidationStopsBeforeProvider(t *testing.T) {
	ctx := context.Background()
	identity := new(mocks.MockIdentityProvider)
	svc := newService(t, identity)

	_, err := svc.SignUp(ctx, SignUpRequest{Email: "ada@example.com", Password: "x"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.SignIn(ctx, SignInRequest{Email: "not-an-email", Password: "x"})
	assert.True(t, apperrors.IsValidation(err))

	assert.True(t, apperrors.IsValidation(svc.ConfirmSignUp(ctx, ConfirmSignUpRequest{Email: "ada@example.com"})))
	assert.True(t, apperrors.IsValidation(svc.ForgotPassword(ctx, ForgotPasswordRequest{})))
	assert.True(t, apperrors.IsValidation(svc.ResetPassword(ctx, ResetPasswordRequest{Email: "ada@example.com", Code: "1"})))

	identity.AssertNotCalled(t, "SignUp")
	identity.AssertNotCalled(t, "SignIn")
}

func TestAccountService_ProviderErrorsPassThrough(t *testing.T) {
	ctx := context.Background()
	identity := new(mocks.MockIdentityProvider)
	identity.On("SignIn", ctx, "ada@example.com", "wrong").
		Return(nil, apperrors.NewUnauthorizedError("Incorrect email or password"))
	identity.On("ForgotPassword", ctx, "ghost@example.com").Return(apperrors.NewNotFoundError("user"))

	svc := newService(t, identity)

	_, err := svc.SignIn(ctx, SignInRequest{Email: "ada@example.com", Password: "wrong"})
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.True(t, apperrors.IsNotFound(svc.ForgotPassword(ctx, ForgotPasswordRequest{Email: "ghost@example.com"})))
}

func TestAccountService_ValidateToken(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, new(mocks.MockIdentityProvider))
	signer, err := auth.NewJWTSigner("secret", "", nil, time.Hour)
	require.NoError(t, err)
	token, err := signer.Sign(auth.UserContext{UserID: "u1", Email: "ada@example.com", OrgID: "acme"}, time.Now())
	require.NoError(t, err)

	user, err := svc.ValidateToken(ctx, ValidateTokenRequest{Token: token})
	require.NoError(t, err)
	assert.Equal(t, "u1", user.UserID)
	assert.Equal(t, "acme", user.OrgID)

	_, err = svc.ValidateToken(ctx, ValidateTokenRequest{Token: "garbage"})
	assert.True(t, apperrors.IsUnauthorized(err))

	_, err = svc.ValidateToken(ctx, ValidateTokenRequest{})
	assert.True(t, apperrors.IsValidation(err))
}
