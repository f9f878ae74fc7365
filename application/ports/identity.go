package ports

import "context"

// SignUpInput carries the attributes of a new user pool account
type SignUpInput struct {
	Email       string
	Password    string
	GivenName   string
	PhoneNumber string
	OrgID       string
}

// AuthTokens is the token set returned by a successful sign-in
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int32  `json:"expiresIn"`
	TokenType    string `json:"tokenType"`
}

// SignUpResult reports whether the account still needs confirmation
type SignUpResult struct {
	UserSub       string `json:"userSub"`
	UserConfirmed bool   `json:"userConfirmed"`
}

// IdentityProvider manages user pool accounts. Failures are reported as
// *errors.AppError values classified by the provider's error names.
type IdentityProvider interface {
	SignUp(ctx context.Context, in SignUpInput) (*SignUpResult, error)
	SignIn(ctx context.Context, email, password string) (*AuthTokens, error)
	ConfirmSignUp(ctx context.Context, email, code string) error
	ForgotPassword(ctx context.Context, email string) error
	ConfirmForgotPassword(ctx context.Context, email, code, newPassword string) error
}
