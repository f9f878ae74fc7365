package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrMissingToken     = errors.New("missing authentication token")
	ErrInvalidClaims    = errors.New("invalid token claims")
)

// DefaultOrgID is the organization of a principal that carries neither an
// orgId attribute nor a group
const DefaultOrgID = "default-org"

// Claims are the Cognito user pool token claims the backend reads
type Claims struct {
	Email     string   `json:"email,omitempty"`
	GivenName string   `json:"given_name,omitempty"`
	Name      string   `json:"name,omitempty"`
	OrgID     string   `json:"custom:orgId,omitempty"`
	Groups    []string `json:"cognito:groups,omitempty"`
	TokenUse  string   `json:"token_use,omitempty"`
	ClientID  string   `json:"client_id,omitempty"`
	jwt.RegisteredClaims
}

// UserContext converts the claims into the authenticated principal.
// The organization comes from custom:orgId, then the first group.
func (c *Claims) UserContext() *UserContext {
	user := &UserContext{
		UserID:    c.Subject,
		Email:     c.Email,
		GivenName: c.GivenName,
		OrgID:     c.OrgID,
	}
	if user.GivenName == "" {
		user.GivenName = c.Name
	}
	if user.OrgID == "" && len(c.Groups) > 0 {
		user.OrgID = c.Groups[0]
	}
	if user.OrgID == "" {
		user.OrgID = DefaultOrgID
	}
	return user
}

// TokenValidator turns a bearer token into the authenticated principal
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*UserContext, error)
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningMethod string   // RS256 or HS256
	JWKSURL       string   // For RS256
	SecretKey     string   // For HS256
	Issuer        string   // Expected issuer
	Audience      []string // Accepted app client IDs
}

// CognitoIssuer is the issuer URL of a user pool
func CognitoIssuer(region, userPoolID string) string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", region, userPoolID)
}

// CognitoJWKSURL is the key set location of a user pool issuer
func CognitoJWKSURL(issuer string) string {
	return strings.TrimSuffix(issuer, "/") + "/.well-known/jwks.json"
}

// JWTValidator handles JWT validation
type JWTValidator struct {
	keyfunc  jwt.Keyfunc
	parser   *jwt.Parser
	audience []string
}

var _ TokenValidator = (*JWTValidator)(nil)

// NewJWTValidator creates a new JWT validator. For RS256 the key set is
// fetched from JWKSURL and refreshed in the background until ctx is done.
func NewJWTValidator(ctx context.Context, config JWTConfig) (*JWTValidator, error) {
	switch config.SigningMethod {
	case "RS256":
		if config.JWKSURL == "" {
			return nil, errors.New("JWKS URL required for RS256")
		}
		jwks, err := keyfunc.NewDefaultCtx(ctx, []string{config.JWKSURL})
		if err != nil {
			return nil, fmt.Errorf("failed to load key set: %w", err)
		}
		return NewJWTValidatorWithKeyfunc(config, jwks.Keyfunc), nil
	case "HS256":
		if config.SecretKey == "" {
			return nil, errors.New("secret key required for HS256")
		}
		secret := []byte(config.SecretKey)
		return NewJWTValidatorWithKeyfunc(config, func(*jwt.Token) (interface{}, error) {
			return secret, nil
		}), nil
	default:
		return nil, fmt.Errorf("unsupported signing method: %s", config.SigningMethod)
	}
}

// NewJWTValidatorWithKeyfunc creates a validator around an existing key lookup
func NewJWTValidatorWithKeyfunc(config JWTConfig, kf jwt.Keyfunc) *JWTValidator {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{config.SigningMethod}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(config.Issuer))
	}
	return &JWTValidator{
		keyfunc:  kf,
		parser:   jwt.NewParser(opts...),
		audience: config.Audience,
	}
}

// ValidateToken validates a JWT token and returns the principal
func (v *JWTValidator) ValidateToken(ctx context.Context, tokenString string) (*UserContext, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, v.keyfunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrInvalidSignature
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidClaims
	}

	switch claims.TokenUse {
	case "", "id", "access":
	default:
		return nil, fmt.Errorf("%w: unexpected token_use %q", ErrInvalidClaims, claims.TokenUse)
	}

	// ID tokens carry the app client in aud, access tokens in client_id
	if len(v.audience) > 0 && !v.audienceAllowed(claims) {
		return nil, fmt.Errorf("%w: invalid audience", ErrInvalidClaims)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing user ID", ErrInvalidClaims)
	}

	return claims.UserContext(), nil
}

func (v *JWTValidator) audienceAllowed(claims *Claims) bool {
	for _, aud := range v.audience {
		if claims.ClientID == aud || contains(claims.Audience, aud) {
			return true
		}
	}
	return false
}

// JWTSigner issues HS256 tokens shaped like user pool ID tokens. It backs
// local runs where no user pool is configured.
type JWTSigner struct {
	secretKey []byte
	issuer    string
	audience  []string
	ttl       time.Duration
}

// NewJWTSigner creates a new HS256 signer
func NewJWTSigner(secret, issuer string, audience []string, ttl time.Duration) (*JWTSigner, error) {
	if secret == "" {
		return nil, errors.New("secret key required for HS256")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTSigner{
		secretKey: []byte(secret),
		issuer:    issuer,
		audience:  audience,
		ttl:       ttl,
	}, nil
}

// Sign issues a token for the principal
func (s *JWTSigner) Sign(user UserContext, now time.Time) (string, error) {
	claims := &Claims{
		Email:     user.Email,
		GivenName: user.GivenName,
		OrgID:     user.OrgID,
		TokenUse:  "id",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   user.UserID,
			Audience:  s.audience,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
}

// UserContext represents the authenticated principal
type UserContext struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	GivenName string `json:"givenName"`
	OrgID     string `json:"orgId"`
}

// ContextKey for storing user context
type contextKey string

const UserContextKey contextKey = "user"

// GetUserFromContext extracts user from context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(UserContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, errors.New("user not found in context")
	}
	return user, nil
}

// SetUserInContext adds user to context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
