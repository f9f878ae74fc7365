package auth

import (
	"fmt"
	"strings"
)

// UserFromAuthorizerClaims builds the principal from the claims an API
// Gateway Cognito authorizer attaches to the request context. The gateway
// has already verified the token.
func UserFromAuthorizerClaims(raw map[string]interface{}) (*UserContext, error) {
	str := func(name string) string {
		s, _ := raw[name].(string)
		return s
	}

	claims := &Claims{
		Email:     str("email"),
		GivenName: str("given_name"),
		Name:      str("name"),
		OrgID:     str("custom:orgId"),
		Groups:    authorizerGroups(raw["cognito:groups"]),
	}
	claims.Subject = str("sub")
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing user ID", ErrInvalidClaims)
	}
	return claims.UserContext(), nil
}

// authorizerGroups accepts the group claim as a list or as the flattened
// string form REST APIs pass through, e.g. "[acme admins]" or "acme,admins"
func authorizerGroups(v interface{}) []string {
	switch g := v.(type) {
	case []string:
		return g
	case []interface{}:
		out := make([]string, 0, len(g))
		for _, item := range g {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		g = strings.Trim(strings.TrimSpace(g), "[]")
		return strings.FieldsFunc(g, func(r rune) bool {
			return r == ',' || r == ' '
		})
	}
	return nil
}
