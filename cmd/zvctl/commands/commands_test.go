package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rahulAtGit/ZentriqVision/infrastructure/config"
	"github.com/rahulAtGit/ZentriqVision/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localEnv(t *testing.T) {
	for _, key := range []string{"CONFIG_FILE", "USER_POOL_ID", "USER_POOL_CLIENT_ID", "JWT_SECRET", "JWT_ISSUER", "STORE_BACKEND"} {
		t.Setenv(key, "")
	}
	t.Setenv("ENVIRONMENT", "development")
}

func TestTokenCommand(t *testing.T) {
	localEnv(t)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"token", "--org", "acme", "--user", "u-42", "--email", "ops@acme.io"})
	t.Cleanup(func() { orgID = auth.DefaultOrgID })

	require.NoError(t, Execute())

	var resp struct {
		Token     string           `json:"token"`
		ExpiresIn int              `json:"expiresIn"`
		User      auth.UserContext `json:"user"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, 3600, resp.ExpiresIn)

	validator, err := auth.NewJWTValidator(context.Background(), config.Default().JWT())
	require.NoError(t, err)
	user, err := validator.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-42", user.UserID)
	assert.Equal(t, "acme", user.OrgID)
	assert.Equal(t, "ops@acme.io", user.Email)
}

func TestPrintResult(t *testing.T) {
	t.Cleanup(func() { output = "json" })
	v := map[string]interface{}{"videos": []string{"a", "b"}, "count": 2}

	var buf bytes.Buffer
	output = "yaml"
	require.NoError(t, printResult(&buf, v))
	assert.Contains(t, buf.String(), "count: 2")
	assert.Contains(t, buf.String(), "- a")

	output = "xml"
	assert.Error(t, printResult(&buf, v))
}
