package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
logging:
  level: debug
auth:
  secret: s3cr3t
  issuer: mcp-registry
  anonymous: [system.clock]
telemetry:
  enabled: true
builtins:
  - system/
policies:
  items:
    - tool: system_echo-echo
      permissions: [echo.read]
      postHook:
        key: audit
        config:
          mask: text
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "s3cr3t", cfg.Auth.Secret)
	assert.Equal(t, DefaultEndpointPermission, cfg.Auth.EndpointPermission())
	assert.Equal(t, []string{"system.clock"}, cfg.Auth.Anonymous)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, []string{"system/"}, cfg.Builtins)

	policies, err := cfg.LoadPolicies(context.Background())
	require.NoError(t, err)
	require.Len(t, policies, 1)
	assert.Equal(t, "audit", policies[0].PostHook.Key)
	assert.Equal(t, "text", policies[0].PostHook.Config["mask"])
}

func TestLoadPolicies_URL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policies.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- tool: a\n  permissions: [x]\n- tool: b\n"), 0644))

	cfg := &Config{Policies: &Group[*Policy]{URL: path}}
	policies, err := cfg.LoadPolicies(context.Background())
	require.NoError(t, err)
	require.Len(t, policies, 2)
	assert.Equal(t, []string{"x"}, policies[0].Permissions)
	assert.NoError(t, ValidatePolicies(policies))
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		description string
		cfg         *Config
		expectErr   bool
	}{
		{description: "empty", cfg: &Config{}},
		{description: "issuer without secret", cfg: &Config{Auth: &Auth{Issuer: "x"}}, expectErr: true},
		{description: "policy without tool", cfg: &Config{Policies: &Group[*Policy]{Items: []*Policy{{}}}}, expectErr: true},
		{description: "duplicate policy", cfg: &Config{Policies: &Group[*Policy]{Items: []*Policy{{Tool: "a"}, {Tool: "a"}}}}, expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
