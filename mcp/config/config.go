package config

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/viant/mcp"
	"github.com/viant/mcp-registry/internal/logger"
	"github.com/viant/mcp-registry/mcp/hook"
)

// DefaultEndpointPermission guards the MCP HTTP endpoint.
const DefaultEndpointPermission = "mcp.access"

// Group holds items declared inline or referenced by URL.
type Group[T any] struct {
	URL   string `yaml:"url,omitempty" json:"url,omitempty" short:"u" long:"url" description:"url"`
	Items []T    `yaml:"items,omitempty" json:"items,omitempty" short:"i" long:"items" description:"items"`
}

type Config struct {
	Server    *mcp.ServerOptions `yaml:"server,omitempty" json:"server,omitempty"`
	Logging   logger.Config      `yaml:"logging,omitempty" json:"logging,omitempty"`
	Auth      *Auth              `yaml:"auth,omitempty" json:"auth,omitempty"`
	Telemetry *Telemetry         `yaml:"telemetry,omitempty" json:"telemetry,omitempty"`
	Builtins  []string           `yaml:"builtins,omitempty" json:"builtins,omitempty"`
	Policies  *Group[*Policy]    `yaml:"policies,omitempty" json:"policies,omitempty"`
}

// Auth configures bearer authentication.
type Auth struct {
	// Secret is the HS256 key; an empty secret disables token verification.
	Secret string `yaml:"secret,omitempty" json:"secret,omitempty"`
	Issuer string `yaml:"issuer,omitempty" json:"issuer,omitempty"`
	// Permission is required to reach the MCP endpoint at all.
	Permission string `yaml:"permission,omitempty" json:"permission,omitempty"`
	// Anonymous lists permissions granted to callers without a token.
	Anonymous []string `yaml:"anonymous,omitempty" json:"anonymous,omitempty"`
	// Local lists permissions of the CLI identity used by exec.
	Local []string `yaml:"local,omitempty" json:"local,omitempty"`
}

// EndpointPermission returns the endpoint permission or its default.
func (a *Auth) EndpointPermission() string {
	if a == nil || a.Permission == "" {
		return DefaultEndpointPermission
	}
	return a.Permission
}

// Telemetry toggles the OpenTelemetry observer.
type Telemetry struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// Policy overrides the authorization requirement and hook bindings of a tool.
type Policy struct {
	Tool        string        `yaml:"tool" json:"tool"`
	Description string        `yaml:"description,omitempty" json:"description,omitempty"`
	Permissions []string      `yaml:"permissions,omitempty" json:"permissions,omitempty"`
	PreHook     *hook.Binding `yaml:"preHook,omitempty" json:"preHook,omitempty"`
	PostHook    *hook.Binding `yaml:"postHook,omitempty" json:"postHook,omitempty"`
}

// Load reads a YAML (or JSON) config from URL.
func Load(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", URL, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", URL, err)
	}
	return &cfg, nil
}

// LoadPolicies returns inline policies or downloads them from Policies.URL.
func (c *Config) LoadPolicies(ctx context.Context) ([]*Policy, error) {
	if c == nil || c.Policies == nil {
		return nil, nil
	}
	if len(c.Policies.Items) > 0 {
		return c.Policies.Items, nil
	}
	if c.Policies.URL == "" {
		return nil, nil
	}
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, c.Policies.URL)
	if err != nil {
		return nil, fmt.Errorf("download policies %q: %w", c.Policies.URL, err)
	}
	var out []*Policy
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse policies %q: %w", c.Policies.URL, err)
	}
	return out, nil
}

// Validate checks inline settings.
func (c *Config) Validate() error {
	if c.Auth != nil && c.Auth.Issuer != "" && c.Auth.Secret == "" {
		return fmt.Errorf("auth: issuer %q requires a secret", c.Auth.Issuer)
	}
	if c.Policies != nil {
		if err := ValidatePolicies(c.Policies.Items); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePolicies checks that each policy names a distinct tool.
func ValidatePolicies(policies []*Policy) error {
	seen := map[string]bool{}
	for i, policy := range policies {
		if policy == nil || policy.Tool == "" {
			return fmt.Errorf("policies[%d]: tool was empty", i)
		}
		if seen[policy.Tool] {
			return fmt.Errorf("policies[%d]: duplicate policy for %q", i, policy.Tool)
		}
		seen[policy.Tool] = true
	}
	return nil
}
