package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/mcp-registry/mcp/authz"
)

// TokenCmd issues a bearer token for the configured auth secret.
type TokenCmd struct {
	Subject     string        `short:"s" long:"subject" description:"token subject (caller id)" required:"yes"`
	Permissions []string      `short:"p" long:"permission" description:"granted permission, repeatable"`
	TTL         time.Duration `long:"ttl" description:"token lifetime, 0 for no expiry" default:"24h"`
}

func (c *TokenCmd) Execute(_ []string) error {
	cfg, err := loadConfig(context.Background())
	if err != nil {
		return err
	}
	if cfg.Auth == nil || cfg.Auth.Secret == "" {
		return fmt.Errorf("auth.secret is not configured")
	}
	verifier := authz.NewTokenVerifier(cfg.Auth.Secret, cfg.Auth.Issuer)
	token, err := verifier.Issue(&authz.Identity{ID: c.Subject, Permissions: c.Permissions}, c.TTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, token)
	return nil
}
