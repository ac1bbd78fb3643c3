package cmd

import (
	"context"
	"sync"

	"github.com/viant/mcp-registry/mcp"
	mcpconfig "github.com/viant/mcp-registry/mcp/config"
)

var (
	cfgPath    string
	svcOptions []mcp.Option

	svcOnce sync.Once
	svcInst *mcp.Service
	svcErr  error
)

// setConfigPath remembers the CLI-level -f/--config parameter so that the
// service singleton can be created lazily by whichever sub-command is executed
// first.
func setConfigPath(p string) { cfgPath = p }

// loadConfig reads the config referenced by -f/--config; without one the zero
// config is used.
func loadConfig(ctx context.Context) (*mcpconfig.Config, error) {
	if cfgPath == "" {
		return &mcpconfig.Config{}, nil
	}
	return mcpconfig.Load(ctx, cfgPath)
}

// serviceSingleton initialises an mcp.Service only once and reuses the instance
// across sub-commands within the same CLI invocation.
func serviceSingleton() (*mcp.Service, error) {
	svcOnce.Do(func() {
		ctx := context.Background()
		cfg, err := loadConfig(ctx)
		if err != nil {
			svcErr = err
			return
		}
		opts := append([]mcp.Option{mcp.WithConfig(cfg)}, svcOptions...)
		if svcInst, svcErr = mcp.New(ctx, opts...); svcErr != nil {
			return
		}
		svcErr = svcInst.Start(ctx)
	})
	return svcInst, svcErr
}

// shutdownService releases the singleton when one was created.
func shutdownService() {
	if svcInst != nil {
		_ = svcInst.Shutdown(context.Background())
	}
}
