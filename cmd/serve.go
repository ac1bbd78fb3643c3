package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/viant/mcp"
	mcpregistry "github.com/viant/mcp-registry/mcp"
)

// ServeCmd launches an MCP server that exposes the locally registered tools.
// The server configuration (port, transport, ...) is taken from the same
// config file that the service uses. Every HTTP request passes the
// authenticated endpoint before reaching the protocol handler.
type ServeCmd struct {
	Addr string `short:"a" long:"addr" description:"listen address, overrides the configured one"`
}

func (c *ServeCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}

	var srvOpts *mcp.ServerOptions
	if cfg := svc.Config(); cfg != nil {
		srvOpts = cfg.Server
	}

	mcpServer, err := mcp.NewServer(svc.NewHandler, srvOpts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	httpSrv := mcpServer.HTTP(ctx, c.Addr)
	httpSrv.Handler = svc.Endpoint(mcpregistry.HandlerConnector(httpSrv.Handler))

	logger := svc.Logger()
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server failed")
			cancel()
		}
	}()

	fmt.Fprintf(stdout, "MCP server listening on %s\n", httpSrv.Addr)

	// Wait for SIGINT/SIGTERM
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	select {
	case <-sigs:
	case <-ctx.Done():
	}
	logger.Info().Msg("shutting down")
	return httpSrv.Close()
}
