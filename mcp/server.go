package mcp

import (
	"context"

	"github.com/viant/jsonrpc/transport"
	protocolclient "github.com/viant/mcp-protocol/client"
	"github.com/viant/mcp-protocol/logger"
	serverproto "github.com/viant/mcp-protocol/server"
)

// NewHandler returns the protocol handler of one session. Its tool set is
// taken from the tool registry when the session opens: every registry tool
// becomes an entry whose calls run the authorize, hook and dispatch pipeline.
// Sessions opened before Start fail with registry.ErrNotReady.
func (s *Service) NewHandler(ctx context.Context, notifier transport.Notifier, l logger.Logger, cli protocolclient.Operations) (serverproto.Handler, error) {
	tools, err := s.registry.Tools()
	if err != nil {
		return nil, err
	}
	impl := serverproto.NewDefaultHandler(notifier, l, cli)
	for _, aTool := range tools {
		impl.Registry.ToolRegistry.Put(aTool.Name(), s.toolEntry(aTool))
	}
	return impl, nil
}
