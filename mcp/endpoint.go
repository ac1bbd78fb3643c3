package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-registry/internal/logger"
	"github.com/viant/mcp-registry/mcp/authz"
	"github.com/viant/mcp-registry/mcp/config"
	mcpctx "github.com/viant/mcp-registry/mcp/context"
)

// Session is one protocol exchange bound to an HTTP request.
type Session interface {
	Handle(w http.ResponseWriter, r *http.Request) error
	Close() error
}

// Connector opens a session for an incoming request.
type Connector interface {
	Connect(ctx context.Context) (Session, error)
}

// ConnectorFunc adapts a function to Connector.
type ConnectorFunc func(ctx context.Context) (Session, error)

// Connect implements Connector
func (fn ConnectorFunc) Connect(ctx context.Context) (Session, error) { return fn(ctx) }

// HandlerConnector serves every request through handler, typically the HTTP
// handler of the protocol server.
func HandlerConnector(handler http.Handler) Connector {
	return ConnectorFunc(func(context.Context) (Session, error) {
		return &handlerSession{handler: handler}, nil
	})
}

type handlerSession struct {
	handler http.Handler
}

func (s *handlerSession) Handle(w http.ResponseWriter, r *http.Request) error {
	s.handler.ServeHTTP(w, r)
	return nil
}

func (s *handlerSession) Close() error { return nil }

type envelopeError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Version string        `json:"jsonrpc"`
	Error   envelopeError `json:"error"`
	ID      interface{}   `json:"id"`
}

// Endpoint authenticates MCP HTTP requests and runs each one in its own
// session.
type Endpoint struct {
	connector Connector
	auth      *config.Auth
	verifier  *authz.TokenVerifier
	logger    zerolog.Logger
}

// Endpoint returns the authenticated MCP endpoint serving sessions opened by
// connector.
func (s *Service) Endpoint(connector Connector) *Endpoint {
	return &Endpoint{
		connector: connector,
		auth:      s.config.Auth,
		verifier:  s.verifier,
		logger:    logger.Component(s.logger, "endpoint"),
	}
}

// ServeHTTP implements http.Handler
func (e *Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, status, err := e.authenticate(r)
	if err != nil {
		e.logger.Warn().Err(err).Int("status", status).Msg("rejected MCP request")
		http.Error(w, http.StatusText(status), status)
		return
	}
	tracker := &responseTracker{ResponseWriter: w}
	if err = e.serve(tracker, r.WithContext(ctx)); err != nil {
		e.logger.Error().Err(err).Msg("Failed to establish MCP connection")
		if !tracker.written {
			writeInternalError(tracker)
		}
	}
}

func (e *Endpoint) serve(w http.ResponseWriter, r *http.Request) error {
	var session Session
	err := protect(func() (err error) {
		session, err = e.connector.Connect(r.Context())
		return err
	})
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("connector returned no session")
	}
	err = protect(func() error { return session.Handle(w, r) })
	e.teardown(session, err)
	return err
}

// teardown closes the session once the exchange ended.
func (e *Endpoint) teardown(session Session, handleErr error) {
	if err := protect(session.Close); err != nil {
		e.logger.Warn().Err(err).Msg("failed to close session")
	}
	if handleErr != nil {
		e.logger.Info().Msg("Closing Session as it errored out.")
		return
	}
	e.logger.Info().Msg("Session closed.")
}

// authenticate resolves the caller and enforces the endpoint permission.
// Without auth configuration the endpoint is open and callers are
// anonymous.
func (e *Endpoint) authenticate(r *http.Request) (context.Context, int, error) {
	ctx := r.Context()
	if e.auth == nil {
		return ctx, http.StatusOK, nil
	}
	token, hasToken := authz.BearerToken(r.Header.Get("Authorization"))
	var identity *authz.Identity
	switch {
	case hasToken && e.verifier != nil:
		var err error
		if identity, err = e.verifier.Verify(token); err != nil {
			return nil, http.StatusUnauthorized, err
		}
		ctx = mcpctx.WithAuthToken(ctx, token)
	case e.verifier != nil && len(e.auth.Anonymous) == 0:
		return nil, http.StatusUnauthorized, authz.ErrUnauthenticated
	default:
		identity = authz.Anonymous(e.auth.Anonymous...)
	}
	if permission := e.auth.EndpointPermission(); !identity.Has(permission) {
		return nil, http.StatusForbidden, fmt.Errorf("identity %q lacks permission %q", identity.ID, permission)
	}
	return mcpctx.WithIdentity(ctx, identity), http.StatusOK, nil
}

func protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

func writeInternalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(errorEnvelope{
		Version: "2.0",
		Error:   envelopeError{Code: int(jsonrpc.InternalError), Message: "Internal server error"},
	})
}

// responseTracker records whether the response has started.
type responseTracker struct {
	http.ResponseWriter
	written bool
}

func (t *responseTracker) WriteHeader(status int) {
	t.written = true
	t.ResponseWriter.WriteHeader(status)
}

func (t *responseTracker) Write(data []byte) (int, error) {
	t.written = true
	return t.ResponseWriter.Write(data)
}

// Flush keeps streaming responses working through the tracker.
func (t *responseTracker) Flush() {
	if flusher, ok := t.ResponseWriter.(http.Flusher); ok {
		t.written = true
		flusher.Flush()
	}
}

func (t *responseTracker) Unwrap() http.ResponseWriter { return t.ResponseWriter }
