package mcp

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mcp-registry/mcp/authz"
	"github.com/viant/mcp-registry/mcp/config"
	mcpctx "github.com/viant/mcp-registry/mcp/context"
)

const internalErrorEnvelope = `{"jsonrpc":"2.0","error":{"code":-32603,"message":"Internal server error"},"id":null}`

type stubSession struct {
	handle func(w http.ResponseWriter, r *http.Request) error
	closed int32
}

func (s *stubSession) Handle(w http.ResponseWriter, r *http.Request) error {
	return s.handle(w, r)
}

func (s *stubSession) Close() error {
	atomic.AddInt32(&s.closed, 1)
	return nil
}

// lockedBuffer collects logs written by server goroutines.
type lockedBuffer struct {
	mux sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mux.Lock()
	defer b.mux.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mux.Lock()
	defer b.mux.Unlock()
	return b.buf.String()
}

func newTestEndpoint(t *testing.T, auth *config.Auth, connector Connector) (*Endpoint, *lockedBuffer) {
	t.Helper()
	logs := &lockedBuffer{}
	svc, err := New(context.Background(),
		WithConfig(&config.Config{Builtins: []string{"none"}, Auth: auth}),
		WithLogger(zerolog.New(logs)),
	)
	require.NoError(t, err)
	return svc.Endpoint(connector), logs
}

func sessionConnector(session Session) Connector {
	return ConnectorFunc(func(context.Context) (Session, error) { return session, nil })
}

func TestEndpoint_Session(t *testing.T) {
	var testCases = []struct {
		description string
		handle      func(w http.ResponseWriter, r *http.Request) error
		expStatus   int
		expBody     string
		expLogs     []string
	}{
		{
			description: "session completes",
			handle: func(w http.ResponseWriter, r *http.Request) error {
				_, err := w.Write([]byte(`{"jsonrpc":"2.0","result":{},"id":1}`))
				return err
			},
			expStatus: http.StatusOK,
			expBody:   `{"jsonrpc":"2.0","result":{},"id":1}`,
			expLogs:   []string{"Session closed."},
		},
		{
			description: "session fails before responding",
			handle: func(w http.ResponseWriter, r *http.Request) error {
				return errors.New("transport failure")
			},
			expStatus: http.StatusInternalServerError,
			expBody:   internalErrorEnvelope,
			expLogs:   []string{"Closing Session as it errored out.", "Failed to establish MCP connection"},
		},
		{
			description: "session fails after responding",
			handle: func(w http.ResponseWriter, r *http.Request) error {
				w.WriteHeader(http.StatusAccepted)
				return errors.New("stream broken")
			},
			expStatus: http.StatusAccepted,
			expBody:   "",
			expLogs:   []string{"Closing Session as it errored out.", "Failed to establish MCP connection"},
		},
		{
			description: "session panics",
			handle: func(w http.ResponseWriter, r *http.Request) error {
				panic("kaboom")
			},
			expStatus: http.StatusInternalServerError,
			expBody:   internalErrorEnvelope,
			expLogs:   []string{"Closing Session as it errored out.", "kaboom"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			session := &stubSession{handle: tc.handle}
			endpoint, logs := newTestEndpoint(t, nil, sessionConnector(session))
			recorder := httptest.NewRecorder()
			endpoint.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(`{}`)))

			assert.Equal(t, tc.expStatus, recorder.Code)
			assert.Equal(t, tc.expBody, strings.TrimSpace(recorder.Body.String()))
			assert.EqualValues(t, 1, atomic.LoadInt32(&session.closed), "session is torn down once")
			for _, expected := range tc.expLogs {
				assert.Contains(t, logs.String(), expected)
			}
		})
	}
}

func TestEndpoint_ConnectFailure(t *testing.T) {
	connector := ConnectorFunc(func(context.Context) (Session, error) {
		return nil, errors.New("no server")
	})
	endpoint, logs := newTestEndpoint(t, nil, connector)
	recorder := httptest.NewRecorder()
	endpoint.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/mcp", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, internalErrorEnvelope, recorder.Body.String())
	assert.Contains(t, logs.String(), "Failed to establish MCP connection")
	assert.NotContains(t, logs.String(), "Session closed.")
}

func TestEndpoint_Authentication(t *testing.T) {
	verifier := authz.NewTokenVerifier("secret", "")
	issue := func(id string, permissions ...string) string {
		token, err := verifier.Issue(&authz.Identity{ID: id, Permissions: permissions}, time.Minute)
		require.NoError(t, err)
		return token
	}

	var testCases = []struct {
		description string
		auth        *config.Auth
		header      string
		expStatus   int
		expID       string
	}{
		{
			description: "valid token",
			auth:        &config.Auth{Secret: "secret"},
			header:      "Bearer " + issue("alice", config.DefaultEndpointPermission),
			expStatus:   http.StatusOK,
			expID:       "alice",
		},
		{
			description: "missing token",
			auth:        &config.Auth{Secret: "secret"},
			expStatus:   http.StatusUnauthorized,
		},
		{
			description: "invalid token",
			auth:        &config.Auth{Secret: "secret"},
			header:      "Bearer not-a-token",
			expStatus:   http.StatusUnauthorized,
		},
		{
			description: "missing endpoint permission",
			auth:        &config.Auth{Secret: "secret"},
			header:      "Bearer " + issue("bob", "math"),
			expStatus:   http.StatusForbidden,
		},
		{
			description: "custom endpoint permission",
			auth:        &config.Auth{Secret: "secret", Permission: "tools"},
			header:      "Bearer " + issue("carol", "tools"),
			expStatus:   http.StatusOK,
			expID:       "carol",
		},
		{
			description: "anonymous access granted",
			auth:        &config.Auth{Secret: "secret", Anonymous: []string{config.DefaultEndpointPermission}},
			expStatus:   http.StatusOK,
		},
		{
			description: "anonymous access without endpoint permission",
			auth:        &config.Auth{Anonymous: []string{"math"}},
			expStatus:   http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			var seen *authz.Identity
			session := &stubSession{handle: func(w http.ResponseWriter, r *http.Request) error {
				seen, _ = mcpctx.Identity(r.Context())
				w.WriteHeader(http.StatusOK)
				return nil
			}}
			endpoint, _ := newTestEndpoint(t, tc.auth, sessionConnector(session))
			request := httptest.NewRequest(http.MethodPost, "/mcp", nil)
			if tc.header != "" {
				request.Header.Set("Authorization", tc.header)
			}
			recorder := httptest.NewRecorder()
			endpoint.ServeHTTP(recorder, request)

			assert.Equal(t, tc.expStatus, recorder.Code)
			if tc.expStatus != http.StatusOK {
				assert.Nil(t, seen, "session never opened")
				assert.EqualValues(t, 0, atomic.LoadInt32(&session.closed))
				return
			}
			require.NotNil(t, seen)
			assert.Equal(t, tc.expID, seen.ID)
		})
	}
}

func TestEndpoint_HandlerConnector(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("data: {}\n\n"))
		w.(http.Flusher).Flush()
	})
	endpoint, logs := newTestEndpoint(t, nil, HandlerConnector(handler))
	server := httptest.NewServer(endpoint)
	defer server.Close()

	response, err := http.Post(server.URL, "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer response.Body.Close()
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "text/event-stream", response.Header.Get("Content-Type"))
	assert.Eventually(t, func() bool { return strings.Contains(logs.String(), "Session closed.") }, time.Second, 10*time.Millisecond)
}
