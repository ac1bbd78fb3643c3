package mcp

import (
	"context"
	"errors"

	"github.com/viant/jsonrpc"
	mcpctx "github.com/viant/mcp-registry/mcp/context"
	"github.com/viant/mcp-registry/mcp/matcher"
	"github.com/viant/mcp-registry/mcp/registry"
	"github.com/viant/mcp-registry/mcp/schema"
	"github.com/viant/mcp-registry/mcp/tool"
	"github.com/viant/mcp-registry/mcp/tool/conversion"

	mcpschema "github.com/viant/mcp-protocol/schema"
	serverproto "github.com/viant/mcp-protocol/server"
)

// AccessDeniedCode is the JSON-RPC error code reported for denied calls.
const AccessDeniedCode = -32003

// Tools returns one tool entry per registered tool, in registration order.
// The result is empty until Start succeeds.
func (s *Service) Tools() serverproto.Tools {
	var result = make(serverproto.Tools, 0)
	tools, err := s.registry.Tools()
	if err != nil {
		s.logger.Warn().Err(err).Msg("tool definitions unavailable")
		return result
	}
	for _, aTool := range tools {
		result = append(result, s.toolEntry(aTool))
	}
	return result
}

// LookupTool returns the entry of the named tool; name may use any spelling
// accepted by tool.Canonical.
func (s *Service) LookupTool(name string) (*serverproto.ToolEntry, error) {
	aTool, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	return s.toolEntry(aTool), nil
}

// ToolMetadata returns description and input schema for a named tool. The
// third return value is false when the tool does not exist.
func (s *Service) ToolMetadata(name string) (string, mcpschema.ToolInputSchema, bool) {
	aTool, err := s.lookup(name)
	if err != nil {
		return "", mcpschema.ToolInputSchema{}, false
	}
	return aTool.Description(), conversion.InputSchema(aTool.Schema()), true
}

// MatchTools returns the tools whose name matches pattern, either as
// registered or in slash notation ("system/echo/echo" for "system_echo-echo").
func (s *Service) MatchTools(pattern string) serverproto.Tools {
	var result = make(serverproto.Tools, 0)
	for _, entry := range s.Tools() {
		name := entry.Metadata.Name
		if matcher.Match(pattern, name) || matcher.Match(pattern, slashName(name)) {
			result = append(result, entry)
		}
	}
	return result
}

// ExecuteTool runs a tool through the full pipeline as the local identity.
func (s *Service) ExecuteTool(ctx context.Context, name string, args map[string]interface{}) (*registry.Result, error) {
	aTool, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	if _, ok := mcpctx.Identity(ctx); !ok {
		ctx = mcpctx.WithIdentity(ctx, s.localIdentity())
	}
	return aTool.Call(ctx, s.root, args)
}

func (s *Service) lookup(name string) (*registry.Tool, error) {
	aTool, err := s.registry.Lookup(name)
	if errors.Is(err, registry.ErrToolNotFound) {
		if canonical := tool.Canonical(name); canonical != name {
			return s.registry.Lookup(canonical)
		}
	}
	return aTool, err
}

func (s *Service) toolEntry(aTool *registry.Tool) *serverproto.ToolEntry {
	name := aTool.Name()
	return &serverproto.ToolEntry{
		Metadata: conversion.Tool(aTool),
		Handler: func(ctx context.Context, request *mcpschema.CallToolRequest) (*mcpschema.CallToolResult, *jsonrpc.Error) {
			return s.callTool(ctx, name, request.Params.Arguments)
		},
	}
}

// callTool runs a tool on behalf of a protocol session and maps the outcome
// to the protocol: handler and hook failures are tool results flagged as
// errors, everything else is a JSON-RPC error.
func (s *Service) callTool(ctx context.Context, name string, args map[string]interface{}) (*mcpschema.CallToolResult, *jsonrpc.Error) {
	result, err := s.registry.Call(ctx, s.root, name, args)
	if err == nil {
		return conversion.CallToolResult(result), nil
	}
	var invalid *schema.InvalidArgumentsError
	switch {
	case errors.Is(err, registry.ErrAccessDenied):
		return nil, jsonrpc.NewError(AccessDeniedCode, err.Error(), nil)
	case errors.As(err, &invalid):
		return nil, jsonrpc.NewError(jsonrpc.InvalidParams, err.Error(), nil)
	case errors.Is(err, registry.ErrNotReady), errors.Is(err, registry.ErrToolNotFound):
		return nil, jsonrpc.NewError(jsonrpc.InternalError, err.Error(), nil)
	}
	return conversion.ErrorResult(err), nil
}

func slashName(name string) string {
	aName := tool.Name(name)
	if aName.Method() == "" {
		return name
	}
	return aName.Service() + "/" + aName.Method()
}
