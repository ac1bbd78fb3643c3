// Package mcp exposes handler classes as MCP tools. Its central Service type
// loads configuration, builds the tool registry from the handler catalog,
// applies tool policies and serves the registered tools to MCP sessions
// through NewHandler and the authenticated Endpoint.
package mcp
