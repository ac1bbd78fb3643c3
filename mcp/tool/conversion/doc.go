// Package conversion translates registry tool definitions and results into
// the MCP protocol types advertised to clients.
package conversion
