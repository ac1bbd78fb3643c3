// Package cmd implements the sub-commands of the mcp-registry command-line
// interface. Each file registers a single sub-command (serve, list-tools,
// tool, exec, token); configuration loading and service initialisation shared
// between commands live in shared.go.
package cmd
