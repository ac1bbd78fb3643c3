// Package context carries per-request values (bearer token, caller identity,
// request scope) from the HTTP boundary to tool calls.
package context
