// Package schema derives structural parameter schemas for tools, renders them
// as JSON Schema documents and validates argument bags against them.
package schema
