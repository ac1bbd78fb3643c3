// Package conv provides small, reflection-based helpers to convert between
// arbitrary Go values. Convert performs a best-effort JSON marshal/unmarshal
// round-trip which is sufficient for coercing loosely typed tool arguments
// (decoded JSON) into the typed parameters of handler methods.
package conv
