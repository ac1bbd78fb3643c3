// Package registry builds the tool catalog once from discovered handler
// methods and runs the per-call execution pipeline:
// authorize, pre-hook, dispatch, post-hook, result shaping and scope release.
package registry
