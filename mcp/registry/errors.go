package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady is returned by reads before Initialize completed.
	ErrNotReady = errors.New("tool registry is not ready")
	// ErrToolNotFound is returned for unknown tool names.
	ErrToolNotFound = errors.New("tool not found")
	// ErrAccessDenied matches every *AccessDeniedError.
	ErrAccessDenied = errors.New("access denied")
	// ErrMissingAuthorization is the cause of denials for handlers without a
	// declared requirement.
	ErrMissingAuthorization = errors.New("missing authorization configuration")
)

// AccessDeniedError is an authorization denial. The handler was never
// dispatched.
type AccessDeniedError struct {
	Tool     string
	Identity string
	Reason   string
	Err      error
}

func (e *AccessDeniedError) Error() string {
	ret := fmt.Sprintf("tool %q: access denied", e.Tool)
	if e.Reason != "" {
		ret += ": " + e.Reason
	}
	return ret
}

func (e *AccessDeniedError) Is(target error) bool { return target == ErrAccessDenied }

func (e *AccessDeniedError) Unwrap() error { return e.Err }

// HookError is a failing pre or post hook.
type HookError struct {
	Tool  string
	Stage Stage
	Err   error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("tool %q: %s hook failed: %v", e.Tool, e.Stage, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }

// DispatchError is a handler failure, re-raised after the post-hook ran.
type DispatchError struct {
	Tool string
	Err  error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("tool %q: %v", e.Tool, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

func asDispatchError(tool string, err error) error {
	var dispatchErr *DispatchError
	if errors.As(err, &dispatchErr) {
		return err
	}
	return &DispatchError{Tool: tool, Err: err}
}
