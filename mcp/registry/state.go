package registry

// State is the registry lifecycle state.
type State int32

const (
	Uninitialized State = iota
	Initializing
	Ready
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	}
	return "uninitialized"
}

// Stage is a pipeline stage of a single call.
type Stage string

const (
	StageAuthorize Stage = "authorize"
	StagePreHook   Stage = "preHook"
	StageDispatch  Stage = "dispatch"
	StagePostHook  Stage = "postHook"
	StageShape     Stage = "shape"
	StageDone      Stage = "done"
)
