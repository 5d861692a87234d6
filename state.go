package liststream

// State represents the lifecycle state of a Stream.
type State int32

// Stream lifecycle states
const (
	// StateIdle means the stream is stopped and the next pull may resume it
	StateIdle State = iota

	// StateRunning means a production loop is active
	StateRunning

	// StateEnded means the stream terminated normally; absorbing
	StateEnded

	// StateFailed means the stream halted on a provider failure; absorbing
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state is absorbing: once a stream is Ended or
// Failed, further pulls are no-ops.
func (s State) Terminal() bool {
	return s == StateEnded || s == StateFailed
}
