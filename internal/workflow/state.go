package workflow

// Phase is the lifecycle position of a workflow's request.
type Phase int

const (
	Idle Phase = iota
	Loading
	Resolved
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// State is the tagged request state of one workflow. Result is set when
// Resolved, and holds the fallback value when Failed. Message is only set when
// Failed.
type State[T any] struct {
	Phase   Phase
	Result  T
	Message string
}

func (s State[T]) Loading() bool { return s.Phase == Loading }
