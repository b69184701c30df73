package checkout

// State is the stage a single checkout invocation reached.
type State string

const (
	StateValidating State = "VALIDATING"
	StateRejected   State = "REJECTED"
	StateComposing  State = "COMPOSING"
	StateSending    State = "SENDING"
	StateSucceeded  State = "SUCCEEDED"
	StateFailed     State = "FAILED"
)

func (s State) IsTerminal() bool {
	return s == StateRejected || s == StateSucceeded || s == StateFailed
}

func (s State) String() string {
	return string(s)
}

var transitions = map[State][]State{
	StateValidating: {StateRejected, StateComposing, StateFailed},
	StateComposing:  {StateSending, StateFailed},
	StateSending:    {StateSucceeded, StateFailed},
}

// CanTransitionTo reports whether next may follow s.
func (s State) CanTransitionTo(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
