package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_Transitions(t *testing.T) {
	assert.True(t, StateValidating.CanTransitionTo(StateComposing))
	assert.True(t, StateValidating.CanTransitionTo(StateRejected))
	assert.True(t, StateComposing.CanTransitionTo(StateSending))
	assert.True(t, StateSending.CanTransitionTo(StateSucceeded))
	assert.True(t, StateSending.CanTransitionTo(StateFailed))

	assert.False(t, StateValidating.CanTransitionTo(StateSucceeded))
	assert.False(t, StateRejected.CanTransitionTo(StateComposing))
	assert.False(t, StateSucceeded.CanTransitionTo(StateFailed))
}

func TestState_IsTerminal(t *testing.T) {
	for _, s := range []State{StateRejected, StateSucceeded, StateFailed} {
		assert.True(t, s.IsTerminal(), s.String())
	}
	for _, s := range []State{StateValidating, StateComposing, StateSending} {
		assert.False(t, s.IsTerminal(), s.String())
	}
}

func TestResult_AdvanceIgnoresIllegal(t *testing.T) {
	r := Result{State: StateSucceeded}
	r.advance(StateFailed)
	assert.Equal(t, StateSucceeded, r.State)
}
