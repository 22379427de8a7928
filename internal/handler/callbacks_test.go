package handler

import (
	"sync"
	"testing"

	"hanbot/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal string",
			input:    "rate_abc_good",
			expected: "rate_abc_good",
		},
		{
			name:     "string with whitespace",
			input:    "  rate_abc_good  ",
			expected: "rate_abc_good",
		},
		{
			name:     "string with newline",
			input:    "rate\ndata",
			expected: "ratedata",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    "   ",
			expected: "",
		},
		{
			name:     "string with unprintable characters",
			input:    "save\x00_0\x01",
			expected: "save_0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanCallbackData(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestHandler_StateTransitions(t *testing.T) {
	h := &Handler{states: make(map[int64]*domain.StateData)}

	// Unknown user defaults to idle
	state := h.GetState(123)
	assert.Equal(t, domain.StateIdle, state.State)

	h.SetState(123, &domain.StateData{
		State:       domain.StateWaitingLabel,
		LabelCardID: "id-1",
	})
	state = h.GetState(123)
	assert.Equal(t, domain.StateWaitingLabel, state.State)
	assert.Equal(t, "id-1", state.LabelCardID)

	h.ResetState(123)
	state = h.GetState(123)
	assert.Equal(t, domain.StateIdle, state.State)
	assert.Empty(t, state.LabelCardID)
}

func TestHandler_UserLock(t *testing.T) {
	h := &Handler{
		states:        make(map[int64]*domain.StateData),
		callbackLocks: make(map[int64]*sync.Mutex),
	}

	lock := h.userLock(123)
	assert.NotNil(t, lock)
	assert.Same(t, lock, h.userLock(123))
	assert.NotSame(t, lock, h.userLock(456))
}
