package exec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecutionError_WrapsCauseAndUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := &ExecutionError{FunctionID: "fn1", Cause: cause}
	assert.Contains(t, err.Error(), "fn1")
	assert.Contains(t, err.Error(), "boom")
	assert.ErrorIs(t, err, cause)
}

func TestCancelledError_MentionsNodeID(t *testing.T) {
	err := &CancelledError{NodeID: "goal"}
	assert.Contains(t, err.Error(), "goal")
}
