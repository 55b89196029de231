package harness

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionFailed_IsNotActionable(t *testing.T) {
	s := newTestSession(t, WithTimeout(2*time.Second))

	err := s.Locator("#buyBtn").actionFailed("Click", context.DeadlineExceeded)
	require.ErrorIs(t, err, ErrElementNotActionable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var aerr *ActionError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "Click", aerr.Action)
	assert.Equal(t, "#buyBtn", aerr.Target)
	assert.Equal(t, 2*time.Second, aerr.Timeout)
}
