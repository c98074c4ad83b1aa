package apperr

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOfClassifiesWrappedErrors(t *testing.T) {
	base := New(KindValidation, "teacher %d holds no teacher role", 7)
	wrapped := fmt.Errorf("assign homeroom: %w", base)

	require.Equal(t, KindValidation, KindOf(wrapped))
	require.True(t, Is(wrapped, KindValidation))
	require.Equal(t, "teacher 7 holds no teacher role", Message(wrapped, "fallback"))
}

func TestKindOfTreatsDeadlineAsUnavailable(t *testing.T) {
	err := fmt.Errorf("query students: %w", context.DeadlineExceeded)
	require.Equal(t, KindUnavailable, KindOf(err))
}

func TestKindOfDefaultsToInternal(t *testing.T) {
	require.Equal(t, KindInternal, KindOf(fmt.Errorf("boom")))
	require.Equal(t, "fallback", Message(fmt.Errorf("boom"), "fallback"))
}
