package build

import (
	"testing"

	"github.com/skyfend/sapient-client/wire"
	"github.com/stretchr/testify/require"
)

func TestBuildTaskAckAccepted(t *testing.T) {
	b := newTestBuilder(t)

	w, err := b.BuildTaskAck("task-1", true, "sending status report")
	require.NoError(t, err)
	require.Equal(t, "task-1", w.TaskAck.TaskID)
	require.Equal(t, wire.TaskStatusAccepted, w.TaskAck.TaskStatus)
	require.Equal(t, []string{"sending status report"}, w.TaskAck.Reason)
}

func TestBuildTaskAckRejectedOmitsEmptyReason(t *testing.T) {
	b := newTestBuilder(t)

	w, err := b.BuildTaskAck("task-2", false, "")
	require.NoError(t, err)
	require.Equal(t, wire.TaskStatusRejected, w.TaskAck.TaskStatus)
	require.Empty(t, w.TaskAck.Reason)
}
