package build

import "github.com/skyfend/sapient-client/wire"

// BuildTaskAck constructs the TaskAck wrapper for a given task id and
// outcome. reason is a one-line human description of the action taken (or
// why the task was rejected).
func (b *Builder) BuildTaskAck(taskID string, accepted bool, reason string) (*wire.Wrapper, error) {
	status := wire.TaskStatusAccepted
	if !accepted {
		status = wire.TaskStatusRejected
	}
	ack := &wire.TaskAck{
		TaskID:     taskID,
		TaskStatus: status,
	}
	if reason != "" {
		ack.Reason = []string{reason}
	}
	return b.wrap(ack)
}
