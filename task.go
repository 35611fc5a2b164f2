package sapient

import (
	"strings"

	"github.com/skyfend/sapient-client/wire"
)

// maxTaskRequestLength bounds a well-formed command.request string; beyond
// it (or empty, after trimming) the task is rejected rather than
// blanket-accepted.
const maxTaskRequestLength = 256

type taskAction int

const (
	taskActionNone taskAction = iota
	taskActionSendRegistration
	taskActionSendStatus
)

// classifyTaskRequest maps a case-insensitive command.request string to the
// follow-up action the handler must perform.
func classifyTaskRequest(request string) taskAction {
	switch {
	case strings.EqualFold(request, "Registration"), strings.EqualFold(request, "Request Registration"):
		return taskActionSendRegistration
	case strings.EqualFold(request, "Status"), strings.EqualFold(request, "Request Status"):
		return taskActionSendStatus
	default:
		return taskActionNone
	}
}

// handleTask runs the task handler: validates the request, writes a
// TaskAck, records the active task id on accept, performs any requested
// one-shot action, then clears the active task id.
func (c *Client) handleTask(task *wire.Task) {
	request := strings.TrimSpace(task.Command.Request)

	if request == "" || len(request) > maxTaskRequestLength {
		ack, err := c.builder.BuildTaskAck(task.TaskID, false, "malformed or oversized command.request")
		if err != nil {
			c.log.Warn().Err(err).Msg("failed to build task ack")
			return
		}
		if err := c.send(ack); err != nil {
			c.log.Warn().Err(err).Msg("failed to send task ack")
		}
		return
	}

	action := classifyTaskRequest(request)
	c.setActiveTaskID(task.TaskID)

	ack, err := c.builder.BuildTaskAck(task.TaskID, true, taskReason(action))
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to build task ack")
		c.clearActiveTaskID()
		return
	}
	if err := c.send(ack); err != nil {
		c.log.Warn().Err(err).Msg("failed to send task ack")
	}

	switch action {
	case taskActionSendRegistration:
		if w, err := c.builder.BuildRegistration(c.deviceInfo()); err == nil {
			if err := c.send(w); err != nil {
				c.log.Warn().Err(err).Msg("task-driven registration send failed")
			}
		}
	case taskActionSendStatus:
		if err := c.sendStatusReport(); err != nil {
			c.log.Warn().Err(err).Msg("task-driven status report failed")
		}
	}

	c.clearActiveTaskID()
}

func taskReason(action taskAction) string {
	switch action {
	case taskActionSendRegistration:
		return "task accepted: sending registration"
	case taskActionSendStatus:
		return "task accepted: sending status report"
	default:
		return "task accepted: no follow-up action"
	}
}
