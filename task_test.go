package sapient

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyTaskRequestRegistrationVariants(t *testing.T) {
	require.Equal(t, taskActionSendRegistration, classifyTaskRequest("Registration"))
	require.Equal(t, taskActionSendRegistration, classifyTaskRequest("registration"))
	require.Equal(t, taskActionSendRegistration, classifyTaskRequest("Request Registration"))
	require.Equal(t, taskActionSendRegistration, classifyTaskRequest("REQUEST REGISTRATION"))
}

func TestClassifyTaskRequestStatusVariants(t *testing.T) {
	require.Equal(t, taskActionSendStatus, classifyTaskRequest("Status"))
	require.Equal(t, taskActionSendStatus, classifyTaskRequest("status"))
	require.Equal(t, taskActionSendStatus, classifyTaskRequest("Request Status"))
}

func TestClassifyTaskRequestUnknownIsNone(t *testing.T) {
	require.Equal(t, taskActionNone, classifyTaskRequest("Reboot"))
	require.Equal(t, taskActionNone, classifyTaskRequest(""))
}

func TestTaskReasonDescribesEachAction(t *testing.T) {
	require.Contains(t, taskReason(taskActionSendRegistration), "registration")
	require.Contains(t, taskReason(taskActionSendStatus), "status")
	require.Contains(t, taskReason(taskActionNone), "no follow-up")
}
