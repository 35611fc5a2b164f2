package sapient

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeMapsSentinels(t *testing.T) {
	require.Equal(t, CodeOK, Code(nil))
	require.Equal(t, CodeNotConfigured, Code(ErrNotConfigured))
	require.Equal(t, CodeConnectFailed, Code(ErrConnectFailed))
}

func TestCodeMapsUnrecognizedErrorToCreateFailed(t *testing.T) {
	require.Equal(t, CodeCreateFailed, Code(errors.New("boom")))
}

func TestCodeUnwrapsWrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", ErrConnectFailed)
	require.Equal(t, CodeConnectFailed, Code(wrapped))
}
