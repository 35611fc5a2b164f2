package sapient

import "sync"

// clientMutex guards the module-level singleton used by Init/Cleanup.
// New application code should prefer New/Close directly; Init/Cleanup
// exist for callers that want a single package-level instance.
var (
	clientMutex sync.Mutex
	singleton   *Client
)

// Init creates the module-level singleton client. It is not reentrant: a
// second call while a client is active returns ErrAlreadyInitialized
// without side effects.
func Init(opts ClientOptions) error {
	clientMutex.Lock()
	defer clientMutex.Unlock()

	if singleton != nil {
		return ErrAlreadyInitialized
	}

	c, err := New(opts)
	if err != nil {
		return err
	}
	singleton = c
	return nil
}

// Cleanup releases the module-level singleton. Calling Cleanup when no
// client is active is a no-op.
func Cleanup() error {
	clientMutex.Lock()
	c := singleton
	singleton = nil
	clientMutex.Unlock()

	if c == nil {
		return nil
	}
	return c.Close()
}
