// Package build implements the SAPIENT message builders: Registration,
// StatusReport (with change detection), DetectionReport, Alert and
// TaskAck. Each builder returns the wire.Wrapper it constructed; callers
// marshal it with a wire.Codec to get the binary and JSON forms.
package build

import (
	"time"

	"github.com/skyfend/sapient-client/identity"
	"github.com/skyfend/sapient-client/wire"
)

// icdVersion is a protocol constant, not a deployment parameter.
const icdVersion = "BSI Flex 335 v2.0"

// Builder holds the identity services every message builder needs: the
// node's persistent id and a ULID source for report/object/alert ids.
type Builder struct {
	nodeID *identity.NodeID
	ulids  *identity.ULIDSource
}

// NewBuilder returns a Builder backed by nodeID for node identity and a
// freshly seeded ULID source for report ids.
func NewBuilder(nodeID *identity.NodeID) *Builder {
	return &Builder{nodeID: nodeID, ulids: identity.NewULIDSource()}
}

// wrap stamps content with the current time and the resolved node id.
func (b *Builder) wrap(content wire.Content) (*wire.Wrapper, error) {
	nodeID, err := b.nodeID.Resolve()
	if err != nil {
		return nil, err
	}
	w := &wire.Wrapper{
		Timestamp: wire.NewTimestamp(time.Now().UTC()),
		NodeID:    nodeID,
	}
	switch c := content.(type) {
	case *wire.Registration:
		w.Registration = c
	case *wire.StatusReport:
		w.StatusReport = c
	case *wire.DetectionReport:
		w.DetectionReport = c
	case *wire.Task:
		w.Task = c
	case *wire.TaskAck:
		w.TaskAck = c
	case *wire.Alert:
		w.Alert = c
	case *wire.RegistrationAck:
		w.RegistrationAck = c
	}
	return w, nil
}
