// Package identity implements the process-wide persistent NodeID and the
// ULID generator used for report, alert and per-track object ids (the
// track-id -> object-id table itself is build.ObjectIDTable).
package identity

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/google/uuid"
)

var nodeIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// NodeID resolves and caches the client's persistent node identifier. The
// backing file path is caller-supplied rather than hardcoded.
type NodeID struct {
	path string

	mu     sync.Mutex
	cached string
}

// NewNodeID returns a resolver that reads/writes path. path is not touched
// until Resolve is called.
func NewNodeID(path string) *NodeID {
	return &NodeID{path: path}
}

// Resolve returns the cached node id, reading it from disk (or generating
// and persisting a new UUID v4) on first call.
func (n *NodeID) Resolve() (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.cached != "" {
		return n.cached, nil
	}

	if b, err := os.ReadFile(n.path); err == nil {
		candidate := trimNodeID(b)
		if nodeIDPattern.MatchString(candidate) {
			n.cached = candidate
			return n.cached, nil
		}
	}

	id := uuid.NewString()
	if err := n.persist(id); err != nil {
		return "", err
	}
	n.cached = id
	return id, nil
}

func (n *NodeID) persist(id string) error {
	dir := filepath.Dir(n.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("identity: create node id directory: %w", err)
		}
	}
	if err := os.WriteFile(n.path, []byte(id+"\n"), 0o644); err != nil {
		return fmt.Errorf("identity: write node id file: %w", err)
	}
	// WriteFile applies umask to the mode; force it explicitly with a
	// separate chmod after the write.
	if err := os.Chmod(n.path, 0o644); err != nil {
		return fmt.Errorf("identity: chmod node id file: %w", err)
	}
	return nil
}

func trimNodeID(b []byte) string {
	s := string(b)
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r' || s[len(s)-1] == ' ') {
		s = s[:len(s)-1]
	}
	return s
}

// DeterministicNodeID derives a reproducible UUID v5 from a device serial
// number. It is never used by the default Resolve flow; a deployment that
// wants node ids reproducible from hardware serials can call this directly
// and seed the node id file with the result.
func DeterministicNodeID(serial string) string {
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte("SDH100"+serial)).String()
}
