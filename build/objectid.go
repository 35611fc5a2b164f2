package build

import (
	"container/list"
	"sync"

	"github.com/skyfend/sapient-client/identity"
)

// defaultObjectIDCacheSize bounds the ObjectID table so long-running
// processes don't grow the map without limit.
const defaultObjectIDCacheSize = 4096

// ObjectIDTable maps a radar track id to its persistent SAPIENT object id
// (a ULID), generating one on first sight and evicting the least recently
// seen track once the table reaches capacity.
type ObjectIDTable struct {
	mu       sync.Mutex
	capacity int
	ulids    *identity.ULIDSource

	order *list.List               // front = most recently used
	elems map[uint64]*list.Element // trackID -> element in order
	ids   map[uint64]string        // trackID -> object id
}

// NewObjectIDTable returns a table bounded at capacity entries. A
// capacity <= 0 uses defaultObjectIDCacheSize.
func NewObjectIDTable(capacity int) *ObjectIDTable {
	if capacity <= 0 {
		capacity = defaultObjectIDCacheSize
	}
	return &ObjectIDTable{
		capacity: capacity,
		ulids:    identity.NewULIDSource(),
		order:    list.New(),
		elems:    make(map[uint64]*list.Element),
		ids:      make(map[uint64]string),
	}
}

// Resolve returns the object id for trackID, generating and caching a new
// ULID on first sight, and marking trackID as most-recently-used.
func (t *ObjectIDTable) Resolve(trackID uint64) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if el, ok := t.elems[trackID]; ok {
		t.order.MoveToFront(el)
		return t.ids[trackID]
	}

	id := t.ulids.New()
	t.ids[trackID] = id
	t.elems[trackID] = t.order.PushFront(trackID)

	if t.order.Len() > t.capacity {
		t.evictOldest()
	}
	return id
}

func (t *ObjectIDTable) evictOldest() {
	oldest := t.order.Back()
	if oldest == nil {
		return
	}
	trackID := oldest.Value.(uint64)
	t.order.Remove(oldest)
	delete(t.elems, trackID)
	delete(t.ids, trackID)
}

// Len reports the current number of tracked entries, for tests.
func (t *ObjectIDTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.order.Len()
}
