package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestULIDFormat(t *testing.T) {
	src := NewULIDSource()
	id := src.New()

	require.Len(t, id, 26)
	for _, c := range id {
		require.True(t, strings.ContainsRune(crockfordAlphabet, c), "unexpected character %q", c)
	}
}

func TestULIDUniqueAcrossCalls(t *testing.T) {
	src := NewULIDSource()
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id := src.New()
		require.False(t, seen[id], "duplicate ulid %s", id)
		seen[id] = true
	}
}

func TestULIDTimestampPrefixNonDecreasing(t *testing.T) {
	src := NewULIDSource()
	prev := src.New()[:10]
	for i := 0; i < 50; i++ {
		cur := src.New()[:10]
		require.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestEncodeBase32RoundTripsKnownValue(t *testing.T) {
	out := make([]byte, 10)
	encodeBase32(0, out)
	require.Equal(t, "0000000000", string(out))
}
