package fat

import (
	"io"

	"github.com/boljen/go-bitmap"
)

// ClusterChain is a lazy, finite, non-restartable sequence of cluster
// numbers produced by walking FAT entries from a starting cluster until a
// terminator is reached. It implements the Start -> Emit(c) -> Terminated
// state machine: Next returns the start cluster unconditionally on its
// first call, then each successive cluster until the successor is at or
// above the variant's end-of-chain threshold.
//
// A zero value is not usable; construct one with newClusterChain.
type ClusterChain struct {
	table   fatTable
	visited bitmap.Bitmap // tracks emitted clusters to catch cycles

	current uint32
	started bool
	done    bool
}

// newClusterChain builds a walker over table starting at start. clusterCount
// bounds the visited-cluster bitmap (the volume's total addressable data
// clusters); a start or successor cluster outside that range skips cycle
// tracking rather than panicking, since such a value is already headed for
// termination via the FAT entry decode.
func newClusterChain(table fatTable, start uint32, clusterCount uint32) *ClusterChain {
	return &ClusterChain{
		table:   table,
		visited: bitmap.New(int(clusterCount)),
		current: start,
	}
}

// Next advances the walker and returns the next cluster number. It returns
// io.EOF once the chain reaches its natural end-of-chain marker, or
// ErrCorruptChain if it encounters a free/bad-cluster FAT entry mid-chain
// or a repeated cluster (a cycle an on-disk FAT should never contain).
func (c *ClusterChain) Next() (uint32, error) {
	if c.done {
		return 0, io.EOF
	}
	if !c.started {
		c.started = true
	} else {
		successor := c.table.entry(c.current)
		if c.table.variant.isBadOrFree(successor) {
			c.done = true
			return 0, ErrCorruptChain
		}
		if c.table.variant.isEndOfChain(successor) {
			c.done = true
			return 0, io.EOF
		}
		c.current = successor & mask28bits
	}

	idx := int(c.current) - 2
	if idx >= 0 && idx < c.visited.Len() {
		if c.visited.Get(idx) {
			c.done = true
			return 0, ErrCorruptChain
		}
		c.visited.Set(idx, true)
	}
	return c.current, nil
}

// collect drains the walker into a slice, used by callers that need the
// whole chain up front (the directory enumerator; the file reader calls
// Next directly).
func (c *ClusterChain) collect() ([]uint32, error) {
	var clusters []uint32
	for {
		cl, err := c.Next()
		if err == io.EOF {
			return clusters, nil
		}
		if err != nil {
			return clusters, err
		}
		clusters = append(clusters, cl)
	}
}
