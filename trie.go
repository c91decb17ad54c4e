package datrie

import "io"

// Sentinel values returned by the query operations below. They are ordinary
// int32 data, not errors: a key either is or is not present, and that is not
// an exceptional condition.
const (
	// NoValue is returned when a key has no match at all.
	NoValue int32 = -1
	// NoTraversal is returned by Traverse when the next byte has no matching
	// edge from the current node (the key cannot possibly be a prefix of
	// anything in the trie).
	NoTraversal int32 = -2
)

// Trie is a read-only, compact representation of a set of byte-string keys
// mapped to nonnegative int32 values, queried by exact match, common-prefix
// search, or incremental byte-at-a-time traversal.
type Trie struct {
	units []Unit
	// closer is non-nil only when the Trie owns an open resource: the mmap
	// opened by Load, which it keeps until Close. units itself is always a
	// plain slice, either decoded by Read/Load or provided by the caller
	// (SetArray).
	closer io.Closer
}

// newTrie wraps an already-built unit array. Used by Build and by Load.
func newTrie(units []Unit) *Trie {
	return &Trie{units: units}
}

// Size returns the number of units in the packed array.
func (t *Trie) Size() int {
	return len(t.units)
}

// NumNodes returns the number of distinct trie nodes reachable from the
// root, a diagnostic useful for size-tuning (the packed array itself is
// always larger, since it must also hold value slots and unused filler).
func (t *Trie) NumNodes() int {
	nodes, _ := t.countStats()
	return nodes
}

// NumEdges returns the number of labeled transitions between trie nodes.
func (t *Trie) NumEdges() int {
	_, edges := t.countStats()
	return edges
}

func (t *Trie) countStats() (nodes, edges int) {
	if len(t.units) == 0 {
		return 0, 0
	}
	var walk func(pos uint32)
	walk = func(pos uint32) {
		nodes++
		unit := t.units[pos]
		offset := pos ^ unit.Offset()
		for b := 1; b < 256; b++ {
			childPos := offset ^ uint32(b)
			if int(childPos) >= len(t.units) {
				continue
			}
			child := t.units[childPos]
			if child.HasValue() || int(child.Label()) != b {
				continue
			}
			edges++
			walk(childPos)
		}
	}
	walk(0)
	return nodes, edges
}

// SetArray replaces the trie's backing array with units, which the caller
// continues to own. Any previously owned storage (from Load) is released.
func (t *Trie) SetArray(units []Unit) {
	_ = t.Close()
	t.units = units
}

// Array returns the trie's backing array, still owned by the Trie.
func (t *Trie) Array() []Unit {
	return t.units
}

// Clear releases any owned storage and empties the trie.
func (t *Trie) Clear() {
	_ = t.Close()
	t.units = nil
}

// Close releases storage mmap'd by Load. It is a no-op for tries built by
// Build or populated via SetArray.
func (t *Trie) Close() error {
	if t.closer == nil {
		return nil
	}
	err := t.closer.Close()
	t.closer = nil
	return err
}

// ExactMatch returns the value associated with key, or NoValue if key is
// not present.
func (t *Trie) ExactMatch(key []byte) int32 {
	nodePos := uint32(0)
	unit := t.units[0]

	for _, b := range key {
		nodePos ^= unit.Offset() ^ uint32(b)
		if int(nodePos) >= len(t.units) {
			return NoValue
		}
		unit = t.units[nodePos]
		if unit.HasValue() || unit.Label() != b {
			return NoValue
		}
	}

	if !unit.HasLeaf() {
		return NoValue
	}
	valuePos := nodePos ^ unit.Offset()
	return t.units[valuePos].Value()
}

// PrefixMatch is a single (key, value) pair found by CommonPrefixSearch,
// where Length is the number of leading bytes of the query that matched.
type PrefixMatch struct {
	Value  int32
	Length int
}

// CommonPrefixSearch returns every key stored in the trie that is a prefix
// of key, in increasing order of length. maxResults bounds how many matches
// are collected; pass 0 for no bound.
func (t *Trie) CommonPrefixSearch(key []byte, maxResults int) []PrefixMatch {
	var results []PrefixMatch

	nodePos := uint32(0)
	unit := t.units[0]

	for i, b := range key {
		nodePos ^= unit.Offset()
		childPos := nodePos ^ uint32(b)
		if int(childPos) >= len(t.units) {
			return results
		}
		unit = t.units[childPos]
		if unit.HasValue() || unit.Label() != b {
			return results
		}
		nodePos = childPos

		if unit.HasLeaf() {
			valuePos := nodePos ^ unit.Offset()
			results = append(results, PrefixMatch{Value: t.units[valuePos].Value(), Length: i + 1})
			if maxResults > 0 && len(results) >= maxResults {
				return results
			}
		}
	}
	return results
}

// Traverse follows key from byte *nodeKeyLen onward, starting at the
// position previously reached, threading nodePos and nodeKeyLen (the bytes
// consumed so far) through repeated calls so a caller can feed a key
// incrementally. It returns the value at the final position if a key ends
// there, NoValue if the position is a valid node with no value, or
// NoTraversal if a byte leads outside the trie (in which case nodePos and
// nodeKeyLen are left at the last byte that matched).
func (t *Trie) Traverse(key []byte, nodePos *uint32, nodeKeyLen *int) int32 {
	for ; *nodeKeyLen < len(key); *nodeKeyLen++ {
		b := key[*nodeKeyLen]
		unit := t.units[*nodePos]
		childPos := *nodePos ^ unit.Offset() ^ uint32(b)
		if int(childPos) >= len(t.units) {
			return NoTraversal
		}
		childUnit := t.units[childPos]
		if childUnit.HasValue() || childUnit.Label() != b {
			return NoTraversal
		}
		*nodePos = childPos
	}

	unit := t.units[*nodePos]
	if !unit.HasLeaf() {
		return NoValue
	}
	valuePos := *nodePos ^ unit.Offset()
	return t.units[valuePos].Value()
}

// EnumAction controls how Enumerate proceeds after visiting one key.
type EnumAction int

const (
	// Continue proceeds to the next key in lexicographic order.
	Continue EnumAction = iota
	// Skip discards the remainder of the current key's subtree and
	// continues with the next sibling branch.
	Skip
	// Stop ends enumeration immediately.
	Stop
)

// EnumFn is called once per stored key, in lexicographic order, with the
// accumulated key bytes (valid only for the duration of the call) and its
// value.
type EnumFn func(key []byte, value int32) EnumAction

// Enumerate walks every stored key in lexicographic order, depth-first,
// calling fn for each.
func (t *Trie) Enumerate(fn EnumFn) {
	if len(t.units) == 0 {
		return
	}
	var buf []byte
	t.enumerate(0, &buf, fn)
}

// enumerate returns false if the caller should stop (Stop was returned).
func (t *Trie) enumerate(pos uint32, buf *[]byte, fn EnumFn) bool {
	unit := t.units[pos]

	if unit.HasLeaf() {
		valuePos := pos ^ unit.Offset()
		value := t.units[valuePos].Value()
		switch fn(*buf, value) {
		case Stop:
			return false
		case Skip:
			return true
		}
	}

	offset := pos ^ unit.Offset()
	for b := 0; b < 256; b++ {
		childPos := offset ^ uint32(b)
		if int(childPos) >= len(t.units) {
			continue
		}
		child := t.units[childPos]
		if child.HasValue() || int(child.Label()) != b || b == 0 {
			continue
		}
		*buf = append(*buf, byte(b))
		cont := t.enumerate(childPos, buf, fn)
		*buf = (*buf)[:len(*buf)-1]
		if !cont {
			return false
		}
	}
	return true
}
