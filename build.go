package datrie

import "sort"

// ProgressFunc reports incremental build progress: current out of total,
// where current reaches total exactly once, on the final call.
type ProgressFunc func(current, total int)

// BuildOptions configures Build. Keys is the only required field; Values
// and Progress may be left nil.
type BuildOptions struct {
	// Keys is the set of byte-string keys to store, in any order: Build
	// sorts them internally.
	Keys [][]byte
	// Values holds one value per key, matched by original index before
	// sorting. If nil, each key's value defaults to its position in the
	// sorted key order.
	Values []int32
	// Progress, if non-nil, is invoked after each key is processed and once
	// more after the final key, both times with current == total only on
	// the last call.
	Progress ProgressFunc
}

// Build constructs a Trie from a set of keys and values. Keys need not be
// pre-sorted or de-duplicated.
func Build(opts BuildOptions) (*Trie, error) {
	if len(opts.Values) > 0 && len(opts.Values) != len(opts.Keys) {
		return nil, newBuildErrorf(MismatchedValues, "Build: got %d values for %d keys", len(opts.Values), len(opts.Keys))
	}

	order := make([]int, len(opts.Keys))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return string(opts.Keys[order[i]]) < string(opts.Keys[order[j]])
	})

	dawg := newDawgBuilder()
	total := len(order) + 1
	for n, idx := range order {
		var value int32
		if opts.Values != nil {
			value = opts.Values[idx]
		} else {
			value = int32(n)
		}
		if err := dawg.insert(opts.Keys[idx], value); err != nil {
			return nil, err
		}
		if opts.Progress != nil {
			opts.Progress(n+1, total)
		}
	}
	dawg.finish()

	units, err := buildDoubleArray(dawg)
	if err != nil {
		return nil, err
	}
	if opts.Progress != nil {
		opts.Progress(total, total)
	}

	return newTrie(units), nil
}

// BuildStrings is a convenience wrapper over Build for string keys.
func BuildStrings(keys []string, values []int32) (*Trie, error) {
	byteKeys := make([][]byte, len(keys))
	for i, k := range keys {
		byteKeys[i] = []byte(k)
	}
	return Build(BuildOptions{Keys: byteKeys, Values: values})
}

// Builder supports incremental construction when the full key set is not
// available up front. Keys must still be added in strictly ascending
// lexicographic order; CanAdd reports whether a given key would be
// accepted next.
type Builder struct {
	dawg    *dawgBuilder
	lastKey []byte
	n       int
}

// NewBuilder returns an empty incremental Builder.
func NewBuilder() *Builder {
	return &Builder{dawg: newDawgBuilder()}
}

// CanAdd reports whether key may be passed to Add next: it must sort
// strictly after the most recently added key.
func (b *Builder) CanAdd(key []byte) bool {
	return b.lastKey == nil || string(key) > string(b.lastKey)
}

// Add inserts key with value. Callers wanting insertion-index values should
// pass NumAdded() as value before calling Add.
func (b *Builder) Add(key []byte, value int32) error {
	if err := b.dawg.insert(key, value); err != nil {
		return err
	}
	b.lastKey = append(b.lastKey[:0], key...)
	b.n++
	return nil
}

// NumAdded returns the number of keys added so far.
func (b *Builder) NumAdded() int {
	return b.n
}

// InsertString is a convenience wrapper over Add for string keys.
func (b *Builder) InsertString(key string, value int32) error {
	return b.Add([]byte(key), value)
}

// Finish freezes the DAWG and packs it into the final double-array Trie.
func (b *Builder) Finish() (*Trie, error) {
	b.dawg.finish()
	units, err := buildDoubleArray(b.dawg)
	if err != nil {
		return nil, err
	}
	return newTrie(units), nil
}
