package datrie

import (
	"encoding/binary"
	"io"
	"os"

	"golang.org/x/exp/mmap"
)

// unitSize is the on-disk and in-memory size, in bytes, of one packed Unit.
const unitSize = 4

// Save writes the trie's packed array verbatim to filename, truncating any
// existing file. It returns the number of bytes written.
func (t *Trie) Save(filename string) (int64, error) {
	f, err := os.Create(filename)
	if err != nil {
		return 0, wrapIoError(err)
	}
	defer f.Close()
	return t.Write(f)
}

// Write serializes the trie as the raw byte image of its packed array: no
// header, no framing, just len(units) little-endian uint32s.
func (t *Trie) Write(w io.Writer) (int64, error) {
	buf := make([]byte, len(t.units)*unitSize)
	for i, u := range t.units {
		binary.LittleEndian.PutUint32(buf[i*unitSize:], uint32(u))
	}
	n, err := w.Write(buf)
	if err != nil {
		return 0, wrapIoError(err)
	}
	return int64(n), nil
}

// lenReaderAt is satisfied by *mmap.ReaderAt and *bytes.Reader, letting
// Read derive size from the reader itself when the caller passes 0.
type lenReaderAt interface {
	io.ReaderAt
	Len() int
}

// Load opens filename, memory-maps it, and decodes the trie starting at
// offset. size bounds how many bytes are read; 0 means read to the end of
// the file. The returned Trie owns the mapping; callers should call Close
// when done.
func Load(filename string, offset, size int64) (*Trie, error) {
	r, err := mmap.Open(filename)
	if err != nil {
		return nil, wrapIoError(err)
	}
	t, err := Read(r, offset, size)
	if err != nil {
		r.Close()
		return nil, err
	}
	t.closer = r
	return t, nil
}

// Read decodes a trie previously written by Write, reading size bytes
// starting at offset within r. size must be a non-negative multiple of the
// unit size; 0 means read to the end of r, which requires r to implement
// Len() int (as *mmap.ReaderAt and *bytes.Reader do). The returned Trie
// holds its own decoded copy of the units and keeps no reference to r: the
// caller remains responsible for closing r, and Close on the Trie is a no-op.
func Read(r io.ReaderAt, offset, size int64) (*Trie, error) {
	if size == 0 {
		lr, ok := r.(lenReaderAt)
		if !ok {
			return nil, newBuildError(IoError, "Read: size must be given explicitly for a reader with no Len() int method")
		}
		size = int64(lr.Len()) - offset
	}
	if size < 0 || size%unitSize != 0 {
		return nil, newBuildErrorf(IoError, "Read: size %d is not a non-negative multiple of %d", size, unitSize)
	}

	buf := make([]byte, size)
	if size > 0 {
		if _, err := r.ReadAt(buf, offset); err != nil {
			return nil, wrapIoError(err)
		}
	}

	units := make([]Unit, size/unitSize)
	for i := range units {
		units[i] = Unit(binary.LittleEndian.Uint32(buf[i*unitSize:]))
	}
	return newTrie(units), nil
}
