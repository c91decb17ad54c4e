package datrie

// Unit is the packed 32-bit node of the finished double-array trie. Bit
// layout (from the high bit down):
//
//	31        : value flag — 1 if this unit stores a value (the child of a
//	            leaf edge), 0 if it stores a child offset.
//	30..0     : user value, when the flag is set.
//	30..10    : offset (21-bit form), when the flag is clear and bit 9 is 0.
//	30..10    : offset >> 8 (29-bit form), when the flag is clear and bit 9
//	            is 1 — only valid when the true offset's low 8 bits are 0.
//	9         : extension bit, selects between the two offset forms above.
//	8         : has_leaf — 1 if the child reached via this node's offset is
//	            a value-holding leaf.
//	7..0      : label, the byte that labels the edge entering this node.
type Unit uint32

const (
	unitValueFlag  = uint32(1) << 31
	unitExtBit     = uint32(1) << 9
	unitHasLeafBit = uint32(1) << 8
	unitLabelMask  = uint32(0xFF)
)

// newLeafUnit builds a unit storing a user value.
func newLeafUnit(value int32) Unit {
	return Unit(unitValueFlag | uint32(value))
}

// HasValue reports whether this unit stores a value rather than an offset.
func (u Unit) HasValue() bool {
	return uint32(u)&unitValueFlag != 0
}

// Value returns the stored user value. Only meaningful if HasValue is true.
func (u Unit) Value() int32 {
	return int32(uint32(u) &^ unitValueFlag)
}

// HasLeaf reports whether the child reached via Offset is a value-holding
// leaf.
func (u Unit) HasLeaf() bool {
	return uint32(u)&unitHasLeafBit != 0
}

// Label returns the byte labeling the edge entering this node (0 for the
// root).
func (u Unit) Label() byte {
	return byte(uint32(u) & unitLabelMask)
}

// Offset decodes the XOR offset used to locate this node's children:
// offset = (u >> 10) << (8 if extension bit set else 0).
func (u Unit) Offset() uint32 {
	raw := uint32(u) >> 10
	if uint32(u)&unitExtBit != 0 {
		return raw << 8
	}
	return raw
}

// encodeOffset packs an XOR offset (relative to the node being written)
// into a non-value unit, alongside hasLeaf and label. It returns
// OffsetTooLarge if the offset fits neither the 21-bit nor the 29-bit
// layout.
func encodeOffset(offset uint32, hasLeaf bool, label byte) (Unit, error) {
	var packed uint32
	switch {
	case offset < 1<<21:
		packed = offset << 10
	case offset < 1<<29 && offset&0xFF == 0:
		packed = (offset >> 8) << 10
		packed |= unitExtBit
	default:
		return 0, newBuildErrorf(OffsetTooLarge, "encodeOffset: offset %#x does not fit either layout", offset)
	}
	if hasLeaf {
		packed |= unitHasLeafBit
	}
	packed |= uint32(label)
	return Unit(packed), nil
}

// fitsOffsetEncoding reports whether delta can be represented by one of the
// two offset layouts: below 2^29 with the low 8 bits zero (29-bit form), or
// below 2^21 (fits directly in the 21-bit form).
func fitsOffsetEncoding(delta uint32) bool {
	return (delta&0xFF == 0 && delta < 1<<29) || delta>>21 == 0
}

// withOffset returns a copy of u with its offset field and hasLeaf flag
// replaced by the given values, preserving its label. Used when reusing an
// already-materialized shared subtree.
func withOffset(u Unit, offset uint32, hasLeaf bool) (Unit, error) {
	return encodeOffset(offset, hasLeaf, u.Label())
}

// withLabel returns a copy of u with its label field replaced.
func withLabel(u Unit, label byte) Unit {
	return Unit((uint32(u) &^ unitLabelMask) | uint32(label))
}
