package datrie

const (
	daBlockSize      = 256
	daBlocksInWindow = 16
	daNumExtras      = daBlockSize * daBlocksInWindow
)

// extraRecord is per-slot bookkeeping for the active window of the
// double-array builder: prev/next thread the circular free list of unfixed
// slots, isFixed marks a slot committed as a real trie node, and isUsed
// marks a slot selected as the XOR-base of some node's children.
type extraRecord struct {
	prev, next int
	isFixed    bool
	isUsed     bool
}

// doubleArrayBuilder converts a frozen dawgBuilder into a double-array
// representation by searching, for each DAWG node, an XOR offset that
// places all of its children at collision-free positions. The search only
// considers the most recent daBlocksInWindow blocks of the growing unit
// array; older blocks are "fixed" and their free-list entries collapsed.
type doubleArrayBuilder struct {
	dawg       *dawgBuilder
	units      []Unit
	extras     []extraRecord
	labels     []byte
	table      []int
	extrasHead int
}

func newDoubleArrayBuilder(dawg *dawgBuilder) *doubleArrayBuilder {
	return &doubleArrayBuilder{
		dawg:   dawg,
		extras: make([]extraRecord, daNumExtras),
	}
}

// buildDoubleArray runs the full conversion and returns the packed unit array.
func buildDoubleArray(dawg *dawgBuilder) ([]Unit, error) {
	b := newDoubleArrayBuilder(dawg)
	if err := b.initialize(); err != nil {
		return nil, err
	}
	return b.copyUnits(), nil
}

func (b *doubleArrayBuilder) initialize() error {
	b.table = make([]int, b.dawg.numIntersections())
	b.extrasHead = 0 // sentinel: equals len(units) (0) until the first block exists
	b.ensureUnit(0)

	b.reserveID(0)
	b.extraAt(0).isUsed = true

	rootUnit, err := encodeOffset(1, false, 0)
	if err != nil {
		return err
	}
	b.units[0] = rootUnit

	if b.dawg.child(b.dawg.root()) != 0 {
		if err := b.buildDoubleArray(b.dawg.root(), 0); err != nil {
			return err
		}
	}

	b.fixAllBlocks()
	return nil
}

// buildDoubleArray places dawgID's subtree at double-array position dicID.
func (b *doubleArrayBuilder) buildDoubleArray(dawgID, dicID int) error {
	if b.dawg.isLeaf(dawgID) {
		return nil
	}

	dawgChildID := b.dawg.child(dawgID)

	if b.dawg.isIntersection(dawgChildID) {
		intersectionID := b.dawg.intersectionID(dawgChildID)
		if offset := b.table[intersectionID]; offset != 0 {
			delta := uint32(offset) ^ uint32(dicID)
			if fitsOffsetEncoding(delta) {
				hasLeaf := b.dawg.isLeaf(dawgChildID)
				u, err := withOffset(b.units[dicID], delta, hasLeaf)
				if err != nil {
					return err
				}
				b.units[dicID] = u
				return nil
			}
		}
	}

	offset, err := b.arrangeChildren(dawgID, dicID)
	if err != nil {
		return err
	}

	if b.dawg.isIntersection(dawgChildID) {
		b.table[b.dawg.intersectionID(dawgChildID)] = int(offset)
	}

	for c := dawgChildID; c != 0; c = b.dawg.sibling(c) {
		childDicID := offset ^ uint32(b.dawg.label(c))
		if err := b.buildDoubleArray(c, int(childDicID)); err != nil {
			return err
		}
	}
	return nil
}

// arrangeChildren finds a collision-free offset for dawgID's children,
// writes it into units[dicID], and reserves each child's slot.
func (b *doubleArrayBuilder) arrangeChildren(dawgID, dicID int) (uint32, error) {
	b.labels = b.labels[:0]
	for c := b.dawg.child(dawgID); c != 0; c = b.dawg.sibling(c) {
		b.labels = append(b.labels, b.dawg.label(c))
	}

	offset, err := b.findValidOffset(dicID)
	if err != nil {
		return 0, err
	}

	selfLabel := b.units[dicID].Label()
	u, err := encodeOffset(uint32(dicID)^offset, false, selfLabel)
	if err != nil {
		return 0, err
	}
	b.units[dicID] = u

	for c := b.dawg.child(dawgID); c != 0; c = b.dawg.sibling(c) {
		label := b.dawg.label(c)
		dicChildID := int(offset ^ uint32(label))
		b.reserveID(dicChildID)

		if b.dawg.isLeaf(c) {
			b.units[dicID] = Unit(uint32(b.units[dicID]) | unitHasLeafBit)
			b.units[dicChildID] = newLeafUnit(b.dawg.value(c))
		} else {
			b.units[dicChildID] = withLabel(b.units[dicChildID], label)
		}
	}

	b.extraAt(int(offset)).isUsed = true

	return offset, nil
}

// findValidOffset searches the active free-list window, starting at
// extrasHead, for an offset placing every label in b.labels at an unfixed
// slot. It falls back to a fresh slot past the end of the array if the
// window has no candidates, or no free slots exist at all.
func (b *doubleArrayBuilder) findValidOffset(id int) (uint32, error) {
	if b.extrasHead >= len(b.units) {
		return b.endOfArrayOffset(id), nil
	}

	candidate := b.extrasHead
	for {
		offset := uint32(candidate) ^ uint32(b.labels[0])
		if b.isValidOffset(id, offset) {
			return offset, nil
		}
		candidate = b.extraAt(candidate).next
		if candidate == b.extrasHead {
			break
		}
	}
	return b.endOfArrayOffset(id), nil
}

func (b *doubleArrayBuilder) endOfArrayOffset(id int) uint32 {
	return uint32(len(b.units)) | uint32(id&0xFF)
}

// isValidOffset reports whether offset places every label in b.labels at a
// slot that is unfixed (for labels beyond the first) and not already used
// as a base (for offset itself), and whether the resulting XOR delta from
// id fits the unit's offset encoding.
func (b *doubleArrayBuilder) isValidOffset(id int, offset uint32) bool {
	b.ensureUnit(int(offset))
	if b.extraAt(int(offset)).isUsed {
		return false
	}

	delta := uint32(id) ^ offset
	if !fitsOffsetEncoding(delta) {
		return false
	}

	for i := 1; i < len(b.labels); i++ {
		childID := int(offset ^ uint32(b.labels[i]))
		b.ensureUnit(childID)
		if b.extraAt(childID).isFixed {
			return false
		}
	}
	return true
}

// reserveID commits id as a real double-array node: it grows the array if
// needed, unlinks id from the free list, and marks it fixed.
func (b *doubleArrayBuilder) reserveID(id int) {
	b.ensureUnit(id)

	e := b.extraAt(id)
	prev, next := e.prev, e.next
	if id == b.extrasHead {
		if next == id {
			b.extrasHead = len(b.units)
		} else {
			b.extrasHead = next
		}
	}
	b.extraAt(prev).next = next
	b.extraAt(next).prev = prev
	e.isFixed = true
}

// ensureUnit grows the unit array in 256-slot blocks until id is in range.
func (b *doubleArrayBuilder) ensureUnit(id int) {
	for id >= len(b.units) {
		b.expandUnits()
	}
}

// expandUnits appends one 256-slot block, evicting and fixing the oldest
// block once the active window exceeds daBlocksInWindow blocks, then
// splices the fresh block into the circular free list immediately before
// extrasHead.
func (b *doubleArrayBuilder) expandUnits() {
	blockBegin := len(b.units)
	blockEnd := blockBegin + daBlockSize

	// Fix the block falling out of the active window before touching any
	// extras record: its absolute slots are exactly daNumExtras below the
	// new block's, so extraAt aliases the same physical records. fixBlock
	// must see the outgoing block's real isUsed/isFixed state, not the
	// fresh zero value the new block is about to be reset to.
	newBlockID := blockBegin / daBlockSize
	if newBlockID+1 > daBlocksInWindow {
		b.fixBlock(newBlockID - daBlocksInWindow)
	}
	b.units = append(b.units, make([]Unit, daBlockSize)...)

	for i := blockBegin; i < blockEnd; i++ {
		*b.extraAt(i) = extraRecord{prev: i - 1, next: i + 1}
	}
	b.extraAt(blockBegin).prev = blockEnd - 1
	b.extraAt(blockEnd - 1).next = blockBegin

	if b.extrasHead == blockBegin {
		// was the "no free slots" sentinel (== old len(units)); the fresh
		// block is now the entire free list.
		return
	}

	tail := b.extraAt(b.extrasHead).prev
	b.extraAt(tail).next = blockBegin
	b.extraAt(blockBegin).prev = tail
	b.extraAt(blockEnd - 1).next = b.extrasHead
	b.extraAt(b.extrasHead).prev = blockEnd - 1
}

// fixBlock finalizes every still-unfixed slot in the block, giving each a
// filler label that can never match a real navigation step.
func (b *doubleArrayBuilder) fixBlock(blockID int) {
	begin := blockID * daBlockSize
	end := begin + daBlockSize

	unusedOffset := 0
	for i := begin; i < end; i++ {
		if !b.extraAt(i).isUsed {
			unusedOffset = i
			break
		}
	}

	for i := begin; i < end; i++ {
		if !b.extraAt(i).isFixed {
			b.reserveID(i)
			b.units[i] = withLabel(b.units[i], byte(i^unusedOffset))
		}
	}
}

// fixAllBlocks finalizes the remaining active window (up to the last
// daBlocksInWindow blocks).
func (b *doubleArrayBuilder) fixAllBlocks() {
	nBlocks := len(b.units) / daBlockSize
	begin := 0
	if nBlocks > daBlocksInWindow {
		begin = nBlocks - daBlocksInWindow
	}
	for blockID := begin; blockID < nBlocks; blockID++ {
		b.fixBlock(blockID)
	}
}

func (b *doubleArrayBuilder) extraAt(id int) *extraRecord {
	return &b.extras[id%daNumExtras]
}

func (b *doubleArrayBuilder) copyUnits() []Unit {
	out := make([]Unit, len(b.units))
	copy(out, b.units)
	return out
}
