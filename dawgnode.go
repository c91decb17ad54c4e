package datrie

// dawgNode is a mutable node on the active frontier of a dawgBuilder: the
// path of nodes not yet frozen into units[]/labels[]. Once frozen, a node's
// fields are packed into a single dawgUnit (see unit()).
type dawgNode struct {
	child      int
	sibling    int
	label      byte
	isState    bool
	hasSibling bool
}

func (n *dawgNode) reset() {
	n.child = 0
	n.sibling = 0
	n.label = 0
	n.isState = false
	n.hasSibling = false
}

// unit packs the node into its frozen 32-bit encoding. Non-leaf nodes pack
// child/isState/hasSibling; leaf nodes (label == 0x00) instead pack child
// reinterpreted as the stored value.
func (n *dawgNode) unit() dawgUnit {
	var sibling uint32
	if n.hasSibling {
		sibling = 1
	}
	if n.label == 0 {
		return dawgUnit(uint32(n.child)<<1 | sibling)
	}
	var state uint32
	if n.isState {
		state = 2
	}
	return dawgUnit(uint32(n.child)<<2 | state | sibling)
}

// dawgUnit is the frozen 32-bit encoding of a dawgNode, as stored in
// dawgBuilder.units.
type dawgUnit uint32

func (u dawgUnit) child() int {
	return int(uint32(u) >> 2)
}

func (u dawgUnit) hasSibling() bool {
	return uint32(u)&1 == 1
}

func (u dawgUnit) value() int32 {
	return int32(uint32(u) >> 1)
}

func (u dawgUnit) isState() bool {
	return uint32(u)&2 == 2
}
