// Package fbxtree holds the tokenized element tree of a binary FBX file:
// nodes, their typed properties, and the decoders that turn property
// payloads into numeric arrays.
//
// Nodes and properties live in index-addressed arenas owned by a Document.
// Child/sibling/property relations are integer handles into those arenas,
// so the tree can be navigated read-only without pointer chasing and freed
// as a whole. The tokenizer that parses file bytes is a separate concern;
// it (and tests) populate a Document through the builder API in builder.go.
package fbxtree

// NodeID is a handle to a node in a Document's node arena.
type NodeID int32

// PropID is a handle to a property in a Document's property arena.
type PropID int32

// NilNode and NilProp mark absent relations (no child, no sibling, ...).
const (
	NilNode NodeID = -1
	NilProp PropID = -1
)

type node struct {
	name       string
	firstChild NodeID
	lastChild  NodeID
	sibling    NodeID
	firstProp  PropID
	lastProp   PropID
}

type property struct {
	tag  byte
	next PropID
	off  uint32 // payload window [off, end) into Document.data
	end  uint32
}

// Document owns the element tree of one FBX file: the node and property
// arenas plus the shared byte store all property payload windows point
// into. A Document is populated once (by the tokenizer or the builder API)
// and read-only afterwards.
type Document struct {
	nodes []node
	props []property
	data  []byte

	// Inflate decompresses an encoding==1 array payload into dst, which is
	// pre-sized to the exact declared output length. Nil selects the zlib
	// default used by stock FBX files.
	Inflate InflateFunc
}

// NewDocument returns a Document containing only the synthetic root node.
// Top-level file elements are children of Root.
func NewDocument() *Document {
	d := &Document{}
	d.nodes = append(d.nodes, node{
		firstChild: NilNode,
		lastChild:  NilNode,
		sibling:    NilNode,
		firstProp:  NilProp,
		lastProp:   NilProp,
	})
	return d
}

// Root returns the synthetic root node's handle.
func (d *Document) Root() NodeID { return 0 }

// NodeCount returns the number of nodes in the arena, root included.
func (d *Document) NodeCount() int { return len(d.nodes) }

// Name returns the node's element name. The root node's name is empty.
func (d *Document) Name(n NodeID) string {
	if !d.validNode(n) {
		return ""
	}
	return d.nodes[n].name
}

// FirstChild returns the node's first child, or NilNode.
func (d *Document) FirstChild(n NodeID) NodeID {
	if !d.validNode(n) {
		return NilNode
	}
	return d.nodes[n].firstChild
}

// NextSibling returns the node's next sibling, or NilNode.
func (d *Document) NextSibling(n NodeID) NodeID {
	if !d.validNode(n) {
		return NilNode
	}
	return d.nodes[n].sibling
}

// FindChild returns the first direct child of n with the given element
// name, or NilNode when no such child exists.
func (d *Document) FindChild(n NodeID, name string) NodeID {
	for c := d.FirstChild(n); c != NilNode; c = d.nodes[c].sibling {
		if d.nodes[c].name == name {
			return c
		}
	}
	return NilNode
}

// FirstProperty returns the node's first property, or NilProp.
func (d *Document) FirstProperty(n NodeID) PropID {
	if !d.validNode(n) {
		return NilProp
	}
	return d.nodes[n].firstProp
}

// NextProperty returns the sibling following p in its node's ordered
// property list, or NilProp.
func (d *Document) NextProperty(p PropID) PropID {
	if !d.validProp(p) {
		return NilProp
	}
	return d.props[p].next
}

// Property returns the node's idx-th property (0-based), or NilProp when
// the node has fewer properties.
func (d *Document) Property(n NodeID, idx int) PropID {
	p := d.FirstProperty(n)
	for i := 0; i < idx && p != NilProp; i++ {
		p = d.props[p].next
	}
	return p
}

func (d *Document) validNode(n NodeID) bool {
	return n >= 0 && int(n) < len(d.nodes)
}

func (d *Document) validProp(p PropID) bool {
	return p >= 0 && int(p) < len(d.props)
}

// window returns the property's payload bytes.
func (d *Document) window(p PropID) []byte {
	pr := &d.props[p]
	return d.data[pr.off:pr.end]
}
