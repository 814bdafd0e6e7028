// Package mdoc implements the two-phase validator for the semantic
// documentation dialect: a tree walker that enforces structural,
// ordering, and contextual invariants over a macro tree built by an
// external parser.
package mdoc

import "github.com/mdocgo/mdocgo/internal/tbl"

// NodeID indexes into a Tree's arena. The zero value means "none"; the
// arena's slot 0 is reserved so a zero NodeID is never a live node.
type NodeID int32

// NodeKind is the tag of a node's structural role.
type NodeKind int

const (
	KindRoot NodeKind = iota
	KindBlock
	KindHead
	KindBody
	KindTail
	KindElem
	KindText
	KindTbl
)

// Flag bits carried on a Node.
type Flag uint8

const (
	FlagValid Flag = 1 << iota // post() already ran on this node
)

// Argument is one macro argument: an identifier plus an optional value
// list (e.g. -column's width list, -offset's single value).
type Argument struct {
	ID     int
	Values []string
}

// Pos is a source position.
type Pos struct {
	Line, Col int
}

// Node is one arena slot. Only the fields that apply to its Kind are
// meaningful; the rest are zero.
type Node struct {
	Kind  NodeKind
	Token Token // meaningless for KindRoot, KindText
	Pos   Pos
	Flags Flag

	Parent NodeID
	Child  NodeID
	Last   NodeID // last child appended, for O(1) append
	Next   NodeID

	// BLOCK only: direct references to its HEAD/BODY/TAIL subtrees.
	Head NodeID
	Body NodeID
	Tail NodeID

	Args []Argument // ELEM, BLOCK
	Text string     // TEXT

	Span *tbl.Span // TBL only
}

func (n *Node) Valid() bool     { return n.Flags&FlagValid != 0 }
func (n *Node) SetValid()       { n.Flags |= FlagValid }
func (n *Node) clearValid()     { n.Flags &^= FlagValid }

// SecKind enumerates the conventional manual-page sections in their
// canonical ordering; CUSTOM sections never participate in ordering
// checks.
type SecKind int

const (
	SecNone SecKind = iota
	SecPrologue
	SecName
	SecLibrary
	SecSynopsis
	SecDescription
	SecContext
	SecReturnValues
	SecEnvironment
	SecFiles
	SecExitStatus
	SecExamples
	SecDiagnostics
	SecCompatibility
	SecErrors
	SecSeeAlso
	SecStandards
	SecHistory
	SecAuthors
	SecCaveats
	SecBugs
	SecCustom
)

// Meta is the tree's document meta record.
type Meta struct {
	Title     string
	Date      int64 // epoch seconds, 0 if unset
	OS        string
	Name      string
	Section   SecKind
	LastNamed SecKind // highest-ordered named section seen; starts at SecPrologue
}

// Tree owns the node arena and the document meta. NodeID 0 is reserved;
// arena[0] is a zero Node that is never returned by NewNode.
type Tree struct {
	arena []Node
	Meta  Meta
	Root  NodeID
}

// NewTree returns a Tree with a single ROOT node already allocated.
func NewTree() *Tree {
	t := &Tree{arena: make([]Node, 1, 64)} // slot 0 reserved
	t.Meta.LastNamed = SecPrologue
	t.Root = t.newNode(Node{Kind: KindRoot})
	return t
}

func (t *Tree) newNode(n Node) NodeID {
	t.arena = append(t.arena, n)
	return NodeID(len(t.arena) - 1)
}

// Node returns a pointer to the arena slot for id. Panics on an
// out-of-range or zero id, matching the source's assert-on-misuse
// convention for programming errors.
func (t *Tree) Node(id NodeID) *Node {
	if id <= 0 || int(id) >= len(t.arena) {
		panic("mdoc: invalid NodeID")
	}
	return &t.arena[id]
}

// AppendChild allocates a new node as the last child of parent and
// returns its id.
func (t *Tree) AppendChild(parent NodeID, n Node) NodeID {
	n.Parent = parent
	id := t.newNode(n)
	p := t.Node(parent)
	if p.Last == 0 {
		p.Child = id
	} else {
		t.Node(p.Last).Next = id
	}
	p.Last = id
	return id
}

// Children returns the ordered child ids of id.
func (t *Tree) Children(id NodeID) []NodeID {
	var out []NodeID
	for c := t.Node(id).Child; c != 0; c = t.Node(c).Next {
		out = append(out, c)
	}
	return out
}

// ChildCount returns the number of direct children of id without
// allocating a slice.
func (t *Tree) ChildCount(id NodeID) int {
	n := 0
	for c := t.Node(id).Child; c != 0; c = t.Node(c).Next {
		n++
	}
	return n
}
