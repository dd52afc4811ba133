package ast

import (
	"fmt"
	"strconv"
)

// NodeID addresses a node inside a Tree.
type NodeID uint32

// NoNode is the nil sentinel; it never addresses a real node.
const NoNode NodeID = 0

// IsValid returns true if the ID is not the sentinel.
func (id NodeID) IsValid() bool { return id != NoNode }

// Node is a single arena slot. See Kind for the meaning of each slot.
type Node struct {
	Kind   Kind
	Parent NodeID
	Name   string
	Flags  Flags
	A      NodeID
	B      NodeID
	C      NodeID
	D      NodeID
	Params []NodeID
	List   []NodeID
}

// Tree is an arena of nodes. Node pointers returned by Node stay valid for
// the lifetime of the tree.
//
// A Tree is not safe for concurrent use.
type Tree struct {
	nodes []*Node
	names map[string]bool
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{
		nodes: []*Node{nil}, // slot 0 is NoNode
		names: make(map[string]bool),
	}
}

// Len returns the number of nodes ever allocated, detached ones included.
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}

// Node returns the node for id, or nil for NoNode.
// Panics if id was not allocated by this tree.
func (t *Tree) Node(id NodeID) *Node {
	if id == NoNode {
		return nil
	}
	if int(id) >= len(t.nodes) {
		panic(fmt.Sprintf("ast: node %d out of range (len %d)", id, len(t.nodes)))
	}
	return t.nodes[id]
}

// Kind returns the kind of id, or KindInvalid for NoNode.
func (t *Tree) Kind(id NodeID) Kind {
	if n := t.Node(id); n != nil {
		return n.Kind
	}
	return KindInvalid
}

// Parent returns the parent of id, or NoNode for roots and detached nodes.
func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.Node(id); n != nil {
		return n.Parent
	}
	return NoNode
}

func (t *Tree) add(n Node) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, &n)
	for _, c := range [...]NodeID{n.A, n.B, n.C, n.D} {
		t.adopt(id, c)
	}
	for _, c := range n.Params {
		t.adopt(id, c)
	}
	for _, c := range n.List {
		t.adopt(id, c)
	}
	if n.Kind == KindIdentifier {
		t.names[n.Name] = true
	}
	return id
}

func (t *Tree) adopt(parent, child NodeID) {
	if child != NoNode {
		t.nodes[child].Parent = parent
	}
}

// Children returns the direct children of id in source order. The returned
// slice is a copy and may be kept across mutations.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	out := make([]NodeID, 0, 4+len(n.Params)+len(n.List))
	if n.A != NoNode {
		out = append(out, n.A)
	}
	out = append(out, n.Params...)
	if n.B != NoNode {
		out = append(out, n.B)
	}
	if n.C != NoNode {
		out = append(out, n.C)
	}
	if n.D != NoNode {
		out = append(out, n.D)
	}
	return append(out, n.List...)
}

// SetA replaces slot A of parent with child and adopts child.
func (t *Tree) SetA(parent, child NodeID) {
	t.Node(parent).A = child
	t.adopt(parent, child)
}

// SetB replaces slot B of parent with child and adopts child.
func (t *Tree) SetB(parent, child NodeID) {
	t.Node(parent).B = child
	t.adopt(parent, child)
}

// SetC replaces slot C of parent with child and adopts child.
func (t *Tree) SetC(parent, child NodeID) {
	t.Node(parent).C = child
	t.adopt(parent, child)
}

// SetD replaces slot D of parent with child and adopts child.
func (t *Tree) SetD(parent, child NodeID) {
	t.Node(parent).D = child
	t.adopt(parent, child)
}

// SetParams replaces the parameter list of parent.
func (t *Tree) SetParams(parent NodeID, params []NodeID) {
	t.Node(parent).Params = params
	for _, p := range params {
		t.adopt(parent, p)
	}
}

// SetList replaces the list slot of parent.
func (t *Tree) SetList(parent NodeID, list []NodeID) {
	t.Node(parent).List = list
	for _, c := range list {
		t.adopt(parent, c)
	}
}

// Replace puts repl in the position old occupies. old is detached and keeps
// its own children; repl must be detached before the call.
func (t *Tree) Replace(old, repl NodeID) {
	if old == repl {
		return
	}
	o, r := t.Node(old), t.Node(repl)
	if r.Parent != NoNode {
		panic(fmt.Sprintf("ast: replacement %s#%d is still attached to #%d", r.Kind, repl, r.Parent))
	}
	if p := t.Node(o.Parent); p != nil {
		if !p.swap(old, repl) {
			panic(fmt.Sprintf("ast: #%d is not a child of its parent #%d", old, o.Parent))
		}
	}
	r.Parent = o.Parent
	o.Parent = NoNode
}

func (n *Node) swap(old, repl NodeID) bool {
	switch old {
	case n.A:
		n.A = repl
		return true
	case n.B:
		n.B = repl
		return true
	case n.C:
		n.C = repl
		return true
	case n.D:
		n.D = repl
		return true
	}
	for i, c := range n.Params {
		if c == old {
			n.Params[i] = repl
			return true
		}
	}
	for i, c := range n.List {
		if c == old {
			n.List[i] = repl
			return true
		}
	}
	return false
}

// Detach unlinks id from its parent. A single slot is cleared to NoNode; a
// list entry is removed. Detaching a root is a no-op.
func (t *Tree) Detach(id NodeID) {
	n := t.Node(id)
	p := t.Node(n.Parent)
	if p == nil {
		return
	}
	switch id {
	case p.A:
		p.A = NoNode
	case p.B:
		p.B = NoNode
	case p.C:
		p.C = NoNode
	case p.D:
		p.D = NoNode
	default:
		p.Params = remove(p.Params, id)
		p.List = remove(p.List, id)
	}
	n.Parent = NoNode
}

func remove(ids []NodeID, id NodeID) []NodeID {
	for i, c := range ids {
		if c == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}

// InsertAfter inserts stmt right after anchor in the anchor's parent list.
func (t *Tree) InsertAfter(anchor, stmt NodeID) error {
	p := t.Node(t.Parent(anchor))
	if p == nil {
		return fmt.Errorf("insert after #%d: node has no parent", anchor)
	}
	for i, c := range p.List {
		if c == anchor {
			list := make([]NodeID, 0, len(p.List)+1)
			list = append(list, p.List[:i+1]...)
			list = append(list, stmt)
			list = append(list, p.List[i+1:]...)
			p.List = list
			t.adopt(t.Parent(anchor), stmt)
			return nil
		}
	}
	return fmt.Errorf("insert after #%d: parent %s has no statement list", anchor, p.Kind)
}

// Prepend inserts stmt at the front of the list of block.
func (t *Tree) Prepend(block, stmt NodeID) {
	n := t.Node(block)
	n.List = append([]NodeID{stmt}, n.List...)
	t.adopt(block, stmt)
}

// Clone deep-copies the subtree rooted at id. The copy shares no nodes with
// the original and its root is detached.
func (t *Tree) Clone(id NodeID) NodeID {
	if id == NoNode {
		return NoNode
	}
	src := t.Node(id)
	cp := Node{
		Kind:  src.Kind,
		Name:  src.Name,
		Flags: src.Flags,
		A:     t.Clone(src.A),
		B:     t.Clone(src.B),
		C:     t.Clone(src.C),
		D:     t.Clone(src.D),
	}
	if src.Params != nil {
		cp.Params = make([]NodeID, len(src.Params))
		for i, p := range src.Params {
			cp.Params[i] = t.Clone(p)
		}
	}
	if src.List != nil {
		cp.List = make([]NodeID, len(src.List))
		for i, c := range src.List {
			cp.List[i] = t.Clone(c)
		}
	}
	return t.add(cp)
}

// IsCallee reports whether id is the callee of its parent call expression.
func (t *Tree) IsCallee(id NodeID) bool {
	p := t.Node(t.Parent(id))
	return p != nil && p.Kind == KindCallExpression && p.A == id
}

// GenerateUID returns an identifier name not used anywhere in the tree and
// reserves it. Names follow the "_name", "_name2", ... sequence.
func (t *Tree) GenerateUID(hint string) string {
	base := uidBase(hint)
	for i := 1; ; i++ {
		uid := "_" + base
		if i > 1 {
			uid += strconv.Itoa(i)
		}
		if !t.names[uid] {
			t.names[uid] = true
			return uid
		}
	}
}

// uidBase strips leading underscores and trailing digits, and replaces
// characters that cannot appear in an identifier.
func uidBase(hint string) string {
	b := []rune(hint)
	for len(b) > 0 && b[0] == '_' {
		b = b[1:]
	}
	for len(b) > 0 && b[len(b)-1] >= '0' && b[len(b)-1] <= '9' {
		b = b[:len(b)-1]
	}
	for i, r := range b {
		if !isIdentRune(r, i == 0) {
			b[i] = '_'
		}
	}
	if len(b) == 0 {
		return "temp"
	}
	return string(b)
}
