// Package mdocfixture builds an internal/mdoc.Tree from a JSON literal,
// standing in for the real mdoc parser (out of scope per spec.md §1):
// cmd/mdoclint and cmd/aproposd's streaming validator both need a way
// to hand-author a macro tree for a test or a request body, and this
// is the one format both speak.
package mdocfixture

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mdocgo/mdocgo/internal/mdoc"
)

// Fixture is the on-disk/wire shape: a man-section number plus the
// document's top-level children.
type Fixture struct {
	ManSection int    `json:"man_section"`
	Title      string `json:"title"`
	Children   []Node `json:"children"`
}

// Arg is one macro argument.
type Arg struct {
	ID     int      `json:"id"`
	Values []string `json:"values,omitempty"`
}

// Node is one macro-tree node: a "block" (with optional head/body/tail
// subtrees), an "elem" (with plain children), or a "text" leaf.
type Node struct {
	Kind  string `json:"kind"`
	Token string `json:"token,omitempty"`
	Args  []Arg  `json:"args,omitempty"`
	Text  string `json:"text,omitempty"`

	Head     []Node `json:"head,omitempty"`
	Body     []Node `json:"body,omitempty"`
	Tail     []Node `json:"tail,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// Load reads and parses a Fixture from a JSON file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mdocfixture: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a Fixture from raw JSON bytes.
func Parse(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("mdocfixture: parse: %w", err)
	}
	return &fx, nil
}

// Build walks the fixture into a fresh *mdoc.Tree, creating HEAD/BODY
// (and, when given, TAIL) subtrees for every block the way an mdoc
// parser would: as ordinary children of the block, referenced a second
// time by the block's Head/Body/Tail fields.
func (fx *Fixture) Build() (*mdoc.Tree, error) {
	t := mdoc.NewTree()
	t.Meta.Title = fx.Title
	if err := buildChildren(t, t.Root, fx.Children); err != nil {
		return nil, err
	}
	return t, nil
}

func buildChildren(t *mdoc.Tree, parent mdoc.NodeID, nodes []Node) error {
	for _, n := range nodes {
		if err := buildNode(t, parent, n); err != nil {
			return err
		}
	}
	return nil
}

func buildNode(t *mdoc.Tree, parent mdoc.NodeID, fn Node) error {
	var tok mdoc.Token
	if fn.Token != "" {
		tk, ok := mdoc.TokenByName(fn.Token)
		if !ok {
			return fmt.Errorf("mdocfixture: unknown token %q", fn.Token)
		}
		tok = tk
	}
	args := make([]mdoc.Argument, len(fn.Args))
	for i, a := range fn.Args {
		args[i] = mdoc.Argument{ID: a.ID, Values: a.Values}
	}

	switch fn.Kind {
	case "text":
		t.AppendChild(parent, mdoc.Node{Kind: mdoc.KindText, Text: fn.Text})
		return nil

	case "elem":
		id := t.AppendChild(parent, mdoc.Node{Kind: mdoc.KindElem, Token: tok, Args: args})
		return buildChildren(t, id, fn.Children)

	case "block":
		id := t.AppendChild(parent, mdoc.Node{Kind: mdoc.KindBlock, Token: tok, Args: args})
		headID := t.AppendChild(id, mdoc.Node{Kind: mdoc.KindHead})
		bodyID := t.AppendChild(id, mdoc.Node{Kind: mdoc.KindBody})
		var tailID mdoc.NodeID
		if len(fn.Tail) > 0 {
			tailID = t.AppendChild(id, mdoc.Node{Kind: mdoc.KindTail})
		}
		blk := t.Node(id)
		blk.Head, blk.Body, blk.Tail = headID, bodyID, tailID

		if err := buildChildren(t, headID, fn.Head); err != nil {
			return err
		}
		if err := buildChildren(t, bodyID, fn.Body); err != nil {
			return err
		}
		if tailID != 0 {
			if err := buildChildren(t, tailID, fn.Tail); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("mdocfixture: unknown node kind %q", fn.Kind)
	}
}
