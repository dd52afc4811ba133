package ast

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeError reports a malformed node document.
type DecodeError struct {
	Path    string // JSON-path-like location, e.g. "$.body[0].expression"
	Line    int
	Column  int
	Message string
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// IsDecodeError returns true if err is or wraps a *DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// Decode reads a Babel/ESTree-shaped document (JSON or YAML) into a new tree
// and returns the root. A top-level File node is unwrapped to its program.
func Decode(r io.Reader) (*Tree, NodeID, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, NoNode, fmt.Errorf("decode document: %w", err)
	}
	return DecodeNode(&doc)
}

// DecodeNode is like Decode for an already parsed YAML node, which lets
// callers embed programs inside their own documents.
func DecodeNode(n *yaml.Node) (*Tree, NodeID, error) {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, NoNode, &DecodeError{Path: "$", Message: "empty document"}
		}
		n = n.Content[0]
	}
	t := New()
	d := &decoder{tree: t}
	id, err := d.node(n, "$")
	if err != nil {
		return nil, NoNode, err
	}
	return t, id, nil
}

type decoder struct {
	tree *Tree
}

func (d *decoder) fail(n *yaml.Node, path, format string, args ...any) error {
	return &DecodeError{
		Path:    path,
		Line:    n.Line,
		Column:  n.Column,
		Message: fmt.Sprintf(format, args...),
	}
}

func (d *decoder) node(n *yaml.Node, path string) (NodeID, error) {
	if n.Kind != yaml.MappingNode {
		return NoNode, d.fail(n, path, "expected a node object")
	}
	typ := lookup(n, "type")
	if typ == nil || typ.Kind != yaml.ScalarNode {
		return NoNode, d.fail(n, path, "missing node type")
	}
	if typ.Value == "File" {
		prog := lookup(n, "program")
		if prog == nil {
			return NoNode, d.fail(n, path, "File without program")
		}
		return d.node(prog, path+".program")
	}

	kind := KindOf(typ.Value)
	sh, ok := shapes[kind]
	if !ok {
		return NoNode, d.fail(typ, path, "unsupported node type %q", typ.Value)
	}

	nd := Node{Kind: kind}
	for _, f := range sh.fields {
		fpath := path + "." + f.key
		v := lookup(n, f.key)
		if isNull(v) {
			if !f.optional {
				return NoNode, d.fail(n, path, "%s: missing required field %q", kind, f.key)
			}
			continue
		}
		switch f.slot {
		case slotA, slotB, slotC, slotD:
			id, err := d.node(v, fpath)
			if err != nil {
				return NoNode, err
			}
			switch f.slot {
			case slotA:
				nd.A = id
			case slotB:
				nd.B = id
			case slotC:
				nd.C = id
			default:
				nd.D = id
			}
		case slotParams, slotList:
			if f.wrapper != "" {
				if wt := lookup(v, "type"); wt == nil || wt.Value != f.wrapper {
					return NoNode, d.fail(v, fpath, "expected %s", f.wrapper)
				}
				v = lookup(v, "body")
				fpath += ".body"
				if v == nil {
					return NoNode, d.fail(n, fpath, "missing member list")
				}
			}
			ids, err := d.list(v, fpath)
			if err != nil {
				return NoNode, err
			}
			if f.slot == slotParams {
				nd.Params = ids
			} else {
				nd.List = ids
			}
		case slotName:
			name, err := d.scalar(v, fpath, f.scalar)
			if err != nil {
				return NoNode, err
			}
			nd.Name = name
		}
	}
	for _, ff := range sh.flags {
		if v := lookup(n, ff.key); v != nil && v.Kind == yaml.ScalarNode && v.Value == "true" {
			nd.Flags |= ff.flag
		}
	}
	if (kind == KindCallExpression || kind == KindNewExpression) && hasPureComment(n) {
		nd.Flags |= FlagPure
	}
	return d.tree.add(nd), nil
}

func (d *decoder) list(n *yaml.Node, path string) ([]NodeID, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, d.fail(n, path, "expected a list")
	}
	ids := make([]NodeID, 0, len(n.Content))
	for i, c := range n.Content {
		id, err := d.node(c, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (d *decoder) scalar(n *yaml.Node, path string, want scalar) (string, error) {
	if want == scalarRaw {
		raw := lookup(n, "raw")
		if raw == nil || raw.Kind != yaml.ScalarNode {
			return "", d.fail(n, path, "expected an object with a raw string")
		}
		return raw.Value, nil
	}
	if n.Kind != yaml.ScalarNode {
		return "", d.fail(n, path, "expected a scalar")
	}
	switch want {
	case scalarNumber:
		if _, err := strconv.ParseFloat(n.Value, 64); err != nil {
			return "", d.fail(n, path, "invalid number %q", n.Value)
		}
	case scalarBool:
		if n.Value != "true" && n.Value != "false" {
			return "", d.fail(n, path, "invalid boolean %q", n.Value)
		}
	}
	return n.Value, nil
}

// lookup returns the value for key in a mapping node, or nil.
func lookup(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func hasPureComment(n *yaml.Node) bool {
	comments := lookup(n, "leadingComments")
	if comments == nil || comments.Kind != yaml.SequenceNode {
		return false
	}
	for _, c := range comments.Content {
		if v := lookup(c, "value"); v != nil && strings.TrimSpace(v.Value) == PureAnnotation {
			return true
		}
	}
	return false
}
