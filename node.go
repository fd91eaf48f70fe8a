package argonaut

import (
	"fmt"
	"io"
)

// Kind tags the variant a Node holds.
type Kind uint8

// Node variants.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindSafeString
	KindJSONString
	KindWildString
	KindArray
	KindObject
	KindClass
	KindMulti
	numKinds
)

var kindStrings = [numKinds]string{
	"null", "boolean", "number", "safe_string", "json_string",
	"wild_string", "array", "object", "class", "multi",
}

// String returns the Kind's name, or "<unknown>" outside the known range.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "<unknown>"
	}
	return kindStrings[k]
}

// Node is a lightweight, value-typed tagged variant. Scalars (number,
// safe_string, json_string) borrow their byte slice directly from the
// source text the owning Parser was given; wild_string borrows from
// whatever caller-owned bytes it was constructed with. array, object, and
// multi hold children as a direct slice into the Parser's assembly buffer:
// a pointer-plus-length span. That means a Node's children slice is only
// valid until the Parser that built it starts another Parse or ParseMulti
// into the same assembly buffer, which overwrites it from index 0. A
// buffer handed out via ParseOwned or TakeAssembly is no longer written
// by the Parser.
type Node struct {
	kind     Kind
	b        bool
	text     []byte
	children []Node
	class    *ObjectClass
}

// IsNull reports whether the node is the null literal.
func (n Node) IsNull() bool { return n.kind == KindNull }

// Kind returns the node's variant tag.
func (n Node) Kind() Kind { return n.kind }

// Bool extracts a boolean. Returns ErrTypeMismatch for any other kind.
func (n Node) Bool() (bool, error) {
	if n.kind != KindBool {
		return false, typeMismatchErr(n, "boolean")
	}
	return n.b, nil
}

// Text returns the node's raw byte slice for number, safe_string,
// json_string, and wild_string variants, or nil for every other kind.
// For safe_string/json_string this is the content between the quotes,
// still in its original (possibly escaped) form; decoding is the loader's
// job, not this accessor's.
func (n Node) Text() []byte {
	switch n.kind {
	case KindNumber, KindSafeString, KindJSONString, KindWildString:
		return n.text
	default:
		return nil
	}
}

// ObjectClass returns the shared key-set descriptor for an object node.
// Returns ErrTypeMismatch if n is not an object, or ErrInternal if the
// object's first span element is not the class variant the §3 invariant
// requires.
func (n Node) ObjectClass() (*ObjectClass, error) {
	if n.kind != KindObject {
		return nil, typeMismatchErr(n, "object")
	}
	if len(n.children) == 0 || n.children[0].kind != KindClass {
		return nil, fmt.Errorf("%w: object node missing leading class element", ErrInternal)
	}
	return n.children[0].class, nil
}

// ObjectValues returns the object's field values in class order (parallel
// to ObjectClass().Names).
func (n Node) ObjectValues() ([]Node, error) {
	if n.kind != KindObject {
		return nil, typeMismatchErr(n, "object")
	}
	if len(n.children) == 0 || n.children[0].kind != KindClass {
		return nil, fmt.Errorf("%w: object node missing leading class element", ErrInternal)
	}
	return n.children[1:], nil
}

// ArrayValues returns an array node's elements.
func (n Node) ArrayValues() ([]Node, error) {
	if n.kind != KindArray {
		return nil, typeMismatchErr(n, "array")
	}
	return n.children, nil
}

// MultiValues returns a multi node's top-level values.
func (n Node) MultiValues() ([]Node, error) {
	if n.kind != KindMulti {
		return nil, typeMismatchErr(n, "multi")
	}
	return n.children, nil
}

// NewWildString builds a wild_string Node from caller-supplied bytes that
// may need JSON escaping on output. b is retained, not copied.
func NewWildString(b []byte) Node {
	return Node{kind: KindWildString, text: b}
}

// Format writes the canonical JSON rendering of n to w: no inter-token
// whitespace, multi values newline-separated, objects in class order.
// safe_string and json_string re-emit their original escaped bytes
// verbatim; wild_string is escaped with WriteEscaped. Formatting a bare
// class node (one that is not an object's leading span element) is
// undefined, and returns ErrInternal here.
func (n Node) Format(w io.Writer) error {
	switch n.kind {
	case KindNull:
		_, err := io.WriteString(w, "null")
		return err
	case KindBool:
		lit := "false"
		if n.b {
			lit = "true"
		}
		_, err := io.WriteString(w, lit)
		return err
	case KindNumber:
		_, err := w.Write(n.text)
		return err
	case KindSafeString, KindJSONString:
		return writeQuoted(w, n.text)
	case KindWildString:
		if err := writeByte(w, '"'); err != nil {
			return err
		}
		if err := WriteEscaped(w, n.text); err != nil {
			return err
		}
		return writeByte(w, '"')
	case KindArray:
		return formatArray(w, n.children)
	case KindObject:
		return formatObject(w, n.children)
	case KindMulti:
		return formatMulti(w, n.children)
	case KindClass:
		return fmt.Errorf("%w: cannot format a bare class node", ErrInternal)
	default:
		return fmt.Errorf("%w: unknown node kind %d", ErrInternal, n.kind)
	}
}

func formatArray(w io.Writer, children []Node) error {
	if err := writeByte(w, '['); err != nil {
		return err
	}
	for i, c := range children {
		if i > 0 {
			if err := writeByte(w, ','); err != nil {
				return err
			}
		}
		if err := c.Format(w); err != nil {
			return err
		}
	}
	return writeByte(w, ']')
}

func formatObject(w io.Writer, children []Node) error {
	if len(children) == 0 || children[0].kind != KindClass {
		return fmt.Errorf("%w: malformed object node", ErrInternal)
	}
	cls := children[0].class
	values := children[1:]
	if err := writeByte(w, '{'); err != nil {
		return err
	}
	for i, name := range cls.Names {
		if i > 0 {
			if err := writeByte(w, ','); err != nil {
				return err
			}
		}
		if err := writeByte(w, '"'); err != nil {
			return err
		}
		if _, err := w.Write(name); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `":`); err != nil {
			return err
		}
		if err := values[i].Format(w); err != nil {
			return err
		}
	}
	return writeByte(w, '}')
}

func formatMulti(w io.Writer, children []Node) error {
	for i, c := range children {
		if i > 0 {
			if err := writeByte(w, '\n'); err != nil {
				return err
			}
		}
		if err := c.Format(w); err != nil {
			return err
		}
	}
	return nil
}

func writeByte(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

func writeQuoted(w io.Writer, s []byte) error {
	if err := writeByte(w, '"'); err != nil {
		return err
	}
	if _, err := w.Write(s); err != nil {
		return err
	}
	return writeByte(w, '"')
}

func typeMismatchErr(n Node, want string) error {
	return fmt.Errorf("%w: expected %s, got %s", ErrTypeMismatch, want, n.Kind())
}

// Tree is a standalone, owned assembly buffer handed to the caller by
// ParseOwned, ParseMultiOwned, or TakeAssembly. Its root occupies index 0.
// The class pointers reachable from Tree.Root() still borrow the issuing
// Parser's ShadowTrie: the Parser must outlive the Tree.
type Tree struct {
	Nodes []Node
}

// Root returns the tree's root node.
func (t *Tree) Root() Node {
	return t.Nodes[0]
}
