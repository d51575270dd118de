// Package doc defines the document tree model for inkwell projects and its
// JSON wire encoding.
package doc

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MaxDepth bounds the nesting of a node tree on encode and decode. The root
// node is at depth 1.
const MaxDepth = 512

// Node is one element of a document tree.
//
// Children distinguishes a leaf (nil) from a container that currently has
// no children (non-nil pointer to an empty slice); the two encode as null
// and [] respectively.
type Node struct {
	ID       ID
	Type     NodeType
	Contents []TextNode
	Children *[]Node
}

// NewNode returns a Paragraph node with a fresh identifier from ids, no
// contents and no children.
func NewNode(ids IDSource) Node {
	return Node{
		ID:       ids.NewID(),
		Type:     ParagraphType(),
		Contents: []TextNode{},
	}
}

// AppendText adds a text run after the existing contents.
func (n *Node) AppendText(content string, format TextFormat) {
	n.Contents = append(n.Contents, TextNode{Content: content, Format: format})
}

// AppendChild adds child after the existing children, turning a leaf into a
// container if needed.
func (n *Node) AppendChild(child Node) {
	if n.Children == nil {
		n.Children = &[]Node{}
	}
	*n.Children = append(*n.Children, child)
}

// MakeContainer marks n as a container without adding children.
func (n *Node) MakeContainer() {
	if n.Children == nil {
		n.Children = &[]Node{}
	}
}

// HasChildren reports whether n is a container, even an empty one.
func (n *Node) HasChildren() bool {
	return n.Children != nil
}

// ChildNodes returns the children of n, or nil for a leaf.
func (n *Node) ChildNodes() []Node {
	if n.Children == nil {
		return nil
	}
	return *n.Children
}

// Walk visits n and its descendants in reading order. fn receives each node
// with its parent (nil for n itself); returning false skips that node's
// children. The traversal uses an explicit stack.
func (n *Node) Walk(fn func(node, parent *Node) bool) {
	type frame struct{ node, parent *Node }
	stack := []frame{{node: n}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(f.node, f.parent) {
			continue
		}
		kids := f.node.ChildNodes()
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: &kids[i], parent: f.node})
		}
	}
}

// MarshalJSON encodes n with fields in the order id, node_type, children,
// contents.
func (n Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeNode(&buf, &n, 1); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a node and its whole subtree. On error n is left
// unchanged.
func (n *Node) UnmarshalJSON(data []byte) error {
	decoded, err := decodeNode(data, "", 1)
	if err != nil {
		return err
	}
	*n = decoded
	return nil
}

func encodeNode(buf *bytes.Buffer, n *Node, depth int) error {
	if depth > MaxDepth {
		return ErrTooDeep
	}
	id, err := marshalRaw(n.ID)
	if err != nil {
		return err
	}
	nodeType, err := marshalRaw(n.Type)
	if err != nil {
		return err
	}
	contents := n.Contents
	if contents == nil {
		contents = []TextNode{}
	}
	contentsJSON, err := marshalRaw(contents)
	if err != nil {
		return err
	}

	buf.WriteString(`{"id":`)
	buf.Write(id)
	buf.WriteString(`,"node_type":`)
	buf.Write(nodeType)
	buf.WriteString(`,"children":`)
	if n.Children == nil {
		buf.Write(jsonNull)
	} else {
		buf.WriteByte('[')
		for i := range *n.Children {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeNode(buf, &(*n.Children)[i], depth+1); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	}
	buf.WriteString(`,"contents":`)
	buf.Write(contentsJSON)
	buf.WriteByte('}')
	return nil
}

func decodeNode(raw json.RawMessage, path string, depth int) (Node, error) {
	if depth > MaxDepth {
		return Node{}, &DecodeError{Path: path, Err: ErrTooDeep}
	}
	m, err := objectFields(raw, path)
	if err != nil {
		return Node{}, err
	}

	var n Node
	idRaw, err := requiredField(m, "id", path)
	if err != nil {
		return Node{}, err
	}
	var idText string
	if err := json.Unmarshal(idRaw, &idText); err != nil {
		return Node{}, integrityErr(fieldPath(path, "id"), "id must be a string")
	}
	if n.ID, err = ParseID(idText); err != nil {
		return Node{}, decodeErr(fieldPath(path, "id"), err)
	}

	typeRaw, err := requiredField(m, "node_type", path)
	if err != nil {
		return Node{}, err
	}
	if n.Type, err = decodeNodeType(typeRaw, fieldPath(path, "node_type")); err != nil {
		return Node{}, err
	}

	contentsRaw, err := requiredField(m, "contents", path)
	if err != nil {
		return Node{}, err
	}
	if n.Contents, err = decodeTextNodes(contentsRaw, fieldPath(path, "contents")); err != nil {
		return Node{}, err
	}

	if childrenRaw, ok := m["children"]; ok && !isNull(childrenRaw) {
		childrenPath := fieldPath(path, "children")
		elems, err := decodeArray(childrenRaw, childrenPath)
		if err != nil {
			return Node{}, err
		}
		kids := make([]Node, 0, len(elems))
		for i, elem := range elems {
			child, err := decodeNode(elem, indexPath(childrenPath, i), depth+1)
			if err != nil {
				return Node{}, err
			}
			kids = append(kids, child)
		}
		n.Children = &kids
	}
	return n, nil
}

// String returns the node type followed by the identifier.
func (n *Node) String() string {
	return fmt.Sprintf("%s %s", n.Type, n.ID)
}
