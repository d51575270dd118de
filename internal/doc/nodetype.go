package doc

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NodeKind names the structural role of a node.
type NodeKind uint8

// The zero NodeKind is KindParagraph.
const (
	KindParagraph NodeKind = iota
	KindRoot
	KindHeading
	KindList
	KindListItem
)

var kindNames = [...]string{
	KindParagraph: "Paragraph",
	KindRoot:      "Root",
	KindHeading:   "Heading",
	KindList:      "List",
	KindListItem:  "ListItem",
}

func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", uint8(k))
}

// hasPayload reports whether k encodes as a single-key object.
func (k NodeKind) hasPayload() bool {
	return k == KindHeading || k == KindList || k == KindListItem
}

func kindByName(name string) (NodeKind, bool) {
	for k, n := range kindNames {
		if n == name {
			return NodeKind(k), true
		}
	}
	return 0, false
}

// NodeType is the closed set of node roles. Only the payload belonging to
// Kind is ever set, so two NodeTypes compare equal with == exactly when
// they encode identically. The zero value is Paragraph.
type NodeType struct {
	kind     NodeKind
	level    HeadingLevel
	ordered  bool
	position uint8
}

// RootType is the role of a document's root node.
func RootType() NodeType { return NodeType{kind: KindRoot} }

// ParagraphType is the default node role.
func ParagraphType() NodeType { return NodeType{kind: KindParagraph} }

// HeadingType is a heading at level l.
func HeadingType(l HeadingLevel) NodeType {
	if l > Level6 {
		l = Level6
	}
	return NodeType{kind: KindHeading, level: l}
}

// ListType is a list; ordered lists are numbered.
func ListType(ordered bool) NodeType { return NodeType{kind: KindList, ordered: ordered} }

// ListItemType is a list item at position pos.
func ListItemType(pos uint8) NodeType { return NodeType{kind: KindListItem, position: pos} }

// Kind returns the variant.
func (t NodeType) Kind() NodeKind { return t.kind }

// Level returns the heading level; ok is false unless t is a Heading.
func (t NodeType) Level() (l HeadingLevel, ok bool) { return t.level, t.kind == KindHeading }

// Ordered returns the list flag; ok is false unless t is a List.
func (t NodeType) Ordered() (ordered, ok bool) { return t.ordered, t.kind == KindList }

// Position returns the item position; ok is false unless t is a ListItem.
func (t NodeType) Position() (pos uint8, ok bool) { return t.position, t.kind == KindListItem }

func (t NodeType) String() string {
	switch t.kind {
	case KindHeading:
		return fmt.Sprintf("Heading(%d)", t.level.Int())
	case KindList:
		return fmt.Sprintf("List(%t)", t.ordered)
	case KindListItem:
		return fmt.Sprintf("ListItem(%d)", t.position)
	default:
		return t.kind.String()
	}
}

// MarshalJSON encodes unit variants as a bare string and payload variants
// as a single-key object, e.g. "Root" or {"Heading": 2}.
func (t NodeType) MarshalJSON() ([]byte, error) {
	var payload any
	switch t.kind {
	case KindRoot, KindParagraph:
		return json.Marshal(t.kind.String())
	case KindHeading:
		payload = t.level
	case KindList:
		payload = t.ordered
	case KindListItem:
		payload = t.position
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownNodeType, t.kind)
	}
	return json.Marshal(map[string]any{t.kind.String(): payload})
}

// UnmarshalJSON decodes either wire shape.
func (t *NodeType) UnmarshalJSON(data []byte) error {
	decoded, err := decodeNodeType(data, "")
	if err != nil {
		return err
	}
	*t = decoded
	return nil
}

func decodeNodeType(raw json.RawMessage, path string) (NodeType, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return NodeType{}, integrityErr(path, "empty node type")
	}
	switch trimmed[0] {
	case '"':
		var name string
		if err := json.Unmarshal(trimmed, &name); err != nil {
			return NodeType{}, integrityErr(path, "%v", err)
		}
		kind, ok := kindByName(name)
		if !ok {
			return NodeType{}, decodeErr(path, fmt.Errorf("%w: %q", ErrUnknownNodeType, name))
		}
		if kind.hasPayload() {
			return NodeType{}, integrityErr(path, "%s requires a payload", name)
		}
		return NodeType{kind: kind}, nil
	case '{':
		m, err := objectFields(trimmed, path)
		if err != nil {
			return NodeType{}, err
		}
		if len(m) != 1 {
			return NodeType{}, integrityErr(path, "tagged node type must have exactly one key, got %d", len(m))
		}
		for name, payload := range m {
			return decodeTaggedNodeType(name, payload, fieldPath(path, name))
		}
	}
	return NodeType{}, integrityErr(path, "node type must be a string or single-key object")
}

func decodeTaggedNodeType(name string, payload json.RawMessage, path string) (NodeType, error) {
	kind, ok := kindByName(name)
	if !ok {
		return NodeType{}, decodeErr(path, fmt.Errorf("%w: %q", ErrUnknownNodeType, name))
	}
	switch kind {
	case KindHeading:
		l, err := decodeHeadingLevel(payload, path)
		if err != nil {
			return NodeType{}, err
		}
		return HeadingType(l), nil
	case KindList:
		var ordered bool
		if err := json.Unmarshal(payload, &ordered); err != nil || isNull(payload) {
			return NodeType{}, integrityErr(path, "list payload must be a boolean")
		}
		return ListType(ordered), nil
	case KindListItem:
		var pos uint8
		if err := json.Unmarshal(payload, &pos); err != nil || isNull(payload) {
			return NodeType{}, integrityErr(path, "list item payload must be an integer in 0-255")
		}
		return ListItemType(pos), nil
	default:
		return NodeType{}, integrityErr(path, "%s takes no payload", name)
	}
}
