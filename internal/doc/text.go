package doc

import "encoding/json"

// TextFormat holds the visual attributes of a text run.
type TextFormat struct {
	Size          uint8 `json:"size"`
	Underline     bool  `json:"underline"`
	Strong        bool  `json:"strong"`
	Strikethrough bool  `json:"strikethrough"`
	Emphasis      bool  `json:"emphasis"`
}

// TextNode is a run of text paired with its formatting.
type TextNode struct {
	Content string     `json:"content"`
	Format  TextFormat `json:"format"`
}

// UnmarshalJSON requires every field to be present.
func (f *TextFormat) UnmarshalJSON(data []byte) error {
	decoded, err := decodeTextFormat(data, "")
	if err != nil {
		return err
	}
	*f = decoded
	return nil
}

// UnmarshalJSON requires both content and format to be present.
func (t *TextNode) UnmarshalJSON(data []byte) error {
	decoded, err := decodeTextNode(data, "")
	if err != nil {
		return err
	}
	*t = decoded
	return nil
}

func decodeTextFormat(raw json.RawMessage, path string) (TextFormat, error) {
	m, err := objectFields(raw, path)
	if err != nil {
		return TextFormat{}, err
	}
	var f TextFormat
	if err := decodeScalar(m, "size", path, &f.Size); err != nil {
		return TextFormat{}, err
	}
	if err := decodeScalar(m, "underline", path, &f.Underline); err != nil {
		return TextFormat{}, err
	}
	if err := decodeScalar(m, "strong", path, &f.Strong); err != nil {
		return TextFormat{}, err
	}
	if err := decodeScalar(m, "strikethrough", path, &f.Strikethrough); err != nil {
		return TextFormat{}, err
	}
	if err := decodeScalar(m, "emphasis", path, &f.Emphasis); err != nil {
		return TextFormat{}, err
	}
	return f, nil
}

func decodeTextNode(raw json.RawMessage, path string) (TextNode, error) {
	m, err := objectFields(raw, path)
	if err != nil {
		return TextNode{}, err
	}
	var t TextNode
	if err := decodeScalar(m, "content", path, &t.Content); err != nil {
		return TextNode{}, err
	}
	formatRaw, err := requiredField(m, "format", path)
	if err != nil {
		return TextNode{}, err
	}
	if t.Format, err = decodeTextFormat(formatRaw, fieldPath(path, "format")); err != nil {
		return TextNode{}, err
	}
	return t, nil
}

// decodeTextNodes decodes a required contents array. An empty array yields a
// non-nil empty slice.
func decodeTextNodes(raw json.RawMessage, path string) ([]TextNode, error) {
	elems, err := decodeArray(raw, path)
	if err != nil {
		return nil, err
	}
	out := make([]TextNode, 0, len(elems))
	for i, elem := range elems {
		t, err := decodeTextNode(elem, indexPath(path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
