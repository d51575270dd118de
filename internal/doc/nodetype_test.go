package doc_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stormlightlabs/inkwell/internal/doc"
)

func TestNodeType_Encode(t *testing.T) {
	tests := []struct {
		name string
		typ  doc.NodeType
		want string
	}{
		{"root", doc.RootType(), `"Root"`},
		{"paragraph", doc.ParagraphType(), `"Paragraph"`},
		{"zero value", doc.NodeType{}, `"Paragraph"`},
		{"ordered list", doc.ListType(true), `{"List":true}`},
		{"unordered list", doc.ListType(false), `{"List":false}`},
		{"heading 2", doc.HeadingType(doc.Level2), `{"Heading":2}`},
		{"heading 6", doc.HeadingType(doc.Level6), `{"Heading":6}`},
		{"list item", doc.ListItemType(7), `{"ListItem":7}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.typ)
			if err != nil {
				t.Fatalf("json.Marshal error = %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("json.Marshal = %s, want %s", data, tt.want)
			}

			var back doc.NodeType
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("json.Unmarshal error = %v", err)
			}
			if back != tt.typ {
				t.Errorf("round trip = %v, want %v", back, tt.typ)
			}
		})
	}
}

func TestNodeType_DecodeLenientHeading(t *testing.T) {
	var got doc.NodeType
	if err := json.Unmarshal([]byte(`{"Heading": -3}`), &got); err != nil {
		t.Fatalf("json.Unmarshal error = %v", err)
	}
	if l, ok := got.Level(); !ok || l != doc.Level6 {
		t.Errorf("Level() = %v, %v; want Level6, true", l, ok)
	}
}

func TestNodeType_DecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"unknown string", `"Bogus"`, doc.ErrUnknownNodeType},
		{"unknown key", `{"Table": 3}`, doc.ErrUnknownNodeType},
		{"lowercase tag", `"root"`, doc.ErrUnknownNodeType},
		{"number", `3`, doc.ErrIntegrity},
		{"array", `["Root"]`, doc.ErrIntegrity},
		{"empty object", `{}`, doc.ErrIntegrity},
		{"two keys", `{"List": true, "ListItem": 1}`, doc.ErrIntegrity},
		{"bare payload variant", `"Heading"`, doc.ErrIntegrity},
		{"unit variant as key", `{"Root": true}`, doc.ErrIntegrity},
		{"list with number", `{"List": 1}`, doc.ErrIntegrity},
		{"list with null", `{"List": null}`, doc.ErrIntegrity},
		{"list item too large", `{"ListItem": 256}`, doc.ErrIntegrity},
		{"list item negative", `{"ListItem": -1}`, doc.ErrIntegrity},
		{"heading with object", `{"Heading": {"level": "Level2"}}`, doc.ErrIntegrity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got doc.NodeType
			err := json.Unmarshal([]byte(tt.input), &got)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("json.Unmarshal(%s) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestNodeType_Accessors(t *testing.T) {
	h := doc.HeadingType(doc.Level3)
	if h.Kind() != doc.KindHeading {
		t.Errorf("Kind() = %v, want Heading", h.Kind())
	}
	if _, ok := h.Ordered(); ok {
		t.Error("Ordered() ok = true on a heading")
	}
	if pos, ok := doc.ListItemType(4).Position(); !ok || pos != 4 {
		t.Errorf("Position() = %d, %v", pos, ok)
	}
	if ordered, ok := doc.ListType(true).Ordered(); !ok || !ordered {
		t.Errorf("Ordered() = %v, %v", ordered, ok)
	}
	if got := doc.HeadingType(doc.Level2).String(); got != "Heading(2)" {
		t.Errorf("String() = %q", got)
	}
}
