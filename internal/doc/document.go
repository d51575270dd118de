package doc

import (
	"encoding/json"
	"fmt"
	"io"
)

// Document is a tree of formatted content with a single root.
type Document struct {
	Root Node `json:"root"`
}

// NewDocument returns a document whose root is an empty Root container.
func NewDocument(ids IDSource) Document {
	root := NewNode(ids)
	root.Type = RootType()
	root.MakeContainer()
	return Document{Root: root}
}

// RootNode returns a pointer to the document root.
func (d *Document) RootNode() *Node {
	return &d.Root
}

// UnmarshalJSON requires the root field.
func (d *Document) UnmarshalJSON(data []byte) error {
	decoded, err := decodeDocument(data, "")
	if err != nil {
		return err
	}
	*d = decoded
	return nil
}

func decodeDocument(raw json.RawMessage, path string) (Document, error) {
	m, err := objectFields(raw, path)
	if err != nil {
		return Document{}, err
	}
	rootRaw, err := requiredField(m, "root", path)
	if err != nil {
		return Document{}, err
	}
	root, err := decodeNode(rootRaw, fieldPath(path, "root"), 1)
	if err != nil {
		return Document{}, err
	}
	return Document{Root: root}, nil
}

// Project is a named, ordered collection of chapters.
type Project struct {
	Name  string    `json:"name"`
	Books []Chapter `json:"books"`
}

// MarshalJSON encodes a nil Books slice as an empty array.
func (p Project) MarshalJSON() ([]byte, error) {
	type wireProject Project
	if p.Books == nil {
		p.Books = []Chapter{}
	}
	return marshalRaw(wireProject(p))
}

// UnmarshalJSON requires name and books.
func (p *Project) UnmarshalJSON(data []byte) error {
	decoded, err := decodeProject(data, "")
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

func decodeProject(raw json.RawMessage, path string) (Project, error) {
	m, err := objectFields(raw, path)
	if err != nil {
		return Project{}, err
	}
	var p Project
	if err := decodeScalar(m, "name", path, &p.Name); err != nil {
		return Project{}, err
	}
	booksRaw, err := requiredField(m, "books", path)
	if err != nil {
		return Project{}, err
	}
	booksPath := fieldPath(path, "books")
	elems, err := decodeArray(booksRaw, booksPath)
	if err != nil {
		return Project{}, err
	}
	p.Books = make([]Chapter, 0, len(elems))
	for i, elem := range elems {
		c, err := decodeChapter(elem, indexPath(booksPath, i))
		if err != nil {
			return Project{}, err
		}
		p.Books = append(p.Books, c)
	}
	return p, nil
}

// Chapter is a numbered unit of a project. A nil Title is distinct from an
// empty one.
type Chapter struct {
	Num   uint8    `json:"num"`
	Title *string  `json:"title"`
	Pages Document `json:"pages"`
}

// TitleOr returns the chapter title, or fallback when it has none.
func (c *Chapter) TitleOr(fallback string) string {
	if c.Title == nil {
		return fallback
	}
	return *c.Title
}

// UnmarshalJSON requires num and pages; title may be null or absent.
func (c *Chapter) UnmarshalJSON(data []byte) error {
	decoded, err := decodeChapter(data, "")
	if err != nil {
		return err
	}
	*c = decoded
	return nil
}

func decodeChapter(raw json.RawMessage, path string) (Chapter, error) {
	m, err := objectFields(raw, path)
	if err != nil {
		return Chapter{}, err
	}
	var c Chapter
	if err := decodeScalar(m, "num", path, &c.Num); err != nil {
		return Chapter{}, err
	}
	if titleRaw, ok := m["title"]; ok && !isNull(titleRaw) {
		var title string
		if err := json.Unmarshal(titleRaw, &title); err != nil {
			return Chapter{}, integrityErr(fieldPath(path, "title"), "title must be a string or null")
		}
		c.Title = &title
	}
	pagesRaw, err := requiredField(m, "pages", path)
	if err != nil {
		return Chapter{}, err
	}
	if c.Pages, err = decodeDocument(pagesRaw, fieldPath(path, "pages")); err != nil {
		return Chapter{}, err
	}
	return c, nil
}

// Character is a named person together with where they come from.
type Character struct {
	Name        string   `json:"name"`
	Origin      Setting  `json:"origin"`
	Description Document `json:"description"`
}

// UnmarshalJSON requires name, origin and description.
func (c *Character) UnmarshalJSON(data []byte) error {
	m, err := objectFields(data, "")
	if err != nil {
		return err
	}
	var decoded Character
	if err := decodeScalar(m, "name", "", &decoded.Name); err != nil {
		return err
	}
	originRaw, err := requiredField(m, "origin", "")
	if err != nil {
		return err
	}
	if decoded.Origin, err = decodeSetting(originRaw, "origin"); err != nil {
		return err
	}
	descRaw, err := requiredField(m, "description", "")
	if err != nil {
		return err
	}
	if decoded.Description, err = decodeDocument(descRaw, "description"); err != nil {
		return err
	}
	*c = decoded
	return nil
}

// Setting describes a place.
type Setting struct {
	Description Document `json:"description"`
}

// UnmarshalJSON requires description.
func (s *Setting) UnmarshalJSON(data []byte) error {
	decoded, err := decodeSetting(data, "")
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

func decodeSetting(raw json.RawMessage, path string) (Setting, error) {
	m, err := objectFields(raw, path)
	if err != nil {
		return Setting{}, err
	}
	descRaw, err := requiredField(m, "description", path)
	if err != nil {
		return Setting{}, err
	}
	d, err := decodeDocument(descRaw, fieldPath(path, "description"))
	if err != nil {
		return Setting{}, err
	}
	return Setting{Description: d}, nil
}

// DecodeProject reads a project from r.
func DecodeProject(r io.Reader) (Project, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Project{}, fmt.Errorf("reading project: %w", err)
	}
	return decodeProject(data, "")
}

// DecodeDocument reads a document from r.
func DecodeDocument(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("reading document: %w", err)
	}
	return decodeDocument(data, "")
}

// Encode writes v as two-space indented JSON followed by a newline.
func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
