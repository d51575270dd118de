package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stormlightlabs/inkwell/internal/doc"
)

// memFS is an in-memory test double for FileReader, FileWriter and InitIO.
type memFS struct {
	files    map[string][]byte
	readErr  map[string]error
	writeErr error
	statErr  error
	writes   []string
}

func newMemFS() *memFS {
	return &memFS{files: map[string][]byte{}, readErr: map[string]error{}}
}

func (m *memFS) ReadFile(_ context.Context, path string) ([]byte, error) {
	if err, ok := m.readErr[path]; ok {
		return nil, err
	}
	data, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
	}
	return data, nil
}

func (m *memFS) StatFile(path string) (bool, error) {
	if m.statErr != nil {
		return false, m.statErr
	}
	_, ok := m.files[path]
	return ok, nil
}

func (m *memFS) WriteFileAtomic(_ context.Context, path string, data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes = append(m.writes, path)
	m.files[path] = data
	return nil
}

const testDir = "/work/novel"

var testProjectPath = filepath.Join(testDir, "project.json")

func fixedWD() (string, error) { return testDir, nil }

// testProject builds a project with chapters numbered nums, each holding one
// paragraph of text.
func testProject(t *testing.T, nums ...uint8) []byte {
	t.Helper()
	ids := &doc.SequenceIDs{}
	p := doc.Project{Name: "novel", Books: []doc.Chapter{}}
	for _, n := range nums {
		title := fmt.Sprintf("Chapter %d", n)
		d := doc.NewDocument(ids)
		para := doc.NewNode(ids)
		para.AppendText("It was a dark night.", doc.TextFormat{Size: 12})
		d.RootNode().AppendChild(para)
		p.Books = append(p.Books, doc.Chapter{Num: n, Title: &title, Pages: d})
	}
	data, err := encodeProject(p)
	if err != nil {
		t.Fatalf("encodeProject: %v", err)
	}
	return data
}

// seededFS returns a memFS holding a project with the given chapters.
func seededFS(t *testing.T, nums ...uint8) *memFS {
	t.Helper()
	m := newMemFS()
	m.files[testProjectPath] = testProject(t, nums...)
	return m
}

// writtenProject decodes the project file currently held by m.
func writtenProject(t *testing.T, m *memFS) doc.Project {
	t.Helper()
	p, err := doc.DecodeProject(bytes.NewReader(m.files[testProjectPath]))
	if err != nil {
		t.Fatalf("decoding written project: %v", err)
	}
	return p
}

func chapterNums(p doc.Project) []uint8 {
	nums := make([]uint8, len(p.Books))
	for i, c := range p.Books {
		nums[i] = c.Num
	}
	return nums
}
