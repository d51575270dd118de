package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/stormlightlabs/inkwell/internal/config"
	"github.com/stormlightlabs/inkwell/internal/doc"
	"github.com/stormlightlabs/inkwell/internal/project"
)

// runCmd executes c with args and returns stdout, stderr and the error.
func runCmd(c *cobra.Command, args ...string) (string, string, error) {
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	c.SetOut(out)
	c.SetErr(errOut)
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), errOut.String(), err
}

func decodeResult(t *testing.T, s string) project.OpResult {
	t.Helper()
	var r project.OpResult
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		t.Fatalf("output is not an OpResult: %v\n%s", err, s)
	}
	return r
}

func TestChapterCmds_HaveRequiredFlags(t *testing.T) {
	cmds := map[string]struct {
		c     *cobra.Command
		flags []string
	}{
		"add-chapter":    {NewAddChapterCmd(nil, doc.RandomIDs{}), []string{"project", "num", "title", "first", "at", "json"}},
		"delete-chapter": {NewDeleteChapterCmd(nil), []string{"project", "num", "yes", "json"}},
		"move-chapter":   {NewMoveChapterCmd(nil), []string{"project", "num", "first", "at", "json"}},
	}
	for name, tc := range cmds {
		for _, flag := range tc.flags {
			t.Run(name+"/"+flag, func(t *testing.T) {
				if tc.c.Flags().Lookup(flag) == nil {
					t.Errorf("expected --%s flag on %s", flag, name)
				}
			})
		}
	}
}

func TestAddChapterCmd_AppendsAndWrites(t *testing.T) {
	m := seededFS(t, 1, 2)
	c := newAddChapterCmdWithGetCWD(m, &doc.SequenceIDs{}, fixedWD)

	out, _, err := runCmd(c, "--title", "Stormwall")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := writtenProject(t, m)
	if got, want := chapterNums(p), []uint8{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("chapters = %v, want %v", got, want)
	}
	if got := p.Books[2].TitleOr(""); got != "Stormwall" {
		t.Errorf("title = %q, want %q", got, "Stormwall")
	}
	if strings.TrimSpace(out) != "Added chapter 3" {
		t.Errorf("stdout = %q, want %q", out, "Added chapter 3")
	}
}

func TestAddChapterCmd_UntitledFirst(t *testing.T) {
	m := seededFS(t, 1)
	c := newAddChapterCmdWithGetCWD(m, &doc.SequenceIDs{}, fixedWD)

	if _, _, err := runCmd(c, "--first", "--num", "7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := writtenProject(t, m)
	if got, want := chapterNums(p), []uint8{7, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("chapters = %v, want %v", got, want)
	}
	if p.Books[0].Title != nil {
		t.Errorf("Title = %q, want nil for untitled chapter", *p.Books[0].Title)
	}
}

func TestAddChapterCmd_JSONResult(t *testing.T) {
	m := seededFS(t)
	c := newAddChapterCmdWithGetCWD(m, &doc.SequenceIDs{}, fixedWD)

	out, _, err := runCmd(c, "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := decodeResult(t, out)
	if r.Version != "1" || !r.Changed {
		t.Errorf("result = %+v, want version 1 and changed", r)
	}
	if r.Diagnostics == nil || len(r.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %v, want empty array", r.Diagnostics)
	}
}

func TestAddChapterCmd_DuplicateNum(t *testing.T) {
	m := seededFS(t, 1, 2)
	c := newAddChapterCmdWithGetCWD(m, &doc.SequenceIDs{}, fixedWD)

	out, _, err := runCmd(c, "--json", "--num", "2")
	if err == nil {
		t.Fatal("expected error for duplicate chapter number")
	}
	r := decodeResult(t, out)
	if r.Changed {
		t.Error("Changed = true, want false")
	}
	if len(r.Diagnostics) != 1 || r.Diagnostics[0].Code != project.CodeDuplicateNum {
		t.Errorf("Diagnostics = %v, want one %s", r.Diagnostics, project.CodeDuplicateNum)
	}
	if len(m.writes) != 0 {
		t.Errorf("expected no writes, got %v", m.writes)
	}
}

func TestAddChapterCmd_HumanDiagnosticsOnStderr(t *testing.T) {
	m := seededFS(t, 1)
	c := newAddChapterCmdWithGetCWD(m, &doc.SequenceIDs{}, fixedWD)

	out, errOut, err := runCmd(c, "--first", "--at", "0")
	if err == nil {
		t.Fatal("expected error for conflicting flags")
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty", out)
	}
	if !strings.Contains(errOut, project.CodeConflictingFlags) {
		t.Errorf("stderr = %q, want %s", errOut, project.CodeConflictingFlags)
	}
}

func TestChapterCmds_NotInitialized(t *testing.T) {
	m := newMemFS()
	c := newAddChapterCmdWithGetCWD(m, &doc.SequenceIDs{}, fixedWD)

	_, _, err := runCmd(c)
	if !errors.Is(err, errNotInitialized) {
		t.Errorf("error = %v, want errNotInitialized", err)
	}
}

func TestChapterCmds_CorruptProjectEmitsOPE009(t *testing.T) {
	m := newMemFS()
	m.files[testProjectPath] = []byte(`{"name":"novel"}`)
	c := newDeleteChapterCmdWithGetCWD(m, fixedWD)

	out, _, err := runCmd(c, "--json", "--num", "1", "--yes")
	if err == nil {
		t.Fatal("expected error for corrupt project")
	}
	r := decodeResult(t, out)
	if len(r.Diagnostics) != 1 || r.Diagnostics[0].Code != project.CodeIOOrParseFailure {
		t.Errorf("Diagnostics = %v, want one OPE009", r.Diagnostics)
	}
	if !strings.Contains(r.Diagnostics[0].Message, "books") {
		t.Errorf("message = %q, want it to name the missing field", r.Diagnostics[0].Message)
	}
}

func TestChapterCmds_ReadErrorEmitsOPE009(t *testing.T) {
	m := newMemFS()
	m.readErr[testProjectPath] = errors.New("permission denied")
	c := newMoveChapterCmdWithGetCWD(m, fixedWD)

	_, errOut, err := runCmd(c, "--num", "1")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(errOut, "OPE009") {
		t.Errorf("stderr = %q, want OPE009", errOut)
	}
}

func TestChapterCmds_WriteErrorEmitsOPE009(t *testing.T) {
	m := seededFS(t, 1)
	m.writeErr = errors.New("disk full")
	c := newAddChapterCmdWithGetCWD(m, &doc.SequenceIDs{}, fixedWD)

	out, _, err := runCmd(c, "--json")
	if err == nil {
		t.Fatal("expected error")
	}
	r := decodeResult(t, out)
	if len(r.Diagnostics) != 1 || r.Diagnostics[0].Code != project.CodeIOOrParseFailure {
		t.Errorf("Diagnostics = %v, want one OPE009", r.Diagnostics)
	}
}

func TestChapterCmds_HonourConfiguredProjectFile(t *testing.T) {
	m := newMemFS()
	m.files[filepath.Join(testDir, config.FileName)] = []byte("project: book.json\n")
	bookPath := filepath.Join(testDir, "book.json")
	m.files[bookPath] = testProject(t, 1)
	c := newAddChapterCmdWithGetCWD(m, &doc.SequenceIDs{}, fixedWD)

	if _, _, err := runCmd(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.writes) != 1 || m.writes[0] != bookPath {
		t.Errorf("writes = %v, want [%s]", m.writes, bookPath)
	}
}

func TestChapterCmds_InvalidConfig(t *testing.T) {
	m := seededFS(t, 1)
	m.files[filepath.Join(testDir, config.FileName)] = []byte("colour: blue\n")
	c := newAddChapterCmdWithGetCWD(m, &doc.SequenceIDs{}, fixedWD)

	if _, _, err := runCmd(c); err == nil {
		t.Fatal("expected error for unknown config key")
	}
	if len(m.writes) != 0 {
		t.Errorf("expected no writes, got %v", m.writes)
	}
}

func TestDeleteChapterCmd_RequiresYes(t *testing.T) {
	m := seededFS(t, 1, 2)
	c := newDeleteChapterCmdWithGetCWD(m, fixedWD)

	_, errOut, err := runCmd(c, "--num", "1")
	if err == nil {
		t.Fatal("expected error without --yes")
	}
	if !strings.Contains(errOut, "--yes") {
		t.Errorf("stderr = %q, want mention of --yes", errOut)
	}
	if len(m.writes) != 0 {
		t.Errorf("expected no writes, got %v", m.writes)
	}
}

func TestDeleteChapterCmd_RemovesWithCascadeWarning(t *testing.T) {
	m := seededFS(t, 1, 2, 3)
	c := newDeleteChapterCmdWithGetCWD(m, fixedWD)

	out, _, err := runCmd(c, "--json", "--num", "2", "--yes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := decodeResult(t, out)
	if !r.Changed {
		t.Error("Changed = false, want true")
	}
	if len(r.Diagnostics) != 1 || r.Diagnostics[0].Code != project.CodeCascadeDelete {
		t.Errorf("Diagnostics = %v, want one %s", r.Diagnostics, project.CodeCascadeDelete)
	}
	if got, want := chapterNums(writtenProject(t, m)), []uint8{1, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("chapters = %v, want %v", got, want)
	}
}

func TestDeleteChapterCmd_MissingNumFlag(t *testing.T) {
	m := seededFS(t, 1)
	c := newDeleteChapterCmdWithGetCWD(m, fixedWD)

	if _, _, err := runCmd(c, "--yes"); err == nil {
		t.Fatal("expected error when --num is omitted")
	}
}

func TestMoveChapterCmd_MovesFirst(t *testing.T) {
	m := seededFS(t, 1, 2, 3)
	c := newMoveChapterCmdWithGetCWD(m, fixedWD)

	out, _, err := runCmd(c, "--num", "3", "--first")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := chapterNums(writtenProject(t, m)), []uint8{3, 1, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("chapters = %v, want %v", got, want)
	}
	if strings.TrimSpace(out) != "Moved chapter 3 to index 0" {
		t.Errorf("stdout = %q", out)
	}
}

func TestMoveChapterCmd_NoOpDoesNotWrite(t *testing.T) {
	m := seededFS(t, 1, 2)
	c := newMoveChapterCmdWithGetCWD(m, fixedWD)

	out, _, err := runCmd(c, "--json", "--num", "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := decodeResult(t, out)
	if r.Changed {
		t.Error("Changed = true, want false")
	}
	if len(r.Diagnostics) != 1 || r.Diagnostics[0].Code != project.CodeNoOp {
		t.Errorf("Diagnostics = %v, want one %s", r.Diagnostics, project.CodeNoOp)
	}
	if len(m.writes) != 0 {
		t.Errorf("expected no writes, got %v", m.writes)
	}
}

func TestMoveChapterCmd_UnknownChapter(t *testing.T) {
	m := seededFS(t, 1)
	c := newMoveChapterCmdWithGetCWD(m, fixedWD)

	out, _, err := runCmd(c, "--json", "--num", "9", "--at", "0")
	if err == nil {
		t.Fatal("expected error")
	}
	r := decodeResult(t, out)
	if len(r.Diagnostics) != 1 || r.Diagnostics[0].Code != project.CodeChapterNotFound {
		t.Errorf("Diagnostics = %v, want one %s", r.Diagnostics, project.CodeChapterNotFound)
	}
}

func TestNewChapterNum(t *testing.T) {
	before := doc.Project{Books: []doc.Chapter{{Num: 1}, {Num: 4}}}
	after := doc.Project{Books: []doc.Chapter{{Num: 1}, {Num: 5}, {Num: 4}}}
	if got := newChapterNum(before, after); got != 5 {
		t.Errorf("newChapterNum = %d, want 5", got)
	}
	if got := newChapterNum(before, before); got != 0 {
		t.Errorf("newChapterNum with no addition = %d, want 0", got)
	}
}
