package audit

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/stormlightlabs/inkwell/internal/doc"
	"github.com/stormlightlabs/inkwell/internal/project"
)

// Run performs all audit checks on p and returns diagnostics sorted by
// severity (errors first) then path. It is a pure function and performs no IO.
func Run(p doc.Project) []AuditDiagnostic {
	var diags []AuditDiagnostic

	if project.ContainsControlChars(p.Name) {
		diags = append(diags, errDiag(AUD006, "name", "project name contains control characters"))
	}

	seenIDs := make(map[doc.ID]string)
	seenNums := make(map[uint8]string)
	for i := range p.Books {
		c := &p.Books[i]
		chapterPath := fmt.Sprintf("books[%d]", i)

		if first, dup := seenNums[c.Num]; dup {
			diags = append(diags, errDiag(AUD002, chapterPath, fmt.Sprintf("chapter number %d already used by %s", c.Num, first)))
		} else {
			seenNums[c.Num] = chapterPath
		}

		if c.Title != nil && project.ContainsControlChars(*c.Title) {
			diags = append(diags, errDiag(AUD006, chapterPath+".title", "chapter title contains control characters"))
		}

		rootPath := chapterPath + ".pages.root"
		if c.Pages.Root.Type.Kind() != doc.KindRoot {
			diags = append(diags, warnDiag(AUD003, rootPath, fmt.Sprintf("chapter root is %s, want Root", c.Pages.Root.Type)))
		}

		hasText := false
		walkWithPath(&c.Pages.Root, rootPath, func(n, parent *doc.Node, path string) {
			if first, dup := seenIDs[n.ID]; dup {
				diags = append(diags, errDiag(AUD001, path, fmt.Sprintf("node id %s already used at %s", n.ID, first)))
			} else {
				seenIDs[n.ID] = path
			}
			if n.Type.Kind() == doc.KindListItem && (parent == nil || parent.Type.Kind() != doc.KindList) {
				diags = append(diags, warnDiag(AUD005, path, "list item is not inside a list"))
			}
			for _, t := range n.Contents {
				if strings.TrimSpace(t.Content) != "" {
					hasText = true
				}
			}
		})
		if !hasText {
			diags = append(diags, warnDiag(AUD004, chapterPath, fmt.Sprintf("chapter %d has no text", c.Num)))
		}
	}

	// Sort: errors before warnings, then alphabetically by path within each tier.
	sort.SliceStable(diags, func(i, j int) bool {
		si := severityRank(diags[i].Severity)
		sj := severityRank(diags[j].Severity)
		if si != sj {
			return si < sj
		}
		return diags[i].Path < diags[j].Path
	})

	return diags
}

// DecodeFailure wraps a project decode error as an AUD007 diagnostic.
func DecodeFailure(err error) AuditDiagnostic {
	path := ""
	var de *doc.DecodeError
	if errors.As(err, &de) {
		path = de.Path
	}
	return errDiag(AUD007, path, fmt.Sprintf("project file cannot be decoded: %v", err))
}

// walkWithPath visits root and its descendants in reading order, passing the
// JSON path of each node.
func walkWithPath(root *doc.Node, rootPath string, fn func(n, parent *doc.Node, path string)) {
	type frame struct {
		node, parent *doc.Node
		path         string
	}
	stack := []frame{{node: root, path: rootPath}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(f.node, f.parent, f.path)
		kids := f.node.ChildNodes()
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{
				node:   &kids[i],
				parent: f.node,
				path:   fmt.Sprintf("%s.children[%d]", f.path, i),
			})
		}
	}
}

// severityRank returns a numeric rank for sorting: errors (0) sort before warnings (1).
func severityRank(s AuditSeverity) int {
	if s == SeverityError {
		return 0
	}
	return 1
}

// errDiag constructs an error-severity AuditDiagnostic.
func errDiag(code AuditCode, path, message string) AuditDiagnostic {
	return AuditDiagnostic{Code: code, Severity: SeverityError, Message: message, Path: path}
}

// warnDiag constructs a warning-severity AuditDiagnostic.
func warnDiag(code AuditCode, path, message string) AuditDiagnostic {
	return AuditDiagnostic{Code: code, Severity: SeverityWarning, Message: message, Path: path}
}
