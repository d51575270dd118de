package project

import (
	"context"
	"slices"

	"github.com/stormlightlabs/inkwell/internal/doc"
)

// AddChapter appends a new chapter with an empty document to p. The returned
// project shares no chapter slice with p; p itself is never modified.
// On any error diagnostic the original project is returned unchanged.
func AddChapter(_ context.Context, p doc.Project, ids doc.IDSource, params AddParams) (doc.Project, []Diagnostic) {
	if params.Position == PositionFirst && params.At != nil {
		return p, []Diagnostic{errDiag(CodeConflictingFlags, "--first and --at are mutually exclusive")}
	}
	if params.Position != "" && params.Position != PositionFirst && params.Position != PositionLast {
		return p, []Diagnostic{errDiag(CodeInvalidPosition, "position must be %q or %q, got %q", PositionFirst, PositionLast, params.Position)}
	}
	if params.Title != nil {
		if err := ValidateTitle(*params.Title); err != nil {
			return p, []Diagnostic{errDiag(CodeInvalidTitle, "%v", err)}
		}
	}

	var num uint8
	if params.Num != nil {
		num = *params.Num
		if findChapter(p.Books, num) >= 0 {
			return p, []Diagnostic{errDiag(CodeDuplicateNum, "chapter %d already exists", num)}
		}
	} else {
		next, ok := nextNum(p.Books)
		if !ok {
			return p, []Diagnostic{errDiag(CodeNumOverflow, "no chapter number left after 255")}
		}
		num = next
	}

	idx := len(p.Books)
	switch {
	case params.At != nil:
		if *params.At < 0 || *params.At > len(p.Books) {
			return p, []Diagnostic{errDiag(CodeIndexOutOfBounds, "index %d out of range [0, %d]", *params.At, len(p.Books))}
		}
		idx = *params.At
	case params.Position == PositionFirst:
		idx = 0
	}

	chapter := doc.Chapter{Num: num, Pages: doc.NewDocument(ids)}
	if params.Title != nil {
		title := *params.Title
		chapter.Title = &title
	}

	out := p
	out.Books = slices.Insert(slices.Clone(p.Books), idx, chapter)
	return out, nil
}

// DeleteChapter removes the chapter numbered params.Num. It requires
// params.Yes; a chapter whose pages hold any node besides the root yields an
// OPW005 warning, even when those nodes carry no text.
func DeleteChapter(_ context.Context, p doc.Project, params DeleteParams) (doc.Project, []Diagnostic) {
	if !params.Yes {
		return p, []Diagnostic{errDiag(CodeIOOrParseFailure, "delete requires --yes confirmation")}
	}
	idx := findChapter(p.Books, params.Num)
	if idx < 0 {
		return p, []Diagnostic{errDiag(CodeChapterNotFound, "no chapter numbered %d", params.Num)}
	}

	var diags []Diagnostic
	if n := countNodes(&p.Books[idx].Pages.Root); n > 1 {
		diags = append(diags, warnDiag(CodeCascadeDelete, "deleted chapter %d together with %d nodes", params.Num, n-1))
	}

	out := p
	out.Books = slices.Delete(slices.Clone(p.Books), idx, idx+1)
	return out, diags
}

// MoveChapter relocates the chapter numbered params.Num. At is interpreted
// against the chapter list with the moved chapter already removed.
func MoveChapter(_ context.Context, p doc.Project, params MoveParams) (doc.Project, []Diagnostic) {
	if params.Position == PositionFirst && params.At != nil {
		return p, []Diagnostic{errDiag(CodeConflictingFlags, "--first and --at are mutually exclusive")}
	}
	if params.Position != "" && params.Position != PositionFirst && params.Position != PositionLast {
		return p, []Diagnostic{errDiag(CodeInvalidPosition, "position must be %q or %q, got %q", PositionFirst, PositionLast, params.Position)}
	}
	src := findChapter(p.Books, params.Num)
	if src < 0 {
		return p, []Diagnostic{errDiag(CodeChapterNotFound, "no chapter numbered %d", params.Num)}
	}

	chapter := p.Books[src]
	rest := slices.Delete(slices.Clone(p.Books), src, src+1)

	dst := len(rest)
	switch {
	case params.At != nil:
		if *params.At < 0 || *params.At > len(rest) {
			return p, []Diagnostic{errDiag(CodeIndexOutOfBounds, "index %d out of range [0, %d]", *params.At, len(rest))}
		}
		dst = *params.At
	case params.Position == PositionFirst:
		dst = 0
	}

	if dst == src {
		return p, []Diagnostic{warnDiag(CodeNoOp, "chapter %d is already at index %d", params.Num, src)}
	}

	out := p
	out.Books = slices.Insert(rest, dst, chapter)
	return out, nil
}

func findChapter(books []doc.Chapter, num uint8) int {
	return slices.IndexFunc(books, func(c doc.Chapter) bool { return c.Num == num })
}

// nextNum returns one past the highest chapter number, or 1 for an empty project.
func nextNum(books []doc.Chapter) (uint8, bool) {
	if len(books) == 0 {
		return 1, true
	}
	highest := slices.MaxFunc(books, func(a, b doc.Chapter) int { return int(a.Num) - int(b.Num) }).Num
	if highest == 255 {
		return 0, false
	}
	return highest + 1, true
}

func countNodes(root *doc.Node) int {
	var n int
	root.Walk(func(_, _ *doc.Node) bool {
		n++
		return true
	})
	return n
}
