// Package project implements chapter operations on an inkwell project.
package project

import "fmt"

// Diagnostic is a structured error or warning record emitted by an operation.
type Diagnostic struct {
	Severity string `json:"severity"` // "error" | "warning"
	Code     string `json:"code"`     // e.g. "OPE001", "OPW005"
	Message  string `json:"message"`
}

// OpResult is the CLI JSON output of any mutation operation.
type OpResult struct {
	Version     string       `json:"version"`     // "1"
	Changed     bool         `json:"changed"`     // true if the project was modified
	Diagnostics []Diagnostic `json:"diagnostics"` // never nil once emitted
}

// Position values for AddParams and MoveParams.
const (
	PositionFirst = "first"
	PositionLast  = "last"
)

// AddParams are parameters for the add-chapter operation.
type AddParams struct {
	Title    *string // nil leaves the chapter untitled
	Num      *uint8  // nil picks one past the highest existing num
	Position string  // "last" | "first" (default: "last")
	At       *int    // zero-based insertion index; conflicts with Position "first"
}

// DeleteParams are parameters for the delete-chapter operation.
type DeleteParams struct {
	Num uint8
	Yes bool // required confirmation flag
}

// MoveParams are parameters for the move-chapter operation.
type MoveParams struct {
	Num      uint8
	Position string // "last" | "first"
	At       *int   // zero-based destination index after removal
}

// Operation errors (abort mutation).
const (
	CodeChapterNotFound  = "OPE001"
	CodeDuplicateNum     = "OPE002"
	CodeNumOverflow      = "OPE003"
	CodeInvalidTitle     = "OPE004"
	CodeIndexOutOfBounds = "OPE008"
	CodeIOOrParseFailure = "OPE009"
	CodeConflictingFlags = "OPE010"
	CodeInvalidPosition  = "OPE011"
)

const (
	severityError   = "error"
	severityWarning = "warning"
	resultVersion   = "1"
)

// Operation warnings (mutation proceeds).
const (
	CodeCascadeDelete = "OPW005"
	CodeNoOp          = "OPW006"
)

// HasError reports whether any diagnostic in diags has error severity.
func HasError(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == severityError {
			return true
		}
	}
	return false
}

// NewResult wraps diags in an OpResult, normalising nil to an empty slice.
func NewResult(changed bool, diags []Diagnostic) OpResult {
	if diags == nil {
		diags = []Diagnostic{}
	}
	return OpResult{Version: resultVersion, Changed: changed, Diagnostics: diags}
}

func errDiag(code, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: severityError, Code: code, Message: fmt.Sprintf(format, args...)}
}

func warnDiag(code, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: severityWarning, Code: code, Message: fmt.Sprintf(format, args...)}
}
