// Package audit checks a decoded project for problems the wire format
// cannot rule out on its own.
package audit

// AuditCode identifies a specific audit rule that was evaluated.
type AuditCode string

const (
	// AUD001 indicates a node id appears more than once in the project.
	AUD001 AuditCode = "AUD001"
	// AUD002 indicates two chapters share the same number.
	AUD002 AuditCode = "AUD002"
	// AUD003 indicates a chapter's root node is not of type Root (warning).
	AUD003 AuditCode = "AUD003"
	// AUD004 indicates a chapter holds no text anywhere in its tree (warning).
	AUD004 AuditCode = "AUD004"
	// AUD005 indicates a ListItem node whose parent is not a List (warning).
	AUD005 AuditCode = "AUD005"
	// AUD006 indicates a project name or chapter title contains control characters.
	AUD006 AuditCode = "AUD006"
	// AUD007 indicates the project file could not be decoded.
	AUD007 AuditCode = "AUD007"
)

// AuditSeverity classifies the impact level of an audit diagnostic.
type AuditSeverity string

const (
	// SeverityError indicates a condition that must be resolved.
	SeverityError AuditSeverity = "error"
	// SeverityWarning indicates a condition that should be reviewed.
	SeverityWarning AuditSeverity = "warning"
)

// AuditDiagnostic is a single finding produced by the doctor command.
type AuditDiagnostic struct {
	// Code is the rule identifier that produced this diagnostic.
	Code AuditCode `json:"code"`
	// Severity indicates whether this is an error or warning.
	Severity AuditSeverity `json:"severity"`
	// Message is a human-readable description of the finding.
	Message string `json:"message"`
	// Path locates the finding within the project, e.g. "books[0].pages.root".
	Path string `json:"path"`
}

// HasError reports whether any diagnostic in diags has error severity.
func HasError(diags []AuditDiagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
