package diag

import (
	"wisp/internal/source"
)

// Note attaches secondary context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit is a single text replacement inside a file.
type FixEdit struct {
	Span    source.Span
	NewText string
}

// Fix describes a suggested correction as a set of edits.
type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic is the central record produced by the lexer and the driver.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
