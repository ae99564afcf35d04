// Package clierrors formats compiler diagnostics with source context —
// a file:line:column header, the offending line, and a caret pointing at
// the column — for display on the command line.
package clierrors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/flowql/internal/ast"
)

// SourceError pairs a diagnostic message with the location and source text
// needed to render it with context.
type SourceError struct {
	Message string
	Source  string
	File    string
	Loc     ast.SourceLocation
}

// New builds a SourceError.
func New(message, source, file string, loc ast.SourceLocation) *SourceError {
	return &SourceError{Message: message, Source: source, File: file, Loc: loc}
}

// Error implements the error interface with plain (uncolored) formatting.
func (e *SourceError) Error() string {
	return e.Format(false)
}

// Format renders the error with a file:line:col header, the source line,
// and a caret under the error column. If color is true, ANSI codes
// highlight the caret and message for terminal output.
func (e *SourceError) Format(color bool) string {
	var sb strings.Builder

	pos := e.Loc.Start
	if e.File != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: ", e.File, pos.Line, pos.Column)
	} else {
		fmt.Fprintf(&sb, "%d:%d: ", pos.Line, pos.Column)
	}
	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	sb.WriteString("\n")

	line := sourceLine(e.Source, pos.Line)
	if line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FromNode builds a SourceError for every error string attached to node,
// in the order they were recorded.
func FromNode(node ast.Node, source, file string) []*SourceError {
	errs := node.ErrorList()
	out := make([]*SourceError, len(errs))
	for i, msg := range errs {
		out[i] = New(msg, source, file, node.Location())
	}
	return out
}
