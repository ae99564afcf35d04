// Package diagnostics exports parse/conversion diagnostics as JSON Lines
// (one JSON object per line) and provides a filtering reader over that
// format, so a CI job or editor integration can consume a pipeline's
// errors without depending on this module's Go types.
package diagnostics

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Diagnostic is one reported problem.
type Diagnostic struct {
	File     string
	Line     int
	Column   int
	Severity string // "error" or "warning"
	Message  string
}

// Write encodes diags as JSON Lines to w, one object per diagnostic, built
// field-by-field with sjson rather than a struct tag encoder so the wire
// shape stays decoupled from this package's internal field names.
func Write(w io.Writer, diags []Diagnostic) error {
	for _, d := range diags {
		line, err := encode(d)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func encode(d Diagnostic) (string, error) {
	var (
		json string
		err  error
	)
	json, err = sjson.Set("{}", "file", d.File)
	if err != nil {
		return "", err
	}
	json, err = sjson.Set(json, "line", d.Line)
	if err != nil {
		return "", err
	}
	json, err = sjson.Set(json, "column", d.Column)
	if err != nil {
		return "", err
	}
	json, err = sjson.Set(json, "severity", d.Severity)
	if err != nil {
		return "", err
	}
	json, err = sjson.Set(json, "message", d.Message)
	if err != nil {
		return "", err
	}
	return json, nil
}

// ReadFiltered parses JSON Lines from r, returning only the diagnostics
// whose severity matches one of the given severities (all, if none given).
func ReadFiltered(r io.Reader, severities ...string) ([]Diagnostic, error) {
	var out []Diagnostic
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parsed := gjson.Parse(line)
		sev := parsed.Get("severity").String()
		if len(severities) > 0 && !matches(sev, severities) {
			continue
		}
		out = append(out, Diagnostic{
			File:     parsed.Get("file").String(),
			Line:     int(parsed.Get("line").Int()),
			Column:   int(parsed.Get("column").Int()),
			Severity: sev,
			Message:  parsed.Get("message").String(),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func matches(sev string, severities []string) bool {
	for _, s := range severities {
		if s == sev {
			return true
		}
	}
	return false
}
