package outline

import (
	"fmt"
	"strings"
)

// Severity grades a Diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic describes something in an outline that will not parse the way
// its author probably intended.
type Diagnostic struct {
	Line     int      `json:"line"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %s", d.Line, d.Severity, d.Message)
}

// Lint reports problems in an outline without changing how it parses.
func Lint(text string) []Diagnostic {
	var diags []Diagnostic
	report := func(line int, sev Severity, format string, args ...any) {
		diags = append(diags, Diagnostic{Line: line, Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(text) == "" {
		report(1, SeverityError, "outline is empty")
		return diags
	}

	root, lines := ClassifyLines(text)
	rootLine := firstNonBlank(splitLines(text)) + 1
	switch {
	case root == "":
		report(rootLine, SeverityError, "root line is empty or contains only a comment")
	case !IsUnit(root):
		report(rootLine, SeverityWarning, "root %q is not a single character", root)
	}

	var entries, content int
	for _, line := range lines {
		if line.Kind != LineBlank {
			content++
		}
		switch line.Kind {
		case LineNote:
			report(line.Number, SeverityWarning, "%q does not start with '-' and will be ignored", strings.TrimSpace(line.Text))
		case LineEntry:
			name, _ := ParseEntry(line.Text)
			switch {
			case name == "":
				report(line.Number, SeverityWarning, "entry has no name and will be skipped")
			case !IsUnit(name):
				entries++
				report(line.Number, SeverityWarning, "%q is not a single character", name)
			default:
				entries++
			}
		}
	}

	if entries == 0 && content > 0 {
		report(rootLine, SeverityWarning, "no entries found (entries start with '-')")
	}
	return diags
}
