package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/zinets/zinets"
	"github.com/zinets/zinets/lipgloss"
	"github.com/zinets/zinets/outline"
	"gopkg.in/yaml.v3"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	t, err := parseOutline(deps, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zinets.ErrorMessage(err))
		return err
	}

	if c.Format == "tree" {
		if s := lipgloss.NewRenderer().Render(t); s != "" {
			fmt.Fprintln(deps.Stdout, s)
		}
		return nil
	}

	if err := encode(deps.Stdout, c.Format, t.Nested()); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zinets.ErrorMessage(err))
		return err
	}
	return nil
}

// Run executes the tokens command.
func (c *TokensCmd) Run(deps *Dependencies) error {
	t, err := parseOutline(deps, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zinets.ErrorMessage(err))
		return err
	}

	tokens := t.Tokens()
	if c.Count {
		fmt.Fprintln(deps.Stdout, tokens.Len())
		return nil
	}
	for _, token := range tokens.Sorted() {
		fmt.Fprintln(deps.Stdout, token)
	}
	return nil
}

// Run executes the check command. It fails if any diagnostic is an error.
func (c *CheckCmd) Run(deps *Dependencies) error {
	text, err := readOutline(deps, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zinets.ErrorMessage(err))
		return err
	}

	diags := outline.Lint(text)
	if len(diags) == 0 {
		fmt.Fprintln(deps.Stdout, "No problems found.")
		return nil
	}

	var errs int
	for _, d := range diags {
		fmt.Fprintln(deps.Stdout, d)
		if d.Severity == outline.SeverityError {
			errs++
		}
	}
	if errs > 0 {
		err := zinets.Errorf(zinets.EINVALID, "%d error(s) in %s", errs, sourceName(c.File))
		fmt.Fprintf(deps.Stderr, "error: %s\n", zinets.ErrorMessage(err))
		return err
	}
	return nil
}

// Run executes the fmt command.
func (c *FmtCmd) Run(deps *Dependencies) error {
	if c.Write && (c.File == "" || c.File == "-") {
		err := zinets.Errorf(zinets.EINVALID, "--write requires a file")
		fmt.Fprintf(deps.Stderr, "error: %s\n", zinets.ErrorMessage(err))
		return err
	}

	t, err := parseOutline(deps, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zinets.ErrorMessage(err))
		return err
	}

	out := outline.Format(t, indentStyle(c.Indent)) + "\n"

	if !c.Write {
		fmt.Fprint(deps.Stdout, out)
		return nil
	}
	if err := os.WriteFile(c.File, []byte(out), 0644); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zinets.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Formatted %s\n", c.File)
	return nil
}

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	t, err := parseOutline(deps, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zinets.ErrorMessage(err))
		return err
	}

	s := outline.Stats(t)
	fmt.Fprintf(deps.Stdout, "Root:          %s\n", t.Root().Name)
	fmt.Fprintf(deps.Stdout, "Nodes:         %d\n", s.TotalNodes)
	fmt.Fprintf(deps.Stdout, "Max depth:     %d\n", s.MaxDepth)
	fmt.Fprintf(deps.Stdout, "Leaves:        %d\n", s.LeafNodes)
	fmt.Fprintf(deps.Stdout, "Branches:      %d\n", s.BranchNodes)
	fmt.Fprintf(deps.Stdout, "Unique tokens: %d\n", s.UniqueTokens)
	fmt.Fprintf(deps.Stdout, "Fingerprint:   %016x\n", t.Fingerprint())
	return nil
}

func parseOutline(deps *Dependencies, file string) (*outline.Tree, error) {
	text, err := readOutline(deps, file)
	if err != nil {
		return nil, err
	}
	return outline.Parse(text), nil
}

func indentStyle(indent string) outline.IndentStyle {
	if n, err := strconv.Atoi(indent); err == nil {
		return outline.IndentSpaces(n)
	}
	return outline.TabStyle
}

func sourceName(file string) string {
	if file == "" {
		return "demo network"
	}
	return displayName(file)
}

// encode writes v to w as indented JSON or YAML.
func encode(w io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
