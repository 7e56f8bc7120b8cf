package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/zinets/zinets"
	"github.com/zinets/zinets/enrich"
	"github.com/zinets/zinets/gemini"
)

// entry is one enriched token as printed by the enrich command.
type entry struct {
	Token         string `json:"token" yaml:"token"`
	Pronunciation string `json:"pinyin" yaml:"pinyin"`
	Meaning       string `json:"meaning" yaml:"meaning"`
	Composition   string `json:"composition" yaml:"composition"`
	Examples      string `json:"phrases" yaml:"phrases"`
	Source        string `json:"source" yaml:"source"`
}

// Run executes the enrich command.
func (c *EnrichCmd) Run(deps *Dependencies) error {
	t, err := parseOutline(deps, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zinets.ErrorMessage(err))
		return err
	}
	tokens := t.Tokens().Sorted()

	if c.DryRun {
		return c.dryRun(deps, tokens)
	}

	if deps.Dictionary == nil {
		err := zinets.Errorf(zinets.EINTERNAL, "no dictionary configured")
		fmt.Fprintf(deps.Stderr, "error: %s\n", zinets.ErrorMessage(err))
		return err
	}

	if len(tokens) == 0 {
		fmt.Fprintln(deps.Stderr, "No tokens to enrich.")
		return nil
	}

	records := deps.Dictionary.Lookup(deps.Ctx, tokens)

	entries := make([]entry, 0, len(tokens))
	for _, token := range tokens {
		rec, ok := records[token]
		if !ok {
			rec = zinets.Placeholder(token)
		}
		entries = append(entries, newEntry(token, rec))
	}

	if err := encode(deps.Stdout, c.Format, entries); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zinets.ErrorMessage(err))
		return err
	}
	return nil
}

// dryRun prints the requests a lookup would send for tokens, assuming
// nothing is cached, with their prompt sizes.
func (c *EnrichCmd) dryRun(deps *Dependencies, tokens []string) error {
	if deps.TokenCounter == nil {
		err := zinets.Errorf(zinets.EINTERNAL, "no token counter configured")
		fmt.Fprintf(deps.Stderr, "error: %s\n", zinets.ErrorMessage(err))
		return err
	}

	chunks := enrich.Chunk(tokens, c.ChunkSize)
	var total int
	for i, chunk := range chunks {
		n, err := deps.TokenCounter.CountTokens(deps.Ctx, gemini.BuildPrompt(chunk, c.Language))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", zinets.ErrorMessage(err))
			return err
		}
		total += n
		fmt.Fprintf(deps.Stdout, "Request %d: %s (%d prompt tokens)\n", i+1, strings.Join(chunk, " "), n)
	}
	fmt.Fprintf(deps.Stdout, "%d tokens in %d requests, %d prompt tokens to %s\n", len(tokens), len(chunks), total, c.Model)
	return nil
}

func newEntry(token string, c *zinets.Character) entry {
	source := "placeholder"
	if !c.IsPlaceholder() {
		source = c.Provider
		if c.Model != "" {
			source += "/" + c.Model
		}
	}
	return entry{
		Token:         token,
		Pronunciation: c.Pronunciation,
		Meaning:       c.Meaning,
		Composition:   c.Composition,
		Examples:      c.Examples,
		Source:        source,
	}
}

// progressPrinter reports lookup progress as lines on w.
func progressPrinter(w io.Writer) enrich.ProgressFunc {
	return func(e enrich.ProgressEvent) {
		switch e.Type {
		case enrich.ProgressCacheChecked:
			fmt.Fprintf(w, "Cache: %d/%d tokens found\n", e.Completed, e.Total)
		case enrich.ProgressChunkDone:
			fmt.Fprintf(w, "Request %d/%d done\n", e.Completed, e.Total)
		case enrich.ProgressChunkFailed:
			fmt.Fprintf(w, "Request for %s failed, retrying individually: %s\n", strings.Join(e.Tokens, " "), zinets.ErrorMessage(e.Error))
		case enrich.ProgressPlaceholder:
			fmt.Fprintf(w, "No data for %s\n", strings.Join(e.Tokens, " "))
		}
	}
}
