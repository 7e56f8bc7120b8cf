package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/zinets/zinets"
	"github.com/zinets/zinets/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdin        io.Reader
	Stdout       io.Writer
	Stderr       io.Writer
	Logger       *slog.Logger
	DB           *sqlite.DB
	Characters   zinets.CharacterService
	Dictionary   zinets.Dictionary
	TokenCounter zinets.TokenCounter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log service calls to stderr"`

	Parse  ParseCmd  `cmd:"" help:"Parse a network into a tree"`
	Tokens TokensCmd `cmd:"" help:"List the single-character leaf tokens of a network"`
	Check  CheckCmd  `cmd:"" help:"Report lines that will not parse as intended"`
	Fmt    FmtCmd    `cmd:"" help:"Rewrite a network with consistent indentation"`
	Stats  StatsCmd  `cmd:"" help:"Summarize the shape of a network"`
	Enrich EnrichCmd `cmd:"" help:"Look up dictionary data for the tokens of a network"`
	Cache  CacheCmd  `cmd:"" help:"Inspect and manage cached dictionary data"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File   string `arg:"" optional:"" help:"Network file, '-' for stdin (default: built-in demo)"`
	Format string `short:"f" enum:"json,yaml,tree" default:"json" help:"Output format (json, yaml, tree)"`
}

// TokensCmd is the "tokens" subcommand.
type TokensCmd struct {
	File  string `arg:"" optional:"" help:"Network file, '-' for stdin (default: built-in demo)"`
	Count bool   `short:"c" help:"Print only the number of tokens"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	File string `arg:"" optional:"" help:"Network file, '-' for stdin (default: built-in demo)"`
}

// FmtCmd is the "fmt" subcommand.
type FmtCmd struct {
	File   string `arg:"" optional:"" help:"Network file, '-' for stdin (default: built-in demo)"`
	Indent string `short:"i" enum:"tab,2,4" default:"tab" help:"Indentation per level (tab, 2, 4)"`
	Write  bool   `short:"w" help:"Write the result back to FILE"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	File string `arg:"" optional:"" help:"Network file, '-' for stdin (default: built-in demo)"`
}

// EnrichCmd is the "enrich" subcommand.
type EnrichCmd struct {
	File        string  `arg:"" optional:"" help:"Network file, '-' for stdin (default: built-in demo)"`
	Format      string  `short:"f" enum:"json,yaml" default:"json" help:"Output format (json, yaml)"`
	NoCache     bool    `help:"Neither read nor write the character cache"`
	NoLLM       bool    `name:"no-llm" help:"Use cached data only"`
	DryRun      bool    `help:"Show the requests that would be sent without sending them"`
	ChunkSize   int     `short:"n" default:"10" help:"Tokens per request"`
	Concurrency int     `short:"c" default:"2" help:"Concurrent request limit"`
	RPS         float64 `name:"rps" default:"1" help:"Requests per second (0 for no limit)"`
	Language    string  `short:"l" default:"English" env:"ZINETS_LANGUAGE" help:"Language of meanings and explanations"`
	Model       string  `short:"m" default:"gemini-2.5-flash" env:"ZINETS_MODEL" help:"Gemini model"`
}

// CacheCmd groups the "cache" subcommands.
type CacheCmd struct {
	Stats      CacheStatsCmd      `cmd:"" help:"Summarize the cache"`
	List       CacheListCmd       `cmd:"" help:"List cached characters"`
	Deactivate CacheDeactivateCmd `cmd:"" help:"Deactivate a cached character"`
}

// CacheStatsCmd is the "cache stats" subcommand.
type CacheStatsCmd struct{}

// CacheListCmd is the "cache list" subcommand.
type CacheListCmd struct {
	Token    string `short:"t" help:"Only show this token"`
	Provider string `short:"p" help:"Only show this provider"`
	Model    string `short:"m" help:"Only show this model"`
	All      bool   `short:"a" help:"Include deactivated records"`
	Limit    int    `default:"50" help:"Maximum records to show"`
	Offset   int    `help:"Records to skip"`
}

// CacheDeactivateCmd is the "cache deactivate" subcommand.
type CacheDeactivateCmd struct {
	Token    string `arg:"" help:"Character"`
	Provider string `arg:"" help:"Provider that produced the record"`
	Model    string `arg:"" help:"Model that produced the record"`
}
