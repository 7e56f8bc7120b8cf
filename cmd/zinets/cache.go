package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/zinets/zinets"
)

// Run executes the cache stats command.
func (c *CacheStatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Characters.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zinets.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Total:  %d\n", stats.Total)
	fmt.Fprintf(deps.Stdout, "Active: %d\n", stats.Active)
	fmt.Fprintf(deps.Stdout, "Best:   %d\n", stats.Best)
	printCounts(deps, "By provider:", stats.ByProvider)
	printCounts(deps, "By model:", stats.ByModel)

	if len(stats.Recent) > 0 {
		fmt.Fprintln(deps.Stdout, "Recent:")
		for _, ch := range stats.Recent {
			fmt.Fprintf(deps.Stdout, "  %s  %s  %s\n", ch.Token, ch.Pronunciation, ch.UpdatedAt.Format("2006-01-02 15:04"))
		}
	}
	return nil
}

func printCounts(deps *Dependencies, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintln(deps.Stdout, title)
	for _, k := range slices.Sorted(maps.Keys(counts)) {
		fmt.Fprintf(deps.Stdout, "  %s: %d\n", k, counts[k])
	}
}

// Run executes the cache list command.
func (c *CacheListCmd) Run(deps *Dependencies) error {
	filter := zinets.CharacterFilter{
		ActiveOnly: !c.All,
		Limit:      c.Limit,
		Offset:     c.Offset,
	}
	if c.Token != "" {
		filter.Token = &c.Token
	}
	if c.Provider != "" {
		filter.Provider = &c.Provider
	}
	if c.Model != "" {
		filter.Model = &c.Model
	}

	characters, err := deps.Characters.FindCharacters(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zinets.ErrorMessage(err))
		return err
	}

	if len(characters) == 0 {
		fmt.Fprintln(deps.Stdout, "No cached characters found. Use 'zinets enrich' to fill the cache.")
		return nil
	}

	for _, ch := range characters {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s/%s%s  %s\n", ch.Token, ch.Pronunciation, ch.Provider, ch.Model, flags(ch), ch.Meaning)
	}
	return nil
}

func flags(ch *zinets.Character) string {
	switch {
	case !ch.Active:
		return " [inactive]"
	case ch.Best:
		return " [best]"
	}
	return ""
}

// Run executes the cache deactivate command.
func (c *CacheDeactivateCmd) Run(deps *Dependencies) error {
	if err := deps.Characters.DeactivateCharacter(deps.Ctx, c.Token, c.Provider, c.Model); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", zinets.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deactivated %s from %s/%s\n", c.Token, c.Provider, c.Model)
	return nil
}
