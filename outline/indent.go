package outline

import (
	"math"
	"slices"
)

// IndentationScheme is the indentation convention inferred for a document.
type IndentationScheme struct {
	UsingTabs bool

	// Unit is the number of spaces per level, or 1 for tab-based documents.
	Unit int
}

const (
	// spacesPerTab converts tab runs found in space-based documents.
	spacesPerTab = 4

	// tabDocumentSpaceStep converts space runs found in tab-based documents.
	// It is two rather than spacesPerTab: in "心\n\t- 想\n    - 愿" the
	// four-space line must land one level below the single tab above it.
	tabDocumentSpaceStep = 2

	fallbackUnit = 4
)

// ProfileIndentation infers the scheme that best explains all entry lines.
// Tabs win when more entry lines start with a tab than with anything else.
// Otherwise the unit is the most frequent step between the distinct space
// widths, or 2 or 4 when fewer than two distinct widths exist.
func ProfileIndentation(indents []IndentDescriptor) IndentationScheme {
	var tabLines, spaceLines int
	var widths []int
	for _, d := range indents {
		if d.Kind == IndentTab {
			tabLines++
			continue
		}
		spaceLines++
		if d.Width > 0 {
			widths = append(widths, d.Width)
		}
	}

	if tabLines > spaceLines {
		return IndentationScheme{UsingTabs: true, Unit: 1}
	}
	return IndentationScheme{Unit: spaceUnit(widths)}
}

func spaceUnit(widths []int) int {
	distinct := slices.Clone(widths)
	slices.Sort(distinct)
	distinct = slices.Compact(distinct)

	if len(distinct) < 2 {
		var twos, fours int
		for _, w := range widths {
			if w%2 == 0 {
				twos++
			}
			if w%4 == 0 {
				fours++
			}
		}
		if twos > fours {
			return 2
		}
		return fallbackUnit
	}

	steps := make([]int, 0, len(distinct)-1)
	counts := make(map[int]int)
	for i := 1; i < len(distinct); i++ {
		step := distinct[i] - distinct[i-1]
		steps = append(steps, step)
		counts[step]++
	}

	// First step in ascending width order wins a tie.
	unit, best := 0, 0
	for _, step := range steps {
		if counts[step] > best {
			unit, best = step, counts[step]
		}
	}
	return unit
}

// Level converts raw indentation into a logical depth.
func (s IndentationScheme) Level(d IndentDescriptor) int {
	if s.UsingTabs {
		if d.Kind == IndentTab {
			return d.Width + d.Trailing/tabDocumentSpaceStep
		}
		return d.Width / tabDocumentSpaceStep
	}

	unit := max(s.Unit, 1)
	if d.Kind == IndentSpace {
		return roundDiv(d.Width, unit)
	}
	return d.Width*max(1, spacesPerTab/unit) + roundDiv(d.Trailing, unit)
}

// AssignLevels returns one level per entry line, in document order.
// Blank and note lines produce no level.
func AssignLevels(lines []ClassifiedLine, s IndentationScheme) []int {
	var levels []int
	for _, line := range lines {
		if line.Kind == LineEntry {
			levels = append(levels, s.Level(line.Indent))
		}
	}
	return levels
}

// roundDiv rounds n/unit to the nearest integer so that a stray space still
// lands on the intended level.
func roundDiv(n, unit int) int {
	return int(math.RoundToEven(float64(n) / float64(unit)))
}
