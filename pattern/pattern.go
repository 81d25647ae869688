package pattern

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"pixgen/parallel"
)

var (
	ErrBadSize         = errors.New("grid dimensions must be positive")
	ErrPaletteTooSmall = errors.New("palette has too few colors")
	ErrUnknownPattern  = errors.New("unknown pattern")
)

// Grid holds one generated color per pixel, row-major. All rows have the
// same length. A Grid is never mutated after generation.
type Grid [][]color.RGBA

func (g Grid) Height() int {
	return len(g)
}

func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Pattern maps a pixel coordinate to a palette index.
type Pattern struct {
	// Index picks the palette entry for (x, y); colors is the palette size.
	Index func(x, y, colors int) int
	// MinColors is the smallest palette the pattern can address.
	MinColors int
}

// Checker alternates palette entries 0 and 1: entry 0 exactly when x and y
// share even/odd parity.
var Checker = Pattern{
	Index: func(x, y, _ int) int {
		if (x%2 == 0) == (y%2 == 0) {
			return 0
		}
		return 1
	},
	MinColors: 2,
}

// Cycle walks the whole palette along diagonals: (x+y) mod len(palette).
var Cycle = Pattern{
	Index:     func(x, y, colors int) int { return (x + y) % colors },
	MinColors: 1,
}

var byName = map[string]Pattern{
	"checker": Checker,
	"cycle":   Cycle,
}

func Lookup(name string) (Pattern, error) {
	pat, ok := byName[name]
	if !ok {
		return Pattern{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPattern, name, Names())
	}
	return pat, nil
}

func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate fills a width×height grid with the default checkerboard.
func Generate(width, height int, pal color.Palette) (Grid, error) {
	return GeneratePattern(width, height, pal, Checker, nil)
}

// GeneratePattern fills a width×height grid using pat. Rows run on pool when
// one is given; each result lands at its own row index, so the output is
// identical regardless of scheduling. A nil pool generates sequentially.
func GeneratePattern(width, height int, pal color.Palette, pat Pattern, pool *parallel.Pool) (Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadSize, width, height)
	}
	if len(pal) < pat.MinColors {
		return nil, fmt.Errorf("%w: have %d, pattern needs %d", ErrPaletteTooSmall, len(pal), pat.MinColors)
	}

	colors := make([]color.RGBA, len(pal))
	for i, c := range pal {
		colors[i] = color.RGBAModel.Convert(c).(color.RGBA)
	}

	grid := make(Grid, height)
	fillRow := func(y int) func() {
		return func() {
			row := make([]color.RGBA, width)
			for x := range row {
				row[x] = colors[pat.Index(x, y, len(colors))]
			}
			grid[y] = row
		}
	}

	if pool == nil {
		for y := range grid {
			fillRow(y)()
		}
		return grid, nil
	}

	for y := range grid {
		pool.Do(fillRow(y))
	}
	pool.Wait()

	return grid, nil
}
