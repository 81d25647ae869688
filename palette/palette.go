package palette

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrUnknown = errors.New("unknown palette")

var builtins = map[string]color.Palette{
	"basic": {
		color.RGBA{R: 50, G: 50, B: 50, A: 0xFF},
		color.RGBA{R: 200, G: 200, B: 200, A: 0xFF},
		color.RGBA{R: 0, G: 100, B: 200, A: 0xFF},
		color.RGBA{R: 255, G: 150, B: 0, A: 0xFF},
	},
	"bw": {
		color.RGBA{A: 0xFF},
		color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	},
	"gray4": {
		color.RGBA{A: 0xFF},
		color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xFF},
		color.RGBA{R: 0xAA, G: 0xAA, B: 0xAA, A: 0xFF},
		color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	},
	"gameboy": {
		color.RGBA{R: 0x0F, G: 0x38, B: 0x0F, A: 0xFF},
		color.RGBA{R: 0x30, G: 0x62, B: 0x30, A: 0xFF},
		color.RGBA{R: 0x8B, G: 0xAC, B: 0x0F, A: 0xFF},
		color.RGBA{R: 0x9B, G: 0xBC, B: 0x0F, A: 0xFF},
	},
}

// Load resolves a palette spec. Accepted forms:
//   - a built-in name ("basic", "bw", "gray4", "gameboy")
//   - a comma-separated hex list, e.g. "#323232,#c8c8c8"
//   - "gradient:#from:#to:steps", blended in Lab space
//   - a path to a RIFF PAL file ("*.pal")
func Load(spec string) (color.Palette, error) {
	switch {
	case strings.HasPrefix(spec, "gradient:"):
		return gradient(strings.TrimPrefix(spec, "gradient:"))
	case strings.HasPrefix(spec, "#"):
		return hexList(spec)
	case strings.EqualFold(filepath.Ext(spec), ".pal"):
		return ReadFile(spec)
	}

	if pal, ok := builtins[spec]; ok {
		return pal, nil
	}
	return nil, fmt.Errorf("%w: %q (built-ins: %s)", ErrUnknown, spec, strings.Join(Names(), ", "))
}

func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func hexList(spec string) (color.Palette, error) {
	parts := strings.Split(spec, ",")
	pal := make(color.Palette, 0, len(parts))
	for _, part := range parts {
		c, err := colorful.Hex(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid palette color %q: %w", part, err)
		}
		r, g, b := c.RGB255()
		pal = append(pal, color.RGBA{R: r, G: g, B: b, A: 0xFF})
	}
	return pal, nil
}

func gradient(spec string) (color.Palette, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid gradient %q, want gradient:#from:#to:steps", spec)
	}

	from, err := colorful.Hex(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid gradient start %q: %w", parts[0], err)
	}
	to, err := colorful.Hex(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid gradient end %q: %w", parts[1], err)
	}
	steps, err := strconv.Atoi(parts[2])
	if err != nil || steps < 2 {
		return nil, fmt.Errorf("invalid gradient step count %q, need an integer >= 2", parts[2])
	}

	pal := make(color.Palette, steps)
	for i := range pal {
		c := from.BlendLab(to, float64(i)/float64(steps-1)).Clamped()
		r, g, b := c.RGB255()
		pal[i] = color.RGBA{R: r, G: g, B: b, A: 0xFF}
	}
	return pal, nil
}
