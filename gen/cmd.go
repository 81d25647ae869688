package gen

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/disintegration/imaging"

	"pixgen/palette"
	"pixgen/parallel"
	"pixgen/pattern"
	"pixgen/raster"
)

type CLICmd struct {
	Width   int    `help:"Grid width in cells" default:"32"`
	Height  int    `help:"Grid height in cells" default:"32"`
	Palette string `help:"Palette: built-in name, comma-separated hex list, gradient:#from:#to:steps, or a RIFF .pal file" default:"basic"`
	Pattern string `help:"Pattern to draw (checker, cycle)" default:"checker"`
	Scale   int    `help:"Output pixels per grid cell" default:"1"`
	Out     string `help:"Output file; the extension picks the format (png, gif, jpeg, bmp, tiff)" default:"pixel_art.png"`

	Pal color.Palette   `kong:"-"`
	Pat pattern.Pattern `kong:"-"`
}

func (c *CLICmd) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: %dx%d", pattern.ErrBadSize, c.Width, c.Height)
	}
	if c.Scale < 1 {
		return fmt.Errorf("invalid scale %d, must be at least 1", c.Scale)
	}

	var err error
	if c.Pal, err = palette.Load(c.Palette); err != nil {
		return err
	}
	if c.Pat, err = pattern.Lookup(c.Pattern); err != nil {
		return err
	}
	return nil
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	grid, err := pattern.GeneratePattern(c.Width, c.Height, c.Pal, c.Pat, pool)
	if err != nil {
		return err
	}

	img, err := raster.Render(grid)
	if err != nil {
		return err
	}

	out := image.Image(img)
	if c.Scale > 1 {
		out = imaging.Resize(img, c.Width*c.Scale, c.Height*c.Scale, imaging.NearestNeighbor)
	}

	if err := raster.Save(out, c.Out); err != nil {
		return err
	}

	slog.Info("image saved", "path", c.Out, "width", c.Width*c.Scale, "height", c.Height*c.Scale,
		"pattern", c.Pattern, "colors", len(c.Pal))
	return nil
}
