package verify

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"

	"pixgen/palette"
	"pixgen/parallel"
	"pixgen/pattern"
)

type CLICmd struct {
	File    string `arg:"" help:"Image file to check" type:"existingfile"`
	Width   int    `help:"Expected grid width in cells" default:"32"`
	Height  int    `help:"Expected grid height in cells" default:"32"`
	Palette string `help:"Palette the image was generated with" default:"basic"`
	Pattern string `help:"Pattern the image was generated with" default:"checker"`
	Scale   int    `help:"Pixels per grid cell" default:"1"`
}

func (c *CLICmd) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: %dx%d", pattern.ErrBadSize, c.Width, c.Height)
	}
	if c.Scale < 1 {
		return fmt.Errorf("invalid scale %d, must be at least 1", c.Scale)
	}
	if _, err := palette.Load(c.Palette); err != nil {
		return err
	}
	if _, err := pattern.Lookup(c.Pattern); err != nil {
		return err
	}
	return nil
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("could not open image %q: %w", c.File, err)
	}

	img, format, err := image.Decode(f)
	if closeErr := f.Close(); closeErr != nil {
		slog.Error("could not close image", "file", c.File, "error", closeErr)
	}
	if err != nil {
		return fmt.Errorf("could not decode image %q: %w", c.File, err)
	}

	pal, err := palette.Load(c.Palette)
	if err != nil {
		return err
	}
	pat, err := pattern.Lookup(c.Pattern)
	if err != nil {
		return err
	}

	grid, err := pattern.GeneratePattern(c.Width, c.Height, pal, pat, pool)
	if err != nil {
		return err
	}

	mismatched, err := Compare(img, grid, c.Scale)
	if err != nil {
		return fmt.Errorf("image %q does not fit the expected grid: %w", c.File, err)
	}
	if mismatched > 0 {
		total := c.Width * c.Height * c.Scale * c.Scale
		return fmt.Errorf("image %q differs from the expected pattern in %d of %d pixels", c.File, mismatched, total)
	}

	slog.Info("image matches pattern", "file", c.File, "format", format,
		"width", c.Width, "height", c.Height, "scale", c.Scale)
	return nil
}

// Compare counts pixels of img that differ from grid, with each grid cell
// covering a scale×scale pixel block. Fails when the dimensions disagree.
func Compare(img image.Image, grid pattern.Grid, scale int) (int, error) {
	bounds := img.Bounds()
	wantW, wantH := grid.Width()*scale, grid.Height()*scale
	if bounds.Dx() != wantW || bounds.Dy() != wantH {
		return 0, fmt.Errorf("image is %dx%d, expected %dx%d", bounds.Dx(), bounds.Dy(), wantW, wantH)
	}

	var mismatched int
	for py := 0; py < wantH; py++ {
		for px := 0; px < wantW; px++ {
			want := grid[py/scale][px/scale]
			r, g, b, _ := img.At(bounds.Min.X+px, bounds.Min.Y+py).RGBA()
			if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
				mismatched++
			}
		}
	}
	return mismatched, nil
}
