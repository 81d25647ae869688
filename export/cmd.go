package export

import (
	"log/slog"

	"pixgen/palette"
)

type CLICmd struct {
	Palette string `arg:"" help:"Palette to export: built-in name, hex list, or gradient spec"`
	Out     string `help:"Destination RIFF PAL file" default:"palette.pal"`
}

func (c *CLICmd) Validate() error {
	_, err := palette.Load(c.Palette)
	return err
}

func (c *CLICmd) Run() error {
	pal, err := palette.Load(c.Palette)
	if err != nil {
		return err
	}

	if err := palette.WriteFile(c.Out, pal); err != nil {
		return err
	}

	slog.Info("palette exported", "path", c.Out, "colors", len(pal))
	return nil
}
