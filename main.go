package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"pixgen/export"
	"pixgen/gen"
	"pixgen/parallel"
	"pixgen/verify"
)

type cli struct {
	Workers int `help:"Worker goroutines for row generation, 0 for one per CPU" default:"1"`

	Gen    gen.CLICmd    `cmd:"" help:"Generate a patterned pixel-art image"`
	Verify verify.CLICmd `cmd:"" help:"Check an image file against the expected pattern"`
	Export export.CLICmd `cmd:"" help:"Export a palette to a RIFF PAL file"`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("pixgen"),
		kong.Description("Procedural pixel-art pattern generator."),
	)

	pool := parallel.Start(c.Workers)
	defer pool.Close()

	if err := kctx.Run(pool); err != nil {
		slog.Error("command failed", "cmd", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
