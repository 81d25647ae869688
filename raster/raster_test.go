package raster

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"pixgen/pattern"
)

var testGrid = pattern.Grid{
	{color.RGBA{R: 50, G: 50, B: 50, A: 255}, color.RGBA{R: 200, G: 200, B: 200, A: 255}},
	{color.RGBA{R: 200, G: 200, B: 200, A: 255}, color.RGBA{R: 50, G: 50, B: 50, A: 255}},
	{color.RGBA{R: 0, G: 100, B: 200, A: 255}, color.RGBA{R: 255, G: 150, B: 0, A: 255}},
}

func TestRender_PixelValues(t *testing.T) {
	img, err := Render(testGrid)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 2 || bounds.Dy() != 3 {
		t.Fatalf("canvas is %dx%d, want 2x3", bounds.Dx(), bounds.Dy())
	}

	for y, row := range testGrid {
		for x, want := range row {
			if got := img.RGBAAt(x, y); got != want {
				t.Errorf("pixel (%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRender_EmptyGrid(t *testing.T) {
	for _, grid := range []pattern.Grid{nil, {}, {{}}} {
		if _, err := Render(grid); !errors.Is(err, ErrEmptyGrid) {
			t.Errorf("Render(%v): got %v, want ErrEmptyGrid", grid, err)
		}
	}
}

func TestRender_RaggedGrid(t *testing.T) {
	ragged := pattern.Grid{
		{color.RGBA{A: 255}, color.RGBA{A: 255}},
		{color.RGBA{A: 255}},
	}
	if _, err := Render(ragged); !errors.Is(err, ErrRaggedGrid) {
		t.Errorf("got %v, want ErrRaggedGrid", err)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	for _, ext := range []string{".png", ".bmp", ".tiff"} {
		t.Run(ext[1:], func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out"+ext)
			if err := Write(testGrid, path); err != nil {
				t.Fatalf("Write failed: %v", err)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("could not open output: %v", err)
			}
			defer f.Close()

			img, _, err := image.Decode(f)
			if err != nil {
				t.Fatalf("could not decode output: %v", err)
			}

			if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 3 {
				t.Fatalf("decoded image is %dx%d, want 2x3", img.Bounds().Dx(), img.Bounds().Dy())
			}
			for y, row := range testGrid {
				for x, want := range row {
					r, g, b, _ := img.At(x, y).RGBA()
					got := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255}
					if got != want {
						t.Errorf("pixel (%d,%d): got %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestWrite_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xyz")
	err := Write(testGrid, path)

	var werr *WriteError
	if !errors.As(err, &werr) {
		t.Fatalf("got %T (%v), want *WriteError", err, err)
	}
	if werr.Path != path {
		t.Errorf("WriteError.Path: got %q, want %q", werr.Path, path)
	}
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("got %v, want wrapped ErrUnsupportedFormat", err)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("file exists despite failed write")
	}
}

func TestWrite_EmptyGridLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := Write(pattern.Grid{}, path); !errors.Is(err, ErrEmptyGrid) {
		t.Fatalf("got %v, want ErrEmptyGrid", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Error("file exists despite rejected grid")
	}
}

func TestSave_MissingDirectory(t *testing.T) {
	img, err := Render(testGrid)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "missing", "out.png")
	saveErr := Save(img, path)

	var werr *WriteError
	if !errors.As(saveErr, &werr) {
		t.Fatalf("got %T (%v), want *WriteError", saveErr, saveErr)
	}
	if werr.Unwrap() == nil {
		t.Error("WriteError has no underlying cause")
	}
}

func TestWrite_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := Write(testGrid, path); err != nil {
		t.Fatalf("first Write failed: %v", err)
	}

	smaller := pattern.Grid{{color.RGBA{R: 9, G: 9, B: 9, A: 255}}}
	if err := Write(smaller, path); err != nil {
		t.Fatalf("second Write failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("could not open output: %v", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("could not read output: %v", err)
	}
	if cfg.Width != 1 || cfg.Height != 1 {
		t.Errorf("output is %dx%d, want 1x1 after overwrite", cfg.Width, cfg.Height)
	}
}
