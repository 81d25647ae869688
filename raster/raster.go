package raster

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"pixgen/pattern"
)

var (
	ErrEmptyGrid         = errors.New("pixel grid is empty")
	ErrRaggedGrid        = errors.New("pixel grid rows differ in length")
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

// WriteError reports a failed image write together with the destination path.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("could not write image %q: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Render draws the grid onto a fresh canvas, one pixel per cell.
func Render(grid pattern.Grid) (*image.RGBA, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, ErrEmptyGrid
	}

	width := len(grid[0])
	for y, row := range grid {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d", ErrRaggedGrid, y, len(row), width)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, len(grid)))
	for y, row := range grid {
		for x, c := range row {
			img.SetRGBA(x, y, c)
		}
	}

	return img, nil
}

// Write renders grid and saves it to path in one shot.
func Write(grid pattern.Grid, path string) error {
	img, err := Render(grid)
	if err != nil {
		return err
	}
	return Save(img, path)
}

// Save encodes img in the format named by path's extension. The encode goes
// to a temporary file in the destination directory and is renamed over path
// only after a successful sync, so a failed write leaves nothing behind.
func Save(img image.Image, path string) error {
	encode, err := encoderFor(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	if err = encode(tmp, img); err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}

	if err != nil {
		if rmErr := os.Remove(tmp.Name()); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			slog.Error("could not remove temporary file", "file", tmp.Name(), "error", rmErr)
		}
		return &WriteError{Path: path, Err: err}
	}

	return nil
}

// encoderFor maps an output extension to its encoder. JPEG is lossy and GIF
// quantizes to a fixed 256-color palette; the other formats round-trip
// pixel values exactly.
func encoderFor(path string) (func(io.Writer, image.Image) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return pngEncode, nil
	case ".gif":
		return func(w io.Writer, img image.Image) error {
			return gif.Encode(w, img, nil)
		}, nil
	case ".jpg", ".jpeg":
		return func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
		}, nil
	case ".bmp":
		return bmp.Encode, nil
	case ".tif", ".tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, nil)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func pngEncode(w io.Writer, img image.Image) error {
	enc := png.Encoder{
		CompressionLevel: png.BestCompression,
		BufferPool:       pngPool,
	}
	return enc.Encode(w, img)
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
