package palette

// Microsoft RIFF PAL, LOGPALETTE version 3. The data chunk holds
// WORD palVersion, WORD palNumEntries, then 4 bytes (R, G, B, flags)
// per entry.

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"io"
	"os"

	"golang.org/x/image/riff"
)

var (
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

// ReadFile loads the first palette from a RIFF PAL file.
func ReadFile(path string) (color.Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open palette file: %w", err)
	}
	defer f.Close()

	pal, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not read palette file %q: %w", path, err)
	}
	return pal, nil
}

// Decode reads the first palette data chunk of a RIFF PAL stream.
func Decode(r io.Reader) (color.Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	}
	if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %s", formType[:])
	}

	for {
		id, _, data, err := rd.Next()
		if err == io.EOF {
			return nil, fmt.Errorf("RIFF stream has no palette data chunk")
		}
		if err != nil {
			return nil, fmt.Errorf("could not read RIFF chunk: %w", err)
		}
		if id != dataType {
			continue
		}
		return decodeEntries(data)
	}
}

func decodeEntries(r io.Reader) (color.Palette, error) {
	buf := make([]byte, 2)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("could not read palette version: %w", err)
	}
	if ver := binary.BigEndian.Uint16(buf); ver != 3 {
		return nil, fmt.Errorf("unsupported palette version: %d", ver)
	}

	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("could not read palette size: %w", err)
	}
	count := binary.LittleEndian.Uint16(buf)

	pal := make(color.Palette, 0, count)
	entry := make([]byte, 4)
	for i := 0; i < int(count); i++ {
		if _, err := io.ReadFull(r, entry); err != nil {
			return nil, fmt.Errorf("could not read palette entry %d/%d: %w", i, count, err)
		}
		pal = append(pal, color.RGBA{R: entry[0], G: entry[1], B: entry[2], A: 0xFF})
	}
	return pal, nil
}

// WriteFile saves pal as a single-palette RIFF PAL file.
func WriteFile(path string, pal color.Palette) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create palette file %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("could not close palette file %q: %w", path, closeErr)
		}
	}()

	if err = Encode(f, pal); err != nil {
		return fmt.Errorf("could not write palette file %q: %w", path, err)
	}
	return nil
}

// Encode writes pal as a RIFF PAL stream with a single data chunk.
func Encode(w io.Writer, pal color.Palette) error {
	data := 4 + len(pal)*4 // version + count + entries
	total := 4 + 8 + data  // form type + chunk header + payload

	out := make([]byte, 0, 20+data)
	out = append(out, 'R', 'I', 'F', 'F')
	out = binary.LittleEndian.AppendUint32(out, uint32(total))
	out = append(out, palType[:]...)
	out = append(out, dataType[:]...)
	out = binary.LittleEndian.AppendUint32(out, uint32(data))
	out = append(out, 0x00, 0x03) // LOGPALETTE version 3
	out = binary.LittleEndian.AppendUint16(out, uint16(len(pal)))
	for _, col := range pal {
		c := color.RGBAModel.Convert(col).(color.RGBA)
		out = append(out, c.R, c.G, c.B, 0x00)
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("could not write RIFF PAL stream: %w", err)
	}
	return nil
}
