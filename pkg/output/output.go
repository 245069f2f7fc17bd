package output

import (
	"bufio"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrUnknownFormat is returned for image formats that cannot be written
var ErrUnknownFormat = errors.New("unknown image format")

// Format is an output image encoding
type Format int

const (
	FormatPNG Format = iota
	FormatPPM        // Plain text P3
	FormatPPMBinary  // Raw P6
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatPPM:
		return "ppm"
	case FormatPPMBinary:
		return "p6"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/x-portable-pixmap"
}

// ParseFormat parses "png", "ppm" (or "p3") and "p6"
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, nil
	case "ppm", "p3":
		return FormatPPM, nil
	case "p6":
		return FormatPPMBinary, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath picks the format from the file extension: .png, .ppm (P3) or .p6
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Encode writes the frame buffer in the given format
func Encode(w io.Writer, fb *renderer.FrameBuffer, format Format) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, fb.ToRGBA())
	case FormatPPM:
		return writePPM(w, fb, false)
	case FormatPPMBinary:
		return writePPM(w, fb, true)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// Save writes the frame buffer to path, creating parent directories
func Save(path string, fb *renderer.FrameBuffer, format Format) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Encode(file, fb, format); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return file.Close()
}

// writePPM writes a P3 (one "r g b" line per pixel) or P6 image, top row first
func writePPM(w io.Writer, fb *renderer.FrameBuffer, binary bool) error {
	bw := bufio.NewWriter(w)

	magic := "P3"
	if binary {
		magic = "P6"
	}
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n255\n", magic, fb.Width, fb.Height); err != nil {
		return err
	}

	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			r, g, b := fb.RGB8(x, y)
			var err error
			if binary {
				_, err = bw.Write([]byte{r, g, b})
			} else {
				_, err = fmt.Fprintf(bw, "%d %d %d\n", r, g, b)
			}
			if err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
