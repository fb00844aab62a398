package loaders

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-raycaster/pkg/core"
)

// LoadImage loads a PPM, PNG or JPEG file into a frame buffer
func LoadImage(filename string) (*core.FrameBuffer, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	return DecodeImage(file)
}

// DecodeImage sniffs the stream and decodes PPM, PNG or JPEG data
func DecodeImage(r io.Reader) (*core.FrameBuffer, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}
	if magic[0] == 'P' && (magic[1] == '3' || magic[1] == '6') {
		return ReadPPM(br)
	}

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return core.FrameBufferFromImage(img), nil
}

// EncodeImage writes fb as PNG when format is "png", otherwise as PPM
func EncodeImage(w io.Writer, fb *core.FrameBuffer, format string) error {
	if strings.EqualFold(format, "png") {
		return png.Encode(w, fb.ToImage())
	}
	ppmFormat, err := ParsePPMFormat(format)
	if err != nil {
		return err
	}
	return WritePPM(w, fb, ppmFormat)
}

// FormatForPath picks the output format from a file extension.
// .png selects PNG, anything else selects the given PPM format.
func FormatForPath(filename string, ppmFormat PPMFormat) string {
	if strings.EqualFold(filepath.Ext(filename), ".png") {
		return "png"
	}
	return strings.ToLower(ppmFormat.String())
}

// SaveImage writes fb to filename, choosing PNG or PPM by extension
func SaveImage(filename string, fb *core.FrameBuffer, ppmFormat PPMFormat) error {
	var buf bytes.Buffer
	if err := EncodeImage(&buf, fb, FormatForPath(filename, ppmFormat)); err != nil {
		return err
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("error writing image: %w", err)
	}
	return nil
}
