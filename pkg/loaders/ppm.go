package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/df07/go-raycaster/pkg/core"
)

// PPMFormat selects the PPM body encoding
type PPMFormat int

const (
	FormatP3 PPMFormat = 3 // ASCII samples
	FormatP6 PPMFormat = 6 // Binary samples
)

// ParsePPMFormat converts "p3"/"P3"/"3" style names to a format
func ParsePPMFormat(name string) (PPMFormat, error) {
	switch name {
	case "p3", "P3", "3":
		return FormatP3, nil
	case "p6", "P6", "6", "":
		return FormatP6, nil
	}
	return 0, fmt.Errorf("unknown PPM format %q (want p3 or p6)", name)
}

func (f PPMFormat) String() string {
	return fmt.Sprintf("P%d", int(f))
}

const (
	ppmMaxValue = 255
	// MaxPPMDimension bounds each side of a decoded image
	MaxPPMDimension = 8192
)

var errNotPPM = errors.New("not a PPM file")

// WritePPM encodes the frame buffer as a P3 or P6 image with max value 255
func WritePPM(w io.Writer, fb *core.FrameBuffer, format PPMFormat) error {
	if err := fb.Validate(); err != nil {
		return err
	}
	if format != FormatP3 && format != FormatP6 {
		return fmt.Errorf("unsupported PPM format %v", format)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n# output.ppm\n%d %d\n%d\n", format, fb.Width, fb.Height, ppmMaxValue); err != nil {
		return err
	}

	if format == FormatP6 {
		if _, err := bw.Write(fb.Pix); err != nil {
			return err
		}
		return bw.Flush()
	}

	for y := 0; y < fb.Height; y++ {
		row := fb.Row(y)
		for i := 0; i < len(row); i += 3 {
			if _, err := fmt.Fprintf(bw, "%d %d %d ", row[i], row[i+1], row[i+2]); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadPPM decodes a P3 or P6 image. Only 8-bit images (max value 255) are supported.
func ReadPPM(r io.Reader) (*core.FrameBuffer, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, 2)
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("%w: %v", errNotPPM, err)
	}
	if magic[0] != 'P' || (magic[1] != '3' && magic[1] != '6') {
		return nil, fmt.Errorf("%w: invalid magic number %q, expected P3 or P6", errNotPPM, magic)
	}

	header := make([]int, 3)
	names := []string{"width", "height", "max color value"}
	for i := range header {
		value, err := readHeaderInt(br)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", names[i], err)
		}
		header[i] = value
	}
	width, height, maxValue := header[0], header[1], header[2]

	if width <= 0 || height <= 0 || width > MaxPPMDimension || height > MaxPPMDimension {
		return nil, fmt.Errorf("invalid image size %dx%d (each side must be 1..%d)", width, height, MaxPPMDimension)
	}
	if maxValue != ppmMaxValue {
		return nil, fmt.Errorf("unsupported max color value %d, the image has to be 8-bit per channel", maxValue)
	}

	fb := core.NewFrameBuffer(width, height)

	if magic[1] == '6' {
		// Exactly one whitespace byte separates the header from binary data
		if _, err := br.ReadByte(); err != nil {
			return nil, fmt.Errorf("reading pixel data: %w", err)
		}
		if _, err := io.ReadFull(br, fb.Pix); err != nil {
			return nil, fmt.Errorf("reading pixel data: %w", err)
		}
		return fb, nil
	}

	for i := range fb.Pix {
		value, err := readHeaderInt(br)
		if err != nil {
			return nil, fmt.Errorf("reading sample %d: %w", i, err)
		}
		if value < 0 || value > maxValue {
			return nil, fmt.Errorf("sample %d out of range: %d", i, value)
		}
		fb.Pix[i] = uint8(value)
	}
	return fb, nil
}

// readHeaderInt skips whitespace and # comments and reads one decimal integer
func readHeaderInt(br *bufio.Reader) (int, error) {
	var digits []byte
	for {
		c, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(digits) > 0 {
				break
			}
			if err == io.EOF {
				return 0, io.ErrUnexpectedEOF
			}
			return 0, err
		}

		switch {
		case c == '#' && len(digits) == 0:
			if _, err := br.ReadString('\n'); err != nil && err != io.EOF {
				return 0, err
			}
		case isSpace(c):
			if len(digits) > 0 {
				// Leave the delimiter for the P6 body check
				if err := br.UnreadByte(); err != nil {
					return 0, err
				}
				return strconv.Atoi(string(digits))
			}
		case c >= '0' && c <= '9' || (c == '-' && len(digits) == 0):
			digits = append(digits, c)
		default:
			return 0, fmt.Errorf("unexpected character %q", c)
		}
	}
	return strconv.Atoi(string(digits))
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
