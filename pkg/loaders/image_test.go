package loaders

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveImage_ByExtension(t *testing.T) {
	dir := t.TempDir()
	fb := testFrame()

	tests := []struct {
		name   string
		file   string
		format PPMFormat
		magic  string
	}{
		{"png", "out/render.png", FormatP6, "\x89PNG"},
		{"upper case png", "render.PNG", FormatP3, "\x89PNG"},
		{"binary ppm", "render.ppm", FormatP6, "P6"},
		{"ascii ppm", "render.ppm", FormatP3, "P3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := SaveImage(path, fb, tt.format); err != nil {
				t.Fatalf("SaveImage failed: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("Failed to read output: %v", err)
			}
			if !bytes.HasPrefix(data, []byte(tt.magic)) {
				t.Errorf("Expected file to start with %q, got %q", tt.magic, data[:4])
			}

			loaded, err := LoadImage(path)
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}
			if !bytes.Equal(loaded.Pix, fb.Pix) {
				t.Errorf("Loaded pixels differ from saved pixels")
			}
		})
	}
}

func TestEncodeImage_PNGDecodes(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeImage(&buf, testFrame(), "png"); err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Output is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("Expected 3x2 PNG, got %v", img.Bounds())
	}
}

func TestEncodeImage_UnknownFormat(t *testing.T) {
	if err := EncodeImage(&bytes.Buffer{}, testFrame(), "gif"); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestLoadImage_Missing(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "nope.ppm")); err == nil {
		t.Error("Expected error for missing file")
	}
}
