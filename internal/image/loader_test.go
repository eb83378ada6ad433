package image

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, dir string, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, "swatch.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func TestFileLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, color.RGBA{R: 200, G: 10, B: 10, A: 255})

	img, err := NewFileLoader().Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("Expected width 4, got %d", img.Bounds().Dx())
	}
}

func TestFileLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{name: "empty", path: ""},
		{name: "missing", path: filepath.Join(dir, "missing.png")},
		{name: "directory", path: dir},
		{name: "undecodable", path: bad},
		{name: "plain http", path: "http://example.com/a.png"},
		{name: "localhost", path: "https://localhost/a.png"},
	}

	loader := NewFileLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loader.Load(context.Background(), tt.path); err == nil {
				t.Errorf("Load(%q) expected error", tt.path)
			}
		})
	}
}

func TestFileLoaderURL(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}

	var fetched string
	loader := &FileLoader{fetch: func(_ context.Context, url string) ([]byte, error) {
		fetched = url
		return buf.Bytes(), nil
	}}

	got, err := loader.Load(context.Background(), "https://example.com/swatch.png")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if fetched != "https://example.com/swatch.png" {
		t.Errorf("Expected fetch of URL, got %q", fetched)
	}
	if got.Bounds().Dx() != 2 {
		t.Errorf("Expected width 2, got %d", got.Bounds().Dx())
	}
}

func TestIsImageFile(t *testing.T) {
	if !IsImageFile("photo.JPG") {
		t.Error("Expected photo.JPG to be an image file")
	}
	if IsImageFile("dmc.json") {
		t.Error("Expected dmc.json not to be an image file")
	}
}
