package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/erazemk/foodshare/internal/model"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodeJPEG(w, h int) []byte {
	var buf bytes.Buffer
	jpeg.Encode(&buf, solid(w, h, color.RGBA{200, 120, 0, 255}), &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func encodePNG(w, h int) []byte {
	var buf bytes.Buffer
	png.Encode(&buf, solid(w, h, color.RGBA{0, 160, 60, 255}))
	return buf.Bytes()
}

func TestProcessPhotoJPEG(t *testing.T) {
	photo, err := ProcessPhoto(bytes.NewReader(encodeJPEG(120, 80)))
	if err != nil {
		t.Fatalf("ProcessPhoto: %v", err)
	}
	if photo.MIME != "image/jpeg" || len(photo.Data) == 0 {
		t.Errorf("unexpected result: %s, %d bytes", photo.MIME, len(photo.Data))
	}
	if photo.Width != 120 || photo.Height != 80 {
		t.Errorf("small photo should keep its size, got %dx%d", photo.Width, photo.Height)
	}
}

func TestProcessPhotoPNGReencoded(t *testing.T) {
	photo, err := ProcessPhoto(bytes.NewReader(encodePNG(64, 64)))
	if err != nil {
		t.Fatalf("ProcessPhoto: %v", err)
	}
	if photo.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg output, got %s", photo.MIME)
	}
}

func TestProcessPhotoShrinks(t *testing.T) {
	photo, err := ProcessPhoto(bytes.NewReader(encodeJPEG(2048, 1024)))
	if err != nil {
		t.Fatalf("ProcessPhoto: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(photo.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1024 || b.Dy() != 512 {
		t.Errorf("expected 1024x512, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestProcessPhotoRejected(t *testing.T) {
	inputs := map[string][]byte{
		"text": []byte("not an image"),
		"gif":  []byte("GIF89a......"),
	}
	for name, data := range inputs {
		_, err := ProcessPhoto(bytes.NewReader(data))
		if !errors.Is(err, model.ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", name, err)
		}
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{100, 100, 1024, 100, 100},
		{2048, 2048, 1024, 1024, 1024},
		{2048, 1024, 1024, 1024, 512},
		{1000, 3000, 1024, 341, 1024},
		{5000, 1, 1024, 1024, 1},
	}
	for _, tt := range tests {
		w, h := Fit(tt.w, tt.h, tt.max)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("Fit(%d, %d, %d) = %dx%d, want %dx%d", tt.w, tt.h, tt.max, w, h, tt.wantW, tt.wantH)
		}
	}
}
