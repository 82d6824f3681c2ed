// Package imaging prepares listing photos for storage: the format is sniffed
// from the bytes, large photos are shrunk and everything is re-encoded as
// JPEG.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"

	"github.com/erazemk/foodshare/internal/model"
)

const (
	// MaxDimension is the longest stored edge in pixels.
	MaxDimension = 1024
	// MaxUploadBytes caps the raw upload size.
	MaxUploadBytes = 5 << 20
	// JPEGQuality is the output compression quality.
	JPEGQuality = 85
)

var acceptedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Photo is an encoded, storable listing photo.
type Photo struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// ProcessPhoto reads an uploaded photo and returns it ready for storage.
// Unsupported or undecodable input is an ErrValidation.
func ProcessPhoto(r io.Reader) (*Photo, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading photo: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, fmt.Errorf("%w: photo larger than %d bytes", model.ErrValidation, MaxUploadBytes)
	}

	// Client headers are not trusted.
	if detected := http.DetectContentType(data); !acceptedMIME[detected] {
		return nil, fmt.Errorf("%w: unsupported photo format %s (JPEG or PNG only)", model.ErrValidation, detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding photo: %v", model.ErrValidation, err)
	}

	img = shrink(img, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding photo: %w", err)
	}

	b := img.Bounds()
	return &Photo{Data: buf.Bytes(), MIME: "image/jpeg", Width: b.Dx(), Height: b.Dy()}, nil
}

// Fit scales w x h down to fit within max on both edges, keeping the aspect
// ratio. Sizes already within bounds are returned unchanged.
func Fit(w, h, max int) (int, int) {
	if w <= max && h <= max {
		return w, h
	}
	if w >= h {
		h = h * max / w
		w = max
	} else {
		w = w * max / h
		h = max
	}
	return maxInt(w, 1), maxInt(h, 1)
}

func shrink(img image.Image, max int) image.Image {
	b := img.Bounds()
	w, h := Fit(b.Dx(), b.Dy(), max)
	if w == b.Dx() && h == b.Dy() {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func init() {
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
}
