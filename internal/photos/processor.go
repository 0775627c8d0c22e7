package photos

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
)

const (
	DefaultMaxEdge = 1080
	DefaultQuality = 75

	// limite de leitura do upload
	MaxUploadBytes = 10 << 20
)

// Processor downsizes a photo and re-encodes it as webp.
type Processor struct {
	MaxEdge int
	Quality float32
}

func NewProcessor() Processor {
	return Processor{MaxEdge: DefaultMaxEdge, Quality: DefaultQuality}
}

func (p Processor) Process(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(io.LimitReader(r, MaxUploadBytes))
	if err != nil {
		return nil, httperr.ErrValidation("invalid_image")
	}

	b := src.Bounds()
	w, h := fit(b.Dx(), b.Dy(), p.MaxEdge)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: p.Quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// fit keeps the aspect ratio and caps the longest edge at max.
func fit(w, h, max int) (int, int) {
	if max <= 0 || (w <= max && h <= max) {
		return w, h
	}
	if w >= h {
		nh := h * max / w
		if nh < 1 {
			nh = 1
		}
		return max, nh
	}
	nw := w * max / h
	if nw < 1 {
		nw = 1
	}
	return nw, max
}
