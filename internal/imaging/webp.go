// Package imaging normalizes uploaded photos to bounded WebP images.
package imaging

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"github.com/cockroachdb/errors"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
)

const (
	DefaultMaxDimension = 800
	DefaultQuality      = 80

	ContentType = "image/webp"
)

type Options struct {
	MaxDimension int
	Quality      float32
}

func DefaultOptions() Options {
	return Options{MaxDimension: DefaultMaxDimension, Quality: DefaultQuality}
}

// ToWebP decodes a JPEG, PNG or WebP image, downsizes it so neither side
// exceeds opts.MaxDimension and re-encodes it as lossy WebP.
func ToWebP(r io.Reader, opts Options) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	img := Fit(src, opts.MaxDimension)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: opts.Quality}); err != nil {
		return nil, errors.Wrap(err, "encode webp")
	}
	return buf.Bytes(), nil
}

// Fit scales src down, keeping aspect ratio, so both sides are <= max.
// Smaller images are returned untouched.
func Fit(src image.Image, max int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if max <= 0 || (w <= max && h <= max) {
		return src
	}

	nw, nh := max, max
	if w >= h {
		nh = h * max / w
	} else {
		nw = w * max / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
