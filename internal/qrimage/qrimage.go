// Package qrimage encodes payloads into QR symbols and renders them as PNG,
// JPEG or SVG images.
package qrimage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"

	svg "github.com/ajstarks/svgo"
	qrcode "github.com/skip2/go-qrcode"
)

var (
	// ErrEncoding is returned when the payload does not fit into the largest
	// QR symbol at the configured error-correction level.
	ErrEncoding = errors.New("qr payload exceeds symbol capacity")

	ErrUnknownFormat = errors.New("unknown image format")
)

const (
	DefaultModuleSize  = 8
	DefaultMinSVGSize  = 200
	DefaultJPEGQuality = 90

	darkColor  = "#000000"
	lightColor = "#ffffff"
)

// Symbol is an encoded QR code. The module grid includes the quiet zone.
type Symbol struct {
	Version int
	modules [][]bool
}

// Size returns the number of modules per side, quiet zone included.
func (s *Symbol) Size() int {
	return len(s.modules)
}

// Dark reports whether the module at column x, row y is dark.
func (s *Symbol) Dark(x, y int) bool {
	return s.modules[y][x]
}

type renderFunc func(e *Encoder, s *Symbol, w io.Writer) error

var renderers = map[Format]renderFunc{
	PNG: func(e *Encoder, s *Symbol, w io.Writer) error {
		return png.Encode(w, e.Raster(s))
	},
	JPEG: func(e *Encoder, s *Symbol, w io.Writer) error {
		return jpeg.Encode(w, e.Raster(s), &jpeg.Options{Quality: e.JPEGQuality})
	},
	SVG: func(e *Encoder, s *Symbol, w io.Writer) error {
		e.Vector(s, w)
		return nil
	},
}

// Encoder turns payloads into images.
type Encoder struct {
	// Level is the fixed error-correction level; the symbol version is the
	// smallest one that holds the payload at this level.
	Level qrcode.RecoveryLevel

	// ModuleSize is the raster edge length of one module in pixels.
	ModuleSize int

	// MinSVGSize is the minimum width and height of SVG output in user units.
	MinSVGSize int

	JPEGQuality int
}

func NewEncoder() *Encoder {
	return &Encoder{
		Level:       qrcode.Medium,
		ModuleSize:  DefaultModuleSize,
		MinSVGSize:  DefaultMinSVGSize,
		JPEGQuality: DefaultJPEGQuality,
	}
}

// Encode builds the QR symbol for payload.
func (e *Encoder) Encode(payload string) (*Symbol, error) {
	code, err := qrcode.New(payload, e.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	return &Symbol{
		Version: code.VersionNumber,
		modules: code.Bitmap(),
	}, nil
}

// Render encodes payload and renders it in format f.
func (e *Encoder) Render(payload string, f Format) ([]byte, error) {
	render, ok := renderers[f]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}

	sym, err := e.Encode(payload)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := render(e, sym, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", f, err)
	}

	return buf.Bytes(), nil
}

// Raster draws s as a grayscale bitmap, ModuleSize pixels per module.
func (e *Encoder) Raster(s *Symbol) *image.Gray {
	scale := max(e.ModuleSize, 1)
	side := s.Size() * scale

	img := image.NewGray(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			c := color.Gray{Y: 0xff}
			if s.Dark(x/scale, y/scale) {
				c = color.Gray{Y: 0x00}
			}
			img.SetGray(x, y, c)
		}
	}

	return img
}

// Vector writes s as an SVG document. Module size is chosen so that the
// image is at least MinSVGSize units on each side; runs of dark modules in a
// row become one rect.
func (e *Encoder) Vector(s *Symbol, w io.Writer) {
	n := s.Size()
	scale := max((e.MinSVGSize+n-1)/n, 1)
	side := n * scale

	canvas := svg.New(w)
	canvas.Startview(side, side, 0, 0, side, side)
	canvas.Rect(0, 0, side, side, `fill="`+lightColor+`"`)

	for y := 0; y < n; y++ {
		for x := 0; x < n; {
			if !s.Dark(x, y) {
				x++
				continue
			}

			start := x
			for x < n && s.Dark(x, y) {
				x++
			}
			canvas.Rect(start*scale, y*scale, (x-start)*scale, scale, `fill="`+darkColor+`"`)
		}
	}

	canvas.End()
}
