package qrimage

import (
	"fmt"
	"strings"
)

// Format is an output image format.
type Format int

const (
	PNG Format = iota
	JPEG
	SVG
)

// ParseFormat maps a "type" query value to a Format. An empty value selects PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "svg":
		return SVG, nil
	default:
		return PNG, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpg"
	case SVG:
		return "svg"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ContentType returns the media type of images rendered in f.
func (f Format) ContentType() string {
	switch f {
	case JPEG:
		return "image/jpeg"
	case SVG:
		return "image/svg+xml"
	default:
		return "image/png"
	}
}
