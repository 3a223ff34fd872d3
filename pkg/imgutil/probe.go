package imgutil

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
)

// Probe reads image dimensions from headers only.
type Probe struct {
	// NoExif disables the EXIF fallback for JPEGs whose frame header
	// cannot be parsed.
	NoExif bool
}

// Dimensions returns the pixel width and height of the JPEG or PNG at path.
func (p Probe) Dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	kind, err := SniffReader(f)
	if err != nil {
		return 0, 0, fmt.Errorf("sniff %s: %w", path, err)
	}
	if kind == KindUnknown {
		return 0, 0, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, 0, err
	}
	cfg, _, decodeErr := image.DecodeConfig(f)
	if decodeErr == nil && cfg.Width > 0 && cfg.Height > 0 {
		return cfg.Width, cfg.Height, nil
	}

	if kind == KindJPEG && !p.NoExif {
		w, h, err := exifDimensions(f)
		if err == nil && w > 0 && h > 0 {
			return w, h, nil
		}
	}

	if decodeErr == nil {
		decodeErr = fmt.Errorf("zero dimensions %dx%d", cfg.Width, cfg.Height)
	}
	return 0, 0, fmt.Errorf("decode %s header: %w", kind, decodeErr)
}
