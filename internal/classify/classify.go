// Package classify decides orientation, the HD gate and widescreen
// suitability for probed image dimensions.
package classify

import (
	"errors"
	"fmt"

	"nerja/internal/ratio"
)

const (
	// HDWidth is the default gate: images must be strictly wider than this.
	HDWidth uint64 = 1920

	// WidescreenMin is the lower bound of the widescreen band (16:10).
	WidescreenMin = 1.6

	// WidescreenMax is the upper bound of the widescreen band. Earlier
	// revisions of the tool used 1.9; 2.7 also admits 21:9
	// ultra-wide material.
	WidescreenMax = 2.7
)

const (
	CategoryWidescreen = "widescreen"
	CategoryNormal     = "normal"
)

type Orientation int

const (
	Unknown Orientation = iota
	Landscape
	Portrait
	Square
)

func (o Orientation) String() string {
	switch o {
	case Landscape:
		return "landscape"
	case Portrait:
		return "portrait"
	case Square:
		return "square"
	default:
		return "unknown"
	}
}

// Policy holds the thresholds used for one scan.
type Policy struct {
	MinWidth uint64
	MinRatio float64
	MaxRatio float64
}

type Result struct {
	HD          bool
	Orientation Orientation
}

func DefaultPolicy() Policy {
	return Policy{MinWidth: HDWidth, MinRatio: WidescreenMin, MaxRatio: WidescreenMax}
}

func (p Policy) Validate() error {
	if p.MinRatio <= 0 {
		return errors.New("minimum ratio must be positive")
	}
	if p.MinRatio > p.MaxRatio {
		return fmt.Errorf("minimum ratio %.3f exceeds maximum ratio %.3f", p.MinRatio, p.MaxRatio)
	}
	return nil
}

// Classify applies the HD gate before looking at orientation, so narrow
// images are never classified even when they are landscape.
func (p Policy) Classify(width, height uint64) Result {
	if width <= p.MinWidth {
		return Result{}
	}
	res := Result{HD: true}
	if width == 0 || height == 0 {
		return res
	}
	switch {
	case width > height:
		res.Orientation = Landscape
	case width < height:
		res.Orientation = Portrait
	default:
		res.Orientation = Square
	}
	return res
}

// IsWidescreen reports whether r lies in [MinRatio, MaxRatio].
func (p Policy) IsWidescreen(r ratio.Ratio) bool {
	if r.IsZero() {
		return false
	}
	f := r.Float()
	return f >= p.MinRatio && f <= p.MaxRatio
}

// Category maps a widescreen decision to its destination subdirectory.
func Category(widescreen bool) string {
	if widescreen {
		return CategoryWidescreen
	}
	return CategoryNormal
}
