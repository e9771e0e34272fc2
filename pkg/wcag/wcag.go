// Package wcag implements the WCAG 2.1 relative luminance and contrast
// ratio math, plus classification against the AA/AAA thresholds.
package wcag

import (
	"fmt"
	"math"
)

// Conformance thresholds from WCAG 2.1. Fixed by the guidelines, not tunables.
const (
	AANormal  = 4.5
	AAANormal = 7.0
	AALarge   = 3.0
)

// ColorSample is a single sRGB color with channels in [0,1].
// Use NewColorSample or ParseHex to construct one; both reject
// out-of-range channels instead of clamping, so a bad unit conversion
// upstream fails loudly rather than skewing audit results.
type ColorSample struct {
	R float64
	G float64
	B float64
}

// NewColorSample validates the channels and returns the sample.
func NewColorSample(r, g, b float64) (ColorSample, error) {
	c := ColorSample{R: r, G: g, B: b}
	if err := c.Validate(); err != nil {
		return ColorSample{}, err
	}
	return c, nil
}

// Validate checks that every channel is a real number in [0,1].
func (c ColorSample) Validate() error {
	for _, ch := range []struct {
		name  string
		value float64
	}{{"red", c.R}, {"green", c.G}, {"blue", c.B}} {
		if math.IsNaN(ch.value) || ch.value < 0 || ch.value > 1 {
			return fmt.Errorf("invalid color sample: %s channel %v out of [0,1]", ch.name, ch.value)
		}
	}
	return nil
}

// RelativeLuminance returns the perceptually weighted brightness of c,
// in [0,1]. Pure function: identical inputs always produce identical output.
func RelativeLuminance(c ColorSample) float64 {
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B)
}

func linearize(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio returns the WCAG contrast ratio between two colors,
// in [1,21]. Symmetric in its arguments.
func ContrastRatio(a, b ColorSample) float64 {
	l1 := RelativeLuminance(a)
	l2 := RelativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	// The 0.05 offsets are part of the WCAG formula and also keep the
	// denominator away from zero for pure black.
	return (l1 + 0.05) / (l2 + 0.05)
}

// Level holds the three independent conformance flags for a ratio.
// They are kept separate rather than collapsed into a single tier so
// aggregation counts stay lossless; a ratio of 8.0 sets all three.
type Level struct {
	MeetsAA          bool
	MeetsAAA         bool
	MeetsLargeTextAA bool
}

// Classify maps a contrast ratio to its conformance flags.
func Classify(ratio float64) Level {
	return Level{
		MeetsAA:          ratio >= AANormal,
		MeetsAAA:         ratio >= AAANormal,
		MeetsLargeTextAA: ratio >= AALarge,
	}
}

// Label returns the display tier for the level, highest satisfied first.
func (l Level) Label() string {
	switch {
	case l.MeetsAAA:
		return "AAA"
	case l.MeetsAA:
		return "AA"
	case l.MeetsLargeTextAA:
		return "AA Large"
	default:
		return "Fail"
	}
}

// MeetsAA reports whether the pair satisfies AA for normal text.
func MeetsAA(a, b ColorSample) bool {
	return ContrastRatio(a, b) >= AANormal
}

// MeetsAAA reports whether the pair satisfies AAA for normal text.
func MeetsAAA(a, b ColorSample) bool {
	return ContrastRatio(a, b) >= AAANormal
}
