package wcag

import (
	"math"
	"testing"
)

var (
	black = ColorSample{0, 0, 0}
	white = ColorSample{1, 1, 1}
)

func TestContrastRatioExtremes(t *testing.T) {
	if got := ContrastRatio(black, white); got != 21.0 {
		t.Fatalf("black vs white: expected exactly 21, got %v", got)
	}
}

func TestContrastRatioIdentity(t *testing.T) {
	samples := []ColorSample{
		black,
		white,
		{1, 0, 0},
		{0.25, 0.5, 0.75},
	}
	for _, s := range samples {
		if got := ContrastRatio(s, s); got != 1.0 {
			t.Errorf("identical colors %v: expected ratio 1, got %v", s, got)
		}
	}
}

func TestContrastRatioSymmetry(t *testing.T) {
	pairs := [][2]ColorSample{
		{black, white},
		{{0.2, 0.4, 0.6}, {0.9, 0.1, 0.5}},
		{{0.03, 0.03, 0.03}, {0.04, 0.04, 0.04}},
	}
	for _, p := range pairs {
		ab := ContrastRatio(p[0], p[1])
		ba := ContrastRatio(p[1], p[0])
		if ab != ba {
			t.Errorf("ratio not symmetric for %v/%v: %v vs %v", p[0], p[1], ab, ba)
		}
	}
}

func TestContrastRatioBounds(t *testing.T) {
	samples := []ColorSample{
		black, white,
		{0.1, 0.2, 0.3},
		{0.5, 0.5, 0.5},
		{0.99, 0.01, 0.42},
	}
	for _, a := range samples {
		for _, b := range samples {
			r := ContrastRatio(a, b)
			if r < 1.0 || r > 21.0 {
				t.Errorf("ratio %v for %v/%v outside [1,21]", r, a, b)
			}
		}
	}
}

func TestContrastRatioMidGrayFixture(t *testing.T) {
	gray := ColorSample{0.502, 0.502, 0.502}
	got := ContrastRatio(gray, white)
	if math.Abs(got-3.95) > 0.01 {
		t.Fatalf("mid-gray vs white: expected ~3.95, got %v", got)
	}
}

func TestRelativeLuminanceEndpoints(t *testing.T) {
	if got := RelativeLuminance(black); got != 0.0 {
		t.Errorf("black: expected luminance 0, got %v", got)
	}
	if got := RelativeLuminance(white); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("white: expected luminance 1, got %v", got)
	}
}

func TestLinearizeContinuityAtBoundary(t *testing.T) {
	// The piecewise sRGB linearization must not jump at the 0.03928
	// branch point.
	const v = 0.03928
	low := v / 12.92
	high := math.Pow((v+0.055)/1.055, 2.4)
	if diff := math.Abs(low - high); diff >= 1e-6 {
		t.Fatalf("linearization discontinuous at %v: branch gap %v", v, diff)
	}
}

func TestClassifyThresholds(t *testing.T) {
	cases := []struct {
		ratio float64
		want  Level
		label string
	}{
		{1.0, Level{false, false, false}, "Fail"},
		{2.99, Level{false, false, false}, "Fail"},
		{3.0, Level{false, false, true}, "AA Large"},
		{4.49, Level{false, false, true}, "AA Large"},
		{4.5, Level{true, false, true}, "AA"},
		{6.99, Level{true, false, true}, "AA"},
		{7.0, Level{true, true, true}, "AAA"},
		{8.0, Level{true, true, true}, "AAA"},
		{21.0, Level{true, true, true}, "AAA"},
	}
	for _, c := range cases {
		got := Classify(c.ratio)
		if got != c.want {
			t.Errorf("Classify(%v) = %+v, want %+v", c.ratio, got, c.want)
		}
		if got.Label() != c.label {
			t.Errorf("Classify(%v).Label() = %q, want %q", c.ratio, got.Label(), c.label)
		}
	}
}

func TestClassifyMonotonic(t *testing.T) {
	// No flag may flip from true back to false as the ratio increases.
	prev := Classify(1.0)
	for ratio := 1.0; ratio <= 21.0; ratio += 0.01 {
		cur := Classify(ratio)
		if (prev.MeetsAA && !cur.MeetsAA) ||
			(prev.MeetsAAA && !cur.MeetsAAA) ||
			(prev.MeetsLargeTextAA && !cur.MeetsLargeTextAA) {
			t.Fatalf("classification not monotonic at ratio %v: %+v -> %+v", ratio, prev, cur)
		}
		prev = cur
	}
}

func TestMeetsWrappers(t *testing.T) {
	if !MeetsAA(black, white) || !MeetsAAA(black, white) {
		t.Error("black on white should meet AA and AAA")
	}
	gray := ColorSample{0.502, 0.502, 0.502}
	if MeetsAA(gray, white) {
		t.Error("mid-gray on white should not meet AA")
	}
}

func TestNewColorSampleRejectsOutOfRange(t *testing.T) {
	bad := [][3]float64{
		{-0.1, 0, 0},
		{0, 1.5, 0},
		{0, 0, 255}, // un-normalized 8-bit value, the classic caller bug
		{math.NaN(), 0, 0},
	}
	for _, b := range bad {
		if _, err := NewColorSample(b[0], b[1], b[2]); err == nil {
			t.Errorf("NewColorSample(%v) should have failed", b)
		}
	}
	if _, err := NewColorSample(0, 0.5, 1); err != nil {
		t.Errorf("valid sample rejected: %v", err)
	}
}
