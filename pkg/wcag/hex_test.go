package wcag

import (
	"math"
	"testing"
)

func TestParseHex(t *testing.T) {
	cases := []struct {
		in   string
		want ColorSample
	}{
		{"#000000", ColorSample{0, 0, 0}},
		{"#ffffff", ColorSample{1, 1, 1}},
		{"#FFFFFF", ColorSample{1, 1, 1}},
		{"ff0000", ColorSample{1, 0, 0}},
		{"#fff", ColorSample{1, 1, 1}},
		{" #808080 ", ColorSample{128.0 / 255, 128.0 / 255, 128.0 / 255}},
	}
	for _, c := range cases {
		got, err := ParseHex(c.in)
		if err != nil {
			t.Errorf("ParseHex(%q): %v", c.in, err)
			continue
		}
		if math.Abs(got.R-c.want.R) > 1e-12 ||
			math.Abs(got.G-c.want.G) > 1e-12 ||
			math.Abs(got.B-c.want.B) > 1e-12 {
			t.Errorf("ParseHex(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseHexRejectsMalformed(t *testing.T) {
	bad := []string{"", "#", "#ff", "#fffff", "#ffffff0", "#gggggg", "red"}
	for _, in := range bad {
		if _, err := ParseHex(in); err == nil {
			t.Errorf("ParseHex(%q) should have failed", in)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, in := range []string{"#000000", "#ffffff", "#1a2b3c", "#deface"} {
		c, err := ParseHex(in)
		if err != nil {
			t.Fatalf("ParseHex(%q): %v", in, err)
		}
		if got := c.Hex(); got != in {
			t.Errorf("round trip %q -> %q", in, got)
		}
	}
}
