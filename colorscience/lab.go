package colorscience

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Pixel is a single 8-bit sample in R, G, B channel order
type Pixel struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// LabColor is a colour in the 8-bit quantised LAB model: L is scaled to 0-255
// and a/b are offset so that 128 is achromatic.
type LabColor struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// Slice returns the colour as [L, a, b]
func (c LabColor) Slice() []float64 {
	return []float64{c.L, c.A, c.B}
}

func labFromSlice(v []float64) LabColor {
	return LabColor{L: v[0], A: v[1], B: v[2]}
}

const (
	labScaleL      = 255.0
	labScaleChroma = 100.0
	labOffset      = 128.0
)

func quantize(v float64) float64 {
	v = math.Round(v)
	if v <= 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// RGBToLab converts an sRGB pixel (D65 white) to the quantised LAB model.
// go-colorful reports L in [0,1] and a/b in hundredths, so L*255 and a*100+128
// reproduce the usual 8-bit LAB encoding.
func RGBToLab(p Pixel) LabColor {
	c := colorful.Color{
		R: float64(p.R) / 255.0,
		G: float64(p.G) / 255.0,
		B: float64(p.B) / 255.0,
	}
	l, a, b := c.Lab()
	return LabColor{
		L: quantize(l * labScaleL),
		A: quantize(a*labScaleChroma + labOffset),
		B: quantize(b*labScaleChroma + labOffset),
	}
}

// LabToRGB converts a quantised LAB colour back to sRGB, clamping out of gamut
// values. Quantisation makes this lossy.
func LabToRGB(lab LabColor) Pixel {
	c := colorful.Lab(
		lab.L/labScaleL,
		(lab.A-labOffset)/labScaleChroma,
		(lab.B-labOffset)/labScaleChroma,
	).Clamped()
	r, g, b := c.RGB255()
	return Pixel{R: r, G: g, B: b}
}

// HexToLab parses "#rrggbb", "rrggbb" or "#rgb" and converts it to LAB
func HexToLab(hex string) (LabColor, error) {
	p, err := ParseHex(hex)
	if err != nil {
		return LabColor{}, err
	}
	return RGBToLab(p), nil
}

// ParseHex parses a hex colour string into a pixel
func ParseHex(hex string) (Pixel, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if (len(digits) != 3 && len(digits) != 6) || strings.Trim(digits, "0123456789abcdefABCDEF") != "" {
		return Pixel{}, &InvalidColorInputError{Index: -1, Reason: fmt.Sprintf("malformed hex colour %q", hex)}
	}
	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return Pixel{}, &InvalidColorInputError{Index: -1, Reason: fmt.Sprintf("malformed hex colour %q", hex)}
	}
	r, g, b := c.RGB255()
	return Pixel{R: r, G: g, B: b}, nil
}

// LabToHex converts a LAB colour to a lowercase "#rrggbb" string
func LabToHex(lab LabColor) string {
	p := LabToRGB(lab)
	return fmt.Sprintf("#%02x%02x%02x", p.R, p.G, p.B)
}

// DeltaE is the CIE76 colour difference, the Euclidean distance between two
// colours in the quantised LAB space.
func DeltaE(a, b LabColor) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return math.Sqrt(dl*dl + da*da + db*db)
}
