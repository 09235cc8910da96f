package sampler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/trueshade/api/colorscience"
)

// DefaultMaxDimension is the longest side an uploaded image is scaled down to
const DefaultMaxDimension = 1024

// ErrUndecodableImage is returned when the upload is not a supported image
var ErrUndecodableImage = errors.New("could not read image, please upload a valid JPEG, PNG, GIF or WebP file")

// Point is a landmark position normalised to the image size, (0,0) top left
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Region is a named skin polygon such as a cheek or the forehead
type Region struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// ParseRegions decodes the JSON regions field of an upload
func ParseRegions(data []byte) ([]Region, error) {
	var regions []Region
	if err := json.Unmarshal(data, &regions); err != nil {
		return nil, &colorscience.InvalidColorInputError{Index: -1, Reason: fmt.Sprintf("regions: %v", err)}
	}
	return regions, nil
}

// Decode reads an uploaded image
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableImage, err)
	}
	return img, nil
}

// Fit scales img down so neither side exceeds maxDim, keeping the aspect
// ratio. Smaller images are returned unchanged.
func Fit(img image.Image, maxDim int) image.Image {
	if maxDim <= 0 {
		return img
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}
	if w >= h {
		return imaging.Resize(img, maxDim, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, maxDim, imaging.Lanczos)
}

// SampleRegions collects the pixels whose centres fall inside any region.
// Regions with fewer than three points are skipped.
func SampleRegions(img image.Image, regions []Region) ([]colorscience.Pixel, error) {
	for i, r := range regions {
		for _, p := range r.Points {
			if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 || math.IsNaN(p.X) || math.IsNaN(p.Y) {
				return nil, &colorscience.InvalidColorInputError{
					Index:  i,
					Reason: fmt.Sprintf("region %q has point (%v, %v) outside the image", r.Name, p.X, p.Y),
				}
			}
		}
	}

	nrgba := imaging.Clone(img)
	w, h := nrgba.Bounds().Dx(), nrgba.Bounds().Dy()

	var pixels []colorscience.Pixel
	for _, r := range regions {
		if len(r.Points) < 3 {
			continue
		}

		poly := make([]Point, len(r.Points))
		minX, minY := float64(w), float64(h)
		maxX, maxY := 0.0, 0.0
		for i, p := range r.Points {
			poly[i] = Point{X: p.X * float64(w), Y: p.Y * float64(h)}
			minX = math.Min(minX, poly[i].X)
			minY = math.Min(minY, poly[i].Y)
			maxX = math.Max(maxX, poly[i].X)
			maxY = math.Max(maxY, poly[i].Y)
		}

		x0, x1 := clampInt(int(math.Floor(minX)), 0, w), clampInt(int(math.Ceil(maxX)), 0, w)
		y0, y1 := clampInt(int(math.Floor(minY)), 0, h), clampInt(int(math.Ceil(maxY)), 0, h)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				if !contains(poly, float64(x)+0.5, float64(y)+0.5) {
					continue
				}
				c := nrgba.NRGBAAt(x, y)
				pixels = append(pixels, colorscience.Pixel{R: c.R, G: c.G, B: c.B})
			}
		}
	}

	return pixels, nil
}

// contains is the even-odd rule
func contains(poly []Point, x, y float64) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > y) != (b.Y > y) && x < (b.X-a.X)*(y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
