// Package luma estimates a scalar brightness for a linear RGB triple.
//
// The estimators are pure functions selected by Method. Method values are
// persisted inside saved parameters, so the numbering below is a stable
// contract: new variants are appended, existing ones are never renumbered.
package luma

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ironsheep/linear-saturation-mcp/internal/colorspace"
)

// Method selects the luminance estimator.
type Method int32

const (
	LuminanceY Method = 0 // Y of the working profile
	Average    Method = 1 // (r+g+b)/3
	VectorNorm Method = 2 // sqrt(r²+g²+b²)
	PowerNorm  Method = 3 // (r³+g³+b³)/(r²+g²+b²)
	ACES       Method = 4 // (r+g+b+1.75·chroma)/3
)

// ycRadiusWeight scales chroma in the ACES estimate. At 1 pure cyan, magenta
// and yellow match a neutral of the same value; at 2 pure red, green and
// blue do.
const ycRadiusWeight = 1.75

var (
	// ErrMissingProfile is returned when LuminanceY is selected without a
	// working profile.
	ErrMissingProfile = errors.New("luminance Y requires a working profile")

	// ErrUnknownMethod is returned for a Method outside the known variants.
	ErrUnknownMethod = errors.New("unknown luma method")
)

// Func estimates luma for one pixel.
type Func func(r, g, b float32) float32

var methods = []struct {
	method Method
	name   string
	label  string
}{
	{LuminanceY, "luminance", "Luminance Y"},
	{Average, "average", "Average"},
	{VectorNorm, "norm", "Vector Norm"},
	{PowerNorm, "power", "Power Norm"},
	{ACES, "aces", "ACES Luminance"},
}

// Methods returns every known method in presentation order.
func Methods() []Method {
	out := make([]Method, len(methods))
	for i, m := range methods {
		out[i] = m.method
	}
	return out
}

// Valid reports whether m is a known variant.
func (m Method) Valid() bool {
	return m >= LuminanceY && m <= ACES
}

// String returns the short configuration name, e.g. "average".
func (m Method) String() string {
	if m.Valid() {
		return methods[m].name
	}
	return fmt.Sprintf("method(%d)", int32(m))
}

// Description returns the human readable label.
func (m Method) Description() string {
	if m.Valid() {
		return methods[m].label
	}
	return "Unknown"
}

// ParseMethod accepts either the short name or the label of a method.
func ParseMethod(s string) (Method, error) {
	s = strings.TrimSpace(s)
	for _, m := range methods {
		if strings.EqualFold(s, m.name) || strings.EqualFold(s, m.label) {
			return m.method, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// Estimator resolves m to its per-pixel function. It fails when m is unknown
// or when m needs a profile and none was given.
func (m Method) Estimator(profile *colorspace.Profile) (Func, error) {
	switch m {
	case LuminanceY:
		if profile == nil {
			return nil, ErrMissingProfile
		}
		return profile.Y, nil
	case Average:
		return average, nil
	case VectorNorm:
		return vectorNorm, nil
	case PowerNorm:
		return powerNorm, nil
	case ACES:
		return aces, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int32(m))
	}
}

// Estimate computes the luma of a single pixel.
func Estimate(m Method, r, g, b float32, profile *colorspace.Profile) (float32, error) {
	fn, err := m.Estimator(profile)
	if err != nil {
		return 0, err
	}
	return fn(r, g, b), nil
}

func average(r, g, b float32) float32 {
	return (r + g + b) / 3
}

// The norms square and cube in float64 so that large finite channels do
// not overflow before the result is narrowed.

func vectorNorm(r, g, b float32) float32 {
	x, y, z := float64(r), float64(g), float64(b)
	return float32(math.Sqrt(x*x + y*y + z*z))
}

func powerNorm(r, g, b float32) float32 {
	x, y, z := float64(r), float64(g), float64(b)
	x2, y2, z2 := x*x, y*y, z*z
	den := x2 + y2 + z2
	if den == 0 {
		return 0
	}
	return float32((x*x2 + y*y2 + z*z2) / den)
}

func aces(r, g, b float32) float32 {
	chroma := float32(math.Sqrt(float64(chromaRadicand(r, g, b))))
	return (r + g + b + ycRadiusWeight*chroma) / 3
}

// chromaRadicand evaluates b(b−g)+g(g−r)+r(r−b) as half the sum of squared
// channel differences, which is the same polynomial but cannot round below
// zero.
func chromaRadicand(r, g, b float32) float32 {
	dr, dg, db := r-g, g-b, b-r
	return (dr*dr + dg*dg + db*db) / 2
}
