package colorspace

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Profile is a linear working RGB space expressed by its RGB to XYZ matrix.
type Profile struct {
	// Name is the identifier used in configuration, e.g. "linear-rec2020".
	Name string `json:"name"`

	// RGBToXYZ maps a linear RGB column vector to CIE XYZ. Row 1 yields the
	// relative luminance Y.
	RGBToXYZ [3][3]float32 `json:"rgb_to_xyz"`
}

// Y returns the relative luminance of a linear RGB triple in this space.
func (p *Profile) Y(r, g, b float32) float32 {
	m := &p.RGBToXYZ[1]
	return m[0]*r + m[1]*g + m[2]*b
}

// XYZ converts a linear RGB triple to CIE XYZ.
func (p *Profile) XYZ(r, g, b float32) (x, y, z float32) {
	m := &p.RGBToXYZ
	x = m[0][0]*r + m[0][1]*g + m[0][2]*b
	y = m[1][0]*r + m[1][1]*g + m[1][2]*b
	z = m[2][0]*r + m[2][1]*g + m[2][2]*b
	return x, y, z
}

// Profile names accepted by ByName.
const (
	NameLinearRec709   = "linear-rec709"
	NameLinearRec2020  = "linear-rec2020"
	NameLinearProPhoto = "linear-prophoto"
)

var (
	// LinearRec709 uses the sRGB primaries. The matrix is taken from
	// go-colorful so both agree on what "linear sRGB" means.
	LinearRec709 = &Profile{
		Name:     NameLinearRec709,
		RGBToXYZ: matrixFromColorful(),
	}

	// LinearRec2020 is the usual working space of a raw pipeline.
	LinearRec2020 = &Profile{
		Name: NameLinearRec2020,
		RGBToXYZ: [3][3]float32{
			{0.6369580, 0.1446169, 0.1688810},
			{0.2627002, 0.6779981, 0.0593017},
			{0.0000000, 0.0280727, 1.0609851},
		},
	}

	// LinearProPhoto uses the ROMM primaries against a D50 white.
	LinearProPhoto = &Profile{
		Name: NameLinearProPhoto,
		RGBToXYZ: [3][3]float32{
			{0.7976749, 0.1351917, 0.0313534},
			{0.2880402, 0.7118741, 0.0000857},
			{0.0000000, 0.0000000, 0.8252100},
		},
	}
)

var builtin = map[string]*Profile{
	NameLinearRec709:   LinearRec709,
	NameLinearRec2020:  LinearRec2020,
	NameLinearProPhoto: LinearProPhoto,
}

// ByName returns the built-in profile registered under name. Lookup is
// case-insensitive.
func ByName(name string) (*Profile, error) {
	p, ok := builtin[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown working profile %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names lists the built-in profile names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for n := range builtin {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// matrixFromColorful recovers the linear sRGB to XYZ matrix by feeding the
// three unit primaries through go-colorful.
func matrixFromColorful() [3][3]float32 {
	var m [3][3]float32
	primaries := [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for col, p := range primaries {
		x, y, z := colorful.LinearRgbToXyz(p[0], p[1], p[2])
		m[0][col] = float32(x)
		m[1][col] = float32(y)
		m[2][col] = float32(z)
	}
	return m
}
