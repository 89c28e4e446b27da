package saturation

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/linear-saturation-mcp/internal/colorspace"
	"github.com/ironsheep/linear-saturation-mcp/internal/luma"
	"github.com/ironsheep/linear-saturation-mcp/internal/params"
	"github.com/ironsheep/linear-saturation-mcp/internal/tile"
)

// randomTile fills a tile with values in [-0.5, 2) so out-of-gamut inputs
// are covered too. Alpha is drawn from the same range.
func randomTile(rng *rand.Rand, width, height int) *tile.Tile {
	t := tile.New(tile.ROI{Width: width, Height: height, Scale: 1})
	for i := range t.Pix {
		t.Pix[i] = rng.Float32()*2.5 - 0.5
	}
	return t
}

func onePixel(r, g, b, a float32) *tile.Tile {
	t := tile.New(tile.ROI{Width: 1, Height: 1, Scale: 1})
	t.Set(0, 0, [4]float32{r, g, b, a})
	return t
}

func TestProcess_Scenarios(t *testing.T) {
	tests := []struct {
		name   string
		factor float32
		want   [4]float32
	}{
		{"half saturation", 0.5, [4]float32{0.6, 0.3, 0.3, 1}},
		{"double saturation is not clamped", 2.0, [4]float32{1.2, 0, 0, 1}},
		{"identity", 1.0, [4]float32{0.8, 0.2, 0.2, 1}},
		{"grayscale", 0.0, [4]float32{0.4, 0.4, 0.4, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := params.Params{SaturationFactor: tt.factor, LumaMethod: luma.Average}
			out, err := ProcessTile(&d, nil, onePixel(0.8, 0.2, 0.2, 1))
			require.NoError(t, err)

			got := out.At(0, 0)
			for c := 0; c < 4; c++ {
				assert.InDelta(t, tt.want[c], got[c], 1e-6, "channel %d", c)
			}
		})
	}
}

func TestProcess_Identity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	in := randomTile(rng, 17, 9)

	for _, m := range luma.Methods() {
		t.Run(m.String(), func(t *testing.T) {
			d := params.Params{SaturationFactor: 1, LumaMethod: m}
			out, err := ProcessTile(&d, colorspace.LinearRec2020, in)
			require.NoError(t, err)
			for i := range in.Pix {
				assert.InDelta(t, in.Pix[i], out.Pix[i], 1e-5, "sample %d", i)
			}
		})
	}
}

func TestProcess_FullDesaturation(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	in := randomTile(rng, 8, 8)

	for _, m := range luma.Methods() {
		t.Run(m.String(), func(t *testing.T) {
			d := params.Params{SaturationFactor: 0, LumaMethod: m}
			out, err := ProcessTile(&d, colorspace.LinearRec709, in)
			require.NoError(t, err)

			for y := 0; y < in.ROI.Height; y++ {
				for x := 0; x < in.ROI.Width; x++ {
					px := in.At(x, y)
					want, err := luma.Estimate(m, px[0], px[1], px[2], colorspace.LinearRec709)
					require.NoError(t, err)
					got := out.At(x, y)
					assert.Equal(t, want, got[0])
					assert.Equal(t, want, got[1])
					assert.Equal(t, want, got[2])
				}
			}
		})
	}
}

func TestProcess_AlphaPassthrough(t *testing.T) {
	alphas := []float32{0, 1, 0.5, -3, 7.25, float32(math.Inf(1))}
	in := tile.New(tile.ROI{Width: len(alphas), Height: 1, Scale: 1})
	for i, a := range alphas {
		in.Set(i, 0, [4]float32{0.9, 0.1, 0.4, a})
	}

	for _, factor := range []float32{0, 0.5, 1, 2, 5} {
		for _, m := range luma.Methods() {
			d := params.Params{SaturationFactor: factor, LumaMethod: m}
			out, err := ProcessTile(&d, colorspace.LinearProPhoto, in)
			require.NoError(t, err)
			for i, a := range alphas {
				assert.Equal(t, math.Float32bits(a), math.Float32bits(out.At(i, 0)[3]),
					"factor %g method %s pixel %d", factor, m, i)
			}
		}
	}
}

func TestProcess_PowerNormBlack(t *testing.T) {
	d := params.Params{SaturationFactor: 1.5, LumaMethod: luma.PowerNorm}
	out, err := ProcessTile(&d, nil, onePixel(0, 0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, out.At(0, 0))
}

func TestProcess_NaNPropagates(t *testing.T) {
	nan := float32(math.NaN())
	d := params.Params{SaturationFactor: 0.5, LumaMethod: luma.Average}
	out, err := ProcessTile(&d, nil, onePixel(nan, 0.2, 0.2, 1))
	require.NoError(t, err)

	got := out.At(0, 0)
	for c := 0; c < 3; c++ {
		assert.True(t, math.IsNaN(float64(got[c])), "channel %d: got %f, want NaN", c, got[c])
	}
	assert.Equal(t, float32(1), got[3])
}

func TestProcess_OutOfRangeFactor(t *testing.T) {
	d := params.Params{SaturationFactor: -1, LumaMethod: luma.Average}
	out, err := ProcessTile(&d, nil, onePixel(0.8, 0.2, 0.2, 1))
	require.NoError(t, err)
	got := out.At(0, 0)
	assert.InDelta(t, 0.0, got[0], 1e-6)
	assert.InDelta(t, 0.6, got[1], 1e-6)
}

func TestProcess_MissingProfile(t *testing.T) {
	in := onePixel(0.5, 0.4, 0.3, 1)
	out := tile.New(in.ROI)
	out.Pix[0] = 42

	d := params.Params{SaturationFactor: 0.5, LumaMethod: luma.LuminanceY}
	err := Process(&d, nil, in.Pix, out.Pix, in.ROI, out.ROI)
	assert.True(t, errors.Is(err, luma.ErrMissingProfile), "got %v", err)
	assert.Equal(t, float32(42), out.Pix[0], "output must be untouched on failure")
}

func TestProcess_BadInputs(t *testing.T) {
	roi := tile.ROI{Width: 2, Height: 2, Scale: 1}
	buf := make([]float32, roi.Samples())
	d := params.Defaults()

	err := Process(&d, colorspace.LinearRec2020, buf, buf, roi, tile.ROI{Width: 2, Height: 3})
	assert.ErrorIs(t, err, tile.ErrGeometryMismatch)

	err = Process(&d, colorspace.LinearRec2020, buf[:10], buf, roi, roi)
	assert.ErrorIs(t, err, tile.ErrBufferSize)

	d.LumaMethod = 99
	err = Process(&d, colorspace.LinearRec2020, buf, make([]float32, len(buf)), roi, roi)
	assert.ErrorIs(t, err, luma.ErrUnknownMethod)
}

func TestProcess_LargeTileMatchesSerial(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	in := randomTile(rng, 257, 131)
	d := params.Params{SaturationFactor: 1.35, LumaMethod: luma.ACES}

	out, err := ProcessTile(&d, nil, in)
	require.NoError(t, err)

	for k := 0; k < len(in.Pix); k += 4 {
		l, _ := luma.Estimate(luma.ACES, in.Pix[k], in.Pix[k+1], in.Pix[k+2], nil)
		for c := 0; c < 3; c++ {
			want := l + d.SaturationFactor*(in.Pix[k+c]-l)
			if math.Abs(float64(out.Pix[k+c]-want)) > 1e-5 {
				t.Fatalf("sample %d: got %f, want %f", k+c, out.Pix[k+c], want)
			}
		}
	}
}

func TestProcess_InPlace(t *testing.T) {
	buf := onePixel(0.8, 0.2, 0.2, 0.5)
	d := params.Params{SaturationFactor: 0.5, LumaMethod: luma.Average}
	require.NoError(t, Process(&d, nil, buf.Pix, buf.Pix, buf.ROI, buf.ROI))

	got := buf.At(0, 0)
	assert.InDelta(t, 0.6, got[0], 1e-6)
	assert.InDelta(t, 0.3, got[1], 1e-6)
	assert.InDelta(t, 0.3, got[2], 1e-6)
	assert.Equal(t, float32(0.5), got[3])
}

func TestProcess_EmptyRegion(t *testing.T) {
	d := params.Defaults()
	err := Process(&d, colorspace.LinearRec2020, nil, nil, tile.ROI{}, tile.ROI{})
	assert.NoError(t, err)
}
