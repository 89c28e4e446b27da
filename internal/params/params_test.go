package params

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/linear-saturation-mcp/internal/luma"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, float32(0.96), d.SaturationFactor)
	assert.Equal(t, luma.LuminanceY, d.LumaMethod)
	assert.NoError(t, d.Validate())
}

func TestLayoutSizes(t *testing.T) {
	assert.Equal(t, Size, binary.Size(Params{}))
	assert.Equal(t, Size, binary.Size(paramsV3{}))
	for _, s := range chain {
		switch s.from {
		case 1:
			assert.Equal(t, s.size, binary.Size(paramsV1{}))
		case 2:
			assert.Equal(t, s.size, binary.Size(paramsV2{}))
		}
	}
	assert.Len(t, chain, Version-1, "every version below current needs exactly one step")
}

func TestEncodeLayout(t *testing.T) {
	blob := Encode(Params{SaturationFactor: 0.5, LumaMethod: luma.ACES})
	require.Len(t, blob, Size)

	assert.Equal(t, math.Float32bits(0.5), binary.LittleEndian.Uint32(blob[0:4]))
	assert.Equal(t, uint32(4), binary.LittleEndian.Uint32(blob[4:8]))
}

func TestEncodeDecode(t *testing.T) {
	p := Params{SaturationFactor: 1.7, LumaMethod: luma.PowerNorm}
	got, err := Decode(Encode(p))
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestDecode_WrongSize(t *testing.T) {
	for _, n := range []int{0, 4, 7, 9} {
		_, err := Decode(make([]byte, n))
		assert.ErrorIs(t, err, ErrBlobSize, "len %d", n)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       Params
		wantErr bool
	}{
		{"defaults", Defaults(), false},
		{"zero", Params{SaturationFactor: 0, LumaMethod: luma.Average}, false},
		{"max", Params{SaturationFactor: 2, LumaMethod: luma.ACES}, false},
		{"negative", Params{SaturationFactor: -0.1, LumaMethod: luma.Average}, true},
		{"too large", Params{SaturationFactor: 2.01, LumaMethod: luma.Average}, true},
		{"nan", Params{SaturationFactor: float32(math.NaN()), LumaMethod: luma.Average}, true},
		{"unknown method", Params{SaturationFactor: 1, LumaMethod: 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalid), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFields(t *testing.T) {
	fields := Fields()
	require.Len(t, fields, 2)

	sat := fields[0]
	assert.Equal(t, "saturation_factor", sat.Name)
	require.NotNil(t, sat.Min)
	require.NotNil(t, sat.Max)
	assert.Equal(t, 0.0, *sat.Min)
	assert.Equal(t, 2.0, *sat.Max)
	assert.Equal(t, float32(0.96), sat.Default)

	method := fields[1]
	assert.Equal(t, "luma_method", method.Name)
	require.Len(t, method.Options, 5)
	assert.Equal(t, Option{Value: 4, Name: "aces", Label: "ACES Luminance"}, method.Options[4])
}
