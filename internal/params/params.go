// Package params defines the persisted settings of the linear saturation
// stage and the upgrade path for blobs written by older releases.
//
// Params is a flat value: copying it copies everything, and its binary
// encoding is a fixed little-endian record. Any layout or meaning change
// bumps Version and adds a step to the upgrade chain in migrate.go.
package params

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/linear-saturation-mcp/internal/luma"
)

// Version is the schema version written by Encode.
const Version = 3

// Size is the encoded length of the current schema.
const Size = 8

// Range of SaturationFactor accepted by Validate.
const (
	MinSaturation = 0.0
	MaxSaturation = 2.0
)

var (
	// ErrInvalid is returned by Validate.
	ErrInvalid = errors.New("invalid parameters")

	// ErrBlobSize is returned when a blob's length does not match the
	// layout of its declared version.
	ErrBlobSize = errors.New("parameter blob has wrong size")
)

// Params is the complete, persisted state of one module instance.
type Params struct {
	// SaturationFactor scales chroma around luma: 0 is grayscale, 1 is
	// identity, above 1 oversaturates.
	SaturationFactor float32 `json:"saturation_factor"`

	// LumaMethod picks the luminance estimator the chroma is centred on.
	LumaMethod luma.Method `json:"luma_method"`
}

// Defaults returns the settings of a freshly instantiated module.
func Defaults() Params {
	return Params{
		SaturationFactor: 0.96,
		LumaMethod:       luma.LuminanceY,
	}
}

// Validate checks the ranges the host enforces before a commit. The kernel
// itself never calls it.
func (p Params) Validate() error {
	f := float64(p.SaturationFactor)
	if math.IsNaN(f) || f < MinSaturation || f > MaxSaturation {
		return fmt.Errorf("%w: saturation_factor %g outside [%g, %g]",
			ErrInvalid, f, MinSaturation, MaxSaturation)
	}
	if !p.LumaMethod.Valid() {
		return fmt.Errorf("%w: luma_method %d", ErrInvalid, int32(p.LumaMethod))
	}
	return nil
}

// Encode returns the current-version binary form of p.
func Encode(p Params) []byte {
	var buf bytes.Buffer
	buf.Grow(Size)
	// Writes to a bytes.Buffer cannot fail for a fixed-size struct.
	_ = binary.Write(&buf, binary.LittleEndian, p)
	return buf.Bytes()
}

// Decode parses a current-version blob. Older blobs must go through Load.
func Decode(blob []byte) (Params, error) {
	var p Params
	if len(blob) != Size {
		return p, fmt.Errorf("%w: v%d needs %d bytes, got %d", ErrBlobSize, Version, Size, len(blob))
	}
	if err := binary.Read(bytes.NewReader(blob), binary.LittleEndian, &p); err != nil {
		return p, fmt.Errorf("failed to decode parameters: %w", err)
	}
	return p, nil
}

// Load upgrades a blob of any supported version to the current schema and
// decodes it.
func Load(blob []byte, version int) (Params, error) {
	cur, err := Migrate(blob, version, Version)
	if err != nil {
		return Params{}, err
	}
	return Decode(cur)
}

// Field describes one parameter for hosts that build their own controls.
type Field struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Default     any      `json:"default"`
	Options     []Option `json:"options,omitempty"`
}

// Option is one entry of an enumerated field.
type Option struct {
	Value int32  `json:"value"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Fields lists the parameters in display order.
func Fields() []Field {
	d := Defaults()
	lo, hi := MinSaturation, MaxSaturation

	opts := make([]Option, 0, len(luma.Methods()))
	for _, m := range luma.Methods() {
		opts = append(opts, Option{Value: int32(m), Name: m.String(), Label: m.Description()})
	}

	return []Field{
		{
			Name:        "saturation_factor",
			Type:        "float",
			Description: "saturation",
			Min:         &lo,
			Max:         &hi,
			Default:     d.SaturationFactor,
		},
		{
			Name:        "luma_method",
			Type:        "enum",
			Description: "grey",
			Default:     int32(d.LumaMethod),
			Options:     opts,
		},
	}
}
