package params

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedVersion is returned for versions outside 1..Version
	// and for downgrades.
	ErrUnsupportedVersion = errors.New("unsupported parameter version")

	// ErrUnmappable is returned when an old blob selects a setting that has
	// no equivalent in the next version.
	ErrUnmappable = errors.New("parameter value has no equivalent in newer version")
)

// Frozen layouts of released versions. Never edit these: they describe
// bytes already sitting in users' databases.

// paramsV1 is the first release. Luma was always perceptual luminance.
type paramsV1 struct {
	SaturationFactor float32
}

// paramsV2 selected luma through the shared rgb-norm enumeration:
// NONE=0 LUMINANCE=1 MAX=2 AVERAGE=3 SUM=4 NORM=5 POWER=6.
type paramsV2 struct {
	SaturationFactor float32
	LumaMethod       int32
}

// paramsV3 switched to the module's own estimator numbering. It is the
// current layout and must stay byte-compatible with Params.
type paramsV3 struct {
	SaturationFactor float32
	LumaMethod       int32
}

// step upgrades a blob of version from to version from+1.
type step struct {
	from    int
	size    int
	upgrade func([]byte) ([]byte, error)
}

// chain holds one step per released version below Version, in order.
var chain = []step{
	{from: 1, size: 4, upgrade: upgradeV1},
	{from: 2, size: 8, upgrade: upgradeV2},
}

// sizeOf returns the blob length of a supported version.
func sizeOf(version int) (int, bool) {
	if version == Version {
		return Size, true
	}
	for _, s := range chain {
		if s.from == version {
			return s.size, true
		}
	}
	return 0, false
}

// Migrate upgrades blob from oldVersion to newVersion, walking every
// intermediate version. It is a pure function of its arguments; on failure
// it returns nil and the caller keeps whatever it had before.
func Migrate(blob []byte, oldVersion, newVersion int) ([]byte, error) {
	oldSize, ok := sizeOf(oldVersion)
	if !ok {
		return nil, fmt.Errorf("%w: from v%d", ErrUnsupportedVersion, oldVersion)
	}
	if _, ok := sizeOf(newVersion); !ok || newVersion < oldVersion {
		return nil, fmt.Errorf("%w: v%d to v%d", ErrUnsupportedVersion, oldVersion, newVersion)
	}
	if len(blob) != oldSize {
		return nil, fmt.Errorf("%w: v%d needs %d bytes, got %d", ErrBlobSize, oldVersion, oldSize, len(blob))
	}

	cur := make([]byte, len(blob))
	copy(cur, blob)

	for v := oldVersion; v < newVersion; v++ {
		s := chain[v-1]
		next, err := s.upgrade(cur)
		if err != nil {
			return nil, fmt.Errorf("upgrade v%d to v%d: %w", v, v+1, err)
		}
		cur = next
	}
	return cur, nil
}

// upgradeV1 adds the luma selector. Old edits keep their look by selecting
// LUMINANCE (1 in the v2 numbering).
func upgradeV1(blob []byte) ([]byte, error) {
	var o paramsV1
	if err := decodeFrozen(blob, &o); err != nil {
		return nil, err
	}
	n := paramsV2{
		SaturationFactor: o.SaturationFactor,
		LumaMethod:       1,
	}
	return encodeFrozen(n), nil
}

// v2 rgb-norm value -> v3 estimator value. NONE, MAX and SUM never had an
// estimator behind them in this module.
var v2ToV3Luma = map[int32]int32{
	1: 0, // LUMINANCE -> Luminance Y
	3: 1, // AVERAGE -> Average
	5: 2, // NORM -> Vector Norm
	6: 3, // POWER -> Power Norm
}

// upgradeV2 renumbers the luma selector.
func upgradeV2(blob []byte) ([]byte, error) {
	var o paramsV2
	if err := decodeFrozen(blob, &o); err != nil {
		return nil, err
	}
	m, ok := v2ToV3Luma[o.LumaMethod]
	if !ok {
		return nil, fmt.Errorf("%w: v2 luma_method %d", ErrUnmappable, o.LumaMethod)
	}
	n := paramsV3{
		SaturationFactor: o.SaturationFactor,
		LumaMethod:       m,
	}
	return encodeFrozen(n), nil
}

func decodeFrozen(blob []byte, v any) error {
	if err := binary.Read(bytes.NewReader(blob), binary.LittleEndian, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBlobSize, err)
	}
	return nil
}

func encodeFrozen(v any) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, v)
	return buf.Bytes()
}
