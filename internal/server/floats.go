package server

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Tile output is unclamped and may carry NaN or ±Inf, which JSON numbers
// cannot represent. Non-finite values travel as the strings "NaN", "+Inf"
// and "-Inf"; finite values stay plain numbers.

// sample is a float32 that survives a JSON round trip when non-finite.
type sample float32

// samples is a pixel buffer with the same encoding as sample.
type samples []float32

func appendSample(b []byte, f float32) []byte {
	switch v := float64(f); {
	case math.IsNaN(v):
		return append(b, `"NaN"`...)
	case math.IsInf(v, 1):
		return append(b, `"+Inf"`...)
	case math.IsInf(v, -1):
		return append(b, `"-Inf"`...)
	default:
		return strconv.AppendFloat(b, v, 'g', -1, 32)
	}
}

func parseSample(data []byte) (float32, error) {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, err
		}
		switch s {
		case "NaN":
			return float32(math.NaN()), nil
		case "+Inf", "Inf":
			return float32(math.Inf(1)), nil
		case "-Inf":
			return float32(math.Inf(-1)), nil
		}
		return 0, fmt.Errorf("invalid sample %q", s)
	}
	var f float32
	if err := json.Unmarshal(data, &f); err != nil {
		return 0, err
	}
	return f, nil
}

func (s sample) MarshalJSON() ([]byte, error) {
	return appendSample(nil, float32(s)), nil
}

func (s *sample) UnmarshalJSON(data []byte) error {
	f, err := parseSample(data)
	if err != nil {
		return err
	}
	*s = sample(f)
	return nil
}

func (p samples) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	b := make([]byte, 0, 2+len(p)*8)
	b = append(b, '[')
	for i, f := range p {
		if i > 0 {
			b = append(b, ',')
		}
		b = appendSample(b, f)
	}
	return append(b, ']'), nil
}

func (p *samples) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*p = nil
		return nil
	}
	out := make(samples, len(raw))
	for i, r := range raw {
		f, err := parseSample(r)
		if err != nil {
			return fmt.Errorf("pixel %d: %w", i, err)
		}
		out[i] = f
	}
	*p = out
	return nil
}
