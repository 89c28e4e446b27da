package colorspace

import (
	"math"
	"testing"
)

func TestProfile_WhiteHasUnitLuminance(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			p, err := ByName(name)
			if err != nil {
				t.Fatalf("ByName(%q) failed: %v", name, err)
			}
			y := p.Y(1, 1, 1)
			if math.Abs(float64(y)-1) > 1e-3 {
				t.Errorf("Y(1,1,1): got %f, want 1", y)
			}
		})
	}
}

func TestProfile_YMatchesXYZ(t *testing.T) {
	p := LinearRec2020
	_, y, _ := p.XYZ(0.3, 0.5, 0.2)
	if got := p.Y(0.3, 0.5, 0.2); got != y {
		t.Errorf("Y: got %f, want %f", got, y)
	}
}

func TestLinearRec709_MatchesSRGBCoefficients(t *testing.T) {
	want := [3]float64{0.2126, 0.7152, 0.0722}
	for i, w := range want {
		got := float64(LinearRec709.RGBToXYZ[1][i])
		if math.Abs(got-w) > 1e-3 {
			t.Errorf("Y coefficient %d: got %f, want %f", i, got, w)
		}
	}
}

func TestByName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *Profile
		wantErr bool
	}{
		{"exact", "linear-rec2020", LinearRec2020, false},
		{"mixed case", "Linear-Rec709", LinearRec709, false},
		{"padded", "  linear-prophoto ", LinearProPhoto, false},
		{"unknown", "adobe-rgb", nil, true},
		{"empty", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ByName(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("ByName should fail")
				}
				return
			}
			if err != nil {
				t.Fatalf("ByName failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got.Name, tt.want.Name)
			}
		})
	}
}
