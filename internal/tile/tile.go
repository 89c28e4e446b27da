package tile

import (
	"errors"
	"fmt"
)

// Channels is the number of float samples per pixel.
const Channels = 4

var (
	// ErrGeometryMismatch is returned when input and output regions differ
	// in size.
	ErrGeometryMismatch = errors.New("input and output regions differ in size")

	// ErrBufferSize is returned when a buffer is too small for its region.
	ErrBufferSize = errors.New("buffer smaller than region")
)

// ROI describes where a tile sits in the full image.
type ROI struct {
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Scale  float64 `json:"scale"`
}

// Pixels returns Width*Height, or 0 for a degenerate region.
func (r ROI) Pixels() int {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Samples returns the number of floats a buffer for r must hold.
func (r ROI) Samples() int {
	return r.Pixels() * Channels
}

// SameGeometry reports whether r and o have identical width and height.
func (r ROI) SameGeometry(o ROI) bool {
	return r.Width == o.Width && r.Height == o.Height
}

// CheckBuffers validates a pair of buffers against their regions for a
// stage that does not change geometry.
func CheckBuffers(in, out []float32, roiIn, roiOut ROI) error {
	if !roiIn.SameGeometry(roiOut) {
		return fmt.Errorf("%w: in %dx%d, out %dx%d",
			ErrGeometryMismatch, roiIn.Width, roiIn.Height, roiOut.Width, roiOut.Height)
	}
	if roiIn.Width < 0 || roiIn.Height < 0 {
		return fmt.Errorf("invalid region size %dx%d", roiIn.Width, roiIn.Height)
	}
	need := roiIn.Samples()
	if len(in) < need {
		return fmt.Errorf("%w: input has %d samples, need %d", ErrBufferSize, len(in), need)
	}
	if len(out) < need {
		return fmt.Errorf("%w: output has %d samples, need %d", ErrBufferSize, len(out), need)
	}
	return nil
}

// Tile is a region of RGBA float samples.
type Tile struct {
	ROI ROI       `json:"roi"`
	Pix []float32 `json:"pixels"`
}

// New allocates a zeroed tile for roi.
func New(roi ROI) *Tile {
	return &Tile{ROI: roi, Pix: make([]float32, roi.Samples())}
}

// FromPixels wraps an existing RGBA buffer as a width x height tile at the
// origin. The buffer is not copied.
func FromPixels(width, height int, pix []float32) (*Tile, error) {
	roi := ROI{Width: width, Height: height, Scale: 1}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid tile size %dx%d", width, height)
	}
	if len(pix) != roi.Samples() {
		return nil, fmt.Errorf("%w: got %d samples, want %d for %dx%d",
			ErrBufferSize, len(pix), roi.Samples(), width, height)
	}
	return &Tile{ROI: roi, Pix: pix}, nil
}

// Offset returns the index of the first sample of pixel (x, y), with
// coordinates relative to the tile.
func (t *Tile) Offset(x, y int) int {
	return (y*t.ROI.Width + x) * Channels
}

// At returns the RGBA samples of pixel (x, y).
func (t *Tile) At(x, y int) [Channels]float32 {
	var px [Channels]float32
	copy(px[:], t.Pix[t.Offset(x, y):])
	return px
}

// Set stores the RGBA samples of pixel (x, y).
func (t *Tile) Set(x, y int, px [Channels]float32) {
	copy(t.Pix[t.Offset(x, y):], px[:])
}

// Fill sets every pixel to px.
func (t *Tile) Fill(px [Channels]float32) {
	for i := 0; i+Channels <= len(t.Pix); i += Channels {
		copy(t.Pix[i:i+Channels], px[:])
	}
}

// Clone returns a deep copy of t.
func (t *Tile) Clone() *Tile {
	pix := make([]float32, len(t.Pix))
	copy(pix, t.Pix)
	return &Tile{ROI: t.ROI, Pix: pix}
}
