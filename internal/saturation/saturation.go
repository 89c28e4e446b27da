// Package saturation implements the per-pixel linear saturation transform.
//
// Each pixel's RGB channels are pulled towards (factor < 1) or pushed away
// from (factor > 1) a luma estimate of the same pixel:
//
//	out_c = luma + factor * (in_c - luma)
//
// Alpha is copied through. Nothing is clamped: the pipeline works in
// unbounded linear RGB, and NaN or Inf inputs come out as NaN or Inf.
package saturation

import (
	"fmt"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/linear-saturation-mcp/internal/colorspace"
	"github.com/ironsheep/linear-saturation-mcp/internal/params"
	"github.com/ironsheep/linear-saturation-mcp/internal/tile"
)

// Process transforms the RGBA buffer in into out for the region roiIn.
// roiOut must have the same geometry. d is read once up front and never
// modified. profile is only consulted by the luminance Y estimator and may
// be nil otherwise.
//
// On error nothing has been written to out.
func Process(d *params.Params, profile *colorspace.Profile, in, out []float32, roiIn, roiOut tile.ROI) error {
	if err := tile.CheckBuffers(in, out, roiIn, roiOut); err != nil {
		return err
	}
	estimate, err := d.LumaMethod.Estimator(profile)
	if err != nil {
		return fmt.Errorf("linear saturation: %w", err)
	}
	factor := d.SaturationFactor
	width := roiIn.Width

	parallel.Line(roiIn.Height, func(start, end int) {
		for k := start * width * tile.Channels; k < end*width*tile.Channels; k += tile.Channels {
			px := in[k : k+tile.Channels : k+tile.Channels]
			o := out[k : k+tile.Channels : k+tile.Channels]

			l := estimate(px[0], px[1], px[2])
			o[0] = l + factor*(px[0]-l)
			o[1] = l + factor*(px[1]-l)
			o[2] = l + factor*(px[2]-l)
			o[3] = px[3]
		}
	})
	return nil
}

// ProcessTile runs Process on in and returns a new tile with the same
// region.
func ProcessTile(d *params.Params, profile *colorspace.Profile, in *tile.Tile) (*tile.Tile, error) {
	out := tile.New(in.ROI)
	if err := Process(d, profile, in.Pix, out.Pix, in.ROI, out.ROI); err != nil {
		return nil, err
	}
	return out, nil
}
