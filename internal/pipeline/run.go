package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/linear-saturation-mcp/internal/colorspace"
)

// Job is one tile to render through a piece.
type Job struct {
	Piece   *Piece
	Profile *colorspace.Profile
	In      []float32
	Out     []float32
	ROIIn   ROI
	ROIOut  ROI
}

// Run processes jobs concurrently, typically the preview and full pieces
// of one module. The first failure cancels ctx for the remaining jobs;
// jobs that have not started by then are skipped. A job that has started
// always runs to completion.
func Run(ctx context.Context, jobs ...Job) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := j.Piece.Process(j.Profile, j.In, j.Out, j.ROIIn, j.ROIOut); err != nil {
				return fmt.Errorf("%s pipe: %w", j.Piece.Pipe(), err)
			}
			return nil
		})
	}

	return g.Wait()
}
