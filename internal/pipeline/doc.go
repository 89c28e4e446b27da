// Package pipeline binds the linear saturation stage to a host render
// pipeline.
//
// A Module is the host-facing object: it owns the current parameters and
// the mask registry shared by all of its pipeline instances. A Piece is one
// instance of the module inside a concrete render pass (preview or full
// resolution) and owns a private copy of the parameters, its working state.
//
// # Commit
//
// Module.Commit copies the current parameters into a piece by value, so
// later edits to the module cannot reach a tile already scheduled with the
// previous snapshot, and re-registers the module's single mask under a
// lock. Repeated commits never leave stale or duplicate mask entries.
//
// # Thread Safety
//
// Module and MaskRegistry are safe for concurrent use. Pieces may be
// processed in parallel with each other; Run does exactly that for a batch
// of render jobs.
package pipeline
