// Package tile holds the pixel buffers exchanged between the host pipeline
// and the saturation stage.
//
// A Tile is a row-major block of RGBA float32 samples, four floats per
// pixel, described by a region of interest (ROI). Samples are linear and
// unbounded: values below 0 or above 1 are legal and are never clamped
// inside the pipeline.
//
// # Region of Interest
//
// An ROI places a tile inside the full image:
//   - X, Y: offset of the tile's top-left pixel in scaled image coordinates
//   - Width, Height: tile size in pixels
//   - Scale: ratio between the tile and the full-resolution image
//
// Stages that do not change geometry require the input and output ROI to
// have the same width and height.
//
// # Host Helpers
//
// FromImage, ToImage and EncodePNG convert between 8-bit sRGB images and
// linear tiles. They exist for the host side (the MCP server and tests);
// the processing core only ever sees tiles. ImageCache keeps decoded
// source images keyed by path so repeated requests skip disk reads.
package tile
