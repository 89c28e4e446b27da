// Package colorspace describes the working RGB spaces a render pipeline can
// hand to the saturation stage.
//
// A Profile is a read-only borrow: the host derives it once per pipeline
// and passes the same pointer into every tile it renders. Nothing in this
// package reads ICC data; profiles are plain RGB to XYZ matrices for linear
// (scene-referred) RGB.
//
// # Built-in Profiles
//
//   - linear-rec709: sRGB primaries, D65 white, no transfer curve
//   - linear-rec2020: ITU-R BT.2020 primaries, D65 white (default working space)
//   - linear-prophoto: ProPhoto (ROMM) primaries, D50 white
//
// # Thread Safety
//
// Profiles are immutable after construction and safe for concurrent use.
package colorspace
