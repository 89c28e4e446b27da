// Package server implements an MCP (Model Context Protocol) host for the
// linear saturation stage.
//
// The server plays the role of the render pipeline around the module: it
// owns one pipeline.Module with a preview and a full-resolution piece,
// commits parameters into them, and feeds them tiles. It is the only place
// in this repository that touches files or the network of a client.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Module description:
//   - saturation_methods: Parameters, luma methods, profiles, schema version
//   - saturation_masks: Raster masks currently published by the module
//
// Processing:
//   - saturation_estimate_luma: Luma of one RGB triple
//   - saturation_process_tile: Run the kernel on an inline RGBA float tile
//   - saturation_apply_image: Render an image file on both pieces at once
//
// Persistence:
//   - saturation_migrate_params: Upgrade a stored parameter blob
//
// # Parameters
//
// Processing tools accept optional saturation_factor, luma_method and
// profile arguments. Omitted values keep the module's current parameters;
// given values are validated and become current before the commit, so a
// rejected request never changes module state.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New(server.WithProfile(colorspace.LinearRec2020))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
