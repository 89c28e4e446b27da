package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ironsheep/linear-saturation-mcp/internal/colorspace"
	"github.com/ironsheep/linear-saturation-mcp/internal/luma"
	"github.com/ironsheep/linear-saturation-mcp/internal/params"
	"github.com/ironsheep/linear-saturation-mcp/internal/pipeline"
	"github.com/ironsheep/linear-saturation-mcp/internal/tile"
)

// defaultPreviewSize is the longest side of the preview rendering.
const defaultPreviewSize = 256

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "saturation_process_tile").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var call ToolCallParams
	if err := json.Unmarshal(req.Params, &call); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(call.Name, call.Arguments)
	if err != nil {
		if s.debug {
			log.Printf("tool %s failed: %v", call.Name, err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	text, err := marshalResult(result)
	if err != nil {
		log.Printf("tool %s: encode result: %v", call.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": text,
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "saturation_methods":
		return s.handleMethods(args)
	case "saturation_estimate_luma":
		return s.handleEstimateLuma(args)
	case "saturation_process_tile":
		return s.handleProcessTile(args)
	case "saturation_migrate_params":
		return s.handleMigrateParams(args)
	case "saturation_masks":
		return s.handleMasks(args)
	case "saturation_apply_image":
		return s.handleApplyImage(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// marshalResult converts a tool result to a pretty-printed JSON string.
func marshalResult(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(b), nil
}

// unmarshalArgs tolerates tools called without an arguments object.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	return json.Unmarshal(args, v)
}

// === Shared parameter handling ===

// paramArgs are the optional overrides accepted by processing tools.
type paramArgs struct {
	SaturationFactor *float32 `json:"saturation_factor"`
	LumaMethod       string   `json:"luma_method"`
	Profile          string   `json:"profile"`
}

// overrideParams applies overrides on top of the module's current
// parameters without touching the module.
func (s *Server) overrideParams(a paramArgs) (params.Params, error) {
	p := s.module.Params()
	if a.SaturationFactor != nil {
		p.SaturationFactor = *a.SaturationFactor
	}
	if a.LumaMethod != "" {
		m, err := luma.ParseMethod(a.LumaMethod)
		if err != nil {
			return p, err
		}
		p.LumaMethod = m
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// resolveParams applies overrides and makes the result current. Invalid
// overrides leave the module untouched.
func (s *Server) resolveParams(a paramArgs) (params.Params, error) {
	p, err := s.overrideParams(a)
	if err != nil {
		return p, err
	}
	if err := s.module.SetParams(p); err != nil {
		return p, err
	}
	return p, nil
}

func (s *Server) resolveProfile(name string) (*colorspace.Profile, error) {
	if name == "" {
		return s.profile, nil
	}
	return colorspace.ByName(name)
}

// commit pushes the module's parameters into every piece.
func (s *Server) commit() error {
	for _, pt := range []pipeline.PipeType{pipeline.PipeFull, pipeline.PipePreview} {
		piece := s.pieces[pt]
		if err := s.module.Commit(piece); err != nil {
			return err
		}
		if s.debug {
			d, _ := piece.WorkingState()
			log.Printf("committed %s piece %s: factor=%g method=%s", pt, piece.ID(), d.SaturationFactor, d.LumaMethod)
		}
	}
	return nil
}

// === Module description ===

type methodInfo struct {
	Value int32  `json:"value"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

type methodsResult struct {
	Module         pipeline.Info  `json:"module"`
	Fields         []params.Field `json:"fields"`
	Methods        []methodInfo   `json:"methods"`
	Profiles       []string       `json:"profiles"`
	DefaultProfile string         `json:"default_profile"`
	Current        params.Params  `json:"current"`
}

func (s *Server) handleMethods(args json.RawMessage) (interface{}, error) {
	methods := make([]methodInfo, 0, len(luma.Methods()))
	for _, m := range luma.Methods() {
		methods = append(methods, methodInfo{Value: int32(m), Name: m.String(), Label: m.Description()})
	}
	return &methodsResult{
		Module:         s.module.Info(),
		Fields:         params.Fields(),
		Methods:        methods,
		Profiles:       colorspace.Names(),
		DefaultProfile: s.profile.Name,
		Current:        s.module.Params(),
	}, nil
}

// === Luma estimation ===

type estimateLumaArgs struct {
	R          sample `json:"r"`
	G          sample `json:"g"`
	B          sample `json:"b"`
	LumaMethod string  `json:"luma_method"`
	Profile    string  `json:"profile"`
}

type estimateLumaResult struct {
	Luma    sample  `json:"luma"`
	Method  string  `json:"method"`
	Profile string  `json:"profile,omitempty"`
}

func (s *Server) handleEstimateLuma(args json.RawMessage) (interface{}, error) {
	var a estimateLumaArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	m := params.Defaults().LumaMethod
	if a.LumaMethod != "" {
		var err error
		if m, err = luma.ParseMethod(a.LumaMethod); err != nil {
			return nil, err
		}
	}
	profile, err := s.resolveProfile(a.Profile)
	if err != nil {
		return nil, err
	}
	l, err := luma.Estimate(m, float32(a.R), float32(a.G), float32(a.B), profile)
	if err != nil {
		return nil, err
	}
	res := &estimateLumaResult{Luma: sample(l), Method: m.String()}
	if m == luma.LuminanceY {
		res.Profile = profile.Name
	}
	return res, nil
}

// === Tile processing ===

type processTileArgs struct {
	paramArgs
	Pipe   string  `json:"pipe"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Pixels samples `json:"pixels"`
}

type processTileResult struct {
	Pipe    string        `json:"pipe"`
	PieceID string        `json:"piece_id"`
	Params  params.Params `json:"params"`
	Profile string        `json:"profile"`
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Pixels  samples       `json:"pixels"`
}

func (s *Server) handleProcessTile(args json.RawMessage) (interface{}, error) {
	var a processTileArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	pipe, err := pipeline.ParsePipe(a.Pipe)
	if err != nil {
		return nil, err
	}
	in, err := tile.FromPixels(a.Width, a.Height, a.Pixels)
	if err != nil {
		return nil, err
	}
	profile, err := s.resolveProfile(a.Profile)
	if err != nil {
		return nil, err
	}
	// Overrides are committed to the named piece only. The module and the
	// other piece keep their parameters.
	p, err := s.overrideParams(a.paramArgs)
	if err != nil {
		return nil, err
	}

	piece := s.pieces[pipe]
	if err := s.module.CommitParams(p, piece); err != nil {
		return nil, err
	}

	out := tile.New(in.ROI)
	if err := piece.Process(profile, in.Pix, out.Pix, in.ROI, out.ROI); err != nil {
		return nil, err
	}

	return &processTileResult{
		Pipe:    pipe.String(),
		PieceID: piece.ID(),
		Params:  p,
		Profile: profile.Name,
		Width:   out.ROI.Width,
		Height:  out.ROI.Height,
		Pixels:  out.Pix,
	}, nil
}

// === Parameter migration ===

type migrateParamsArgs struct {
	BlobBase64    string `json:"blob_base64"`
	Version       int    `json:"version"`
	TargetVersion int    `json:"target_version"`
	Apply         bool   `json:"apply"`
}

type migrateParamsResult struct {
	Version    int            `json:"version"`
	BlobBase64 string         `json:"blob_base64"`
	Params     *params.Params `json:"params,omitempty"`
	Applied    bool           `json:"applied"`
}

func (s *Server) handleMigrateParams(args json.RawMessage) (interface{}, error) {
	var a migrateParamsArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.TargetVersion == 0 {
		a.TargetVersion = params.Version
	}
	if a.Apply && a.TargetVersion != params.Version {
		return nil, fmt.Errorf("apply loads into version %d, got target_version %d", params.Version, a.TargetVersion)
	}
	blob, err := base64.StdEncoding.DecodeString(a.BlobBase64)
	if err != nil {
		return nil, fmt.Errorf("invalid blob_base64: %w", err)
	}

	out, err := params.Migrate(blob, a.Version, a.TargetVersion)
	if err != nil {
		return nil, err
	}
	res := &migrateParamsResult{
		Version:    a.TargetVersion,
		BlobBase64: base64.StdEncoding.EncodeToString(out),
	}
	if a.TargetVersion == params.Version {
		p, err := params.Decode(out)
		if err != nil {
			return nil, err
		}
		res.Params = &p
	}

	if a.Apply {
		if err := s.module.LoadLegacy(blob, a.Version); err != nil {
			return nil, err
		}
		if err := s.commit(); err != nil {
			return nil, err
		}
		res.Applied = true
	}
	return res, nil
}

// === Masks ===

type masksResult struct {
	Masks []pipeline.Mask `json:"masks"`
}

func (s *Server) handleMasks(args json.RawMessage) (interface{}, error) {
	return &masksResult{Masks: s.module.Masks().Snapshot()}, nil
}

// === Whole-image application ===

type applyImageArgs struct {
	paramArgs
	Path        string `json:"path"`
	PreviewSize int    `json:"preview_size"`
}

type applyImageResult struct {
	Params  params.Params      `json:"params"`
	Profile string             `json:"profile"`
	Full    *tile.EncodedImage `json:"full"`
	Preview *tile.EncodedImage `json:"preview"`
}

func (s *Server) handleApplyImage(args json.RawMessage) (interface{}, error) {
	var a applyImageArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.PreviewSize <= 0 {
		a.PreviewSize = defaultPreviewSize
	}
	profile, err := s.resolveProfile(a.Profile)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	p, err := s.resolveParams(a.paramArgs)
	if err != nil {
		return nil, err
	}
	if err := s.commit(); err != nil {
		return nil, err
	}

	full := tile.FromImage(img)
	preview := tile.Thumbnail(img, a.PreviewSize)
	fullOut := tile.New(full.ROI)
	previewOut := tile.New(preview.ROI)

	err = pipeline.Run(context.Background(),
		pipeline.Job{
			Piece: s.pieces[pipeline.PipeFull], Profile: profile,
			In: full.Pix, Out: fullOut.Pix, ROIIn: full.ROI, ROIOut: fullOut.ROI,
		},
		pipeline.Job{
			Piece: s.pieces[pipeline.PipePreview], Profile: profile,
			In: preview.Pix, Out: previewOut.Pix, ROIIn: preview.ROI, ROIOut: previewOut.ROI,
		},
	)
	if err != nil {
		return nil, err
	}

	fullPNG, err := tile.EncodePNG(fullOut)
	if err != nil {
		return nil, err
	}
	previewPNG, err := tile.EncodePNG(previewOut)
	if err != nil {
		return nil, err
	}

	return &applyImageResult{
		Params:  p,
		Profile: profile.Name,
		Full:    fullPNG,
		Preview: previewPNG,
	}, nil
}
