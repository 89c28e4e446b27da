package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// paramProperties are the optional parameter overrides shared by the
// processing tools. Omitted fields keep the module's current value.
func paramProperties() map[string]interface{} {
	return map[string]interface{}{
		"saturation_factor": map[string]interface{}{
			"type":        "number",
			"description": "0 = grayscale, 1 = unchanged, up to 2 = oversaturated",
			"minimum":     0.0,
			"maximum":     2.0,
		},
		"luma_method": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"luminance", "average", "norm", "power", "aces"},
			"description": "Luminance estimate the chroma is scaled around",
		},
		"profile": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"linear-rec709", "linear-rec2020", "linear-prophoto"},
			"description": "Working RGB profile. Defaults to the server's configured profile",
		},
	}
}

// sampleSchema accepts a number or one of the non-finite spellings.
func sampleSchema(description string) map[string]interface{} {
	s := map[string]interface{}{
		"oneOf": []interface{}{
			map[string]interface{}{"type": "number"},
			map[string]interface{}{"type": "string", "enum": []string{"NaN", "+Inf", "-Inf"}},
		},
	}
	if description != "" {
		s["description"] = description
	}
	return s
}

func withProperties(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "saturation_methods",
			Description: "Describe the linear saturation module: parameters with ranges and defaults, luma methods, working profiles and schema version.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "saturation_estimate_luma",
			Description: "Compute the luma of one linear RGB triple with the selected estimator.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"r": sampleSchema("Linear red"),
					"g": sampleSchema("Linear green"),
					"b": sampleSchema("Linear blue"),
					"luma_method": map[string]interface{}{
						"type":        "string",
						"description": "Estimator name or label, defaults to luminance",
					},
					"profile": map[string]interface{}{
						"type":        "string",
						"description": "Working RGB profile (needed by luminance)",
					},
				},
				"required": []string{"r", "g", "b"},
			},
		},
		{
			Name:        "saturation_process_tile",
			Description: "Commit parameters to one pipeline piece and run the linear saturation kernel over an inline RGBA float tile. Overrides apply to that piece only, not to the module. Output values are not clamped; NaN and infinities are returned as the strings \"NaN\", \"+Inf\" and \"-Inf\".",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(map[string]interface{}{
					"pipe": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"full", "preview"},
						"description": "Pipeline piece to render with. Default full",
						"default":     "full",
					},
					"width":  map[string]interface{}{"type": "integer", "description": "Tile width in pixels"},
					"height": map[string]interface{}{"type": "integer", "description": "Tile height in pixels"},
					"pixels": map[string]interface{}{
						"type":        "array",
						"items":       sampleSchema(""),
						"description": "Row-major RGBA samples, 4 per pixel",
					},
				}, paramProperties()),
				"required": []string{"width", "height", "pixels"},
			},
		},
		{
			Name:        "saturation_migrate_params",
			Description: "Upgrade a stored parameter blob to a newer schema version, one version at a time.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"blob_base64": map[string]interface{}{
						"type":        "string",
						"description": "Stored parameter blob, base64 encoded",
					},
					"version": map[string]interface{}{
						"type":        "integer",
						"description": "Schema version the blob was written with",
					},
					"target_version": map[string]interface{}{
						"type":        "integer",
						"description": "Version to upgrade to. Defaults to the current version",
					},
					"apply": map[string]interface{}{
						"type":        "boolean",
						"description": "Also load the blob into the module at the current version. Requires target_version to be omitted or current. Default false",
					},
				},
				"required": []string{"blob_base64", "version"},
			},
		},
		{
			Name:        "saturation_masks",
			Description: "List the raster masks the module currently publishes.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "saturation_apply_image",
			Description: "Load an 8-bit image, apply linear saturation in the working space on the preview and full pieces concurrently, and return both renderings as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"preview_size": map[string]interface{}{
						"type":        "integer",
						"description": "Longest side of the preview rendering. Default 256",
						"default":     256,
					},
				}, paramProperties()),
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
