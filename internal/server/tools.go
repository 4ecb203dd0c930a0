package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and size on disk. The decoded image is cached for later calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the color of the pixel at (x, y) as hex, RGB, HSL and the packed 0xAARRGGBB sample.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Parallel Operations
		{
			Name:        "image_recolor",
			Description: "Tint every near-grey pixel of an image by splitting it into horizontal strips processed concurrently. Writes the result to output_path, or returns it as base64 PNG when no output path is given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the source image",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Where to write the recolored image; the extension selects the format",
					},
					"workers": map[string]interface{}{
						"type":        "integer",
						"description": "Number of strips processed concurrently (default 4)",
						"default":     DefaultWorkers,
					},
					"remainder_policy": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"last", "drop"},
						"description": "What happens to rows left over when height is not divisible by workers (default last)",
						"default":     "last",
					},
					"include_image": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return the result as base64 PNG when output_path is set",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "power_sum",
			Description: "Compute base1^power1 + base2^power2 over arbitrary-precision integers, evaluating both powers concurrently.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"base1": map[string]interface{}{
						"type":        "string",
						"description": "First base, base-10 integer",
					},
					"power1": map[string]interface{}{
						"type":        "string",
						"description": "First exponent, non-negative base-10 integer",
					},
					"base2": map[string]interface{}{
						"type":        "string",
						"description": "Second base, base-10 integer",
					},
					"power2": map[string]interface{}{
						"type":        "string",
						"description": "Second exponent, non-negative base-10 integer",
					},
					"strategy": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"squaring", "unary"},
						"description": "Exponentiation strategy (default squaring)",
						"default":     "squaring",
					},
				},
				"required": []string{"base1", "power1", "base2", "power2"},
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
