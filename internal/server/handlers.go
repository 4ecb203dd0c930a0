package server

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/ironsheep/parallel-recolor/internal/bigmath"
	"github.com/ironsheep/parallel-recolor/internal/imaging"
	"github.com/ironsheep/parallel-recolor/internal/recolor"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "power_sum").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the named tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Info("tool failed", zap.String("tool", params.Name), zap.Error(err))
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Parallel Operations
	case "image_recolor":
		return s.handleImageRecolor(args)
	case "power_sum":
		return s.handlePowerSum(args)

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

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	grid, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(grid, a.X, a.Y)
}

// === Parallel Operation Handlers ===

type imageRecolorArgs struct {
	Path            string `json:"path"`
	OutputPath      string `json:"output_path"`
	Workers         int    `json:"workers"`
	RemainderPolicy string `json:"remainder_policy"`
	IncludeImage    bool   `json:"include_image"`
}

// RecolorResult is the image_recolor tool result. ElapsedMS covers the
// recolor run only, not loading or saving.
type RecolorResult struct {
	Report     *recolor.Report       `json:"report"`
	OutputPath string                `json:"output_path,omitempty"`
	ElapsedMS  int64                 `json:"elapsed_ms"`
	Image      *imaging.EncodedImage `json:"image,omitempty"`
}

func (s *Server) handleImageRecolor(args json.RawMessage) (interface{}, error) {
	var a imageRecolorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Workers == 0 {
		a.Workers = s.workers
	}

	engine := s.recolor
	if a.RemainderPolicy != "" {
		policy, err := recolor.ParseRemainderPolicy(a.RemainderPolicy)
		if err != nil {
			return nil, err
		}
		engine = s.recolorEngine(policy)
	}

	src, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	dst, report, err := engine.Recolor(src, a.Workers)
	if err != nil {
		return nil, err
	}

	result := &RecolorResult{Report: report, ElapsedMS: report.Elapsed.Milliseconds()}
	if a.OutputPath != "" {
		if err := imaging.Save(dst, a.OutputPath, s.jpegQuality); err != nil {
			return nil, err
		}
		result.OutputPath = a.OutputPath
	}

	if a.OutputPath == "" || a.IncludeImage {
		encoded, err := imaging.EncodePNGBase64(dst)
		if err != nil {
			return nil, err
		}
		result.Image = encoded
	}
	return result, nil
}

type powerSumArgs struct {
	Base1    string `json:"base1"`
	Power1   string `json:"power1"`
	Base2    string `json:"base2"`
	Power2   string `json:"power2"`
	Strategy string `json:"strategy"`
}

// PowerSumResult is the power_sum tool result. Values are base-10 strings
// so that no JSON client truncates them.
type PowerSumResult struct {
	Result   string `json:"result"`
	Digits   int    `json:"digits"`
	Strategy string `json:"strategy"`
}

func (s *Server) handlePowerSum(args json.RawMessage) (interface{}, error) {
	var a powerSumArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	engine := s.powersum
	if a.Strategy != "" {
		st, err := bigmath.ParseStrategy(a.Strategy)
		if err != nil {
			return nil, err
		}
		engine = s.powerSumEngine(st)
	}

	base1, err := bigmath.Parse("base1", a.Base1)
	if err != nil {
		return nil, err
	}
	power1, err := bigmath.Parse("power1", a.Power1)
	if err != nil {
		return nil, err
	}
	base2, err := bigmath.Parse("base2", a.Base2)
	if err != nil {
		return nil, err
	}
	power2, err := bigmath.Parse("power2", a.Power2)
	if err != nil {
		return nil, err
	}

	sum, err := engine.Compute(base1, power1, base2, power2)
	if err != nil {
		return nil, err
	}

	text := sum.String()
	digits := len(text)
	if sum.Sign() < 0 {
		digits--
	}
	return &PowerSumResult{
		Result:   text,
		Digits:   digits,
		Strategy: engine.Strategy().String(),
	}, nil
}
