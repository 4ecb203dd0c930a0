package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/ironsheep/parallel-recolor/internal/bigmath"
	"github.com/ironsheep/parallel-recolor/internal/imaging"
	"github.com/ironsheep/parallel-recolor/internal/logging"
	"github.com/ironsheep/parallel-recolor/internal/powersum"
	"github.com/ironsheep/parallel-recolor/internal/recolor"
	"github.com/ironsheep/parallel-recolor/internal/taskrunner"
)

// DefaultWorkers is the strip count used when image_recolor omits workers.
const DefaultWorkers = 4

// Server handles MCP protocol communication
type Server struct {
	cache    *imaging.ImageCache
	runner   *taskrunner.Runner
	recolor  *recolor.Engine
	powersum *powersum.Engine
	logger   *zap.Logger

	policy      recolor.RemainderPolicy
	strategy    bigmath.Strategy
	workers     int
	jpegQuality int
	version     string

	in  io.Reader
	out io.Writer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. Logs never go to the protocol stream.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithRunner sets the task runner shared by both engines.
func WithRunner(r *taskrunner.Runner) Option {
	return func(s *Server) { s.runner = r }
}

// WithRemainderPolicy sets the default remainder policy for image_recolor.
func WithRemainderPolicy(p recolor.RemainderPolicy) Option {
	return func(s *Server) { s.policy = p }
}

// WithStrategy sets the default exponentiation strategy for power_sum.
func WithStrategy(st bigmath.Strategy) Option {
	return func(s *Server) { s.strategy = st }
}

// WithDefaultWorkers sets the worker count used when a call omits it.
func WithDefaultWorkers(n int) Option {
	return func(s *Server) { s.workers = n }
}

// WithJPEGQuality sets the quality used when image_recolor writes a JPEG.
func WithJPEGQuality(q int) Option {
	return func(s *Server) { s.jpegQuality = q }
}

// WithVersion sets the version reported during initialize.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithIO replaces stdin and stdout as the protocol stream.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(s *Server) {
		s.in = in
		s.out = out
	}
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// MCPNotification represents an outgoing notification (no ID)
type MCPNotification struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// New creates a new MCP server instance
func New(opts ...Option) *Server {
	s := &Server{
		cache:       imaging.NewImageCache(),
		policy:      recolor.RemainderToLast,
		strategy:    bigmath.Squaring,
		workers:     DefaultWorkers,
		jpegQuality: imaging.DefaultJPEGQuality,
		version:     "dev",
		in:          os.Stdin,
		out:         os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNop(s.logger)
	if s.runner == nil {
		s.runner = taskrunner.New(taskrunner.WithLogger(s.logger))
	}
	s.recolor = s.recolorEngine(s.policy)
	s.powersum = s.powerSumEngine(s.strategy)
	return s
}

func (s *Server) recolorEngine(p recolor.RemainderPolicy) *recolor.Engine {
	return recolor.NewEngine(
		recolor.WithRunner(s.runner),
		recolor.WithRemainderPolicy(p),
		recolor.WithLogger(s.logger),
	)
}

func (s *Server) powerSumEngine(st bigmath.Strategy) *powersum.Engine {
	return powersum.New(
		powersum.WithRunner(s.runner),
		powersum.WithStrategy(st),
		powersum.WithLogger(s.logger),
	)
}

// Run starts the MCP server, reading requests line by line until the input
// stream ends.
func (s *Server) Run() error {
	scanner := bufio.NewScanner(s.in)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(s.out)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn("failed to parse request", zap.Error(err))
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.logger.Error("failed to encode response", zap.Any("id", req.ID), zap.Error(err))
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	s.logger.Debug("request", zap.String("method", req.Method), zap.Any("id", req.ID))

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "parallel-recolor",
				"version": s.version,
			},
		},
	}
}
