// Package server exposes the recolor and power-sum engines as an MCP
// (Model Context Protocol) server.
//
// # Protocol
//
// The server speaks JSON-RPC 2.0, one message per line:
//   - Input: requests on stdin, or the reader given to WithIO
//   - Output: responses on stdout, or the writer given to WithIO
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image Information:
//   - image_load: Decode an image and report its metadata
//   - image_sample_color: Describe the color at one pixel
//
// Parallel Operations:
//   - image_recolor: Strip-parallel grey tint of a whole image
//   - power_sum: base1^power1 + base2^power2 with both powers computed concurrently
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the server, so a
// client can load, sample and recolor the same file without decoding it
// again. Recolor never modifies the cached source.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(server.WithLogger(logger))
//	if err := srv.Run(); err != nil {
//	    logger.Fatal("server stopped", zap.Error(err))
//	}
package server
