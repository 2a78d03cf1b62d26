// Package server exposes the wallpaper theme engine as an MCP (Model Context
// Protocol) server.
//
// # Protocol
//
// The server speaks JSON-RPC 2.0 over stdio:
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
//   - image_load: Load a wallpaper and report its metadata
//   - image_evict: Drop a wallpaper from the image cache
//   - theme_calculate: Derive primary, secondary and text colors from a wallpaper
//   - theme_derive: Derive secondary and text colors from a given primary color
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the server. When a
// wallpaper file is replaced on disk, clients call image_evict before the
// next theme_calculate.
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
//	srv := server.New(server.WithDefaultCentrality(theme.Median))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
