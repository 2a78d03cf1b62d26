package server

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/ironsheep/wallpaper-theme/internal/imaging"
	"github.com/ironsheep/wallpaper-theme/internal/theme"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "theme_calculate").
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
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.debug {
			log.Printf("tool %s failed: %v", params.Name, err)
		}
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
	case "image_load":
		return s.handleImageLoad(args)
	case "image_evict":
		return s.handleImageEvict(args)
	case "theme_calculate":
		return s.handleThemeCalculate(args)
	case "theme_derive":
		return s.handleThemeDerive(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response. data is omitted when empty.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	mcpErr := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		mcpErr.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   mcpErr,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type imagePathArgs struct {
	Path string `json:"path"`
}

func (a imagePathArgs) validate() error {
	if a.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageEvict(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	s.cache.Evict(a.Path)
	return map[string]interface{}{"evicted": a.Path, "cached_images": s.cache.Len()}, nil
}

type themeCalculateArgs struct {
	Path       string `json:"path"`
	Centrality string `json:"centrality"`
	MaxEdge    int    `json:"max_edge"`
}

// ThemeResult is the payload returned by theme_calculate.
type ThemeResult struct {
	Path string `json:"path"`
	*theme.Report
}

func (s *Server) handleThemeCalculate(args json.RawMessage) (interface{}, error) {
	var a themeCalculateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	mode := s.defaultMode
	if a.Centrality != "" {
		m, err := theme.ParseCentrality(a.Centrality)
		if err != nil {
			return nil, err
		}
		mode = m
	}
	if a.MaxEdge == 0 {
		a.MaxEdge = s.maxEdge
	}

	th, err := theme.CalculateFile(s.cache, a.Path, mode, theme.Options{MaxEdge: a.MaxEdge})
	if err != nil {
		return nil, err
	}
	if s.debug {
		log.Printf("theme %s (%s): primary=%s secondary=%s", a.Path, mode, th.Primary, th.Secondary)
	}
	return &ThemeResult{Path: a.Path, Report: th.Report(mode.String())}, nil
}

type themeDeriveArgs struct {
	Color string `json:"color"`
}

func (s *Server) handleThemeDerive(args json.RawMessage) (interface{}, error) {
	var a themeDeriveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	primary, err := theme.ParseRGB(a.Color)
	if err != nil {
		return nil, err
	}
	return theme.Derive(primary).Report(""), nil
}
