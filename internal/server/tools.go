package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the wallpaper image file",
}

var centralityProperty = map[string]interface{}{
	"type":        "string",
	"enum":        []string{"average", "median", "prevalent"},
	"description": "Statistic used for the primary color. Defaults to the server's configured mode",
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load a wallpaper image and return its dimensions, format and the resolution the theme engine samples at.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "theme_calculate",
			Description: "Derive a desktop theme from a wallpaper: primary color, complementary secondary color, and active/normal text colors. Colors are returned as 6-digit lowercase hex, RGB and HSL, plus bg_normal/bg_focus/fg_focus/fg_normal assignments.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":       pathProperty,
					"centrality": centralityProperty,
					"max_edge": map[string]interface{}{
						"type":        "integer",
						"description": "Cap on the long edge of the working image in pixels. Default 1000",
						"default":     1000,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "theme_derive",
			Description: "Derive the secondary and text colors for a given primary color without reading an image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Primary color as 6 hex digits, with or without a leading '#'",
					},
				},
				"required": []string{"color"},
			},
		},
		{
			Name:        "image_evict",
			Description: "Drop a cached image so the next call re-reads it from disk. Use after the wallpaper file changes.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
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
