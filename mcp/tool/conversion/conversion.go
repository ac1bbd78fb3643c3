package conversion

import (
	"github.com/viant/mcp-registry/internal/conv"
	"github.com/viant/mcp-registry/mcp/registry"
	"github.com/viant/mcp-registry/mcp/schema"

	mcpschema "github.com/viant/mcp-protocol/schema"
)

// InputSchema renders s as an MCP tool input schema. An empty schema still
// advertises an object with no properties.
func InputSchema(s schema.Schema) mcpschema.ToolInputSchema {
	ret := mcpschema.ToolInputSchema{
		Type:       "object",
		Properties: s.PropertyDocuments(),
	}
	if required := s.Required(); len(required) > 0 {
		ret.Required = required
	}
	return ret
}

// Tool returns the MCP metadata of aTool.
func Tool(aTool *registry.Tool) mcpschema.Tool {
	ret := mcpschema.Tool{
		Name:        aTool.Name(),
		InputSchema: InputSchema(aTool.Schema()),
	}
	if description := aTool.Description(); description != "" {
		ret.Description = conv.Pointer(description)
	}
	return ret
}

// CallToolResult converts a shaped registry result block by block.
func CallToolResult(result *registry.Result) *mcpschema.CallToolResult {
	ret := &mcpschema.CallToolResult{Content: []mcpschema.CallToolResultContentElem{}}
	if result == nil {
		return ret
	}
	for _, content := range result.Content {
		ret.Content = append(ret.Content, mcpschema.CallToolResultContentElem{
			Type:     content.Type,
			Text:     content.Text,
			Data:     content.Data,
			MimeType: content.MimeType,
		})
	}
	if result.IsError {
		ret.IsError = conv.Pointer(true)
	}
	return ret
}

// ErrorResult reports err as a tool level failure.
func ErrorResult(err error) *mcpschema.CallToolResult {
	return &mcpschema.CallToolResult{
		IsError: conv.Pointer(true),
		Content: []mcpschema.CallToolResultContentElem{{Type: "text", Text: err.Error()}},
	}
}
