package cmd

import (
	"encoding/json"
	"fmt"

	mcpschema "github.com/viant/mcp-protocol/schema"
)

// ToolCmd prints metadata & input schema for a single tool.
type ToolCmd struct {
	Name string `short:"n" long:"name" description:"tool name (svc_name-method, svc/name.method or svc/name/method)" positional-arg-name:"name" required:"yes"`
	JSON bool   `long:"json" description:"print result as JSON"`
}

type toolDetail struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description,omitempty"`
	InputSchema mcpschema.ToolInputSchema `json:"inputSchema"`
}

func (c *ToolCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	entry, err := svc.LookupTool(c.Name)
	if err != nil {
		return err
	}
	description, inputSchema, _ := svc.ToolMetadata(entry.Metadata.Name)
	found := &toolDetail{Name: entry.Metadata.Name, Description: description, InputSchema: inputSchema}

	if c.JSON {
		data, _ := json.MarshalIndent(found, "", "  ")
		fmt.Fprintln(stdout, string(data))
		return nil
	}
	fmt.Fprintf(stdout, "Name : %s\n", found.Name)
	fmt.Fprintf(stdout, "Desc : %s\n", found.Description)
	js, _ := json.MarshalIndent(found.InputSchema, "", "  ")
	fmt.Fprintf(stdout, "InputSchema:\n%s\n", string(js))
	return nil
}
