package cmd

import (
	"fmt"
	"sort"

	"github.com/viant/mcp-registry/internal/conv"
)

// ListToolsCmd prints every registered tool, optionally filtered by pattern.
type ListToolsCmd struct {
	Pattern string `short:"p" long:"pattern" description:"name pattern: * for all, otherwise a prefix (slash notation allowed)" default:"*"`
}

func (c *ListToolsCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}

	tools := svc.MatchTools(c.Pattern)
	// Sorting for deterministic output (helpful for tests & scripting).
	sort.Slice(tools, func(i, j int) bool { return tools[i].Metadata.Name < tools[j].Metadata.Name })
	for _, t := range tools {
		fmt.Fprintf(stdout, "%s\t%s\n", t.Metadata.Name, conv.Dereference(t.Metadata.Description))
	}
	return nil
}
