package main

import (
	"os"

	"github.com/viant/mcp-registry/cmd"
)

func main() {
	cmd.Run(os.Args[1:])
}
