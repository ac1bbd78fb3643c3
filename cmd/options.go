package cmd

// Options is the root for the CLI. Struct tags are interpreted by
// github.com/jessevdk/go-flags.
type Options struct {
	Config string `short:"f" long:"config" description:"service configuration YAML/JSON URL"`

	ListTools *ListToolsCmd `command:"list-tools" description:"List registered tools"`
	Tool      *ToolCmd      `command:"tool"       description:"Show detailed info about one tool"`
	Exec      *ExecCmd      `command:"exec"       description:"Execute a tool as the local identity"`
	Token     *TokenCmd     `command:"token"      description:"Issue a bearer token signed with the configured secret"`
	Serve     *ServeCmd     `command:"serve"      description:"Start MCP server exposing the registered tools"`
}

// Init instantiates the sub-command referenced by the first positional argument
// so that go-flags can populate its fields.
func (o *Options) Init(firstArg string) {
	switch firstArg {
	case "list-tools":
		o.ListTools = &ListToolsCmd{}
	case "tool":
		o.Tool = &ToolCmd{}
	case "exec":
		o.Exec = &ExecCmd{}
	case "token":
		o.Token = &TokenCmd{}
	case "serve":
		o.Serve = &ServeCmd{}
	}
}
