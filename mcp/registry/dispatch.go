package registry

// Strategy tells how named arguments reach a handler.
type Strategy string

const (
	// StrategyPositional maps arguments by declared parameter names.
	StrategyPositional Strategy = "positional"
	// StrategyBag passes the whole argument bag as a single value.
	StrategyBag Strategy = "bag"
)

type dispatcher interface {
	strategy() Strategy
	arguments(args map[string]interface{}) []interface{}
}

type positional struct {
	names []string
}

func (p positional) strategy() Strategy { return StrategyPositional }

func (p positional) arguments(args map[string]interface{}) []interface{} {
	ret := make([]interface{}, len(p.names))
	for i, name := range p.names {
		ret[i] = args[name]
	}
	return ret
}

type bag struct{}

func (bag) strategy() Strategy { return StrategyBag }

func (bag) arguments(args map[string]interface{}) []interface{} {
	return []interface{}{args}
}

func newDispatcher(names []string) dispatcher {
	if len(names) == 0 {
		return bag{}
	}
	return positional{names: append([]string(nil), names...)}
}
