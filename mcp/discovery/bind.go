package discovery

import (
	"context"
	"fmt"

	"github.com/viant/mcp-registry/internal/conv"
)

func receiver[C any](instance interface{}) (C, error) {
	ret, ok := instance.(C)
	if !ok {
		var zero C
		return zero, fmt.Errorf("invalid handler instance: expected %T, but had %T", zero, instance)
	}
	return ret, nil
}

func arg[A any](args []interface{}, i int) (A, error) {
	var value interface{}
	if i < len(args) {
		value = args[i]
	}
	ret, err := conv.As[A](value)
	if err != nil {
		return ret, fmt.Errorf("argument %d: %w", i, err)
	}
	return ret, nil
}

// Bind0 adapts a method taking no argument.
func Bind0[C any, R any](fn func(C, context.Context) (R, error)) Invoker {
	return func(ctx context.Context, instance interface{}, _ []interface{}) (interface{}, error) {
		c, err := receiver[C](instance)
		if err != nil {
			return nil, err
		}
		return fn(c, ctx)
	}
}

// Bind1 adapts a method taking one argument. It also serves methods that
// take the whole argument bag as a single value.
func Bind1[C any, A any, R any](fn func(C, context.Context, A) (R, error)) Invoker {
	return func(ctx context.Context, instance interface{}, args []interface{}) (interface{}, error) {
		c, err := receiver[C](instance)
		if err != nil {
			return nil, err
		}
		a, err := arg[A](args, 0)
		if err != nil {
			return nil, err
		}
		return fn(c, ctx, a)
	}
}

// Bind2 adapts a method taking two arguments.
func Bind2[C any, A any, B any, R any](fn func(C, context.Context, A, B) (R, error)) Invoker {
	return func(ctx context.Context, instance interface{}, args []interface{}) (interface{}, error) {
		c, err := receiver[C](instance)
		if err != nil {
			return nil, err
		}
		a, err := arg[A](args, 0)
		if err != nil {
			return nil, err
		}
		b, err := arg[B](args, 1)
		if err != nil {
			return nil, err
		}
		return fn(c, ctx, a, b)
	}
}

// Bind3 adapts a method taking three arguments.
func Bind3[C any, A any, B any, D any, R any](fn func(C, context.Context, A, B, D) (R, error)) Invoker {
	return func(ctx context.Context, instance interface{}, args []interface{}) (interface{}, error) {
		c, err := receiver[C](instance)
		if err != nil {
			return nil, err
		}
		a, err := arg[A](args, 0)
		if err != nil {
			return nil, err
		}
		b, err := arg[B](args, 1)
		if err != nil {
			return nil, err
		}
		d, err := arg[D](args, 2)
		if err != nil {
			return nil, err
		}
		return fn(c, ctx, a, b, d)
	}
}
