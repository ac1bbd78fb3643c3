package container

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type resource struct {
	closed int
}

func (r *resource) Close() error {
	r.closed++
	return nil
}

func TestScope_LookupChain(t *testing.T) {
	ctx := context.Background()
	root := New()
	root.Bind("config", "root")
	child := root.Child()
	child.Bind("local", 1)

	v, err := child.Get(ctx, "config")
	require.NoError(t, err)
	assert.Equal(t, "root", v)

	_, found, err := root.Lookup(ctx, "local")
	require.NoError(t, err)
	assert.False(t, found)

	_, err = child.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, child.IsBound("config"))
	assert.False(t, root.IsBound("local"))
}

func TestScope_ProviderCachedPerScope(t *testing.T) {
	ctx := context.Background()
	root := New()
	var created []*resource
	root.BindProvider("res", func(ctx context.Context, s *Scope) (interface{}, error) {
		r := &resource{}
		created = append(created, r)
		return r, nil
	})

	first := root.Child()
	a, err := As[*resource](ctx, first, "res")
	require.NoError(t, err)
	b, err := As[*resource](ctx, first, "res")
	require.NoError(t, err)
	assert.Same(t, a, b)

	second := root.Child()
	c, err := As[*resource](ctx, second, "res")
	require.NoError(t, err)
	assert.NotSame(t, a, c)

	require.NoError(t, first.Close())
	assert.Equal(t, 1, a.closed)
	assert.Equal(t, 0, c.closed)
	require.NoError(t, second.Close())
	assert.Equal(t, 1, c.closed)
	assert.Len(t, created, 2)
}

func TestScope_CloseOnce(t *testing.T) {
	s := New()
	var order []int
	s.OnClose(func() error { order = append(order, 1); return nil })
	s.OnClose(func() error { order = append(order, 2); return errors.New("release failed") })

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Close()
		}()
	}
	wg.Wait()

	assert.Equal(t, []int{2, 1}, order)
	assert.EqualError(t, s.Close(), "release failed")
	assert.True(t, s.Closed())

	_, err := s.Get(context.Background(), "any")
	assert.True(t, errors.Is(err, ErrClosed))

	late := false
	s.OnClose(func() error { late = true; return nil })
	assert.True(t, late)
}

func TestScope_ProviderError(t *testing.T) {
	s := New()
	s.BindProvider("broken", func(ctx context.Context, s *Scope) (interface{}, error) {
		return nil, errors.New("unavailable")
	})
	_, found, err := s.Lookup(context.Background(), "broken")
	assert.True(t, found)
	assert.EqualError(t, err, `failed to provide "broken": unavailable`)
}

func TestAs_TypeMismatch(t *testing.T) {
	s := New()
	s.Bind("n", 1)
	_, err := As[string](context.Background(), s, "n")
	assert.Error(t, err)
}
