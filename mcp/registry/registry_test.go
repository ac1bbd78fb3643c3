package registry

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mcp-registry/mcp/discovery"
	"github.com/viant/mcp-registry/mcp/schema"
)

func TestRegistry_NotReady(t *testing.T) {
	f := newFixture()
	r := f.registry()

	assert.False(t, r.IsReady())
	assert.Equal(t, Uninitialized, r.State())
	_, err := r.Tools()
	assert.True(t, errors.Is(err, ErrNotReady))
	_, err = r.Lookup("echo")
	assert.True(t, errors.Is(err, ErrNotReady))
	_, err = r.Call(context.Background(), f.root, "echo", nil)
	assert.True(t, errors.Is(err, ErrNotReady))
	assert.Equal(t, 0, r.Count())
}

func TestRegistry_InitializeOnce(t *testing.T) {
	f := newFixture()
	r := f.registry()
	ctx := context.Background()

	require.NoError(t, r.Initialize(ctx))
	first, err := r.Tools()
	require.NoError(t, err)
	require.NoError(t, r.Initialize(ctx))
	second, err := r.Tools()
	require.NoError(t, err)

	assert.EqualValues(t, 1, f.source.calls)
	assert.True(t, r.IsReady())
	assert.Equal(t, Ready, r.State())
	assert.Equal(t, first, second)
	assert.Equal(t, 7, r.Count())

	var names []string
	for _, aTool := range first {
		names = append(names, aTool.Name())
	}
	assert.Equal(t, []string{"echo", "open", "fail", "panic", "shout", "search", "sum"}, names)

	first[0] = nil
	third, _ := r.Tools()
	assert.NotNil(t, third[0], "returned list is detached")
}

func TestRegistry_ConcurrentInitialize(t *testing.T) {
	f := newFixture()
	r := f.registry()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, r.Initialize(context.Background()))
		}()
		go func() {
			defer wg.Done()
			tools, err := r.Tools()
			if err != nil {
				assert.True(t, errors.Is(err, ErrNotReady))
				return
			}
			assert.Len(t, tools, 7)
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, f.source.calls)
}

func TestRegistry_SourceUnavailable(t *testing.T) {
	f := newFixture()
	f.catalog.Close()
	r := f.registry()

	err := r.Initialize(context.Background())
	assert.True(t, errors.Is(err, discovery.ErrSourceUnavailable))
	assert.Equal(t, Uninitialized, r.State())

	err = New(nil).Initialize(context.Background())
	assert.True(t, errors.Is(err, discovery.ErrSourceUnavailable))
}

func TestRegistry_Schemas(t *testing.T) {
	f := newFixture()
	r := f.registry()
	require.NoError(t, r.Initialize(context.Background()))
	tools, err := r.Tools()
	require.NoError(t, err)

	for _, aTool := range tools {
		if aTool.Name() == "search" {
			assert.Equal(t, f.explicit, aTool.Schema())
			continue
		}
		class, _ := f.catalog.Lookup(echoClass)
		for _, method := range class.Methods {
			if method.Name != aTool.Method() {
				continue
			}
			actual := aTool.Schema()
			assert.Len(t, actual.Properties, len(method.Params))
			for _, param := range method.Params {
				prop, ok := actual.Lookup(param.Name)
				require.True(t, ok, param.Name)
				assert.Equal(t, param.IsOptional(), prop.Optional, param.Name)
			}
		}
	}
	assert.EqualValues(t, 6, f.deriver.calls, "deriver runs for every tool without explicit schema")

	sum, err := r.Lookup("sum")
	require.NoError(t, err)
	assert.Equal(t, StrategyPositional, sum.Strategy())
	assert.Equal(t, []string{"a", "b"}, sum.ParameterNames())
	search, err := r.Lookup("search")
	require.NoError(t, err)
	assert.Equal(t, StrategyBag, search.Strategy())
	assert.Equal(t, "missing", search.PreHook())
}

func TestRegistry_ExplicitSchemaSkipsDeriver(t *testing.T) {
	catalog := discovery.NewCatalog()
	explicit := schema.New(schema.Property{Name: "q", Kind: schema.KindString})
	class := discovery.NewClass("c", nil)
	class.Method("M", discovery.Bind1((*echoController).Echo)).
		Tool(discovery.ToolSpec{Name: "m", Schema: explicit}).
		Params(discovery.Param("text", "string"))
	require.NoError(t, catalog.Register(class))
	deriver := &countingDeriver{}

	r := New(catalog, WithDeriver(deriver))
	require.NoError(t, r.Initialize(context.Background()))
	m, err := r.Lookup("m")
	require.NoError(t, err)
	assert.Equal(t, explicit, m.Schema())
	assert.EqualValues(t, 0, deriver.calls)
}

func TestRegistry_Collision(t *testing.T) {
	catalog := discovery.NewCatalog()
	first := discovery.NewClass("first", nil)
	first.Method("Echo", discovery.Bind1((*echoController).Echo)).
		Tool(discovery.ToolSpec{Name: "echo", Description: "first"}).Params(discovery.Param("text", "string"))
	second := discovery.NewClass("second", nil)
	second.Method("Echo", discovery.Bind1((*echoController).Echo)).
		Tool(discovery.ToolSpec{Name: "echo", Description: "second"}).Params(discovery.Param("text", "string"))
	require.NoError(t, catalog.Register(first, second))

	buf := &bytes.Buffer{}
	r := New(catalog, WithLogger(zerolog.New(buf)))
	require.NoError(t, r.Initialize(context.Background()))

	assert.Equal(t, 1, r.Count())
	echo, err := r.Lookup("echo")
	require.NoError(t, err)
	assert.Equal(t, "first", echo.Description())
	assert.Contains(t, buf.String(), "duplicate tool name")
}

func TestRegistry_DegradedSchema(t *testing.T) {
	catalog := discovery.NewCatalog()
	class := discovery.NewClass("c", nil)
	class.Method("Dup", discovery.Bind2((*echoController).Sum)).
		Tool(discovery.ToolSpec{Name: "dup"}).
		Params(discovery.Param("a", "number"), discovery.Param("a", "number"))
	require.NoError(t, catalog.Register(class))

	buf := &bytes.Buffer{}
	r := New(catalog, WithLogger(zerolog.New(buf)))
	require.NoError(t, r.Initialize(context.Background()))
	dup, err := r.Lookup("dup")
	require.NoError(t, err)
	assert.True(t, dup.Schema().IsEmpty())
	assert.Contains(t, buf.String(), "using empty schema")
}

func TestRegistry_LookupUnknown(t *testing.T) {
	f := newFixture()
	r := f.registry()
	require.NoError(t, r.Initialize(context.Background()))
	_, err := r.Lookup("nope")
	assert.True(t, errors.Is(err, ErrToolNotFound))
}
