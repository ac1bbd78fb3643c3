package discovery

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/viant/mcp-registry/internal/syncmap"
)

// ErrSourceUnavailable is returned when registered classes cannot be enumerated.
var ErrSourceUnavailable = errors.New("handler class catalog unavailable")

// Source enumerates registered handler classes in registration order.
type Source interface {
	Classes(ctx context.Context) ([]*Class, error)
}

// Catalog is the in-process class registry.
type Catalog struct {
	classes *syncmap.Map[*Class]
	closed  int32
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{classes: syncmap.New[*Class]()}
}

// Register adds classes; a key may be registered once.
func (c *Catalog) Register(classes ...*Class) error {
	for _, class := range classes {
		if class == nil || class.Key == "" {
			return fmt.Errorf("class key was empty")
		}
		if !c.classes.PutIfAbsent(class.Key, class) {
			return fmt.Errorf("class %q already registered", class.Key)
		}
	}
	return nil
}

// Lookup returns a class by key
func (c *Catalog) Lookup(key string) (*Class, bool) {
	return c.classes.Lookup(key)
}

// Classes implements Source
func (c *Catalog) Classes(context.Context) ([]*Class, error) {
	if c == nil || atomic.LoadInt32(&c.closed) == 1 {
		return nil, ErrSourceUnavailable
	}
	return c.classes.List(), nil
}

// Close makes the catalog unavailable
func (c *Catalog) Close() {
	atomic.StoreInt32(&c.closed, 1)
}
