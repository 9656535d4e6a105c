package loader

import (
	"reflect"
	"runtime"
	"sort"
	"sync"

	"github.com/shuldan/clikit/pkg/console"
	"github.com/shuldan/clikit/pkg/contracts"
)

type Metadata struct {
	Description string
	Help        string
	Group       string
	Configure   func(def *console.Definition) error
}

// Class describes one command implementation. New builds the command and may
// pull its dependencies from the container. Describe, when set, returns the
// static metadata without calling New.
type Class struct {
	New      func(c contracts.DIContainer) (any, error)
	Describe func() Metadata
	// Source overrides the declaring file reported by SourceFile.
	Source string
}

type Catalog struct {
	mu      sync.RWMutex
	classes map[string]Class
}

func NewCatalog() *Catalog {
	return &Catalog{classes: make(map[string]Class)}
}

func (c *Catalog) Add(id string, class Class) error {
	if class.New == nil {
		return ErrInvalidClass.WithDetail("class", id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.classes[id]; exists {
		return ErrDuplicateClass.WithDetail("class", id)
	}
	c.classes[id] = class
	return nil
}

func (c *Catalog) Class(id string) (Class, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	class, ok := c.classes[id]
	return class, ok
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.Class(id)
	return ok
}

func (c *Catalog) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.classes))
	for id := range c.classes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *Catalog) SourceFile(id string) string {
	class, ok := c.Class(id)
	if !ok {
		return ""
	}
	if class.Source != "" {
		return class.Source
	}

	fn := runtime.FuncForPC(reflect.ValueOf(class.New).Pointer())
	if fn == nil {
		return ""
	}
	file, _ := fn.FileLine(fn.Entry())
	return file
}
