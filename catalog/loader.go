package catalog

import (
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Loader builds the catalog from a Source on first use and caches it. Callers
// that arrive while the first load is running wait for that load instead of
// starting their own. A failed load is not cached.
type Loader struct {
	source Source
	group  singleflight.Group

	mu      sync.RWMutex
	catalog *Catalog
}

// NewLoader returns a loader for source
func NewLoader(source Source) *Loader {
	return &Loader{source: source}
}

// SourceName reports which source backs the catalog
func (l *Loader) SourceName() string {
	return l.source.Name()
}

// Get returns the catalog, loading it if needed
func (l *Loader) Get() (*Catalog, error) {
	if cat := l.cached(); cat != nil {
		return cat, nil
	}

	v, err, _ := l.group.Do("catalog", func() (interface{}, error) {
		if cat := l.cached(); cat != nil {
			return cat, nil
		}

		products, err := l.source.ListShades()
		if err != nil {
			return nil, fmt.Errorf("loading %s catalog: %w", l.source.Name(), err)
		}

		cat, err := NewCatalog(products)
		if err != nil {
			return nil, fmt.Errorf("building %s catalog: %w", l.source.Name(), err)
		}

		l.mu.Lock()
		l.catalog = cat
		l.mu.Unlock()

		log.Printf("Loaded %d shades across %d brands from %s catalog", cat.Len(), len(cat.brands), l.source.Name())
		return cat, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Catalog), nil
}

// Preload loads the catalog ahead of the first request
func (l *Loader) Preload() error {
	_, err := l.Get()
	return err
}

// Loaded reports whether the catalog is already cached
func (l *Loader) Loaded() bool {
	return l.cached() != nil
}

func (l *Loader) cached() *Catalog {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.catalog
}
