// Package prompts provides the prompt templates for each workflow phase.
// Templates are markdown files embedded at compile time and served through a
// caller-owned Cache with an injected Fetcher.
package prompts

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Template names, one per workflow phase
const (
	Phase1 = "phase1"
	Phase2 = "phase2"
	Phase3 = "phase3"
)

// All lists every built-in template name
var All = []string{Phase1, Phase2, Phase3}

//go:embed templates/*.md
var templateFiles embed.FS

// Fetcher loads a template by name
type Fetcher interface {
	Fetch(ctx context.Context, name string) (string, error)
}

// FetcherFunc adapts a function to Fetcher
type FetcherFunc func(ctx context.Context, name string) (string, error)

// Fetch calls f
func (f FetcherFunc) Fetch(ctx context.Context, name string) (string, error) {
	return f(ctx, name)
}

// EmbeddedFetcher reads templates/<name>.md from a filesystem, the compiled-in templates by default
type EmbeddedFetcher struct {
	FS fs.FS
}

// NewEmbeddedFetcher returns a fetcher over the compiled-in templates
func NewEmbeddedFetcher() *EmbeddedFetcher {
	return &EmbeddedFetcher{FS: templateFiles}
}

// Fetch reads the named template
func (f *EmbeddedFetcher) Fetch(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := fs.ReadFile(f.FS, "templates/"+name+".md")
	if err != nil {
		return "", &NotFoundError{Name: name, Cause: err}
	}
	return string(data), nil
}

// Cache holds fetched templates. Concurrent requests for the same missing
// template share a single fetch.
type Cache struct {
	fetcher Fetcher

	mu        sync.RWMutex
	templates map[string]string
	group     singleflight.Group
}

// NewCache creates an empty cache backed by fetcher
func NewCache(fetcher Fetcher) *Cache {
	return &Cache{
		fetcher:   fetcher,
		templates: make(map[string]string),
	}
}

// Get returns the named template, fetching it on first use
func (c *Cache) Get(ctx context.Context, name string) (string, error) {
	if tmpl, ok := c.lookup(name); ok {
		return tmpl, nil
	}

	v, err, _ := c.group.Do(name, func() (any, error) {
		if tmpl, ok := c.lookup(name); ok {
			return tmpl, nil
		}
		tmpl, err := c.fetcher.Fetch(ctx, name)
		if err != nil {
			return "", fmt.Errorf("failed to fetch prompt %s: %w", name, err)
		}
		c.mu.Lock()
		c.templates[name] = tmpl
		c.mu.Unlock()
		return tmpl, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Preload fetches every missing template concurrently so later Gets never block on I/O
func (c *Cache) Preload(ctx context.Context, names ...string) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range names {
		if _, ok := c.lookup(name); ok {
			continue
		}
		g.Go(func() error {
			_, err := c.Get(gctx, name)
			return err
		})
	}
	return g.Wait()
}

// Cached reports whether name is already loaded
func (c *Cache) Cached(name string) bool {
	_, ok := c.lookup(name)
	return ok
}

// Names returns the loaded template names in sorted order
func (c *Cache) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.templates))
	for name := range c.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Cache) lookup(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tmpl, ok := c.templates[name]
	return tmpl, ok
}

// Format replaces {{.Key}} placeholders with values from data in a single pass.
// Substituted text is never rescanned, and placeholders without a value are left intact.
func Format(template string, data map[string]string) string {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, key := range keys {
		pairs = append(pairs, fmt.Sprintf("{{.%s}}", key), data[key])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
