package prompts

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingFetcher(calls *atomic.Int32) FetcherFunc {
	return func(_ context.Context, name string) (string, error) {
		calls.Add(1)
		return "template " + name, nil
	}
}

func TestEmbeddedFetcher_BuiltinTemplates(t *testing.T) {
	fetcher := NewEmbeddedFetcher()

	for _, name := range All {
		tmpl, err := fetcher.Fetch(context.Background(), name)
		require.NoError(t, err, name)
		assert.Contains(t, tmpl, "{{.ProductName}}", name)
	}
}

func TestEmbeddedFetcher_NotFound(t *testing.T) {
	_, err := NewEmbeddedFetcher().Fetch(context.Background(), "phase9")

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "phase9", notFound.Name)
}

func TestEmbeddedFetcher_CustomFS(t *testing.T) {
	fetcher := &EmbeddedFetcher{FS: fstest.MapFS{
		"templates/custom.md": {Data: []byte("Hello {{.Name}}")},
	}}

	tmpl, err := fetcher.Fetch(context.Background(), "custom")
	require.NoError(t, err)
	assert.Equal(t, "Hello {{.Name}}", tmpl)
}

func TestCache_GetFetchesOnce(t *testing.T) {
	var calls atomic.Int32
	cache := NewCache(countingFetcher(&calls))

	for i := 0; i < 3; i++ {
		tmpl, err := cache.Get(context.Background(), Phase1)
		require.NoError(t, err)
		assert.Equal(t, "template phase1", tmpl)
	}

	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, cache.Cached(Phase1))
}

func TestCache_ConcurrentGets(t *testing.T) {
	var calls atomic.Int32
	cache := NewCache(countingFetcher(&calls))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tmpl, err := cache.Get(context.Background(), Phase2)
			assert.NoError(t, err)
			assert.Equal(t, "template phase2", tmpl)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, calls.Load(), int32(20))
	assert.Equal(t, []string{Phase2}, cache.Names())
}

func TestCache_Preload(t *testing.T) {
	var calls atomic.Int32
	cache := NewCache(countingFetcher(&calls))

	_, err := cache.Get(context.Background(), Phase1)
	require.NoError(t, err)

	require.NoError(t, cache.Preload(context.Background(), All...))

	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []string{Phase1, Phase2, Phase3}, cache.Names())
}

func TestCache_PreloadError(t *testing.T) {
	fetchErr := errors.New("network down")
	cache := NewCache(FetcherFunc(func(_ context.Context, name string) (string, error) {
		if name == Phase3 {
			return "", fetchErr
		}
		return name, nil
	}))

	err := cache.Preload(context.Background(), All...)

	assert.ErrorIs(t, err, fetchErr)
	assert.False(t, cache.Cached(Phase3))
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	var calls atomic.Int32
	cache := NewCache(FetcherFunc(func(_ context.Context, _ string) (string, error) {
		if calls.Add(1) == 1 {
			return "", errors.New("transient")
		}
		return "ok", nil
	}))

	_, err := cache.Get(context.Background(), Phase1)
	require.Error(t, err)

	tmpl, err := cache.Get(context.Background(), Phase1)
	require.NoError(t, err)
	assert.Equal(t, "ok", tmpl)
}

func TestFormat(t *testing.T) {
	tmpl := "Product: {{.ProductName}}, launch {{.LaunchDate}}, missing {{.Unknown}}"

	result := Format(tmpl, map[string]string{
		"ProductName": "DataSync",
		"LaunchDate":  "March 15, 2025",
	})

	assert.Equal(t, "Product: DataSync, launch March 15, 2025, missing {{.Unknown}}", result)
}

func TestFormat_ValuesAreNotRescanned(t *testing.T) {
	tmpl := "{{.Phase1Output}} / {{.ProductName}}"
	data := map[string]string{
		"Phase1Output": "draft mentions {{.ProductName}}",
		"ProductName":  "DataSync",
		"Customer":     "{{.Phase1Output}}",
		"Metrics":      "",
	}

	for i := 0; i < 200; i++ {
		require.Equal(t, "draft mentions {{.ProductName}} / DataSync", Format(tmpl, data))
	}
}

func TestFormat_EmptyData(t *testing.T) {
	assert.Equal(t, "keep {{.Name}}", Format("keep {{.Name}}", nil))
}
