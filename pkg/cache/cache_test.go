package cache_test

import (
	"context"
	"testing"
	"time"

	"robustgo/pkg/cache"
	"robustgo/pkg/model"

	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	c, err := cache.New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	opts := model.GenerateOptions{Temperature: 0.2, MaxTokens: 64}
	resp := model.Response{Content: "positive"}

	_, ok := c.Get("mock", "prompt", opts)
	require.False(t, ok)

	require.NoError(t, c.Set("mock", "prompt", opts, resp))

	got, ok := c.Get("mock", "prompt", opts)
	require.True(t, ok)
	require.Equal(t, "positive", got.Content)

	// A different option set misses.
	_, ok = c.Get("mock", "prompt", model.GenerateOptions{Temperature: 0.7})
	require.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	c, err := cache.New(t.TempDir(), time.Nanosecond)
	require.NoError(t, err)

	require.NoError(t, c.Set("mock", "prompt", model.GenerateOptions{}, model.Response{Content: "x"}))
	time.Sleep(time.Millisecond)

	_, ok := c.Get("mock", "prompt", model.GenerateOptions{})
	require.False(t, ok)
}

type countingModel struct{ calls int }

func (m *countingModel) Name() string { return "counting" }

func (m *countingModel) Generate(context.Context, string, model.GenerateOptions) (model.Response, error) {
	m.calls++
	return model.Response{Content: "positive"}, nil
}

func TestWrapServesFromCache(t *testing.T) {
	c, err := cache.New(t.TempDir(), time.Hour)
	require.NoError(t, err)

	inner := &countingModel{}
	wrapped := cache.Wrap(inner, c)

	first, err := wrapped.Generate(context.Background(), "prompt", model.GenerateOptions{})
	require.NoError(t, err)
	second, err := wrapped.Generate(context.Background(), "prompt", model.GenerateOptions{})
	require.NoError(t, err)

	require.Equal(t, first.Content, second.Content)
	require.Equal(t, 1, inner.calls)
}
