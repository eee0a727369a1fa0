package cache

import (
	"context"

	"robustgo/pkg/model"
)

type cachedModel struct {
	inner model.Model
	cache *Cache
}

// Wrap returns a Model that consults the cache before the wrapped backend.
// Cache write failures are ignored; a cold cache only costs a re-request.
func Wrap(inner model.Model, c *Cache) model.Model {
	return cachedModel{inner: inner, cache: c}
}

func (m cachedModel) Name() string {
	return m.inner.Name()
}

func (m cachedModel) Generate(ctx context.Context, prompt string, opts model.GenerateOptions) (model.Response, error) {
	if m.cache != nil {
		if resp, ok := m.cache.Get(m.Name(), prompt, opts); ok {
			return resp, nil
		}
	}
	resp, err := m.inner.Generate(ctx, prompt, opts)
	if err != nil {
		return model.Response{}, err
	}
	if m.cache != nil {
		_ = m.cache.Set(m.Name(), prompt, opts, resp)
	}
	return resp, nil
}
