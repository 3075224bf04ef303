package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/manhreal/web-2-grw-sub000/core"
)

// listEnvelope is the response shape shared by the content catalog and
// profile endpoints. Cached tells clients whether the payload was served
// from memory.
type listEnvelope struct {
	Success bool        `json:"success"`
	Count   int         `json:"count"`
	Cached  bool        `json:"cached"`
	Data    interface{} `json:"data"`
}

type listPayload struct {
	data  interface{}
	count int
}

// cachedList wraps a list handler with read-through caching. On a hit the
// stored payload is re-enveloped with cached=true; on a miss compute runs,
// the payload is stored, and the response carries cached=false.
func cachedList(cache *core.Cache, key string, compute func(ctx echo.Context) (interface{}, int, error)) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if payload, ok := cache.Get(key); ok {
			p := payload.(listPayload)
			return ctx.JSON(http.StatusOK, listEnvelope{Success: true, Count: p.count, Cached: true, Data: p.data})
		}

		data, count, err := compute(ctx)
		if err != nil {
			return err
		}
		cache.Set(key, listPayload{data: data, count: count})
		return ctx.JSON(http.StatusOK, listEnvelope{Success: true, Count: count, Cached: false, Data: data})
	}
}

// cachedJSON wraps a handler whose response body is the payload itself,
// with no envelope. keyFn derives the cache key from the request.
func cachedJSON(cache *core.Cache, keyFn func(ctx echo.Context) string, compute func(ctx echo.Context) (interface{}, error)) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		key := keyFn(ctx)
		if payload, ok := cache.Get(key); ok {
			return ctx.JSON(http.StatusOK, payload)
		}

		payload, err := compute(ctx)
		if err != nil {
			return err
		}
		cache.Set(key, payload)
		return ctx.JSON(http.StatusOK, payload)
	}
}

func staticKey(key string) func(echo.Context) string {
	return func(echo.Context) string { return key }
}
