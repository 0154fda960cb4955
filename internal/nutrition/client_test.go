package nutrition

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "caltrack/internal/errors"
)

func TestClient_ResolveCalories(t *testing.T) {
	t.Run("successful lookup", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "app-id", r.Header.Get("x-app-id"))
			assert.Equal(t, "app-key", r.Header.Get("x-app-key"))

			var req map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "2 eggs and toast", req["query"])

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"foods":[{"nf_calories":243.6},{"nf_calories":80}]}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "app-id", "app-key", time.Second)
		calories, err := client.ResolveCalories(context.Background(), "2 eggs and toast")

		assert.NoError(t, err)
		assert.Equal(t, 244, calories)
	})

	t.Run("non-200 status is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "app-id", "app-key", time.Second)
		_, err := client.ResolveCalories(context.Background(), "mystery meat")

		assert.ErrorIs(t, err, apperrors.ErrLookupUnavailable)
	})

	t.Run("malformed body is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "app-id", "app-key", time.Second)
		_, err := client.ResolveCalories(context.Background(), "salad")

		assert.ErrorIs(t, err, apperrors.ErrLookupUnavailable)
	})

	t.Run("empty foods is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"foods":[]}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "app-id", "app-key", time.Second)
		_, err := client.ResolveCalories(context.Background(), "air")

		assert.ErrorIs(t, err, apperrors.ErrLookupUnavailable)
	})

	t.Run("unreachable host is unavailable", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:0", "app-id", "app-key", 100*time.Millisecond)
		_, err := client.ResolveCalories(context.Background(), "toast")

		assert.ErrorIs(t, err, apperrors.ErrLookupUnavailable)
	})
}

func TestCachedLookup(t *testing.T) {
	// A nil cache client behaves like a permanent miss, so the wrapped lookup
	// is always consulted and failures still pass through unchanged.
	t.Run("nil cache falls through", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Write([]byte(`{"foods":[{"nf_calories":100}]}`))
		}))
		defer srv.Close()

		lookup := NewCachedLookup(NewClient(srv.URL, "id", "key", time.Second), nil)

		calories, err := lookup.ResolveCalories(context.Background(), "Banana")
		assert.NoError(t, err)
		assert.Equal(t, 100, calories)

		_, err = lookup.ResolveCalories(context.Background(), "banana")
		assert.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("failure passes through", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		lookup := NewCachedLookup(NewClient(srv.URL, "id", "key", time.Second), nil)
		_, err := lookup.ResolveCalories(context.Background(), "banana")

		assert.ErrorIs(t, err, apperrors.ErrLookupUnavailable)
	})
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "nutrition:2 eggs", cacheKey("  2 Eggs "))
	assert.Equal(t, cacheKey("Banana"), cacheKey("banana"))
}
