package remote_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/arloliu/arhttp/internal/remote"
	"github.com/arloliu/arhttp/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		switch r.URL.Path {
		case "/scene.usd":
			_, _ = fmt.Fprint(w, "/tmp/cache/scene.usd")
		case "/padded.usd":
			_, _ = fmt.Fprint(w, "  /tmp/cache/padded.usd\n")
		case "/empty.usd":
			w.WriteHeader(http.StatusOK)
		case "/boom.usd":
			http.Error(w, "kaput", http.StatusInternalServerError)
		case "/created.usd":
			w.WriteHeader(http.StatusCreated)
			_, _ = fmt.Fprint(w, "/tmp/cache/created.usd")
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	c := remote.NewClient(ts.Client())
	ctx := context.Background()

	t.Run("200 returns body", func(t *testing.T) {
		got, err := c.Get(ctx, ts.URL+"/scene.usd")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/cache/scene.usd", got)
	})

	t.Run("200 body is not trimmed", func(t *testing.T) {
		got, err := c.Get(ctx, ts.URL+"/padded.usd")
		require.NoError(t, err)
		assert.Equal(t, "  /tmp/cache/padded.usd\n", got)
	})

	t.Run("200 with empty body", func(t *testing.T) {
		got, err := c.Get(ctx, ts.URL+"/empty.usd")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("404 is a status error", func(t *testing.T) {
		got, err := c.Get(ctx, ts.URL+"/missing.usd")
		assert.Empty(t, got)

		var se *types.StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusNotFound, se.StatusCode)
		assert.Equal(t, "Not Found", se.Reason)
		assert.Equal(t, ts.URL+"/missing.usd", se.URL)
	})

	t.Run("500 is a status error", func(t *testing.T) {
		_, err := c.Get(ctx, ts.URL+"/boom.usd")

		var se *types.StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
		assert.Equal(t, "Internal Server Error", se.Reason)
	})

	t.Run("other 2xx is a status error", func(t *testing.T) {
		_, err := c.Get(ctx, ts.URL+"/created.usd")

		var se *types.StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusCreated, se.StatusCode)
	})

	t.Run("single request per call", func(t *testing.T) {
		before := hits.Load()
		_, _ = c.Get(ctx, ts.URL+"/boom.usd")
		assert.Equal(t, before+1, hits.Load())
	})
}

func TestClient_Get_TransportFailures(t *testing.T) {
	c := remote.NewClient(nil)

	t.Run("unreachable server", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		url := ts.URL + "/scene.usd"
		ts.Close()

		got, err := c.Get(context.Background(), url)
		assert.Empty(t, got)

		var te *types.TransportError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, url, te.URL)
	})

	t.Run("malformed url", func(t *testing.T) {
		_, err := c.Get(context.Background(), "http://[::1:bad/scene.usd")

		var te *types.TransportError
		require.ErrorAs(t, err, &te)
	})

	t.Run("context canceled", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = fmt.Fprint(w, "/never")
		}))
		defer ts.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.Get(ctx, ts.URL+"/scene.usd")
		var te *types.TransportError
		require.ErrorAs(t, err, &te)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestClient_Get_MaxSize(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, strings.Repeat("a", 64))
	}))
	defer ts.Close()

	c := remote.NewClient(ts.Client())
	c.MaxSize = 16

	_, err := c.Get(context.Background(), ts.URL+"/big.usd")
	var te *types.TransportError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, err.Error(), "exceeds maximum size")

	c.MaxSize = 64
	got, err := c.Get(context.Background(), ts.URL+"/big.usd")
	require.NoError(t, err)
	assert.Len(t, got, 64)
}
