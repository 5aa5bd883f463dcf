package health

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ploshtadka/pkg/testutil"
)

func newRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func TestLive(t *testing.T) {
	h := New(slog.New(slog.NewTextHandler(io.Discard, nil))).
		WithCheck("store", func(context.Context) error { return errors.New("down") })

	rr := testutil.DoRequest(newRouter(h), testutil.NewRequest(t, http.MethodGet, "/health/live"))
	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "status", "up")
}

func TestReady(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ok := func(context.Context) error { return nil }

	t.Run("all checks pass", func(t *testing.T) {
		h := New(logger).WithCheck("store", ok).WithCheck("redis", ok).WithCheck("skipped", nil)

		rr := testutil.DoRequest(newRouter(h), testutil.NewRequest(t, http.MethodGet, "/health/ready"))
		testutil.AssertStatusOK(t, rr)
		resp := testutil.UnmarshalResponse[Response](t, rr)
		assert.Equal(t, statusReady, resp.Status)
		assert.Len(t, resp.Components, 2)
	})

	t.Run("failing dependency is 503", func(t *testing.T) {
		h := New(logger).
			WithCheck("store", ok).
			WithCheck("redis", func(context.Context) error { return errors.New("connection refused") })

		rr := testutil.DoRequest(newRouter(h), testutil.NewRequest(t, http.MethodGet, "/health/ready"))
		testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
		resp := testutil.UnmarshalResponse[Response](t, rr)
		assert.Equal(t, statusUnavailable, resp.Status)
		require.Len(t, resp.Components, 2)
		assert.Equal(t, statusUp, resp.Components[0].Status)
		assert.Equal(t, statusDown, resp.Components[1].Status)
		assert.Equal(t, "connection refused", resp.Components[1].Error)
	})
}
