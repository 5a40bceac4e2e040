package traceapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/runoshun/daisen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Tasks(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/trace", r.URL.Path)
		got = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"1","parent_id":"","kind":"kernel","what":"launch","location":"GPU[0]",
			"start_time":0.5,"end_time":1.25,"steps":[{"time":1,"what":"hit","kind":"cache"}],"milestones":[]}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", WithRateLimit(0))
	q := domain.WindowQuery(domain.TimeWindow{StartTime: 0.5, EndTime: 2e-6}, "GPU[0]")
	q.ParentID = "p"
	tasks, err := c.Tasks(context.Background(), q)

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "GPU[0]", tasks[0].Location)
	assert.Equal(t, 1.25, tasks[0].EndTime)
	assert.Equal(t, "hit", tasks[0].Steps[0].What)

	assert.Equal(t, "GPU[0]", got.Get("where"))
	assert.Equal(t, "0.5", got.Get("starttime"))
	assert.Equal(t, "2e-06", got.Get("endtime"))
	assert.Equal(t, "p", got.Get("parentid"))
	assert.False(t, got.Has("id"))
}

func TestClient_ComponentNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/compnames", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`["GPU[0]","GPU[1]"]`))
	}))
	defer srv.Close()

	names, err := NewClient(srv.URL).ComponentNames(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"GPU[0]", "GPU[1]"}, names)
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no such trace", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Tasks(context.Background(), domain.TraceQuery{})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "no such trace", apiErr.Body)
	assert.Contains(t, err.Error(), "status 404")
}

func TestClient_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Tasks(context.Background(), domain.TraceQuery{})

	assert.ErrorContains(t, err, "decode /api/trace")
}

func TestClient_RateLimited(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithRateLimit(0.001))
	ctx := context.Background()
	_, err := c.ComponentNames(ctx)
	require.NoError(t, err)

	short, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	_, err = c.ComponentNames(short)

	assert.ErrorContains(t, err, "rate limit")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_EmptyURL(t *testing.T) {
	_, err := NewClient("").Tasks(context.Background(), domain.TraceQuery{})
	assert.ErrorIs(t, err, domain.ErrEmptyTraceURL)

	_, err = NewClientFromConfig(domain.TraceConfig{})
	assert.ErrorIs(t, err, domain.ErrEmptyTraceURL)
}

func TestNewClientFromConfig(t *testing.T) {
	cfg := domain.NewDefaultConfig().Trace
	cfg.TimeoutMS = 1500

	c, err := NewClientFromConfig(cfg)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTraceURL, c.baseURL)
	assert.Equal(t, 1500*time.Millisecond, c.httpClient.Timeout)
	assert.Equal(t, float64(domain.DefaultRequestsPerSecond), float64(c.limiter.Limit()))
}
