package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/react-three/create/internal/project"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	return New(zerolog.Nop(), WithRetries(2, time.Millisecond))
}

func TestClient_LoadOptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name": "shared", "drei": true, "xr": {"storeOptions": {}}}`))
	}))
	defer server.Close()

	opts, err := newTestClient().LoadOptions(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "shared", opts.Name)
	assert.Equal(t, project.SlotEnabled, opts.Drei.State)
	assert.Equal(t, project.SlotConfigured, opts.XR.State)
}

func TestClient_LoadOptions_DoesNotValidate(t *testing.T) {
	// Test: only decoding errors fail the load
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name": "!!! not a valid name !!!", "dependencies": {"three": "not-a-range"}}`))
	}))
	defer server.Close()

	opts, err := newTestClient().LoadOptions(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "!!! not a valid name !!!", opts.Name)
}

func TestClient_LoadOptions_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer server.Close()

	_, err := newTestClient().LoadOptions(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse options")
}

func TestClient_Fetch(t *testing.T) {
	tests := []struct {
		name         string
		statuses     []int
		wantErr      bool
		wantNotFound bool
		wantCalls    int32
	}{
		{name: "ok", statuses: []int{200}, wantCalls: 1},
		{name: "retries server errors", statuses: []int{503, 500, 200}, wantCalls: 3},
		{name: "retries rate limiting", statuses: []int{429, 200}, wantCalls: 2},
		{name: "gives up after max retries", statuses: []int{502, 502, 502, 502}, wantErr: true, wantCalls: 3},
		{name: "does not retry client errors", statuses: []int{404, 200}, wantErr: true, wantNotFound: true, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := calls.Add(1)
				status := tt.statuses[n-1]
				w.WriteHeader(status)
				if status == http.StatusOK {
					_, _ = w.Write([]byte("glTF binary"))
				}
			}))
			defer server.Close()

			data, err := newTestClient().Fetch(context.Background(), server.URL+"/model.glb")
			assert.Equal(t, tt.wantCalls, calls.Load())
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantNotFound, IsNotFound(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []byte("glTF binary"), data)
		})
	}
}

func TestClient_Fetch_Canceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(zerolog.Nop(), WithRetries(10, time.Second)).Fetch(ctx, server.URL)
	require.Error(t, err)
}

func TestStatusError(t *testing.T) {
	err := &StatusError{URL: "https://example.com/a", StatusCode: 418}
	assert.Equal(t, "unexpected status 418 from https://example.com/a", err.Error())
	assert.False(t, IsNotFound(err))
	assert.True(t, IsNotFound(&StatusError{StatusCode: 404}))
}

func TestClient_WithoutRedirects(t *testing.T) {
	var targetHits atomic.Int32
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		targetHits.Add(1)
		_, _ = w.Write([]byte("secret"))
	}))
	defer target.Close()

	redirecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL+"/secret", http.StatusFound)
	}))
	defer redirecting.Close()

	// Test: redirects are followed by default
	data, err := newTestClient().Fetch(context.Background(), redirecting.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), data)
	assert.Equal(t, int32(1), targetHits.Load())

	// Test: a client without redirects never reaches the target
	client := New(zerolog.Nop(), WithRetries(0, time.Millisecond), WithoutRedirects())
	_, err = client.Fetch(context.Background(), redirecting.URL)
	require.Error(t, err)
	assert.Equal(t, int32(1), targetHits.Load())
}
