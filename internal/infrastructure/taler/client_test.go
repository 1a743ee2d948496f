package taler_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/application"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/config"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/infrastructure/taler"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/mocks"
	"github.com/klauspost/compress/gzip"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiKey = "Bearer secret-token:sandbox"

func backendConfig(url string) config.BackendConfig {
	return config.BackendConfig{
		BaseURL:          url,
		APIKey:           apiKey,
		Timeout:          2 * time.Second,
		MaxRedirects:     2,
		MaxResponseBytes: 1 << 20,
		RequestEncoding:  "gzip",
	}
}

func newTransport(t *testing.T, cfg config.BackendConfig) (*taler.HTTPTransport, *mocks.RecordingDiagnostics, *prometheus.Registry) {
	t.Helper()
	endpoint, err := cfg.Endpoint()
	require.NoError(t, err)

	diag := mocks.NewRecordingDiagnostics()
	reg := prometheus.NewRegistry()
	return taler.NewHTTPTransport(cfg, endpoint, diag, taler.NewMetrics(reg)), diag, reg
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue metrics
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestHTTPTransport_Get(t *testing.T) {
	var got *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"version":"1:0:0","currency":"KUDOS"}`))
	}))
	defer server.Close()

	transport, diag, reg := newTransport(t, backendConfig(server.URL))

	outcome := transport.Get(context.Background(), server.URL+"/config", application.Scope{Actor: "Guest"})

	assert.Equal(t, http.StatusOK, outcome.Status)
	assert.JSONEq(t, `{"version":"1:0:0","currency":"KUDOS"}`, string(outcome.Body))

	require.NotNil(t, got)
	assert.Equal(t, apiKey, got.Header.Get("Authorization"))
	assert.Empty(t, got.Header.Values("User-Agent"))
	assert.Equal(t, "HTTP/1.1", got.Proto)

	assert.True(t, diag.Contains(application.LevelDebug, "Issuing HTTP GET request"))
	assert.True(t, diag.Contains(application.LevelDebug, "HTTP status 200"))
	for _, e := range diag.Entries {
		for _, arg := range e.Args {
			if h, ok := arg.(http.Header); ok {
				assert.Equal(t, "[redacted]", h.Get("Authorization"))
			}
		}
	}

	assert.Equal(t, 1.0, counterValue(t, reg, "taler_backend_requests_total", map[string]string{"method": "GET", "status": "200"}))
}

func TestHTTPTransport_PostCompressesCanonicalJSON(t *testing.T) {
	var body []byte
	var headers http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		gz, err := gzip.NewReader(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		body, _ = io.ReadAll(gz)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"order_id":"abc","token":"tkn"}`))
	}))
	defer server.Close()

	transport, _, _ := newTransport(t, backendConfig(server.URL))

	outcome := transport.Post(context.Background(), server.URL+"/private/orders", map[string]string{
		"summary":         "Tee & Kekse <grün>",
		"fulfillment_url": "https://shop.example/?callback=taler",
	}, application.Scope{})

	require.Equal(t, http.StatusOK, outcome.Status)
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
	assert.Equal(t, "gzip", headers.Get("Content-Encoding"))
	assert.Equal(t, `{"fulfillment_url":"https://shop.example/?callback=taler","summary":"Tee & Kekse <grün>"}`, string(body))
}

func TestHTTPTransport_ErrorStatusesAreOutcomes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":2601,"hint":"order unknown"}`))
	}))
	defer server.Close()

	transport, _, _ := newTransport(t, backendConfig(server.URL))

	outcome := transport.Post(context.Background(), server.URL+"/private/orders/x-1/refund", struct{}{}, application.Scope{})

	assert.Equal(t, http.StatusNotFound, outcome.Status)
	assert.False(t, outcome.TransportFailed())
	assert.Contains(t, string(outcome.Body), "2601")
}

func TestHTTPTransport_DecodesGzipResponses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Accept-Encoding"), "gzip")
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		_, _ = gz.Write([]byte(`{"order_status":"paid"}`))
		_ = gz.Close()

		w.Header().Set("Content-Encoding", "gzip")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}))
	defer server.Close()

	transport, _, _ := newTransport(t, backendConfig(server.URL))

	outcome := transport.Get(context.Background(), server.URL+"/private/orders/KEY-42", application.Scope{})

	assert.Equal(t, `{"order_status":"paid"}`, string(outcome.Body))
}

func TestHTTPTransport_Failures(t *testing.T) {
	t.Run("oversized body is rejected, not truncated", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("x", 2048)))
		}))
		defer server.Close()

		cfg := backendConfig(server.URL)
		cfg.MaxResponseBytes = 1024
		transport, diag, reg := newTransport(t, cfg)

		outcome := transport.Get(context.Background(), server.URL, application.Scope{})

		assert.True(t, outcome.TransportFailed())
		assert.True(t, strings.HasPrefix(string(outcome.Body), taler.FailureResponseTooLarge+":"))
		assert.True(t, diag.Contains(application.LevelWarning, "HTTP failure"))
		assert.Equal(t, 1.0, counterValue(t, reg, "taler_backend_transport_failures_total", map[string]string{"code": taler.FailureResponseTooLarge}))
	})

	t.Run("body at the limit is accepted", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("x", 1024)))
		}))
		defer server.Close()

		cfg := backendConfig(server.URL)
		cfg.MaxResponseBytes = 1024
		transport, _, _ := newTransport(t, cfg)

		outcome := transport.Get(context.Background(), server.URL, application.Scope{})

		assert.Equal(t, http.StatusOK, outcome.Status)
		assert.Len(t, outcome.Body, 1024)
	})

	t.Run("redirect limit", func(t *testing.T) {
		var server *httptest.Server
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, server.URL+r.URL.Path+"x", http.StatusFound)
		}))
		defer server.Close()

		transport, _, _ := newTransport(t, backendConfig(server.URL))

		outcome := transport.Get(context.Background(), server.URL+"/a", application.Scope{})

		assert.True(t, outcome.TransportFailed())
		assert.True(t, strings.HasPrefix(string(outcome.Body), taler.FailureRedirectLimit+":"))
	})

	t.Run("two redirects are followed", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/a", func(w http.ResponseWriter, r *http.Request) { http.Redirect(w, r, "/b", http.StatusFound) })
		mux.HandleFunc("/b", func(w http.ResponseWriter, r *http.Request) { http.Redirect(w, r, "/c", http.StatusFound) })
		mux.HandleFunc("/c", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`{}`)) })
		server := httptest.NewServer(mux)
		defer server.Close()

		transport, _, _ := newTransport(t, backendConfig(server.URL))

		outcome := transport.Get(context.Background(), server.URL+"/a", application.Scope{})

		assert.Equal(t, http.StatusOK, outcome.Status)
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		cfg := backendConfig(server.URL)
		cfg.Timeout = 50 * time.Millisecond
		transport, _, _ := newTransport(t, cfg)

		outcome := transport.Get(context.Background(), server.URL, application.Scope{})

		assert.True(t, outcome.TransportFailed())
		assert.True(t, strings.HasPrefix(string(outcome.Body), taler.FailureTimeout+":"))
	})

	t.Run("connection refused", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		transport, _, _ := newTransport(t, backendConfig(url))

		outcome := transport.Get(context.Background(), url+"/config", application.Scope{})

		assert.True(t, outcome.TransportFailed())
		assert.True(t, strings.HasPrefix(string(outcome.Body), taler.FailureConnection+":"))
	})

	t.Run("unencodable body", func(t *testing.T) {
		transport, _, _ := newTransport(t, backendConfig("https://backend.example"))

		outcome := transport.Post(context.Background(), "https://backend.example/private/orders", func() {}, application.Scope{})

		assert.True(t, outcome.TransportFailed())
		assert.True(t, strings.HasPrefix(string(outcome.Body), taler.FailureEncode+":"))
	})
}

func TestHTTPTransport_SilentWhenDiagnosticsDisabled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	cfg := backendConfig(server.URL)
	endpoint, err := cfg.Endpoint()
	require.NoError(t, err)
	diag := &disabledDiagnostics{}

	transport := taler.NewHTTPTransport(cfg, endpoint, diag, nil)
	transport.Post(context.Background(), server.URL, map[string]string{"secret": "body"}, application.Scope{})

	assert.Zero(t, diag.calls)
}

type disabledDiagnostics struct {
	calls int
}

func (d *disabledDiagnostics) Enabled() bool { return false }

func (d *disabledDiagnostics) Log(context.Context, application.Level, application.Scope, string, ...any) {
	d.calls++
}

var _ application.Transport = (*taler.HTTPTransport)(nil)
