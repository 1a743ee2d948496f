package taler

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/application"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/config"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/domain"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

const redacted = "[redacted]"

// HTTPTransport talks to the merchant backend over HTTP/1.1. Every call
// yields an application.Outcome; HTTP error statuses are never Go errors.
type HTTPTransport struct {
	endpoint        domain.BackendEndpoint
	httpClient      *http.Client
	maxBody         int64
	requestEncoding string
	diag            application.Diagnostics
	metrics         *Metrics
}

func NewHTTPTransport(cfg config.BackendConfig, endpoint domain.BackendEndpoint, diag application.Diagnostics, metrics *Metrics) *HTTPTransport {
	base := http.DefaultTransport.(*http.Transport).Clone()
	base.ForceAttemptHTTP2 = false
	base.TLSNextProto = map[string]func(string, *tls.Conn) http.RoundTripper{}
	base.DisableCompression = true

	maxRedirects := cfg.MaxRedirects
	return &HTTPTransport{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: base,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) > maxRedirects {
					return errRedirectLimit
				}
				return nil
			},
		},
		maxBody:         cfg.MaxResponseBytes,
		requestEncoding: cfg.RequestEncoding,
		diag:            diag,
		metrics:         metrics,
	}
}

func (t *HTTPTransport) Get(ctx context.Context, url string, scope application.Scope) application.Outcome {
	return t.do(ctx, http.MethodGet, url, nil, scope)
}

func (t *HTTPTransport) Post(ctx context.Context, url string, body any, scope application.Scope) application.Outcome {
	payload, err := encodeJSON(body)
	if err != nil {
		return t.fail(ctx, http.MethodPost, scope, &transportError{Code: FailureEncode, Err: err}, 0)
	}
	return t.do(ctx, http.MethodPost, url, payload, scope)
}

func (t *HTTPTransport) do(ctx context.Context, method, url string, payload []byte, scope application.Scope) application.Outcome {
	start := time.Now()

	req, err := t.newRequest(ctx, method, url, payload)
	if err != nil {
		return t.fail(ctx, method, scope, &transportError{Code: FailureEncode, Err: err}, time.Since(start))
	}

	if t.diag.Enabled() {
		t.diag.Log(ctx, application.LevelDebug, scope,
			fmt.Sprintf("Issuing HTTP %s request to %s", method, url),
			"headers", redactHeaders(req.Header), "body", string(payload))
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return t.fail(ctx, method, scope, classifyDoError(err), time.Since(start))
	}
	defer resp.Body.Close()

	body, terr := t.readBody(resp)
	if terr != nil {
		return t.fail(ctx, method, scope, terr, time.Since(start))
	}

	t.metrics.observe(method, resp.StatusCode, time.Since(start))
	if t.diag.Enabled() {
		t.diag.Log(ctx, application.LevelDebug, scope,
			fmt.Sprintf("HTTP status %d with response body %s", resp.StatusCode, body))
	}

	return application.Outcome{Status: resp.StatusCode, Body: body}
}

func (t *HTTPTransport) newRequest(ctx context.Context, method, url string, payload []byte) (*http.Request, error) {
	var bodyReader io.Reader
	contentEncoding := ""
	if payload != nil {
		compressed, encoding, err := compress(payload, t.requestEncoding)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(compressed)
		contentEncoding = encoding
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, err
	}

	// An empty value suppresses net/http's default User-Agent.
	req.Header.Set("User-Agent", "")
	req.Header.Set("Authorization", t.endpoint.APIKey())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
		if contentEncoding != "" {
			req.Header.Set("Content-Encoding", contentEncoding)
		}
	}
	return req, nil
}

// readBody decodes the response and rejects bodies above maxBody rather
// than truncating them.
func (t *HTTPTransport) readBody(resp *http.Response) ([]byte, *transportError) {
	var reader io.Reader = resp.Body

	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, &transportError{Code: FailureDecode, Err: err}
		}
		defer gz.Close()
		reader = gz
	case "deflate":
		zr, err := zlib.NewReader(resp.Body)
		if err != nil {
			return nil, &transportError{Code: FailureDecode, Err: err}
		}
		defer zr.Close()
		reader = zr
	}

	body, err := io.ReadAll(io.LimitReader(reader, t.maxBody+1))
	if err != nil {
		terr := classifyDoError(err)
		if terr.Code == FailureConnection {
			terr.Code = FailureDecode
		}
		return nil, terr
	}
	if int64(len(body)) > t.maxBody {
		return nil, &transportError{Code: FailureResponseTooLarge, Err: errResponseTooLarge}
	}
	return body, nil
}

func (t *HTTPTransport) fail(ctx context.Context, method string, scope application.Scope, terr *transportError, elapsed time.Duration) application.Outcome {
	t.metrics.observe(method, 0, elapsed)
	t.metrics.failure(terr.Code)
	t.diag.Log(ctx, application.LevelWarning, scope,
		fmt.Sprintf("HTTP failure %s with data %v", terr.Code, terr.Err))
	return application.Outcome{Status: 0, Body: []byte(terr.Error())}
}

// encodeJSON writes compact JSON without escaping '<', '>', '&' or '/'.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func compress(payload []byte, encoding string) ([]byte, string, error) {
	var buf bytes.Buffer
	var w io.WriteCloser

	switch encoding {
	case "gzip":
		w = gzip.NewWriter(&buf)
	case "deflate":
		w = zlib.NewWriter(&buf)
	default:
		return payload, "", nil
	}

	if _, err := w.Write(payload); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), encoding, nil
}

func redactHeaders(h http.Header) http.Header {
	out := h.Clone()
	if out.Get("Authorization") != "" {
		out.Set("Authorization", redacted)
	}
	return out
}
