package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

// TestClient wraps HTTP calls to the gateway. Redirects are returned, not followed.
type TestClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewTestClient(baseURL, token string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// envelope is the gateway's JSON response shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *TestClient) do(t *testing.T, method, path string, body any, auth bool) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

func (c *TestClient) Checkout(t *testing.T, number, sessionID string) (*http.Response, envelope) {
	return c.do(t, http.MethodPost, "/orders/"+number+"/checkout", map[string]string{"session_id": sessionID}, true)
}

func (c *TestClient) Refund(t *testing.T, number, amount, reason string) (*http.Response, envelope) {
	return c.do(t, http.MethodPost, "/orders/"+number+"/refund", map[string]string{"amount": amount, "reason": reason}, true)
}

func (c *TestClient) GetOrder(t *testing.T, number string) (*http.Response, envelope) {
	return c.do(t, http.MethodGet, "/orders/"+number, nil, true)
}

func (c *TestClient) Get(t *testing.T, path string, auth bool) (*http.Response, envelope) {
	return c.do(t, http.MethodGet, path, nil, auth)
}

// Callback plays the shopper's browser returning from the wallet.
func (c *TestClient) Callback(t *testing.T, gatewayID, orderID string, cookie *http.Cookie) *http.Response {
	t.Helper()

	q := url.Values{"callback": {gatewayID}, "order_id": {orderID}}
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/?"+q.Encode(), nil)
	require.NoError(t, err)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := c.httpClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

// backendReply is one scripted reply of the fake merchant backend.
type backendReply struct {
	status int
	body   string
}

// fakeBackend speaks just enough of the merchant API for a full order
// lifecycle. POST /private/orders echoes the order_id it was given.
type fakeBackend struct {
	mu          sync.Mutex
	orderStatus string
	refund      backendReply
	contracts   []map[string]any
	refunds     []map[string]any
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		orderStatus: "paid",
		refund:      backendReply{status: http.StatusOK, body: `{"taler_refund_uri":"taler://refund/backend/x/","h_contract":"HC-E2E"}`},
	}
}

func (b *fakeBackend) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /config", func(w http.ResponseWriter, _ *http.Request) {
		writeBackend(w, http.StatusOK, `{"version":"1:0:0","currency":"KUDOS","name":"taler-merchant"}`)
	})

	mux.HandleFunc("POST /private/orders", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := decodeBackendBody(r, &body); err != nil {
			writeBackend(w, http.StatusBadRequest, `{"code":20,"hint":"malformed"}`)
			return
		}
		b.mu.Lock()
		b.contracts = append(b.contracts, body)
		b.mu.Unlock()

		order, _ := body["order"].(map[string]any)
		id, _ := order["order_id"].(string)
		reply, _ := json.Marshal(map[string]string{"order_id": id, "token": "tkn"})
		writeBackend(w, http.StatusOK, string(reply))
	})

	mux.HandleFunc("GET /private/orders/{id}", func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		status := b.orderStatus
		b.mu.Unlock()
		writeBackend(w, http.StatusOK, `{"order_status":"`+status+`"}`)
	})

	mux.HandleFunc("POST /private/orders/{id}/refund", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = decodeBackendBody(r, &body)
		b.mu.Lock()
		b.refunds = append(b.refunds, body)
		reply := b.refund
		b.mu.Unlock()
		writeBackend(w, reply.status, reply.body)
	})

	return mux
}

func (b *fakeBackend) Contracts() []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]map[string]any(nil), b.contracts...)
}

func (b *fakeBackend) Refunds() []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]map[string]any(nil), b.refunds...)
}

func (b *fakeBackend) SetOrderStatus(status string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orderStatus = status
}

func (b *fakeBackend) SetRefundReply(status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refund = backendReply{status: status, body: body}
}

func decodeBackendBody(r *http.Request, dst any) error {
	var reader io.Reader = r.Body
	if r.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(r.Body)
		if err != nil {
			return err
		}
		defer gz.Close()
		reader = gz
	}
	return json.NewDecoder(reader).Decode(dst)
}

func writeBackend(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
