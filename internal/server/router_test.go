package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tikeria/internal/config"
)

// upstreamStub fakes the marketplace REST API behind the service
type upstreamStub struct {
	mu      sync.Mutex
	carts   []map[string]any
	calls   []string
	decided map[string]json.RawMessage

	failPatchCart string // when set, PATCH /api/cart fails with this message
}

func (u *upstreamStub) record(call string) {
	u.mu.Lock()
	u.calls = append(u.calls, call)
	u.mu.Unlock()
}

func (u *upstreamStub) recorded(call string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, c := range u.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (u *upstreamStub) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		u.record("login")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"token": makeToken(map[string]any{"user_id": 2, "role": "buyer"}),
		})
	})

	mux.HandleFunc("/api/cart", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			u.record("get-cart")
			u.mu.Lock()
			carts := u.carts
			u.mu.Unlock()
			_ = json.NewEncoder(w).Encode(map[string]any{"carts": carts})
		case http.MethodPatch:
			u.record("patch-cart")
			if u.failPatchCart != "" {
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": u.failPatchCart})
				return
			}
			var req struct {
				CartID   int `json:"cart_id"`
				Quantity int `json:"quantity"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			u.mu.Lock()
			for _, row := range u.carts {
				if int(row["cart_id"].(float64)) == req.CartID {
					row["quantity"] = req.Quantity
				}
			}
			u.mu.Unlock()
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			u.record("delete-cart")
			var req struct {
				CartID int `json:"cart_id"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			u.mu.Lock()
			kept := u.carts[:0]
			for _, row := range u.carts {
				if int(row["cart_id"].(float64)) != req.CartID {
					kept = append(kept, row)
				}
			}
			u.carts = kept
			u.mu.Unlock()
			w.WriteHeader(http.StatusOK)
		}
	})

	mux.HandleFunc("/api/events", func(w http.ResponseWriter, r *http.Request) {
		u.record("list-events")
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"event_id": 1, "name": "Jakarta Music Festival", "city": "Jakarta", "total_tickets_sold": 120},
			{"event_id": 2, "name": "Bandung Jazz Night", "city": "Bandung", "total_tickets_sold": 400},
		})
	})

	mux.HandleFunc("/api/events/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/verify") {
			u.record("verify-event")
			var raw json.RawMessage
			_ = json.NewDecoder(r.Body).Decode(&raw)
			u.mu.Lock()
			u.decided["event"] = raw
			u.mu.Unlock()
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	// event registration (multipart)
	mux.HandleFunc("POST /api/events", func(w http.ResponseWriter, r *http.Request) {
		u.record("create-event")
		_ = r.ParseMultipartForm(32 << 20)
		u.mu.Lock()
		u.decided["create-name"], _ = json.Marshal(r.FormValue("name"))
		u.decided["create-categories"] = json.RawMessage(r.FormValue("ticket_categories"))
		u.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	})

	mux.HandleFunc("/api/tickets/9", func(w http.ResponseWriter, r *http.Request) {
		u.record("get-ticket")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ticket": map[string]any{"ticket_id": 9, "code": "FRESH-CODE"},
		})
	})

	mux.HandleFunc("/api/users/4/verify", func(w http.ResponseWriter, r *http.Request) {
		u.record("verify-user")
		var raw json.RawMessage
		_ = json.NewDecoder(r.Body).Decode(&raw)
		u.mu.Lock()
		u.decided["user"] = raw
		u.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})

	return mux
}

func makeToken(claims map[string]any) string {
	header, _ := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	payload, _ := json.Marshal(claims)
	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + ".sig"
}

func festivalUpstream() *upstreamStub {
	return &upstreamStub{
		decided: make(map[string]json.RawMessage),
		carts: []map[string]any{
			{
				"cart_id":  float64(11),
				"quantity": 2,
				"event":    map[string]any{"event_id": 1, "name": "Jakarta Music Festival", "image": "poster.jpg"},
				"ticket_category": map[string]any{
					"ticket_category_id": 1, "name": "Regular", "price": 100000, "quota": 12, "sold": 2,
				},
			},
			{
				"cart_id":  float64(12),
				"quantity": 1,
				"event":    map[string]any{"event_id": 1, "name": "Jakarta Music Festival", "image": "poster.jpg"},
				"ticket_category": map[string]any{
					"ticket_category_id": 2, "name": "VIP", "price": 250000, "quota": 3, "sold": 0,
				},
			},
		},
	}
}

func newTestServer(t *testing.T, upstream *upstreamStub) http.Handler {
	t.Helper()

	upstreamServer := httptest.NewServer(upstream.handler())
	t.Cleanup(upstreamServer.Close)

	cfg := &config.Config{}
	cfg.Server.Port = "0"
	cfg.Server.AllowedOrigins = []string{"*"}
	cfg.Server.RateLimit = 1000
	cfg.Server.RateBurst = 1000
	cfg.Upstream.BaseURL = upstreamServer.URL
	cfg.Session.Secret = "test-secret"

	return New(cfg, zap.NewNop().Sugar())
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, path, reader)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

func buyerToken() string {
	return makeToken(map[string]any{"user_id": 2, "role": "buyer"})
}

func TestSessionEndpointGuest(t *testing.T) {
	handler := newTestServer(t, festivalUpstream())

	w := doJSON(t, handler, http.MethodGet, "/session", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, false, body["authenticated"])
	assert.Equal(t, "guest", body["role"])
}

func TestCartRequiresAuth(t *testing.T) {
	handler := newTestServer(t, festivalUpstream())

	w := doJSON(t, handler, http.MethodGet, "/cart", "", nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "/login", body["redirect"])
}

func TestCartViewTotals(t *testing.T) {
	handler := newTestServer(t, festivalUpstream())

	w := doJSON(t, handler, http.MethodGet, "/cart", buyerToken(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	var view struct {
		GrandTotal int `json:"grand_total"`
		Groups     []struct {
			EventName string `json:"event_name"`
			Lines     []struct {
				Quantity int `json:"quantity"`
			} `json:"lines"`
		} `json:"groups"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
	assert.Equal(t, 450000, view.GrandTotal)
	require.Len(t, view.Groups, 1)
	assert.Equal(t, "Jakarta Music Festival", view.Groups[0].EventName)
}

func TestQuantityDecrementToZeroPromptsBeforeDelete(t *testing.T) {
	upstream := festivalUpstream()
	handler := newTestServer(t, upstream)

	w := doJSON(t, handler, http.MethodPost, "/cart/quantity", buyerToken(),
		map[string]any{"cart_id": 12, "delta": -1})

	require.Equal(t, http.StatusConflict, w.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, true, body["confirmation_required"])
	assert.False(t, upstream.recorded("delete-cart"))

	// retry with confirmation; the delete goes through and the view is
	// rebuilt from the refetched cart
	w = doJSON(t, handler, http.MethodPost, "/cart/quantity", buyerToken(),
		map[string]any{"cart_id": 12, "delta": -1, "confirm": true})

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, upstream.recorded("delete-cart"))

	var view struct {
		GrandTotal int `json:"grand_total"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
	assert.Equal(t, 200000, view.GrandTotal)
}

func TestQuantityIncrementBeyondStockFailsFast(t *testing.T) {
	upstream := festivalUpstream()
	handler := newTestServer(t, upstream)

	w := doJSON(t, handler, http.MethodPost, "/cart/quantity", buyerToken(),
		map[string]any{"cart_id": 12, "delta": 3})

	require.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, upstream.recorded("patch-cart"))
}

func TestUpstreamRejectionSurfacedVerbatim(t *testing.T) {
	upstream := festivalUpstream()
	upstream.failPatchCart = "Stok tiket tidak mencukupi"
	handler := newTestServer(t, upstream)

	w := doJSON(t, handler, http.MethodPost, "/cart/quantity", buyerToken(),
		map[string]any{"cart_id": 11, "delta": 1})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "Stok tiket tidak mencukupi", body["error"])
}

func TestTicketQRFetchesFreshCode(t *testing.T) {
	upstream := festivalUpstream()
	handler := newTestServer(t, upstream)

	w := doJSON(t, handler, http.MethodGet, "/tickets/9/qr", buyerToken(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.True(t, upstream.recorded("get-ticket"))
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestEventsOrderedByPopularity(t *testing.T) {
	handler := newTestServer(t, festivalUpstream())

	w := doJSON(t, handler, http.MethodGet, "/events", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Events []struct {
			EventID int `json:"event_id"`
		} `json:"events"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Len(t, body.Events, 2)
	assert.Equal(t, 2, body.Events[0].EventID)
}

func TestAdminSurfaceRoleGated(t *testing.T) {
	upstream := festivalUpstream()
	handler := newTestServer(t, upstream)

	w := doJSON(t, handler, http.MethodPost, "/admin/users/4/verify", buyerToken(),
		map[string]any{"approve": true})
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := makeToken(map[string]any{"user_id": 1, "role": "admin"})
	w = doJSON(t, handler, http.MethodPost, "/admin/users/4/verify", admin,
		map[string]any{"approve": true, "comment": "documents verified"})
	require.Equal(t, http.StatusOK, w.Code)

	var decision map[string]any
	require.NoError(t, json.Unmarshal(upstream.decided["user"], &decision))
	assert.Equal(t, "approved", decision["status"])
	assert.Equal(t, "documents verified", decision["comment"])
}

func TestAdminEventVerification(t *testing.T) {
	upstream := festivalUpstream()
	handler := newTestServer(t, upstream)

	admin := makeToken(map[string]any{"user_id": 1, "role": "admin"})
	w := doJSON(t, handler, http.MethodPost, "/admin/events/3/verify", admin,
		map[string]any{"approve": false, "comment": "poster violates guidelines"})

	require.Equal(t, http.StatusOK, w.Code)
	var decision map[string]any
	require.NoError(t, json.Unmarshal(upstream.decided["event"], &decision))
	assert.Equal(t, "rejected", decision["status"])
	assert.Equal(t, "poster violates guidelines", decision["approval_comment"])
}

func TestOrganizerEventRegistration(t *testing.T) {
	upstream := festivalUpstream()
	handler := newTestServer(t, upstream)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("name", "Surabaya Art Week"))
	require.NoError(t, form.WriteField("city", "Surabaya"))
	require.NoError(t, form.WriteField("ticket_categories",
		`[{"name":"Regular","price":50000,"quota":100,"description":"","date_time_start":"","date_time_end":""}]`))
	part, err := form.CreateFormFile("image", "poster.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("poster-bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	r := httptest.NewRequest(http.MethodPost, "/organizer/events", &buf)
	r.Header.Set("Content-Type", form.FormDataContentType())
	r.Header.Set("Authorization", "Bearer "+makeToken(map[string]any{"user_id": 5, "role": "organizer"}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, upstream.recorded("create-event"))

	var name string
	require.NoError(t, json.Unmarshal(upstream.decided["create-name"], &name))
	assert.Equal(t, "Surabaya Art Week", name)

	// buyers cannot reach the organizer surface
	w = doJSON(t, handler, http.MethodPost, "/organizer/events", buyerToken(), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLoginPersistsSessionCookie(t *testing.T) {
	upstream := festivalUpstream()
	handler := newTestServer(t, upstream)

	w := doJSON(t, handler, http.MethodPost, "/login", "",
		map[string]string{"email": "buyer@example.com", "password": "secret"})

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, float64(2), body["user_id"])
	assert.Equal(t, "buyer", body["role"])

	// the issued cookie authenticates the next request
	r := httptest.NewRequest(http.MethodGet, "/cart", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	next := httptest.NewRecorder()
	handler.ServeHTTP(next, r)

	assert.Equal(t, http.StatusOK, next.Code)
}
