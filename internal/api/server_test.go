package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kitchenops/internal/kitchen"
	"kitchenops/internal/monitoring"
	"kitchenops/internal/store"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(secret string) *Server {
	gin.SetMode(gin.TestMode)
	st := store.NewMemoryStore(store.DemoDataset())
	service := kitchen.NewService(st, kitchen.DefaultConfig())
	return NewServer(service, monitoring.NewMonitor(), secret)
}

func doJSON(t *testing.T, server *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestHealthEndpoint(t *testing.T) {
	rec := doJSON(t, newTestServer(""), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStationQueueReturnsEnvelope(t *testing.T) {
	rec := doJSON(t, newTestServer(""), http.MethodGet, "/api/v1/stations/station-maki/queue", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "success", envelope["status"])
	content := envelope["content"].([]interface{})
	require.NotEmpty(t, content)
}

func TestGeneratePlanValidationIs400(t *testing.T) {
	rec := doJSON(t, newTestServer(""), http.MethodPost, "/api/v1/plans", map[string]string{
		"location_id":  "loc-hq",
		"window_start": "2025-06-01T20:00:00Z",
		"window_end":   "2025-06-01T18:00:00Z",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Contains(t, envelope["error"], "later than")
}

func TestGenerateThenFetchPlan(t *testing.T) {
	server := newTestServer("")
	rec := doJSON(t, server, http.MethodPost, "/api/v1/plans", map[string]string{
		"location_id":  "loc-hq",
		"window_start": "2030-01-01T18:00:00Z",
		"window_end":   "2030-01-01T22:00:00Z",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "success", envelope["status"])

	var planID string
	for _, raw := range envelope["content"].([]interface{}) {
		item := raw.(map[string]interface{})
		if payload, ok := item["json"].(map[string]interface{}); ok {
			planID, _ = payload["plan_id"].(string)
		}
	}
	require.NotEmpty(t, planID)

	rec = doJSON(t, server, http.MethodGet, "/api/v1/plans/"+planID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", decodeEnvelope(t, rec)["status"])
}

func TestUnknownTicketIsErrorEnvelopeNot404(t *testing.T) {
	rec := doJSON(t, newTestServer(""), http.MethodPost, "/api/v1/tickets/missing/start", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "error", envelope["status"])
}

func TestTicketLifecycleOverHTTP(t *testing.T) {
	server := newTestServer("")

	rec := doJSON(t, server, http.MethodPost, "/api/v1/tickets/ticket-late/start", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", decodeEnvelope(t, rec)["status"])

	rec = doJSON(t, server, http.MethodPost, "/api/v1/tickets/ticket-late/pass", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", decodeEnvelope(t, rec)["status"])

	// Terminal: a second pass reports an error envelope.
	rec = doJSON(t, server, http.MethodPost, "/api/v1/tickets/ticket-late/pass", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "error", decodeEnvelope(t, rec)["status"])
}

func TestDraftPurchaseOrderOverHTTP(t *testing.T) {
	rec := doJSON(t, newTestServer(""), http.MethodPost, "/api/v1/purchase-orders", map[string]string{
		"location_id": "loc-hq",
		"supplier_id": "sup-saba",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", decodeEnvelope(t, rec)["status"])
}

func TestWasteLogRequiresFields(t *testing.T) {
	rec := doJSON(t, newTestServer(""), http.MethodPost, "/api/v1/waste", map[string]interface{}{
		"location_id": "loc-hq",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	server := newTestServer("test-secret")

	rec := doJSON(t, server, http.MethodGet, "/api/v1/stations/station-maki/queue", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Health stays open.
	rec = doJSON(t, server, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareAcceptsSignedToken(t *testing.T) {
	server := newTestServer("test-secret")

	token := jwt.New(jwt.SigningMethodHS256)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stations/station-maki/queue", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareRejectsWrongKey(t *testing.T) {
	server := newTestServer("test-secret")

	token := jwt.New(jwt.SigningMethodHS256)
	signed, err := token.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stations/station-maki/queue", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
