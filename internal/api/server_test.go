package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loadwise/trailerpack/internal/model"
)

func newTestServer() *Server {
	return NewServer("test")
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func TestHealth(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestOptimize_Success(t *testing.T) {
	req := model.OptimizeRequest{
		Trailer: model.Trailer{Length: 200, Width: 150, Height: 150, Unit: model.UnitCM},
		Boxes: []model.Box{
			{SKU: "BOX-A", Length: 40, Width: 30, Height: 30, Quantity: 2, RotationAllowed: true},
		},
		Stacking:              model.DefaultStacking(),
		GlobalRotationAllowed: true,
	}

	rec := doJSON(t, newTestServer(), http.MethodPost, "/optimize", req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result model.OptimizeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Fits)
	assert.Equal(t, 2, result.Stats.TotalBoxesPlaced)
}

func TestOptimize_MeterUnits(t *testing.T) {
	req := model.OptimizeRequest{
		Trailer: model.Trailer{Length: 2, Width: 1.5, Height: 1.5, Unit: model.UnitM},
		Boxes: []model.Box{
			{SKU: "BOX-A", Length: 0.4, Width: 0.3, Height: 0.3, Quantity: 2, RotationAllowed: true},
		},
		Stacking:              model.DefaultStacking(),
		GlobalRotationAllowed: true,
	}

	rec := doJSON(t, newTestServer(), http.MethodPost, "/optimize", req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result model.OptimizeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Fits)
}

func TestOptimize_ImpossibleLoadIsNotAnError(t *testing.T) {
	req := model.OptimizeRequest{
		Trailer: model.Trailer{Length: 100, Width: 100, Height: 100, Unit: model.UnitCM},
		Boxes: []model.Box{
			{SKU: "BIG", Length: 80, Width: 80, Height: 80, Quantity: 5, RotationAllowed: true},
		},
		Stacking:              model.DefaultStacking(),
		GlobalRotationAllowed: true,
	}

	rec := doJSON(t, newTestServer(), http.MethodPost, "/optimize", req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result model.OptimizeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Fits)
	assert.NotEmpty(t, result.Unplaced)
}

func TestOptimize_OversizeBoxRejected(t *testing.T) {
	req := model.OptimizeRequest{
		Trailer: model.Trailer{Length: 100, Width: 100, Height: 100, Unit: model.UnitCM},
		Boxes: []model.Box{
			{SKU: "HUGE", Length: 150, Width: 150, Height: 150, Quantity: 1, RotationAllowed: true},
		},
		Stacking:              model.DefaultStacking(),
		GlobalRotationAllowed: true,
	}

	rec := doJSON(t, newTestServer(), http.MethodPost, "/optimize", req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
	assert.Contains(t, rec.Body.String(), "HUGE")
}

func TestOptimize_EmptyBoxListRejected(t *testing.T) {
	req := model.OptimizeRequest{
		Trailer:  model.Trailer{Length: 100, Width: 100, Height: 100, Unit: model.UnitCM},
		Boxes:    []model.Box{},
		Stacking: model.DefaultStacking(),
	}

	rec := doJSON(t, newTestServer(), http.MethodPost, "/optimize", req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestOptimize_MalformedJSON(t *testing.T) {
	httpReq := httptest.NewRequest(http.MethodPost, "/optimize", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	newTestServer().ServeHTTP(rec, httpReq)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_JSON", errorCode(t, rec))
}

func TestOptimize_StackingDisabled(t *testing.T) {
	req := model.OptimizeRequest{
		Trailer: model.Trailer{Length: 100, Width: 100, Height: 300, Unit: model.UnitCM},
		Boxes: []model.Box{
			{SKU: "A", Length: 80, Width: 80, Height: 30, Quantity: 6, RotationAllowed: true},
		},
		Stacking:              model.StackingOptions{Enabled: false, MaxLayers: 3},
		GlobalRotationAllowed: true,
	}

	rec := doJSON(t, newTestServer(), http.MethodPost, "/optimize", req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result model.OptimizeResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Stats.LayersUsed)
}

func TestListDemos(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodGet, "/demos", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var demos map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &demos))
	assert.Contains(t, demos, "small")
	assert.Contains(t, demos, "medium")
	assert.Contains(t, demos, "impossible")
}

func TestGetDemo(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodGet, "/demos/small", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var demo struct {
		Name    string        `json:"name"`
		Trailer model.Trailer `json:"trailer"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &demo))
	assert.NotEmpty(t, demo.Name)
	assert.Equal(t, 200.0, demo.Trailer.Length)
}

func TestGetDemo_UnknownID(t *testing.T) {
	rec := doJSON(t, newTestServer(), http.MethodGet, "/demos/nope", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/optimize", nil)
	rec := httptest.NewRecorder()
	newTestServer().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
