package pos

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupRouter(service *Service) *mux.Router {
	handlers := NewHandlers(service)
	router := mux.NewRouter()
	router.Use(RequestIDMiddleware)
	handlers.RegisterRoutes(router)
	return router
}

func TestGetCatalog(t *testing.T) {
	service, _ := setupService()
	router := setupRouter(service)

	req := httptest.NewRequest("GET", "/catalog", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 6)
	assert.Equal(t, "Aspirin", items[0]["name"])
}

func TestLookupPatient_HTTP(t *testing.T) {
	service, _ := setupService()
	router := setupRouter(service)

	body := bytes.NewBufferString(`{"assured_id": "AID-12345"}`)
	req := httptest.NewRequest("POST", "/lookup", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "John Doe")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestLookupPatient_EmptyID(t *testing.T) {
	service, _ := setupService()
	router := setupRouter(service)

	body := bytes.NewBufferString(`{"assured_id": ""}`)
	req := httptest.NewRequest("POST", "/lookup", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestPreviewReceipt_HTTP(t *testing.T) {
	service, _ := setupService()
	router := setupRouter(service)

	body := bytes.NewBufferString(`{"patient_name": "John Doe", "drug_ids": ["1", "2"]}`)
	req := httptest.NewRequest("POST", "/receipts/preview", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp previewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Meta.ReceiptID)
	assert.NotEmpty(t, resp.Document)
	assert.Contains(t, resp.Meta.ReceiptID, "RCP-")
}

func TestPreviewReceipt_EmptySelection(t *testing.T) {
	service, _ := setupService()
	router := setupRouter(service)

	body := bytes.NewBufferString(`{"patient_name": "John Doe", "drug_ids": []}`)
	req := httptest.NewRequest("POST", "/receipts/preview", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPrintReceipt_HTTP(t *testing.T) {
	service, mockShare := setupService()
	router := setupRouter(service)

	mockShare.On("Share", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	body := bytes.NewBufferString(`{"patient_name": "John Doe", "drug_ids": ["1", "2"]}`)
	req := httptest.NewRequest("POST", "/receipts/print", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp printResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Delivered)
	assert.Equal(t, "share", resp.Path)
	assert.NotEmpty(t, resp.Document)
	mockShare.AssertExpectations(t)
}

func TestPrintReceipt_InvalidBody(t *testing.T) {
	service, _ := setupService()
	router := setupRouter(service)

	body := bytes.NewBufferString(`not json`)
	req := httptest.NewRequest("POST", "/receipts/print", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
