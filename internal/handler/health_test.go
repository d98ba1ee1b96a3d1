package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandleHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()

	HandleHealthz()(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var got HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "ok", got.Status)
}

func TestHandleReadyz(t *testing.T) {
	mockPool := new(MockPool)
	mockPool.On("Ping", mock.Anything).Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rr := httptest.NewRecorder()

	HandleReadyz(mockPool)(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
}

func TestHandleReadyz_DatabaseDown(t *testing.T) {
	mockPool := new(MockPool)
	mockPool.On("Ping", mock.Anything).Return(errors.New("connection refused"))

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rr := httptest.NewRecorder()

	HandleReadyz(mockPool)(rr, req)

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)

	var got HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "unavailable", got.Status)
}
