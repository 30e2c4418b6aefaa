package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicemgr/backend/internal/interfaces/http/dto"
)

func TestSystemHandler_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSystemHandler("1.0.0")
	r.GET("/health", h.Health)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ok", data["status"])
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSystemHandler("1.2.3")
	r.GET("/system/info", h.GetSystemInfo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/system/info", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "1.2.3", data["version"])
	assert.Contains(t, data["go_version"], "go")
}
