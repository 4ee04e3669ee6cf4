package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestServer_Metrics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := NewMonitor()
	m.CheckedOut(250)
	server := NewServer(":0", "/metrics", m)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/metrics", nil)
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "kiosk_checkouts_total 1")
	assert.Contains(t, w.Body.String(), "kiosk_revenue_total 250")
}

func TestServer_Healthz(t *testing.T) {
	gin.SetMode(gin.TestMode)

	server := NewServer(":0", "", NewMonitor())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/healthz", nil)
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "ok", response["status"])
}
