package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/healthz", Health)
	router.HEAD("/healthz", Health)
	router.OPTIONS("/healthz", Health)

	tests := []struct {
		name           string
		method         string
		expectedStatus int
	}{
		{name: "GET returns 200 with body", method: http.MethodGet, expectedStatus: http.StatusOK},
		{name: "HEAD returns 200", method: http.MethodHead, expectedStatus: http.StatusOK},
		{name: "OPTIONS returns 204", method: http.MethodOptions, expectedStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, "/healthz", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
		})
	}
}
