package middleware

import (
	"classroom_backend/pkg/logger"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func setup(t *testing.T) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(), Recovery())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r, logs
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		path  string
		code  int
		level zapcore.Level
	}{
		{path: "/ok", code: http.StatusOK, level: zapcore.DebugLevel},
		{path: "/missing", code: http.StatusNotFound, level: zapcore.WarnLevel},
		{path: "/panic", code: http.StatusInternalServerError, level: zapcore.ErrorLevel},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			r, logs := setup(t)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.code, w.Code)

			entries := logs.FilterMessage("request").All()
			require.Len(t, entries, 1)
			assert.Equal(t, tc.level, entries[0].Level)
			assert.Equal(t, tc.path, entries[0].ContextMap()["path"])
		})
	}
}

func TestRecovery(t *testing.T) {
	r, logs := setup(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}
