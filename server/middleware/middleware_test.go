package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "iluminati/server/errors"
)

func setupRouter(logger *slog.Logger, metrics *apperrors.ErrorMetricsCollector) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinRequestIDMiddleware())
	router.Use(GinCORSMiddleware())
	router.Use(GinSecurityHeadersMiddleware())
	router.Use(GinLoggerMiddleware(logger))
	router.Use(GinRecoveryMiddleware(logger, metrics))
	return router
}

func TestRequestID_Generated(t *testing.T) {
	router := setupRouter(slog.New(slog.NewJSONHandler(io.Discard, nil)), nil)
	var seen string
	router.GET("/ping", func(c *gin.Context) {
		seen = GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	assert.Len(t, seen, 36)
}

func TestRequestID_Propagated(t *testing.T) {
	router := setupRouter(nil, nil)
	var fromGin string
	router.GET("/ping", func(c *gin.Context) {
		fromGin = GetRequestIDFromGin(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", fromGin)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestGetRequestID_Empty(t *testing.T) {
	assert.Empty(t, GetRequestID(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
	assert.Empty(t, GetRequestIDFromGin(nil))
}

func TestCORS_Preflight(t *testing.T) {
	router := setupRouter(nil, nil)
	router.POST("/api/search", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/search", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestSecurityHeaders(t *testing.T) {
	router := setupRouter(nil, nil)
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestLogger_HealthIsQuiet(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelInfo}))
	router := setupRouter(logger, nil)
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, logs.String())

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/x", nil))
	assert.Contains(t, logs.String(), `"path":"/api/x"`)
}

func TestRecovery_ReturnsJSON(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	metrics := apperrors.NewErrorMetricsCollector()
	router := setupRouter(logger, metrics)
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.RequestID)
	assert.NotContains(t, body.Message, "boom")
	assert.Contains(t, logs.String(), "Panic recovered")
	assert.EqualValues(t, 1, metrics.Snapshot().TotalErrors)
}

func TestErrorHandler_AppError(t *testing.T) {
	h := NewErrorHandler(slog.New(slog.NewJSONHandler(io.Discard, nil)), nil)
	router := setupRouter(nil, nil)
	router.GET("/api/company/:country/:ico", func(c *gin.Context) {
		h.Handle(c, apperrors.NewNotFoundError("Firma nebola nájdená", nil))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/company/sk/1", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Not Found", body.Error)
	assert.Equal(t, "Firma nebola nájdená", body.Message)
	assert.Equal(t, w.Header().Get(RequestIDHeader), body.RequestID)

	snap := h.Metrics().Snapshot()
	assert.EqualValues(t, 1, snap.ErrorsByEndpoint["/api/company/:country/:ico"])
}

func TestErrorHandler_PlainErrorBecomesInternal(t *testing.T) {
	h := NewErrorHandler(slog.New(slog.NewJSONHandler(io.Discard, nil)), nil)
	router := setupRouter(nil, nil)
	router.GET("/x", func(c *gin.Context) {
		h.Handle(c, errors.New("sql: database is closed"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "database is closed")
}
