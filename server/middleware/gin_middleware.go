package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	apperrors "iluminati/server/errors"
)

// GinCORSMiddleware добавляет CORS заголовки; фронтенд ILUMINATI живет на другом порту
func GinCORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With, "+RequestIDHeader)
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Expose-Headers", "Content-Disposition, "+RequestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// GinSecurityHeadersMiddleware добавляет заголовки безопасности
func GinSecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// GinGzipMiddleware включает сжатие ответов; XLSX уже zip-архив и не сжимается повторно
func GinGzipMiddleware() gin.HandlerFunc {
	return gzip.Gzip(gzip.BestSpeed, gzip.WithExcludedPaths([]string{
		"/api/export/excel",
		"/api/export/batch-excel",
	}))
}

// quietPaths служебные эндпоинты, которые логируются только на уровне Debug
var quietPaths = map[string]bool{
	"/health":      true,
	"/favicon.ico": true,
}

// GinLoggerMiddleware пишет по строке slog на каждый запрос
func GinLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status_code", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"body_size", c.Writer.Size(),
			"request_id", GetRequestIDFromGin(c),
		}
		if err := c.Errors.Last(); err != nil {
			attrs = append(attrs, "error", err.Error())
		}

		switch {
		case quietPaths[c.Request.URL.Path] && status < http.StatusInternalServerError:
			logger.Debug("HTTP request", attrs...)
		case status >= http.StatusInternalServerError:
			logger.Error("HTTP request", attrs...)
		case status >= http.StatusBadRequest:
			logger.Warn("HTTP request", attrs...)
		default:
			logger.Info("HTTP request", attrs...)
		}
	}
}

// GinRecoveryMiddleware перехватывает панику обработчика и отвечает JSON 500
func GinRecoveryMiddleware(logger *slog.Logger, metrics *apperrors.ErrorMetricsCollector) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				reqID := GetRequestIDFromGin(c)
				logger.Error("Panic recovered",
					"panic", fmt.Sprint(r),
					"stack_trace", string(debug.Stack()),
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"request_id", reqID,
				)

				appErr := apperrors.NewInternalError("panic", fmt.Errorf("%v", r))
				if metrics != nil {
					metrics.RecordError(appErr, c.FullPath(), reqID)
				}
				c.AbortWithStatusJSON(appErr.Code, newErrorResponse(appErr, reqID))
			}
		}()

		c.Next()
	}
}
