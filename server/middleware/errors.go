package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "iluminati/server/errors"
)

// HTTPError ошибка, знающая свой HTTP статус и сообщение для клиента
type HTTPError interface {
	error
	StatusCode() int
	UserMessage() string
	GetContext() string
	Unwrap() error
}

var _ HTTPError = (*apperrors.AppError)(nil)

// ErrorResponse тело ответа об ошибке
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	Timestamp string `json:"timestamp"`
}

func newErrorResponse(err HTTPError, reqID string) ErrorResponse {
	return ErrorResponse{
		Error:     http.StatusText(err.StatusCode()),
		Message:   err.UserMessage(),
		RequestID: reqID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ErrorHandler пишет ответы об ошибках, логирует их и учитывает в метриках
type ErrorHandler struct {
	logger  *slog.Logger
	metrics *apperrors.ErrorMetricsCollector
}

// NewErrorHandler создает обработчик ошибок
func NewErrorHandler(logger *slog.Logger, metrics *apperrors.ErrorMetricsCollector) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = apperrors.NewErrorMetricsCollector()
	}
	return &ErrorHandler{logger: logger, metrics: metrics}
}

// Metrics возвращает сборщик метрик ошибок
func (h *ErrorHandler) Metrics() *apperrors.ErrorMetricsCollector {
	return h.metrics
}

// Handle отвечает JSON {error, message, request_id}. Ошибки без HTTP статуса становятся 500.
func (h *ErrorHandler) Handle(c *gin.Context, err error) {
	reqID := GetRequestIDFromGin(c)

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.NewInternalError("unhandled error", err)
	}

	h.metrics.RecordError(appErr, c.FullPath(), reqID)

	attrs := []any{
		"error", appErr.Unwrap(),
		"user_message", appErr.UserMessage(),
		"context", appErr.GetContext(),
		"status_code", appErr.StatusCode(),
		"request_id", reqID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	if appErr.StatusCode() >= http.StatusInternalServerError {
		h.logger.Error("HTTP error", attrs...)
	} else {
		h.logger.Warn("HTTP error", attrs...)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.StatusCode(), newErrorResponse(appErr, reqID))
}
