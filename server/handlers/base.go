package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"iluminati/server/middleware"
)

// BaseHandler общие зависимости обработчиков: логгер и ответ об ошибке
type BaseHandler struct {
	logger *slog.Logger
	errors *middleware.ErrorHandler
}

// NewBaseHandler создает базовый обработчик
func NewBaseHandler(logger *slog.Logger, errorHandler *middleware.ErrorHandler) *BaseHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if errorHandler == nil {
		errorHandler = middleware.NewErrorHandler(logger, nil)
	}
	return &BaseHandler{logger: logger, errors: errorHandler}
}

// HandleError переводит доменную ошибку в HTTP-ответ
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	h.errors.Handle(c, mapDomainError(err))
}

// SendJSON отправляет успешный JSON-ответ
func (h *BaseHandler) SendJSON(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Logger возвращает логгер с request ID текущего запроса
func (h *BaseHandler) Logger(c *gin.Context) *slog.Logger {
	return h.logger.With("request_id", middleware.GetRequestIDFromGin(c))
}
