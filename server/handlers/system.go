package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"iluminati/database"
	apperrors "iluminati/server/errors"
)

// SystemHandler health check и статистика
type SystemHandler struct {
	*BaseHandler
	db       *database.DB
	searcher Searcher
	metrics  *apperrors.ErrorMetricsCollector
}

// NewSystemHandler создает обработчик служебных эндпоинтов
func NewSystemHandler(base *BaseHandler, db *database.DB, searcher Searcher) *SystemHandler {
	return &SystemHandler{BaseHandler: base, db: db, searcher: searcher, metrics: base.errors.Metrics()}
}

// HandleHealth проверка живости; 503, если база недоступна
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *SystemHandler) HandleHealth(c *gin.Context) {
	resp := HealthResponse{
		Status:   "ok",
		Service:  "iluminati",
		Database: "ok",
		Time:     time.Now().UTC().Format(time.RFC3339),
	}
	status := http.StatusOK
	if err := h.db.Ping(); err != nil {
		h.Logger(c).Error("database ping failed", "error", err)
		resp.Status = "degraded"
		resp.Database = "unavailable"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

// HandleLookupStats статистика путей v2/legacy, кэша, ошибок API и хранилища
// @Summary Štatistiky vyhľadávania
// @Tags system
// @Produce json
// @Success 200 {object} StatsResponse
// @Router /lookup/stats [get]
func (h *SystemHandler) HandleLookupStats(c *gin.Context) {
	ctx := c.Request.Context()

	searches, err := h.db.History().Count(ctx)
	if err != nil {
		h.HandleError(c, apperrors.NewInternalError("count search history", err))
		return
	}
	nodes, edges, err := h.db.Graphs().Counts(ctx)
	if err != nil {
		h.HandleError(c, apperrors.NewInternalError("count graph", err))
		return
	}

	h.SendJSON(c, StatsResponse{
		Endpoints: h.searcher.Stats(),
		Cache:     h.searcher.CacheStats(),
		Errors:    h.metrics.Snapshot(),
		Searches:  searches,
		Nodes:     nodes,
		Edges:     edges,
	})
}
