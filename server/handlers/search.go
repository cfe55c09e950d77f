package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"iluminati/company"
	"iluminati/database"
	"iluminati/graph"
	"iluminati/lookup"
	apperrors "iluminati/server/errors"
	"iluminati/server/middleware"
)

// Searcher источник поиска компаний; реализуется lookup.Client
type Searcher interface {
	SearchTrace(ctx context.Context, query string, countries []string) (*lookup.Result, lookup.Trace)
	LookupByICO(ctx context.Context, ico, country string) *company.Company
	Stats() map[lookup.Path]lookup.EndpointStats
	CacheStats() *lookup.CacheStats
}

// SearchHandler обработчик поиска компаний и истории поиска
type SearchHandler struct {
	*BaseHandler
	searcher Searcher
	history  *database.History
	graphs   *database.GraphStore
	now      func() time.Time
}

// NewSearchHandler создает обработчик поиска
func NewSearchHandler(base *BaseHandler, searcher Searcher, db *database.DB) *SearchHandler {
	return &SearchHandler{
		BaseHandler: base,
		searcher:    searcher,
		history:     db.History(),
		graphs:      db.Graphs(),
		now:         time.Now,
	}
}

// HandleSearch поиск по телу запроса
// @Summary Vyhľadať firmy
// @Description Hľadá v registroch cez v2 API, pri zlyhaní cez legacy API. Odpoveď obsahuje aj priebeh vyhľadávania.
// @Tags search
// @Accept json
// @Produce json
// @Param request body SearchRequest true "Dotaz a krajiny"
// @Success 200 {object} SearchResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /search [post]
func (h *SearchHandler) HandleSearch(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleError(c, apperrors.NewValidationError("Chýba vyhľadávací dotaz", err))
		return
	}
	h.search(c, req.Query, req.Countries)
}

// HandleSearchQuery поиск по параметрам строки запроса
// @Summary Vyhľadať firmy (GET)
// @Tags search
// @Produce json
// @Param q query string true "Dotaz"
// @Param country query []string false "Kódy krajín" collectionFormat(multi)
// @Success 200 {object} SearchResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /search [get]
func (h *SearchHandler) HandleSearchQuery(c *gin.Context) {
	h.search(c, c.Query("q"), queryCountries(c))
}

func (h *SearchHandler) search(c *gin.Context, query string, countries []string) {
	if strings.TrimSpace(query) == "" {
		h.HandleError(c, apperrors.NewValidationError("Chýba vyhľadávací dotaz", nil))
		return
	}

	ctx := c.Request.Context()
	started := h.now()
	res, trace := h.searcher.SearchTrace(ctx, query, countries)
	elapsed := h.now().Sub(started)

	h.record(c, query, countries, res, elapsed)

	if res == nil {
		h.HandleError(c, apperrors.NewBadGatewayError("Vyhľadávanie v registroch zlyhalo", nil).
			WithContext(string(trace.Final())))
		return
	}

	h.persistGraph(c, res.Graph)

	h.SendJSON(c, SearchResponse{
		Companies:  res.Companies,
		GraphData:  res.Graph,
		Facets:     res.Facets,
		Total:      res.Total,
		Path:       res.Path,
		Trace:      trace,
		Disclaimer: company.RiskDisclaimer,
	})
}

// record пишет поиск в историю; сбой журнала не ломает ответ
func (h *SearchHandler) record(c *gin.Context, query string, countries []string, res *lookup.Result, elapsed time.Duration) {
	entry := database.HistoryEntry{
		Query:      query,
		Countries:  countries,
		DurationMs: elapsed.Milliseconds(),
		RequestID:  middleware.GetRequestIDFromGin(c),
	}
	if res != nil {
		entry.Path = string(res.Path)
		entry.ResultCount = len(res.Companies)
	}
	if _, err := h.history.Record(c.Request.Context(), entry); err != nil {
		h.Logger(c).Warn("failed to record search history", "error", err)
	}
}

func (h *SearchHandler) persistGraph(c *gin.Context, g *graph.Graph) {
	if g.IsEmpty() {
		return
	}
	if err := h.graphs.Save(c.Request.Context(), g); err != nil {
		h.Logger(c).Warn("failed to store search graph", "error", err, "nodes", len(g.Nodes))
	}
}

// HandleHistory последние выполненные поиски
// @Summary História vyhľadávania
// @Tags search
// @Produce json
// @Param limit query int false "Počet záznamov" default(50)
// @Success 200 {object} HistoryResponse
// @Router /search/history [get]
func (h *SearchHandler) HandleHistory(c *gin.Context) {
	ctx := c.Request.Context()
	entries, err := h.history.Recent(ctx, queryInt(c, "limit", 0))
	if err != nil {
		h.HandleError(c, apperrors.NewInternalError("load search history", err))
		return
	}
	total, err := h.history.Count(ctx)
	if err != nil {
		h.HandleError(c, apperrors.NewInternalError("count search history", err))
		return
	}
	h.SendJSON(c, HistoryResponse{Entries: entries, Total: total})
}
