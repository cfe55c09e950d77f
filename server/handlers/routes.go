package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers все обработчики API
type Handlers struct {
	Search  *SearchHandler
	Company *CompanyHandler
	Graph   *GraphHandler
	Export  *ExportHandler
	Import  *ImportHandler
	System  *SystemHandler
}

// Route один маршрут API
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// Routes перечисляет маршруты группы /api
func (h *Handlers) Routes() []Route {
	return []Route{
		{http.MethodPost, "/search", h.Search.HandleSearch},
		{http.MethodGet, "/search", h.Search.HandleSearchQuery},
		{http.MethodGet, "/search/history", h.Search.HandleHistory},
		{http.MethodGet, "/company/:country/:ico", h.Company.HandleGetCompany},
		{http.MethodPost, "/graph/project", h.Graph.HandleProject},
		{http.MethodGet, "/graph/:id", h.Graph.HandleNeighbourhood},
		{http.MethodPost, "/export/csv", h.Export.HandleCSV},
		{http.MethodPost, "/export/json", h.Export.HandleJSON},
		{http.MethodPost, "/export/excel", h.Export.HandleExcel},
		{http.MethodPost, "/export/batch-excel", h.Export.HandleBatchExcel},
		{http.MethodPost, "/export/report", h.Export.HandleReport},
		{http.MethodPost, "/import", h.Import.HandleImport},
		{http.MethodGet, "/lookup/stats", h.System.HandleLookupStats},
	}
}

// RegisterRoutes регистрирует /health и группу /api
func (h *Handlers) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.System.HandleHealth)

	api := router.Group("/api")
	for _, r := range h.Routes() {
		api.Handle(r.Method, r.Path, r.Handler)
	}
}
