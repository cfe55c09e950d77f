package handlers

import (
	"iluminati/company"
	"iluminati/database"
	"iluminati/graph"
	"iluminati/lookup"
	apperrors "iluminati/server/errors"
)

// SearchRequest тело POST /api/search
type SearchRequest struct {
	Query     string   `json:"query" binding:"required" example:"Slovenská sporiteľňa"`
	Countries []string `json:"countries" example:"SK,CZ"`
}

// SearchResponse результат поиска с журналом переходов оркестратора
type SearchResponse struct {
	Companies  []company.Company `json:"companies"`
	GraphData  *graph.Graph      `json:"graphData"`
	Facets     map[string]any    `json:"facets,omitempty"`
	Total      int               `json:"total"`
	Path       lookup.Path       `json:"path"`
	Trace      lookup.Trace      `json:"trace"`
	Disclaimer string            `json:"disclaimer"`
}

// CompanyResponse карточка компании
type CompanyResponse struct {
	Company    *company.Company `json:"company"`
	RiskLevel  company.Level    `json:"riskLevel"`
	GraphData  *graph.Graph     `json:"graphData"`
	Disclaimer string           `json:"disclaimer"`
}

// GraphResponse граф для визуализации
type GraphResponse struct {
	GraphData  *graph.Graph `json:"graphData"`
	Nodes      int          `json:"nodes"`
	Edges      int          `json:"edges"`
	Stored     bool         `json:"stored"`
	Disclaimer string       `json:"disclaimer"`
}

// HistoryResponse последние поиски
type HistoryResponse struct {
	Entries []database.HistoryEntry `json:"entries"`
	Total   int                     `json:"total"`
}

// StatsResponse состояние клиента реестров и хранилища
type StatsResponse struct {
	Endpoints map[lookup.Path]lookup.EndpointStats `json:"endpoints"`
	Cache     *lookup.CacheStats                   `json:"cache,omitempty"`
	Errors    apperrors.ErrorMetrics               `json:"errors"`
	Searches  int                                  `json:"searches"`
	Nodes     int                                  `json:"nodes"`
	Edges     int                                  `json:"edges"`
}

// HealthResponse ответ /health
type HealthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Database string `json:"database"`
	Time     string `json:"time"`
}

func newGraphResponse(g *graph.Graph, stored bool) GraphResponse {
	if g == nil {
		g = graph.New()
	}
	return GraphResponse{
		GraphData:  g,
		Nodes:      len(g.Nodes),
		Edges:      len(g.Edges),
		Stored:     stored,
		Disclaimer: company.RiskDisclaimer,
	}
}
