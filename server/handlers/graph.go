package handlers

import (
	"github.com/gin-gonic/gin"

	"iluminati/company"
	"iluminati/database"
	"iluminati/graph"
	apperrors "iluminati/server/errors"
)

// GraphHandler проекция сырых записей в граф и чтение сохраненного графа
type GraphHandler struct {
	*BaseHandler
	normalizer *company.Normalizer
	graphs     *database.GraphStore
}

// NewGraphHandler создает обработчик графа
func NewGraphHandler(base *BaseHandler, normalizer *company.Normalizer, db *database.DB) *GraphHandler {
	if normalizer == nil {
		normalizer = company.NewNormalizer()
	}
	return &GraphHandler{BaseHandler: base, normalizer: normalizer, graphs: db.Graphs()}
}

// HandleProject нормализует записи из тела и строит граф связей.
// Тело: {"company": {...}} или {"companies": [{...}, ...]}; ?store=true сохраняет граф.
// @Summary Projekcia grafu
// @Tags graph
// @Accept json
// @Produce json
// @Param store query bool false "Uložiť graf"
// @Success 200 {object} GraphResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /graph/project [post]
func (h *GraphHandler) HandleProject(c *gin.Context) {
	body, err := decodeJSON(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	raws := rawCompanies(body)
	if len(raws) == 0 {
		h.HandleError(c, apperrors.NewValidationError("Očakáva sa pole company alebo companies", nil))
		return
	}

	companies := make([]company.Company, 0, len(raws))
	for _, raw := range raws {
		if normalized := h.normalizer.Normalize(raw); normalized != nil {
			companies = append(companies, *normalized)
		}
	}
	g := graph.FromCompanies(companies)

	stored := false
	if c.Query("store") == "true" && !g.IsEmpty() {
		if err := h.graphs.Save(c.Request.Context(), g); err != nil {
			h.HandleError(c, err)
			return
		}
		stored = true
	}

	h.SendJSON(c, newGraphResponse(g, stored))
}

// HandleNeighbourhood узел и его непосредственные соседи из хранилища графа
// @Summary Okolie uzla
// @Tags graph
// @Produce json
// @Param id path string true "ID uzla, napr. company-12345678"
// @Success 200 {object} GraphResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /graph/{id} [get]
func (h *GraphHandler) HandleNeighbourhood(c *gin.Context) {
	g, err := h.graphs.Neighbourhood(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SendJSON(c, newGraphResponse(g, true))
}

func rawCompanies(body map[string]any) []map[string]any {
	if one, ok := body["company"].(map[string]any); ok {
		return []map[string]any{one}
	}
	items, _ := body["companies"].([]any)
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
