package handlers

import (
	"github.com/gin-gonic/gin"

	"iluminati/company"
	"iluminati/graph"
	apperrors "iluminati/server/errors"
)

// CompanyHandler карточка компании по IČO
type CompanyHandler struct {
	*BaseHandler
	searcher Searcher
}

// NewCompanyHandler создает обработчик карточки компании
func NewCompanyHandler(base *BaseHandler, searcher Searcher) *CompanyHandler {
	return &CompanyHandler{BaseHandler: base, searcher: searcher}
}

// HandleGetCompany загружает компанию из v2 API
// @Summary Detail firmy
// @Tags company
// @Produce json
// @Param country path string true "Kód krajiny" example(SK)
// @Param ico path string true "IČO"
// @Success 200 {object} CompanyResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /company/{country}/{ico} [get]
func (h *CompanyHandler) HandleGetCompany(c *gin.Context) {
	ico := c.Param("ico")
	if !company.IsValidICO(ico) {
		h.HandleError(c, apperrors.NewValidationError("Neplatné IČO", nil).WithContext(ico))
		return
	}
	country := company.NormalizeCountry(c.Param("country"))

	found := h.searcher.LookupByICO(c.Request.Context(), ico, country)
	if found == nil {
		h.HandleError(c, apperrors.NewNotFoundError("Firma nebola nájdená", nil).
			WithContext(country+"/"+company.FormatICO(ico)))
		return
	}

	h.SendJSON(c, CompanyResponse{
		Company:    found,
		RiskLevel:  company.RiskLevel(found.RiskScore),
		GraphData:  graph.FromCompany(found),
		Disclaimer: company.RiskDisclaimer,
	})
}
