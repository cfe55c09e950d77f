package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"iluminati/company"
	"iluminati/export"
	"iluminati/graph"
	apperrors "iluminati/server/errors"
)

// ExportHandler выгрузки графа и списков компаний
type ExportHandler struct {
	*BaseHandler
	exporter *export.Exporter
}

// NewExportHandler создает обработчик выгрузок
func NewExportHandler(base *BaseHandler, exporter *export.Exporter) *ExportHandler {
	if exporter == nil {
		exporter = export.NewExporter()
	}
	return &ExportHandler{BaseHandler: base, exporter: exporter}
}

// BatchExportRequest тело пакетной выгрузки компаний
type BatchExportRequest struct {
	Companies []company.Company `json:"companies"`
}

type graphWriter func(w io.Writer, g *graph.Graph) error

func (h *ExportHandler) exportGraph(c *gin.Context, format export.Format, write graphWriter) {
	body, err := decodeJSON(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	g, err := graphFromBody(body)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	err = writeAttachment(c, h.exporter.FileName(format), export.ContentType(format), func(w io.Writer) error {
		return write(w, g)
	})
	if err != nil {
		h.HandleError(c, err)
	}
}

// HandleCSV выгрузка графа в CSV
// @Summary Export grafu do CSV
// @Tags export
// @Accept json
// @Produce text/csv
// @Param graph body graph.Graph true "Graf"
// @Success 200 {file} file
// @Failure 400 {object} middleware.ErrorResponse
// @Router /export/csv [post]
func (h *ExportHandler) HandleCSV(c *gin.Context) {
	h.exportGraph(c, export.FormatCSV, h.exporter.WriteCSV)
}

// HandleJSON выгрузка графа в JSON
// @Summary Export grafu do JSON
// @Tags export
// @Accept json
// @Produce json
// @Param graph body graph.Graph true "Graf"
// @Success 200 {file} file
// @Failure 400 {object} middleware.ErrorResponse
// @Router /export/json [post]
func (h *ExportHandler) HandleJSON(c *gin.Context) {
	h.exportGraph(c, export.FormatJSON, h.exporter.WriteJSON)
}

// HandleExcel выгрузка графа в XLSX
// @Summary Export grafu do Excelu
// @Tags export
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param graph body graph.Graph true "Graf"
// @Success 200 {file} file
// @Failure 400 {object} middleware.ErrorResponse
// @Router /export/excel [post]
func (h *ExportHandler) HandleExcel(c *gin.Context) {
	h.exportGraph(c, export.FormatExcel, h.exporter.WriteExcel)
}

// HandleBatchExcel выгрузка списка компаний в XLSX
// @Summary Hromadný export firiem
// @Tags export
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param request body BatchExportRequest true "Firmy"
// @Success 200 {file} file
// @Failure 400 {object} middleware.ErrorResponse
// @Router /export/batch-excel [post]
func (h *ExportHandler) HandleBatchExcel(c *gin.Context) {
	var req BatchExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleError(c, apperrors.NewValidationError("Neplatný zoznam firiem", err))
		return
	}

	err := writeAttachment(c, h.exporter.BatchFileName(), export.ContentType(export.FormatExcel), func(w io.Writer) error {
		return h.exporter.WriteCompaniesExcel(w, req.Companies)
	})
	if err != nil {
		h.HandleError(c, err)
	}
}

// HandleReport печатный HTML-отчет
// @Summary Tlačová správa
// @Tags export
// @Accept json
// @Produce html
// @Param report body export.Report true "Firmy a graf"
// @Success 200 {string} string "HTML"
// @Failure 400 {object} middleware.ErrorResponse
// @Router /export/report [post]
func (h *ExportHandler) HandleReport(c *gin.Context) {
	var report export.Report
	if err := c.ShouldBindJSON(&report); err != nil {
		h.HandleError(c, apperrors.NewValidationError("Neplatné dáta správy", err))
		return
	}
	if err := report.Graph.Validate(); err != nil {
		h.HandleError(c, err)
		return
	}

	err := writeAttachment(c, h.exporter.FileName(export.FormatReport), export.ContentType(export.FormatReport), func(w io.Writer) error {
		return h.exporter.WriteReport(w, report)
	})
	if err != nil {
		h.HandleError(c, err)
	}
}
