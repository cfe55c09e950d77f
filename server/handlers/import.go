package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"iluminati/database"
	"iluminati/importer"
	apperrors "iluminati/server/errors"
)

// ImportHandler загрузка CSV/XLSX/JSON в граф
type ImportHandler struct {
	*BaseHandler
	graphs *database.GraphStore
}

// NewImportHandler создает обработчик импорта
func NewImportHandler(base *BaseHandler, db *database.DB) *ImportHandler {
	return &ImportHandler{BaseHandler: base, graphs: db.Graphs()}
}

// HandleImport разбирает загруженный файл; store=true сохраняет граф в хранилище
// @Summary Import súboru
// @Description CSV (čiarka alebo bodkočiarka, UTF-8 alebo Windows-1250), XLSX alebo JSON.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Súbor"
// @Param store formData bool false "Uložiť graf"
// @Success 200 {object} GraphResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 413 {object} middleware.ErrorResponse
// @Router /import [post]
func (h *ImportHandler) HandleImport(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, importer.MaxFileSize+1<<20)

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.HandleError(c, apperrors.NewPayloadTooLargeError("Súbor je príliš veľký", err))
			return
		}
		h.HandleError(c, apperrors.NewValidationError("Chýba súbor v poli file", err))
		return
	}
	if _, err := importer.DetectFormat(header.Filename); err != nil {
		h.HandleError(c, err)
		return
	}

	f, err := header.Open()
	if err != nil {
		h.HandleError(c, apperrors.NewInternalError("open uploaded file", err))
		return
	}
	defer f.Close()

	g, err := importer.Parse(header.Filename, f)
	if err != nil {
		h.HandleError(c, mapImportError(err))
		return
	}

	stored := false
	if c.PostForm("store") == "true" && !g.IsEmpty() {
		if err := h.graphs.Save(c.Request.Context(), g); err != nil {
			h.HandleError(c, err)
			return
		}
		stored = true
	}

	h.Logger(c).Info("file imported",
		"file", header.Filename,
		"nodes", len(g.Nodes),
		"edges", len(g.Edges),
		"stored", stored,
	)
	h.SendJSON(c, newGraphResponse(g, stored))
}

// mapImportError ошибки разбора содержимого файла относятся к клиенту
func mapImportError(err error) error {
	mapped := mapDomainError(err)
	var appErr *apperrors.AppError
	if errors.As(mapped, &appErr) && appErr.Code == http.StatusInternalServerError {
		return apperrors.NewValidationError("Súbor sa nepodarilo spracovať", err)
	}
	return mapped
}
