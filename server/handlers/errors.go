package handlers

import (
	"errors"

	"iluminati/database"
	"iluminati/export"
	"iluminati/graph"
	"iluminati/importer"
	apperrors "iluminati/server/errors"
)

// mapDomainError сопоставляет сигнальные ошибки пакетов с HTTP-ошибками
func mapDomainError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, database.ErrNotFound):
		return apperrors.NewNotFoundError("Záznam nebol nájdený", err)
	case errors.Is(err, importer.ErrUnsupportedFormat):
		return apperrors.NewValidationError("Nepodporovaný formát súboru. Povolené sú CSV, XLSX a JSON", err)
	case errors.Is(err, importer.ErrFileTooLarge):
		return apperrors.NewPayloadTooLargeError("Súbor je príliš veľký", err)
	case errors.Is(err, export.ErrNoData):
		return apperrors.NewValidationError("Žiadne dáta na export", err)
	case errors.Is(err, graph.ErrDanglingEdge),
		errors.Is(err, graph.ErrDuplicateNode),
		errors.Is(err, graph.ErrEmptyNodeID):
		return apperrors.NewValidationError("Neplatný graf", err)
	default:
		return apperrors.NewInternalError("unexpected error", err)
	}
}
