// Package export выгружает графы и списки компаний в CSV, JSON, XLSX и печатный HTML-отчет.
// Каждая выгрузка несет предупреждение о характере рискового скора.
package export

import (
	"errors"
	"fmt"
	"time"

	"iluminati/graph"
)

// Format формат экспорта
type Format string

const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatExcel  Format = "xlsx"
	FormatReport Format = "html"
)

// ErrNoData нечего выгружать
var ErrNoData = errors.New("žiadne dáta na export")

const (
	filePrefix      = "iluminati-export"
	batchFilePrefix = "iluminati-batch-export"
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// Exporter формирует выгрузки; часы задают дату в именах файлов и метках времени
type Exporter struct {
	now func() time.Time
}

// NewExporter создает экспортер с системными часами
func NewExporter() *Exporter {
	return &Exporter{now: time.Now}
}

// FileName имя файла вида iluminati-export-YYYY-MM-DD.<ext>
func (e *Exporter) FileName(format Format) string {
	return fmt.Sprintf("%s-%s.%s", filePrefix, e.now().UTC().Format(dateLayout), format)
}

// BatchFileName имя файла пакетной выгрузки компаний
func (e *Exporter) BatchFileName() string {
	return fmt.Sprintf("%s-%s.%s", batchFilePrefix, e.now().UTC().Format(dateLayout), FormatExcel)
}

// ContentType MIME-тип формата
func ContentType(format Format) string {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatReport:
		return "text/html; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

func checkGraph(g *graph.Graph) error {
	if g == nil || g.IsEmpty() {
		return ErrNoData
	}
	return nil
}
