package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"iluminati/company"
	"iluminati/graph"
)

const (
	sheetNodes   = "Výsledky vyhľadávania"
	sheetEdges   = "Vzťahy"
	sheetSummary = "Súhrn"
	sheetBatch   = "Batch Export"

	headerColor = "#0B4EA2"
	maxColWidth = 50.0
)

var (
	excelNodeHeader  = []any{"Typ", "ID", "Názov", "Krajina", "Risk Score", "Detaily", "Dátum exportu"}
	excelEdgeHeader  = []any{"Source", "Target", "Typ vzťahu"}
	excelBatchHeader = []any{
		"IČO/KRS/Adószám", "Názov", "Krajina", "Adresa", "PSČ", "Okres", "Kraj",
		"DIČ", "IČ DPH", "Právna forma", "Risk Score", "Riziko", "Virtuálne sídlo",
		"Dátum vzniku", "Stav", "Konatelia", "Spoločníci", "Zdroj", "Aktualizované",
	}
)

// sheetWriter пишет строки подряд, запоминая ширину колонок
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	row    int
	widths map[int]float64
}

func newSheetWriter(f *excelize.File, sheet string) *sheetWriter {
	return &sheetWriter{f: f, sheet: sheet, widths: make(map[int]float64)}
}

func (s *sheetWriter) append(values ...any) error {
	s.row++
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return err
	}
	if err := s.f.SetSheetRow(s.sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", s.row, err)
	}
	for i, v := range values {
		w := float64(len([]rune(fmt.Sprint(v)))) + 2
		if w > s.widths[i] {
			s.widths[i] = w
		}
	}
	return nil
}

func (s *sheetWriter) styleRow(style int, columns int) error {
	first, _ := excelize.CoordinatesToCellName(1, s.row)
	last, _ := excelize.CoordinatesToCellName(columns, s.row)
	return s.f.SetCellStyle(s.sheet, first, last, style)
}

// fitColumns выставляет ширину колонок по содержимому, не шире maxColWidth
func (s *sheetWriter) fitColumns() error {
	for i, w := range s.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if w > maxColWidth {
			w = maxColWidth
		}
		if err := s.f.SetColWidth(s.sheet, col, col, w); err != nil {
			return err
		}
	}
	return nil
}

func headerStyle(f *excelize.File) (int, error) {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create header style: %w", err)
	}
	return style, nil
}

// WriteExcel выгружает граф в книгу с листами узлов, связей и сводки
func (e *Exporter) WriteExcel(w io.Writer, g *graph.Graph) error {
	if err := checkGraph(g); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetNodes); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{sheetEdges, sheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet: %w", err)
		}
	}

	header, err := headerStyle(f)
	if err != nil {
		return err
	}
	exportedAt := e.now().Format(timestampLayout)

	nodes := newSheetWriter(f, sheetNodes)
	if err := nodes.append(excelNodeHeader...); err != nil {
		return err
	}
	if err := nodes.styleRow(header, len(excelNodeHeader)); err != nil {
		return err
	}
	for _, n := range g.Nodes {
		score := 0.0
		if n.RiskScore != nil {
			score = *n.RiskScore
		}
		if err := nodes.append(string(n.Type), n.ID, n.Label, n.Country, score, n.Details, exportedAt); err != nil {
			return err
		}
	}

	edges := newSheetWriter(f, sheetEdges)
	if err := edges.append(excelEdgeHeader...); err != nil {
		return err
	}
	if err := edges.styleRow(header, len(excelEdgeHeader)); err != nil {
		return err
	}
	for _, edge := range g.Edges {
		if err := edges.append(edge.Source, edge.Target, string(edge.Type)); err != nil {
			return err
		}
	}

	summary := newSheetWriter(f, sheetSummary)
	if err := summary.append("Metrika", "Hodnota"); err != nil {
		return err
	}
	if err := summary.styleRow(header, 2); err != nil {
		return err
	}
	rows := [][]any{
		{"Celkový počet nodov", len(g.Nodes)},
		{"Celkový počet vzťahov", len(g.Edges)},
		{"Dátum exportu", exportedAt},
		{"", ""},
		{"Typy nodov", ""},
	}
	rows = append(rows, countRows(g.Nodes, func(n graph.Node) string { return string(n.Type) })...)
	rows = append(rows, []any{"", ""}, []any{"Typy vzťahov", ""})
	rows = append(rows, countRows(g.Edges, func(edge graph.Edge) string { return string(edge.Type) })...)
	rows = append(rows, []any{"", ""}, []any{"Upozornenie", company.RiskDisclaimer})
	for _, row := range rows {
		if err := summary.append(row...); err != nil {
			return err
		}
	}

	for _, s := range []*sheetWriter{nodes, edges, summary} {
		if err := s.fitColumns(); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

// WriteCompaniesExcel выгружает список нормализованных компаний на один лист
func (e *Exporter) WriteCompaniesExcel(w io.Writer, companies []company.Company) error {
	if len(companies) == 0 {
		return ErrNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetBatch); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	header, err := headerStyle(f)
	if err != nil {
		return err
	}

	sheet := newSheetWriter(f, sheetBatch)
	if err := sheet.append(excelBatchHeader...); err != nil {
		return err
	}
	if err := sheet.styleRow(header, len(excelBatchHeader)); err != nil {
		return err
	}

	for _, c := range companies {
		if err := sheet.append(
			c.Identifier, c.Name, c.Country, c.Address, c.PostalCode, c.District, c.Region,
			c.DIC, c.ICDPH, c.LegalForm, c.RiskScore, string(company.RiskLevel(c.RiskScore)), yesNo(c.VirtualSeat),
			c.Founded, c.Status, partyNames(c.Executives), partyNames(c.Shareholders), c.Source, c.LastUpdated,
		); err != nil {
			return err
		}
	}

	if err := sheet.append(); err != nil {
		return err
	}
	if err := sheet.append(company.RiskDisclaimer); err != nil {
		return err
	}
	if err := sheet.fitColumns(); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func countRows[T any](items []T, key func(T) string) [][]any {
	counts := make(map[string]int)
	for _, item := range items {
		k := key(item)
		if k == "" {
			k = "Unknown"
		}
		counts[k]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]any, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []any{k, counts[k]})
	}
	return rows
}

func partyNames(parties []company.Party) string {
	names := make([]string, 0, len(parties))
	for _, p := range parties {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}
	return strings.Join(names, "; ")
}

func yesNo(v bool) string {
	if v {
		return "Áno"
	}
	return "Nie"
}
