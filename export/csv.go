package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"iluminati/company"
	"iluminati/graph"
)

var (
	csvNodeHeader = []string{"Typ", "ID", "Label", "Krajina", "Risk Score", "Detaily"}
	csvEdgeHeader = []string{"Source", "Target", "Type"}
)

const csvEdgeSection = "Vzťahy:"

// WriteCSV выгружает граф: таблица узлов, пустая строка, секция "Vzťahy:" со связями
// и в конце предупреждение о рисковом скоре
func (e *Exporter) WriteCSV(w io.Writer, g *graph.Graph) error {
	if err := checkGraph(g); err != nil {
		return err
	}

	writer := csv.NewWriter(w)

	if err := writer.Write(csvNodeHeader); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for _, n := range g.Nodes {
		record := []string{
			string(n.Type),
			n.ID,
			n.Label,
			n.Country,
			formatScore(n.RiskScore),
			n.Details,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write node %s: %w", n.ID, err)
		}
	}

	rows := [][]string{nil, {csvEdgeSection}, csvEdgeHeader}
	for _, edge := range g.Edges {
		rows = append(rows, []string{edge.Source, edge.Target, string(edge.Type)})
	}
	rows = append(rows, nil, []string{company.RiskDisclaimer})

	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write edges: %w", err)
	}
	return nil
}

// formatScore форматирует скор; отсутствующий скор выгружается как 0
func formatScore(score *float64) string {
	if score == nil {
		return "0"
	}
	return strconv.FormatFloat(*score, 'f', -1, 64)
}
