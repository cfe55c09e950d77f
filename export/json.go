package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"iluminati/company"
	"iluminati/graph"
)

// graphDocument JSON-выгрузка графа; nodes и edges совместимы с импортом
type graphDocument struct {
	Nodes      []graph.Node `json:"nodes"`
	Edges      []graph.Edge `json:"edges"`
	ExportedAt string       `json:"exported_at"`
	Disclaimer string       `json:"disclaimer"`
}

// WriteJSON выгружает граф в JSON с отступами
func (e *Exporter) WriteJSON(w io.Writer, g *graph.Graph) error {
	if err := checkGraph(g); err != nil {
		return err
	}

	doc := graphDocument{
		Nodes:      g.Nodes,
		Edges:      g.Edges,
		ExportedAt: e.now().UTC().Format(time.RFC3339),
		Disclaimer: company.RiskDisclaimer,
	}
	if doc.Edges == nil {
		doc.Edges = []graph.Edge{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
