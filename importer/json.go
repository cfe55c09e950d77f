package importer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"iluminati/company"
	"iluminati/graph"
)

var jsonLabelAliases = []string{"name", "nazov", "obchodne_meno", "label"}

// ParseJSON принимает либо готовый граф {nodes, edges}, либо массив объектов компаний
func ParseJSON(data []byte) (*graph.Graph, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("chyba pri parsovaní JSON: %w", err)
	}

	switch v := doc.(type) {
	case map[string]any:
		if _, ok := v["nodes"].([]any); !ok {
			return nil, fmt.Errorf("neznáma štruktúra JSON")
		}
		g, err := graph.FromMap(v)
		if err != nil {
			return nil, err
		}
		if err := g.Validate(); err != nil {
			return nil, fmt.Errorf("invalid graph: %w", err)
		}
		return g, nil

	case []any:
		g := graph.New()
		ids := newIDAllocator()
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			n := nodeFromRecord(m)
			if n.ID != "" || ids.assign(&n, i) {
				g.Nodes = append(g.Nodes, n)
			}
		}
		if err := g.Validate(); err != nil {
			return nil, fmt.Errorf("invalid graph: %w", err)
		}
		return g, nil

	default:
		return nil, fmt.Errorf("neznáma štruktúra JSON")
	}
}

// nodeFromRecord превращает объект компании в узел; собственные поля узла имеют приоритет
func nodeFromRecord(m map[string]any) graph.Node {
	n := graph.NodeFromMap(m)
	if n.Label == "" {
		n.Label = "Unknown"
		for _, key := range jsonLabelAliases {
			if s := graph.String(m[key]); s != "" {
				n.Label = s
				break
			}
		}
	}
	if n.Type == "" {
		n.Type = graph.NodeCompany
	}
	if n.Identifier == "" {
		n.Identifier = graph.String(m["identifier"])
	}
	if n.Details == "" {
		n.Details = graph.String(m["address"])
	}
	if n.Country != "" {
		n.Country = company.NormalizeCountry(n.Country)
	}
	if n.RiskScore == nil {
		if c := company.Normalize(m); c != nil {
			score := c.RiskScore
			n.RiskScore = &score
		}
	}
	return n
}
