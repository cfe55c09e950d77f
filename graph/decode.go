package graph

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// NodeFromMap собирает узел из произвольного JSON-объекта.
// ico может прийти числом, details объектом: оба приводятся к строке.
func NodeFromMap(m map[string]any) Node {
	n := Node{
		ID:         String(m["id"]),
		Label:      String(m["label"]),
		Type:       NodeType(String(m["type"])),
		Country:    String(m["country"]),
		Details:    String(m["details"]),
		Identifier: String(m["ico"]),
		PostalCode: String(m["postalCode"]),
	}
	if score, ok := number(m["risk_score"]); ok {
		n.RiskScore = &score
	}
	if seat, ok := m["virtual_seat"].(bool); ok {
		n.VirtualSeat = &seat
	}
	return n
}

// EdgeFromMap собирает связь из JSON-объекта
func EdgeFromMap(m map[string]any) Edge {
	return Edge{
		Source: String(m["source"]),
		Target: String(m["target"]),
		Type:   EdgeType(String(m["type"])),
	}
}

// FromMap собирает граф из объекта {nodes, edges}. Элементы, не являющиеся объектами, пропускаются.
func FromMap(obj map[string]any) (*Graph, error) {
	nodes, okNodes := obj["nodes"].([]any)
	edges, okEdges := obj["edges"].([]any)
	if (!okNodes && obj["nodes"] != nil) || (!okEdges && obj["edges"] != nil) {
		return nil, fmt.Errorf("invalid graph shape: nodes and edges must be arrays")
	}

	g := New()
	for _, item := range nodes {
		if m, ok := item.(map[string]any); ok {
			g.Nodes = append(g.Nodes, NodeFromMap(m))
		}
	}
	for _, item := range edges {
		if m, ok := item.(map[string]any); ok {
			g.Edges = append(g.Edges, EdgeFromMap(m))
		}
	}
	return g, nil
}

// String приводит JSON-значение к строке; объекты и массивы сериализуются обратно в JSON
func String(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case map[string]any, []any:
		raw, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(raw)
	default:
		return fmt.Sprint(t)
	}
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case int:
		return float64(t), true
	default:
		return 0, false
	}
}
