package lookup

import (
	"bytes"
	"encoding/json"
	"fmt"

	"iluminati/graph"
)

// Kind вариант формы ответа бэкенда
type Kind string

const (
	KindGraph  Kind = "graph"
	KindList   Kind = "list"
	KindSingle Kind = "single"
	KindEmpty  Kind = "empty"
)

// Response разобранный ответ: заполнены только поля своего варианта
type Response struct {
	Kind Kind

	// KindGraph
	Graph    *graph.Graph
	RawNodes []map[string]any

	// KindList и KindSingle
	Records []map[string]any

	Total  int
	Facets map[string]any
}

// ParseResponse разбирает тело ответа в один из вариантов Kind
func ParseResponse(body []byte) (*Response, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return &Response{Kind: KindEmpty}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return classify(data, true)
}

func classify(data any, unwrap bool) (*Response, error) {
	switch v := data.(type) {
	case []any:
		return listResponse(v, nil), nil
	case map[string]any:
		return classifyObject(v, unwrap)
	default:
		return &Response{Kind: KindEmpty}, nil
	}
}

func classifyObject(obj map[string]any, unwrap bool) (*Response, error) {
	_, hasNodes := obj["nodes"]
	_, hasEdges := obj["edges"]

	switch {
	case hasNodes && hasEdges:
		return graphResponse(obj)
	case isArray(obj["companies"]):
		return listResponse(obj["companies"].([]any), obj), nil
	case isArray(obj["results"]):
		return listResponse(obj["results"].([]any), obj), nil
	case isArray(obj["data"]):
		return listResponse(obj["data"].([]any), obj), nil
	case isObject(obj["data"]) && unwrap:
		// Конверт v2 {success, data, metadata}
		inner, err := classifyObject(obj["data"].(map[string]any), false)
		if err != nil {
			return nil, err
		}
		if inner.Kind == KindEmpty {
			return &Response{Kind: KindSingle, Records: []map[string]any{obj["data"].(map[string]any)}, Total: 1}, nil
		}
		return inner, nil
	case isObject(obj["data"]):
		return &Response{Kind: KindSingle, Records: []map[string]any{obj["data"].(map[string]any)}, Total: 1}, nil
	case obj["ico"] != nil || obj["identifier"] != nil:
		return &Response{Kind: KindSingle, Records: []map[string]any{obj}, Total: 1}, nil
	default:
		return &Response{Kind: KindEmpty}, nil
	}
}

func graphResponse(obj map[string]any) (*Response, error) {
	g, err := graph.FromMap(obj)
	if err != nil {
		return nil, err
	}

	resp := &Response{Kind: KindGraph, Graph: g, Total: len(g.Nodes)}
	nodes, _ := obj["nodes"].([]any)
	for _, item := range nodes {
		if m, ok := item.(map[string]any); ok {
			resp.RawNodes = append(resp.RawNodes, m)
		}
	}
	return resp, nil
}

func listResponse(items []any, envelope map[string]any) *Response {
	resp := &Response{Kind: KindList, Records: make([]map[string]any, 0, len(items))}
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			resp.Records = append(resp.Records, m)
		}
	}
	resp.Total = len(resp.Records)
	if envelope != nil {
		if total, ok := envelope["total"].(json.Number); ok {
			if n, err := total.Int64(); err == nil {
				resp.Total = int(n)
			}
		}
		if facets, ok := envelope["facets"].(map[string]any); ok {
			resp.Facets = facets
		}
	}
	return resp
}

func isArray(v any) bool {
	_, ok := v.([]any)
	return ok
}

func isObject(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}
