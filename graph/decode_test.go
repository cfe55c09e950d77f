package graph

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeObject(t *testing.T, raw string) map[string]any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var obj map[string]any
	require.NoError(t, dec.Decode(&obj))
	return obj
}

func TestFromMap(t *testing.T) {
	obj := decodeObject(t, `{
	  "nodes": [
	    {"id": "company-1", "label": "A", "type": "company", "ico": 123, "risk_score": 7, "virtual_seat": false, "details": {"city": "Nitra"}},
	    "garbage",
	    {"id": "person-1", "label": "B", "type": "person"}
	  ],
	  "edges": [{"source": "company-1", "target": "person-1", "type": "SUPPLIES"}]
	}`)

	g, err := FromMap(obj)
	require.NoError(t, err)
	require.Len(t, g.Nodes, 2)
	require.Len(t, g.Edges, 1)

	assert.Equal(t, "123", g.Nodes[0].Identifier)
	require.NotNil(t, g.Nodes[0].RiskScore)
	assert.Equal(t, 7.0, *g.Nodes[0].RiskScore)
	require.NotNil(t, g.Nodes[0].VirtualSeat)
	assert.False(t, *g.Nodes[0].VirtualSeat)
	assert.JSONEq(t, `{"city":"Nitra"}`, g.Nodes[0].Details)
	assert.Nil(t, g.Nodes[1].RiskScore)

	// Неизвестные типы связей сохраняются как есть
	assert.Equal(t, EdgeType("SUPPLIES"), g.Edges[0].Type)
}

func TestFromMap_MissingEdges(t *testing.T) {
	g, err := FromMap(map[string]any{"nodes": []any{map[string]any{"id": "x"}}})
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 1)
	assert.Empty(t, g.Edges)
}

func TestFromMap_InvalidShape(t *testing.T) {
	_, err := FromMap(map[string]any{"nodes": "nope", "edges": []any{}})
	assert.Error(t, err)
}

func TestString(t *testing.T) {
	assert.Equal(t, "", String(nil))
	assert.Equal(t, "abc", String("abc"))
	assert.Equal(t, "12345678", String(json.Number("12345678")))
	assert.Equal(t, "1.5", String(1.5))
	assert.Equal(t, "true", String(true))
	assert.Equal(t, `["a"]`, String([]any{"a"}))
}
