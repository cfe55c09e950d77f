package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	g := &Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}, {ID: "b"}, {Label: "anon"}},
		Edges: []Edge{{Source: "a", Target: "b"}, {Source: "a", Target: "c", Type: EdgeOwnedBy}},
	}

	err := g.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDanglingEdge))
	assert.True(t, errors.Is(err, ErrDuplicateNode))
	assert.True(t, errors.Is(err, ErrEmptyNodeID))

	var nilGraph *Graph
	assert.NoError(t, nilGraph.Validate())
	assert.NoError(t, New().Validate())
}

func TestPrune(t *testing.T) {
	g := &Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}, {ID: "a"}},
		Edges: []Edge{{Source: "a", Target: "b"}, {Source: "a", Target: "zzz"}},
	}

	pruned := g.Prune()
	assert.Len(t, pruned.Nodes, 2)
	assert.Equal(t, []Edge{{Source: "a", Target: "b"}}, pruned.Edges)
	assert.NoError(t, pruned.Validate())
}

func TestMerge(t *testing.T) {
	a := &Graph{
		Nodes: []Node{{ID: "x", Label: "first"}, {ID: "y"}},
		Edges: []Edge{{Source: "x", Target: "y", Type: EdgeOwnedBy}},
	}
	b := &Graph{
		Nodes: []Node{{ID: "x", Label: "second"}, {ID: "z"}},
		Edges: []Edge{{Source: "x", Target: "y", Type: EdgeOwnedBy}, {Source: "x", Target: "z", Type: EdgeRelatedTo}},
	}

	m := Merge(a, nil, b)
	require.Len(t, m.Nodes, 3)
	assert.Equal(t, "first", m.Nodes[0].Label)
	assert.Len(t, m.Edges, 2)
	assert.NoError(t, m.Validate())
}

func TestIsEmpty(t *testing.T) {
	var g *Graph
	assert.True(t, g.IsEmpty())
	assert.True(t, New().IsEmpty())
	assert.False(t, (&Graph{Nodes: []Node{{ID: "a"}}}).IsEmpty())
}
