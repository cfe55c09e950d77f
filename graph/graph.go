package graph

import (
	"errors"
	"fmt"
)

// NodeType тип узла графа
type NodeType string

const (
	NodeCompany NodeType = "company"
	NodePerson  NodeType = "person"
	NodeAddress NodeType = "address"
	NodeDebt    NodeType = "debt"
)

// EdgeType тип связи между узлами
type EdgeType string

const (
	EdgeOwnedBy   EdgeType = "OWNED_BY"
	EdgeManagedBy EdgeType = "MANAGED_BY"
	EdgeLocatedAt EdgeType = "LOCATED_AT"
	EdgeRelatedTo EdgeType = "RELATED_TO"
)

// Ошибки целостности графа
var (
	ErrDanglingEdge  = errors.New("edge references unknown node")
	ErrDuplicateNode = errors.New("duplicate node id")
	ErrEmptyNodeID   = errors.New("empty node id")
)

// Node узел графа связей
type Node struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Type        NodeType `json:"type"`
	Country     string   `json:"country,omitempty"`
	RiskScore   *float64 `json:"risk_score,omitempty"`
	Details     string   `json:"details,omitempty"`
	Identifier  string   `json:"ico,omitempty"`
	PostalCode  string   `json:"postalCode,omitempty"`
	VirtualSeat *bool    `json:"virtual_seat,omitempty"`
}

// Edge направленная связь
type Edge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   EdgeType `json:"type"`
}

// Graph набор узлов и связей для визуализации
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// New создает пустой граф
func New() *Graph {
	return &Graph{Nodes: []Node{}, Edges: []Edge{}}
}

// IsEmpty сообщает, что в графе нет узлов
func (g *Graph) IsEmpty() bool {
	return g == nil || len(g.Nodes) == 0
}

// Node ищет узел по id
func (g *Graph) Node(id string) (Node, bool) {
	if g == nil {
		return Node{}, false
	}
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodeIDs возвращает множество id узлов
func (g *Graph) NodeIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = struct{}{}
	}
	return ids
}

// Validate проверяет уникальность id и то, что все связи ссылаются на существующие узлы
func (g *Graph) Validate() error {
	if g == nil {
		return nil
	}

	ids := make(map[string]struct{}, len(g.Nodes))
	var errs []error
	for _, n := range g.Nodes {
		if n.ID == "" {
			errs = append(errs, fmt.Errorf("%w: label %q", ErrEmptyNodeID, n.Label))
			continue
		}
		if _, dup := ids[n.ID]; dup {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID))
			continue
		}
		ids[n.ID] = struct{}{}
	}

	for _, e := range g.Edges {
		if _, ok := ids[e.Source]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s -[%s]-> %s (source)", ErrDanglingEdge, e.Source, e.Type, e.Target))
		}
		if _, ok := ids[e.Target]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s -[%s]-> %s (target)", ErrDanglingEdge, e.Source, e.Type, e.Target))
		}
	}

	return errors.Join(errs...)
}

// Prune возвращает копию графа без связей на отсутствующие узлы
func (g *Graph) Prune() *Graph {
	out := New()
	if g == nil {
		return out
	}
	seen := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			continue
		}
		if _, dup := seen[n.ID]; dup {
			continue
		}
		seen[n.ID] = struct{}{}
		out.Nodes = append(out.Nodes, n)
	}
	for _, e := range g.Edges {
		_, okS := seen[e.Source]
		_, okT := seen[e.Target]
		if okS && okT {
			out.Edges = append(out.Edges, e)
		}
	}
	return out
}

// Merge объединяет графы по id узлов: первый узел с данным id побеждает, повторные связи отбрасываются
func Merge(graphs ...*Graph) *Graph {
	out := New()
	nodes := make(map[string]struct{})
	edges := make(map[Edge]struct{})

	for _, g := range graphs {
		if g == nil {
			continue
		}
		for _, n := range g.Nodes {
			if _, ok := nodes[n.ID]; ok {
				continue
			}
			nodes[n.ID] = struct{}{}
			out.Nodes = append(out.Nodes, n)
		}
		for _, e := range g.Edges {
			if _, ok := edges[e]; ok {
				continue
			}
			edges[e] = struct{}{}
			out.Edges = append(out.Edges, e)
		}
	}
	return out
}
