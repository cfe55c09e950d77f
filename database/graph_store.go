package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"iluminati/graph"
)

// GraphStore хранилище спроецированных графов: узлы и ребра сливаются по id
type GraphStore struct {
	db *DB
}

// Graphs возвращает хранилище графов поверх базы
func (db *DB) Graphs() *GraphStore {
	return &GraphStore{db: db}
}

// Save сохраняет граф. Существующие узлы обновляются, ребра не дублируются.
// Граф с висячими ребрами отклоняется целиком.
func (s *GraphStore) Save(ctx context.Context, g *graph.Graph) error {
	if g == nil || g.IsEmpty() {
		return nil
	}
	if err := g.Validate(); err != nil {
		return fmt.Errorf("invalid graph: %w", err)
	}

	tx, err := s.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	nodeStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO graph_nodes (id, label, type, country, risk_score, details, ico, postal_code, virtual_seat, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			label = excluded.label,
			type = excluded.type,
			country = excluded.country,
			risk_score = excluded.risk_score,
			details = excluded.details,
			ico = excluded.ico,
			postal_code = excluded.postal_code,
			virtual_seat = excluded.virtual_seat,
			updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("failed to prepare node statement: %w", err)
	}
	defer nodeStmt.Close()

	now := s.db.now().UTC()
	for _, n := range g.Nodes {
		var risk sql.NullFloat64
		if n.RiskScore != nil {
			risk = sql.NullFloat64{Float64: *n.RiskScore, Valid: true}
		}
		var seat sql.NullBool
		if n.VirtualSeat != nil {
			seat = sql.NullBool{Bool: *n.VirtualSeat, Valid: true}
		}
		if _, err := nodeStmt.ExecContext(ctx, n.ID, n.Label, string(n.Type), n.Country, risk, n.Details, n.Identifier, n.PostalCode, seat, now); err != nil {
			return fmt.Errorf("failed to save node %s: %w", n.ID, err)
		}
	}

	edgeStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO graph_edges (source, target, type) VALUES (?, ?, ?)
		ON CONFLICT(source, target, type) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("failed to prepare edge statement: %w", err)
	}
	defer edgeStmt.Close()

	for _, e := range g.Edges {
		if _, err := edgeStmt.ExecContext(ctx, e.Source, e.Target, string(e.Type)); err != nil {
			return fmt.Errorf("failed to save edge %s->%s: %w", e.Source, e.Target, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit graph: %w", err)
	}
	return nil
}

// Neighbourhood загружает узел, все инцидентные ему ребра и их концы.
// Возвращает ErrNotFound, если узла нет.
func (s *GraphStore) Neighbourhood(ctx context.Context, nodeID string) (*graph.Graph, error) {
	root, err := s.node(ctx, nodeID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.conn.QueryContext(ctx, `
		SELECT source, target, type FROM graph_edges
		WHERE source = ? OR target = ?
		ORDER BY type, source, target`, nodeID, nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query edges: %w", err)
	}
	defer rows.Close()

	g := graph.New()
	g.Nodes = append(g.Nodes, *root)
	seen := map[string]bool{root.ID: true}
	var neighbours []string

	for rows.Next() {
		var e graph.Edge
		var edgeType string
		if err := rows.Scan(&e.Source, &e.Target, &edgeType); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		e.Type = graph.EdgeType(edgeType)
		g.Edges = append(g.Edges, e)

		for _, id := range []string{e.Source, e.Target} {
			if !seen[id] {
				seen[id] = true
				neighbours = append(neighbours, id)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for _, id := range neighbours {
		n, err := s.node(ctx, id)
		if err != nil {
			return nil, err
		}
		g.Nodes = append(g.Nodes, *n)
	}
	return g, nil
}

// FindByICO ищет узлы компаний по IČO
func (s *GraphStore) FindByICO(ctx context.Context, ico string) ([]graph.Node, error) {
	rows, err := s.db.conn.QueryContext(ctx, `
		SELECT `+nodeColumns+` FROM graph_nodes WHERE ico = ? AND type = ? ORDER BY id`,
		strings.TrimSpace(ico), string(graph.NodeCompany))
	if err != nil {
		return nil, fmt.Errorf("failed to query nodes: %w", err)
	}
	defer rows.Close()

	nodes := make([]graph.Node, 0)
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, *n)
	}
	return nodes, rows.Err()
}

// Counts возвращает количество узлов и ребер
func (s *GraphStore) Counts(ctx context.Context) (nodes, edges int, err error) {
	err = s.db.conn.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM graph_nodes), (SELECT COUNT(*) FROM graph_edges)`).Scan(&nodes, &edges)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count graph: %w", err)
	}
	return nodes, edges, nil
}

const nodeColumns = `id, label, type, country, risk_score, details, ico, postal_code, virtual_seat`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *GraphStore) node(ctx context.Context, id string) (*graph.Node, error) {
	row := s.db.conn.QueryRowContext(ctx, `SELECT `+nodeColumns+` FROM graph_nodes WHERE id = ?`, id)
	n, err := scanNode(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("node %s: %w", id, ErrNotFound)
	}
	return n, err
}

func scanNode(row rowScanner) (*graph.Node, error) {
	var (
		n                          graph.Node
		nodeType                   string
		country, details, ico, psc sql.NullString
		risk                       sql.NullFloat64
		seat                       sql.NullBool
	)
	if err := row.Scan(&n.ID, &n.Label, &nodeType, &country, &risk, &details, &ico, &psc, &seat); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan node: %w", err)
	}
	n.Type = graph.NodeType(nodeType)
	n.Country = nullString(country)
	n.Details = nullString(details)
	n.Identifier = nullString(ico)
	n.PostalCode = nullString(psc)
	if risk.Valid {
		v := risk.Float64
		n.RiskScore = &v
	}
	if seat.Valid {
		v := seat.Bool
		n.VirtualSeat = &v
	}
	return &n, nil
}
