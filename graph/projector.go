package graph

import (
	"fmt"

	"iluminati/company"
)

const addressLabelRunes = 25

// CompanyNodeID id корневого узла компании
func CompanyNodeID(identifier string) string {
	return "company-" + identifier
}

// FromCompany разворачивает запись компании в граф.
// Одинаковый вход всегда дает одинаковые id узлов.
func FromCompany(c *company.Company) *Graph {
	g := New()
	if c == nil {
		return g
	}

	ico := c.Identifier
	rootID := CompanyNodeID(ico)
	risk := c.RiskScore
	seat := c.VirtualSeat

	g.Nodes = append(g.Nodes, Node{
		ID:          rootID,
		Label:       c.Name,
		Type:        NodeCompany,
		Country:     c.Country,
		RiskScore:   &risk,
		Details:     c.Address,
		Identifier:  ico,
		VirtualSeat: &seat,
	})

	if c.Address != "" {
		addressID := "address-" + ico
		label := c.City
		if label == "" {
			label = truncateRunes(c.Address, addressLabelRunes)
		}
		g.Nodes = append(g.Nodes, Node{
			ID:          addressID,
			Label:       label,
			Type:        NodeAddress,
			Country:     c.Country,
			Details:     c.Address,
			PostalCode:  c.PostalCode,
			VirtualSeat: &seat,
		})
		g.Edges = append(g.Edges, Edge{Source: rootID, Target: addressID, Type: EdgeLocatedAt})
	}

	// Имя -> id узла персоны, созданного в этом вызове
	people := make(map[string]string)

	for i, exec := range c.Executives {
		name := partyLabel(exec, "Konateľ", i)
		execID := fmt.Sprintf("person-exec-%d-%s", i, ico)
		if _, ok := people[name]; !ok {
			people[name] = execID
		}
		g.Nodes = append(g.Nodes, Node{ID: execID, Label: name, Type: NodePerson, Details: "Konateľ"})
		g.Edges = append(g.Edges, Edge{Source: rootID, Target: execID, Type: EdgeManagedBy})
	}

	for i, sh := range c.Shareholders {
		name := partyLabel(sh, "Spoločník", i)
		if existing, ok := people[name]; ok {
			g.Edges = append(g.Edges, Edge{Source: rootID, Target: existing, Type: EdgeOwnedBy})
			continue
		}
		shID := fmt.Sprintf("person-sh-%d-%s", i, ico)
		people[name] = shID
		g.Nodes = append(g.Nodes, Node{ID: shID, Label: name, Type: NodePerson, Details: "Spoločník"})
		g.Edges = append(g.Edges, Edge{Source: rootID, Target: shID, Type: EdgeOwnedBy})
	}

	for i, rel := range c.RelatedCompanies {
		name := rel.Name
		if name == "" {
			name = fmt.Sprintf("Related %d", i+1)
		}
		relID := fmt.Sprintf("company-related-%d-%s", i, ico)
		zero := 0.0
		g.Nodes = append(g.Nodes, Node{
			ID:         relID,
			Label:      name,
			Type:       NodeCompany,
			Country:    rel.Country,
			RiskScore:  &zero,
			Identifier: rel.Identifier,
		})
		g.Edges = append(g.Edges, Edge{Source: rootID, Target: relID, Type: EdgeRelatedTo})
	}

	return g
}

// FromCompanies проецирует несколько компаний в один граф
func FromCompanies(companies []company.Company) *Graph {
	graphs := make([]*Graph, 0, len(companies))
	for i := range companies {
		graphs = append(graphs, FromCompany(&companies[i]))
	}
	return Merge(graphs...)
}

func partyLabel(p company.Party, role string, i int) string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("%s %d", role, i+1)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
