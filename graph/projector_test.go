package graph

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iluminati/company"
)

func exampleRaw() map[string]any {
	return map[string]any{
		"ico":                "12345678",
		"nazov":              "Test s.r.o.",
		"adresa":             "Regus Business Center, Bratislava",
		"pocet_zamestnancov": float64(0),
		"trzby":              float64(0),
		"zisk":               float64(-500),
		"stav":               "v likvidácii",
	}
}

func TestFromCompany_ExampleScenario(t *testing.T) {
	c := company.Normalize(exampleRaw())
	require.NotNil(t, c)

	g := FromCompany(c)
	require.Len(t, g.Nodes, 2)
	require.Len(t, g.Edges, 1)

	root := g.Nodes[0]
	assert.Equal(t, "company-12345678", root.ID)
	assert.Equal(t, NodeCompany, root.Type)
	require.NotNil(t, root.RiskScore)
	assert.Equal(t, 10.0, *root.RiskScore)

	addr := g.Nodes[1]
	assert.Equal(t, "address-12345678", addr.ID)
	assert.Equal(t, NodeAddress, addr.Type)
	assert.Equal(t, "Regus Business Center, Br", addr.Label)
	require.NotNil(t, addr.VirtualSeat)
	assert.True(t, *addr.VirtualSeat)

	assert.Equal(t, Edge{Source: root.ID, Target: addr.ID, Type: EdgeLocatedAt}, g.Edges[0])
	assert.NoError(t, g.Validate())
}

func TestFromCompany_Nil(t *testing.T) {
	g := FromCompany(nil)
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)
}

func TestFromCompany_AddressLabelPrefersCity(t *testing.T) {
	g := FromCompany(&company.Company{Identifier: "1", Address: "Hlavná 1", City: "Nitra"})
	n, ok := g.Node("address-1")
	require.True(t, ok)
	assert.Equal(t, "Nitra", n.Label)
}

func TestFromCompany_DeduplicatesPeople(t *testing.T) {
	c := company.Normalize(map[string]any{
		"ico":        "11111111",
		"konatelia":  []any{"Ján Novák", "Eva Malá"},
		"spolocnici": []any{map[string]any{"meno": "Ján Novák"}, "Peter Veľký"},
	})
	require.NotNil(t, c)

	g := FromCompany(c)
	require.NoError(t, g.Validate())

	var persons []Node
	for _, n := range g.Nodes {
		if n.Type == NodePerson && n.Label == "Ján Novák" {
			persons = append(persons, n)
		}
	}
	require.Len(t, persons, 1)

	var kinds []EdgeType
	for _, e := range g.Edges {
		if e.Target == persons[0].ID {
			kinds = append(kinds, e.Type)
		}
	}
	assert.ElementsMatch(t, []EdgeType{EdgeManagedBy, EdgeOwnedBy}, kinds)

	_, ok := g.Node("person-sh-1-11111111")
	assert.True(t, ok)
	_, ok = g.Node("person-sh-0-11111111")
	assert.False(t, ok)
}

func TestFromCompany_FallbackLabels(t *testing.T) {
	c := &company.Company{
		Identifier:       "2",
		Executives:       []company.Party{{Record: map[string]any{"funkcia": "x"}}},
		Shareholders:     []company.Party{{}},
		RelatedCompanies: []company.Related{{}},
	}

	g := FromCompany(c)
	labels := map[string]string{}
	for _, n := range g.Nodes {
		labels[n.ID] = n.Label
	}
	assert.Equal(t, "Konateľ 1", labels["person-exec-0-2"])
	assert.Equal(t, "Spoločník 1", labels["person-sh-0-2"])
	assert.Equal(t, "Related 1", labels["company-related-0-2"])
}

func TestFromCompany_RelatedCompaniesHaveZeroRisk(t *testing.T) {
	c := company.Normalize(map[string]any{
		"ico":               "3",
		"related_companies": []any{map[string]any{"name": "Dcéra", "ico": "4"}},
	})
	g := FromCompany(c)

	rel, ok := g.Node("company-related-0-3")
	require.True(t, ok)
	require.NotNil(t, rel.RiskScore)
	assert.Equal(t, 0.0, *rel.RiskScore)
	assert.Equal(t, "4", rel.Identifier)
	assert.Contains(t, g.Edges, Edge{Source: "company-3", Target: rel.ID, Type: EdgeRelatedTo})
}

func randomRaw(f *gofakeit.Faker) map[string]any {
	people := make([]any, 0)
	for n := f.Number(0, 4); len(people) < n; {
		people = append(people, f.Name())
	}
	owners := make([]any, 0)
	for n := f.Number(0, 4); len(owners) < n; {
		if len(people) > 0 && f.Bool() {
			owners = append(owners, map[string]any{"meno": people[f.Number(0, len(people)-1)]})
		} else {
			owners = append(owners, f.Name())
		}
	}
	related := make([]any, 0)
	for n := f.Number(0, 3); len(related) < n; {
		related = append(related, map[string]any{"name": f.Company(), "ico": f.Numerify("########")})
	}

	raw := map[string]any{
		"ico":               f.Numerify("########"),
		"nazov":             f.Company(),
		"konatelia":         people,
		"spolocnici":        owners,
		"related_companies": related,
	}
	if f.Bool() {
		raw["adresa"] = f.Street() + ", " + f.City()
	}
	return raw
}

func TestFromCompany_Properties(t *testing.T) {
	faker := gofakeit.New(7)

	for i := 0; i < 300; i++ {
		raw := randomRaw(faker)

		first := FromCompany(company.Normalize(raw))
		second := FromCompany(company.Normalize(raw))

		require.NoError(t, first.Validate(), "edge referential integrity")
		assert.Equal(t, first.NodeIDs(), second.NodeIDs(), "idempotent ids")
		assert.ElementsMatch(t, first.Edges, second.Edges, "idempotent edges")

		roots := 0
		for _, n := range first.Nodes {
			if n.ID == CompanyNodeID(raw["ico"].(string)) {
				roots++
			}
		}
		assert.Equal(t, 1, roots)
	}
}

func TestFromCompanies_MergesSharedNodes(t *testing.T) {
	companies := company.NormalizeAll([]map[string]any{
		{"ico": "1", "adresa": "A"},
		{"ico": "1", "adresa": "A"},
		{"ico": "2"},
	})

	g := FromCompanies(companies)
	assert.Len(t, g.Nodes, 3)
	assert.Len(t, g.Edges, 1)
	assert.NoError(t, g.Validate())
}
