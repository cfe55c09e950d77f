package importer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"iluminati/graph"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{name: "firmy.csv", want: FormatCSV},
		{name: "FIRMY.XLSX", want: FormatExcel},
		{name: "graf.json", want: FormatJSON},
		{name: "stary.xls", wantErr: true},
		{name: "scan.pdf", wantErr: true},
		{name: "bez_pripony", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.name)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnsupportedFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := Parse("data.txt", strings.NewReader("x"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestFoldHeader(t *testing.T) {
	assert.Equal(t, "ico", foldHeader(" IČO "))
	assert.Equal(t, "obchodne meno", foldHeader("Obchodné meno"))
	assert.Equal(t, "nazov", foldHeader("Názov"))
	assert.Equal(t, "pravna forma", foldHeader("Právna forma"))
}

func TestParseCSV_Comma(t *testing.T) {
	data := "Názov,IČO,Krajina\n\"Alfa, s.r.o.\",12345678,Slovakia\nBeta a.s.,87654321,cz\n\n"

	g, err := Parse("firmy.csv", strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, g.Nodes, 2)

	assert.Equal(t, graph.Node{
		ID:         "company-12345678",
		Label:      "Alfa, s.r.o.",
		Type:       graph.NodeCompany,
		Identifier: "12345678",
		Country:    "SK",
		Details:    csvDetails,
	}, g.Nodes[0])
	assert.Equal(t, "CZ", g.Nodes[1].Country)
	assert.Empty(t, g.Edges)
}

func TestParseCSV_SemicolonWindows1250(t *testing.T) {
	utf := "Obchodné meno;IČO\nŽilinská stavebná, s.r.o.;36123456\nKošický obchod;31999888\n"
	encoded, err := charmap.Windows1250.NewEncoder().String(utf)
	require.NoError(t, err)

	g, err := ParseCSV([]byte(encoded))
	require.NoError(t, err)
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, "Žilinská stavebná, s.r.o.", g.Nodes[0].Label)
	assert.Equal(t, "36123456", g.Nodes[0].Identifier)
	assert.Equal(t, "Košický obchod", g.Nodes[1].Label)
}

func TestParseCSV_BOMAndUnknownHeaders(t *testing.T) {
	data := "\xEF\xBB\xBFcolumn a,column b\nGama,111\nbroken\n"

	g, err := ParseCSV([]byte(data))
	require.NoError(t, err)
	require.Len(t, g.Nodes, 1)
	assert.Equal(t, "Gama", g.Nodes[0].Label)
	assert.Equal(t, "111", g.Nodes[0].Identifier)
}

func TestParseCSV_Empty(t *testing.T) {
	g, err := ParseCSV(nil)
	require.NoError(t, err)
	assert.True(t, g.IsEmpty())
}

func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestParseExcel(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"IČO", "Obchodné meno", "Právna forma"},
		{"12345678", "Alfa s.r.o.", "s.r.o."},
		{"", "", ""},
		{"87654321", "Beta a.s.", ""},
	})

	g, err := Parse("firmy.xlsx", bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, g.Nodes, 2)

	assert.Equal(t, "company-12345678", g.Nodes[0].ID)
	assert.Equal(t, "Alfa s.r.o.", g.Nodes[0].Label)
	assert.Equal(t, "12345678", g.Nodes[0].Identifier)
	assert.Equal(t, "s.r.o.", g.Nodes[0].Details)

	assert.Equal(t, "company-87654321", g.Nodes[1].ID)
	assert.Equal(t, "company", g.Nodes[1].Details)
}

func TestParseExcel_FallsBackToFirstValue(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"Stĺpec", "Iné"},
		{"Gama", "x"},
	})

	g, err := ParseExcel(data)
	require.NoError(t, err)
	require.Len(t, g.Nodes, 1)
	assert.Equal(t, "Gama", g.Nodes[0].Label)
	assert.Empty(t, g.Nodes[0].Identifier)
}

func TestParseExcel_Garbage(t *testing.T) {
	_, err := ParseExcel([]byte("not a zip"))
	assert.Error(t, err)
}

func TestParseJSON_Graph(t *testing.T) {
	data := `{"nodes":[{"id":"company-1","label":"A","type":"company","ico":1},{"id":"person-1","label":"B","type":"person"}],
	          "edges":[{"source":"company-1","target":"person-1","type":"MANAGED_BY"}],
	          "disclaimer":"..."}`

	g, err := Parse("graf.json", strings.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 2)
	assert.Len(t, g.Edges, 1)
	assert.Equal(t, "1", g.Nodes[0].Identifier)
}

func TestParseJSON_DanglingEdge(t *testing.T) {
	data := `{"nodes":[{"id":"a","label":"A"}],"edges":[{"source":"a","target":"b","type":"OWNED_BY"}]}`

	_, err := ParseJSON([]byte(data))
	assert.True(t, errors.Is(err, graph.ErrDanglingEdge))
}

func TestParseJSON_CompanyArray(t *testing.T) {
	data := `[
	  {"ico": "12345678", "nazov": "Alfa s.r.o.", "adresa": "Hlavná 1", "country": "sk"},
	  {"id": "custom", "label": "Beta", "type": "person", "risk_score": 3},
	  "skip me"
	]`

	g, err := ParseJSON([]byte(data))
	require.NoError(t, err)
	require.Len(t, g.Nodes, 2)

	first := g.Nodes[0]
	assert.Equal(t, "company-12345678", first.ID)
	assert.Equal(t, "Alfa s.r.o.", first.Label)
	assert.Equal(t, graph.NodeCompany, first.Type)
	assert.Equal(t, "12345678", first.Identifier)
	assert.Equal(t, "SK", first.Country)
	require.NotNil(t, first.RiskScore)
	assert.Equal(t, 2.0, *first.RiskScore)

	second := g.Nodes[1]
	assert.Equal(t, "custom", second.ID)
	assert.Equal(t, graph.NodePerson, second.Type)
	assert.Equal(t, 3.0, *second.RiskScore)
}

func withBatchIDs(t *testing.T, ids ...string) {
	t.Helper()
	orig := newBatchID
	t.Cleanup(func() { newBatchID = orig })
	newBatchID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
}

func TestNodeIDs_StableAcrossImports(t *testing.T) {
	withBatchIDs(t, "aaaa0001", "bbbb0002")
	data := "name,ico\nAlfa,31 320 155\nGama,bez ico\n"

	first, err := ParseCSV([]byte(data))
	require.NoError(t, err)
	second, err := ParseCSV([]byte(data))
	require.NoError(t, err)

	require.Len(t, first.Nodes, 2)
	assert.Equal(t, "company-31320155", first.Nodes[0].ID)
	assert.Equal(t, "import-aaaa0001-1", first.Nodes[1].ID)

	require.Len(t, second.Nodes, 2)
	assert.Equal(t, first.Nodes[0].ID, second.Nodes[0].ID)
	assert.Equal(t, "import-bbbb0002-1", second.Nodes[1].ID)
}

func TestNodeIDs_DuplicateICOKeepsFirstRow(t *testing.T) {
	g, err := ParseCSV([]byte("name,ico\nAlfa,12345678\nAlfa kópia,12345678\nBeta,87654321\n"))
	require.NoError(t, err)
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, "Alfa", g.Nodes[0].Label)
	assert.Equal(t, "company-87654321", g.Nodes[1].ID)
	assert.NoError(t, g.Validate())

	g, err = ParseJSON([]byte(`[{"ico":"12345678","name":"A"},{"ico":"12345678","name":"B"}]`))
	require.NoError(t, err)
	require.Len(t, g.Nodes, 1)
	assert.Equal(t, "A", g.Nodes[0].Label)
}

func TestParseJSON_UnknownShape(t *testing.T) {
	_, err := ParseJSON([]byte(`{"foo": 1}`))
	assert.Error(t, err)

	_, err = ParseJSON([]byte(`"text"`))
	assert.Error(t, err)

	_, err = ParseJSON([]byte(`{broken`))
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "firmy.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,ico\nAlfa,1\n"), 0o644))

	g, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 1)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestParse_FileTooLarge(t *testing.T) {
	big := bytes.Repeat([]byte("a"), MaxFileSize+1)
	_, err := Parse("velky.csv", bytes.NewReader(big))
	assert.True(t, errors.Is(err, ErrFileTooLarge))
}
