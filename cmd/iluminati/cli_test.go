package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iluminati/database"
	"iluminati/export"
	"iluminati/lookup"
)

const v2Envelope = `{
  "success": true,
  "data": {
    "companies": [
      {"ico": "12345678", "name": "Test s.r.o.", "address": "Hlavná 1, Bratislava", "country": "SK", "risk_score": 3.5},
      {"identifier": "87654321", "nazov": "Druhá a.s.", "adresa": "Virtual office, Košice"}
    ],
    "total": 42
  }
}`

// backend имитирует бэкенд реестров; down переводит все поиски в ошибку
type backend struct {
	down     atomic.Bool
	searches atomic.Int32
}

func newBackend(t *testing.T) (*backend, string) {
	b := &backend{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"access_token":"not-a-jwt","token_type":"bearer"}`)
	})
	mux.HandleFunc("/api/v2/search", func(w http.ResponseWriter, r *http.Request) {
		b.searches.Add(1)
		if b.down.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, v2Envelope)
	})
	mux.HandleFunc("/api/search", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	mux.HandleFunc("/api/v2/company/SK/12345678", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"data":{"ico":"12345678","name":"Test s.r.o.","status":"Aktívna","executives":["Ján Novák"]}}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return b, srv.URL
}

// cli запускает команды против общего бэкенда и временной базы
type cli struct {
	t      *testing.T
	api    string
	dbPath string
}

func newCLI(t *testing.T) (*cli, *backend) {
	t.Setenv("TOKEN_STORE", "memory")
	t.Setenv("LOG_LEVEL", "INFO")
	b, api := newBackend(t)
	return &cli{t: t, api: api, dbPath: filepath.Join(t.TempDir(), "cli.db")}, b
}

func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--api", c.api, "--db", c.dbPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSearch_Table(t *testing.T) {
	c, _ := newCLI(t)

	out, err := c.run("", "search", "Test", "firma", "--trace")
	require.NoError(t, err)
	assert.Contains(t, out, "Priebeh: IDLE → AUTHENTICATING → QUERYING_V2 → DONE")
	assert.Contains(t, out, "Zdroj: v2 | Nájdené: 2 z 42")
	assert.Contains(t, out, "Test s.r.o.")
	assert.Contains(t, out, "Druhá a.s.")
	assert.Contains(t, out, "áno")
	assert.Contains(t, out, "Rizikové skóre je orientačný")
}

func TestSearch_JSON(t *testing.T) {
	c, _ := newCLI(t)

	out, err := c.run("", "search", "Test", "--json", "--country", "sk")
	require.NoError(t, err)

	var res lookup.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, lookup.PathV2, res.Path)
	require.Len(t, res.Companies, 2)
	assert.Equal(t, "12345678", res.Companies[0].Identifier)
	assert.True(t, res.Companies[1].VirtualSeat)
}

func TestSearch_RequiresQuery(t *testing.T) {
	c, b := newCLI(t)

	_, err := c.run("", "search")
	assert.Error(t, err)
	assert.Zero(t, b.searches.Load())
}

func TestSearch_BackendDown(t *testing.T) {
	c, b := newCLI(t)
	b.down.Store(true)

	_, err := c.run("", "search", "Test", "--store")
	require.ErrorIs(t, err, errNoResult)
	assert.Contains(t, err.Error(), "FAILED")

	out, err := c.run("", "history", "--json")
	require.NoError(t, err)
	var entries []database.HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Path)
	assert.Zero(t, entries[0].ResultCount)
}

func TestSearch_StoreAndHistory(t *testing.T) {
	c, _ := newCLI(t)

	out, err := c.run("", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "História je prázdna.")

	_, err = c.run("", "search", "Test", "--store", "-c", "SK,CZ")
	require.NoError(t, err)

	out, err = c.run("", "history", "--json")
	require.NoError(t, err)
	var entries []database.HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Test", entries[0].Query)
	assert.Equal(t, []string{"SK", "CZ"}, entries[0].Countries)
	assert.Equal(t, "v2", entries[0].Path)
	assert.Equal(t, 2, entries[0].ResultCount)

	out, err = c.run("", "export", "--node", "company-12345678", "--format", "json", "--out", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "company-12345678")
	assert.Contains(t, out, "Test s.r.o.")
}

func TestSearch_Interactive(t *testing.T) {
	c, b := newCLI(t)

	out, err := c.run("\n  Test  \n:q\nignored\n", "search", "--interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "» Test")
	assert.Contains(t, out, "Test s.r.o.")
	assert.NotContains(t, out, "ignored")
	assert.EqualValues(t, 1, b.searches.Load())
}

func TestCompany(t *testing.T) {
	c, _ := newCLI(t)

	out, err := c.run("", "company", "12345678")
	require.NoError(t, err)
	assert.Contains(t, out, "Test s.r.o.")
	assert.Contains(t, out, "Ján Novák")

	_, err = c.run("", "company", "87654321", "--country", "SK")
	assert.Error(t, err)

	_, err = c.run("", "company", "12-AB")
	assert.Error(t, err)
}

func TestExport_CSVFile(t *testing.T) {
	c, _ := newCLI(t)
	path := filepath.Join(t.TempDir(), "out.csv")

	out, err := c.run("", "export", "Test", "--format", "csv", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Uložené: "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Test s.r.o.")
}

func TestExport_ReportToStdout(t *testing.T) {
	c, _ := newCLI(t)

	out, err := c.run("", "export", "Test", "-f", "html", "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "Druhá a.s.")
}

func TestExport_BatchExcel(t *testing.T) {
	c, _ := newCLI(t)
	path := filepath.Join(t.TempDir(), "batch.xlsx")

	_, err := c.run("", "export", "Test", "--format", "xlsx", "--batch", "--out", path)
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, err = c.run("", "export", "Test", "--format", "csv", "--batch")
	assert.Error(t, err)
}

func TestExport_Validation(t *testing.T) {
	c, b := newCLI(t)

	_, err := c.run("", "export")
	assert.Error(t, err)

	_, err = c.run("", "export", "Test", "--format", "pdf")
	assert.Error(t, err)
	assert.Zero(t, b.searches.Load())
}

func TestImport(t *testing.T) {
	c, _ := newCLI(t)
	path := filepath.Join(t.TempDir(), "firmy.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,ico\nAlfa,11111111\nBeta,22222222\n"), 0o644))

	out, err := c.run("", "import", path, "--store")
	require.NoError(t, err)
	assert.Contains(t, out, "Uzly: 2, vzťahy: 0")
	assert.Contains(t, out, "company: 2")
	assert.Contains(t, out, "✓ Uložené do "+c.dbPath)

	out, err = c.run("", "export", "--node", "company-22222222", "-f", "json", "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Beta")

	_, err = c.run("", "import", filepath.Join(t.TempDir(), "scan.pdf"))
	assert.Error(t, err)
}

func TestImport_SecondImportKeepsFirst(t *testing.T) {
	c, _ := newCLI(t)
	dir := t.TempDir()
	first := filepath.Join(dir, "prvy.csv")
	second := filepath.Join(dir, "druhy.csv")
	require.NoError(t, os.WriteFile(first, []byte("name,ico\nAlfa,11111111\nBez IČO,-\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("name,ico\nGama,33333333\nIný bez IČO,-\n"), 0o644))

	_, err := c.run("", "import", first, "--store")
	require.NoError(t, err)
	_, err = c.run("", "import", second, "--store")
	require.NoError(t, err)

	db, err := database.NewDB(c.dbPath)
	require.NoError(t, err)
	defer db.Close()

	nodes, edges, err := db.Graphs().Counts(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 4, nodes)
	assert.Zero(t, edges)

	for _, ico := range []string{"11111111", "33333333"} {
		found, err := db.Graphs().FindByICO(t.Context(), ico)
		require.NoError(t, err)
		assert.Len(t, found, 1, ico)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    export.Format
		wantErr bool
	}{
		{in: "csv", want: export.FormatCSV},
		{in: ".JSON", want: export.FormatJSON},
		{in: "xlsx", want: export.FormatExcel},
		{in: "html", want: export.FormatReport},
		{in: "xls", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
