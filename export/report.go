package export

import (
	"fmt"
	"html/template"
	"io"

	"iluminati/company"
	"iluminati/graph"
)

// Report данные печатного отчета
type Report struct {
	Query     string            `json:"query"`
	Companies []company.Company `json:"companies"`
	Graph     *graph.Graph      `json:"graphData"`
}

type reportCompany struct {
	company.Company
	Level      company.Level
	Executives string
}

type reportView struct {
	Title       string
	Query       string
	GeneratedAt string
	Companies   []reportCompany
	Nodes       []graph.Node
	Edges       []graph.Edge
	Disclaimer  string
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"score": formatScore,
}).Parse(`<!DOCTYPE html>
<html lang="sk">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Arial, sans-serif; padding: 20px; }
h1 { color: #0B4EA2; }
table { width: 100%; border-collapse: collapse; margin-top: 20px; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #0B4EA2; color: white; }
.risk-high { background-color: #fee2e2; }
.risk-medium { background-color: #fed7aa; }
.risk-low { background-color: #dbeafe; }
.disclaimer { margin-top: 24px; font-size: 0.9em; color: #555; }
@media print { body { padding: 0; } }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Dátum: <span class="generated-at">{{.GeneratedAt}}</span></p>
{{- if .Query}}
<p>Vyhľadávanie: <strong class="query">{{.Query}}</strong></p>
{{- end}}
{{- if .Companies}}
<h2>Firmy</h2>
<table id="companies">
<thead><tr><th>IČO</th><th>Názov</th><th>Krajina</th><th>Adresa</th><th>Stav</th><th>Konatelia</th><th>Risk Score</th><th>Virtuálne sídlo</th></tr></thead>
<tbody>
{{- range .Companies}}
<tr class="risk-{{.Level}}" data-ico="{{.Identifier}}"><td>{{.Identifier}}</td><td>{{.Name}}</td><td>{{.Country}}</td><td>{{.Address}}</td><td>{{.Status}}</td><td>{{.Executives}}</td><td class="score">{{printf "%.1f" .RiskScore}}</td><td>{{if .VirtualSeat}}Áno{{else}}Nie{{end}}</td></tr>
{{- end}}
</tbody>
</table>
{{- end}}
{{- if .Nodes}}
<h2>Graf vzťahov</h2>
<table id="nodes">
<thead><tr><th>Typ</th><th>ID</th><th>Label</th><th>Krajina</th><th>Risk Score</th></tr></thead>
<tbody>
{{- range .Nodes}}
<tr data-id="{{.ID}}"><td>{{.Type}}</td><td>{{.ID}}</td><td>{{.Label}}</td><td>{{.Country}}</td><td>{{score .RiskScore}}</td></tr>
{{- end}}
</tbody>
</table>
<table id="edges">
<thead><tr><th>Source</th><th>Target</th><th>Typ vzťahu</th></tr></thead>
<tbody>
{{- range .Edges}}
<tr><td>{{.Source}}</td><td>{{.Target}}</td><td>{{.Type}}</td></tr>
{{- end}}
</tbody>
</table>
{{- end}}
<p class="disclaimer">{{.Disclaimer}}</p>
</body>
</html>
`))

// WriteReport рендерит печатный HTML-отчет по компаниям и графу
func (e *Exporter) WriteReport(w io.Writer, r Report) error {
	if len(r.Companies) == 0 && r.Graph.IsEmpty() {
		return ErrNoData
	}

	view := reportView{
		Title:       "ILUMINATI SYSTEM - Export",
		Query:       r.Query,
		GeneratedAt: e.now().Format(timestampLayout),
		Companies:   make([]reportCompany, 0, len(r.Companies)),
		Disclaimer:  company.RiskDisclaimer,
	}
	for _, c := range r.Companies {
		view.Companies = append(view.Companies, reportCompany{
			Company:    c,
			Level:      company.RiskLevel(c.RiskScore),
			Executives: partyNames(c.Executives),
		})
	}
	if !r.Graph.IsEmpty() {
		view.Nodes = r.Graph.Nodes
		view.Edges = r.Graph.Edges
	}

	if err := reportTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
