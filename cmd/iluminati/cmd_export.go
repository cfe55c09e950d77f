package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"iluminati/export"
	"iluminati/graph"
	"iluminati/importer"
)

type exportOptions struct {
	format    string
	out       string
	countries []string
	node      string
	batch     bool
}

func newExportCmd(opts *options) *cobra.Command {
	eo := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export [query]",
		Short: "Vyhľadá firmy a uloží výsledok do súboru",
		Long: `Exportuje výsledok vyhľadávania alebo uložený graf.

Formáty: csv, json, xlsx, html (tlačová správa).
Bez --out sa použije názov iluminati-export-RRRR-MM-DD.<prípona>, "-" píše na stdout.

Príklady:
  iluminati export "Tatra banka" --format csv
  iluminati export "Tatra banka" --format xlsx --batch
  iluminati export --node company-31320155 --format json --out -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts, eo, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&eo.format, "format", "f", string(export.FormatCSV), "csv | json | xlsx | html")
	cmd.Flags().StringVarP(&eo.out, "out", "o", "", "výstupný súbor")
	cmd.Flags().StringSliceVarP(&eo.countries, "country", "c", nil, "kódy krajín")
	cmd.Flags().StringVar(&eo.node, "node", "", "exportovať okolie uzla z databázy namiesto vyhľadávania")
	cmd.Flags().BoolVar(&eo.batch, "batch", false, "xlsx so zoznamom firiem a štatistikami")
	return cmd
}

func parseFormat(s string) (export.Format, error) {
	switch f := export.Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case export.FormatCSV, export.FormatJSON, export.FormatExcel, export.FormatReport:
		return f, nil
	default:
		return "", fmt.Errorf("nepodporovaný formát exportu: %q", s)
	}
}

func runExport(cmd *cobra.Command, opts *options, eo *exportOptions, query string) error {
	format, err := parseFormat(eo.format)
	if err != nil {
		return err
	}
	if eo.batch && format != export.FormatExcel {
		return fmt.Errorf("--batch vyžaduje --format xlsx")
	}
	if query == "" && eo.node == "" {
		return fmt.Errorf("chýba dopyt alebo --node")
	}

	ctx, cancel := opts.commandContext(cmd)
	defer cancel()
	a, err := opts.newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.collect(ctx, query, eo)
	if err != nil {
		return err
	}

	exporter := a.container.Exporter
	var buf bytes.Buffer
	switch {
	case eo.batch:
		err = exporter.WriteCompaniesExcel(&buf, report.Companies)
	case format == export.FormatReport:
		err = exporter.WriteReport(&buf, report)
	case format == export.FormatCSV:
		err = exporter.WriteCSV(&buf, report.Graph)
	case format == export.FormatJSON:
		err = exporter.WriteJSON(&buf, report.Graph)
	default:
		err = exporter.WriteExcel(&buf, report.Graph)
	}
	if err != nil {
		return err
	}

	out := eo.out
	if out == "" {
		out = exporter.FileName(format)
		if eo.batch {
			out = exporter.BatchFileName()
		}
	}
	if out == "-" {
		_, err = buf.WriteTo(cmd.OutOrStdout())
		return err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Uložené: %s (%d B)\n", out, buf.Len())
	return nil
}

// collect готовит данные выгрузки: окрестность узла из базы или результат поиска
func (a *app) collect(ctx context.Context, query string, eo *exportOptions) (export.Report, error) {
	if eo.node != "" {
		g, err := a.db.Graphs().Neighbourhood(ctx, eo.node)
		if err != nil {
			return export.Report{}, fmt.Errorf("uzol %q: %w", eo.node, err)
		}
		return export.Report{Query: eo.node, Graph: g}, nil
	}

	res, trace := a.container.Client.SearchTrace(ctx, query, eo.countries)
	if res == nil {
		return export.Report{}, fmt.Errorf("%w (%s)", errNoResult, trace.Final())
	}
	g := res.Graph
	if g.IsEmpty() {
		g = graph.FromCompanies(res.Companies)
	}
	return export.Report{Query: query, Companies: res.Companies, Graph: g}, nil
}

func newImportCmd(opts *options) *cobra.Command {
	var (
		store  bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Načíta graf zo súboru CSV, XLSX alebo JSON",
		Long: `Načíta firmy alebo hotový graf zo súboru a vypíše súhrn.
CSV môže byť v UTF-8 alebo Windows-1250, oddeľovač čiarka alebo bodkočiarka.
S --store sa graf uloží do databázy.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := importer.ParseFile(args[0])
			if err != nil {
				return err
			}

			if store {
				ctx, cancel := opts.commandContext(cmd)
				defer cancel()
				if err := storeGraph(ctx, opts, g); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, g)
			}
			printGraphSummary(out, g)
			if store {
				fmt.Fprintf(out, "✓ Uložené do %s\n", opts.cfg.DatabasePath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&store, "store", false, "uložiť graf do databázy")
	cmd.Flags().BoolVar(&asJSON, "json", false, "vypísať načítaný graf v JSON")
	return cmd
}

func storeGraph(ctx context.Context, opts *options, g *graph.Graph) error {
	db, err := opts.openDB()
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Graphs().Save(ctx, g)
}
