package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"iluminati/company"
	"iluminati/database"
	"iluminati/graph"
	"iluminati/lookup"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printResult(w io.Writer, res *lookup.Result) {
	fmt.Fprintf(w, "Zdroj: %s | Nájdené: %d z %d\n", pathLabel(res.Path), len(res.Companies), res.Total)
	if len(res.Companies) == 0 {
		fmt.Fprintln(w, "Žiadne výsledky.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "IČO\tNÁZOV\tKRAJINA\tSTAV\tRIZIKO\tVIRTUÁLNE SÍDLO")
	for _, c := range res.Companies {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.1f (%s)\t%s\n",
			c.Identifier, c.Name, c.Country, c.Status, c.RiskScore, company.RiskLevel(c.RiskScore), yesNo(c.VirtualSeat))
	}
	tw.Flush()

	if res.Graph != nil {
		fmt.Fprintf(w, "Graf: %d uzlov, %d vzťahov\n", len(res.Graph.Nodes), len(res.Graph.Edges))
	}
	fmt.Fprintln(w, company.RiskDisclaimer)
}

func printCompany(w io.Writer, c *company.Company) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Názov:\t%s\n", c.Name)
	fmt.Fprintf(tw, "IČO:\t%s\n", c.Identifier)
	if c.DIC != "" {
		fmt.Fprintf(tw, "DIČ:\t%s\n", c.DIC)
	}
	fmt.Fprintf(tw, "Právna forma:\t%s\n", c.LegalForm)
	fmt.Fprintf(tw, "Stav:\t%s\n", c.Status)
	fmt.Fprintf(tw, "Adresa:\t%s\n", c.Address)
	fmt.Fprintf(tw, "Krajina:\t%s\n", c.Country)
	fmt.Fprintf(tw, "Konatelia:\t%s\n", partyNames(c.Executives))
	fmt.Fprintf(tw, "Spoločníci:\t%s\n", partyNames(c.Shareholders))
	fmt.Fprintf(tw, "Rizikové skóre:\t%.1f (%s)\n", c.RiskScore, company.RiskLevel(c.RiskScore))
	fmt.Fprintf(tw, "Virtuálne sídlo:\t%s\n", yesNo(c.VirtualSeat))
	tw.Flush()
	fmt.Fprintln(w, company.RiskDisclaimer)
}

func printHistory(w io.Writer, entries []database.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "História je prázdna.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ČAS\tDOPYT\tKRAJINY\tZDROJ\tVÝSLEDKY\tTRVANIE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%dms\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Query, strings.Join(e.Countries, ","),
			pathLabel(lookup.Path(e.Path)), e.ResultCount, e.DurationMs)
	}
	tw.Flush()
}

func printGraphSummary(w io.Writer, g *graph.Graph) {
	counts := make(map[graph.NodeType]int)
	for _, n := range g.Nodes {
		counts[n.Type]++
	}
	fmt.Fprintf(w, "Uzly: %d, vzťahy: %d\n", len(g.Nodes), len(g.Edges))
	for _, t := range []graph.NodeType{graph.NodeCompany, graph.NodePerson, graph.NodeAddress, graph.NodeDebt} {
		if counts[t] > 0 {
			fmt.Fprintf(w, "  %s: %d\n", t, counts[t])
		}
	}
}

func printTrace(w io.Writer, trace lookup.Trace) {
	states := trace.States()
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = string(s)
	}
	fmt.Fprintf(w, "Priebeh: %s\n", strings.Join(parts, " → "))
}

func pathLabel(p lookup.Path) string {
	if p == lookup.PathNone {
		return "-"
	}
	return string(p)
}

func partyNames(parties []company.Party) string {
	if len(parties) == 0 {
		return "-"
	}
	names := make([]string, len(parties))
	for i, p := range parties {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

func yesNo(v bool) string {
	if v {
		return "áno"
	}
	return "nie"
}
