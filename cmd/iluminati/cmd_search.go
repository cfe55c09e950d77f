package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"iluminati/company"
	"iluminati/database"
	"iluminati/lookup"
)

// errNoResult бэкенд не ответил ни через v2, ни через legacy
var errNoResult = errors.New("vyhľadávanie zlyhalo: backend je nedostupný")

type searchOptions struct {
	countries   []string
	asJSON      bool
	interactive bool
	store       bool
	trace       bool
}

func newSearchCmd(opts *options) *cobra.Command {
	so := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Vyhľadá firmy podľa názvu alebo IČO",
		Long: `Hľadá firmy cez v2 API, pri chybe prejde na legacy endpoint.

S prepínačom --interactive číta dopyty zo štandardného vstupu po riadkoch.
Nový dopyt zruší predchádzajúci, vypíše sa len výsledok posledného.

Príklady:
  iluminati search "Tatra banka"
  iluminati search 31320155 --country SK --json
  iluminati search --interactive --country SK,CZ`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if so.interactive {
				return runInteractiveSearch(cmd, opts, so)
			}
			if len(args) == 0 {
				return fmt.Errorf("chýba dopyt")
			}
			return runSearch(cmd, opts, so, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringSliceVarP(&so.countries, "country", "c", nil, "kódy krajín (SK, CZ, PL, HU)")
	cmd.Flags().BoolVar(&so.asJSON, "json", false, "výstup v JSON")
	cmd.Flags().BoolVarP(&so.interactive, "interactive", "i", false, "interaktívny režim")
	cmd.Flags().BoolVar(&so.store, "store", false, "uložiť históriu a graf do databázy")
	cmd.Flags().BoolVar(&so.trace, "trace", false, "vypísať prechody stavového automatu")
	return cmd
}

func runSearch(cmd *cobra.Command, opts *options, so *searchOptions, query string) error {
	ctx, cancel := opts.commandContext(cmd)
	defer cancel()

	a, err := opts.newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	started := time.Now()
	res, trace := a.container.Client.SearchTrace(ctx, query, so.countries)
	if so.store {
		a.remember(ctx, opts, query, so.countries, res, time.Since(started))
	}

	out := cmd.OutOrStdout()
	if so.trace {
		printTrace(out, trace)
	}
	if res == nil {
		return fmt.Errorf("%w (%s)", errNoResult, trace.Final())
	}
	if so.asJSON {
		return writeJSON(out, res)
	}
	printResult(out, res)
	return nil
}

// runInteractiveSearch поиск по строкам stdin, побеждает последний запрос
func runInteractiveSearch(cmd *cobra.Command, opts *options, so *searchOptions) error {
	ctx, cancel := opts.commandContext(cmd)
	defer cancel()

	a, err := opts.newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	session := lookup.NewSession(a.container.Client)
	out := &lockedWriter{w: cmd.OutOrStdout()}

	var wg sync.WaitGroup
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if query == ":q" {
			break
		}

		wg.Add(1)
		go func(query string) {
			defer wg.Done()
			started := time.Now()
			res, trace := session.Search(ctx, query, so.countries)
			if trace.Final() == lookup.StateSuperseded {
				opts.logger.Debug("search superseded", "query", query)
				return
			}
			if so.store {
				a.remember(ctx, opts, query, so.countries, res, time.Since(started))
			}

			out.Lock()
			defer out.Unlock()
			fmt.Fprintf(out.w, "» %s\n", query)
			if so.trace {
				printTrace(out.w, trace)
			}
			if res == nil {
				fmt.Fprintf(out.w, "%v (%s)\n", errNoResult, trace.Final())
				return
			}
			if so.asJSON {
				_ = writeJSON(out.w, res)
				return
			}
			printResult(out.w, res)
		}(query)
	}
	wg.Wait()
	return scanner.Err()
}

// remember записывает поиск в историю и сохраняет граф результата
func (a *app) remember(ctx context.Context, opts *options, query string, countries []string, res *lookup.Result, took time.Duration) {
	entry := database.HistoryEntry{
		Query:      query,
		Countries:  countries,
		DurationMs: took.Milliseconds(),
	}
	if res != nil {
		entry.Path = string(res.Path)
		entry.ResultCount = len(res.Companies)
	}
	if _, err := a.db.History().Record(ctx, entry); err != nil {
		opts.logger.Warn("failed to record search history", "error", err)
	}
	if res != nil && res.Graph != nil && !res.Graph.IsEmpty() {
		if err := a.db.Graphs().Save(ctx, res.Graph); err != nil {
			opts.logger.Warn("failed to store search graph", "error", err)
		}
	}
}

func newCompanyCmd(opts *options) *cobra.Command {
	var (
		country string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "company [ico]",
		Short: "Detail firmy podľa IČO",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ico := args[0]
			if !company.IsValidICO(ico) {
				return fmt.Errorf("neplatné IČO: %q", ico)
			}

			ctx, cancel := opts.commandContext(cmd)
			defer cancel()
			a, err := opts.newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			found := a.container.Client.LookupByICO(ctx, ico, country)
			if found == nil {
				return fmt.Errorf("firma %s/%s nebola nájdená", company.NormalizeCountry(country), company.FormatICO(ico))
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), found)
			}
			printCompany(cmd.OutOrStdout(), found)
			return nil
		},
	}

	cmd.Flags().StringVarP(&country, "country", "c", company.DefaultCountry, "kód krajiny")
	cmd.Flags().BoolVar(&asJSON, "json", false, "výstup v JSON")
	return cmd
}

func newHistoryCmd(opts *options) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Posledné vyhľadávania uložené v databáze",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.commandContext(cmd)
			defer cancel()

			db, err := opts.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			entries, err := db.History().Recent(ctx, limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			printHistory(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "počet záznamov")
	cmd.Flags().BoolVar(&asJSON, "json", false, "výstup v JSON")
	return cmd
}

// lockedWriter сериализует вывод параллельных поисков
type lockedWriter struct {
	sync.Mutex
	w io.Writer
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
