// Command cli analyzes tabular files from the command line. Multiple files
// are analyzed concurrently; each file gets its own independent engine
// invocation.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"datalens/adapters/tabular"
	domain "datalens/domain/analysis"
	"datalens/internal/analysis"
	"datalens/internal/report"
	"datalens/internal/testkit"
)

func main() {
	format := flag.String("format", "json", "output format: json, markdown or html")
	tier := flag.String("tier", "pro", "report entitlements tier: free or pro")
	identifiers := flag.String("identifiers", "", "comma-separated identifier column names to exclude from aggregation")
	demo := flag.Bool("demo", false, "analyze a synthetic demo table instead of files")
	demoRows := flag.Int("demo-rows", 120, "row count for the demo table")
	flag.Parse()

	files := flag.Args()
	if !*demo && len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: cli [flags] <file.csv|file.xlsx> ...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	var identifierCols []string
	if *identifiers != "" {
		identifierCols = strings.Split(*identifiers, ",")
	}

	engine := analysis.NewEngine()
	opts := analysis.Options{IdentifierColumns: identifierCols}

	if *demo {
		result := engine.Analyze(testkit.SalesTable(*demoRows), "demo.csv", opts)
		if err := emit(result, *format, *tier); err != nil {
			fmt.Fprintf(os.Stderr, "demo: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Analyze concurrently, emit sequentially so outputs never interleave.
	results := make([]*domain.Result, len(files))
	var group errgroup.Group
	for i, path := range files {
		i, path := i, path
		group.Go(func() error {
			tbl, err := tabular.NewReader(path).Read()
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = engine.Analyze(tbl, filepath.Base(path), opts)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, result := range results {
		if err := emit(result, *format, *tier); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func emit(result *domain.Result, format, tier string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "markdown":
		_, err := os.Stdout.WriteString(report.NewBuilder(entitlementsFor(tier)).Markdown(result))
		return err
	case "html":
		_, err := os.Stdout.Write(report.NewBuilder(entitlementsFor(tier)).HTML(result))
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func entitlementsFor(tier string) report.Entitlements {
	if tier == string(report.TierFree) {
		return report.FreeEntitlements()
	}
	return report.ProEntitlements()
}
