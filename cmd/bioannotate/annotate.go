// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bioannotate/internal/annotate"
	"github.com/pdiddy/bioannotate/internal/ensembl"
	"github.com/pdiddy/bioannotate/internal/sheet"
	"github.com/pdiddy/bioannotate/internal/uniprot"
	"github.com/pdiddy/bioannotate/pkg/types"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [identifiers...]",
	Short: "Look up identifiers and write the merged annotation spreadsheet",
	Long: `Annotate looks up each identifier in UniProt and then in Ensembl, one at a
time and in input order, and writes one row per identifier to the output
file once every lookup has finished.

Identifiers come from the arguments and from --input (a text file with one
identifier per line, or a YAML list). Ensembl gene IDs (ENSG...) are looked
up directly; other identifiers are mapped to a gene through the UniProt
gene name and organism, or through Ensembl cross-references when the
UniProt lookup failed.

The output format follows the --output extension: .xlsx, .csv, .tsv, .json,
.yaml or .db (SQLite, one "annotations" table).`,
	Example: `  bioannotate annotate P12345 Q8N726 O00255
  bioannotate annotate --input ids.txt --output results.xlsx
  bioannotate annotate --demo --output demo.csv`,
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().StringP("input", "i", "", "identifier list file (text or .yaml)")
	annotateCmd.Flags().StringP("output", "o", "", "output file (default protein_gene_analysis.xlsx)")
	annotateCmd.Flags().String("species", "", "Ensembl species for lookups without a UniProt organism (default homo_sapiens)")
	annotateCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	annotateCmd.Flags().Bool("demo", false, "annotate the built-in demo identifiers when none are given")
	annotateCmd.Flags().Bool("json", false, "also print the merged rows as JSON on stdout")

	viper.BindPFlag("output", annotateCmd.Flags().Lookup("output"))
	viper.BindPFlag("ensembl.species", annotateCmd.Flags().Lookup("species"))
	viper.BindPFlag("http.timeout", annotateCmd.Flags().Lookup("timeout"))

	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	input, _ := cmd.Flags().GetString("input")
	ids, err := annotate.CollectIdentifiers(args, input)
	if err != nil {
		return err
	}
	if demo, _ := cmd.Flags().GetBool("demo"); demo && len(ids) == 0 {
		ids = annotate.DefaultIdentifiers
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	progress := cmd.OutOrStdout()
	if jsonOutput {
		progress = cmd.ErrOrStderr()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	rows, err := run(ctx, cfg, ids, progress, newLogger(cmd.ErrOrStderr(), cfg.LogLevel))
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	return nil
}

// run annotates ids and writes the output file. The file is written only
// after every lookup has finished, and not at all when ids is empty.
func run(ctx context.Context, cfg types.Config, ids []string, w io.Writer, log *slog.Logger) ([]types.MergedRow, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: pass identifiers as arguments, use --input FILE, or --demo", annotate.ErrNoIdentifiers)
	}

	client := &http.Client{Timeout: cfg.HTTP.Timeout}
	a := &annotate.Annotator{
		UniProt: uniprot.NewClient(client, cfg),
		Ensembl: ensembl.NewClient(client, cfg),
		Log:     log,
	}

	fmt.Fprintf(w, "Annotating %d identifier(s) via UniProt and Ensembl...\n", len(ids))
	res, err := a.Run(ctx, ids, w)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(w, "Writing results to %s\n", cfg.Output)
	if err := sheet.Write(cfg.Output, res.Rows); err != nil {
		return res.Rows, err
	}
	if res.HasFailures() {
		fmt.Fprintf(w, "warning: %d UniProt and %d Ensembl lookup(s) failed; their columns are blank\n",
			res.UniProtFailed, res.EnsemblFailed)
	}
	return res.Rows, nil
}
