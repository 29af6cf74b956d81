// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package annotate runs the lookup pipeline: for each identifier it fetches
// the UniProt protein record, then the Ensembl gene record, and merges both
// into one output row. Lookups run one at a time in input order.
package annotate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/pdiddy/bioannotate/internal/ensembl"
	"github.com/pdiddy/bioannotate/pkg/types"
)

// ErrNoIdentifiers is returned when a run is started with nothing to look up.
var ErrNoIdentifiers = errors.New("no identifiers to process")

// ProteinFetcher looks up one accession in a protein database.
type ProteinFetcher interface {
	Fetch(ctx context.Context, accession string) (*types.UniProtRecord, error)
}

// GeneFetcher looks up the gene for one identifier. The hint carries what
// the protein lookup found and is empty when that lookup failed.
type GeneFetcher interface {
	Fetch(ctx context.Context, identifier string, hint ensembl.Hint) (*types.EnsemblRecord, error)
}

// Annotator owns the clients for one run.
type Annotator struct {
	UniProt ProteinFetcher
	Ensembl GeneFetcher
	Log     *slog.Logger
}

// Result holds the rows of a run and per-source failure counts.
type Result struct {
	Rows          []types.MergedRow
	UniProtFailed int
	EnsemblFailed int
}

// Total returns the number of rows produced.
func (r Result) Total() int { return len(r.Rows) }

// HasFailures reports whether any lookup failed.
func (r Result) HasFailures() bool {
	return r.UniProtFailed > 0 || r.EnsemblFailed > 0
}

// Run annotates ids in order and returns exactly one row per identifier.
// Lookup failures are logged and leave the affected columns blank; they
// never drop a row. Run fails only for an empty list or a cancelled
// context.
func (a *Annotator) Run(ctx context.Context, ids []string, w io.Writer) (Result, error) {
	if len(ids) == 0 {
		return Result{}, ErrNoIdentifiers
	}
	log := a.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	res := Result{Rows: make([]types.MergedRow, 0, len(ids))}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		protein, err := a.UniProt.Fetch(ctx, id)
		if err != nil {
			log.Warn("protein lookup failed", "identifier", id, "source", "uniprot", "err", err)
			res.UniProtFailed++
			protein = nil
		}

		gene, err := a.Ensembl.Fetch(ctx, id, ensembl.HintFrom(protein))
		if err != nil {
			log.Warn("gene lookup failed", "identifier", id, "source", "ensembl", "err", err)
			res.EnsemblFailed++
			gene = nil
		}

		res.Rows = append(res.Rows, Merge(id, protein, gene))
		fmt.Fprintf(w, "annotated: %s (uniprot %s, ensembl %s)\n", id, status(protein != nil), status(gene != nil))
	}

	fmt.Fprintf(w, "\nBatch summary: %d rows, %d UniProt failure(s), %d Ensembl failure(s)\n",
		res.Total(), res.UniProtFailed, res.EnsemblFailed)
	return res, nil
}

func status(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}
