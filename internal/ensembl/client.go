// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ensembl fetches gene annotation records from the Ensembl REST API.
//
// A protein accession is mapped to an Ensembl gene in two requests: a
// cross-reference search (/xrefs/symbol/{species}/{symbol}) resolves the
// stable gene ID, then /lookup/id/{id} returns its location and biotype.
// Identifiers that already are Ensembl gene IDs skip the first request.
package ensembl

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/bioannotate/internal/httputil"
	"github.com/pdiddy/bioannotate/pkg/types"
)

// ErrNotFound is returned when no Ensembl gene cross-references the symbol.
var ErrNotFound = errors.New("no Ensembl gene found")

// stableGeneID matches Ensembl gene IDs across species prefixes:
// "ENSG00000244734", "ENSMUSG00000052305", "ENSG00000244734.4".
var stableGeneID = regexp.MustCompile(`^ENS[A-Z]*G\d{11}(?:\.\d+)?$`)

// sourceTag matches the provenance suffix Ensembl appends to descriptions,
// e.g. " [Source:HGNC Symbol;Acc:HGNC:4827]".
var sourceTag = regexp.MustCompile(`\s*\[Source:[^\]]*\]\s*$`)

// Hint carries what the protein lookup learned about an identifier. Zero
// fields fall back to the identifier itself and the configured species.
type Hint struct {
	GeneName string
	Organism string
}

// HintFrom builds a Hint from a protein record, which may be nil.
func HintFrom(rec *types.UniProtRecord) Hint {
	if rec == nil {
		return Hint{}
	}
	return Hint{GeneName: rec.GeneName, Organism: rec.Organism}
}

// Client queries the Ensembl REST API.
type Client struct {
	HTTP           *http.Client
	BaseURL        string
	UserAgent      string
	DefaultSpecies string
}

// NewClient builds a Client from the run configuration.
func NewClient(httpClient *http.Client, cfg types.Config) *Client {
	return &Client{
		HTTP:           httpClient,
		BaseURL:        strings.TrimRight(cfg.Ensembl.BaseURL, "/"),
		UserAgent:      cfg.HTTP.UserAgent,
		DefaultSpecies: cfg.Ensembl.Species,
	}
}

// Name returns the source label used in logs.
func (c *Client) Name() string { return "ensembl" }

type xref struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type lookupResponse struct {
	ID            string `json:"id"`
	DisplayName   string `json:"display_name"`
	SeqRegionName string `json:"seq_region_name"`
	Start         int64  `json:"start"`
	End           int64  `json:"end"`
	Strand        int    `json:"strand"`
	Biotype       string `json:"biotype"`
	Description   string `json:"description"`
	Species       string `json:"species"`
}

// Fetch resolves identifier to an Ensembl gene and returns its record.
func (c *Client) Fetch(ctx context.Context, identifier string, hint Hint) (*types.EnsemblRecord, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, fmt.Errorf("empty identifier")
	}

	geneID, err := c.ResolveGeneID(ctx, identifier, hint)
	if err != nil {
		return nil, err
	}

	lr, err := c.lookup(ctx, geneID)
	if err != nil {
		return nil, err
	}

	return &types.EnsemblRecord{
		Identifier:  identifier,
		GeneID:      lr.ID,
		GeneSymbol:  lr.DisplayName,
		Chromosome:  lr.SeqRegionName,
		Start:       lr.Start,
		End:         lr.End,
		Strand:      lr.Strand,
		Biotype:     lr.Biotype,
		Description: sourceTag.ReplaceAllString(lr.Description, ""),
		Species:     lr.Species,
	}, nil
}

// ResolveGeneID maps identifier to an unversioned Ensembl stable gene ID.
func (c *Client) ResolveGeneID(ctx context.Context, identifier string, hint Hint) (string, error) {
	if IsStableGeneID(identifier) {
		return stripVersion(identifier), nil
	}

	symbol := hint.GeneName
	if symbol == "" {
		symbol = identifier
	}
	species := SpeciesName(hint.Organism)
	if species == "" {
		species = c.DefaultSpecies
	}

	apiURL := fmt.Sprintf("%s/xrefs/symbol/%s/%s?object_type=gene",
		c.BaseURL, url.PathEscape(species), url.PathEscape(symbol))

	var refs []xref
	if err := httputil.GetJSON(ctx, c.HTTP, apiURL, c.header(), &refs); err != nil {
		return "", fmt.Errorf("Ensembl xref lookup for %s/%s: %w", species, symbol, err)
	}

	for _, r := range refs {
		if r.ID != "" && (r.Type == "" || r.Type == "gene") {
			return r.ID, nil
		}
	}
	return "", fmt.Errorf("%w for %s/%s", ErrNotFound, species, symbol)
}

func (c *Client) lookup(ctx context.Context, geneID string) (*lookupResponse, error) {
	apiURL := c.BaseURL + "/lookup/id/" + url.PathEscape(geneID)

	var lr lookupResponse
	if err := httputil.GetJSON(ctx, c.HTTP, apiURL, c.header(), &lr); err != nil {
		return nil, fmt.Errorf("Ensembl lookup for %s: %w", geneID, err)
	}
	if lr.ID == "" {
		lr.ID = geneID
	}
	return &lr, nil
}

func (c *Client) header() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	if c.UserAgent != "" {
		h.Set("User-Agent", c.UserAgent)
	}
	return h
}

// IsStableGeneID reports whether s looks like an Ensembl gene ID.
func IsStableGeneID(s string) bool {
	return stableGeneID.MatchString(s)
}

func stripVersion(id string) string {
	if i := strings.IndexByte(id, '.'); i >= 0 {
		return id[:i]
	}
	return id
}

// SpeciesName converts a UniProt scientific organism name to the Ensembl
// species path segment: "Homo sapiens (Human)" becomes "homo_sapiens".
func SpeciesName(organism string) string {
	if i := strings.IndexByte(organism, '('); i >= 0 {
		organism = organism[:i]
	}
	return strings.Join(strings.Fields(strings.ToLower(organism)), "_")
}
