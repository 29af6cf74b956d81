// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package uniprot fetches protein annotation records from the EBI Proteins
// API (https://www.ebi.ac.uk/proteins/api/proteins/{accession}).
package uniprot

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/bioannotate/internal/httputil"
	"github.com/pdiddy/bioannotate/pkg/types"
)

// Client queries the EBI Proteins API.
type Client struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
}

// NewClient builds a Client from the run configuration.
func NewClient(httpClient *http.Client, cfg types.Config) *Client {
	return &Client{
		HTTP:      httpClient,
		BaseURL:   strings.TrimRight(cfg.UniProt.BaseURL, "/"),
		UserAgent: cfg.HTTP.UserAgent,
	}
}

// Name returns the source label used in logs.
func (c *Client) Name() string { return "uniprot" }

// proteinResponse captures the fields we need from a Proteins API entry.
type proteinResponse struct {
	Accession string `json:"accession"`
	Protein   struct {
		RecommendedName *proteinName  `json:"recommendedName"`
		SubmittedName   []proteinName `json:"submittedName"`
	} `json:"protein"`
	Gene []struct {
		Name *evidencedValue `json:"name"`
	} `json:"gene"`
	Organism struct {
		Names []struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"names"`
	} `json:"organism"`
	Comments []struct {
		Type string           `json:"type"`
		Text []evidencedValue `json:"text"`
	} `json:"comments"`
	Sequence struct {
		Length int `json:"length"`
		Mass   int `json:"mass"`
	} `json:"sequence"`
}

type proteinName struct {
	FullName *evidencedValue `json:"fullName"`
}

type evidencedValue struct {
	Value string `json:"value"`
}

// Fetch retrieves the entry for accession. A non-200 response returns a
// *httputil.StatusError; an unparseable body returns a decode error.
func (c *Client) Fetch(ctx context.Context, accession string) (*types.UniProtRecord, error) {
	accession = strings.TrimSpace(accession)
	if accession == "" {
		return nil, fmt.Errorf("empty UniProt accession")
	}

	apiURL := c.BaseURL + "/" + url.PathEscape(accession)
	header := http.Header{}
	if c.UserAgent != "" {
		header.Set("User-Agent", c.UserAgent)
	}

	var pr proteinResponse
	if err := httputil.GetJSON(ctx, c.HTTP, apiURL, header, &pr); err != nil {
		return nil, fmt.Errorf("UniProt lookup for %s: %w", accession, err)
	}
	return toRecord(accession, pr), nil
}

func toRecord(accession string, pr proteinResponse) *types.UniProtRecord {
	rec := &types.UniProtRecord{
		Identifier:      accession,
		ProteinName:     proteinFullName(pr),
		SequenceLength:  pr.Sequence.Length,
		MolecularWeight: pr.Sequence.Mass,
	}

	for _, n := range pr.Organism.Names {
		switch n.Type {
		case "scientific":
			if rec.Organism == "" {
				rec.Organism = n.Value
			}
		case "common":
			if rec.OrganismCommon == "" {
				rec.OrganismCommon = n.Value
			}
		}
	}

	for _, g := range pr.Gene {
		if g.Name != nil && g.Name.Value != "" {
			rec.GeneName = g.Name.Value
			break
		}
	}

	for _, cm := range pr.Comments {
		if cm.Type != "FUNCTION" || len(cm.Text) == 0 {
			continue
		}
		rec.FunctionText = strings.TrimSpace(cm.Text[0].Value)
		break
	}
	return rec
}

// proteinFullName prefers the recommended name and falls back to the first
// submitted name, which is all unreviewed (TrEMBL) entries carry.
func proteinFullName(pr proteinResponse) string {
	if rn := pr.Protein.RecommendedName; rn != nil && rn.FullName != nil && rn.FullName.Value != "" {
		return rn.FullName.Value
	}
	for _, sn := range pr.Protein.SubmittedName {
		if sn.FullName != nil && sn.FullName.Value != "" {
			return sn.FullName.Value
		}
	}
	return ""
}
