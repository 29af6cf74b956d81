// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ensembl

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bioannotate/internal/httputil"
	"github.com/pdiddy/bioannotate/pkg/types"
)

const sampleXrefJSON = `[{"id": "ENSG00000244734", "type": "gene"}]`

const sampleLookupJSON = `{
  "id": "ENSG00000244734",
  "display_name": "HBB",
  "seq_region_name": "11",
  "start": 5225464,
  "end": 5229395,
  "strand": -1,
  "biotype": "protein_coding",
  "description": "hemoglobin subunit beta [Source:HGNC Symbol;Acc:HGNC:4827]",
  "species": "homo_sapiens",
  "object_type": "Gene",
  "assembly_name": "GRCh38"
}`

// requestLog records request URIs seen by a test server.
type requestLog struct {
	mu   sync.Mutex
	uris []string
}

func (l *requestLog) add(uri string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.uris = append(l.uris, uri)
}

func (l *requestLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.uris...)
}

// ensemblTestServer serves xref and lookup endpoints and records the
// request paths it saw.
func ensemblTestServer(t *testing.T, xrefBody string) (*httptest.Server, *requestLog) {
	t.Helper()
	log := &requestLog{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.add(r.URL.RequestURI())
		if r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/xrefs/symbol/homo_sapiens/HBB",
			r.URL.Path == "/xrefs/symbol/homo_sapiens/P68871":
			fmt.Fprint(w, xrefBody)
		case r.URL.Path == "/lookup/id/ENSG00000244734":
			fmt.Fprint(w, sampleLookupJSON)
		default:
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":"No valid lookup found"}`)
		}
	}))
	t.Cleanup(ts.Close)
	return ts, log
}

func newTestClient(ts *httptest.Server) *Client {
	cfg := types.DefaultConfig()
	cfg.Ensembl.BaseURL = ts.URL + "/"
	return NewClient(ts.Client(), cfg)
}

var wantHBB = &types.EnsemblRecord{
	Identifier:  "P68871",
	GeneID:      "ENSG00000244734",
	GeneSymbol:  "HBB",
	Chromosome:  "11",
	Start:       5225464,
	End:         5229395,
	Strand:      -1,
	Biotype:     "protein_coding",
	Description: "hemoglobin subunit beta",
	Species:     "homo_sapiens",
}

func TestFetch_WithHint(t *testing.T) {
	ts, paths := ensemblTestServer(t, sampleXrefJSON)

	rec, err := newTestClient(ts).Fetch(context.Background(), "P68871",
		Hint{GeneName: "HBB", Organism: "Homo sapiens"})
	require.NoError(t, err)

	assert.Equal(t, wantHBB, rec)
	assert.Equal(t, []string{
		"/xrefs/symbol/homo_sapiens/HBB?object_type=gene",
		"/lookup/id/ENSG00000244734",
	}, paths.all())
}

func TestFetch_WithoutHintUsesIdentifierAndDefaultSpecies(t *testing.T) {
	ts, paths := ensemblTestServer(t, sampleXrefJSON)

	rec, err := newTestClient(ts).Fetch(context.Background(), "P68871", Hint{})
	require.NoError(t, err)

	assert.Equal(t, wantHBB, rec)
	assert.Equal(t, "/xrefs/symbol/homo_sapiens/P68871?object_type=gene", paths.all()[0])
}

func TestFetch_StableIDSkipsXref(t *testing.T) {
	ts, paths := ensemblTestServer(t, sampleXrefJSON)

	rec, err := newTestClient(ts).Fetch(context.Background(), "ENSG00000244734.4", Hint{})
	require.NoError(t, err)

	assert.Equal(t, "HBB", rec.GeneSymbol)
	assert.Equal(t, "ENSG00000244734.4", rec.Identifier)
	assert.Equal(t, []string{"/lookup/id/ENSG00000244734"}, paths.all())
}

func TestFetch_SkipsNonGeneXrefs(t *testing.T) {
	ts, _ := ensemblTestServer(t,
		`[{"id": "ENST00000335295", "type": "transcript"}, {"id": "ENSG00000244734", "type": "gene"}]`)

	rec, err := newTestClient(ts).Fetch(context.Background(), "P68871", Hint{GeneName: "HBB"})
	require.NoError(t, err)
	assert.Equal(t, "ENSG00000244734", rec.GeneID)
}

func TestFetch_NoXrefs(t *testing.T) {
	ts, paths := ensemblTestServer(t, `[]`)

	rec, err := newTestClient(ts).Fetch(context.Background(), "P68871", Hint{GeneName: "HBB"})
	require.Error(t, err)
	assert.Nil(t, rec)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "homo_sapiens/HBB")
	assert.Len(t, paths.all(), 1, "lookup must not run without a gene ID")
}

func TestFetch_UnknownSpecies(t *testing.T) {
	ts, _ := ensemblTestServer(t, sampleXrefJSON)

	_, err := newTestClient(ts).Fetch(context.Background(), "P12345",
		Hint{GeneName: "GOT2", Organism: "Oryctolagus cuniculus"})
	require.Error(t, err)

	var se *httputil.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Contains(t, err.Error(), "oryctolagus_cuniculus/GOT2")
}

func TestFetch_MalformedLookup(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": `)
	}))
	defer ts.Close()

	_, err := newTestClient(ts).Fetch(context.Background(), "ENSG00000244734", Hint{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing response")
}

func TestIsStableGeneID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"ENSG00000244734", true},
		{"ENSG00000244734.4", true},
		{"ENSMUSG00000052305", true},
		{"ENST00000335295", false},
		{"ENSP00000333994", false},
		{"P68871", false},
		{"HBB", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStableGeneID(tt.in))
		})
	}
}

func TestSpeciesName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Homo sapiens", "homo_sapiens"},
		{"Homo sapiens (Human)", "homo_sapiens"},
		{"Mus  musculus", "mus_musculus"},
		{"Escherichia coli (strain K12)", "escherichia_coli"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SpeciesName(tt.in))
		})
	}
}

func TestHintFrom(t *testing.T) {
	assert.Equal(t, Hint{}, HintFrom(nil))
	assert.Equal(t, Hint{GeneName: "HBB", Organism: "Homo sapiens"},
		HintFrom(&types.UniProtRecord{GeneName: "HBB", Organism: "Homo sapiens", ProteinName: "x"}))
}
