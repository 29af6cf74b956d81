// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package uniprot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bioannotate/internal/httputil"
	"github.com/pdiddy/bioannotate/pkg/types"
)

const sampleProteinJSON = `{
  "accession": "P68871",
  "id": "HBB_HUMAN",
  "protein": {
    "recommendedName": {"fullName": {"value": "Hemoglobin subunit beta"}},
    "alternativeName": [{"fullName": {"value": "Beta-globin"}}]
  },
  "gene": [{"name": {"value": "HBB"}}],
  "organism": {
    "taxonomy": 9606,
    "names": [
      {"type": "scientific", "value": "Homo sapiens"},
      {"type": "common", "value": "Human"}
    ]
  },
  "comments": [
    {"type": "SUBUNIT", "text": [{"value": "Heterotetramer of two alpha chains and two beta chains."}]},
    {"type": "FUNCTION", "text": [{"value": " Involved in oxygen transport from the lung to the various peripheral tissues. "}]}
  ],
  "sequence": {"version": 2, "length": 147, "mass": 15998, "sequence": "MVHLTPEEKS"}
}`

const unreviewedProteinJSON = `{
  "accession": "A0A024R161",
  "protein": {"submittedName": [{"fullName": {"value": "Guanine nucleotide-binding protein subunit gamma"}}]},
  "organism": {"names": [{"type": "scientific", "value": "Homo sapiens"}]},
  "sequence": {"length": 58}
}`

func newTestClient(ts *httptest.Server) *Client {
	cfg := types.DefaultConfig()
	cfg.UniProt.BaseURL = ts.URL + "/proteins/"
	return NewClient(ts.Client(), cfg)
}

func TestFetch(t *testing.T) {
	var gotPath, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sampleProteinJSON)
	}))
	defer ts.Close()

	rec, err := newTestClient(ts).Fetch(context.Background(), " P68871 ")
	require.NoError(t, err)

	assert.Equal(t, "/proteins/P68871", gotPath)
	assert.Equal(t, types.DefaultUserAgent, gotUA)
	assert.Equal(t, &types.UniProtRecord{
		Identifier:      "P68871",
		ProteinName:     "Hemoglobin subunit beta",
		SequenceLength:  147,
		Organism:        "Homo sapiens",
		OrganismCommon:  "Human",
		GeneName:        "HBB",
		MolecularWeight: 15998,
		FunctionText:    "Involved in oxygen transport from the lung to the various peripheral tissues.",
	}, rec)
}

func TestFetch_SubmittedNameFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, unreviewedProteinJSON)
	}))
	defer ts.Close()

	rec, err := newTestClient(ts).Fetch(context.Background(), "A0A024R161")
	require.NoError(t, err)

	assert.Equal(t, "Guanine nucleotide-binding protein subunit gamma", rec.ProteinName)
	assert.Equal(t, 58, rec.SequenceLength)
	assert.Empty(t, rec.GeneName)
	assert.Empty(t, rec.OrganismCommon)
	assert.Empty(t, rec.FunctionText)
}

func TestFetch_MissingFieldsDefaultBlank(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"accession": "P12345"}`)
	}))
	defer ts.Close()

	rec, err := newTestClient(ts).Fetch(context.Background(), "P12345")
	require.NoError(t, err)
	assert.Equal(t, &types.UniProtRecord{Identifier: "P12345"}, rec)
}

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		errMsg     string
	}{
		{"not found", http.StatusNotFound, `{"errorMessage":["Entry not found"]}`, http.StatusNotFound, "HTTP 404"},
		{"server error", http.StatusInternalServerError, ``, http.StatusInternalServerError, "HTTP 500"},
		{"malformed json", http.StatusOK, `{"protein": [`, 0, "parsing response"},
		{"wrong shape", http.StatusOK, `["P12345"]`, 0, "parsing response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			rec, err := newTestClient(ts).Fetch(context.Background(), "P12345")
			require.Error(t, err)
			assert.Nil(t, rec)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Contains(t, err.Error(), "P12345")

			var se *httputil.StatusError
			if tt.wantStatus != 0 {
				require.True(t, errors.As(err, &se))
				assert.Equal(t, tt.wantStatus, se.StatusCode)
			} else {
				assert.False(t, errors.As(err, &se))
			}
		})
	}
}

func TestFetch_EmptyAccessionMakesNoRequest(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
	}))
	defer ts.Close()

	_, err := newTestClient(ts).Fetch(context.Background(), "   ")
	require.Error(t, err)
	assert.False(t, called)
}
