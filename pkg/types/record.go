// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the bioannotate pipeline:
// the per-source records parsed from the UniProt and Ensembl APIs, the
// merged row written to the spreadsheet, and the run configuration.
package types

import "strconv"

// UniProtRecord holds the protein fields extracted from one EBI Proteins
// API response. Absent JSON fields are left at their zero value.
type UniProtRecord struct {
	// Identifier is the accession the record was requested with.
	Identifier string `json:"identifier" yaml:"identifier"`

	// ProteinName is the recommended full name (e.g. "Hemoglobin subunit beta").
	ProteinName string `json:"protein_name" yaml:"protein_name"`

	// SequenceLength is the canonical sequence length in residues.
	SequenceLength int `json:"sequence_length" yaml:"sequence_length"`

	// Organism is the scientific organism name (e.g. "Homo sapiens").
	Organism string `json:"organism" yaml:"organism"`

	// OrganismCommon is the common organism name (e.g. "Human").
	OrganismCommon string `json:"organism_common,omitempty" yaml:"organism_common,omitempty"`

	// GeneName is the primary gene name reported by UniProt. It seeds the
	// Ensembl cross-reference lookup.
	GeneName string `json:"gene_name,omitempty" yaml:"gene_name,omitempty"`

	// MolecularWeight is the sequence mass in Daltons.
	MolecularWeight int `json:"molecular_weight,omitempty" yaml:"molecular_weight,omitempty"`

	// FunctionText is the first FUNCTION comment.
	FunctionText string `json:"function_text,omitempty" yaml:"function_text,omitempty"`
}

// EnsemblRecord holds the gene fields extracted from the Ensembl lookup.
type EnsemblRecord struct {
	Identifier  string `json:"identifier" yaml:"identifier"`
	GeneID      string `json:"gene_id" yaml:"gene_id"`
	GeneSymbol  string `json:"gene_symbol" yaml:"gene_symbol"`
	Chromosome  string `json:"chromosome" yaml:"chromosome"`
	Start       int64  `json:"start" yaml:"start"`
	End         int64  `json:"end" yaml:"end"`
	Strand      int    `json:"strand" yaml:"strand"`
	Biotype     string `json:"biotype" yaml:"biotype"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Species     string `json:"species,omitempty" yaml:"species,omitempty"`
}

// MergedRow is one output row: the union of the UniProt and Ensembl fields
// for a single input identifier. Fields from a failed lookup stay blank.
type MergedRow struct {
	Identifier string `json:"identifier" yaml:"identifier"`

	ProteinName    string `json:"protein_name" yaml:"protein_name"`
	SequenceLength int    `json:"sequence_length,omitempty" yaml:"sequence_length,omitempty"`
	Organism       string `json:"organism" yaml:"organism"`

	GeneSymbol  string `json:"gene_symbol" yaml:"gene_symbol"`
	Chromosome  string `json:"chromosome" yaml:"chromosome"`
	Start       int64  `json:"start,omitempty" yaml:"start,omitempty"`
	End         int64  `json:"end,omitempty" yaml:"end,omitempty"`
	Strand      int    `json:"strand,omitempty" yaml:"strand,omitempty"`
	Biotype     string `json:"biotype" yaml:"biotype"`
	GeneID      string `json:"gene_id" yaml:"gene_id"`
	Description string `json:"description" yaml:"description"`
	Species     string `json:"species" yaml:"species"`

	UniProtGene     string `json:"uniprot_gene" yaml:"uniprot_gene"`
	OrganismCommon  string `json:"organism_common" yaml:"organism_common"`
	MolecularWeight int    `json:"molecular_weight,omitempty" yaml:"molecular_weight,omitempty"`
	FunctionText    string `json:"function" yaml:"function"`
}

// Columns is the fixed header row. Cells and Strings return values in the
// same order.
var Columns = []string{
	"Identifier",
	"Protein Name",
	"Sequence Length",
	"Organism",
	"Gene Symbol",
	"Chromosome",
	"Start",
	"End",
	"Strand",
	"Biotype",
	"Ensembl Gene ID",
	"Gene Description",
	"Ensembl Species",
	"UniProt Gene",
	"Organism (Common)",
	"Molecular Weight (Da)",
	"Function",
}

// Cells returns the row as typed cell values for spreadsheet output.
// Numeric fields are ints when set and "" when zero, so a failed lookup
// leaves an empty cell rather than a 0.
func (r MergedRow) Cells() []any {
	return []any{
		r.Identifier,
		r.ProteinName,
		blankInt(int64(r.SequenceLength)),
		r.Organism,
		r.GeneSymbol,
		r.Chromosome,
		blankInt(r.Start),
		blankInt(r.End),
		blankInt(int64(r.Strand)),
		r.Biotype,
		r.GeneID,
		r.Description,
		r.Species,
		r.UniProtGene,
		r.OrganismCommon,
		blankInt(int64(r.MolecularWeight)),
		r.FunctionText,
	}
}

// Strings returns the row as text cells for delimited output.
func (r MergedRow) Strings() []string {
	cells := r.Cells()
	out := make([]string, len(cells))
	for i, c := range cells {
		switch v := c.(type) {
		case string:
			out[i] = v
		case int64:
			out[i] = strconv.FormatInt(v, 10)
		}
	}
	return out
}

func blankInt(v int64) any {
	if v == 0 {
		return ""
	}
	return v
}
