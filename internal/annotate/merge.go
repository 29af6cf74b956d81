// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package annotate

import "github.com/pdiddy/bioannotate/pkg/types"

// Merge combines the protein and gene records for one identifier into a
// single row. Either record may be nil, in which case its columns stay
// blank; the identifier column is always set.
func Merge(identifier string, u *types.UniProtRecord, e *types.EnsemblRecord) types.MergedRow {
	row := types.MergedRow{Identifier: identifier}
	if u != nil {
		row.ProteinName = u.ProteinName
		row.SequenceLength = u.SequenceLength
		row.Organism = u.Organism
		row.UniProtGene = u.GeneName
		row.OrganismCommon = u.OrganismCommon
		row.MolecularWeight = u.MolecularWeight
		row.FunctionText = u.FunctionText
	}
	if e != nil {
		row.GeneSymbol = e.GeneSymbol
		row.Chromosome = e.Chromosome
		row.Start = e.Start
		row.End = e.End
		row.Strand = e.Strand
		row.Biotype = e.Biotype
		row.GeneID = e.GeneID
		row.Description = e.Description
		row.Species = e.Species
	}
	return row
}
