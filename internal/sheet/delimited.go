// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bioannotate/pkg/types"
)

func writeDelimited(w io.Writer, rows []types.MergedRow, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(Header()); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Strings()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, rows []types.MergedRow) error {
	if rows == nil {
		rows = []types.MergedRow{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func writeYAML(w io.Writer, rows []types.MergedRow) error {
	if rows == nil {
		rows = []types.MergedRow{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return err
	}
	return enc.Close()
}
