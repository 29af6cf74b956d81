// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package annotate

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// DefaultIdentifiers is the demo list used when the caller asks for it.
var DefaultIdentifiers = []string{"P12345", "Q8N726", "O00255"}

// identifierFile is the mapping form of a YAML identifier list.
type identifierFile struct {
	Identifiers []string `yaml:"identifiers"`
}

// ReadIdentifiers loads identifiers from path. Files ending in .yaml or
// .yml hold either a top-level sequence or an "identifiers:" key. Any
// other file is plain text: tokens separated by whitespace or commas, with
// "#" starting a comment.
func ReadIdentifiers(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading identifier list: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		ids, err := parseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parsing identifier list %s: %w", path, err)
		}
		return ids, nil
	default:
		return ParseIdentifiers(bytes.NewReader(data))
	}
}

func parseYAML(data []byte) ([]string, error) {
	var list []string
	if err := yaml.Unmarshal(data, &list); err == nil {
		return clean(list), nil
	}
	var f identifierFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return clean(f.Identifiers), nil
}

// ParseIdentifiers reads a plain-text identifier list.
func ParseIdentifiers(r io.Reader) ([]string, error) {
	var ids []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		ids = append(ids, strings.FieldsFunc(line, isSeparator)...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading identifier list: %w", err)
	}
	return ids, nil
}

// CollectIdentifiers returns args followed by the entries of the list file
// at path (when path is non-empty), trimmed with blanks removed. Input
// order and duplicates are kept: each entry yields one output row.
func CollectIdentifiers(args []string, path string) ([]string, error) {
	ids := clean(args)
	if path != "" {
		fromFile, err := ReadIdentifiers(path)
		if err != nil {
			return nil, err
		}
		ids = append(ids, fromFile...)
	}
	return ids, nil
}

func clean(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func isSeparator(r rune) bool {
	return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\r'
}
