// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by both API clients.
type HTTPConfig struct {
	// Timeout is the per-request timeout applied by the http.Client.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with every request
	// (e.g. "bioannotate/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// UniProtConfig holds settings for the protein lookup.
type UniProtConfig struct {
	// BaseURL is the EBI Proteins API endpoint; the accession is appended
	// as a path segment.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`
}

// EnsemblConfig holds settings for the gene lookup.
type EnsemblConfig struct {
	// BaseURL is the Ensembl REST root (e.g. "https://rest.ensembl.org").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Species is used for cross-reference lookups when the protein
	// record did not supply an organism (default "homo_sapiens").
	Species string `json:"species" yaml:"species" mapstructure:"species"`
}

// Config groups everything a run needs. It is built once by the CLI and
// handed to each client and the writer at construction time.
type Config struct {
	HTTP    HTTPConfig    `json:"http" yaml:"http" mapstructure:"http"`
	UniProt UniProtConfig `json:"uniprot" yaml:"uniprot" mapstructure:"uniprot"`
	Ensembl EnsemblConfig `json:"ensembl" yaml:"ensembl" mapstructure:"ensembl"`

	// Output is the destination spreadsheet path. The extension selects
	// the format: .xlsx (default), .csv, .tsv, .json or .yaml.
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}

// Defaults for Config fields left empty.
const (
	DefaultUniProtBaseURL = "https://www.ebi.ac.uk/proteins/api/proteins"
	DefaultEnsemblBaseURL = "https://rest.ensembl.org"
	DefaultSpecies        = "homo_sapiens"
	DefaultTimeout        = 30 * time.Second
	DefaultUserAgent      = "bioannotate/0.1"
	DefaultOutput         = "protein_gene_analysis.xlsx"
	DefaultLogLevel       = "info"
)

// DefaultConfig returns a Config populated with the public endpoints.
func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Timeout:   DefaultTimeout,
			UserAgent: DefaultUserAgent,
		},
		UniProt: UniProtConfig{BaseURL: DefaultUniProtBaseURL},
		Ensembl: EnsemblConfig{
			BaseURL: DefaultEnsemblBaseURL,
			Species: DefaultSpecies,
		},
		Output:   DefaultOutput,
		LogLevel: DefaultLogLevel,
	}
}

// WithDefaults fills zero-valued fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = d.HTTP.Timeout
	}
	if c.HTTP.UserAgent == "" {
		c.HTTP.UserAgent = d.HTTP.UserAgent
	}
	if c.UniProt.BaseURL == "" {
		c.UniProt.BaseURL = d.UniProt.BaseURL
	}
	if c.Ensembl.BaseURL == "" {
		c.Ensembl.BaseURL = d.Ensembl.BaseURL
	}
	if c.Ensembl.Species == "" {
		c.Ensembl.Species = d.Ensembl.Species
	}
	if c.Output == "" {
		c.Output = d.Output
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	return c
}
