// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bioannotate CLI. It looks up
// protein accessions in UniProt and Ensembl and writes the merged
// annotations to a spreadsheet.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bioannotate/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the bioannotate CLI.
var rootCmd = &cobra.Command{
	Use:   "bioannotate",
	Short: "Annotate protein accessions with UniProt and Ensembl data",
	Long: `bioannotate fetches protein records from the UniProt (EBI Proteins) API
and gene records from the Ensembl REST API for a list of identifiers,
merges them by identifier, and writes one spreadsheet row per identifier.

Lookups that fail leave their columns blank; the row is still written.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bioannotate.yaml or ~/.config/bioannotate/bioannotate.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default info)")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	setDefaults()
}

// setDefaults registers every config key with viper so that environment
// variables are picked up by Unmarshal.
func setDefaults() {
	d := types.DefaultConfig()
	viper.SetDefault("http.timeout", d.HTTP.Timeout)
	viper.SetDefault("http.user_agent", d.HTTP.UserAgent)
	viper.SetDefault("uniprot.base_url", d.UniProt.BaseURL)
	viper.SetDefault("ensembl.base_url", d.Ensembl.BaseURL)
	viper.SetDefault("ensembl.species", d.Ensembl.Species)
	viper.SetDefault("output", d.Output)
	viper.SetDefault("log_level", d.LogLevel)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bioannotate")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bioannotate"))
		}
	}

	viper.SetEnvPrefix("BIOANNOTATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the run configuration from flags, environment, the
// config file and defaults, in that order of precedence.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg.WithDefaults(), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
