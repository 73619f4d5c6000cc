// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the grant-parser CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the grant-parser CLI.
var rootCmd = &cobra.Command{
	Use:   "grant-parser",
	Short: "Parse USPTO patent-grant text dumps into structured records",
	Long: `grant-parser converts a raw text file of concatenated patent-grant
pseudo-XML documents into a structured tabular dataset: one record per
grant, with typed fields for identifiers, text content, and counts.

The pipeline is parse (split + extract + export), search (query the
grant archive), and validate (cross-check exported artifacts).`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./grant-parser.yaml or ~/.config/grant-parser/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("grant-parser")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "grant-parser"))
		}
	}

	viper.SetEnvPrefix("GRANT_PARSER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
