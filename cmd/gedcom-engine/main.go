// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the gedcom-engine CLI.
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

// rootCmd is the base command for the gedcom-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "gedcom-engine",
	Short: "Repair, parse, and analyze GEDCOM genealogy files",
	Long: `gedcom-engine ingests GEDCOM genealogy files, repairs malformed level
numbering, reconstructs the record tree, extracts typed entities
(individuals, families, events, sources), and derives the relationship
graph connecting them.

Each stage is a subcommand: repair fixes level numbers, report renders a
Markdown or HTML report, and index stores the extracted entities in a
searchable SQLite database.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./gedcom-engine.yaml or ~/.config/gedcom-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gedcom-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "gedcom-engine"))
		}
	}

	viper.SetEnvPrefix("GEDCOM_ENGINE")
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
