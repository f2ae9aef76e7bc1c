// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the keep-export CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/keep-export/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the keep-export CLI.
var rootCmd = &cobra.Command{
	Use:   "keep-export",
	Short: "Convert a Google Keep Takeout export into Markdown and PDF documents",
	Long: `keep-export reads the JSON records of a Google Keep Takeout export and
writes one document per note: Markdown (with attachments copied alongside),
PDF, or both. Trashed notes are skipped; archived and pinned notes are marked
in their titles.

Settings come from flags, KEEP_EXPORT_* environment variables, or a
keep-export.yaml config file, in that order of precedence.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./keep-export.yaml or ~/.config/keep-export/config.yaml)")

	config.SetDefaults(viper.GetViper())
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("keep-export")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "keep-export"))
		}
	}

	viper.SetEnvPrefix("KEEP_EXPORT")
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
