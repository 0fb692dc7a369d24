// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the study-engine CLI.
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

// rootCmd is the base command for the study-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "study-engine",
	Short: "Turn documents into linked study artifacts",
	Long: `study-engine extracts keywords from documents and builds linked study
artifacts from them: a knowledge hierarchy, a positioned concept graph,
and spaced-repetition flashcards.

Each stage is a subcommand: process runs the pipeline over documents,
study manages the card index and review schedule.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./study-engine.yaml or ~/.config/study-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("study-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "study-engine"))
		}
	}

	viper.SetEnvPrefix("STUDY_ENGINE")
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
