// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mdconvert CLI. The two conversion
// front-ends are subcommands: batch (directory-to-directory conversion) and
// serve (the interactive web app). Both delegate all document understanding
// to the external markitdown tool through the conversion gateway.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mdconvert/internal/container"
	"github.com/pdiddy/mdconvert/internal/convert"
	"github.com/pdiddy/mdconvert/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the mdconvert CLI.
var rootCmd = &cobra.Command{
	Use:   "mdconvert",
	Short: "Batch and interactive front-ends over markitdown",
	Long: `mdconvert wraps the external markitdown document-to-Markdown converter
with two thin front-ends. "batch" walks an input directory and writes one .md
file per input; "serve" runs an interactive web app with uploads, per-file
result tabs, and a ZIP download of all outputs.

mdconvert contains no parsing or format detection of its own: every document
is handed to markitdown, and per-file failures are collected, never fatal.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./mdconvert.yaml or ~/.config/mdconvert/config.yaml)")
}

func initConfig() {
	// A .env in the working directory may carry MDCONVERT_* overrides.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mdconvert")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mdconvert"))
		}
	}

	viper.SetEnvPrefix("MDCONVERT")
	viper.AutomaticEnv()

	viper.SetDefault("converter.backend", string(types.BackendExec))
	viper.SetDefault("converter.binary", "markitdown")
	viper.SetDefault("converter.python", "python3")
	viper.SetDefault("converter.image", convert.DefaultImage)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.scratch_dir", "mdconvert_uploads")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("mirror.backend", string(types.MirrorNone))
	viper.SetDefault("history.path", "")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// converterConfig assembles the gateway backend settings from viper.
func converterConfig() types.ConverterConfig {
	return types.ConverterConfig{
		Backend: types.ConverterBackend(viper.GetString("converter.backend")),
		Binary:  viper.GetString("converter.binary"),
		Python:  viper.GetString("converter.python"),
		Image:   viper.GetString("converter.image"),
	}
}

// newConverter builds the configured converter backend.
func newConverter(cfg types.ConverterConfig) (convert.Converter, error) {
	switch cfg.Backend {
	case types.BackendContainer:
		rt, err := container.Detect()
		if err != nil {
			return nil, err
		}
		return convert.NewContainerConverter(rt, cfg.Image)
	case types.BackendExec, "":
		return convert.NewExecConverter(cfg), nil
	default:
		return nil, fmt.Errorf("unknown converter backend %q: use exec or container", cfg.Backend)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
