// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mdconvert/internal/convert"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert every file in a directory to Markdown",
	Long: `Batch walks the input directory (optionally recursively, optionally
filtered by extension), converts each file through markitdown, and writes one
<stem>.md per success flat into the output directory.

Individual file failures are printed to stderr and never stop the run; the
closing tally reports succeeded/total. The exit status is 0 regardless of
per-file failures, and 2 when the input directory is missing or not a
directory.`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringP("input", "i", "", "input directory containing files to convert")
	batchCmd.Flags().StringP("output", "o", "", "output directory for generated .md files")
	batchCmd.Flags().StringSliceP("extensions", "e", nil, "file extensions to include, with or without a leading dot (default: all files)")
	batchCmd.Flags().BoolP("recursive", "r", false, "recurse into subdirectories")
	batchCmd.MarkFlagRequired("input")
	batchCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	inputDir, _ := cmd.Flags().GetString("input")
	outputDir, _ := cmd.Flags().GetString("output")
	exts, _ := cmd.Flags().GetStringSlice("extensions")
	recursive, _ := cmd.Flags().GetBool("recursive")

	// Validate before any work: a bad input directory must not create the
	// output directory.
	info, err := os.Stat(inputDir)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Input directory does not exist: %s\n", inputDir)
		os.Exit(2)
	}

	converter, err := newConverter(converterConfig())
	if err != nil {
		return err
	}
	gw := convert.NewGateway(converter)

	_, err = convert.RunBatch(gw, inputDir, outputDir, convert.NormalizeExtensions(exts), recursive, os.Stdout, os.Stderr)
	return err
}
