// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Succeeded int
	Total     int
}

// RunBatch converts every candidate file under inputDir through the gateway
// and writes one <stem>.md per success, flat into outputDir (no subdirectory
// mirroring, even when recursive). Per-file failures go to errW and never
// stop the run; the closing tally on out reports succeeded/total. The output
// directory is created if absent.
func RunBatch(gw *Gateway, inputDir, outputDir string, exts []string, recursive bool, out, errW io.Writer) (BatchResult, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	var result BatchResult
	for path := range Candidates(inputDir, exts, recursive) {
		result.Total++
		outPath := filepath.Join(outputDir, Stem(path)+".md")

		text := gw.Convert(path)
		if IsError(text) {
			fmt.Fprintf(errW, "Failed to convert %s: %s\n", path, strings.TrimPrefix(text, ErrorPrefix))
			continue
		}
		if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
			fmt.Fprintf(errW, "Error writing %s: %v\n", outPath, err)
			continue
		}
		fmt.Fprintf(out, "Converted: %s -> %s\n", path, outPath)
		result.Succeeded++
	}

	fmt.Fprintf(out, "Finished: %d/%d files converted successfully\n", result.Succeeded, result.Total)
	return result, nil
}
