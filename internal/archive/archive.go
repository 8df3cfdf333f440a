// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive builds the downloadable ZIP bundle from a result set.
// The bundle is a pure derivation: one <stem>.md entry per result, error
// entries included as text, rebuilt whenever the results change.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/pdiddy/mdconvert/internal/convert"
)

// Build packages the result set into an in-memory deflate-compressed ZIP.
// Entries appear in processing order and are named by stripping the source
// extension and appending ".md".
func Build(rs *convert.ResultSet) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, entry := range rs.Entries() {
		name := convert.Stem(entry.Path) + ".md"
		w, err := zw.Create(name)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("creating archive entry %s: %w", name, err)
		}
		if _, err := w.Write([]byte(entry.Text)); err != nil {
			zw.Close()
			return nil, fmt.Errorf("writing archive entry %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing archive: %w", err)
	}
	return buf.Bytes(), nil
}
