// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mdconvert/internal/convert"
)

func readEntries(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	entries := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		entries[f.Name] = string(content)
	}
	return entries
}

func TestBuild(t *testing.T) {
	rs := &convert.ResultSet{}
	rs.Add("/in/report.pdf", "# Report\n")
	rs.Add("/in/weird.xyz", convert.ErrorPrefix+"unsupported format")
	rs.Add("slides.pptx", "# Slides\n")

	data, err := Build(rs)
	require.NoError(t, err)

	entries := readEntries(t, data)
	require.Len(t, entries, 3)
	assert.Equal(t, "# Report\n", entries["report.md"])
	assert.Equal(t, "# Slides\n", entries["slides.md"])

	// Error entries ship as text so the bundle mirrors the result tabs.
	assert.Equal(t, convert.ErrorPrefix+"unsupported format", entries["weird.md"])
}

func TestBuildPreservesOrder(t *testing.T) {
	rs := &convert.ResultSet{}
	rs.Add("b.txt", "B")
	rs.Add("a.txt", "A")

	data, err := Build(rs)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.Equal(t, "b.md", zr.File[0].Name)
	assert.Equal(t, "a.md", zr.File[1].Name)
}

func TestBuildEmpty(t *testing.T) {
	data, err := Build(&convert.ResultSet{})
	require.NoError(t, err)

	entries := readEntries(t, data)
	assert.Empty(t, entries)
}
