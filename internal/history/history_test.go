// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mdconvert/internal/convert"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rs := &convert.ResultSet{}
	rs.Add("/in/a.pdf", "# A")
	rs.Add("/in/b.xyz", convert.ErrorPrefix+"unsupported format")

	startedAt := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	id, err := s.Record(ctx, "upload", startedAt, rs)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	runs, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, id, run.ID)
	assert.Equal(t, "upload", run.Source)
	assert.Equal(t, 2, run.Total)
	assert.Equal(t, 1, run.Succeeded)
	assert.True(t, run.StartedAt.Equal(startedAt))
}

func TestRecentOrderAndLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rs := &convert.ResultSet{}
	rs.Add("a.txt", "A")

	base := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		id, err := s.Record(ctx, "folder", base.Add(time.Duration(i)*time.Minute), rs)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	runs, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID, "newest run first")
	assert.Equal(t, ids[1], runs[1].ID)
}

func TestFiles(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rs := &convert.ResultSet{}
	rs.Add("/in/a.pdf", "# A")
	rs.Add("/in/b.xyz", convert.ErrorPrefix+"unsupported format")

	id, err := s.Record(ctx, "upload", time.Now(), rs)
	require.NoError(t, err)

	files, err := s.Files(ctx, id)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "a.pdf", files[0].Name)
	assert.True(t, files[0].OK)
	assert.Empty(t, files[0].Error)

	assert.Equal(t, "b.xyz", files[1].Name)
	assert.False(t, files[1].OK)
	assert.Contains(t, files[1].Error, "unsupported format")
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	runs, err := s.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
