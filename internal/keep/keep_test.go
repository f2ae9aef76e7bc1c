// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keep

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/keep-export/pkg/types"
)

func writeRecord(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func titles(notes []types.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Title
	}
	return out
}

func TestLoadNotes_SortsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "a.json", `{"isTrashed": false, "createdTimestampUsec": 1000000, "title": "oldest"}`)
	writeRecord(t, dir, "b.json", `{"isTrashed": false, "createdTimestampUsec": 3000000, "title": "newest"}`)
	writeRecord(t, dir, "c.json", `{"isTrashed": false, "createdTimestampUsec": 2000000, "title": "middle"}`)

	result, err := LoadNotes(context.Background(), dir, utcOpts)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Found)
	assert.Equal(t, []string{"newest", "middle", "oldest"}, titles(result.Notes))
	assert.Empty(t, result.Rejected)
	assert.Equal(t, filepath.Join(dir, "b.json"), result.Notes[0].Source)
}

func TestLoadNotes_EqualTimesKeepDiscoveryOrder(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "1.json", `{"isTrashed": false, "createdTimestampUsec": 5, "title": "B"}`)
	writeRecord(t, dir, "2.json", `{"isTrashed": false, "createdTimestampUsec": 5, "title": "A"}`)

	result, err := LoadNotes(context.Background(), dir, utcOpts)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, titles(result.Notes))
}

func TestLoadNotes_RejectsWithoutAborting(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "good.json", `{"isTrashed": false, "createdTimestampUsec": 1, "title": "keep me"}`)
	writeRecord(t, dir, "trashed.json", `{"isTrashed": true, "createdTimestampUsec": 2, "title": "gone"}`)
	writeRecord(t, dir, "broken.json", `{not json`)
	writeRecord(t, dir, "partial.json", `{"title": "no flags"}`)
	writeRecord(t, dir, "float.JSON", `{"isTrashed": false, "createdTimestampUsec": 2.5}`)
	writeRecord(t, dir, "photo.jpg", "binary")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o755))

	result, err := LoadNotes(context.Background(), dir, utcOpts)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Found)
	assert.Equal(t, []string{"keep me"}, titles(result.Notes))

	reasons := map[string]types.RejectReason{}
	for _, r := range result.Rejected {
		reasons[filepath.Base(r.Path)] = r.Reason
		assert.Error(t, r.Err)
	}
	assert.Equal(t, map[string]types.RejectReason{
		"trashed.json": types.RejectTrashed,
		"broken.json":  types.RejectParse,
		"partial.json": types.RejectMissingField,
		"float.JSON":   types.RejectUnsupportedType,
	}, reasons)
}

func TestLoadNotes_MissingDirectory(t *testing.T) {
	result, err := LoadNotes(context.Background(), filepath.Join(t.TempDir(), "Takeout", "Keep"), utcOpts)

	assert.True(t, errors.Is(err, ErrImportDirNotFound))
	assert.Zero(t, result.Found)
	assert.Empty(t, result.Notes)
}

func TestLoadNotes_EmptyDirectory(t *testing.T) {
	result, err := LoadNotes(context.Background(), t.TempDir(), utcOpts)
	require.NoError(t, err)
	assert.Zero(t, result.Found)
	assert.Empty(t, result.Notes)
}

func TestLoadNotes_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "a.json", `{"isTrashed": false, "createdTimestampUsec": 1}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := LoadNotes(ctx, dir, utcOpts)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, result.Notes)
}

func TestLoadNote_SetsPathOnRejection(t *testing.T) {
	dir := t.TempDir()
	writeRecord(t, dir, "trashed.json", `{"isTrashed": true, "createdTimestampUsec": 1}`)

	_, err := LoadNote(filepath.Join(dir, "trashed.json"), utcOpts)

	var recErr *RecordError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, filepath.Join(dir, "trashed.json"), recErr.Path)
	assert.Equal(t, types.RejectTrashed, recErr.Reason)
}

func TestLoadNote_UnreadableFile(t *testing.T) {
	_, err := LoadNote(filepath.Join(t.TempDir(), "missing.json"), utcOpts)

	var recErr *RecordError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, types.RejectParse, recErr.Reason)
	assert.ErrorIs(t, err, ErrParse)
}
