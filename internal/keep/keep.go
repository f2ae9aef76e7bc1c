// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package keep reads Google Keep Takeout records and normalizes them into
// types.Note values. A record that cannot be normalized is rejected with a
// reason; rejections never abort the batch.
package keep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/keep-export/pkg/types"
)

const recordExt = ".json"

// ErrImportDirNotFound is returned by LoadNotes when the record directory
// does not exist.
var ErrImportDirNotFound = errors.New("import directory not found")

// Sentinels matched by errors.Is against a *RecordError, one per reason.
var (
	ErrParse           = errors.New("parse error")
	ErrMissingField    = errors.New("missing required field")
	ErrTrashed         = errors.New("trashed")
	ErrUnsupportedType = errors.New("unsupported field type")
)

var reasonErrors = map[types.RejectReason]error{
	types.RejectParse:           ErrParse,
	types.RejectMissingField:    ErrMissingField,
	types.RejectTrashed:         ErrTrashed,
	types.RejectUnsupportedType: ErrUnsupportedType,
}

// RecordError describes a rejected record.
type RecordError struct {
	// Path is the record file, empty when parsing bytes directly.
	Path   string
	Reason types.RejectReason
	Err    error
}

func (e *RecordError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", filepath.Base(e.Path), e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// reject builds a *RecordError whose error chain includes the sentinel for
// reason.
func reject(reason types.RejectReason, format string, args ...any) *RecordError {
	return &RecordError{
		Reason: reason,
		Err:    fmt.Errorf("%w: %s", reasonErrors[reason], fmt.Sprintf(format, args...)),
	}
}

// Options controls normalization.
type Options struct {
	// Location is the zone CreatedAt is expressed in (default time.Local).
	Location *time.Location

	// Logger receives debug diagnostics (default discards).
	Logger logrus.FieldLogger
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.Logger = l
	}
	return o
}

// Rejection records one record that did not produce a Note.
type Rejection struct {
	Path   string
	Reason types.RejectReason
	Err    error
}

// LoadResult holds the outcome of loading a record directory.
type LoadResult struct {
	// Found is the number of candidate record files.
	Found int

	// Notes holds the normalized notes, newest first.
	Notes []types.Note

	Rejected []Rejection
}

// LoadNote reads and normalizes the record at path.
func LoadNote(path string, opts Options) (types.Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Note{}, &RecordError{
			Path:   path,
			Reason: types.RejectParse,
			Err:    fmt.Errorf("%w: reading record: %v", ErrParse, err),
		}
	}

	note, err := ParseNote(data, opts)
	if err != nil {
		var recErr *RecordError
		if errors.As(err, &recErr) {
			recErr.Path = path
		}
		return types.Note{}, err
	}
	note.Source = path
	return note, nil
}

// LoadNotes normalizes every .json record in dir and returns the notes
// sorted by creation time, newest first. Records with equal creation times
// keep their directory order. A missing dir yields an empty result and
// ErrImportDirNotFound. Cancelling ctx stops between records and returns
// what was loaded so far, sorted, together with ctx.Err().
func LoadNotes(ctx context.Context, dir string, opts Options) (LoadResult, error) {
	opts = opts.withDefaults()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return LoadResult{}, fmt.Errorf("%w: %s", ErrImportDirNotFound, dir)
		}
		return LoadResult{}, fmt.Errorf("reading import directory %s: %w", dir, err)
	}

	var result LoadResult
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), recordExt) {
			continue
		}

		if err := ctx.Err(); err != nil {
			sortNotes(result.Notes)
			return result, err
		}

		result.Found++
		path := filepath.Join(dir, entry.Name())

		note, err := LoadNote(path, opts)
		if err != nil {
			rej := Rejection{Path: path, Reason: types.RejectParse, Err: err}
			var recErr *RecordError
			if errors.As(err, &recErr) {
				rej.Reason = recErr.Reason
			}
			opts.Logger.WithFields(logrus.Fields{
				"file":   entry.Name(),
				"reason": rej.Reason,
			}).Debug("record rejected")
			result.Rejected = append(result.Rejected, rej)
			continue
		}
		result.Notes = append(result.Notes, note)
	}

	sortNotes(result.Notes)
	return result, nil
}

// sortNotes orders notes newest first, stable for equal times.
func sortNotes(notes []types.Note) {
	slices.SortStableFunc(notes, func(a, b types.Note) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
