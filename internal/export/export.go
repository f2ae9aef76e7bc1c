// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export runs one Keep export: load and normalize the records, render
// each note to Markdown and/or PDF, copy attachments next to the Markdown
// output, and report per-note status plus a final summary.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/keep-export/internal/config"
	"github.com/pdiddy/keep-export/internal/keep"
	"github.com/pdiddy/keep-export/internal/render"
	"github.com/pdiddy/keep-export/pkg/types"
)

// Output subdirectories under the export root.
const (
	markdownDir = "markdown"
	pdfDir      = "pdf"
)

// FormatResult counts documents written for one output format.
type FormatResult struct {
	Saved  int
	Failed int
}

// BatchResult holds the outcome of an export run.
type BatchResult struct {
	// Found is the number of candidate records in the import directory.
	Found int
	// Loaded is the number of records normalized into notes.
	Loaded int
	// Rejected is the number of records skipped by the loader.
	Rejected int

	Markdown    FormatResult
	PDF         FormatResult
	Attachments AttachmentResult

	// ManifestPath is set when a manifest was written.
	ManifestPath string
}

// HasFailures reports whether any document or attachment copy failed.
func (r BatchResult) HasFailures() bool {
	return r.Markdown.Failed > 0 || r.PDF.Failed > 0 || r.Attachments.Failed > 0
}

// target pairs a renderer with its output directory.
type target struct {
	renderer render.Renderer
	dir      string
	markdown bool
}

// Run performs the export described by cfg, printing status to w.
// A missing import directory is returned as keep.ErrImportDirNotFound
// before anything is written. Per-note failures are counted in the result
// and never stop the run. Attachments are copied only for notes whose
// Markdown document was written. Cancelling ctx stops between notes;
// documents already written stay in place.
func Run(ctx context.Context, cfg types.ExportConfig, log logrus.FieldLogger, w io.Writer) (BatchResult, error) {
	var result BatchResult
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	loc, err := config.Location(cfg.Timezone)
	if err != nil {
		return result, err
	}

	loaded, err := keep.LoadNotes(ctx, cfg.ImportDir, keep.Options{Location: loc, Logger: log})
	result.Found = loaded.Found
	result.Loaded = len(loaded.Notes)
	result.Rejected = len(loaded.Rejected)
	if err != nil {
		return result, err
	}

	for _, rej := range loaded.Rejected {
		fmt.Fprintf(w, "skipped: %v\n", rej.Err)
	}
	if result.Found == 0 {
		fmt.Fprintf(w, "warning: no JSON records found in %s\n", cfg.ImportDir)
	}
	fmt.Fprintf(w, "Found %d notes to process.\n", result.Loaded)

	targets, err := prepareTargets(cfg)
	if err != nil {
		return result, err
	}

	manifest := Manifest{
		GeneratedAt: time.Now().In(loc),
		Format:      string(cfg.Format),
	}

	for i, note := range loaded.Notes {
		if err := ctx.Err(); err != nil {
			fmt.Fprintf(w, "\nExport interrupted after %d of %d notes.\n", i, len(loaded.Notes))
			return result, err
		}

		fmt.Fprintf(w, "processing %d/%d: %s\n", i+1, len(loaded.Notes), keep.DisplayTitle(note))

		var files []string
		for _, t := range targets {
			path, err := ExportNote(t.renderer, note, t.dir, w)
			counts := &result.PDF
			if t.markdown {
				counts = &result.Markdown
			}
			if err != nil {
				log.WithError(err).WithField("note", keep.BaseFilename(note)).Warn("render failed")
				counts.Failed++
				continue
			}
			counts.Saved++
			files = append(files, relPath(cfg.ExportDir, path))

			if t.markdown {
				result.Attachments.add(CopyAttachments(note, cfg.ImportDir, t.dir, w))
			}
		}

		if len(files) > 0 {
			manifest.Notes = append(manifest.Notes, newManifestEntry(note, files))
		}
	}

	if cfg.Manifest {
		path, err := writeManifest(manifest, cfg.ExportDir)
		if err != nil {
			fmt.Fprintf(w, "failed:  %v\n", err)
		} else {
			result.ManifestPath = path
			fmt.Fprintf(w, "manifest: %s\n", path)
		}
	}

	printSummary(w, cfg, result)
	return result, nil
}

// prepareTargets creates the output directories for the selected format and
// returns the renderers to run, Markdown first.
func prepareTargets(cfg types.ExportConfig) ([]target, error) {
	var targets []target
	var dirs []string

	if cfg.Format.Markdown() {
		dir := filepath.Join(cfg.ExportDir, markdownDir)
		dirs = append(dirs, dir, filepath.Join(dir, render.AttachmentsDir))
		targets = append(targets, target{renderer: render.MarkdownRenderer{}, dir: dir, markdown: true})
	}
	if cfg.Format.PDF() {
		dir := filepath.Join(cfg.ExportDir, pdfDir)
		dirs = append(dirs, dir)
		targets = append(targets, target{renderer: render.PDFRenderer{ImportDir: cfg.ImportDir}, dir: dir})
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return targets, nil
}

func relPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func printSummary(w io.Writer, cfg types.ExportConfig, r BatchResult) {
	fmt.Fprintf(w, "\nExport summary: %d found, %d loaded, %d skipped\n", r.Found, r.Loaded, r.Rejected)
	if cfg.Format.Markdown() {
		fmt.Fprintf(w, "  markdown:    %d saved, %d failed\n", r.Markdown.Saved, r.Markdown.Failed)
		fmt.Fprintf(w, "  attachments: %d copied, %d missing, %d failed\n",
			r.Attachments.Copied, r.Attachments.Missing, r.Attachments.Failed)
	}
	if cfg.Format.PDF() {
		fmt.Fprintf(w, "  pdf:         %d saved, %d failed\n", r.PDF.Saved, r.PDF.Failed)
	}

	out := cfg.ExportDir
	if abs, err := filepath.Abs(out); err == nil {
		out = abs
	}
	fmt.Fprintf(w, "Files saved to: %s\n", out)
}
