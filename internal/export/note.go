// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/keep-export/internal/keep"
	"github.com/pdiddy/keep-export/internal/render"
	"github.com/pdiddy/keep-export/pkg/types"
)

// AttachmentResult counts attachment copy outcomes.
type AttachmentResult struct {
	Copied  int
	Missing int
	Failed  int
}

func (r *AttachmentResult) add(o AttachmentResult) {
	r.Copied += o.Copied
	r.Missing += o.Missing
	r.Failed += o.Failed
}

// ExportNote renders note with r into outDir/<base name><ext> and returns
// the written path. It prints a saved or failed line to w. A failed render
// leaves no file behind.
func ExportNote(r render.Renderer, note types.Note, outDir string, w io.Writer) (string, error) {
	path := filepath.Join(outDir, keep.BaseFilename(note)+r.Ext())

	err := writeAtomic(path, docPerm, func(out io.Writer) error {
		return r.Render(note, out)
	})
	if err != nil {
		fmt.Fprintf(w, "  failed:  %s %s (%v)\n", r.Name(), filepath.Base(path), err)
		return "", err
	}

	fmt.Fprintf(w, "  saved:   %s\n", path)
	return path, nil
}

// CopyAttachments copies each attachment of note from importDir into
// mdDir/attachments/<path>, creating parent directories. Missing sources
// and copy errors are reported to w and counted; they never stop the copy
// of the remaining attachments.
func CopyAttachments(note types.Note, importDir, mdDir string, w io.Writer) AttachmentResult {
	var result AttachmentResult
	for _, a := range note.Attachments {
		rel := filepath.FromSlash(a)
		if !filepath.IsLocal(rel) {
			fmt.Fprintf(w, "  failed:  attachment %s (path escapes import directory)\n", a)
			result.Failed++
			continue
		}

		src := filepath.Join(importDir, rel)
		dst := filepath.Join(mdDir, render.AttachmentsDir, rel)

		if _, err := os.Stat(src); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				fmt.Fprintf(w, "  warning: attachment not found: %s\n", src)
				result.Missing++
				continue
			}
			fmt.Fprintf(w, "  failed:  attachment %s (%v)\n", src, err)
			result.Failed++
			continue
		}

		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			fmt.Fprintf(w, "  failed:  attachment %s (%v)\n", src, err)
			result.Failed++
			continue
		}

		if err := copyFile(src, dst); err != nil {
			fmt.Fprintf(w, "  failed:  copying %s to %s (%v)\n", src, dst, err)
			result.Failed++
			continue
		}

		fmt.Fprintf(w, "  copied:  attachment %s\n", filepath.Base(dst))
		result.Copied++
	}
	return result
}
