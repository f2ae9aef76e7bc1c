// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/keep-export/internal/keep"
	"github.com/pdiddy/keep-export/pkg/types"
)

// AttachmentsDir is the directory, relative to the Markdown output, that
// attachment links point into.
const AttachmentsDir = "attachments"

// Markdown returns the Markdown document for note: heading, body,
// attachment links, and labels, separated by blank lines. Empty sections
// are left out and the result ends with a single newline.
func Markdown(note types.Note) string {
	sections := []string{
		"# " + keep.DisplayTitle(note),
		note.Text,
		attachmentLinks(note.Attachments),
		labelsLine(note.Labels),
	}

	kept := make([]string, 0, len(sections))
	for _, s := range sections {
		if s = strings.TrimSpace(s); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "\n\n") + "\n"
}

func attachmentLinks(attachments []string) string {
	lines := make([]string, len(attachments))
	for i, a := range attachments {
		lines[i] = fmt.Sprintf("![%s](%s/%s)", attachmentName(a), AttachmentsDir, a)
	}
	return strings.Join(lines, "\n")
}

func labelsLine(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	return "Labels: " + strings.Join(labels, ", ")
}

// MarkdownRenderer adapts Markdown to the Renderer interface.
type MarkdownRenderer struct{}

func (MarkdownRenderer) Name() string { return "markdown" }

func (MarkdownRenderer) Ext() string { return ".md" }

func (MarkdownRenderer) Render(note types.Note, w io.Writer) error {
	_, err := io.WriteString(w, Markdown(note))
	return err
}
