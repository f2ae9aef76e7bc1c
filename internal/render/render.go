// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns normalized notes into output documents. Renderers
// only read the Note they are given.
package render

import (
	"io"
	"path"

	"github.com/pdiddy/keep-export/pkg/types"
)

// Renderer writes one document for one note. Markdown and PDF implement
// this interface.
type Renderer interface {
	// Name identifies the renderer in status output and subdirectory names
	// ("markdown", "pdf").
	Name() string

	// Ext is the output file extension including the dot.
	Ext() string

	// Render writes the document for note to w.
	Render(note types.Note, w io.Writer) error
}

// attachmentName returns the base filename of an attachment path.
func attachmentName(attachment string) string {
	return path.Base(attachment)
}
