// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Note is the normalized form of one exported Keep record. A Note is built
// once by the loader and only read afterwards.
type Note struct {
	// Title is the trimmed note title, prefixed with "[ARCHIVED] " or
	// "[PINNED] " when the record carries those flags. It may be empty.
	Title string `json:"title" yaml:"title"`

	// CreatedAt is the record creation time, second precision is what
	// renderers and filenames use.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Text is either the verbatim note text or a rendered checklist.
	Text string `json:"text" yaml:"text"`

	// Attachments lists file paths relative to the import directory,
	// using forward slashes.
	Attachments []string `json:"attachments" yaml:"attachments"`

	// Labels lists label names in source order.
	Labels []string `json:"labels" yaml:"labels"`

	// Source is the record file the note was read from.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// RejectReason says why a record did not produce a Note.
type RejectReason string

const (
	RejectParse           RejectReason = "parse-error"
	RejectMissingField    RejectReason = "missing-field"
	RejectTrashed         RejectReason = "trashed"
	RejectUnsupportedType RejectReason = "unsupported-type"
)
