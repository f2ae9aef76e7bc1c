// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keep

import (
	"regexp"
	"strings"

	"github.com/pdiddy/keep-export/pkg/types"
)

const (
	// TitleTimeFormat formats CreatedAt wherever it stands in for a title.
	TitleTimeFormat = "2006-01-02 15:04:05"
	// FileTimeFormat formats CreatedAt in output filenames.
	FileTimeFormat = "2006-01-02_15-04-05"

	// MaxFilenameLength caps the base filename, extension excluded.
	MaxFilenameLength = 240

	untitled = "untitled"
)

// illegalChars matches characters rejected by Windows, macOS, or Linux
// filesystems, including ASCII control characters.
var illegalChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

var underscoreRun = regexp.MustCompile(`_{2,}`)

// SanitizeFilename turns s into a string safe to use as a path component.
// The result is never empty and sanitizing it again returns it unchanged.
func SanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = illegalChars.ReplaceAllString(s, "")
	s = underscoreRun.ReplaceAllString(s, "_")
	s = strings.Trim(s, "._")
	if s == "" {
		return untitled
	}
	return s
}

// DisplayTitle returns the note title, or its creation time when the title
// is empty. Filenames and document headings both go through it.
func DisplayTitle(note types.Note) string {
	if note.Title != "" {
		return note.Title
	}
	return note.CreatedAt.Format(TitleTimeFormat)
}

// BaseFilename returns the output filename without extension:
// "<timestamp>__<sanitized title>", or just the timestamp for untitled
// notes, truncated to MaxFilenameLength runes.
func BaseFilename(note types.Note) string {
	name := note.CreatedAt.Format(FileTimeFormat)
	if note.Title != "" {
		name += "__" + SanitizeFilename(note.Title)
	}
	if r := []rune(name); len(r) > MaxFilenameLength {
		name = string(r[:MaxFilenameLength])
	}
	return name
}
