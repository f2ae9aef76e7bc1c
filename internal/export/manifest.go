// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/keep-export/internal/keep"
	"github.com/pdiddy/keep-export/pkg/types"
)

const manifestFile = "manifest.yaml"

// ManifestEntry describes one exported note.
type ManifestEntry struct {
	Name        string    `yaml:"name"`
	Title       string    `yaml:"title"`
	Created     time.Time `yaml:"created"`
	Source      string    `yaml:"source,omitempty"`
	Labels      []string  `yaml:"labels,omitempty"`
	Attachments []string  `yaml:"attachments,omitempty"`
	Files       []string  `yaml:"files"`
}

// Manifest lists the notes written by one run, newest first.
type Manifest struct {
	GeneratedAt time.Time       `yaml:"generated_at"`
	Format      string          `yaml:"format"`
	Notes       []ManifestEntry `yaml:"notes"`
}

func newManifestEntry(note types.Note, files []string) ManifestEntry {
	e := ManifestEntry{
		Name:        keep.BaseFilename(note),
		Title:       keep.DisplayTitle(note),
		Created:     note.CreatedAt,
		Labels:      note.Labels,
		Attachments: note.Attachments,
		Files:       files,
	}
	if note.Source != "" {
		e.Source = filepath.Base(note.Source)
	}
	return e
}

// writeManifest writes m to exportDir/manifest.yaml.
func writeManifest(m Manifest, exportDir string) (string, error) {
	data, err := yaml.Marshal(&m)
	if err != nil {
		return "", fmt.Errorf("marshaling manifest: %w", err)
	}
	path := filepath.Join(exportDir, manifestFile)
	err = writeAtomic(path, docPerm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("writing manifest: %w", err)
	}
	return path, nil
}
