//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Export builds the CLI and exports Takeout/Keep to export/ as Markdown.
func Export() error {
	mg.Deps(Build)
	return runExport("md")
}

// ExportAll builds the CLI and exports Takeout/Keep as both Markdown and PDF,
// with a manifest.
func ExportAll() error {
	mg.Deps(Build)
	return runExport("both", "--manifest")
}

func runExport(format string, extra ...string) error {
	bin := filepath.Join(binDir, binName)
	args := append([]string{"export", "--format", format}, extra...)
	fmt.Printf("[export] %s %v\n", bin, args)
	return sh.RunV(bin, args...)
}
