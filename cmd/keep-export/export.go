// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/keep-export/internal/config"
	"github.com/pdiddy/keep-export/internal/export"
	"github.com/pdiddy/keep-export/internal/keep"
	"github.com/pdiddy/keep-export/internal/logging"
	"github.com/pdiddy/keep-export/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export Keep notes to Markdown and/or PDF",
	Long: `Export reads every JSON record in the import directory, skips trashed
and malformed records, and writes one document per note under the export
directory: markdown/<timestamp>__<title>.md with attachments copied into
markdown/attachments/, and/or pdf/<timestamp>__<title>.pdf.

Notes are processed newest first. A failure on one note is reported and
the run continues; only a missing import directory aborts the export.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	d := types.DefaultExportConfig()
	flags := exportCmd.Flags()
	flags.String("format", string(d.Format), "output format: md (Markdown), pdf (PDF), or both")
	flags.String("import-dir", d.ImportDir, "directory holding the Keep Takeout JSON records and attachments")
	flags.String("export-dir", d.ExportDir, "directory to write markdown/ and pdf/ into")
	flags.String("timezone", d.Timezone, "IANA timezone for creation times (Local uses the system zone)")
	flags.Bool("manifest", d.Manifest, "write manifest.yaml listing the exported notes")
	flags.String("log-level", d.LogLevel, "diagnostic log level: debug, info, warn, or error")

	for key, flag := range map[string]string{
		config.KeyFormat:    "format",
		config.KeyImportDir: "import-dir",
		config.KeyExportDir: "export-dir",
		config.KeyTimezone:  "timezone",
		config.KeyManifest:  "manifest",
		config.KeyLogLevel:  "log-level",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	result, err := export.Run(ctx, cfg, log, out)
	switch {
	case errors.Is(err, keep.ErrImportDirNotFound):
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: import path %q not found.\n", cfg.ImportDir)
		fmt.Fprintln(cmd.ErrOrStderr(), "Copy the 'Takeout' folder into the working directory or pass --import-dir.")
		return err
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(cmd.ErrOrStderr(), "Export cancelled by user.")
		return err
	case err != nil:
		return err
	}

	if result.HasFailures() {
		log.WithFields(logrus.Fields{
			"markdown_failed":   result.Markdown.Failed,
			"pdf_failed":        result.PDF.Failed,
			"attachment_failed": result.Attachments.Failed,
		}).Warn("some documents or attachments could not be written")
	}
	fmt.Fprintln(out, "Export successful!")
	return nil
}
