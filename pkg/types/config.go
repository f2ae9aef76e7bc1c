// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutputFormat selects which documents the export writes.
type OutputFormat string

const (
	FormatMarkdown OutputFormat = "md"
	FormatPDF      OutputFormat = "pdf"
	FormatBoth     OutputFormat = "both"
)

// Markdown reports whether the format includes Markdown output.
func (f OutputFormat) Markdown() bool {
	return f == FormatMarkdown || f == FormatBoth
}

// PDF reports whether the format includes PDF output.
func (f OutputFormat) PDF() bool {
	return f == FormatPDF || f == FormatBoth
}

// Default configuration values.
const (
	DefaultImportDir = "Takeout/Keep"
	DefaultExportDir = "export"
	DefaultTimezone  = "Local"
	DefaultLogLevel  = "info"
)

// ExportConfig holds everything one export run needs. It is built by the
// CLI from flags, environment, and config file, and passed down explicitly.
type ExportConfig struct {
	// ImportDir is the Takeout Keep directory holding JSON records and
	// attachment files.
	ImportDir string `json:"import_dir" yaml:"import_dir" mapstructure:"import_dir" validate:"required"`

	// ExportDir is the root for markdown/, pdf/, and manifest.yaml.
	ExportDir string `json:"export_dir" yaml:"export_dir" mapstructure:"export_dir" validate:"required"`

	// Format selects md, pdf, or both.
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format" validate:"required,oneof=md pdf both"`

	// Timezone is an IANA zone name used to express creation times
	// ("Local" uses the system zone).
	Timezone string `json:"timezone" yaml:"timezone" mapstructure:"timezone"`

	// Manifest enables writing manifest.yaml under ExportDir.
	Manifest bool `json:"manifest" yaml:"manifest" mapstructure:"manifest"`

	// LogLevel is the diagnostic log level: debug, info, warn, or error.
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultExportConfig returns the configuration used when nothing is set.
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		ImportDir: DefaultImportDir,
		ExportDir: DefaultExportDir,
		Format:    FormatMarkdown,
		Timezone:  DefaultTimezone,
		LogLevel:  DefaultLogLevel,
	}
}
