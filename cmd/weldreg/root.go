package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/masaki-ito/weldreg/internal/common"
	"github.com/masaki-ito/weldreg/internal/extract"
)

var (
	cfg    *common.Config
	logger *slog.Logger

	dbPath  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "weldreg",
	Short: "Welding license registry built from OCR'd certificates",
	Long: `Weldreg maintains a registry of welding licenses extracted from
scanned certificates and qualification rosters.

The pipeline:
  - Walk input directories for certificate scans (PDF, image, text)
  - Recognize text with pdftotext, falling back to tesseract
  - Extract and score license-number candidates per page and line
  - Merge accepted candidates and upsert them into the registry
  - Export XLSX/CSV registries and compute the renewal due list`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		cfg = common.LoadConfig()
		if dbPath != "" {
			cfg.Database.Path = dbPath
		}
		return cfg.Validate()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&dbPath, "db", "", "registry database path (default: WELDREG_DB_PATH or weldreg.db)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	rootCmd.AddCommand(scanCmd, importCmd, auditCmd, exportCmd, dueCmd)
}

// engineOptions builds extraction options from the loaded config,
// including the optional label-table override file.
func engineOptions() (extract.Options, error) {
	opts := extract.Options{
		WindowSize:      cfg.Extract.WindowSize,
		IncludeRejected: cfg.Extract.IncludeRejected,
		MinConfidence:   cfg.Extract.MinConfidence,
	}
	if cfg.Extract.LabelConfigPath != "" {
		labels, err := extract.LoadLabelTable(cfg.Extract.LabelConfigPath)
		if err != nil {
			return opts, err
		}
		opts.Labels = labels
	}
	return opts, nil
}
