package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/masaki-ito/weldreg/internal/export"
	"github.com/masaki-ito/weldreg/internal/extract"
	"github.com/masaki-ito/weldreg/internal/repository"
)

var (
	exportOut      string
	exportAuditRun string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the registry to an XLSX workbook",
	Long: `Export writes all registered licenses to a "Licenses" sheet. With
--audit-run, the audit trail of that scan run is included on an "Audit"
sheet.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		drv, err := repository.Open(ctx, repository.Config{Path: cfg.Database.Path}, logger)
		if err != nil {
			return err
		}
		defer drv.Close()

		records, err := repository.NewLicenseRepository(drv, logger).List(ctx)
		if err != nil {
			return err
		}

		var audit []extract.Row
		if exportAuditRun != "" {
			runID, err := uuid.Parse(exportAuditRun)
			if err != nil {
				return err
			}
			audit, err = repository.NewAuditRepository(drv, logger).ListRun(ctx, runID)
			if err != nil {
				return err
			}
		}

		data, err := export.NewService(logger).RegistryXLSX(records, audit)
		if err != nil {
			return err
		}
		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d licenses to %s\n", len(records), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "registry.xlsx", "output workbook path")
	exportCmd.Flags().StringVar(&exportAuditRun, "audit-run", "", "scan run ID to include on the Audit sheet")
}
