package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/masaki-ito/weldreg/internal/export"
	"github.com/masaki-ito/weldreg/internal/repository"
)

var auditCmd = &cobra.Command{
	Use:   "audit <run-id>",
	Short: "Print the audit trail of a scan run as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		runID, err := uuid.Parse(args[0])
		if err != nil {
			return err
		}

		drv, err := repository.Open(ctx, repository.Config{Path: cfg.Database.Path}, logger)
		if err != nil {
			return err
		}
		defer drv.Close()

		rows, err := repository.NewAuditRepository(drv, logger).ListRun(ctx, runID)
		if err != nil {
			return err
		}
		return export.NewService(logger).WriteAuditCSV(cmd.OutOrStdout(), rows)
	},
}
