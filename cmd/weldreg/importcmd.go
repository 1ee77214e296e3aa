package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/masaki-ito/weldreg/internal/repository"
	"github.com/masaki-ito/weldreg/internal/roster"
)

var importCmd = &cobra.Command{
	Use:   "import <roster.xlsx> [roster.xlsx...]",
	Short: "Import license records from roster spreadsheets",
	Long: `Import reads qualification roster workbooks, maps their header
synonyms to registry fields, cleans license-number cells through the
extractor and upserts the rows keyed by (source, license number).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		drv, err := repository.Open(ctx, repository.Config{Path: cfg.Database.Path}, logger)
		if err != nil {
			return err
		}
		defer drv.Close()
		licenses := repository.NewLicenseRepository(drv, logger)

		total := 0
		for _, path := range args {
			records, err := roster.ParseWorkbook(path, logger)
			if err != nil {
				return err
			}
			for _, rec := range records {
				if rec.LicenseNo == "" {
					continue
				}
				if err := licenses.Upsert(ctx, rec); err != nil {
					return err
				}
				total++
			}
			logger.Info("roster imported", "path", path, "records", len(records))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d roster records\n", total)
		return nil
	},
}
