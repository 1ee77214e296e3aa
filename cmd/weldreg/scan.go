package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/masaki-ito/weldreg/internal/entity"
	"github.com/masaki-ito/weldreg/internal/export"
	"github.com/masaki-ito/weldreg/internal/extract"
	"github.com/masaki-ito/weldreg/internal/ingest"
	"github.com/masaki-ito/weldreg/internal/ocr"
	"github.com/masaki-ito/weldreg/internal/repository"
)

var (
	scanExts       []string
	scanSkipHidden bool
	scanDryRun     bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <dir> [dir...]",
	Short: "OCR certificate scans and extract license numbers into the registry",
	Long: `Scan walks the given directories for certificate files, recognizes
their text, extracts license-number candidates and stores accepted ones
in the registry. Every candidate decision is written to the audit trail;
the run ID printed at the end retrieves it with "weldreg audit".`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var roots []ingest.Root
		for _, dir := range args {
			roots = append(roots, ingest.Root{Label: filepath.Base(dir), Path: dir})
		}
		sources, stats, err := ingest.ScanRoots(ctx, roots, scanExts, scanSkipHidden, logger)
		if err != nil {
			return err
		}

		opts, err := engineOptions()
		if err != nil {
			return err
		}
		engine, err := extract.NewEngine(opts, logger)
		if err != nil {
			return err
		}

		chain := ocr.NewChain(logger,
			ocr.NewPDFTextProvider(cfg.OCR, logger),
			ocr.NewTesseractProvider(cfg.OCR, logger),
			ocr.TextFileProvider{},
		)

		var candidates []extract.Candidate
		var merged []extract.MergedResult
		recognized := 0
		for _, src := range sources {
			if src.Err != "" || src.Dedup {
				continue
			}
			pages, provider, err := chain.Recognize(ctx, src.Path)
			if err != nil {
				return err
			}
			if len(pages) == 0 {
				continue
			}
			recognized++

			origin := provider + "@" + src.RootLabel
			doc := extract.NewDocument(src.Path, origin)
			for _, p := range pages {
				if err := doc.AddPage(p.Number, p.Lines); err != nil {
					return err
				}
			}
			cands := engine.ProcessDocument(doc)
			candidates = append(candidates, cands...)

			res := extract.Merge(src.Path, extract.CandidateSet{Origin: origin, Candidates: cands})
			if len(res.Entries) > 0 {
				merged = append(merged, res)
			}
		}
		auditRows := extract.AuditRows(candidates, engine.Options().IncludeRejected)

		logger.Info("scan complete",
			"matched", stats.Matched,
			"deduplicated", stats.Deduplicated,
			"failed", stats.Failed,
			"recognized", recognized,
			"candidates", len(candidates),
		)

		if scanDryRun {
			return export.NewService(logger).WriteMergedCSV(cmd.OutOrStdout(), merged)
		}

		drv, err := repository.Open(ctx, repository.Config{Path: cfg.Database.Path}, logger)
		if err != nil {
			return err
		}
		defer drv.Close()

		licenses := repository.NewLicenseRepository(drv, logger)
		upserted := 0
		for _, res := range merged {
			for _, e := range res.Entries {
				rec := entity.LicenseRecord{
					Source:     res.Source,
					LicenseNo:  e.Text,
					Confidence: e.Confidence,
					Origins:    e.Origins,
				}
				if err := licenses.Upsert(ctx, rec); err != nil {
					return err
				}
				upserted++
			}
		}

		runID, err := repository.NewAuditRepository(drv, logger).SaveRun(ctx, auditRows)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "upserted %d licenses from %d files\n", upserted, recognized)
		fmt.Fprintf(cmd.OutOrStdout(), "audit run: %s\n", runID)
		return nil
	},
}

func init() {
	scanCmd.Flags().StringSliceVar(
		&scanExts, "ext", nil, "file extensions to include (default: pdf, png, jpg, jpeg, tif, tiff, txt)",
	)
	scanCmd.Flags().BoolVar(
		&scanSkipHidden, "skip-hidden", true, "skip hidden files and directories",
	)
	scanCmd.Flags().BoolVar(
		&scanDryRun, "dry-run", false, "print merged results as CSV instead of writing the registry",
	)
}
