package main

import (
	"bytes"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/masaki-ito/weldreg/internal/reminders"
	"github.com/masaki-ito/weldreg/internal/repository"
)

var (
	dueWindow         int
	dueIncludeOverdue bool
	dueAsOf           string
	dueICS            string
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List licenses expiring within the renewal window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		asOf := time.Now()
		if dueAsOf != "" {
			var err error
			asOf, err = time.Parse("2006-01-02", dueAsOf)
			if err != nil {
				return fmt.Errorf("invalid --as-of date %q: %w", dueAsOf, err)
			}
		}

		drv, err := repository.Open(ctx, repository.Config{Path: cfg.Database.Path}, logger)
		if err != nil {
			return err
		}
		defer drv.Close()

		records, err := repository.NewLicenseRepository(drv, logger).List(ctx)
		if err != nil {
			return err
		}

		dcfg := reminders.DefaultDueConfig()
		dcfg.WindowDays = dueWindow
		dcfg.IncludeOverdue = dueIncludeOverdue
		due := reminders.ComputeDue(records, asOf, dcfg)

		if dueICS != "" {
			var buf bytes.Buffer
			if err := reminders.WriteICS(&buf, due); err != nil {
				return err
			}
			if err := os.WriteFile(dueICS, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d calendar events to %s\n", len(due), dueICS)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "LICENSE NO\tNAME\tEXPIRY\tDAYS\tSTAGE\tNEXT NOTICE")
		for _, item := range due {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
				item.LicenseNo,
				item.Name,
				item.ExpiryDate.Format("2006-01-02"),
				item.DaysToExpiry,
				item.Stage,
				item.NextNotice.Format("2006-01-02"),
			)
		}
		return w.Flush()
	},
}

func init() {
	dueCmd.Flags().IntVar(&dueWindow, "window", 90, "due window in days")
	dueCmd.Flags().BoolVar(&dueIncludeOverdue, "include-overdue", true, "include already-expired licenses")
	dueCmd.Flags().StringVar(&dueAsOf, "as-of", "", "reference date (YYYY-MM-DD, default: today)")
	dueCmd.Flags().StringVar(&dueICS, "ics", "", "also write the due list as an ICS calendar to this path")
}
