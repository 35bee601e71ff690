package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/shiftreport/internal/app"
	"github.com/mamadbah2/shiftreport/internal/domain/models"
	"github.com/mamadbah2/shiftreport/internal/service/reporting"
)

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Send or export daily summaries",
	}
	cmd.AddCommand(newSummarySendCmd(opts), newSummaryExportCmd(opts))
	return cmd
}

func newSummarySendCmd(opts *rootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Mail the summary for a date (yesterday by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.close(cmd.Context())

			if date == "" {
				loc, err := rt.cfg.Reporting.Location()
				if err != nil {
					return err
				}
				date = reporting.PreviousDay(time.Now().In(loc))
			}

			svc, err := app.NewReporting(cmd.Context(), rt.cfg, rt.store, rt.logger)
			if err != nil {
				return err
			}

			result, err := svc.SendDailySummary(cmd.Context(), date)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "summary date, YYYY-MM-DD")
	return cmd
}

func newSummaryExportCmd(opts *rootOptions) *cobra.Command {
	var date, from, to, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the workbook for a date or a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := models.ReportFilter{Date: date, From: from, To: to}
			if filter.Date == "" && (filter.From == "" || filter.To == "") {
				return fmt.Errorf("--date or both --from and --to are required")
			}
			for _, v := range []string{date, from, to} {
				if v == "" {
					continue
				}
				if _, err := time.Parse(models.DateLayout, v); err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", v)
				}
			}

			rt, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.close(cmd.Context())

			svc := reporting.NewService(rt.store, nil, reporting.Options{Logger: rt.logger})
			data, fileName, err := svc.ExportWorkbook(cmd.Context(), filter)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(out, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			path := filepath.Join(out, fileName)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write workbook: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "single day, YYYY-MM-DD")
	cmd.Flags().StringVar(&from, "from", "", "range start, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "range end, YYYY-MM-DD")
	cmd.Flags().StringVar(&out, "out", ".", "output directory")
	return cmd
}
