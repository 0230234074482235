package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaandel/studylog/internal/export"
)

var (
	exportFormat string
	exportOut    string
	exportFrom   string
	exportTo     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export timer entries to CSV or JSON",
	Long: `Export the per-subject, per-day timer entries for a date range.

Examples:
  studylog export --out study.csv
  studylog export --format json --out august.json --from 2026-08-01 --to 2026-08-31`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		entries, err := a.tracker.Entries(exportFrom, exportTo)
		if err != nil {
			return err
		}

		switch exportFormat {
		case "csv":
			err = export.ToCSV(entries, exportOut)
		case "json":
			err = export.ToJSON(entries, exportOut)
		default:
			return fmt.Errorf("unknown format %q (want csv or json)", exportFormat)
		}
		if err != nil {
			return err
		}

		fmt.Printf("Exported %d entries to %s\n", len(entries), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv or json")
	exportCmd.Flags().StringVar(&exportOut, "out", "studylog-export.csv", "Output file path")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Range start (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Range end (YYYY-MM-DD)")
}
