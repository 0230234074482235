package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var (
	reportFrom    string
	reportTo      string
	reportDaily   bool
	reportEntries bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show time totals per subject or per day",
	Long: `Show accumulated focus time over a date range. Without bounds the
report covers all time.

Examples:
  studylog report
  studylog report --from 2026-08-01 --to 2026-08-31
  studylog report --daily`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}

		switch {
		case reportDaily:
			return printDailyReport(a, reportFrom, reportTo)
		case reportEntries:
			return printEntriesReport(a, reportFrom, reportTo)
		default:
			return printTotalsReport(a, reportFrom, reportTo)
		}
	},
}

func printTotalsReport(a *app, from, to string) error {
	totals, err := a.tracker.SubjectTotals(from, to)
	if err != nil {
		return err
	}
	if len(totals) == 0 {
		fmt.Println("No time logged in this range.")
		return nil
	}

	subjects := make([]string, 0, len(totals))
	for s := range totals {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	fmt.Println(titleStyle.Render("Subject totals"))
	grand := 0
	for _, s := range subjects {
		fmt.Printf("  %-24s %s\n", s, valueStyle.Render(formatMinutes(totals[s])))
		grand += totals[s]
	}
	fmt.Printf("  %-24s %s\n", subtleStyle.Render("total"), formatMinutes(grand))
	return nil
}

func printDailyReport(a *app, from, to string) error {
	days, err := a.tracker.DailyAggregates(from, to)
	if err != nil {
		return err
	}
	if len(days) == 0 {
		fmt.Println("No time logged in this range.")
		return nil
	}

	fmt.Println(titleStyle.Render("Daily totals"))
	for _, d := range days {
		fmt.Printf("  %s  %-10s %s\n",
			d.Date,
			valueStyle.Render(formatMinutes(d.TotalMinutes)),
			subtleStyle.Render(strings.Join(d.Subjects, ", ")))
	}
	return nil
}

func printEntriesReport(a *app, from, to string) error {
	entries, err := a.tracker.Entries(from, to)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No time logged in this range.")
		return nil
	}

	fmt.Println(titleStyle.Render("Entries"))
	for _, e := range entries {
		fmt.Printf("  %s  %-24s %s\n", e.Date, e.Subject, valueStyle.Render(formatMinutes(e.TotalMinutes)))
	}
	return nil
}

func init() {
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "Range start (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "Range end (YYYY-MM-DD)")
	reportCmd.Flags().BoolVar(&reportDaily, "daily", false, "Group by day instead of subject")
	reportCmd.Flags().BoolVar(&reportEntries, "entries", false, "List each subject/day entry")
}
