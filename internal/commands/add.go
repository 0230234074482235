package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kaandel/studylog/internal/timeutil"
	"github.com/kaandel/studylog/internal/tracker"
)

var addDate string

var addCmd = &cobra.Command{
	Use:   "add <subject> <minutes>",
	Short: "Log focus minutes for a subject",
	Long: `Log focus minutes against a subject for a calendar day (today by
default). Repeated adds for the same subject and day accumulate.

Examples:
  studylog add math 45
  studylog add "organic chemistry" 30 --date 2026-08-20`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid minutes %q", args[1])
		}

		a, err := openApp()
		if err != nil {
			return err
		}

		date := addDate
		if date == "" {
			date = timeutil.Today()
		}
		if err := a.tracker.AddTime(args[0], date, minutes); err != nil {
			return err
		}

		fmt.Printf("Logged %s for %s on %s\n",
			valueStyle.Render(formatMinutes(minutes)), tracker.Normalize(args[0]), date)
		return nil
	},
}

var breakDate string

var breakCmd = &cobra.Command{
	Use:   "break <subject> <minutes>",
	Short: "Log break minutes for a subject",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid minutes %q", args[1])
		}

		a, err := openApp()
		if err != nil {
			return err
		}

		date := breakDate
		if date == "" {
			date = timeutil.Today()
		}
		if err := a.tracker.AddBreakTime(date, args[0], minutes); err != nil {
			return err
		}

		fmt.Printf("Logged %s break for %s on %s\n",
			formatMinutes(minutes), tracker.Normalize(args[0]), date)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addDate, "date", "", "Calendar day (YYYY-MM-DD, default today)")
	breakCmd.Flags().StringVar(&breakDate, "date", "", "Calendar day (YYYY-MM-DD, default today)")
}
