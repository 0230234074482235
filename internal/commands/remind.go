package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kaandel/studylog/internal/reminder"
	"github.com/kaandel/studylog/internal/timeutil"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Manage one-shot reminders",
}

var remindAt string

var remindAddCmd = &cobra.Command{
	Use:   "add <title> [body]",
	Short: "Schedule a reminder",
	Long: `Schedule a one-shot reminder. --at accepts epoch milliseconds,
"YYYY-MM-DD HH:MM[:SS]", or an RFC 3339 timestamp.

Examples:
  studylog remind add "stand up" --at "2026-08-24 17:30"
  studylog remind add "exam" "room B12" --at 2026-09-01T09:00:00+02:00`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if remindAt == "" {
			return fmt.Errorf("--at is required")
		}
		body := ""
		if len(args) == 2 {
			body = args[1]
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		rec, err := a.reminders.Add(args[0], body, timeutil.Raw(remindAt))
		if err != nil {
			return err
		}
		due := timeutil.FromMillis(int64(rec.Timestamp))
		fmt.Printf("Reminder %s due %s\n", subtleStyle.Render(rec.UID), due.Format(time.DateTime))
		return nil
	},
}

var remindListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending reminders by due time",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		pending, err := a.reminders.List()
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			fmt.Println("No pending reminders.")
			return nil
		}
		for _, r := range pending {
			due := timeutil.FromMillis(int64(r.Timestamp))
			fmt.Printf("  %s  %-24s %s\n",
				valueStyle.Render(due.Format(time.DateTime)), r.Title, subtleStyle.Render(r.UID))
		}
		return nil
	},
}

var remindRemoveCmd = &cobra.Command{
	Use:   "rm <uid>",
	Short: "Delete a pending reminder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		removed, err := a.reminders.Remove(args[0])
		if err != nil {
			return err
		}
		if !removed {
			fmt.Printf("No reminder %s\n", args[0])
			return nil
		}
		fmt.Println("Removed.")
		return nil
	},
}

var remindWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll for due reminders until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Watching reminders every %s. Ctrl-C to stop.\n", a.pollInterval())
		sched := reminder.NewScheduler(a.reminders, consoleNotifier{}, a.pollInterval())
		sched.Run(ctx)
		return nil
	},
}

// consoleNotifier prints fired reminders to stdout. Desktop delivery can
// sit behind the same interface later without touching the scheduler.
type consoleNotifier struct{}

func (consoleNotifier) Show(title, body string) {
	line := titleStyle.Render("⏰ " + title)
	if body != "" {
		line += "  " + body
	}
	fmt.Println(line)
}

func init() {
	remindAddCmd.Flags().StringVar(&remindAt, "at", "", "Due time (epoch ms, \"YYYY-MM-DD HH:MM\", or RFC 3339)")
	remindCmd.AddCommand(remindAddCmd)
	remindCmd.AddCommand(remindListCmd)
	remindCmd.AddCommand(remindRemoveCmd)
	remindCmd.AddCommand(remindWatchCmd)
}
