package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/kaandel/studylog/internal/timeutil"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage timed study sessions",
}

var sessionStartCmd = &cobra.Command{
	Use:   "start <subject>",
	Short: "Start a study session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		rec, err := a.tracker.StartSession(args[0])
		if err != nil {
			return err
		}
		start := timeutil.FromMillis(rec.StartTime)
		fmt.Printf("Started session #%d for %s at %s\n",
			rec.ID, rec.SubjectName, start.Format("15:04:05"))
		return nil
	},
}

var sessionProgressCmd = &cobra.Command{
	Use:   "progress <id> <active-seconds> <paused-seconds>",
	Short: "Snapshot cumulative progress for a running session",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, active, paused, err := parseSessionArgs(args)
		if err != nil {
			return err
		}
		a, err := openApp()
		if err != nil {
			return err
		}
		updated, err := a.tracker.UpdateSessionProgress(id, active, paused)
		if err != nil {
			return err
		}
		if !updated {
			fmt.Printf("No running session #%d\n", id)
			return nil
		}
		fmt.Printf("Session #%d at %s active\n", id, formatMinutes(active/60))
		return nil
	},
}

var sessionFinishCmd = &cobra.Command{
	Use:   "finish <id> <minutes> [paused-seconds]",
	Short: "Complete a session and fold it into the daily stats",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid session id %q", args[0])
		}
		minutes, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid minutes %q", args[1])
		}
		paused := 0
		if len(args) == 3 {
			if paused, err = strconv.Atoi(args[2]); err != nil {
				return fmt.Errorf("invalid paused seconds %q", args[2])
			}
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		if err := a.tracker.CompleteSession(id, minutes, paused); err != nil {
			return err
		}
		fmt.Printf("Completed session #%d: %s\n", id, valueStyle.Render(formatMinutes(minutes)))
		return nil
	},
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		sessions, err := a.tracker.Sessions()
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions yet.")
			return nil
		}
		for _, s := range sessions {
			start := timeutil.FromMillis(s.StartTime)
			state := subtleStyle.Render("running")
			if s.Completed() {
				state = formatMinutes(s.DurationMinutes)
			}
			fmt.Printf("  #%-4d %-24s %s  %s\n",
				s.ID, s.SubjectName, start.Format(time.DateTime), state)
		}
		return nil
	},
}

func parseSessionArgs(args []string) (id int64, active, paused int, err error) {
	id, err = strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid session id %q", args[0])
	}
	active, err = strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid active seconds %q", args[1])
	}
	paused, err = strconv.Atoi(args[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid paused seconds %q", args[2])
	}
	return id, active, paused, nil
}

func init() {
	sessionCmd.AddCommand(sessionStartCmd)
	sessionCmd.AddCommand(sessionProgressCmd)
	sessionCmd.AddCommand(sessionFinishCmd)
	sessionCmd.AddCommand(sessionListCmd)
}
