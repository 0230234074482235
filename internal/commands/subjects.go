package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List and manage tracked subjects",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		subjects, err := a.tracker.Subjects()
		if err != nil {
			return err
		}
		if len(subjects) == 0 {
			fmt.Println("No subjects yet.")
			return nil
		}
		for _, s := range subjects {
			total, err := a.tracker.SubjectTotal(s)
			if err != nil {
				return err
			}
			fmt.Printf("  %-24s %s\n", s, subtleStyle.Render(formatMinutes(total)))
		}
		return nil
	},
}

var hideCmd = &cobra.Command{
	Use:   "hide <subject>",
	Short: "Hide a subject from listings without deleting its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		changed, err := a.tracker.HideSubject(args[0])
		if err != nil {
			return err
		}
		if !changed {
			fmt.Printf("%q is already hidden\n", args[0])
			return nil
		}
		fmt.Printf("Hidden %q\n", args[0])
		return nil
	},
}

var unhideCmd = &cobra.Command{
	Use:   "unhide <subject>",
	Short: "Bring a hidden subject back into listings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		changed, err := a.tracker.UnhideSubject(args[0])
		if err != nil {
			return err
		}
		if !changed {
			fmt.Printf("%q was not hidden\n", args[0])
			return nil
		}
		fmt.Printf("Unhidden %q\n", args[0])
		return nil
	},
}

var deleteSubjectCmd = &cobra.Command{
	Use:   "delete <subject>",
	Short: "Delete a subject and all of its timer history",
	Long:  "Delete every timer entry and hidden marker for a subject. This cannot be undone.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		deleted, err := a.tracker.DeleteSubject(args[0])
		if err != nil {
			return err
		}
		if !deleted {
			fmt.Printf("Nothing stored for %q\n", args[0])
			return nil
		}
		fmt.Printf("Deleted all data for %q\n", args[0])
		return nil
	},
}

func init() {
	subjectsCmd.AddCommand(hideCmd)
	subjectsCmd.AddCommand(unhideCmd)
	subjectsCmd.AddCommand(deleteSubjectCmd)
}
