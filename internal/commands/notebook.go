package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Keep a small to-do list",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		todos, err := a.notebook.Todos()
		if err != nil {
			return err
		}
		if len(todos) == 0 {
			fmt.Println("No todos.")
			return nil
		}
		for _, t := range todos {
			mark := "[ ]"
			text := t.Text
			if t.Done {
				mark = "[x]"
				text = subtleStyle.Render(text)
			}
			fmt.Printf("  #%-4d %s %s\n", t.ID, mark, text)
		}
		return nil
	},
}

var todoAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a todo",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		id, err := a.notebook.AddTodo(strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Printf("Added todo #%d\n", id)
		return nil
	},
}

var todoDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a todo done",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setTodoDone(args[0], true) },
}

var todoUndoneCmd = &cobra.Command{
	Use:   "undone <id>",
	Short: "Mark a todo not done",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setTodoDone(args[0], false) },
}

var todoRemoveCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid todo id %q", args[0])
		}
		a, err := openApp()
		if err != nil {
			return err
		}
		removed, err := a.notebook.RemoveTodo(id)
		if err != nil {
			return err
		}
		if !removed {
			fmt.Printf("No todo #%d\n", id)
			return nil
		}
		fmt.Println("Removed.")
		return nil
	},
}

func setTodoDone(arg string, done bool) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid todo id %q", arg)
	}
	a, err := openApp()
	if err != nil {
		return err
	}
	updated, err := a.notebook.SetTodoDone(id, done)
	if err != nil {
		return err
	}
	if !updated {
		fmt.Printf("No todo #%d\n", id)
	}
	return nil
}

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Keep titled notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		notes, err := a.notebook.Notes()
		if err != nil {
			return err
		}
		if len(notes) == 0 {
			fmt.Println("No notes.")
			return nil
		}
		for _, n := range notes {
			fmt.Printf("  #%-4d %-24s %s\n", n.ID, n.Title,
				subtleStyle.Render(n.UpdatedAt.Format("2006-01-02 15:04")))
		}
		return nil
	},
}

var noteSaveCmd = &cobra.Command{
	Use:   "save <title> <body>",
	Short: "Create a note or replace one with the same title",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		id, err := a.notebook.SaveNote(args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Printf("Saved note #%d\n", id)
		return nil
	},
}

var noteShowCmd = &cobra.Command{
	Use:   "show <title>",
	Short: "Print a note body",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		notes, err := a.notebook.Notes()
		if err != nil {
			return err
		}
		for _, n := range notes {
			if n.Title == args[0] {
				fmt.Println(titleStyle.Render(n.Title))
				fmt.Println(n.Body)
				return nil
			}
		}
		return fmt.Errorf("no note titled %q", args[0])
	},
}

var noteRemoveCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid note id %q", args[0])
		}
		a, err := openApp()
		if err != nil {
			return err
		}
		removed, err := a.notebook.RemoveNote(id)
		if err != nil {
			return err
		}
		if !removed {
			fmt.Printf("No note #%d\n", id)
			return nil
		}
		fmt.Println("Removed.")
		return nil
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read and write app settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		settings, err := a.notebook.Settings()
		if err != nil {
			return err
		}
		if len(settings) == 0 {
			fmt.Println("No settings.")
			return nil
		}
		for _, s := range settings {
			fmt.Printf("  %-24s %s\n", s.Key, valueStyle.Render(s.Value))
		}
		return nil
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		v, err := a.notebook.GetSetting(args[0])
		if err != nil {
			return err
		}
		fmt.Println(v)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		return a.notebook.SetSetting(args[0], args[1])
	},
}

func init() {
	todoCmd.AddCommand(todoAddCmd)
	todoCmd.AddCommand(todoDoneCmd)
	todoCmd.AddCommand(todoUndoneCmd)
	todoCmd.AddCommand(todoRemoveCmd)

	noteCmd.AddCommand(noteSaveCmd)
	noteCmd.AddCommand(noteShowCmd)
	noteCmd.AddCommand(noteRemoveCmd)

	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
