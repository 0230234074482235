// Package commands is the CLI surface over the studylog core. Each
// command opens the app, which loads config, runs pending migrations
// once, and hands explicit store-backed handles to the command body.
package commands

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/kaandel/studylog/internal/config"
	"github.com/kaandel/studylog/internal/notebook"
	"github.com/kaandel/studylog/internal/reminder"
	"github.com/kaandel/studylog/internal/store"
	"github.com/kaandel/studylog/internal/tracker"
)

var rootCmd = &cobra.Command{
	Use:   "studylog",
	Short: "A study timer and subject time tracker",
	Long: `studylog tracks focused study time per subject and day, keeps
session history and daily stats, and fires due reminders. All state lives
in plain files under the data directory.`,
	SilenceUsage: true,
}

// app bundles the handles every command works against. Constructed once
// per invocation; nothing here is global mutable state.
type app struct {
	cfg       *config.Config
	tracker   *tracker.Tracker
	notebook  *notebook.Notebook
	reminders *reminder.Service
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	dir, err := store.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	tr := tracker.New(dir)
	rs := reminder.NewService(dir)

	// Migrations run before anything touches the tables. A failed
	// migration leaves the schema version where it was and the app keeps
	// going with the state it has.
	migrations := append(tr.Migrations(), rs.Migrations()...)
	if err := store.Migrate(dir, migrations); err != nil {
		log.Printf("continuing with partially migrated data: %v", err)
	}

	return &app{
		cfg:       cfg,
		tracker:   tr,
		notebook:  notebook.New(dir),
		reminders: rs,
	}, nil
}

func (a *app) pollInterval() time.Duration {
	return time.Duration(a.cfg.ReminderPollSeconds) * time.Second
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(breakCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(todoCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(exportCmd)
}
