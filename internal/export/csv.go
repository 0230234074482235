package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/kaandel/studylog/internal/tracker"
)

// ToCSV writes the flat per-entry projection to path.
func ToCSV(entries []tracker.TimerEntry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Subject", "Minutes", "Duration", "Last Updated"}); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{
			e.Date,
			e.Subject,
			fmt.Sprintf("%d", e.TotalMinutes),
			formatMinutes(e.TotalMinutes),
			e.LastUpdated.Local().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatMinutes(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}
