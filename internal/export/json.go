package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/kaandel/studylog/internal/tracker"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Entries    []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	Date        string `json:"date"`
	Subject     string `json:"subject"`
	Minutes     int    `json:"minutes"`
	Duration    string `json:"duration"`
	LastUpdated string `json:"last_updated"`
}

// ToJSON writes the flat per-entry projection to path as pretty-printed JSON.
func ToJSON(entries []tracker.TimerEntry, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(entries),
	}

	for _, e := range entries {
		export.Entries = append(export.Entries, jsonEntry{
			Date:        e.Date,
			Subject:     e.Subject,
			Minutes:     e.TotalMinutes,
			Duration:    formatMinutes(e.TotalMinutes),
			LastUpdated: e.LastUpdated.Local().Format(time.RFC3339),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
