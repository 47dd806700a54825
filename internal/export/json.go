package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/fitbot/internal/progress"
)

type jsonExport struct {
	ExportedAt string           `json:"exported_at"`
	Count      int              `json:"count"`
	Entries    []progress.Entry `json:"entries"`
}

func ToJSON(entries []progress.Entry, path string) error {
	doc := jsonExport{
		ExportedAt: time.Now().Format(time.RFC3339),
		Count:      len(entries),
		Entries:    entries,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// DefaultPath returns ~/fitbot-export-<date>.<ext>, falling back to the
// current directory when the home dir is unknown.
func DefaultPath(ext string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	name := fmt.Sprintf("fitbot-export-%s.%s", time.Now().Format("2006-01-02"), ext)
	return home + string(os.PathSeparator) + name
}
