package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sadopc/fitbot/internal/progress"
)

func ToCSV(entries []progress.Entry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Type", "Duration (min)", "Calories"}); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{
			e.Date,
			e.Type,
			fmt.Sprintf("%d", e.DurationMin),
			fmt.Sprintf("%d", e.Calories),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
