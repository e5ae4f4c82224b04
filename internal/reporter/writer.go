package reporter

import (
	"fmt"
	"os"
	"time"
)

// WriteReport writes the fully rendered report in one shot,
// replacing any previous report at path. Rendering happens entirely
// before this call, so a failed run never leaves a partial report.
func WriteReport(path, rendered string) error {
	if err := os.WriteFile(path, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

// WriteError replaces the error file with a single timestamped line
// describing the failure.
func WriteError(path string, now time.Time, cause error) error {
	line := fmt.Sprintf("%s: %s\n", now.Format(TimestampLayout), cause)
	if err := os.WriteFile(path, []byte(line), 0644); err != nil {
		return fmt.Errorf("write error file %s: %w", path, err)
	}
	return nil
}
