// Package timeutil provides time formatting utilities.
package timeutil

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration into a human-readable string.
// Sub-second durations keep millisecond precision (the CI sync poll
// completes in tens of milliseconds); anything longer is rounded to
// the nearest second and displayed in "Xm Ys" or "Ys" format.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	d = d.Round(time.Second)
	minutes := d / time.Minute
	seconds := (d % time.Minute) / time.Second

	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
