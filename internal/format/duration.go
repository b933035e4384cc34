package format

import (
	"fmt"
	"time"
)

// FormatUptime formats how long the monitor has been running, truncated to
// whole seconds once a second has elapsed.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatUptime(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Truncate(time.Second).String()
}
