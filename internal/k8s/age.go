package k8s

import (
	"fmt"
	"time"
)

// FormatAge renders elapsed time since created as a single-unit string for
// display: {years}y over 365 days, {months}m over 30 days, {days}d over zero
// days, otherwise {hours}h. Lossy on purpose; the raw timestamp is stored
// alongside for anything that needs to compute.
func FormatAge(created, now time.Time) string {
	days := int(now.Sub(created).Hours() / 24)
	switch {
	case days > 365:
		return fmt.Sprintf("%dy", days/365)
	case days > 30:
		return fmt.Sprintf("%dm", days/30)
	case days > 0:
		return fmt.Sprintf("%dd", days)
	default:
		hours := int(now.Sub(created).Hours())
		if hours < 0 {
			hours = 0
		}
		return fmt.Sprintf("%dh", hours)
	}
}
