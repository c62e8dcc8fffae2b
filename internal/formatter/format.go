package formatter

import "fmt"

// formatDuration renders seconds as "8h" when the minute component is
// zero, or "1h 30m" otherwise.
func formatDuration(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	if minutes == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// formatMinuteOfDay renders a minute-of-day value as HH:MM.
func formatMinuteOfDay(minutes float64) string {
	total := int(minutes)
	hours := (total / 60) % 24
	mins := total % 60
	return fmt.Sprintf("%02d:%02d", hours, mins)
}

func medalOrBullet(rank int) string {
	switch rank {
	case 1:
		return "\U0001F947"
	case 2:
		return "\U0001F948"
	case 3:
		return "\U0001F949"
	default:
		return "•"
	}
}
