package breaker

import "fmt"

const (
	dismissLockedLabel = "Quit (Available after timer)"
	dismissReadyLabel  = "Quit Break Screen"
)

// FormatCountdown renders seconds as M:SS
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// SnoozeLabel is the snooze button text for the given snoozes left today
func SnoozeLabel(left int) string {
	return fmt.Sprintf("Snooze (1 hour) (%d left today)", left)
}

// DismissLabel is the quit button text
func DismissLabel(ready bool) string {
	if ready {
		return dismissReadyLabel
	}
	return dismissLockedLabel
}
