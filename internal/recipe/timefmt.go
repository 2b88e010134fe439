package recipe

import "fmt"

// FormatTime renders a second count as M:SS. Minutes are not rolled into
// hours, so a one-hour mark shows as "60:00", the same convention the
// player overlay uses for chapter lists.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
