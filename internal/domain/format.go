package domain

import "fmt"

// FormatSeconds renders a non-negative second count as a zero-padded "MM:SS"
// label. The caller guarantees non-negativity; no clamping happens here.
func FormatSeconds(total int) string {
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
