package panel

import "fmt"

// FormatFileSize renders a byte count as KB or MB. Unknown sizes render "N/A".
func FormatFileSize(size int64) string {
	if size <= 0 {
		return "N/A"
	}
	kb := float64(size) / 1024
	if kb < 1024 {
		return fmt.Sprintf("%.1f KB", kb)
	}
	return fmt.Sprintf("%.2f MB", kb/1024)
}
