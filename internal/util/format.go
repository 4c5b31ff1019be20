package util

import "fmt"

// FormatMB renders a byte count the way file sizes are reported to API
// clients, e.g. "2.50 MB".
func FormatMB(size int64) string {
	return fmt.Sprintf("%.2f MB", float64(size)/1024/1024)
}

// FormatKB renders a byte count in kilobytes for CLI output.
func FormatKB(size int64) string {
	return fmt.Sprintf("%.2f KB", float64(size)/1024)
}
