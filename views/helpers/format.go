package helpers

import (
	"fmt"
	"time"

	twmerge "github.com/Oudwins/tailwind-merge-go"
)

// FormatPrice formats cents as dollars (e.g., 4000 -> "$40.00")
func FormatPrice(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

// FormatYear returns the four digit year of t.
func FormatYear(t time.Time) string {
	return t.Format("2006")
}

// Classes merges tailwind class lists; later classes win over conflicting earlier ones.
func Classes(classes ...string) string {
	return twmerge.Merge(classes...)
}
