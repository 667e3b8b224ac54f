package utils

import (
	"fmt"
	"strings"
)

const sizeUnitStep = 1024

var sizeUnits = []string{"b", "kb", "mb", "gb", "tb", "pb"}

// FormatFileSize converts a byte length into a human-readable lower-case unit string.
func FormatFileSize(bytes int64) string {
	if bytes < sizeUnitStep {
		if bytes < 0 {
			bytes = 0
		}
		return fmt.Sprintf("%d%s", bytes, sizeUnits[0])
	}
	value := float64(bytes)
	unitIndex := 0
	for value >= sizeUnitStep && unitIndex < len(sizeUnits)-1 {
		value /= sizeUnitStep
		unitIndex++
	}
	if value >= 10 {
		return fmt.Sprintf("%.0f%s", value, sizeUnits[unitIndex])
	}
	return strings.TrimSuffix(fmt.Sprintf("%.1f", value), ".0") + sizeUnits[unitIndex]
}
