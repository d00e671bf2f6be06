// Package core provides the transaction domain model, date-range resolution
// and aggregation for the tracker.
//
// FormatAmount is the machine form used by the export codec, FormatDisplay
// the form shown to users. They are not interchangeable.
package core

import (
	"fmt"
	"strings"
)

// FormatAmount renders a signed amount with exactly two decimals and a period
// separator, e.g. "-50.00". This is the serialization format.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatDisplay renders an amount with thousands dots and a decimal comma,
// e.g. "1.234,56", matching the UI's locale convention.
func FormatDisplay(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(decPart)
	return b.String()
}
