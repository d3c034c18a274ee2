package pokedex

import (
	"fmt"
	"strings"
)

// FormatReferences formats references for display, one per line,
// number first.
func FormatReferences(refs []Reference) string {
	if len(refs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(refs))
	for _, ref := range refs {
		parts = append(parts, fmt.Sprintf("#%04d  %s", ref.Number, ref.Name))
	}

	return strings.Join(parts, "\n")
}

// FormatDetails formats a detail record for display. Numeric fields equal
// to UnknownValue render as "unknown".
func FormatDetails(d *Details) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "#%04d %s\n", d.Number, d.Name)
	fmt.Fprintf(&sb, "Types: %s\n", strings.Join(d.Types, ", "))
	fmt.Fprintf(&sb, "Catch rate: %s\n", formatValue(d.CatchRate))
	fmt.Fprintf(&sb, "Base exp. yield: %s\n", formatValue(d.BaseExpYield))
	fmt.Fprintf(&sb, "Base friendship: %s\n", formatValue(d.BaseFriendship))
	fmt.Fprintf(&sb, "Hatch time: %s\n", formatRange(d.HatchTimeMin, d.HatchTimeMax))
	if d.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(d.Description)
	}

	return sb.String()
}

func formatValue(n int) string {
	if n == UnknownValue {
		return "unknown"
	}
	return fmt.Sprintf("%d", n)
}

func formatRange(min, max int) string {
	if min == UnknownValue && max == UnknownValue {
		return "unknown"
	}
	if min == max {
		return fmt.Sprintf("%d cycles", min)
	}
	return fmt.Sprintf("%d - %d cycles", min, max)
}
