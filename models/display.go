// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "strings"

var palette = []string{
	"#ff007a", "#bafd6e", "#3c2e55", "#ff66b4",
	"#d3ff9d", "#5a4a7d", "#f95db2", "#89d160",
}

// Initials derives a two-letter badge from a display name:
// first + last word initials, or the first two letters of a single word.
func Initials(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "??"
	}
	if len(parts) == 1 {
		word := []rune(parts[0])
		if len(word) == 1 {
			return strings.ToUpper(string(word))
		}
		return strings.ToUpper(string(word[:2]))
	}
	first := []rune(parts[0])
	last := []rune(parts[len(parts)-1])
	return strings.ToUpper(string(first[0]) + string(last[0]))
}

// ColorFor picks a deterministic palette color for a name, so the same
// participant renders the same everywhere.
func ColorFor(name string) string {
	value := 0
	for i, c := range strings.ToLower(name) {
		value += (i + 1) * int(c)
	}
	return palette[value%len(palette)]
}

// NewParticipant bundles a name with its display attributes.
func NewParticipant(name string) Participant {
	return Participant{Name: name, Initials: Initials(name), Color: ColorFor(name)}
}

// DigitsOnly strips everything but ASCII digits from a contact number.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}
