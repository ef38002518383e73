package domain

import "strings"

// NormalizeHumanName trims surrounding whitespace and collapses internal runs
// to a single space. Profile names and pickup labels go through it before
// they are stored.
func NormalizeHumanName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
