package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Identifier prefixes for the two registration categories.
const (
	RegistrantIDPrefix = "P"
	TeamIDPrefix       = "T"
)

// FormatRegistrantID renders a registrant identifier such as P-0001.
func FormatRegistrantID(seq int) string {
	return fmt.Sprintf("%s-%04d", RegistrantIDPrefix, seq)
}

// FormatTeamID renders a team identifier such as T-0001.
func FormatTeamID(seq int) string {
	return fmt.Sprintf("%s-%04d", TeamIDPrefix, seq)
}

// IdentifierSequence parses the numeric suffix of a registrant or team
// identifier. It accepts any width of digits, not just four, since the
// sequence is unbounded.
func IdentifierSequence(id string) (int, error) {
	prefix, suffix, found := strings.Cut(id, "-")
	if !found || (prefix != RegistrantIDPrefix && prefix != TeamIDPrefix) {
		return 0, fmt.Errorf("malformed identifier %q", id)
	}
	seq, err := strconv.Atoi(suffix)
	if err != nil || seq < 0 {
		return 0, fmt.Errorf("malformed identifier %q", id)
	}
	return seq, nil
}
