package models

import "time"

// Team is a named group of registrants sharing team-event selections.
type Team struct {
	ID        int64     `json:"id"`
	TID       string    `json:"team_id"`
	Name      string    `json:"team_name"`
	CreatedAt time.Time `json:"-"`
}

// TeamMember is a resolved member entry inside a team view.
type TeamMember struct {
	PID     string `json:"pid"`
	Name    string `json:"name"`
	College string `json:"college,omitempty"`
}

// TeamDetail is a team enriched with its resolved members, event selections
// and the college derived from the first member.
type TeamDetail struct {
	Team
	College string       `json:"college"`
	Members []TeamMember `json:"members"`
	Events  []string     `json:"events"`
}

// DerivedCollege returns the reporting college for a member list: the first
// member's college, or empty when the team has no members.
func DerivedCollege(members []TeamMember) string {
	if len(members) == 0 {
		return ""
	}
	return members[0].College
}
