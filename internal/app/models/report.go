package models

// IndividualRosterEntry is one participant row in a per-event roster.
type IndividualRosterEntry struct {
	PID     string `json:"pid"`
	Name    string `json:"name"`
	College string `json:"college"`
	PhoneNo string `json:"phoneno"`
}

// TeamRosterEntry is one team row in a per-event roster or team report.
type TeamRosterEntry struct {
	TID      string       `json:"team_id"`
	TeamName string       `json:"team_name"`
	College  string       `json:"college"`
	Members  []TeamMember `json:"members"`
	Events   []string     `json:"events,omitempty"`
}

// RegistrantReportRow is one registrant row in a printable report, with the
// event list populated for report types that carry it.
type RegistrantReportRow struct {
	PID     string   `json:"pid"`
	Name    string   `json:"name"`
	PhoneNo string   `json:"phoneno"`
	College string   `json:"college,omitempty"`
	Course  string   `json:"course"`
	Year    string   `json:"year"`
	Events  []string `json:"events,omitempty"`
}

// EventCatalog lists the distinct event names seen in individual and team
// selections.
type EventCatalog struct {
	Individual []string `json:"individual"`
	Team       []string `json:"team"`
}

// RegistrationSummary aggregates registration counts for the dashboard.
type RegistrationSummary struct {
	EventCounts map[string]int `json:"eventCounts"`
	ClubCounts  map[string]int `json:"clubCounts"`
	Total       int            `json:"total"`
}

// EventRegistrationCount is a per-event registration tally.
type EventRegistrationCount struct {
	EventName     string `json:"event_name"`
	Registrations int    `json:"registrations"`
}

// EventStatistics aggregates participation counts across both categories.
type EventStatistics struct {
	IndividualCount int                      `json:"individualCount"`
	TeamCount       int                      `json:"teamCount"`
	TeamEvents      []EventRegistrationCount `json:"teamEvents"`
}
