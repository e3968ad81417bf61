package models

import "time"

// Registrant is one person signed up for the festival, individually or as
// part of a team.
type Registrant struct {
	ID        int64     `json:"id"`
	PID       string    `json:"pid"`
	Name      string    `json:"name"`
	PhoneNo   string    `json:"phoneno"`
	RollNo    string    `json:"rollno"`
	College   string    `json:"college"`
	Course    string    `json:"course"`
	Year      string    `json:"year"`
	CreatedAt time.Time `json:"-"`
}

// RegistrantDetail is a registrant together with their individual event
// selections.
type RegistrantDetail struct {
	Registrant
	Events []string `json:"events"`
}

// MemberRef is the minimal resolution of a registrant identifier, used when
// attaching members to a team.
type MemberRef struct {
	ID   int64
	PID  string
	Name string
}
