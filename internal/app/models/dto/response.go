package dto

// ErrorResponse is the JSON failure body: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse acknowledges a mutation with no payload.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// Suggestion is one typeahead result. Name is populated only for the
// team-member variant.
type Suggestion struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Name  string `json:"name,omitempty"`
}

// FindMemberResponse reports whether a registrant identifier exists.
type FindMemberResponse struct {
	Found bool   `json:"found"`
	PID   string `json:"pid,omitempty"`
	Name  string `json:"name,omitempty"`
}
