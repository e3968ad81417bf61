package dto

// RegisterForm is the individual registration form submission.
type RegisterForm struct {
	Name    string   `form:"name" binding:"required"`
	PhoneNo string   `form:"phoneno" binding:"required"`
	RollNo  string   `form:"rollno" binding:"required"`
	College string   `form:"college" binding:"required"`
	Course  string   `form:"course"`
	Year    string   `form:"year"`
	Events  []string `form:"events"`
}

// TeamRegisterForm is the team registration form submission.
type TeamRegisterForm struct {
	TeamName string   `form:"team_name" binding:"required"`
	PIDs     []string `form:"pids"`
	Events   []string `form:"events"`
}

// UpdateRegistrationRequest replaces a registrant's scalar fields and the
// whole individual event selection set.
type UpdateRegistrationRequest struct {
	Name    string   `json:"name" binding:"required"`
	PhoneNo string   `json:"phoneno" binding:"required"`
	RollNo  string   `json:"rollno" binding:"required"`
	College string   `json:"college" binding:"required"`
	Course  string   `json:"course"`
	Year    string   `json:"year"`
	Events  []string `json:"events"`
}

// UpdateTeamRequest replaces a team's name, full membership set and full
// event selection set.
type UpdateTeamRequest struct {
	TeamName   string   `json:"team_name" binding:"required"`
	MemberPIDs []string `json:"member_pids"`
	Events     []string `json:"events"`
}
