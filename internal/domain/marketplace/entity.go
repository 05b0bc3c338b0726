package marketplace

import (
	"strings"
	"time"
)

type UserType string

const (
	UserTypeClient     UserType = "CLIENT"
	UserTypeFreelancer UserType = "FREELANCER"
)

// ParseUserType accepts either case ("client", "FREELANCER").
func ParseUserType(s string) (UserType, bool) {
	switch UserType(strings.ToUpper(strings.TrimSpace(s))) {
	case UserTypeClient:
		return UserTypeClient, true
	case UserTypeFreelancer:
		return UserTypeFreelancer, true
	default:
		return "", false
	}
}

type User struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	UserType UserType `json:"userType"`
}

type Availability string

const (
	AvailabilityFullTime Availability = "full-time"
	AvailabilityPartTime Availability = "part-time"
	AvailabilityContract Availability = "contract"
)

func (a Availability) Valid() bool {
	switch a {
	case AvailabilityFullTime, AvailabilityPartTime, AvailabilityContract:
		return true
	default:
		return false
	}
}

type Technology struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Freelancer struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Title        string   `json:"title"`
	Technologies []string `json:"technologies"`
	HourlyRate   float64  `json:"hourlyRate"`
	Experience   int      `json:"experience"`
	Avatar       string   `json:"avatar"`
}

// Clone returns a copy that shares no slices with f.
func (f Freelancer) Clone() Freelancer {
	out := f
	out.Technologies = append([]string(nil), f.Technologies...)
	return out
}

type Project struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Budget       float64      `json:"budget"`
	Technologies []string     `json:"technologies"`
	PostedDate   time.Time    `json:"postedDate"`
	ClientID     string       `json:"clientId,omitempty"`
	ClientName   string       `json:"clientName,omitempty"`
	ClientEmail  string       `json:"clientEmail,omitempty"`
	Matches      []Freelancer `json:"matches,omitempty"`
}

type FreelancerProfile struct {
	Title        string       `json:"title"`
	Bio          string       `json:"bio"`
	Experience   int          `json:"experience"`
	HourlyRate   float64      `json:"hourlyRate"`
	Technologies []string     `json:"technologies"`
	Availability Availability `json:"availability"`
	Avatar       string       `json:"avatar,omitempty"`
}

type Notification struct {
	ID           string     `json:"id"`
	ProjectID    string     `json:"projectId"`
	ProjectTitle string     `json:"projectTitle"`
	Freelancer   Freelancer `json:"freelancer"`
	Timestamp    time.Time  `json:"timestamp"`
}

// ProjectMatch is a per-freelancer read model and is never persisted.
type ProjectMatch struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Budget          float64   `json:"budget"`
	Technologies    []string  `json:"technologies"`
	PostedDate      time.Time `json:"postedDate"`
	ClientName      string    `json:"clientName"`
	ClientEmail     string    `json:"clientEmail"`
	MatchPercentage int       `json:"matchPercentage"`
}
