package model

import "time"

// ProjectStatus is the lifecycle state of a project listing
type ProjectStatus string

const (
	ProjectStatusOpen      ProjectStatus = "OPEN"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
)

// projectTransitions lists the states each status may move to
var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectStatusOpen:      {ProjectStatusCompleted},
	ProjectStatusCompleted: nil,
}

// IsValid reports whether s is a known status
func (s ProjectStatus) IsValid() bool {
	_, ok := projectTransitions[s]
	return ok
}

// CanTransitionTo reports whether a project in status s may move to next
func (s ProjectStatus) CanTransitionTo(next ProjectStatus) bool {
	for _, allowed := range projectTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseProjectStatus converts a raw value into a ProjectStatus
func ParseProjectStatus(raw string) (ProjectStatus, bool) {
	s := ProjectStatus(raw)
	return s, s.IsValid()
}

// Project represents a freelance project listing
type Project struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Budget      int64         `json:"budget"`
	TechStack   []string      `json:"tech_stack"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Project field constraints
const (
	ProjectTitleMinLength       = 5
	ProjectTitleMaxLength       = 100
	ProjectDescriptionMinLength = 20
)

// Pagination bounds for project listings
const (
	DefaultProjectLimit = 10
	MaxProjectLimit     = 100
)
