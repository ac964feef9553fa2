package models

import "fmt"

// Role is the coarse permission level of a user. Values are stored and
// serialized as integers.
type Role int

const (
	RoleUser Role = iota
	RoleProjectManager
	RoleAdmin
)

func (r Role) Valid() bool { return r >= RoleUser && r <= RoleAdmin }

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "User"
	case RoleProjectManager:
		return "ProjectManager"
	case RoleAdmin:
		return "Admin"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Status is the lifecycle state of a project. Transitions are unrestricted.
type Status int

const (
	StatusToDo Status = iota
	StatusInProgress
	StatusCompleted
	StatusCancelled
)

func (s Status) Valid() bool { return s >= StatusToDo && s <= StatusCancelled }

func (s Status) String() string {
	switch s {
	case StatusToDo:
		return "ToDo"
	case StatusInProgress:
		return "InProgress"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// EstimateType classifies a resource line item.
type EstimateType int

const (
	EstimateUX EstimateType = iota
	EstimateDevelopment
	EstimateProjectManagement
	EstimateTesting
)

func (e EstimateType) Valid() bool { return e >= EstimateUX && e <= EstimateTesting }

func (e EstimateType) String() string {
	switch e {
	case EstimateUX:
		return "UX"
	case EstimateDevelopment:
		return "Development"
	case EstimateProjectManagement:
		return "ProjectManagement"
	case EstimateTesting:
		return "Testing"
	}
	return fmt.Sprintf("EstimateType(%d)", int(e))
}
