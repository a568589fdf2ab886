package person

import "fmt"

type Status int

const (
	StatusInactive Status = iota
	StatusActive
	StatusPending
)

func (s Status) String() string {
	switch s {
	case StatusInactive:
		return "inactive"
	case StatusActive:
		return "active"
	case StatusPending:
		return "pending"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ParseStatus is the inverse of Status.String.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "inactive":
		return StatusInactive, nil
	case "active":
		return StatusActive, nil
	case "pending":
		return StatusPending, nil
	}
	return 0, fmt.Errorf("unknown status %q", s)
}
