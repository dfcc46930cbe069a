package entity

import "errors"

// ErrAlreadyInactive is returned when deactivating a record that is already inactive.
var ErrAlreadyInactive = errors.New("already inactive")

// State is the lifecycle state of a soft-deletable record.
// Records are never removed; deleting one moves it to Inactive.
type State int

const (
	Active State = iota
	Inactive
)

// StateFromActive maps the persisted is_active column to a State.
func StateFromActive(active bool) State {
	if active {
		return Active
	}
	return Inactive
}

func (s State) IsActive() bool { return s == Active }

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// deactivate moves an active state to Inactive.
func deactivate(s *State) error {
	if *s != Active {
		return ErrAlreadyInactive
	}
	*s = Inactive
	return nil
}
