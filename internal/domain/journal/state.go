package journal

// State is the logical lifecycle state shared by all journal entities.
//
// ACTIVE is the initial state. ARCHIVED is a valid stored state that is only
// observed through read filters; nothing in the application writes it.
// DELETED is terminal: once an entity is DELETED every scoped read, update,
// or delete treats it as nonexistent.
type State string

const (
	StateActive   State = "ACTIVE"
	StateArchived State = "ARCHIVED"
	StateDeleted  State = "DELETED"
)

func (s State) Valid() bool {
	switch s {
	case StateActive, StateArchived, StateDeleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether the application may move an entity from s
// to target. The only implemented transition is any non-deleted state to
// DELETED.
func (s State) CanTransitionTo(target State) bool {
	if s == StateDeleted {
		return false
	}
	return target == StateDeleted
}
