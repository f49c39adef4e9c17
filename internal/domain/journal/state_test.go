package journal

import "testing"

func TestStateValid(t *testing.T) {
	for _, s := range []State{StateActive, StateArchived, StateDeleted} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if State("PAUSED").Valid() {
		t.Error("PAUSED should not be valid")
	}
	if State("").Valid() {
		t.Error("empty state should not be valid")
	}
}

func TestStateTransitions(t *testing.T) {
	if !StateActive.CanTransitionTo(StateDeleted) {
		t.Error("ACTIVE -> DELETED must be allowed")
	}
	if !StateArchived.CanTransitionTo(StateDeleted) {
		t.Error("ARCHIVED -> DELETED must be allowed")
	}
	if StateDeleted.CanTransitionTo(StateActive) {
		t.Error("DELETED is terminal")
	}
	if StateDeleted.CanTransitionTo(StateDeleted) {
		t.Error("DELETED is terminal")
	}
	if StateActive.CanTransitionTo(StateArchived) {
		t.Error("the application never writes ARCHIVED")
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Errorf("%s should be valid", c)
		}
	}
	if Category("RANT").Valid() {
		t.Error("RANT should not be valid")
	}
}
