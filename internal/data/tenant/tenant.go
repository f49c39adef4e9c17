// Package tenant enforces the two rules every journal read path must obey:
// queries carry an owner predicate, and soft-deleted rows stay invisible
// unless a caller explicitly opts in.
package tenant

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ymorita/studylog/internal/domain/journal"
)

// ErrMissingOwner reports a query built without an owner id. That is a
// programming error in the caller, not a runtime 404, so it must fail loudly
// instead of returning an empty result.
var ErrMissingOwner = errors.New("tenant: query built without an owner id")

// Scope is the mandatory owner scope applied to every repo operation.
type Scope struct {
	OwnerID uuid.UUID

	// IncludeDeleted lifts the default state <> 'DELETED' filter. Reads
	// that set it still see only the caller's own rows.
	IncludeDeleted bool
}

// Owner returns the default scope for an owner: own rows, deleted excluded.
func Owner(ownerID uuid.UUID) Scope {
	return Scope{OwnerID: ownerID}
}

// Apply adds the scope's predicates to a query. The owner column is always
// constrained; state is constrained unless the scope opts into deleted rows.
func (s Scope) Apply(q *gorm.DB) (*gorm.DB, error) {
	if s.OwnerID == uuid.Nil {
		return nil, ErrMissingOwner
	}
	q = q.Where("owner_id = ?", s.OwnerID)
	if !s.IncludeDeleted {
		q = q.Where("state <> ?", journal.StateDeleted)
	}
	return q, nil
}
