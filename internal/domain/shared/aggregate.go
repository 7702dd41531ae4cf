package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries identity and audit timestamps.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID returns the entity's identity.
func (e *BaseEntity) GetID() uuid.UUID { return e.ID }

// Touch stamps UpdatedAt with the current time.
func (e *BaseEntity) Touch() { e.UpdatedAt = time.Now() }

// NewBaseEntity allocates a fresh identity stamped with the current time.
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// BaseAggregateRoot adds an optimistic-locking version to BaseEntity.
// A new aggregate starts at version 1; each successful save bumps it.
type BaseAggregateRoot struct {
	BaseEntity
	Version int
}

// NewBaseAggregateRoot returns an unsaved aggregate root at version 1.
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

// GetVersion returns the version the aggregate was loaded at.
func (a *BaseAggregateRoot) GetVersion() int { return a.Version }

// CheckVersion returns ErrConcurrencyConflict when the stored version no
// longer matches the one this copy was loaded at.
func (a *BaseAggregateRoot) CheckVersion(stored int) error {
	if stored != a.Version {
		return ErrConcurrencyConflict
	}
	return nil
}

// NextVersion is the version a successful save will write.
func (a *BaseAggregateRoot) NextVersion() int { return a.Version + 1 }
