package customer

import (
	"context"
	"errors"
)

// Service errors
var (
	ErrNotFound     = errors.New("customer form not found")
	ErrLimitReached = errors.New("customer form limit reached")
)

// Service manages customer forms on behalf of their owners. A form owned by
// someone else is reported as ErrNotFound.
//
// Input and Touch fail with form.ErrFieldNotFound for unknown paths; SetValues
// and PopulateTestData fail with form.ErrShape when the record does not match
// the form. Create fails with ErrLimitReached when the owner already holds the
// maximum number of forms. Save is not gated on validity.
type Service interface {
	Create(ctx context.Context, owner string) (*Session, error)
	Get(ctx context.Context, owner, id string) (*Session, error)
	Input(ctx context.Context, owner, id string, changes []FieldChange) (*Session, error)
	Touch(ctx context.Context, owner, id string, paths []string) (*Session, error)
	AddAddress(ctx context.Context, owner, id string) (*Session, error)
	Addresses(ctx context.Context, owner, id string) ([]Address, error)
	SetValues(ctx context.Context, owner, id string, value any) (*Session, error)
	PopulateTestData(ctx context.Context, owner, id string) (*Session, error)
	Save(ctx context.Context, owner, id string) (*SaveResult, error)
	Delete(ctx context.Context, owner, id string) error
}

// Sink receives saved snapshots.
type Sink interface {
	Save(ctx context.Context, owner string, result SaveResult) error
}
