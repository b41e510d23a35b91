package profile

import (
	"context"

	"github.com/rgehrsitz/itrgo/internal/domain"
)

// Store is the persistence contract for the single profile record.
// Every method except Close fails with domain.ErrStoreNotInitialized
// until Init has succeeded.
type Store interface {
	// Init creates the backing schema or file if absent. Idempotent.
	Init(ctx context.Context) error
	// Get returns the profile, or nil and no error when none is stored.
	Get(ctx context.Context) (*domain.Profile, error)
	// Upsert replaces the stored profile, creating it when absent.
	Upsert(ctx context.Context, p *domain.Profile) error
	List(ctx context.Context) ([]domain.Profile, error)
	DeleteAll(ctx context.Context) error
	Close() error
}
