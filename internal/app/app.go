// Package app wires settings to concrete stores for the command entry points.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/rgehrsitz/itrgo/internal/profile"
	"github.com/rgehrsitz/itrgo/internal/profile/filestore"
	"github.com/rgehrsitz/itrgo/internal/repository/postgres"
)

// NewProfileStore builds the store selected by settings without initialising it
func NewProfileStore(settings *config.Settings) (profile.Store, error) {
	switch settings.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := postgres.NewDB(&settings.DB)
		if err != nil {
			return nil, err
		}
		return postgres.NewProfileRepo(db), nil
	case config.StoreDriverFile, "":
		return filestore.New(settings.Store.Path), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", settings.Store.Driver)
	}
}

// OpenProfiles builds and initialises the configured profile service.
// The caller must Close it.
func OpenProfiles(ctx context.Context, settings *config.Settings, log *zap.Logger) (*profile.Service, error) {
	store, err := NewProfileStore(settings)
	if err != nil {
		return nil, err
	}

	svc := profile.NewService(store)
	if log != nil {
		svc.SetLogger(log.Sugar())
	}
	if err := svc.Init(ctx); err != nil {
		_ = svc.Close()
		return nil, err
	}
	return svc, nil
}

// StoreInfo describes where profiles are kept, for display
func StoreInfo(settings *config.Settings) string {
	if settings.Store.Driver == config.StoreDriverPostgres {
		db := settings.DB
		return fmt.Sprintf("postgres %s@%s:%d/%s", db.User, db.Host, db.Port, db.Name)
	}
	return "file " + settings.Store.Path
}
