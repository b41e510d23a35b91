package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rgehrsitz/itrgo/internal/domain"
)

const profileColumns = `id, name, gender, date_of_birth, salaried, residing_in_metro,
	email, pan, phone, occupation, created_at, updated_at`

// ProfileRepo stores the profile in a single-row Postgres table.
type ProfileRepo struct {
	db          *sqlx.DB
	initialized atomic.Bool
}

// NewProfileRepo creates a new PostgreSQL-backed profile store.
func NewProfileRepo(db *sqlx.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// Init applies the embedded migrations.
func (r *ProfileRepo) Init(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("profileRepo.Init: %w", domain.ErrStoreNotInitialized)
	}
	if err := migrateDB(ctx, r.db); err != nil {
		return fmt.Errorf("profileRepo.Init: %w", err)
	}
	r.initialized.Store(true)
	return nil
}

func (r *ProfileRepo) Get(ctx context.Context) (*domain.Profile, error) {
	if !r.initialized.Load() {
		return nil, domain.ErrStoreNotInitialized
	}
	var p domain.Profile
	err := r.db.GetContext(ctx, &p,
		"SELECT "+profileColumns+" FROM profiles ORDER BY created_at, id LIMIT 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("profileRepo.Get: %w", err)
	}
	return &p, nil
}

// Upsert overwrites the first row or inserts one, under an exclusive table lock.
func (r *ProfileRepo) Upsert(ctx context.Context, p *domain.Profile) error {
	if !r.initialized.Load() {
		return domain.ErrStoreNotInitialized
	}
	if p == nil {
		return fmt.Errorf("%w: profile is required", domain.ErrInvalidProfile)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("profileRepo.Upsert begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "LOCK TABLE profiles IN EXCLUSIVE MODE"); err != nil {
		return fmt.Errorf("profileRepo.Upsert lock: %w", err)
	}

	var existingID uuid.UUID
	err = tx.GetContext(ctx, &existingID, "SELECT id FROM profiles ORDER BY created_at, id LIMIT 1")
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.NamedExecContext(ctx, `INSERT INTO profiles (`+profileColumns+`)
			VALUES (:id, :name, :gender, :date_of_birth, :salaried, :residing_in_metro,
				:email, :pan, :phone, :occupation, :created_at, :updated_at)`, p)
		if err != nil {
			return fmt.Errorf("profileRepo.Upsert insert: %w", err)
		}
	case err != nil:
		return fmt.Errorf("profileRepo.Upsert select: %w", err)
	default:
		_, err = tx.ExecContext(ctx, `UPDATE profiles SET
				id = $1, name = $2, gender = $3, date_of_birth = $4, salaried = $5,
				residing_in_metro = $6, email = $7, pan = $8, phone = $9,
				occupation = $10, created_at = $11, updated_at = $12
			WHERE id = $13`,
			p.ID, p.Name, p.Gender, p.DateOfBirth, p.Salaried,
			p.ResidingInMetro, p.Email, p.PAN, p.Phone,
			p.Occupation, p.CreatedAt, p.UpdatedAt, existingID)
		if err != nil {
			return fmt.Errorf("profileRepo.Upsert update: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("profileRepo.Upsert commit: %w", err)
	}
	return nil
}

func (r *ProfileRepo) List(ctx context.Context) ([]domain.Profile, error) {
	if !r.initialized.Load() {
		return nil, domain.ErrStoreNotInitialized
	}
	profiles := []domain.Profile{}
	err := r.db.SelectContext(ctx, &profiles,
		"SELECT "+profileColumns+" FROM profiles ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("profileRepo.List: %w", err)
	}
	return profiles, nil
}

func (r *ProfileRepo) DeleteAll(ctx context.Context) error {
	if !r.initialized.Load() {
		return domain.ErrStoreNotInitialized
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM profiles"); err != nil {
		return fmt.Errorf("profileRepo.DeleteAll: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (r *ProfileRepo) Close() error {
	r.initialized.Store(false)
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
