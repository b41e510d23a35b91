package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/domain"
)

var panPattern = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

// Service applies validation and timestamps on top of a Store.
// Writes are serialised so a read-modify-write never interleaves.
type Service struct {
	mu     sync.Mutex
	store  Store
	now    func() time.Time
	logger calculation.Logger
}

// NewService creates a profile service over a store
func NewService(store Store) *Service {
	return &Service{
		store:  store,
		now:    time.Now,
		logger: calculation.NopLogger{},
	}
}

// SetClock replaces the time source used for timestamps
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// SetLogger replaces the service logger; nil installs a NopLogger
func (s *Service) SetLogger(l calculation.Logger) {
	if l == nil {
		s.logger = calculation.NopLogger{}
		return
	}
	s.logger = l
}

// Init prepares the underlying store
func (s *Service) Init(ctx context.Context) error {
	if err := s.store.Init(ctx); err != nil {
		return fmt.Errorf("profile store init: %w", err)
	}
	return nil
}

// Close releases the underlying store
func (s *Service) Close() error {
	return s.store.Close()
}

// Save validates and stores p, keeping the identity and creation time of
// any existing record. The saved profile is returned.
func (s *Service) Save(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: profile is required", domain.ErrInvalidProfile)
	}

	saved := normalize(*p)
	now := s.now().UTC().Truncate(time.Microsecond)
	if err := Validate(&saved, now); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("profile save: %w", err)
	}

	if existing != nil {
		saved.ID = existing.ID
		saved.CreatedAt = existing.CreatedAt
		if !now.After(existing.UpdatedAt) {
			now = existing.UpdatedAt.Add(time.Microsecond)
		}
	} else {
		if saved.ID == uuid.Nil {
			saved.ID = uuid.New()
		}
		saved.CreatedAt = now
	}
	saved.UpdatedAt = now

	if err := s.store.Upsert(ctx, &saved); err != nil {
		return nil, fmt.Errorf("profile save: %w", err)
	}

	if existing != nil {
		s.logger.Infof("profile %s updated", saved.ID)
	} else {
		s.logger.Infof("profile %s created", saved.ID)
	}

	return &saved, nil
}

// Load returns the stored profile, or nil when none exists
func (s *Service) Load(ctx context.Context) (*domain.Profile, error) {
	p, err := s.store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("profile load: %w", err)
	}
	return p, nil
}

// Dump returns every stored row
func (s *Service) Dump(ctx context.Context) (*domain.Snapshot, error) {
	profiles, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("profile dump: %w", err)
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	return &domain.Snapshot{Profiles: profiles, TotalProfiles: len(profiles)}, nil
}

// ExportJSON renders Dump as indented JSON
func (s *Service) ExportJSON(ctx context.Context) ([]byte, error) {
	snapshot, err := s.Dump(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("profile export: %w", err)
	}
	return data, nil
}

// Delete removes every stored profile
func (s *Service) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteAll(ctx); err != nil {
		return fmt.Errorf("profile delete: %w", err)
	}
	s.logger.Infof("profile deleted")
	return nil
}

// Validate checks a profile against the field rules; errors wrap domain.ErrInvalidProfile
func Validate(p *domain.Profile, now time.Time) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidProfile)
	}

	switch p.Gender {
	case "", domain.GenderMale, domain.GenderFemale:
	default:
		return fmt.Errorf("%w: gender must be %q or %q", domain.ErrInvalidProfile, domain.GenderMale, domain.GenderFemale)
	}

	if p.DateOfBirth != nil && p.DateOfBirth.After(now) {
		return fmt.Errorf("%w: date of birth is in the future", domain.ErrInvalidProfile)
	}

	if p.PAN != "" && !panPattern.MatchString(p.PAN) {
		return fmt.Errorf("%w: PAN must look like AAAAA9999A", domain.ErrInvalidProfile)
	}

	if p.Email != "" {
		if _, err := mail.ParseAddress(p.Email); err != nil {
			return fmt.Errorf("%w: invalid email %q", domain.ErrInvalidProfile, p.Email)
		}
	}

	return nil
}

func normalize(p domain.Profile) domain.Profile {
	p.Name = strings.TrimSpace(p.Name)
	p.Gender = strings.ToLower(strings.TrimSpace(p.Gender))
	p.PAN = strings.ToUpper(strings.TrimSpace(p.PAN))
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Occupation = strings.TrimSpace(p.Occupation)
	if p.DateOfBirth != nil {
		d := p.DateOfBirth.UTC()
		dob := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		p.DateOfBirth = &dob
	}
	return p
}

// ParseDate parses a YYYY-MM-DD date of birth; empty input gives nil
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("%w: date of birth must be YYYY-MM-DD", domain.ErrInvalidProfile)
	}
	return &t, nil
}
