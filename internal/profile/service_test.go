package profile_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/profile"
	"github.com/rgehrsitz/itrgo/mocks"
)

var fixedNow = time.Date(2026, 4, 1, 10, 30, 0, 0, time.UTC)

func newService(store *mocks.MockProfileStore) *profile.Service {
	svc := profile.NewService(store)
	svc.SetClock(func() time.Time { return fixedNow })
	return svc
}

func dob(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestService_Save_CreatesNewProfile(t *testing.T) {
	store := new(mocks.MockProfileStore)
	svc := newService(store)

	store.On("Get", mock.Anything).Return(nil, nil)
	store.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Profile")).Return(nil)

	saved, err := svc.Save(context.Background(), &domain.Profile{
		Name:        "  Asha Rao ",
		Gender:      "Female",
		PAN:         "abcde1234f",
		DateOfBirth: dob("1990-06-15"),
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, "Asha Rao", saved.Name)
	assert.Equal(t, domain.GenderFemale, saved.Gender)
	assert.Equal(t, "ABCDE1234F", saved.PAN)
	assert.Equal(t, fixedNow, saved.CreatedAt)
	assert.Equal(t, fixedNow, saved.UpdatedAt)
	store.AssertExpectations(t)
}

func TestService_Save_PreservesIdentityOnUpdate(t *testing.T) {
	store := new(mocks.MockProfileStore)
	svc := newService(store)

	existing := &domain.Profile{
		ID:        uuid.New(),
		Name:      "Old Name",
		CreatedAt: fixedNow.Add(-48 * time.Hour),
		UpdatedAt: fixedNow.Add(-24 * time.Hour),
	}
	store.On("Get", mock.Anything).Return(existing, nil)
	store.On("Upsert", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.ID == existing.ID && p.Name == "New Name"
	})).Return(nil)

	saved, err := svc.Save(context.Background(), &domain.Profile{ID: uuid.New(), Name: "New Name"})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, saved.ID)
	assert.Equal(t, existing.CreatedAt, saved.CreatedAt)
	assert.Equal(t, fixedNow, saved.UpdatedAt)
	store.AssertExpectations(t)
}

func TestService_Save_UpdatedAtIsMonotonic(t *testing.T) {
	store := new(mocks.MockProfileStore)
	svc := newService(store)

	existing := &domain.Profile{
		ID:        uuid.New(),
		Name:      "Asha",
		CreatedAt: fixedNow,
		UpdatedAt: fixedNow,
	}
	store.On("Get", mock.Anything).Return(existing, nil)
	store.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	saved, err := svc.Save(context.Background(), &domain.Profile{Name: "Asha"})

	require.NoError(t, err)
	assert.True(t, saved.UpdatedAt.After(existing.UpdatedAt))
}

func TestService_Save_Validation(t *testing.T) {
	tests := []struct {
		name    string
		profile domain.Profile
	}{
		{"missing name", domain.Profile{Name: "   "}},
		{"unknown gender", domain.Profile{Name: "A", Gender: "other"}},
		{"bad PAN", domain.Profile{Name: "A", PAN: "ABC123"}},
		{"future DOB", domain.Profile{Name: "A", DateOfBirth: dob("2030-01-01")}},
		{"bad email", domain.Profile{Name: "A", Email: "not-an-email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mocks.MockProfileStore)
			svc := newService(store)

			saved, err := svc.Save(context.Background(), &tt.profile)

			assert.Nil(t, saved)
			assert.ErrorIs(t, err, domain.ErrInvalidProfile)
			store.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Save_NilProfile(t *testing.T) {
	svc := newService(new(mocks.MockProfileStore))
	_, err := svc.Save(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidProfile)
}

func TestService_Save_PropagatesStoreErrors(t *testing.T) {
	store := new(mocks.MockProfileStore)
	svc := newService(store)

	store.On("Get", mock.Anything).Return(nil, nil)
	store.On("Upsert", mock.Anything, mock.Anything).Return(domain.ErrStoreNotInitialized)

	_, err := svc.Save(context.Background(), &domain.Profile{Name: "Asha"})

	assert.ErrorIs(t, err, domain.ErrStoreNotInitialized)
	assert.Contains(t, err.Error(), "profile save")
}

func TestService_Load(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		store := new(mocks.MockProfileStore)
		store.On("Get", mock.Anything).Return(nil, nil)

		p, err := newService(store).Load(context.Background())

		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("store failure", func(t *testing.T) {
		store := new(mocks.MockProfileStore)
		store.On("Get", mock.Anything).Return(nil, errors.New("disk gone"))

		_, err := newService(store).Load(context.Background())

		assert.EqualError(t, err, "profile load: disk gone")
	})
}

func TestService_DumpAndExport(t *testing.T) {
	store := new(mocks.MockProfileStore)
	svc := newService(store)

	store.On("List", mock.Anything).Return([]domain.Profile{{Name: "Asha"}}, nil)

	snap, err := svc.Dump(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snap.TotalProfiles)

	data, err := svc.ExportJSON(context.Background())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.EqualValues(t, 1, decoded["totalProfiles"])
	assert.Contains(t, string(data), "\n  \"profiles\"")
}

func TestService_Dump_EmptyStore(t *testing.T) {
	store := new(mocks.MockProfileStore)
	store.On("List", mock.Anything).Return(nil, nil)

	snap, err := newService(store).Dump(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, snap.Profiles)
	assert.Equal(t, 0, snap.TotalProfiles)
}

func TestService_Delete(t *testing.T) {
	store := new(mocks.MockProfileStore)
	store.On("DeleteAll", mock.Anything).Return(nil)

	require.NoError(t, newService(store).Delete(context.Background()))
	store.AssertExpectations(t)
}

func TestService_Init(t *testing.T) {
	store := new(mocks.MockProfileStore)
	store.On("Init", mock.Anything).Return(errors.New("boom"))

	err := newService(store).Init(context.Background())

	assert.EqualError(t, err, "profile store init: boom")
}

func TestParseDate(t *testing.T) {
	got, err := profile.ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = profile.ParseDate("1990-06-15")
	require.NoError(t, err)
	assert.Equal(t, 1990, got.Year())

	_, err = profile.ParseDate("15/06/1990")
	assert.ErrorIs(t, err, domain.ErrInvalidProfile)
}

// memStore is a single-record store whose Get is slow enough for
// unserialised saves to interleave
type memStore struct {
	mu  sync.Mutex
	rec *domain.Profile
}

func (m *memStore) Init(context.Context) error { return nil }
func (m *memStore) Close() error { return nil }

func (m *memStore) Get(context.Context) (*domain.Profile, error) {
	m.mu.Lock()
	rec := m.rec
	m.mu.Unlock()
	time.Sleep(5 * time.Millisecond)
	if rec == nil {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (m *memStore) Upsert(_ context.Context, p *domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.rec = &cp
	return nil
}

func (m *memStore) List(ctx context.Context) ([]domain.Profile, error) {
	p, _ := m.Get(ctx)
	if p == nil {
		return nil, nil
	}
	return []domain.Profile{*p}, nil
}

func (m *memStore) DeleteAll(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = nil
	return nil
}

func TestService_Save_ConcurrentFirstSavesShareIdentity(t *testing.T) {
	svc := profile.NewService(&memStore{})
	ctx := context.Background()

	const writers = 8
	saved := make([]*domain.Profile, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := svc.Save(ctx, &domain.Profile{Name: "Asha"})
			assert.NoError(t, err)
			saved[i] = p
		}(i)
	}
	wg.Wait()

	stored, err := svc.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	for _, p := range saved {
		require.NotNil(t, p)
		assert.Equal(t, stored.ID, p.ID)
		assert.True(t, stored.CreatedAt.Equal(p.CreatedAt))
	}
}
