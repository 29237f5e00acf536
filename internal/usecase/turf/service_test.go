package turf

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"testing"
	"time"

	domainTurf "turf-booking/internal/domain/turf"
	domainUser "turf-booking/internal/domain/user"
	"turf-booking/internal/infrastructure/database"
	"turf-booking/internal/infrastructure/database/dbtest"
	"turf-booking/internal/usecase/access"
	appErrors "turf-booking/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	items map[string][]byte
	gets  int
	hits  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	m.gets++
	b, ok := m.items[key]
	if !ok {
		return false, nil
	}
	m.hits++
	return true, json.Unmarshal(b, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.items[key] = b
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

type fakeImages struct {
	next    int
	deleted []string
}

func (f *fakeImages) Save(_ context.Context, fh *multipart.FileHeader) (string, error) {
	f.next++
	return "/uploads/" + fh.Filename, nil
}

func (f *fakeImages) Delete(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

type fixture struct {
	svc    *Service
	cache  *memoryCache
	images *fakeImages
	admin  *domainUser.User
	player *domainUser.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	users := database.NewUserRepository(db)

	seed := func(name string, role domainUser.Role) *domainUser.User {
		u := &domainUser.User{
			FullName: "User " + name, Email: name + "@example.com", Username: name,
			PasswordHash: "hash", Role: role, Status: domainUser.StatusActive,
		}
		require.NoError(t, users.Create(context.Background(), u))
		return u
	}

	f := &fixture{
		cache:  newMemoryCache(),
		images: &fakeImages{},
		admin:  seed("admin", domainUser.RoleAdmin),
		player: seed("player", domainUser.RoleUser),
	}
	f.svc = NewService(database.NewTurfRepository(db), access.NewGuard(users), f.cache, f.images, time.Minute)
	return f
}

func validCreate() *CreateTurfRequest {
	return &CreateTurfRequest{
		Name:       "Green Field",
		Location:   "Baner, Pune",
		SportType:  "Football",
		Price:      1500,
		Facilities: " Parking, ,Floodlights ,Showers",
	}
}

func TestCreateTurf(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Create(ctx, f.player.ID, validCreate(), nil)
	assert.ErrorIs(t, err, appErrors.ErrInsufficientPermissions)

	bad := validCreate()
	bad.Price = 0
	_, err = f.svc.Create(ctx, f.admin.ID, bad, nil)
	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.CodeValidation, appErr.Code)

	created, err := f.svc.Create(ctx, f.admin.ID, validCreate(), &multipart.FileHeader{Filename: "pitch.jpg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Parking", "Floodlights", "Showers"}, created.Facilities)
	assert.Equal(t, "/uploads/pitch.jpg", created.Image)
	assert.Equal(t, f.admin.ID, created.OwnerID)
	assert.True(t, created.IsActive)
	require.NotNil(t, created.Owner)
	assert.Equal(t, f.admin.Email, created.Owner.Email)
}

func TestListUsesCacheAndWritesInvalidate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.Create(ctx, f.admin.ID, validCreate(), nil)
	require.NoError(t, err)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 0, f.cache.hits)

	list, err = f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, f.cache.hits)

	inactive := false
	_, err = f.svc.Update(ctx, f.admin.ID, created.ID, &UpdateTurfRequest{IsActive: &inactive}, nil)
	require.NoError(t, err)

	list, err = f.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// Inactive turfs stay reachable by id.
	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestUpdateReplacesImage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.Create(ctx, f.admin.ID, validCreate(), &multipart.FileHeader{Filename: "old.jpg"})
	require.NoError(t, err)

	price := 1800.0
	updated, err := f.svc.Update(ctx, f.admin.ID, created.ID, &UpdateTurfRequest{Price: &price}, &multipart.FileHeader{Filename: "new.jpg"})
	require.NoError(t, err)
	assert.Equal(t, 1800.0, updated.Price)
	assert.Equal(t, "/uploads/new.jpg", updated.Image)
	assert.Equal(t, "Green Field", updated.Name)
	assert.Equal(t, []string{"/uploads/old.jpg"}, f.images.deleted)

	_, err = f.svc.Update(ctx, f.admin.ID, uuid.New(), &UpdateTurfRequest{Price: &price}, nil)
	assert.ErrorIs(t, err, domainTurf.ErrTurfNotFound)
}

func TestDeleteTurf(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.Create(ctx, f.admin.ID, validCreate(), &multipart.FileHeader{Filename: "pitch.jpg"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(ctx, f.player.ID, created.ID), appErrors.ErrInsufficientPermissions)
	require.NoError(t, f.svc.Delete(ctx, f.admin.ID, created.ID))
	assert.Equal(t, []string{"/uploads/pitch.jpg"}, f.images.deleted)

	_, err = f.svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domainTurf.ErrTurfNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, f.admin.ID, created.ID), domainTurf.ErrTurfNotFound)
}
