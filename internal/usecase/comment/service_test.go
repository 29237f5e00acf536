package comment

import (
	"context"
	"strings"
	"testing"

	domainComment "turf-booking/internal/domain/comment"
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

type fixture struct {
	svc    *Service
	admin  *domainUser.User
	author *domainUser.User
	other  *domainUser.User
	turf   *domainTurf.Turf
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := dbtest.New(t)
	users := database.NewUserRepository(db)
	turfs := database.NewTurfRepository(db)

	seed := func(name string, role domainUser.Role) *domainUser.User {
		u := &domainUser.User{
			FullName: "User " + name, Email: name + "@example.com", Username: name,
			PasswordHash: "hash", Role: role, Status: domainUser.StatusActive,
		}
		require.NoError(t, users.Create(ctx, u))
		return u
	}

	f := &fixture{
		svc:    NewService(database.NewCommentRepository(db), turfs, access.NewGuard(users)),
		admin:  seed("admin", domainUser.RoleAdmin),
		author: seed("author", domainUser.RoleUser),
		other:  seed("other", domainUser.RoleUser),
	}
	f.turf = &domainTurf.Turf{Name: "Green Field", Location: "Pune", SportType: "Football", Price: 1000, OwnerID: f.admin.ID, IsActive: true}
	require.NoError(t, turfs.Create(ctx, f.turf))
	return f
}

func intPtr(v int) *int { return &v }

func (f *fixture) create(t *testing.T, text string) *CommentResponse {
	t.Helper()
	c, err := f.svc.Create(context.Background(), f.author.ID, &CreateCommentRequest{
		TurfID: f.turf.ID.String(), Comment: text, Rating: intPtr(5),
	})
	require.NoError(t, err)
	return c
}

func TestCreateComment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	c := f.create(t, "  Great surface  ")
	assert.Equal(t, "Great surface", c.Comment)
	assert.True(t, c.IsVisible)
	require.NotNil(t, c.User)
	assert.Equal(t, "author", c.User.Username)
	require.NotNil(t, c.Rating)
	assert.Equal(t, 5, *c.Rating)

	_, err := f.svc.Create(ctx, f.author.ID, &CreateCommentRequest{TurfID: uuid.NewString(), Comment: "Hello"})
	assert.ErrorIs(t, err, domainTurf.ErrTurfNotFound)

	var appErr *appErrors.AppError
	_, err = f.svc.Create(ctx, f.author.ID, &CreateCommentRequest{TurfID: f.turf.ID.String(), Comment: "   "})
	assert.ErrorAs(t, err, &appErr)

	_, err = f.svc.Create(ctx, f.author.ID, &CreateCommentRequest{TurfID: f.turf.ID.String(), Comment: strings.Repeat("a", 1001)})
	assert.ErrorAs(t, err, &appErr)

	_, err = f.svc.Create(ctx, f.author.ID, &CreateCommentRequest{TurfID: f.turf.ID.String(), Comment: "Hi", Rating: intPtr(6)})
	assert.ErrorAs(t, err, &appErr)
}

func TestUpdateComment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := f.create(t, "Good")

	text := "Better than expected"
	_, err := f.svc.Update(ctx, f.other.ID, c.ID, &UpdateCommentRequest{Comment: &text})
	assert.ErrorIs(t, err, domainComment.ErrNotAuthor)

	_, err = f.svc.Update(ctx, f.admin.ID, c.ID, &UpdateCommentRequest{Comment: &text})
	assert.ErrorIs(t, err, domainComment.ErrNotAuthor)

	updated, err := f.svc.Update(ctx, f.author.ID, c.ID, &UpdateCommentRequest{Rating: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, "Good", updated.Comment)
	assert.Equal(t, 3, *updated.Rating)

	updated, err = f.svc.Update(ctx, f.author.ID, c.ID, &UpdateCommentRequest{Comment: &text})
	require.NoError(t, err)
	assert.Equal(t, text, updated.Comment)
	assert.Equal(t, 3, *updated.Rating)

	_, err = f.svc.Update(ctx, f.author.ID, uuid.New(), &UpdateCommentRequest{Comment: &text})
	assert.ErrorIs(t, err, domainComment.ErrCommentNotFound)
}

func TestModerationAndVisibility(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	keep := f.create(t, "Nice")
	hide := f.create(t, "Spam spam")

	hidden := false
	_, err := f.svc.Moderate(ctx, f.author.ID, hide.ID, &ModerateRequest{IsVisible: &hidden})
	assert.ErrorIs(t, err, appErrors.ErrInsufficientPermissions)

	moderated, err := f.svc.Moderate(ctx, f.admin.ID, hide.ID, &ModerateRequest{IsVisible: &hidden})
	require.NoError(t, err)
	assert.False(t, moderated.IsVisible)

	public, err := f.svc.ListVisible(ctx, f.turf.ID)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, keep.ID, public[0].ID)

	_, err = f.svc.ListAll(ctx, f.author.ID, f.turf.ID)
	assert.ErrorIs(t, err, appErrors.ErrInsufficientPermissions)

	all, err := f.svc.ListAll(ctx, f.admin.ID, f.turf.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.svc.Moderate(ctx, f.admin.ID, uuid.New(), &ModerateRequest{IsVisible: &hidden})
	assert.ErrorIs(t, err, domainComment.ErrCommentNotFound)
}

func TestDeleteComment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	first := f.create(t, "First")
	second := f.create(t, "Second")
	third := f.create(t, "Third")

	assert.ErrorIs(t, f.svc.Delete(ctx, f.other.ID, first.ID), domainComment.ErrNotAuthor)
	require.NoError(t, f.svc.Delete(ctx, f.author.ID, first.ID))
	require.NoError(t, f.svc.Delete(ctx, f.admin.ID, second.ID))
	assert.ErrorIs(t, f.svc.Delete(ctx, f.author.ID, first.ID), domainComment.ErrCommentNotFound)

	assert.ErrorIs(t, f.svc.AdminDelete(ctx, f.author.ID, third.ID), appErrors.ErrInsufficientPermissions)
	require.NoError(t, f.svc.AdminDelete(ctx, f.admin.ID, third.ID))
	assert.ErrorIs(t, f.svc.AdminDelete(ctx, f.admin.ID, third.ID), domainComment.ErrCommentNotFound)
}
