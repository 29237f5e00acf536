package user

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"turf-booking/internal/config"
	domainTurf "turf-booking/internal/domain/turf"
	domainUser "turf-booking/internal/domain/user"
	"turf-booking/internal/infrastructure/database"
	"turf-booking/internal/infrastructure/database/dbtest"
	"turf-booking/internal/notification"
	"turf-booking/internal/usecase/access"
	appErrors "turf-booking/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu  sync.Mutex
	got []notification.Message
}

func (r *recordingNotifier) Notify(_ context.Context, msg notification.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, msg)
	return nil
}

func (r *recordingNotifier) last(t *testing.T) notification.Message {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.got)
	return r.got[len(r.got)-1]
}

type fixture struct {
	svc      *Service
	users    *database.UserRepository
	turfs    *database.TurfRepository
	notifier *recordingNotifier
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Turf Manager", BaseURL: "http://localhost:5173/"},
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			Expiry:      time.Hour,
			ResetExpiry: 15 * time.Minute,
		},
		Notification: config.NotificationConfig{Timeout: time.Second},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	f := &fixture{
		users:    database.NewUserRepository(db),
		turfs:    database.NewTurfRepository(db),
		notifier: &recordingNotifier{},
	}
	f.svc = NewService(f.users, database.NewFavoriteRepository(db), f.turfs,
		access.NewGuard(f.users), f.notifier, testConfig())
	return f
}

func signupRequest(username string) *SignupRequest {
	return &SignupRequest{
		FullName:     "Asha Rao",
		Email:        username + "@Example.com",
		Username:     username,
		Password:     "secret1",
		ConfPassword: "secret1",
		Phone:        "+91 98765 43210",
		DateOfBirth:  "1995-04-12",
		Gender:       "female",
	}
}

func (f *fixture) signup(t *testing.T, username string) *UserResponse {
	t.Helper()
	u, err := f.svc.Signup(context.Background(), signupRequest(username))
	require.NoError(t, err)
	return u
}

func (f *fixture) promote(t *testing.T, id uuid.UUID, role domainUser.Role) {
	t.Helper()
	require.NoError(t, f.users.UpdateRole(context.Background(), id, role))
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("password mismatch", func(t *testing.T) {
		req := signupRequest("asha")
		req.ConfPassword = "different"
		_, err := f.svc.Signup(ctx, req)

		var appErr *appErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Passwords do not match", appErr.Message)
		assert.ErrorIs(t, err, appErrors.ErrPasswordMismatch)
	})

	t.Run("creates an active user", func(t *testing.T) {
		u := f.signup(t, "asha")
		assert.Equal(t, "asha@example.com", u.Email)
		assert.Equal(t, "user", u.Role)
		assert.Equal(t, "active", u.Status)
		require.NotNil(t, u.DateOfBirth)
		assert.Equal(t, "1995-04-12", *u.DateOfBirth)

		msg := f.notifier.last(t)
		assert.Equal(t, notification.EventWelcome, msg.Event)
		assert.Equal(t, "asha@example.com", msg.To)
	})

	t.Run("duplicate email or username", func(t *testing.T) {
		_, err := f.svc.Signup(ctx, signupRequest("asha"))
		assert.ErrorIs(t, err, domainUser.ErrUserAlreadyExists)

		req := signupRequest("other")
		req.Email = "ASHA@example.com"
		_, err = f.svc.Signup(ctx, req)
		assert.ErrorIs(t, err, domainUser.ErrUserAlreadyExists)
	})

	t.Run("field validation", func(t *testing.T) {
		req := signupRequest("x")
		_, err := f.svc.Signup(ctx, req)

		var appErr *appErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.CodeValidation, appErr.Code)

		req = signupRequest("shorty")
		req.Password, req.ConfPassword = "abc", "abc"
		_, err = f.svc.Signup(ctx, req)
		require.ErrorAs(t, err, &appErr)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.signup(t, "ravi")

	for _, identifier := range []string{"ravi", "RAVI@example.com"} {
		resp, err := f.svc.Login(ctx, &LoginRequest{Identifier: identifier, Password: "secret1"})
		require.NoError(t, err, identifier)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, u.ID, resp.User.ID)
	}

	_, err := f.svc.Login(ctx, &LoginRequest{Identifier: "ravi", Password: "wrong-pass"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, &LoginRequest{Identifier: "nobody", Password: "secret1"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	require.NoError(t, f.users.UpdateStatus(ctx, u.ID, domainUser.StatusBlocked))
	_, err = f.svc.Login(ctx, &LoginRequest{Identifier: "ravi", Password: "secret1"})
	assert.ErrorIs(t, err, appErrors.ErrAccountBlocked)
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.signup(t, "meera")

	sent := len(f.notifier.got)
	require.NoError(t, f.svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "ghost@example.com"}))
	assert.Len(t, f.notifier.got, sent)

	require.NoError(t, f.svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "meera@example.com"}))
	msg := f.notifier.last(t)
	assert.Equal(t, notification.EventPasswordReset, msg.Event)
	link, _ := msg.Data["resetLink"].(string)
	require.True(t, strings.HasPrefix(link, "http://localhost:5173/reset-password?token="))
	token := strings.TrimPrefix(link, "http://localhost:5173/reset-password?token=")

	err := f.svc.ResetPassword(ctx, &ResetPasswordRequest{Token: token, NewPassword: "newpass1", ConfPassword: "other"})
	assert.ErrorIs(t, err, appErrors.ErrPasswordMismatch)

	err = f.svc.ResetPassword(ctx, &ResetPasswordRequest{Token: "garbage", NewPassword: "newpass1", ConfPassword: "newpass1"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)

	require.NoError(t, f.svc.ResetPassword(ctx, &ResetPasswordRequest{Token: token, NewPassword: "newpass1", ConfPassword: "newpass1"}))

	_, err = f.svc.Login(ctx, &LoginRequest{Identifier: "meera", Password: "newpass1"})
	assert.NoError(t, err)

	err = f.svc.ResetPassword(ctx, &ResetPasswordRequest{Token: token, NewPassword: "again12", ConfPassword: "again12"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.signup(t, "kiran")

	name := "Kiran Kumar"
	contact := "Mom +91 90000 00000"
	updated, err := f.svc.UpdateProfile(ctx, u.ID, &UpdateProfileRequest{FullName: &name, EmergencyContact: &contact})
	require.NoError(t, err)
	assert.Equal(t, "Kiran Kumar", updated.FullName)

	got, err := f.svc.GetProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kiran Kumar", got.FullName)
	assert.Equal(t, contact, got.EmergencyContact)
	assert.Equal(t, "female", got.Gender)

	_, err = f.svc.GetProfile(ctx, uuid.New())
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestAdminUserManagement(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.signup(t, "admin")
	f.promote(t, admin.ID, domainUser.RoleAdmin)
	player := f.signup(t, "player")

	_, err := f.svc.ListUsers(ctx, player.ID)
	assert.ErrorIs(t, err, appErrors.ErrInsufficientPermissions)

	users, err := f.svc.ListUsers(ctx, admin.ID)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = f.svc.UpdateUserStatus(ctx, admin.ID, player.ID, &UpdateStatusRequest{Status: "suspended"})
	assert.ErrorIs(t, err, domainUser.ErrInvalidStatus)

	blocked, err := f.svc.UpdateUserStatus(ctx, admin.ID, player.ID, &UpdateStatusRequest{Status: "blocked"})
	require.NoError(t, err)
	assert.Equal(t, "blocked", blocked.Status)

	_, err = f.svc.GetProfile(ctx, player.ID)
	assert.ErrorIs(t, err, appErrors.ErrAccountBlocked)

	_, err = f.svc.UpdateUserStatus(ctx, admin.ID, uuid.New(), &UpdateStatusRequest{Status: "active"})
	assert.ErrorIs(t, err, domainUser.ErrUserNotFound)

	assert.ErrorIs(t, f.svc.DeleteUser(ctx, admin.ID, admin.ID), domainUser.ErrCannotDeleteSelf)
	require.NoError(t, f.svc.DeleteUser(ctx, admin.ID, player.ID))
	assert.ErrorIs(t, f.svc.DeleteUser(ctx, admin.ID, player.ID), domainUser.ErrUserNotFound)
}

func TestFavorites(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.signup(t, "fan")

	newTurf := func(name string) *domainTurf.Turf {
		tf := &domainTurf.Turf{Name: name, Location: "Pune", SportType: "Cricket", Price: 800, OwnerID: u.ID, IsActive: true}
		require.NoError(t, f.turfs.Create(ctx, tf))
		return tf
	}
	a, b := newTurf("Alpha"), newTurf("Bravo")

	_, err := f.svc.AddFavorite(ctx, u.ID, uuid.New())
	assert.ErrorIs(t, err, domainTurf.ErrTurfNotFound)

	ids, err := f.svc.AddFavorite(ctx, u.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b.ID}, ids)

	ids, err = f.svc.AddFavorite(ctx, u.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b.ID, a.ID}, ids)

	_, err = f.svc.AddFavorite(ctx, u.ID, a.ID)
	assert.ErrorIs(t, err, domainUser.ErrAlreadyFavorited)

	require.NoError(t, f.turfs.Delete(ctx, b.ID))
	favs, err := f.svc.ListFavorites(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "Alpha", favs[0].Name)

	ids, err = f.svc.RemoveFavorite(ctx, u.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b.ID}, ids)

	_, err = f.svc.RemoveFavorite(ctx, u.ID, a.ID)
	assert.NoError(t, err)
}

func TestResetTokenSweeper(t *testing.T) {
	f := newFixture(t)
	u := f.signup(t, "sleepy")
	require.NoError(t, f.users.SetResetToken(context.Background(), u.ID, "old", time.Now().Add(-time.Hour)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.svc.StartResetTokenSweeper(ctx, time.Hour)
	}()

	assert.Eventually(t, func() bool {
		got, err := f.users.GetByID(context.Background(), u.ID)
		return err == nil && got.ResetToken == nil
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-done
}
