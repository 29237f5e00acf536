package payment

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	domainBooking "turf-booking/internal/domain/booking"
	domainUser "turf-booking/internal/domain/user"
	"turf-booking/internal/infrastructure/database"
	"turf-booking/internal/infrastructure/database/dbtest"
	"turf-booking/internal/notification"
	"turf-booking/internal/receipt"
	"turf-booking/internal/usecase/access"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	mu     sync.Mutex
	result bool
	draws  int
}

func (c *countingSource) NextBool(float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draws++
	return c.result
}

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

type fixture struct {
	svc      *Service
	bookings *database.BookingRepository
	source   *countingSource
	notifier *recordingNotifier
	owner    *domainUser.User
	stranger *domainUser.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	users := database.NewUserRepository(db)

	seed := func(name string) *domainUser.User {
		u := &domainUser.User{
			FullName: "User " + name, Email: name + "@example.com", Username: name,
			PasswordHash: "hash", Role: domainUser.RoleUser, Status: domainUser.StatusActive,
		}
		require.NoError(t, users.Create(context.Background(), u))
		return u
	}

	f := &fixture{
		bookings: database.NewBookingRepository(db),
		source:   &countingSource{result: true},
		notifier: &recordingNotifier{},
		owner:    seed("owner"),
		stranger: seed("stranger"),
	}
	f.svc = NewService(f.bookings, access.NewGuard(users), NewSimulator(f.source, 0.9),
		receipt.NewTextGenerator("Turf Manager"), f.notifier, time.Second)
	return f
}

func (f *fixture) newBooking(t *testing.T) *domainBooking.Booking {
	t.Helper()
	b := &domainBooking.Booking{
		UserID:        f.owner.ID,
		TurfID:        uuid.New(),
		TurfName:      "Green Field",
		Date:          "2026-11-01",
		BookingType:   domainBooking.TypeSlot,
		TimeSlot:      "18:00-20:00",
		Duration:      2,
		TotalAmount:   3000,
		CustomerName:  f.owner.FullName,
		CustomerEmail: f.owner.Email,
	}
	require.NoError(t, f.bookings.Create(context.Background(), b))
	return b
}

func cardRequest(bookingID uuid.UUID) *ProcessPaymentRequest {
	return &ProcessPaymentRequest{
		BookingID:     bookingID.String(),
		PaymentMethod: "credit_card",
		CardDetails: CardDetails{
			CardNumber:     "4111111111111111",
			ExpiryDate:     "12/29",
			CVV:            "123",
			CardholderName: "Asha Rao",
		},
	}
}

func TestProcessPayment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := f.newBooking(t)

	paid, err := f.svc.Process(ctx, f.owner.ID, cardRequest(b.ID))
	require.NoError(t, err)
	assert.Equal(t, "paid", paid.Status)
	assert.Equal(t, "completed", paid.PaymentStatus)
	require.NotNil(t, paid.PaymentMethod)
	assert.Equal(t, "credit_card", *paid.PaymentMethod)
	require.NotNil(t, paid.PaymentDate)
	require.NotNil(t, paid.TransactionID)
	assert.True(t, strings.HasPrefix(*paid.TransactionID, "TXN"))

	require.Len(t, f.notifier.got, 1)
	msg := f.notifier.got[0]
	assert.Equal(t, notification.EventPaymentReceipt, msg.Event)
	assert.Equal(t, f.owner.Email, msg.To)
	assert.Contains(t, msg.Body, "PAYMENT RECEIPT")
	assert.Contains(t, msg.Body, *paid.TransactionID)

	status, err := f.svc.GetStatus(ctx, f.owner.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", status.PaymentStatus)
	assert.Equal(t, 3000.0, status.TotalAmount)
}

func TestAlreadyPaidIsCheckedBeforeTheDraw(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := f.newBooking(t)

	_, err := f.svc.Process(ctx, f.owner.ID, cardRequest(b.ID))
	require.NoError(t, err)
	require.Equal(t, 1, f.source.draws)

	f.source.result = false
	_, err = f.svc.Process(ctx, f.owner.ID, cardRequest(b.ID))
	assert.ErrorIs(t, err, domainBooking.ErrAlreadyPaid)
	assert.Equal(t, 1, f.source.draws)
}

func TestProcessPaymentRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := f.newBooking(t)

	_, err := f.svc.Process(ctx, f.stranger.ID, cardRequest(b.ID))
	assert.ErrorIs(t, err, domainBooking.ErrNotBookingOwner)

	_, err = f.svc.Process(ctx, f.owner.ID, cardRequest(uuid.New()))
	assert.ErrorIs(t, err, domainBooking.ErrBookingNotFound)

	f.source.result = false
	_, err = f.svc.Process(ctx, f.owner.ID, cardRequest(b.ID))
	assert.ErrorIs(t, err, ErrPaymentDeclined)

	f.source.result = true
	req := &ProcessPaymentRequest{BookingID: b.ID.String(), PaymentMethod: "upi", CardDetails: CardDetails{UpiID: "no-handle"}}
	_, err = f.svc.Process(ctx, f.owner.ID, req)
	assert.ErrorIs(t, err, ErrPaymentFailed)

	got, err := f.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domainBooking.PaymentPending, got.PaymentStatus)
	assert.Equal(t, domainBooking.StatusCreated, got.Status)
	assert.Empty(t, f.notifier.got)

	_, err = f.svc.GetStatus(ctx, f.stranger.ID, b.ID)
	assert.ErrorIs(t, err, domainBooking.ErrNotBookingOwner)
}

func TestPaymentOnFinalizedBooking(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := f.newBooking(t)
	require.NoError(t, f.bookings.Cancel(ctx, b.ID))

	_, err := f.svc.Process(ctx, f.owner.ID, cardRequest(b.ID))
	assert.ErrorIs(t, err, domainBooking.ErrAlreadyFinalized)
	assert.Zero(t, f.source.draws)
}

func TestPaymentKeepsStaffOverrideStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := f.newBooking(t)
	require.NoError(t, f.bookings.SetStatus(ctx, b.ID, domainBooking.StatusConfirmed))

	paid, err := f.svc.Process(ctx, f.owner.ID, &ProcessPaymentRequest{
		BookingID: b.ID.String(), PaymentMethod: "upi", CardDetails: CardDetails{UpiID: "asha@okbank"},
	})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", paid.Status)
	assert.Equal(t, "completed", paid.PaymentStatus)
}

func TestConcurrentPaymentsSettleOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := f.newBooking(t)

	const attempts = 5
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Process(ctx, f.owner.ID, cardRequest(b.ID))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domainBooking.ErrAlreadyPaid)
	}
	assert.Equal(t, 1, succeeded)
}
