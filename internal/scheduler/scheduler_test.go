//go:build unit

package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"courtside/internal/domain/booking"
	"courtside/internal/domain/schedule"
	"courtside/internal/infra/db"
	"courtside/internal/pkg/clock"
	"courtside/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookings struct {
	completed int64
	sweeps    []time.Time
}

func (s *stubBookings) Create(context.Context, db.DBTX, *booking.Booking) error { return nil }

func (s *stubBookings) HasConflict(context.Context, db.DBTX, uuid.UUID, time.Time, booking.Interval) (bool, error) {
	return false, nil
}

func (s *stubBookings) UpdateStatus(context.Context, db.DBTX, *booking.Booking) error { return nil }

func (s *stubBookings) DeactivateSlots(context.Context, db.DBTX, uuid.UUID) error { return nil }

func (s *stubBookings) CompleteFinished(_ context.Context, _ db.DBTX, now time.Time) (int64, error) {
	s.sweeps = append(s.sweeps, now)
	return s.completed, nil
}

type failedMark struct {
	id          uuid.UUID
	lastError   string
	maxAttempts int32
}

type stubNotifications struct {
	due    []shared.NotificationJob
	sent   []uuid.UUID
	failed []failedMark
}

func (s *stubNotifications) CreateJob(context.Context, db.DBTX, string, string, []byte, time.Time) error {
	return nil
}

func (s *stubNotifications) ClaimDue(context.Context, db.DBTX, time.Time, int32) ([]shared.NotificationJob, error) {
	return s.due, nil
}

func (s *stubNotifications) MarkSent(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	s.sent = append(s.sent, id)
	return nil
}

func (s *stubNotifications) MarkFailed(_ context.Context, _ db.DBTX, id uuid.UUID, lastError string, maxAttempts int32) error {
	s.failed = append(s.failed, failedMark{id: id, lastError: lastError, maxAttempts: maxAttempts})
	return nil
}

type stubSchedules struct{}

func (stubSchedules) Upsert(context.Context, db.DBTX, []schedule.WeeklySlot) error { return nil }

type stubUsers struct{}

func (stubUsers) UpdateLastLogin(context.Context, db.DBTX, uuid.UUID) error { return nil }

type stubTx struct {
	bookings      *stubBookings
	notifications *stubNotifications
}

func (t *stubTx) Bookings() shared.BookingRepository           { return t.bookings }
func (t *stubTx) Schedules() shared.ScheduleRepository         { return stubSchedules{} }
func (t *stubTx) Users() shared.UserRepository                 { return stubUsers{} }
func (t *stubTx) Notifications() shared.NotificationRepository { return t.notifications }
func (t *stubTx) Reads() shared.CommandReads                   { return nil }
func (t *stubTx) DB() db.DBTX                                  { return nil }

type stubUoW struct {
	tx *stubTx
}

func (u *stubUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *stubUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *stubUoW) CommandReads() shared.CommandReads { return nil }

type flakySender struct {
	failTopics map[string]error
	delivered  []string
}

func (s *flakySender) Send(_ context.Context, _, topic string, _ []byte) error {
	if err, ok := s.failTopics[topic]; ok {
		return err
	}
	s.delivered = append(s.delivered, topic)
	return nil
}

func newTestService(jobs []shared.NotificationJob, sender Sender) (*Service, *stubTx) {
	tx := &stubTx{
		bookings:      &stubBookings{},
		notifications: &stubNotifications{due: jobs},
	}
	svc := &Service{
		uow:    &stubUoW{tx: tx},
		sender: sender,
		clock:  clock.NewMockClock(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)),
	}
	return svc, tx
}

func TestDispatchNotifications(t *testing.T) {
	t.Run("delivered jobs are marked sent", func(t *testing.T) {
		jobs := []shared.NotificationJob{
			{ID: uuid.New(), Kind: "email", Topic: "booking_confirmed", Payload: []byte(`{}`)},
			{ID: uuid.New(), Kind: "email", Topic: "booking_cancelled", Payload: []byte(`{}`)},
		}
		sender := &flakySender{}
		svc, tx := newTestService(jobs, sender)

		svc.dispatchNotifications()

		require.Equal(t, []uuid.UUID{jobs[0].ID, jobs[1].ID}, tx.notifications.sent)
		assert.Empty(t, tx.notifications.failed)
		assert.Equal(t, []string{"booking_confirmed", "booking_cancelled"}, sender.delivered)
	})

	t.Run("send failure requeues the job with the attempt cap", func(t *testing.T) {
		jobs := []shared.NotificationJob{
			{ID: uuid.New(), Kind: "email", Topic: "booking_confirmed", Payload: []byte(`{}`), Attempts: 2},
			{ID: uuid.New(), Kind: "email", Topic: "booking_cancelled", Payload: []byte(`{}`)},
		}
		sender := &flakySender{failTopics: map[string]error{
			"booking_confirmed": errors.New("smtp unreachable"),
		}}
		svc, tx := newTestService(jobs, sender)

		svc.dispatchNotifications()

		require.Len(t, tx.notifications.failed, 1)
		mark := tx.notifications.failed[0]
		assert.Equal(t, jobs[0].ID, mark.id)
		assert.Equal(t, "smtp unreachable", mark.lastError)
		assert.Equal(t, int32(notificationMaxAttempts), mark.maxAttempts, "the cap travels with the failure mark")

		// One failing job must not block the rest of the batch.
		require.Equal(t, []uuid.UUID{jobs[1].ID}, tx.notifications.sent)
	})

	t.Run("empty queue does nothing", func(t *testing.T) {
		sender := &flakySender{}
		svc, tx := newTestService(nil, sender)

		svc.dispatchNotifications()

		assert.Empty(t, tx.notifications.sent)
		assert.Empty(t, tx.notifications.failed)
		assert.Empty(t, sender.delivered)
	})
}

func TestSweepCompleted(t *testing.T) {
	svc, tx := newTestService(nil, &flakySender{})
	tx.bookings.completed = 3

	svc.sweepCompleted()

	require.Len(t, tx.bookings.sweeps, 1)
	assert.Equal(t, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC), tx.bookings.sweeps[0])
}
