// Package scheduler runs the background jobs: sweeping finished bookings to
// completed and draining the notification outbox.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"courtside/internal/pkg/clock"
	"courtside/internal/usecase/shared"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

const (
	completionSweepInterval = 15 * time.Minute
	notificationInterval    = time.Minute
	notificationClaimBatch  = 50
	notificationMaxAttempts = 5
)

// Sender delivers one notification payload. The default implementation only
// logs; real channels plug in here.
type Sender interface {
	Send(ctx context.Context, kind, topic string, payload []byte) error
}

type LogSender struct{}

func (LogSender) Send(_ context.Context, kind, topic string, payload []byte) error {
	slog.Info("notification sent", "kind", kind, "topic", topic, "payload", string(payload))
	return nil
}

type Service struct {
	scheduler gocron.Scheduler
	uow       shared.UnitOfWork
	sender    Sender
	clock     clock.Clock
}

func New(uow shared.UnitOfWork, sender Sender, clk clock.Clock) (*Service, error) {
	sched, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					slog.Error("scheduler job panicked",
						"job_id", jobID.String(),
						"job_name", jobName,
						"panic", recoverData)
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}
	return &Service{
		scheduler: sched,
		uow:       uow,
		sender:    sender,
		clock:     clk,
	}, nil
}

func (s *Service) Start() error {
	if _, err := s.scheduler.NewJob(
		gocron.DurationJob(completionSweepInterval),
		gocron.NewTask(s.sweepCompleted),
		gocron.WithName("booking-completion-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeWait),
	); err != nil {
		return err
	}

	if _, err := s.scheduler.NewJob(
		gocron.DurationJob(notificationInterval),
		gocron.NewTask(s.dispatchNotifications),
		gocron.WithName("notification-dispatch"),
		gocron.WithSingletonMode(gocron.LimitModeWait),
	); err != nil {
		return err
	}

	s.scheduler.Start()
	slog.Info("scheduler started")
	return nil
}

func (s *Service) Stop() error {
	slog.Info("scheduler stopping")
	return s.scheduler.Shutdown()
}

// sweepCompleted flips confirmed bookings whose last slot has passed.
func (s *Service) sweepCompleted() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Bookings().CompleteFinished(ctx, tx.DB(), s.clock.Now())
		if err != nil {
			return err
		}
		if n > 0 {
			slog.Info("bookings marked completed", "count", n)
		}
		return nil
	})
	if err != nil {
		slog.Error("completion sweep failed", "error", err.Error())
	}
}

// dispatchNotifications claims due jobs with SKIP LOCKED and delivers them.
// Claim and status update share one transaction so a crashed dispatcher
// releases its claims on rollback.
func (s *Service) dispatchNotifications() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		jobs, err := tx.Notifications().ClaimDue(ctx, tx.DB(), s.clock.Now(), notificationClaimBatch)
		if err != nil {
			return err
		}
		for _, job := range jobs {
			if sendErr := s.sender.Send(ctx, job.Kind, job.Topic, job.Payload); sendErr != nil {
				if err := tx.Notifications().MarkFailed(ctx, tx.DB(), job.ID, sendErr.Error(), notificationMaxAttempts); err != nil {
					return err
				}
				continue
			}
			if err := tx.Notifications().MarkSent(ctx, tx.DB(), job.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		slog.Error("notification dispatch failed", "error", err.Error())
	}
}
