package repository

import (
	"context"
	"time"

	"courtside/internal/infra"
	"courtside/internal/infra/db"
	"courtside/internal/pkg/pgconv"
	"courtside/internal/usecase/shared"

	"github.com/google/uuid"
)

// NotificationRepository is the transactional outbox for delivery jobs.
// Jobs are written in the same transaction as the booking change and picked
// up later by the scheduler.
type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

const insertNotificationJobSQL = `
INSERT INTO notification_jobs (id, kind, topic, payload, run_at, status)
VALUES ($1, $2, $3, $4, $5, 'queued')`

func (r *NotificationRepository) CreateJob(ctx context.Context, dbtx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := dbtx.Exec(ctx, insertNotificationJobSQL, uuid.New(), kind, topic, payload, pgconv.TimeToPgtype(runAt))
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

// FOR UPDATE SKIP LOCKED lets multiple dispatcher instances drain the queue
// without double-delivery.
const claimDueJobsSQL = `
SELECT id, kind, topic, payload, attempts
FROM notification_jobs
WHERE status = 'queued' AND run_at <= $1
ORDER BY run_at
LIMIT $2
FOR UPDATE SKIP LOCKED`

func (r *NotificationRepository) ClaimDue(ctx context.Context, dbtx db.DBTX, now time.Time, limit int32) ([]shared.NotificationJob, error) {
	rows, err := dbtx.Query(ctx, claimDueJobsSQL, pgconv.TimeToPgtype(now), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	var jobs []shared.NotificationJob
	for rows.Next() {
		var job shared.NotificationJob
		if err := rows.Scan(&job.ID, &job.Kind, &job.Topic, &job.Payload, &job.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read notification jobs", err)
	}
	return jobs, nil
}

const markJobSentSQL = `
UPDATE notification_jobs
SET status = 'sent', attempts = attempts + 1, updated_at = now()
WHERE id = $1`

func (r *NotificationRepository) MarkSent(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	if _, err := dbtx.Exec(ctx, markJobSentSQL, id); err != nil {
		return infra.WrapRepoErr("failed to mark notification job sent", err)
	}
	return nil
}

// Failed sends go back to the queue with a delay until the caller's attempt
// cap, then stay failed for inspection.
const markJobFailedSQL = `
UPDATE notification_jobs
SET status = CASE WHEN attempts + 1 >= $3 THEN 'failed' ELSE 'queued' END,
    attempts = attempts + 1,
    last_error = $2,
    run_at = now() + interval '1 minute',
    updated_at = now()
WHERE id = $1`

func (r *NotificationRepository) MarkFailed(ctx context.Context, dbtx db.DBTX, id uuid.UUID, lastError string, maxAttempts int32) error {
	if _, err := dbtx.Exec(ctx, markJobFailedSQL, id, lastError, maxAttempts); err != nil {
		return infra.WrapRepoErr("failed to mark notification job failed", err)
	}
	return nil
}
