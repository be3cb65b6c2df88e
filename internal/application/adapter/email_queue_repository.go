// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/agency-ops/backend/internal/domain/entity"
)

// EmailQueueRepository persists the outbound email queue consumed by the
// background worker.
type EmailQueueRepository interface {
	// Create enqueues a new email job.
	Create(ctx context.Context, job *entity.EmailJob) error

	// GetPendingJobs returns due pending jobs, oldest schedule first.
	GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error)

	// Update persists state changes made by the worker.
	Update(ctx context.Context, job *entity.EmailJob) error

	// GetByID returns one job or ErrEmailJobNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error)

	// GetByRecipient returns all jobs addressed to an email, newest first.
	GetByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error)

	// DeleteOldSentJobs prunes sent jobs older than the given number of days.
	DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error)
}
