package tuition

import (
	"context"
	"time"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AssignmentFilter defines filter options for fee assignment queries
type AssignmentFilter struct {
	shared.Filter
	StudentID      *uuid.UUID
	ClassID        *uuid.UUID
	ServiceID      *uuid.UUID
	AcademicPeriod string
	Status         *AssignmentStatus
	CreatedAfter   *time.Time
	CreatedBefore  *time.Time
}

// FeeAssignmentRepository defines the persistence interface for fee assignments
type FeeAssignmentRepository interface {
	Save(ctx context.Context, assignment *FeeAssignment) error
	// SaveWithLock persists the assignment with an optimistic locking check on
	// its version and returns a concurrency conflict error when the stored
	// version has moved on.
	SaveWithLock(ctx context.Context, assignment *FeeAssignment) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*FeeAssignment, error)
	FindForTenant(ctx context.Context, tenantID uuid.UUID, filter AssignmentFilter) (*shared.Paginated[*FeeAssignment], error)
	// FindActiveByStudentAndServices returns the student's non-cancelled
	// assignments in the given academic period whose service is in serviceIDs.
	// Used by duplicate detection before creating new assignments.
	FindActiveByStudentAndServices(ctx context.Context, tenantID, studentID uuid.UUID, academicPeriod string, serviceIDs []uuid.UUID) ([]*FeeAssignment, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter AssignmentFilter) (int64, error)
}

// InstallmentRepository defines the persistence interface for installments
type InstallmentRepository interface {
	SaveAll(ctx context.Context, installments []*Installment) error
	Save(ctx context.Context, installment *Installment) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Installment, error)
	// FindByFeeID returns the fee's installments ordered by installment number.
	FindByFeeID(ctx context.Context, tenantID, feeID uuid.UUID) ([]*Installment, error)
	FindDueBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*Installment, error)
	// AllSettled reports whether every non-cancelled installment of the fee is
	// fully paid. Assignment completion is driven externally, not by payment
	// recording.
	AllSettled(ctx context.Context, tenantID, feeID uuid.UUID) (bool, error)
}
