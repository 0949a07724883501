package tuition

import (
	"context"
	"errors"
	"sync"

	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// bulkWorkers bounds how many students are assigned concurrently. Each
// student's assignment runs in its own database transaction, so one failure
// rolls back only that student's unit.
const bulkWorkers = 4

// BulkAssignmentService applies one shared service basket to a set of
// students and reports a per-student outcome list instead of failing the
// whole batch.
type BulkAssignmentService struct {
	assignmentService *AssignmentService
}

// NewBulkAssignmentService creates a new BulkAssignmentService
func NewBulkAssignmentService(assignmentService *AssignmentService) *BulkAssignmentService {
	return &BulkAssignmentService{assignmentService: assignmentService}
}

// BulkAssign applies the shared basket once per service for every student in
// the request. Bulk assignment never takes a down payment; settlements are
// recorded per student afterwards.
func (s *BulkAssignmentService) BulkAssign(ctx context.Context, tenantID uuid.UUID, req BulkAssignFeeRequest) (*BulkAssignResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "tuition", "bulk_assign")
	defer span.End()
	telemetry.SetAttributes(span,
		"student_count", len(req.StudentIDs),
		"service_count", len(req.ServiceIDs),
	)

	if len(req.StudentIDs) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Student list cannot be empty")
	}
	if len(req.ServiceIDs) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Service basket cannot be empty")
	}

	outcomes := make([]BulkAssignOutcome, len(req.StudentIDs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range bulkWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				outcomes[idx] = s.assignOne(ctx, tenantID, req, req.StudentIDs[idx])
			}
		}()
	}
	for idx := range req.StudentIDs {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	resp := &BulkAssignResponse{Total: len(outcomes), Outcomes: outcomes}
	for _, o := range outcomes {
		if o.Success {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}

	telemetry.AddEvent(span, "bulk_assign_completed",
		"succeeded", resp.Succeeded,
		"failed", resp.Failed,
	)
	return resp, nil
}

func (s *BulkAssignmentService) assignOne(ctx context.Context, tenantID uuid.UUID, req BulkAssignFeeRequest, studentID uuid.UUID) BulkAssignOutcome {
	basket, err := s.assignmentService.AssignFees(ctx, tenantID, AssignFeeRequest{
		StudentID:        studentID,
		ServiceIDs:       req.ServiceIDs,
		AcademicPeriod:   req.AcademicPeriod,
		DiscountType:     req.DiscountType,
		DiscountValue:    req.DiscountValue,
		DiscountReason:   req.DiscountReason,
		InstallmentCount: req.InstallmentCount,
		DueDay:           req.DueDay,
		StartMonth:       req.StartMonth,
		ForceDuplicate:   req.ForceDuplicate,
		CreatedBy:        req.CreatedBy,
	})
	if err != nil {
		// basket-level failure, no service was attempted
		outcome := BulkAssignOutcome{StudentID: studentID, ErrorMessage: err.Error()}
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			outcome.ErrorCode = domainErr.Code
		} else {
			outcome.ErrorCode = "PERSISTENCE_ERROR"
		}
		return outcome
	}
	return BulkAssignOutcome{
		StudentID: studentID,
		Success:   basket.Failed == 0,
		Services:  basket.Outcomes,
	}
}
