package tuition

import (
	"context"
	"errors"
	"fmt"

	"github.com/campus/backend/internal/domain/catalog"
	"github.com/campus/backend/internal/domain/ledger"
	"github.com/campus/backend/internal/domain/shared"
	"github.com/campus/backend/internal/domain/shared/valueobject"
	"github.com/campus/backend/internal/domain/tuition"
	"github.com/campus/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// AssignmentService orchestrates fee assignment: pricing, schedule generation,
// duplicate detection and down-payment bookkeeping. Each assignment is
// persisted as one database transaction so a failure in any step leaves no
// partial fee behind.
type AssignmentService struct {
	assignmentRepo  tuition.FeeAssignmentRepository
	installmentRepo tuition.InstallmentRepository
	paymentRepo     ledger.PaymentRepository
	ledgerTxRepo    ledger.TransactionRepository
	categoryRepo    ledger.CategoryRepository
	accountRepo     ledger.AccountRepository
	serviceRepo     catalog.ServiceItemRepository
	studentRepo     catalog.StudentRepository
	txManager       shared.TransactionManager
	clock           shared.Clock
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	assignmentRepo tuition.FeeAssignmentRepository,
	installmentRepo tuition.InstallmentRepository,
	paymentRepo ledger.PaymentRepository,
	ledgerTxRepo ledger.TransactionRepository,
	categoryRepo ledger.CategoryRepository,
	accountRepo ledger.AccountRepository,
	serviceRepo catalog.ServiceItemRepository,
	studentRepo catalog.StudentRepository,
	txManager shared.TransactionManager,
	clock shared.Clock,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo:  assignmentRepo,
		installmentRepo: installmentRepo,
		paymentRepo:     paymentRepo,
		ledgerTxRepo:    ledgerTxRepo,
		categoryRepo:    categoryRepo,
		accountRepo:     accountRepo,
		serviceRepo:     serviceRepo,
		studentRepo:     studentRepo,
		txManager:       txManager,
		clock:           clock,
	}
}

// AssignFees assigns a basket of services to one student. The student is
// resolved once, before any writes; after that each service in the basket is
// its own transactional unit with its own outcome, so a failure on one
// service never rolls back or hides the others.
func (s *AssignmentService) AssignFees(ctx context.Context, tenantID uuid.UUID, req AssignFeeRequest) (*AssignFeesResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "tuition", "assign_fees")
	defer span.End()

	telemetry.SetAttributes(span,
		"student_id", req.StudentID.String(),
		"service_count", len(req.ServiceIDs),
		"academic_period", req.AcademicPeriod,
	)

	if len(req.ServiceIDs) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Service basket cannot be empty")
	}

	student, err := s.studentRepo.FindByIDForTenant(ctx, tenantID, req.StudentID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load student: %w", err)
	}
	if student == nil {
		return nil, shared.NewDomainError("STUDENT_NOT_FOUND", "Student not found")
	}

	resp := &AssignFeesResponse{StudentID: req.StudentID}
	for _, serviceID := range req.ServiceIDs {
		outcome := ServiceAssignOutcome{ServiceID: serviceID}
		assignment, err := s.assignService(ctx, tenantID, req, student, serviceID)
		if err != nil {
			outcome.ErrorMessage = err.Error()
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) {
				outcome.ErrorCode = domainErr.Code
			} else {
				outcome.ErrorCode = "PERSISTENCE_ERROR"
			}
			resp.Failed++
		} else {
			outcome.Success = true
			outcome.Assignment = assignment
			resp.Succeeded++
		}
		resp.Outcomes = append(resp.Outcomes, outcome)
	}

	telemetry.AddEvent(span, "fees_assigned",
		"succeeded", resp.Succeeded,
		"failed", resp.Failed,
	)
	telemetry.SetOK(span)
	return resp, nil
}

// assignService creates one fee assignment with its installment schedule in
// its own transaction. A positive down payment additionally books the
// settlement: a payment row against the first installment and an income
// ledger transaction with the VAT split.
func (s *AssignmentService) assignService(ctx context.Context, tenantID uuid.UUID, req AssignFeeRequest, student *catalog.Student, serviceID uuid.UUID) (*AssignmentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "tuition", "assign_fee")
	defer span.End()
	telemetry.SetAttribute(span, "service_id", serviceID.String())

	item, err := s.serviceRepo.FindByIDForTenant(ctx, tenantID, serviceID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	if item == nil {
		return nil, shared.NewDomainError("SERVICE_NOT_FOUND", "Service not found")
	}
	if !item.IsActive {
		return nil, shared.NewDomainError("SERVICE_INACTIVE", "Service is no longer offered")
	}

	if !req.ForceDuplicate {
		conflicts, err := s.CheckDuplicates(ctx, tenantID, DuplicateCheckRequest{
			StudentID:      req.StudentID,
			AcademicPeriod: req.AcademicPeriod,
			ServiceIDs:     []uuid.UUID{serviceID},
		})
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			return nil, shared.NewDomainError("DUPLICATE_ASSIGNMENT",
				fmt.Sprintf("Student already has an assignment for %s in %s", conflicts[0].ServiceName, req.AcademicPeriod))
		}
	}

	now := s.clock.Now()

	input := tuition.PricingInput{
		UnitPrice:      item.GetUnitPriceMoney(),
		DiscountType:   tuition.DiscountType(req.DiscountType),
		DiscountValue:  req.DiscountValue,
		VATRatePercent: item.VATRatePercent,
	}
	pricing, err := tuition.CalculatePricing(input)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	startMonth := now
	if req.StartMonth != nil {
		startMonth = *req.StartMonth
	}
	drafts, err := tuition.BuildSchedule(tuition.ScheduleInput{
		GrossPayable:         pricing.GrossPayable,
		DownPayment:          valueobject.NewMoneyTRY(req.DownPayment),
		InstallmentCount:     req.InstallmentCount,
		StartMonth:           startMonth,
		DueDay:               req.DueDay,
		IssueDate:            now,
		HasSettlementAccount: req.AccountID != nil,
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	assignment, err := tuition.NewFeeAssignment(
		tenantID, req.StudentID, student.ClassID, serviceID,
		item.Name, req.AcademicPeriod,
		input, pricing, req.DiscountReason, req.InstallmentCount,
	)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		assignment.SetCreatedBy(*req.CreatedBy)
	}

	installments := make([]*tuition.Installment, 0, len(drafts))
	for _, draft := range drafts {
		installments = append(installments, tuition.NewInstallmentFromDraft(tenantID, assignment.ID, draft, now))
	}

	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.assignmentRepo.Save(txCtx, assignment); err != nil {
			return fmt.Errorf("failed to save assignment: %w", err)
		}
		if len(installments) > 0 {
			if err := s.installmentRepo.SaveAll(txCtx, installments); err != nil {
				return fmt.Errorf("failed to save installments: %w", err)
			}
		}

		if req.DownPayment.IsPositive() {
			return s.settleDownPayment(txCtx, tenantID, assignment, installments, req)
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.AddEvent(span, "fee_assigned",
		"assignment_id", assignment.ID.String(),
		"net_payable", assignment.NetPayable.String(),
	)
	telemetry.SetOK(span)

	return toAssignmentResponse(assignment, installments), nil
}

// settleDownPayment books the already-paid first installment: payment row,
// income ledger transaction with the VAT split, account balance adjustment.
// Runs inside the assignment's transaction.
func (s *AssignmentService) settleDownPayment(
	ctx context.Context,
	tenantID uuid.UUID,
	assignment *tuition.FeeAssignment,
	installments []*tuition.Installment,
	req AssignFeeRequest,
) error {
	if len(installments) == 0 || !installments[0].IsSettled() {
		return shared.NewDomainError("INVALID_STATE", "Down payment installment missing from schedule")
	}
	downInstallment := installments[0]

	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, *req.AccountID)
	if err != nil {
		return fmt.Errorf("failed to load account: %w", err)
	}
	if account == nil {
		return shared.NewDomainError("MISSING_SETTLEMENT_ACCOUNT", "Settlement account not found")
	}

	method := ledger.PaymentMethod(req.PaymentMethod)
	if method == "" {
		method = ledger.PaymentMethodCash
	}
	payment, err := ledger.NewPayment(
		tenantID, assignment.StudentID, downInstallment.ID, account.ID,
		downInstallment.GetPaidAmountMoney(), method, downInstallment.CreatedAt,
	)
	if err != nil {
		return err
	}
	if req.CreatedBy != nil {
		payment.ReceivedBy = req.CreatedBy
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}

	category, err := s.categoryRepo.UpsertByName(ctx, tenantID, ledger.DefaultTuitionIncomeCategory, ledger.TransactionTypeIncome)
	if err != nil {
		return fmt.Errorf("failed to resolve income category: %w", err)
	}

	gross := downInstallment.GetPaidAmountMoney()
	subtotal, err := tuition.NetComponentOf(gross, assignment.VATRatePercent)
	if err != nil {
		return err
	}
	vatPart, err := gross.Subtract(subtotal)
	if err != nil {
		return err
	}

	tx, err := ledger.NewIncomeTransaction(
		tenantID, category.ID, account.ID,
		gross, subtotal, vatPart,
		fmt.Sprintf("Down payment for %s (%s)", assignment.ServiceName, assignment.AcademicPeriod),
		&payment.ID, downInstallment.CreatedAt,
	)
	if err != nil {
		return err
	}
	tx.ServiceID = &assignment.ServiceID
	if err := s.ledgerTxRepo.Save(ctx, tx); err != nil {
		return fmt.Errorf("failed to save ledger transaction: %w", err)
	}

	if err := s.accountRepo.AdjustBalance(ctx, tenantID, account.ID, gross.Amount()); err != nil {
		return fmt.Errorf("failed to adjust account balance: %w", err)
	}

	return nil
}

// CheckDuplicates reports which of the requested services the student already
// has a non-cancelled assignment for in the academic period. The check is
// advisory: callers may proceed anyway with ForceDuplicate.
func (s *AssignmentService) CheckDuplicates(ctx context.Context, tenantID uuid.UUID, req DuplicateCheckRequest) ([]DuplicateConflict, error) {
	existing, err := s.assignmentRepo.FindActiveByStudentAndServices(ctx, tenantID, req.StudentID, req.AcademicPeriod, req.ServiceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to check duplicates: %w", err)
	}

	conflicts := make([]DuplicateConflict, 0, len(existing))
	for _, fa := range existing {
		conflicts = append(conflicts, DuplicateConflict{
			ServiceID:    fa.ServiceID,
			ServiceName:  fa.ServiceName,
			AssignmentID: fa.ID,
		})
	}
	return conflicts, nil
}

// GetAssignment returns one assignment with its installments
func (s *AssignmentService) GetAssignment(ctx context.Context, tenantID, id uuid.UUID) (*AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Fee assignment not found")
	}

	installments, err := s.installmentRepo.FindByFeeID(ctx, tenantID, assignment.ID)
	if err != nil {
		return nil, err
	}

	return toAssignmentResponse(assignment, installments), nil
}

// ListAssignments lists fee assignments with filtering and pagination
func (s *AssignmentService) ListAssignments(ctx context.Context, tenantID uuid.UUID, filter AssignmentListFilter) (*shared.Paginated[*AssignmentResponse], error) {
	domainFilter := tuition.AssignmentFilter{
		Filter:         shared.DefaultFilter(),
		StudentID:      filter.StudentID,
		ClassID:        filter.ClassID,
		ServiceID:      filter.ServiceID,
		AcademicPeriod: filter.AcademicPeriod,
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		status := tuition.AssignmentStatus(filter.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid assignment status filter")
		}
		domainFilter.Status = &status
	}

	page, err := s.assignmentRepo.FindForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]*AssignmentResponse, 0, len(page.Items))
	for _, fa := range page.Items {
		items = append(items, toAssignmentResponse(fa, nil))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}
