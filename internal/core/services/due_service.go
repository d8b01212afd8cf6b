package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jdvillegas/condo_mgmt_app/internal/apperrors"
	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	portsrepo "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/services"
	"github.com/jdvillegas/condo_mgmt_app/internal/dto"
	"github.com/jdvillegas/condo_mgmt_app/internal/middleware"
)

// manualTransitions lists the status changes an administrator may apply
// directly. Submission and approval flows go through the reconciliation
// service; this table only covers manual corrections.
var manualTransitions = map[domain.DueStatus][]domain.DueStatus{
	domain.StatusPending:  {domain.StatusInReview},
	domain.StatusInReview: {domain.StatusPaid, domain.StatusPending},
	// PAID is terminal for the normal flow; PENDING here is the explicit
	// manual override that reopens a wrongly confirmed due.
	domain.StatusPaid: {domain.StatusPending},
}

// dueService maintains the due-record ledger.
type dueService struct {
	dueRepo  portsrepo.DueRepositoryWithTx
	unitRepo portsrepo.UnitRepositoryFacade
	clock    func() time.Time
}

// DueServiceOption configures a dueService.
type DueServiceOption func(*dueService)

// WithDueClock overrides the clock, for tests.
func WithDueClock(clock func() time.Time) DueServiceOption {
	return func(s *dueService) {
		s.clock = clock
	}
}

// NewDueService creates a new due-ledger service.
func NewDueService(dueRepo portsrepo.DueRepositoryWithTx, unitRepo portsrepo.UnitRepositoryFacade, opts ...DueServiceOption) portssvc.DueSvcFacade {
	s := &dueService{
		dueRepo:  dueRepo,
		unitRepo: unitRepo,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.DueSvcFacade = (*dueService)(nil)

// CreateDue issues a single billing obligation.
func (s *dueService) CreateDue(ctx context.Context, req dto.CreateDueRequest, creatorUserID string) (*domain.Due, error) {
	if req.AmountDue.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount due %s", apperrors.ErrInvalidAmount, req.AmountDue)
	}

	unit, err := s.unitRepo.FindUnitByID(ctx, req.UnitID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve unit for due: %w", err)
	}

	// The due attaches to the unit's current owner unless one was named.
	ownerID := req.OwnerID
	if ownerID == nil {
		ownerID = unit.OwnerID
	}

	now := s.clock()
	due := domain.Due{
		DueID:         uuid.NewString(),
		OwnerID:       ownerID,
		UnitID:        unit.UnitID,
		AmountDue:     req.AmountDue.RoundBank(2),
		DueDate:       req.DueDate,
		Status:        domain.StatusPending,
		PaymentMethod: req.PaymentMethod,
		Concept:       req.Concept,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.dueRepo.SaveDue(ctx, due); err != nil {
		return nil, fmt.Errorf("failed to create due: %w", err)
	}
	return &due, nil
}

// BulkGenerateDues issues one due per unit, pro-rata by share fraction.
// Unowned units are billed too: the due attaches when an owner is assigned.
// Each unit commits independently; failures are reported per item and never
// roll back dues already written.
func (s *dueService) BulkGenerateDues(ctx context.Context, req dto.BulkGenerateDuesRequest, creatorUserID string) ([]domain.BulkGenerateItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: total amount %s", apperrors.ErrInvalidAmount, req.TotalAmount)
	}

	units, err := s.unitRepo.ListUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list units for bulk generation: %w", err)
	}

	now := s.clock()
	items := make([]domain.BulkGenerateItem, 0, len(units))
	for _, unit := range units {
		item := domain.BulkGenerateItem{UnitID: unit.UnitID, UnitLabel: unit.Number}

		if unit.ShareFraction.LessThanOrEqual(decimal.Zero) {
			item.Error = "unit has no share fraction"
			items = append(items, item)
			continue
		}

		amount := req.TotalAmount.Mul(unit.ShareFraction).Div(decimal.NewFromInt(100)).RoundBank(2)
		due := domain.Due{
			DueID:         uuid.NewString(),
			OwnerID:       unit.OwnerID,
			UnitID:        unit.UnitID,
			AmountDue:     amount,
			DueDate:       req.DueDate,
			Status:        domain.StatusPending,
			PaymentMethod: req.PaymentMethod,
			Concept:       req.Concept,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}

		if err := s.dueRepo.SaveDue(ctx, due); err != nil {
			logger.Error("Bulk generation failed for unit",
				slog.String("unit_id", unit.UnitID),
				slog.String("error", err.Error()),
			)
			item.Error = err.Error()
			items = append(items, item)
			continue
		}

		item.DueID = due.DueID
		item.Amount = &due.AmountDue
		items = append(items, item)
	}

	return items, nil
}

// GetDue retrieves one due record.
func (s *dueService) GetDue(ctx context.Context, dueID string) (*domain.Due, error) {
	return s.dueRepo.FindDueByID(ctx, dueID)
}

// ListDues retrieves dues matching the filter. Status filters are resolved
// against the effective status, so PENDING and OVERDUE partition the stored
// pending records by due date.
func (s *dueService) ListDues(ctx context.Context, req dto.ListDuesRequest) ([]domain.Due, error) {
	filter := portsrepo.DueFilter{
		OwnerID: req.OwnerID,
		UnitID:  req.UnitID,
		Month:   req.Month,
	}

	var effective *domain.DueStatus
	if req.Status != nil {
		switch *req.Status {
		case domain.StatusPending, domain.StatusOverdue:
			// Both live as stored PENDING; partitioned below.
			stored := domain.StatusPending
			filter.Status = &stored
			effective = req.Status
		case domain.StatusInReview, domain.StatusPaid:
			filter.Status = req.Status
		default:
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *req.Status)
		}
	}

	dues, err := s.dueRepo.ListDues(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list dues: %w", err)
	}

	if effective == nil {
		return dues, nil
	}

	now := s.clock()
	filtered := dues[:0]
	for _, due := range dues {
		if due.EffectiveStatus(now) == *effective {
			filtered = append(filtered, due)
		}
	}
	return filtered, nil
}

// UpdateDueStatus applies a manual status transition. The persist step is a
// compare-and-swap against the status the caller observed, so two racing
// transitions can not both win.
func (s *dueService) UpdateDueStatus(ctx context.Context, dueID string, req dto.UpdateDueStatusRequest, updaterUserID string) (*domain.Due, error) {
	if req.Status == domain.StatusOverdue {
		return nil, fmt.Errorf("%w: OVERDUE is derived from the due date and can not be stored", apperrors.ErrValidation)
	}

	due, err := s.dueRepo.FindDueByID(ctx, dueID)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, target := range manualTransitions[due.Status] {
		if target == req.Status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidState, due.Status, req.Status)
	}

	now := s.clock()
	previous := due.Status
	due.Status = req.Status
	switch req.Status {
	case domain.StatusPaid:
		paidDate := now
		if req.PaidDate != nil {
			paidDate = *req.PaidDate
		}
		due.PaidDate = &paidDate
	case domain.StatusPending:
		due.PaidDate = nil
	}
	due.LastUpdatedAt = now
	due.LastUpdatedBy = updaterUserID

	if err := s.dueRepo.UpdateDueIfStatus(ctx, *due, []domain.DueStatus{previous}); err != nil {
		return nil, err
	}
	return due, nil
}

// DeleteDue removes a due record. Any payment history blocks the delete.
func (s *dueService) DeleteDue(ctx context.Context, dueID string) error {
	due, err := s.dueRepo.FindDueByID(ctx, dueID)
	if err != nil {
		return err
	}
	if due.HasPaymentHistory() {
		return fmt.Errorf("%w: due %s", apperrors.ErrHasDependents, dueID)
	}
	return s.dueRepo.DeleteDue(ctx, dueID)
}
