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

// reconciliationService converts declared local-currency payments into ledger
// effects. All state transitions go through the conditional-update primitive
// on the repository, so two racing submissions or reviews can not both win.
type reconciliationService struct {
	dueRepo  portsrepo.DueRepositoryWithTx
	userRepo portsrepo.UserRepositoryFacade
	clock    func() time.Time
}

// ReconciliationServiceOption configures a reconciliationService.
type ReconciliationServiceOption func(*reconciliationService)

// WithReconciliationClock overrides the clock, for tests.
func WithReconciliationClock(clock func() time.Time) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		s.clock = clock
	}
}

// NewReconciliationService creates a new reconciliation service.
func NewReconciliationService(dueRepo portsrepo.DueRepositoryWithTx, userRepo portsrepo.UserRepositoryFacade, opts ...ReconciliationServiceOption) portssvc.ReconciliationSvcFacade {
	s := &reconciliationService{
		dueRepo:  dueRepo,
		userRepo: userRepo,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// SubmitPayment records an owner's declared payment against a single due,
// classifies it against the outstanding amount and moves the due to
// IN_REVIEW. The stored paid amount is capped at the amount due; any excess
// is credited only when an administrator approves the payment.
func (s *reconciliationService) SubmitPayment(ctx context.Context, req dto.SubmitPaymentRequest, submitterUserID string) (*domain.ReconciliationResult, error) {
	if req.DeclaredLocalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: declared amount %s", apperrors.ErrInvalidAmount, req.DeclaredLocalAmount)
	}
	if req.RateUsed.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate %s", apperrors.ErrStaleRate, req.RateUsed)
	}

	due, err := s.dueRepo.FindDueByID(ctx, req.DueID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	if !due.IsPayable(now) {
		return nil, fmt.Errorf("%w: due %s is %s", apperrors.ErrInvalidState, due.DueID, due.Status)
	}

	paidUSD := domain.ConvertToUSD(req.DeclaredLocalAmount, req.RateUsed)
	result := buildResult(due, paidUSD)

	applyDeclaration(due, declaration{
		declaredLocal: req.DeclaredLocalAmount,
		rateUsed:      req.RateUsed,
		paidUSD:       result.PaidUSD,
		operationDate: req.OperationDate,
		payerTaxID:    req.PayerTaxID,
		transferKind:  req.TransferKind,
		payerEmail:    req.PayerEmail,
		receiptRef:    req.ReceiptRef,
	}, now, submitterUserID)

	if err := s.dueRepo.UpdateDueIfStatus(ctx, *due, []domain.DueStatus{domain.StatusPending}); err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitBulkPayment distributes one declared payment across several dues in
// the order given. Allocation is greedy in whole chunks: a due is funded only
// when the remaining amount covers it entirely or falls within the
// exact-payment tolerance of it. Whatever is left after the
// last funded due attaches to that due as an over-payment, so the excess is
// credited on approval. When even the first due can not be fully funded, it
// absorbs the whole amount as a partial payment. Every funded due moves to
// IN_REVIEW independently; a conflict on one never unwinds the others.
func (s *reconciliationService) SubmitBulkPayment(ctx context.Context, req dto.SubmitBulkPaymentRequest, submitterUserID string) ([]domain.BulkPaymentItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.DeclaredLocalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: declared amount %s", apperrors.ErrInvalidAmount, req.DeclaredLocalAmount)
	}
	if req.RateUsed.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate %s", apperrors.ErrStaleRate, req.RateUsed)
	}

	now := s.clock()

	// Resolve and vet every due before touching any of them, so a bad ID
	// fails the whole request instead of half of it.
	dues := make([]*domain.Due, 0, len(req.DueIDs))
	seen := make(map[string]struct{}, len(req.DueIDs))
	for _, dueID := range req.DueIDs {
		if _, dup := seen[dueID]; dup {
			return nil, fmt.Errorf("%w: due %s listed twice", apperrors.ErrValidation, dueID)
		}
		seen[dueID] = struct{}{}

		due, err := s.dueRepo.FindDueByID(ctx, dueID)
		if err != nil {
			return nil, err
		}
		if !due.IsPayable(now) {
			return nil, fmt.Errorf("%w: due %s is %s", apperrors.ErrInvalidState, due.DueID, due.Status)
		}
		dues = append(dues, due)
	}

	totalUSD := domain.ConvertToUSD(req.DeclaredLocalAmount, req.RateUsed)
	allocations := allocateBulk(dues, totalUSD)

	items := make([]domain.BulkPaymentItem, 0, len(dues))
	for i, due := range dues {
		allocUSD := allocations[i]
		if allocUSD.IsZero() {
			items = append(items, domain.BulkPaymentItem{DueID: due.DueID, Funded: false})
			continue
		}

		result := buildResult(due, allocUSD)
		applyDeclaration(due, declaration{
			// The per-due declared amount is the allocation expressed back
			// in local currency, so approval recomputes the same USD value.
			declaredLocal: allocUSD.Mul(req.RateUsed),
			rateUsed:      req.RateUsed,
			paidUSD:       result.PaidUSD,
			operationDate: req.OperationDate,
			payerTaxID:    req.PayerTaxID,
			transferKind:  req.TransferKind,
			payerEmail:    req.PayerEmail,
			receiptRef:    req.ReceiptRef,
		}, now, submitterUserID)

		item := domain.BulkPaymentItem{DueID: due.DueID, Funded: true}
		if err := s.dueRepo.UpdateDueIfStatus(ctx, *due, []domain.DueStatus{domain.StatusPending}); err != nil {
			logger.Error("Bulk payment item failed",
				slog.String("due_id", due.DueID),
				slog.String("error", err.Error()),
			)
			item.Error = err.Error()
		} else {
			item.Result = &result
		}
		items = append(items, item)
	}

	return items, nil
}

// Approve confirms a declared payment. The IN_REVIEW -> PAID swap is the
// first write, so a repeated approval fails cleanly with ErrInvalidState
// before any side effect can run twice. A partial payment then shrinks the
// due to what was paid and issues a remainder due; an over-payment credits
// the excess to the owner's stored balance.
func (s *reconciliationService) Approve(ctx context.Context, dueID string, approverUserID string) (*domain.Due, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	due, err := s.dueRepo.FindDueByID(ctx, dueID)
	if err != nil {
		return nil, err
	}
	if due.Status != domain.StatusInReview {
		return nil, fmt.Errorf("%w: due %s is %s", apperrors.ErrInvalidState, due.DueID, due.Status)
	}
	if due.DeclaredLocalAmount == nil || due.RateUsed == nil {
		return nil, fmt.Errorf("%w: due %s has no declared payment", apperrors.ErrInvalidState, due.DueID)
	}

	paidEquiv := domain.ConvertToUSD(*due.DeclaredLocalAmount, *due.RateUsed)
	classification := domain.ClassifyPayment(paidEquiv, due.AmountDue)

	now := s.clock()
	original := *due

	due.Status = domain.StatusPaid
	due.PaidDate = &now
	due.LastUpdatedAt = now
	due.LastUpdatedBy = approverUserID
	if classification == domain.PaymentPartial {
		// The original obligation splits: this record keeps the paid part.
		due.AmountDue = paidEquiv
	}

	if err := s.dueRepo.UpdateDueIfStatus(ctx, *due, []domain.DueStatus{domain.StatusInReview}); err != nil {
		return nil, err
	}

	switch classification {
	case domain.PaymentPartial:
		remainder := domain.Due{
			DueID:         uuid.NewString(),
			OwnerID:       original.OwnerID,
			UnitID:        original.UnitID,
			AmountDue:     original.AmountDue.Sub(paidEquiv),
			DueDate:       original.DueDate,
			Status:        domain.StatusPending,
			PaymentMethod: original.PaymentMethod,
			Concept:       original.Concept + " (remainder)",
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     approverUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: approverUserID,
			},
		}
		if err := s.dueRepo.SaveDue(ctx, remainder); err != nil {
			return nil, fmt.Errorf("failed to create remainder due: %w", err)
		}
		logger.Info("Partial payment approved, remainder due issued",
			slog.String("due_id", due.DueID),
			slog.String("remainder_due_id", remainder.DueID),
			slog.String("remainder", remainder.AmountDue.String()),
		)

	case domain.PaymentOver:
		excess := paidEquiv.Sub(original.AmountDue)
		if original.OwnerID == nil {
			logger.Warn("Over-payment on unowned due, excess not credited",
				slog.String("due_id", due.DueID),
				slog.String("excess", excess.String()),
			)
			break
		}
		if err := s.userRepo.AdjustLegacyBalance(ctx, *original.OwnerID, excess); err != nil {
			return nil, fmt.Errorf("failed to credit over-payment excess: %w", err)
		}
		logger.Info("Over-payment approved, excess credited",
			slog.String("due_id", due.DueID),
			slog.String("owner_id", *original.OwnerID),
			slog.String("excess", excess.String()),
		)
	}

	return due, nil
}

// Reject returns a declared payment to PENDING. The declared metadata is
// cleared so the owner starts over; the receipt reference survives only when
// the administrator asks for it to be retained.
func (s *reconciliationService) Reject(ctx context.Context, dueID string, retainReceipt bool, rejecterUserID string) (*domain.Due, error) {
	due, err := s.dueRepo.FindDueByID(ctx, dueID)
	if err != nil {
		return nil, err
	}
	if due.Status != domain.StatusInReview {
		return nil, fmt.Errorf("%w: due %s is %s", apperrors.ErrInvalidState, due.DueID, due.Status)
	}

	now := s.clock()
	due.Status = domain.StatusPending
	due.DeclaredPayment = domain.DeclaredPayment{}
	if !retainReceipt {
		due.ReceiptRef = nil
	}
	due.LastUpdatedAt = now
	due.LastUpdatedBy = rejecterUserID

	if err := s.dueRepo.UpdateDueIfStatus(ctx, *due, []domain.DueStatus{domain.StatusInReview}); err != nil {
		return nil, err
	}
	return due, nil
}

// declaration bundles the fields applyDeclaration stamps onto a due.
type declaration struct {
	declaredLocal decimal.Decimal
	rateUsed      decimal.Decimal
	paidUSD       decimal.Decimal
	operationDate time.Time
	payerTaxID    string
	transferKind  domain.TransferKind
	payerEmail    string
	receiptRef    *string
}

func applyDeclaration(due *domain.Due, d declaration, now time.Time, submitterUserID string) {
	opDate := d.operationDate
	due.DeclaredPayment = domain.DeclaredPayment{
		OperationDate:       &opDate,
		PayerTaxID:          d.payerTaxID,
		TransferKind:        d.transferKind,
		PayerEmail:          d.payerEmail,
		DeclaredLocalAmount: &d.declaredLocal,
		RateUsed:            &d.rateUsed,
		PaidUSD:             &d.paidUSD,
	}
	if d.receiptRef != nil {
		due.ReceiptRef = d.receiptRef
	}
	due.Status = domain.StatusInReview
	due.LastUpdatedAt = now
	due.LastUpdatedBy = submitterUserID
}

// buildResult classifies a USD-equivalent payment against the due and caps
// the stored paid amount at the amount due, so balance derivation never
// counts the excess twice.
func buildResult(due *domain.Due, paidUSD decimal.Decimal) domain.ReconciliationResult {
	classification := domain.ClassifyPayment(paidUSD, due.AmountDue)
	result := domain.ReconciliationResult{
		DueID:          due.DueID,
		Classification: classification,
		PaidUSD:        paidUSD,
		RemainderUSD:   decimal.Zero,
	}
	switch classification {
	case domain.PaymentExact:
		result.PaidUSD = due.AmountDue
	case domain.PaymentPartial:
		result.RemainderUSD = due.AmountDue.Sub(paidUSD)
	case domain.PaymentOver:
		result.PaidUSD = due.AmountDue
		result.RemainderUSD = paidUSD.Sub(due.AmountDue)
	}
	return result
}

// allocateBulk splits totalUSD across dues in order. Only whole dues are
// funded; a remainder within the exact-payment tolerance of the next due
// still funds it, mirroring how a single payment would classify. The
// leftover after the last fully funded due is attached to it as an
// over-payment. If the first due already exceeds the total, it takes the
// whole amount as a partial payment.
func allocateBulk(dues []*domain.Due, totalUSD decimal.Decimal) []decimal.Decimal {
	allocations := make([]decimal.Decimal, len(dues))
	remaining := totalUSD
	lastFunded := -1
	for i, due := range dues {
		if remaining.GreaterThanOrEqual(due.AmountDue) {
			allocations[i] = due.AmountDue
			remaining = remaining.Sub(due.AmountDue)
			lastFunded = i
			continue
		}
		if remaining.IsPositive() && domain.ClassifyPayment(remaining, due.AmountDue) == domain.PaymentExact {
			allocations[i] = remaining
			remaining = decimal.Zero
			lastFunded = i
			break
		}
		if lastFunded == -1 {
			// Nothing funded yet: the first due absorbs everything as a
			// partial payment rather than losing the money.
			allocations[i] = remaining
			remaining = decimal.Zero
		}
		break
	}
	if lastFunded >= 0 && remaining.IsPositive() {
		allocations[lastFunded] = allocations[lastFunded].Add(remaining)
	}
	return allocations
}
