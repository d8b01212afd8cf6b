package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	portsrepo "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/services"
)

// balanceService derives owner balances from the ledger. Nothing here is
// stored: the balance is recomputed from the due records on every call, so it
// can never drift from the ledger.
type balanceService struct {
	dueRepo  portsrepo.DueReader
	userRepo portsrepo.UserRepositoryFacade
}

// NewBalanceService creates a new balance service.
func NewBalanceService(dueRepo portsrepo.DueReader, userRepo portsrepo.UserRepositoryFacade) portssvc.BalanceSvcFacade {
	return &balanceService{dueRepo: dueRepo, userRepo: userRepo}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// ComputeBalance folds every due ever issued to the owner into a net USD
// position. Paid amounts are capped at the due amount when stored, so an
// approved over-payment contributes exactly its due's worth here and its
// excess lives in the legacy credit instead.
func (s *balanceService) ComputeBalance(ctx context.Context, ownerID string) (*domain.BalanceSummary, error) {
	user, err := s.userRepo.FindUserByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	dues, err := s.dueRepo.ListDues(ctx, portsrepo.DueFilter{OwnerID: &ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list dues for balance: %w", err)
	}

	summary := domain.BalanceSummary{
		OwnerID:          ownerID,
		NetUSD:           decimal.Zero,
		TotalPaidUSD:     decimal.Zero,
		TotalExpectedUSD: decimal.Zero,
		LegacyCredit:     user.LegacyBalance,
	}

	for _, due := range dues {
		summary.TotalExpectedUSD = summary.TotalExpectedUSD.Add(due.AmountDue)
		switch due.Status {
		case domain.StatusPaid, domain.StatusInReview:
			// Declared but unconfirmed money counts toward the net
			// position too; it only stops counting if the declaration is
			// rejected. A due moved here by hand carries no declared
			// payment, so its full amount counts.
			paid := due.AmountDue
			if due.PaidUSD != nil {
				paid = *due.PaidUSD
			}
			summary.TotalPaidUSD = summary.TotalPaidUSD.Add(paid)
			if due.Status == domain.StatusPaid {
				summary.PaidCount++
			}
		}
	}

	summary.NetUSD = summary.TotalPaidUSD.Sub(summary.TotalExpectedUSD)
	return &summary, nil
}
