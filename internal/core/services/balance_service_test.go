package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/jdvillegas/condo_mgmt_app/internal/apperrors"
	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	portsrepo "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/services"
	"github.com/jdvillegas/condo_mgmt_app/internal/core/services"
)

type BalanceServiceTestSuite struct {
	suite.Suite
	mockDueRepo  *MockDueRepository
	mockUserRepo *MockUserRepository
	service      portssvc.BalanceSvcFacade
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockDueRepo = new(MockDueRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewBalanceService(suite.mockDueRepo, suite.mockUserRepo)
}

func (suite *BalanceServiceTestSuite) owner(legacy string) *domain.User {
	return &domain.User{
		UserID:        uuid.NewString(),
		Name:          "Maria",
		Email:         "maria@example.com",
		Role:          domain.RoleOwner,
		LegacyBalance: decimal.RequireFromString(legacy),
	}
}

func paidDue(ownerID, amountDue, paidUSD string) domain.Due {
	paid := decimal.RequireFromString(paidUSD)
	return domain.Due{
		DueID:     uuid.NewString(),
		OwnerID:   &ownerID,
		AmountDue: decimal.RequireFromString(amountDue),
		Status:    domain.StatusPaid,
		DeclaredPayment: domain.DeclaredPayment{
			PaidUSD: &paid,
		},
	}
}

func inReviewDueFor(ownerID, amountDue, paidUSD string) domain.Due {
	paid := decimal.RequireFromString(paidUSD)
	return domain.Due{
		DueID:     uuid.NewString(),
		OwnerID:   &ownerID,
		AmountDue: decimal.RequireFromString(amountDue),
		Status:    domain.StatusInReview,
		DeclaredPayment: domain.DeclaredPayment{
			PaidUSD: &paid,
		},
	}
}

func (suite *BalanceServiceTestSuite) TestComputeBalance_NoDues() {
	ctx := context.Background()
	owner := suite.owner("0")

	suite.mockUserRepo.On("FindUserByID", ctx, owner.UserID).Return(owner, nil).Once()
	suite.mockDueRepo.On("ListDues", ctx, portsrepo.DueFilter{OwnerID: &owner.UserID}).
		Return([]domain.Due{}, nil).Once()

	summary, err := suite.service.ComputeBalance(ctx, owner.UserID)

	suite.Require().NoError(err)
	suite.True(summary.NetUSD.IsZero())
	suite.True(summary.TotalPaidUSD.IsZero())
	suite.True(summary.TotalExpectedUSD.IsZero())
	suite.Zero(summary.PaidCount)
	suite.mockDueRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestComputeBalance_MixedLedger() {
	ctx := context.Background()
	owner := suite.owner("15.00")

	dues := []domain.Due{
		paidDue(owner.UserID, "100.00", "100.00"),
		paidDue(owner.UserID, "80.00", "80.00"),
		{
			DueID:     uuid.NewString(),
			OwnerID:   &owner.UserID,
			AmountDue: decimal.RequireFromString("50.00"),
			Status:    domain.StatusPending,
		},
		inReviewDueFor(owner.UserID, "60.00", "60.00"),
	}

	suite.mockUserRepo.On("FindUserByID", ctx, owner.UserID).Return(owner, nil).Once()
	suite.mockDueRepo.On("ListDues", ctx, portsrepo.DueFilter{OwnerID: &owner.UserID}).
		Return(dues, nil).Once()

	summary, err := suite.service.ComputeBalance(ctx, owner.UserID)

	suite.Require().NoError(err)
	// Expected 290, paid 240: the in-review declaration counts toward the
	// net, but only settled dues count toward PaidCount.
	suite.True(summary.TotalExpectedUSD.Equal(decimal.RequireFromString("290.00")))
	suite.True(summary.TotalPaidUSD.Equal(decimal.RequireFromString("240.00")))
	suite.True(summary.NetUSD.Equal(decimal.RequireFromString("-50.00")))
	suite.Equal(2, summary.PaidCount)
	// Legacy credit is surfaced, never folded into the net.
	suite.True(summary.LegacyCredit.Equal(decimal.RequireFromString("15.00")))
	suite.mockDueRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestComputeBalance_ApprovedPartialCountsPaidPart() {
	ctx := context.Background()
	owner := suite.owner("0")

	// After a partial approval the paid record's amount equals what was
	// paid and the remainder lives in a separate pending due.
	dues := []domain.Due{
		paidDue(owner.UserID, "80.00", "80.00"),
		{
			DueID:     uuid.NewString(),
			OwnerID:   &owner.UserID,
			AmountDue: decimal.RequireFromString("20.00"),
			Status:    domain.StatusPending,
		},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, owner.UserID).Return(owner, nil).Once()
	suite.mockDueRepo.On("ListDues", ctx, portsrepo.DueFilter{OwnerID: &owner.UserID}).
		Return(dues, nil).Once()

	summary, err := suite.service.ComputeBalance(ctx, owner.UserID)

	suite.Require().NoError(err)
	suite.True(summary.NetUSD.Equal(decimal.RequireFromString("-20.00")))
	suite.Equal(1, summary.PaidCount)
}

func (suite *BalanceServiceTestSuite) TestComputeBalance_ManuallySettledDueCountsInFull() {
	ctx := context.Background()
	owner := suite.owner("0")

	// A due marked paid by hand has no declared payment attached.
	dues := []domain.Due{
		{
			DueID:     uuid.NewString(),
			OwnerID:   &owner.UserID,
			AmountDue: decimal.RequireFromString("45.00"),
			Status:    domain.StatusPaid,
		},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, owner.UserID).Return(owner, nil).Once()
	suite.mockDueRepo.On("ListDues", ctx, portsrepo.DueFilter{OwnerID: &owner.UserID}).
		Return(dues, nil).Once()

	summary, err := suite.service.ComputeBalance(ctx, owner.UserID)

	suite.Require().NoError(err)
	suite.True(summary.TotalPaidUSD.Equal(decimal.RequireFromString("45.00")))
	suite.True(summary.NetUSD.IsZero())
	suite.Equal(1, summary.PaidCount)
}

func (suite *BalanceServiceTestSuite) TestComputeBalance_ManualInReviewFallsBackToAmountDue() {
	ctx := context.Background()
	owner := suite.owner("0")

	// A due moved to review by hand carries no declared payment; its full
	// amount counts toward the net until an administrator decides.
	dues := []domain.Due{
		{
			DueID:     uuid.NewString(),
			OwnerID:   &owner.UserID,
			AmountDue: decimal.RequireFromString("100.00"),
			Status:    domain.StatusInReview,
		},
	}

	suite.mockUserRepo.On("FindUserByID", ctx, owner.UserID).Return(owner, nil).Once()
	suite.mockDueRepo.On("ListDues", ctx, portsrepo.DueFilter{OwnerID: &owner.UserID}).
		Return(dues, nil).Once()

	summary, err := suite.service.ComputeBalance(ctx, owner.UserID)

	suite.Require().NoError(err)
	suite.True(summary.TotalPaidUSD.Equal(decimal.RequireFromString("100.00")))
	suite.True(summary.NetUSD.IsZero())
	suite.Zero(summary.PaidCount)
}

func (suite *BalanceServiceTestSuite) TestComputeBalance_UnknownOwner() {
	ctx := context.Background()
	ownerID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, ownerID).Return(nil, apperrors.ErrNotFound).Once()

	summary, err := suite.service.ComputeBalance(ctx, ownerID)

	suite.Require().Error(err)
	suite.Nil(summary)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockDueRepo.AssertNotCalled(suite.T(), "ListDues")
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
