package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/jdvillegas/condo_mgmt_app/internal/apperrors"
	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	portsrepo "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/services"
	"github.com/jdvillegas/condo_mgmt_app/internal/core/services"
	"github.com/jdvillegas/condo_mgmt_app/internal/dto"
)

type DueServiceTestSuite struct {
	suite.Suite
	mockDueRepo  *MockDueRepository
	mockUnitRepo *MockUnitRepository
	service      portssvc.DueSvcFacade
	now          time.Time
}

func (suite *DueServiceTestSuite) SetupTest() {
	suite.mockDueRepo = new(MockDueRepository)
	suite.mockUnitRepo = new(MockUnitRepository)
	suite.now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewDueService(
		suite.mockDueRepo,
		suite.mockUnitRepo,
		services.WithDueClock(func() time.Time { return suite.now }),
	)
}

func (suite *DueServiceTestSuite) unit(number, share string, ownerID *string) *domain.Unit {
	return &domain.Unit{
		UnitID:        uuid.NewString(),
		Floor:         "3",
		Number:        number,
		ShareFraction: decimal.RequireFromString(share),
		OwnerID:       ownerID,
	}
}

// --- CreateDue ---

func (suite *DueServiceTestSuite) TestCreateDue_DefaultsOwnerFromUnit() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	unit := suite.unit("3-A", "2.5", &ownerID)
	creatorID := uuid.NewString()
	req := dto.CreateDueRequest{
		UnitID:    unit.UnitID,
		AmountDue: decimal.RequireFromString("100.00"),
		DueDate:   suite.now.AddDate(0, 1, 0),
		Concept:   "Monthly maintenance",
	}

	suite.mockUnitRepo.On("FindUnitByID", ctx, unit.UnitID).Return(unit, nil).Once()
	suite.mockDueRepo.On("SaveDue", ctx, mock.MatchedBy(func(d domain.Due) bool {
		return d.OwnerID != nil && *d.OwnerID == ownerID &&
			d.Status == domain.StatusPending &&
			d.AmountDue.Equal(decimal.RequireFromString("100.00")) &&
			d.CreatedBy == creatorID
	})).Return(nil).Once()

	due, err := suite.service.CreateDue(ctx, req, creatorID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, due.Status)
	suite.Equal(ownerID, *due.OwnerID)
	suite.mockDueRepo.AssertExpectations(suite.T())
	suite.mockUnitRepo.AssertExpectations(suite.T())
}

func (suite *DueServiceTestSuite) TestCreateDue_UnownedUnitKeepsNilOwner() {
	ctx := context.Background()
	unit := suite.unit("5-B", "2.5", nil)
	req := dto.CreateDueRequest{
		UnitID:    unit.UnitID,
		AmountDue: decimal.RequireFromString("80.00"),
		DueDate:   suite.now.AddDate(0, 1, 0),
		Concept:   "Monthly maintenance",
	}

	suite.mockUnitRepo.On("FindUnitByID", ctx, unit.UnitID).Return(unit, nil).Once()
	suite.mockDueRepo.On("SaveDue", ctx, mock.MatchedBy(func(d domain.Due) bool {
		return d.OwnerID == nil
	})).Return(nil).Once()

	due, err := suite.service.CreateDue(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Nil(due.OwnerID)
	suite.mockDueRepo.AssertExpectations(suite.T())
}

func (suite *DueServiceTestSuite) TestCreateDue_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateDueRequest{
		UnitID:    uuid.NewString(),
		AmountDue: decimal.Zero,
		DueDate:   suite.now,
		Concept:   "Monthly maintenance",
	}

	due, err := suite.service.CreateDue(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(due)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.mockUnitRepo.AssertNotCalled(suite.T(), "FindUnitByID")
}

func (suite *DueServiceTestSuite) TestCreateDue_UnitNotFound() {
	ctx := context.Background()
	req := dto.CreateDueRequest{
		UnitID:    uuid.NewString(),
		AmountDue: decimal.RequireFromString("100.00"),
		DueDate:   suite.now,
		Concept:   "Monthly maintenance",
	}

	suite.mockUnitRepo.On("FindUnitByID", ctx, req.UnitID).Return(nil, apperrors.ErrNotFound).Once()

	due, err := suite.service.CreateDue(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(due)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- BulkGenerateDues ---

func (suite *DueServiceTestSuite) TestBulkGenerateDues_ProRataByShare() {
	ctx := context.Background()
	owner1 := uuid.NewString()
	unit1 := suite.unit("1-A", "2.5", &owner1)
	unit2 := suite.unit("1-B", "3.75", nil) // unowned units are billed too
	req := dto.BulkGenerateDuesRequest{
		TotalAmount: decimal.RequireFromString("10000.00"),
		Concept:     "June maintenance",
		DueDate:     suite.now.AddDate(0, 1, 0),
	}

	suite.mockUnitRepo.On("ListUnits", ctx).Return([]domain.Unit{*unit1, *unit2}, nil).Once()
	suite.mockDueRepo.On("SaveDue", ctx, mock.MatchedBy(func(d domain.Due) bool {
		return d.UnitID == unit1.UnitID && d.AmountDue.Equal(decimal.RequireFromString("250.00"))
	})).Return(nil).Once()
	suite.mockDueRepo.On("SaveDue", ctx, mock.MatchedBy(func(d domain.Due) bool {
		return d.UnitID == unit2.UnitID && d.AmountDue.Equal(decimal.RequireFromString("375.00")) && d.OwnerID == nil
	})).Return(nil).Once()

	items, err := suite.service.BulkGenerateDues(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().Len(items, 2)
	suite.Empty(items[0].Error)
	suite.Empty(items[1].Error)
	suite.NotEmpty(items[0].DueID)
	suite.mockDueRepo.AssertExpectations(suite.T())
}

func (suite *DueServiceTestSuite) TestBulkGenerateDues_FailureDoesNotStopTheRun() {
	ctx := context.Background()
	owner := uuid.NewString()
	unit1 := suite.unit("1-A", "2.5", &owner)
	unit2 := suite.unit("1-B", "2.5", &owner)
	req := dto.BulkGenerateDuesRequest{
		TotalAmount: decimal.RequireFromString("10000.00"),
		Concept:     "June maintenance",
		DueDate:     suite.now.AddDate(0, 1, 0),
	}

	suite.mockUnitRepo.On("ListUnits", ctx).Return([]domain.Unit{*unit1, *unit2}, nil).Once()
	suite.mockDueRepo.On("SaveDue", ctx, mock.MatchedBy(func(d domain.Due) bool {
		return d.UnitID == unit1.UnitID
	})).Return(assert.AnError).Once()
	suite.mockDueRepo.On("SaveDue", ctx, mock.MatchedBy(func(d domain.Due) bool {
		return d.UnitID == unit2.UnitID
	})).Return(nil).Once()

	items, err := suite.service.BulkGenerateDues(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().Len(items, 2)
	suite.NotEmpty(items[0].Error)
	suite.Empty(items[0].DueID)
	suite.Empty(items[1].Error)
	suite.NotEmpty(items[1].DueID)
	suite.mockDueRepo.AssertExpectations(suite.T())
}

func (suite *DueServiceTestSuite) TestBulkGenerateDues_ZeroShareUnitSkipped() {
	ctx := context.Background()
	unit := suite.unit("PH", "0", nil)
	req := dto.BulkGenerateDuesRequest{
		TotalAmount: decimal.RequireFromString("10000.00"),
		Concept:     "June maintenance",
		DueDate:     suite.now.AddDate(0, 1, 0),
	}

	suite.mockUnitRepo.On("ListUnits", ctx).Return([]domain.Unit{*unit}, nil).Once()

	items, err := suite.service.BulkGenerateDues(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().Len(items, 1)
	suite.NotEmpty(items[0].Error)
	suite.mockDueRepo.AssertNotCalled(suite.T(), "SaveDue")
}

// --- ListDues ---

func (suite *DueServiceTestSuite) TestListDues_OverdueFilterSelectsElapsedPending() {
	ctx := context.Background()
	overdue := domain.Due{
		DueID:   uuid.NewString(),
		Status:  domain.StatusPending,
		DueDate: suite.now.AddDate(0, -1, 0),
	}
	current := domain.Due{
		DueID:   uuid.NewString(),
		Status:  domain.StatusPending,
		DueDate: suite.now.AddDate(0, 1, 0),
	}
	status := domain.StatusOverdue
	req := dto.ListDuesRequest{Status: &status}

	stored := domain.StatusPending
	suite.mockDueRepo.On("ListDues", ctx, portsrepo.DueFilter{Status: &stored}).
		Return([]domain.Due{overdue, current}, nil).Once()

	dues, err := suite.service.ListDues(ctx, req)

	suite.Require().NoError(err)
	suite.Require().Len(dues, 1)
	suite.Equal(overdue.DueID, dues[0].DueID)
	suite.mockDueRepo.AssertExpectations(suite.T())
}

func (suite *DueServiceTestSuite) TestListDues_PendingFilterExcludesElapsed() {
	ctx := context.Background()
	overdue := domain.Due{
		DueID:   uuid.NewString(),
		Status:  domain.StatusPending,
		DueDate: suite.now.AddDate(0, -1, 0),
	}
	current := domain.Due{
		DueID:   uuid.NewString(),
		Status:  domain.StatusPending,
		DueDate: suite.now.AddDate(0, 1, 0),
	}
	status := domain.StatusPending
	req := dto.ListDuesRequest{Status: &status}

	stored := domain.StatusPending
	suite.mockDueRepo.On("ListDues", ctx, portsrepo.DueFilter{Status: &stored}).
		Return([]domain.Due{overdue, current}, nil).Once()

	dues, err := suite.service.ListDues(ctx, req)

	suite.Require().NoError(err)
	suite.Require().Len(dues, 1)
	suite.Equal(current.DueID, dues[0].DueID)
}

func (suite *DueServiceTestSuite) TestListDues_PaidFilterPassesThrough() {
	ctx := context.Background()
	status := domain.StatusPaid
	req := dto.ListDuesRequest{Status: &status}

	suite.mockDueRepo.On("ListDues", ctx, portsrepo.DueFilter{Status: &status}).
		Return([]domain.Due{}, nil).Once()

	dues, err := suite.service.ListDues(ctx, req)

	suite.Require().NoError(err)
	suite.Empty(dues)
	suite.mockDueRepo.AssertExpectations(suite.T())
}

// --- UpdateDueStatus ---

func (suite *DueServiceTestSuite) TestUpdateDueStatus_OverdueCannotBeStored() {
	ctx := context.Background()
	req := dto.UpdateDueStatusRequest{Status: domain.StatusOverdue}

	due, err := suite.service.UpdateDueStatus(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(due)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDueRepo.AssertNotCalled(suite.T(), "FindDueByID")
}

func (suite *DueServiceTestSuite) TestUpdateDueStatus_ReopenPaidDue() {
	ctx := context.Background()
	paidDate := suite.now.AddDate(0, 0, -5)
	original := &domain.Due{
		DueID:    uuid.NewString(),
		Status:   domain.StatusPaid,
		PaidDate: &paidDate,
		DueDate:  suite.now.AddDate(0, 1, 0),
	}
	updaterID := uuid.NewString()
	req := dto.UpdateDueStatusRequest{Status: domain.StatusPending}

	suite.mockDueRepo.On("FindDueByID", ctx, original.DueID).Return(original, nil).Once()
	suite.mockDueRepo.On("UpdateDueIfStatus", ctx, mock.MatchedBy(func(d domain.Due) bool {
		return d.Status == domain.StatusPending && d.PaidDate == nil && d.LastUpdatedBy == updaterID
	}), []domain.DueStatus{domain.StatusPaid}).Return(nil).Once()

	due, err := suite.service.UpdateDueStatus(ctx, original.DueID, req, updaterID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, due.Status)
	suite.Nil(due.PaidDate)
	suite.mockDueRepo.AssertExpectations(suite.T())
}

func (suite *DueServiceTestSuite) TestUpdateDueStatus_DisallowedTransition() {
	ctx := context.Background()
	original := &domain.Due{
		DueID:   uuid.NewString(),
		Status:  domain.StatusPending,
		DueDate: suite.now.AddDate(0, 1, 0),
	}
	req := dto.UpdateDueStatusRequest{Status: domain.StatusPaid}

	suite.mockDueRepo.On("FindDueByID", ctx, original.DueID).Return(original, nil).Once()

	_, err := suite.service.UpdateDueStatus(ctx, original.DueID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockDueRepo.AssertNotCalled(suite.T(), "UpdateDueIfStatus")
}

// --- DeleteDue ---

func (suite *DueServiceTestSuite) TestDeleteDue_Success() {
	ctx := context.Background()
	due := &domain.Due{
		DueID:   uuid.NewString(),
		Status:  domain.StatusPending,
		DueDate: suite.now.AddDate(0, 1, 0),
	}

	suite.mockDueRepo.On("FindDueByID", ctx, due.DueID).Return(due, nil).Once()
	suite.mockDueRepo.On("DeleteDue", ctx, due.DueID).Return(nil).Once()

	err := suite.service.DeleteDue(ctx, due.DueID)

	suite.Require().NoError(err)
	suite.mockDueRepo.AssertExpectations(suite.T())
}

func (suite *DueServiceTestSuite) TestDeleteDue_BlockedByPaymentHistory() {
	ctx := context.Background()
	paid := decimal.RequireFromString("50.00")
	due := &domain.Due{
		DueID:   uuid.NewString(),
		Status:  domain.StatusPending,
		DueDate: suite.now.AddDate(0, 1, 0),
	}
	due.PaidUSD = &paid

	suite.mockDueRepo.On("FindDueByID", ctx, due.DueID).Return(due, nil).Once()

	err := suite.service.DeleteDue(ctx, due.DueID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrHasDependents)
	suite.mockDueRepo.AssertNotCalled(suite.T(), "DeleteDue")
}

func TestDueServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DueServiceTestSuite))
}
