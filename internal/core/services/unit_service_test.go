package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/jdvillegas/condo_mgmt_app/internal/apperrors"
	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	portssvc "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/services"
	"github.com/jdvillegas/condo_mgmt_app/internal/core/services"
	"github.com/jdvillegas/condo_mgmt_app/internal/dto"
)

type UnitServiceTestSuite struct {
	suite.Suite
	mockUnitRepo *MockUnitRepository
	mockUserRepo *MockUserRepository
	service      portssvc.UnitSvcFacade
}

func (suite *UnitServiceTestSuite) SetupTest() {
	suite.mockUnitRepo = new(MockUnitRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUnitService(suite.mockUnitRepo, suite.mockUserRepo)
}

func (suite *UnitServiceTestSuite) TestCreateUnit_Success() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	creatorID := uuid.NewString()
	req := dto.CreateUnitRequest{
		Floor:         "3",
		Number:        "3-A",
		ShareFraction: decimal.RequireFromString("2.5"),
		OwnerID:       &ownerID,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, ownerID).Return(&domain.User{UserID: ownerID}, nil).Once()
	suite.mockUnitRepo.On("SaveUnit", ctx, mock.MatchedBy(func(u domain.Unit) bool {
		return u.Number == "3-A" && u.ShareFraction.Equal(req.ShareFraction) &&
			u.OwnerID != nil && *u.OwnerID == ownerID && u.CreatedBy == creatorID
	})).Return(nil).Once()

	unit, err := suite.service.CreateUnit(ctx, req, creatorID)

	suite.Require().NoError(err)
	suite.NotEmpty(unit.UnitID)
	suite.mockUnitRepo.AssertExpectations(suite.T())
}

func (suite *UnitServiceTestSuite) TestCreateUnit_ShareOutOfRange() {
	ctx := context.Background()
	req := dto.CreateUnitRequest{
		Floor:         "3",
		Number:        "3-A",
		ShareFraction: decimal.RequireFromString("101"),
	}

	unit, err := suite.service.CreateUnit(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(unit)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUnitRepo.AssertNotCalled(suite.T(), "SaveUnit")
}

func (suite *UnitServiceTestSuite) TestCreateUnit_UnknownOwner() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	req := dto.CreateUnitRequest{
		Floor:         "3",
		Number:        "3-A",
		ShareFraction: decimal.RequireFromString("2.5"),
		OwnerID:       &ownerID,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, ownerID).Return(nil, apperrors.ErrNotFound).Once()

	unit, err := suite.service.CreateUnit(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(unit)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *UnitServiceTestSuite) TestUpdateUnit_ClearOwnerWithEmptyString() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	existing := &domain.Unit{
		UnitID:        uuid.NewString(),
		Floor:         "3",
		Number:        "3-A",
		ShareFraction: decimal.RequireFromString("2.5"),
		OwnerID:       &ownerID,
	}
	empty := ""
	req := dto.UpdateUnitRequest{OwnerID: &empty}

	suite.mockUnitRepo.On("FindUnitByID", ctx, existing.UnitID).Return(existing, nil).Once()
	suite.mockUnitRepo.On("UpdateUnit", ctx, mock.MatchedBy(func(u domain.Unit) bool {
		return u.OwnerID == nil
	})).Return(nil).Once()

	unit, err := suite.service.UpdateUnit(ctx, existing.UnitID, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Nil(unit.OwnerID)
	suite.mockUnitRepo.AssertExpectations(suite.T())
}

func (suite *UnitServiceTestSuite) TestDeleteUnit_BlockedByDues() {
	ctx := context.Background()
	unitID := uuid.NewString()

	suite.mockUnitRepo.On("DeleteUnit", ctx, unitID).Return(apperrors.ErrHasDependents).Once()

	err := suite.service.DeleteUnit(ctx, unitID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrHasDependents)
}

func TestUnitServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UnitServiceTestSuite))
}
