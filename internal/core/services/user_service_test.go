package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/jdvillegas/condo_mgmt_app/internal/apperrors"
	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	portssvc "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/services"
	"github.com/jdvillegas/condo_mgmt_app/internal/core/services"
	"github.com/jdvillegas/condo_mgmt_app/internal/dto"
	"github.com/jdvillegas/condo_mgmt_app/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

func (suite *UserServiceTestSuite) TestCreateUser_HashesPassword() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	req := dto.CreateUserRequest{
		Name:     "Maria Perez",
		Email:    "maria@example.com",
		Password: "a-strong-password",
		Role:     domain.RoleOwner,
	}

	suite.mockRepo.On("FindUserByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == req.Email && u.Role == domain.RoleOwner &&
			u.PasswordHash != req.Password &&
			utils.CheckPasswordHash(req.Password, u.PasswordHash) &&
			u.LegacyBalance.IsZero() &&
			u.CreatedBy == creatorID
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, creatorID)

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.NotEqual(req.Password, user.PasswordHash)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Maria Perez",
		Email:    "maria@example.com",
		Password: "a-strong-password",
		Role:     domain.RoleOwner,
	}
	existing := &domain.User{UserID: uuid.NewString(), Email: req.Email}

	suite.mockRepo.On("FindUserByEmail", ctx, req.Email).Return(existing, nil).Once()

	user, err := suite.service.CreateUser(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser")
}

func (suite *UserServiceTestSuite) TestUpdateUser_EmailCollision() {
	ctx := context.Background()
	target := &domain.User{UserID: uuid.NewString(), Email: "old@example.com"}
	newEmail := "taken@example.com"
	other := &domain.User{UserID: uuid.NewString(), Email: newEmail}
	req := dto.UpdateUserRequest{Email: &newEmail}

	suite.mockRepo.On("FindUserByID", ctx, target.UserID).Return(target, nil).Once()
	suite.mockRepo.On("FindUserByEmail", ctx, newEmail).Return(other, nil).Once()

	user, err := suite.service.UpdateUser(ctx, target.UserID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateUser")
}

func (suite *UserServiceTestSuite) TestUpdateUser_AppliesPartialFields() {
	ctx := context.Background()
	target := &domain.User{UserID: uuid.NewString(), Name: "Maria", Email: "maria@example.com"}
	newPhone := "+58-412-5551234"
	req := dto.UpdateUserRequest{Phone: &newPhone}

	suite.mockRepo.On("FindUserByID", ctx, target.UserID).Return(target, nil).Once()
	suite.mockRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Phone == newPhone && u.Name == "Maria" && u.Email == "maria@example.com"
	})).Return(nil).Once()

	user, err := suite.service.UpdateUser(ctx, target.UserID, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(newPhone, user.Phone)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
