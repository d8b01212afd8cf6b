package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jdvillegas/condo_mgmt_app/internal/apperrors"
	"github.com/jdvillegas/condo_mgmt_app/internal/core/domain"
	portsrepo "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/services"
	"github.com/jdvillegas/condo_mgmt_app/internal/dto"
)

type unitService struct {
	unitRepo portsrepo.UnitRepositoryFacade
	userRepo portsrepo.UserReader
	clock    func() time.Time
}

// NewUnitService creates a new unit administration service.
func NewUnitService(unitRepo portsrepo.UnitRepositoryFacade, userRepo portsrepo.UserReader) portssvc.UnitSvcFacade {
	return &unitService{unitRepo: unitRepo, userRepo: userRepo, clock: time.Now}
}

var _ portssvc.UnitSvcFacade = (*unitService)(nil)

func (s *unitService) CreateUnit(ctx context.Context, req dto.CreateUnitRequest, creatorUserID string) (*domain.Unit, error) {
	if req.ShareFraction.LessThanOrEqual(decimal.Zero) || req.ShareFraction.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("%w: share fraction %s", apperrors.ErrValidation, req.ShareFraction)
	}
	if req.OwnerID != nil {
		if _, err := s.userRepo.FindUserByID(ctx, *req.OwnerID); err != nil {
			return nil, fmt.Errorf("failed to resolve owner: %w", err)
		}
	}

	now := s.clock()
	unit := domain.Unit{
		UnitID:        uuid.NewString(),
		Floor:         req.Floor,
		Number:        req.Number,
		ShareFraction: req.ShareFraction,
		OwnerID:       req.OwnerID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.unitRepo.SaveUnit(ctx, unit); err != nil {
		return nil, fmt.Errorf("failed to create unit: %w", err)
	}
	return &unit, nil
}

func (s *unitService) GetUnit(ctx context.Context, unitID string) (*domain.Unit, error) {
	return s.unitRepo.FindUnitByID(ctx, unitID)
}

func (s *unitService) ListUnits(ctx context.Context) ([]domain.Unit, error) {
	return s.unitRepo.ListUnits(ctx)
}

// UpdateUnit applies the non-nil fields of the request. Reassigning the owner
// only affects future dues; already-issued records keep the owner they were
// billed to.
func (s *unitService) UpdateUnit(ctx context.Context, unitID string, req dto.UpdateUnitRequest, updaterUserID string) (*domain.Unit, error) {
	unit, err := s.unitRepo.FindUnitByID(ctx, unitID)
	if err != nil {
		return nil, err
	}

	if req.Floor != nil {
		unit.Floor = *req.Floor
	}
	if req.Number != nil {
		unit.Number = *req.Number
	}
	if req.ShareFraction != nil {
		if req.ShareFraction.LessThanOrEqual(decimal.Zero) || req.ShareFraction.GreaterThan(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("%w: share fraction %s", apperrors.ErrValidation, *req.ShareFraction)
		}
		unit.ShareFraction = *req.ShareFraction
	}
	if req.OwnerID != nil {
		if *req.OwnerID == "" {
			unit.OwnerID = nil
		} else {
			if _, err := s.userRepo.FindUserByID(ctx, *req.OwnerID); err != nil {
				return nil, fmt.Errorf("failed to resolve owner: %w", err)
			}
			unit.OwnerID = req.OwnerID
		}
	}

	unit.LastUpdatedAt = s.clock()
	unit.LastUpdatedBy = updaterUserID

	if err := s.unitRepo.UpdateUnit(ctx, *unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// DeleteUnit removes a unit. The repository surfaces ErrHasDependents when
// dues still reference it.
func (s *unitService) DeleteUnit(ctx context.Context, unitID string) error {
	return s.unitRepo.DeleteUnit(ctx, unitID)
}
