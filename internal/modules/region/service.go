package region

import (
	"context"
	"fmt"
	"strings"
	"time"

	"reclamation/internal/domain"
	"reclamation/internal/pkg/sanitize"
	"reclamation/internal/pkg/validator"
	"reclamation/internal/repository"
)

type Service struct {
	regions RegionRepository
	users   UserLister
}

func NewService(regions RegionRepository, users UserLister) *Service {
	return &Service{regions: regions, users: users}
}

func (s *Service) Create(ctx context.Context, req RegionRequest) (*domain.Region, error) {
	region := &domain.Region{}
	if err := applyRequest(region, req); err != nil {
		return nil, err
	}
	if err := s.regions.Create(ctx, region); err != nil {
		return nil, err
	}
	return region, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Region, error) {
	region, err := s.regions.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return region, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Region, error) {
	return s.regions.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, req RegionRequest) (*domain.Region, error) {
	region, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyRequest(region, req); err != nil {
		return nil, err
	}
	if err := s.regions.Update(ctx, region); err != nil {
		return nil, err
	}
	return region, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.regions.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Agents lists the agents assigned to a region.
func (s *Service) Agents(ctx context.Context, id int64) ([]domain.User, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.users.List(ctx, repository.UserFilter{Role: domain.RoleAgent, RegionID: id})
}

func applyRequest(region *domain.Region, req RegionRequest) error {
	name := sanitize.Text(req.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}

	start, err := validator.ParseDate(req.DateDebut)
	if err != nil {
		return fmt.Errorf("%w: date_debut is not a valid date", ErrValidation)
	}

	var end *time.Time
	if req.DateFin != nil && strings.TrimSpace(*req.DateFin) != "" {
		d, err := validator.ParseDate(*req.DateFin)
		if err != nil {
			return fmt.Errorf("%w: date_fin is not a valid date", ErrValidation)
		}
		if d.Before(start) {
			return fmt.Errorf("%w: date_fin must not precede date_debut", ErrValidation)
		}
		end = &d
	}

	region.Name = name
	region.DateDebut = start
	region.DateFin = end
	return nil
}
