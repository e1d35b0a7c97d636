package services

import (
	"context"
	"fmt"

	"github.com/Danchouvzv/nevsluh/models"
	"github.com/Danchouvzv/nevsluh/pkg"
	"github.com/Danchouvzv/nevsluh/repository"
)

// LocationService, yer kaydı iş mantığı interface'i.
type LocationService interface {
	Create(ctx context.Context, req *models.CreateLocationRequest) (*models.Location, error)
	GetByID(ctx context.Context, id string) (*models.Location, error)
}

type locationService struct {
	locationRepo repository.LocationRepository
}

// NewLocationService, constructor.
func NewLocationService(locationRepo repository.LocationRepository) LocationService {
	return &locationService{locationRepo: locationRepo}
}

func (s *locationService) Create(ctx context.Context, req *models.CreateLocationRequest) (*models.Location, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	location := &models.Location{
		Name: req.Name,
		Lat:  req.Lat,
		Lng:  req.Lng,
	}

	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	return location, nil
}

func (s *locationService) GetByID(ctx context.Context, id string) (*models.Location, error) {
	return s.locationRepo.GetByID(ctx, id)
}
