package service

import (
	"context"

	"ridedispatch/pkg/logger"
	"ridedispatch/pkg/models"
	"ridedispatch/storage"
)

type DriverService interface {
	Create(ctx context.Context, driver *models.Driver) (*models.Driver, error)
	Update(ctx context.Context, driver *models.Driver) (*models.Driver, error)
	Get(ctx context.Context, id int64) (*models.Driver, error)
	List(ctx context.Context, q models.ListQuery, active *bool) (models.Page[*models.Driver], error)
	Delete(ctx context.Context, id int64) error
}

type driverService struct {
	stg storage.IDriverStorage
	log logger.ILogger
}

func NewDriverService(stg storage.IStorage, log logger.ILogger) DriverService {
	return &driverService{
		stg: stg.Driver(),
		log: log,
	}
}

func (s *driverService) Create(ctx context.Context, driver *models.Driver) (*models.Driver, error) {
	created, err := s.stg.Create(ctx, driver)
	if err != nil {
		return nil, fromStorage(err, "driver")
	}
	return created, nil
}

func (s *driverService) Update(ctx context.Context, driver *models.Driver) (*models.Driver, error) {
	updated, err := s.stg.Update(ctx, driver)
	if err != nil {
		return nil, fromStorage(err, "driver")
	}
	return updated, nil
}

func (s *driverService) Get(ctx context.Context, id int64) (*models.Driver, error) {
	driver, err := s.stg.GetByID(ctx, id)
	if err != nil {
		return nil, fromStorage(err, "driver")
	}
	return driver, nil
}

func (s *driverService) List(ctx context.Context, q models.ListQuery, active *bool) (models.Page[*models.Driver], error) {
	q = q.Normalize()
	drivers, total, err := s.stg.List(ctx, q, active)
	if err != nil {
		return models.Page[*models.Driver]{}, err
	}
	return models.NewPage(drivers, total, q), nil
}

func (s *driverService) Delete(ctx context.Context, id int64) error {
	if err := s.stg.Delete(ctx, id); err != nil {
		return fromStorage(err, "driver")
	}
	s.log.Info("driver deleted", logger.Int64("id", id))
	return nil
}
