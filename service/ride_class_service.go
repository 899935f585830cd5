package service

import (
	"context"

	"ridedispatch/pkg/logger"
	"ridedispatch/pkg/models"
	"ridedispatch/storage"
)

type RideClassService interface {
	Create(ctx context.Context, class *models.RideClass) (*models.RideClass, error)
	Update(ctx context.Context, class *models.RideClass) (*models.RideClass, error)
	Get(ctx context.Context, id int64) (*models.RideClass, error)
	List(ctx context.Context, q models.ListQuery) (models.Page[*models.RideClass], error)
	Delete(ctx context.Context, id int64) error
}

type rideClassService struct {
	stg storage.IRideClassStorage
	log logger.ILogger
}

func NewRideClassService(stg storage.IStorage, log logger.ILogger) RideClassService {
	return &rideClassService{
		stg: stg.RideClass(),
		log: log,
	}
}

func validateCoefficient(class *models.RideClass) error {
	if !class.Coefficient.IsPositive() {
		return newError(ErrBadRequest, "coefficient must be greater than zero")
	}
	return nil
}

func (s *rideClassService) Create(ctx context.Context, class *models.RideClass) (*models.RideClass, error) {
	if err := validateCoefficient(class); err != nil {
		return nil, err
	}
	created, err := s.stg.Create(ctx, class)
	if err != nil {
		return nil, fromStorage(err, "ride class")
	}
	s.log.Info("ride class created", logger.Int64("id", created.ID), logger.String("name", created.Name))
	return created, nil
}

func (s *rideClassService) Update(ctx context.Context, class *models.RideClass) (*models.RideClass, error) {
	if err := validateCoefficient(class); err != nil {
		return nil, err
	}
	updated, err := s.stg.Update(ctx, class)
	if err != nil {
		return nil, fromStorage(err, "ride class")
	}
	return updated, nil
}

func (s *rideClassService) Get(ctx context.Context, id int64) (*models.RideClass, error) {
	class, err := s.stg.GetByID(ctx, id)
	if err != nil {
		return nil, fromStorage(err, "ride class")
	}
	return class, nil
}

func (s *rideClassService) List(ctx context.Context, q models.ListQuery) (models.Page[*models.RideClass], error) {
	q = q.Normalize()
	classes, total, err := s.stg.List(ctx, q)
	if err != nil {
		return models.Page[*models.RideClass]{}, err
	}
	return models.NewPage(classes, total, q), nil
}

func (s *rideClassService) Delete(ctx context.Context, id int64) error {
	if err := s.stg.Delete(ctx, id); err != nil {
		return fromStorage(err, "ride class")
	}
	return nil
}
