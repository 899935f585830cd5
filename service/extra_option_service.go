package service

import (
	"context"

	"ridedispatch/pkg/logger"
	"ridedispatch/pkg/models"
	"ridedispatch/storage"
)

type ExtraOptionService interface {
	Create(ctx context.Context, option *models.ExtraOption) (*models.ExtraOption, error)
	Update(ctx context.Context, option *models.ExtraOption) (*models.ExtraOption, error)
	Get(ctx context.Context, id int64) (*models.ExtraOption, error)
	List(ctx context.Context, q models.ListQuery) (models.Page[*models.ExtraOption], error)
	Delete(ctx context.Context, id int64) error
}

type extraOptionService struct {
	stg storage.IExtraOptionStorage
	log logger.ILogger
}

func NewExtraOptionService(stg storage.IStorage, log logger.ILogger) ExtraOptionService {
	return &extraOptionService{
		stg: stg.ExtraOption(),
		log: log,
	}
}

func (s *extraOptionService) Create(ctx context.Context, option *models.ExtraOption) (*models.ExtraOption, error) {
	created, err := s.stg.Create(ctx, option)
	if err != nil {
		return nil, fromStorage(err, "extra option")
	}
	return created, nil
}

func (s *extraOptionService) Update(ctx context.Context, option *models.ExtraOption) (*models.ExtraOption, error) {
	updated, err := s.stg.Update(ctx, option)
	if err != nil {
		return nil, fromStorage(err, "extra option")
	}
	return updated, nil
}

func (s *extraOptionService) Get(ctx context.Context, id int64) (*models.ExtraOption, error) {
	option, err := s.stg.GetByID(ctx, id)
	if err != nil {
		return nil, fromStorage(err, "extra option")
	}
	return option, nil
}

func (s *extraOptionService) List(ctx context.Context, q models.ListQuery) (models.Page[*models.ExtraOption], error) {
	q = q.Normalize()
	options, total, err := s.stg.List(ctx, q)
	if err != nil {
		return models.Page[*models.ExtraOption]{}, err
	}
	return models.NewPage(options, total, q), nil
}

func (s *extraOptionService) Delete(ctx context.Context, id int64) error {
	if err := s.stg.Delete(ctx, id); err != nil {
		return fromStorage(err, "extra option")
	}
	return nil
}
