package service

import (
	"context"

	"ridedispatch/pkg/logger"
	"ridedispatch/pkg/models"
	"ridedispatch/storage"
)

type ClientService interface {
	Create(ctx context.Context, client *models.Client) (*models.Client, error)
	Update(ctx context.Context, client *models.Client) (*models.Client, error)
	Get(ctx context.Context, id int64) (*models.Client, error)
	List(ctx context.Context, q models.ListQuery) (models.Page[*models.Client], error)
	Delete(ctx context.Context, id int64) error
}

type clientService struct {
	stg storage.IClientStorage
	log logger.ILogger
}

func NewClientService(stg storage.IStorage, log logger.ILogger) ClientService {
	return &clientService{
		stg: stg.Client(),
		log: log,
	}
}

func (s *clientService) Create(ctx context.Context, client *models.Client) (*models.Client, error) {
	created, err := s.stg.Create(ctx, client)
	if err != nil {
		return nil, fromStorage(err, "client")
	}
	return created, nil
}

func (s *clientService) Update(ctx context.Context, client *models.Client) (*models.Client, error) {
	updated, err := s.stg.Update(ctx, client)
	if err != nil {
		return nil, fromStorage(err, "client")
	}
	return updated, nil
}

func (s *clientService) Get(ctx context.Context, id int64) (*models.Client, error) {
	client, err := s.stg.GetByID(ctx, id)
	if err != nil {
		return nil, fromStorage(err, "client")
	}
	return client, nil
}

func (s *clientService) List(ctx context.Context, q models.ListQuery) (models.Page[*models.Client], error) {
	q = q.Normalize()
	clients, total, err := s.stg.List(ctx, q)
	if err != nil {
		return models.Page[*models.Client]{}, err
	}
	return models.NewPage(clients, total, q), nil
}

func (s *clientService) Delete(ctx context.Context, id int64) error {
	if err := s.stg.Delete(ctx, id); err != nil {
		return fromStorage(err, "client")
	}
	s.log.Info("client deleted", logger.Int64("id", id))
	return nil
}
