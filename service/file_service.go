package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"ridedispatch/pkg/logger"
	"ridedispatch/pkg/models"
	"ridedispatch/storage"
)

type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
	UploadedBy  int64
}

type FileService interface {
	Upload(ctx context.Context, in Upload) (*models.FileMetadata, error)
	Get(ctx context.Context, id uuid.UUID) (*models.FileMetadata, error)
	Open(ctx context.Context, id uuid.UUID) (*models.FileMetadata, io.ReadCloser, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type fileService struct {
	files   storage.IFileStorage
	objects storage.IObjectStorage
	maxSize int64
	log     logger.ILogger
}

func NewFileService(stg storage.IStorage, objects storage.IObjectStorage, maxSize int64, log logger.ILogger) FileService {
	return &fileService{
		files:   stg.File(),
		objects: objects,
		maxSize: maxSize,
		log:     log,
	}
}

func (s *fileService) Upload(ctx context.Context, in Upload) (*models.FileMetadata, error) {
	if s.objects == nil {
		return nil, newError(ErrUnavailable, "file storage is not configured")
	}
	if in.Size <= 0 {
		return nil, newError(ErrBadRequest, "file is empty")
	}
	if s.maxSize > 0 && in.Size > s.maxSize {
		return nil, newError(ErrBadRequest, "file exceeds %d bytes", s.maxSize)
	}
	if in.ContentType == "" {
		in.ContentType = "application/octet-stream"
	}

	id := uuid.New()
	meta := &models.FileMetadata{
		ID:           id,
		Key:          "uploads/" + id.String(),
		OriginalName: in.Name,
		MimeType:     in.ContentType,
		Size:         in.Size,
	}
	if in.UploadedBy != 0 {
		meta.UploadedBy = &in.UploadedBy
	}

	if err := s.objects.Put(ctx, meta.Key, in.Body, in.Size, in.ContentType); err != nil {
		return nil, err
	}
	created, err := s.files.Create(ctx, meta)
	if err != nil {
		if delErr := s.objects.Delete(ctx, meta.Key); delErr != nil {
			s.log.Warning("failed to remove orphaned object", logger.String("key", meta.Key), logger.Error(delErr))
		}
		return nil, fromStorage(err, "file")
	}
	s.log.Info("file uploaded", logger.String("id", id.String()), logger.Int64("size", in.Size))
	return created, nil
}

func (s *fileService) Get(ctx context.Context, id uuid.UUID) (*models.FileMetadata, error) {
	meta, err := s.files.GetByID(ctx, id)
	if err != nil {
		return nil, fromStorage(err, "file")
	}
	return meta, nil
}

func (s *fileService) Open(ctx context.Context, id uuid.UUID) (*models.FileMetadata, io.ReadCloser, error) {
	if s.objects == nil {
		return nil, nil, newError(ErrUnavailable, "file storage is not configured")
	}
	meta, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	body, err := s.objects.Get(ctx, meta.Key)
	if err != nil {
		return nil, nil, fromStorage(err, "file")
	}
	return meta, body, nil
}

func (s *fileService) Delete(ctx context.Context, id uuid.UUID) error {
	meta, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if s.objects != nil {
		if err := s.objects.Delete(ctx, meta.Key); err != nil {
			return err
		}
	}
	if err := s.files.Delete(ctx, id); err != nil {
		return fromStorage(err, "file")
	}
	return nil
}
