package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"ridedispatch/pkg/logger"
	"ridedispatch/pkg/models"
	"ridedispatch/storage"
)

type fileRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewFileRepo(db *pgxpool.Pool, log logger.ILogger) storage.IFileStorage {
	return &fileRepo{db: db, log: log}
}

func (r *fileRepo) Create(ctx context.Context, file *models.FileMetadata) (*models.FileMetadata, error) {
	query := `
		INSERT INTO files (id, key, original_name, mime_type, size, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, file.ID, file.Key, file.OriginalName, file.MimeType, file.Size, file.UploadedBy).Scan(&file.CreatedAt)
	if err != nil {
		r.log.Error("failed to create file metadata", logger.String("key", file.Key), logger.Error(err))
		return nil, mapError(err)
	}
	return file, nil
}

func (r *fileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.FileMetadata, error) {
	var f models.FileMetadata
	query := `SELECT id, key, original_name, mime_type, size, uploaded_by, created_at FROM files WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&f.ID, &f.Key, &f.OriginalName, &f.MimeType, &f.Size, &f.UploadedBy, &f.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &f, nil
}

func (r *fileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
