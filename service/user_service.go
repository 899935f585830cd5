package service

import (
	"context"

	"ridedispatch/pkg/logger"
	"ridedispatch/pkg/models"
	"ridedispatch/pkg/security"
	"ridedispatch/storage"
)

const minPasswordLength = 8

type UserService interface {
	Create(ctx context.Context, user *models.User, password string) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	ChangePassword(ctx context.Context, actor *security.Claims, id int64, password string) error
	Get(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, q models.ListQuery) (models.Page[*models.User], error)
	Delete(ctx context.Context, actor *security.Claims, id int64) error
}

type userService struct {
	stg    storage.IUserStorage
	tokens storage.ITokenStorage
	log    logger.ILogger
}

func NewUserService(stg storage.IStorage, log logger.ILogger) UserService {
	return &userService{
		stg:    stg.User(),
		tokens: stg.Token(),
		log:    log,
	}
}

func (s *userService) Create(ctx context.Context, user *models.User, password string) (*models.User, error) {
	if len(password) < minPasswordLength {
		return nil, newError(ErrBadRequest, "password must be at least %d characters", minPasswordLength)
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	if user.Role == "" {
		user.Role = models.RoleOperator
	}

	created, err := s.stg.Create(ctx, user)
	if err != nil {
		return nil, fromStorage(err, "user")
	}
	s.log.Info("user created", logger.Int64("id", created.ID), logger.String("role", created.Role))
	return created, nil
}

func (s *userService) Update(ctx context.Context, user *models.User) (*models.User, error) {
	updated, err := s.stg.Update(ctx, user)
	if err != nil {
		return nil, fromStorage(err, "user")
	}
	return updated, nil
}

func (s *userService) ChangePassword(ctx context.Context, actor *security.Claims, id int64, password string) error {
	if actor.Role != models.RoleAdmin && actor.UserID != id {
		return newError(ErrForbidden, "cannot change another user's password")
	}
	if len(password) < minPasswordLength {
		return newError(ErrBadRequest, "password must be at least %d characters", minPasswordLength)
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.stg.UpdatePassword(ctx, id, hash); err != nil {
		return fromStorage(err, "user")
	}
	s.log.Info("password changed, revoking sessions", logger.Int64("user_id", id))
	return s.tokens.DeleteByUser(ctx, id)
}

func (s *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.stg.GetByID(ctx, id)
	if err != nil {
		return nil, fromStorage(err, "user")
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, q models.ListQuery) (models.Page[*models.User], error) {
	q = q.Normalize()
	users, total, err := s.stg.List(ctx, q)
	if err != nil {
		return models.Page[*models.User]{}, err
	}
	return models.NewPage(users, total, q), nil
}

func (s *userService) Delete(ctx context.Context, actor *security.Claims, id int64) error {
	if actor.UserID == id {
		return newError(ErrBadRequest, "cannot delete yourself")
	}
	if err := s.stg.Delete(ctx, id); err != nil {
		return fromStorage(err, "user")
	}
	s.log.Info("user deleted", logger.Int64("id", id))
	return nil
}
