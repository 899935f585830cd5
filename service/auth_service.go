package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"ridedispatch/pkg/logger"
	"ridedispatch/pkg/models"
	"ridedispatch/pkg/security"
	"ridedispatch/storage"
)

type AuthResult struct {
	User   *models.User
	Tokens *security.TokenPair
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	// Logout revokes the session matching refreshToken, or every session of userID
	// when the token identifies none.
	Logout(ctx context.Context, userID int64, refreshToken string) error
	Authenticate(accessToken string) (*security.Claims, error)
	Me(ctx context.Context, userID int64) (*models.User, error)
	EnsureAdmin(ctx context.Context, username, password string) error
}

type authService struct {
	users       storage.IUserStorage
	tokens      storage.ITokenStorage
	jwt         *security.JWTManager
	maxSessions int
	now         func() time.Time
	log         logger.ILogger
}

func NewAuthService(stg storage.IStorage, jwt *security.JWTManager, maxSessions int, log logger.ILogger) AuthService {
	if maxSessions < 1 {
		maxSessions = 1
	}
	return &authService{
		users:       stg.User(),
		tokens:      stg.Token(),
		jwt:         jwt,
		maxSessions: maxSessions,
		now:         time.Now,
		log:         log,
	}
}

var errInvalidCredentials = newError(ErrUnauthorized, "invalid credentials")

func (s *authService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			authLogins.WithLabelValues("rejected").Inc()
			s.log.Warning("login failed: unknown user", logger.String("username", username))
			return nil, errInvalidCredentials
		}
		return nil, fromStorage(err, "user")
	}
	if !security.CheckPassword(user.PasswordHash, password) {
		authLogins.WithLabelValues("rejected").Inc()
		s.log.Warning("login failed: wrong password", logger.Int64("user_id", user.ID))
		return nil, errInvalidCredentials
	}

	pair, err := s.jwt.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	hash, err := security.HashToken(pair.RefreshToken)
	if err != nil {
		return nil, err
	}
	if err := s.storeSession(ctx, user.ID, hash, pair.RefreshExpiresAt); err != nil {
		return nil, err
	}

	authLogins.WithLabelValues("ok").Inc()
	s.log.Info("user logged in", logger.Int64("user_id", user.ID))
	return &AuthResult{User: user, Tokens: pair}, nil
}

// storeSession persists a refresh hash without letting the user exceed maxSessions rows.
// Expired rows are dropped first. At the limit the oldest live row is overwritten.
func (s *authService) storeSession(ctx context.Context, userID int64, hash string, expiresAt time.Time) error {
	live, err := s.liveSessions(ctx, userID)
	if err != nil {
		return err
	}

	if len(live) < s.maxSessions {
		_, err := s.tokens.Create(ctx, &models.Token{UserID: userID, Hash: hash, ExpiresAt: expiresAt})
		return err
	}

	excess := len(live) - s.maxSessions
	for _, t := range live[:excess] {
		if err := s.tokens.Delete(ctx, t.ID); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}
	oldest := live[excess]
	s.log.Debug("session limit reached, overwriting oldest", logger.Int64("user_id", userID), logger.Int64("token_id", oldest.ID))
	return s.tokens.Replace(ctx, oldest.ID, hash, expiresAt)
}

// liveSessions returns unexpired sessions oldest first, deleting expired ones on the way.
func (s *authService) liveSessions(ctx context.Context, userID int64) ([]*models.Token, error) {
	all, err := s.tokens.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	live := make([]*models.Token, 0, len(all))
	for _, t := range all {
		if !t.ExpiresAt.After(now) {
			if err := s.tokens.Delete(ctx, t.ID); err != nil && !errors.Is(err, storage.ErrNotFound) {
				return nil, err
			}
			continue
		}
		live = append(live, t)
	}
	sort.SliceStable(live, func(i, j int) bool {
		if live[i].UpdatedAt.Equal(live[j].UpdatedAt) {
			return live[i].ID < live[j].ID
		}
		return live[i].UpdatedAt.Before(live[j].UpdatedAt)
	})
	return live, nil
}

func (s *authService) findSession(ctx context.Context, userID int64, refreshToken string) (*models.Token, error) {
	live, err := s.liveSessions(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, t := range live {
		if security.CheckToken(t.Hash, refreshToken) {
			return t, nil
		}
	}
	return nil, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if refreshToken == "" {
		authRefreshes.WithLabelValues("rejected").Inc()
		return nil, newError(ErrUnauthorized, "refresh token required")
	}
	claims, err := s.jwt.ValidateRefresh(refreshToken)
	if err != nil {
		authRefreshes.WithLabelValues("rejected").Inc()
		return nil, newError(ErrUnauthorized, "invalid refresh token")
	}

	session, err := s.findSession(ctx, claims.UserID, refreshToken)
	if err != nil {
		return nil, err
	}
	if session == nil {
		authRefreshes.WithLabelValues("rejected").Inc()
		s.log.Warning("refresh token not recognised", logger.Int64("user_id", claims.UserID))
		return nil, newError(ErrUnauthorized, "refresh token revoked")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, newError(ErrUnauthorized, "user no longer exists")
		}
		return nil, fromStorage(err, "user")
	}

	pair, err := s.jwt.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	hash, err := security.HashToken(pair.RefreshToken)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Replace(ctx, session.ID, hash, pair.RefreshExpiresAt); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, newError(ErrUnauthorized, "refresh token revoked")
		}
		return nil, err
	}

	authRefreshes.WithLabelValues("ok").Inc()
	return &AuthResult{User: user, Tokens: pair}, nil
}

func (s *authService) Logout(ctx context.Context, userID int64, refreshToken string) error {
	if refreshToken != "" {
		if claims, err := s.jwt.ValidateRefresh(refreshToken); err == nil {
			session, err := s.findSession(ctx, claims.UserID, refreshToken)
			if err != nil {
				return err
			}
			if session != nil {
				s.log.Info("session revoked", logger.Int64("user_id", claims.UserID), logger.Int64("token_id", session.ID))
				err := s.tokens.Delete(ctx, session.ID)
				if errors.Is(err, storage.ErrNotFound) {
					return nil
				}
				return err
			}
		}
	}

	if userID == 0 {
		return newError(ErrUnauthorized, "no session to revoke")
	}
	s.log.Info("all sessions revoked", logger.Int64("user_id", userID))
	return s.tokens.DeleteByUser(ctx, userID)
}

func (s *authService) Authenticate(accessToken string) (*security.Claims, error) {
	claims, err := s.jwt.ValidateAccess(accessToken)
	if err != nil {
		return nil, newError(ErrUnauthorized, "invalid or expired access token")
	}
	return claims, nil
}

func (s *authService) Me(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fromStorage(err, "user")
	}
	return user, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = s.users.Create(ctx, &models.User{
		Username:     username,
		FullName:     username,
		Role:         models.RoleAdmin,
		PasswordHash: hash,
	})
	if err != nil {
		return err
	}
	s.log.Info("bootstrap admin created", logger.String("username", username))
	return nil
}
