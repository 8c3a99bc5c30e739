// Package services contains server-side business logic. UserService handles
// registration, login with access-token issuance, and user listing.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/adminvote/internal/common"
	"github.com/dmitrijs2005/adminvote/internal/cryptox"
	"github.com/dmitrijs2005/adminvote/internal/dbx"
	"github.com/dmitrijs2005/adminvote/internal/server/auth"
	"github.com/dmitrijs2005/adminvote/internal/server/config"
	"github.com/dmitrijs2005/adminvote/internal/server/models"
	"github.com/dmitrijs2005/adminvote/internal/server/repositories/repomanager"
)

const (
	maxUserNameLength = 64
	minPasswordLength = 8
	maxPasswordLength = 1024
)

// ErrUserExists is returned by Register for a taken user name.
var ErrUserExists = errors.New("user already exists")

// UserService provides account operations:
// - Register: create users
// - Login: verify credentials and mint an access token
// - GetByID / List: read users for identity lookup and admin views
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	hashParams                  cryptox.Params
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		hashParams:                  cryptox.DefaultParams,
	}
}

// Register validates the credentials and stores a new user. The existence
// check and the insert share one transaction.
func (s *UserService) Register(ctx context.Context, userName, password string) (*models.User, error) {
	if err := validateCredentials(userName, password); err != nil {
		return nil, err
	}

	hash, err := cryptox.HashPassword([]byte(password), s.hashParams)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var created *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetByUserName(ctx, userName)
		switch {
		case err == nil:
			return ErrUserExists
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}

		created, err = repo.Create(ctx, &models.User{UserName: userName, PasswordHash: hash})
		return err
	})
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			return nil, err
		}
		// A concurrent registration may win between the lookup and the insert.
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

// Login checks the password and returns a signed access token. Unknown users
// and wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, userName, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	ok, err := cryptox.VerifyPassword(user.PasswordHash, []byte(password))
	if err != nil {
		return "", common.ErrorInternal
	}
	if !ok {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// GetByID loads a single user; it backs identity lookup.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// List returns all users ordered by id.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}

func validateCredentials(userName, password string) error {
	if strings.TrimSpace(userName) == "" || len(userName) > maxUserNameLength {
		return fmt.Errorf("%w: user name must be 1-%d characters", common.ErrorValidation, maxUserNameLength)
	}
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return fmt.Errorf("%w: password must be %d-%d bytes", common.ErrorValidation, minPasswordLength, maxPasswordLength)
	}
	return nil
}
