package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/adminvote/internal/common"
	"github.com/dmitrijs2005/adminvote/internal/cryptox"
	"github.com/dmitrijs2005/adminvote/internal/dbx"
	"github.com/dmitrijs2005/adminvote/internal/server/auth"
	"github.com/dmitrijs2005/adminvote/internal/server/config"
	"github.com/dmitrijs2005/adminvote/internal/server/models"
	usersrepo "github.com/dmitrijs2005/adminvote/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

var cheapHash = cryptox.Params{Memory: 1024, Time: 1, Threads: 1, SaltLen: 16, KeyLen: 32}

type fakeUsersRepo struct {
	byName  map[string]*models.User
	getErr  error
	created *models.User
	nextID  int64

	createErr error
	listOut   []*models.User
	listErr   error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byName: map[string]*models.User{}, nextID: 1}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = f.nextID
	f.nextID++
	f.byName[u.UserName] = u
	f.created = u
	return u, nil
}

func (f *fakeUsersRepo) GetByUserName(_ context.Context, name string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range f.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) List(context.Context) ([]*models.User, error) {
	return f.listOut, f.listErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository          { return m.u }

func newUserService(t *testing.T, repo *fakeUsersRepo) (*UserService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{SecretKey: "k", AccessTokenValidityDuration: time.Hour}
	s := NewUserService(db, &fakeRepoManager{u: repo}, cfg)
	s.hashParams = cheapHash
	return s, mock
}

// --- Register ---

func TestRegister_Success(t *testing.T) {
	repo := newFakeUsersRepo()
	s, mock := newUserService(t, repo)
	mock.ExpectBegin()
	mock.ExpectCommit()

	u, err := s.Register(context.Background(), "Grafikart", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "Grafikart", u.UserName)
	ok, err := cryptox.VerifyPassword(u.PasswordHash, []byte("correct horse"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_Duplicate(t *testing.T) {
	repo := newFakeUsersRepo()
	repo.byName["Grafikart"] = &models.User{ID: 1, UserName: "Grafikart"}
	s, mock := newUserService(t, repo)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := s.Register(context.Background(), "Grafikart", "correct horse")
	assert.ErrorIs(t, err, ErrUserExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_CreateError(t *testing.T) {
	repo := newFakeUsersRepo()
	repo.createErr = errors.New("db down")
	s, mock := newUserService(t, repo)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := s.Register(context.Background(), "alice", "correct horse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error creating user")
}

func TestRegister_ConcurrentDuplicate(t *testing.T) {
	repo := newFakeUsersRepo()
	// The lookup sees no user; the insert then loses the race on the unique index.
	repo.createErr = common.ErrorAlreadyExists
	s, mock := newUserService(t, repo)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := s.Register(context.Background(), "Grafikart", "correct horse")
	assert.ErrorIs(t, err, ErrUserExists)
	assert.NotContains(t, err.Error(), "error creating user")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_Validation(t *testing.T) {
	s, _ := newUserService(t, newFakeUsersRepo())

	tests := []struct {
		name     string
		userName string
		password string
	}{
		{"empty name", "", "correct horse"},
		{"blank name", "   ", "correct horse"},
		{"short password", "alice", "short"},
		{"long password", "alice", strings.Repeat("x", 1025)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(context.Background(), tt.userName, tt.password)
			assert.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

// --- Login ---

func seedUser(t *testing.T, repo *fakeUsersRepo, id int64, name, password string) {
	t.Helper()
	hash, err := cryptox.HashPassword([]byte(password), cheapHash)
	require.NoError(t, err)
	repo.byName[name] = &models.User{ID: id, UserName: name, PasswordHash: hash}
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeUsersRepo()
	seedUser(t, repo, 1, "Grafikart", "correct horse")
	s, _ := newUserService(t, repo)

	tok, err := s.Login(context.Background(), "Grafikart", "correct horse")
	require.NoError(t, err)

	claims, err := auth.ParseToken(tok, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "Grafikart", claims.Username)
}

func TestLogin_Failures(t *testing.T) {
	repo := newFakeUsersRepo()
	seedUser(t, repo, 1, "Grafikart", "correct horse")
	s, _ := newUserService(t, repo)

	_, err := s.Login(context.Background(), "Grafikart", "wrong password")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = s.Login(context.Background(), "ghost", "correct horse")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	repo.byName["broken"] = &models.User{ID: 2, UserName: "broken", PasswordHash: []byte("not-a-hash")}
	_, err = s.Login(context.Background(), "broken", "correct horse")
	assert.ErrorIs(t, err, common.ErrorInternal)

	repo.getErr = errors.New("db down")
	_, err = s.Login(context.Background(), "Grafikart", "correct horse")
	assert.ErrorIs(t, err, common.ErrorInternal)
}

// --- reads ---

func TestGetByIDAndList(t *testing.T) {
	repo := newFakeUsersRepo()
	seedUser(t, repo, 3, "bob", "correct horse")
	repo.listOut = []*models.User{{ID: 3, UserName: "bob"}}
	s, _ := newUserService(t, repo)

	u, err := s.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "bob", u.UserName)

	_, err = s.GetByID(context.Background(), 4)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	repo.listErr = errors.New("db down")
	_, err = s.List(context.Background())
	assert.Error(t, err)
}
