package usecase_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"
	"bookstore/internal/token"
	"bookstore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepoMock) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *UserRepoMock) IncrementTokenVersion(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func hashed(t *testing.T, plain string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(b)
}

func newAuthUC(users *UserRepoMock) (*usecase.AuthUsecase, *token.Manager) {
	tm := token.NewManager("test-secret", 8*time.Hour)
	return usecase.NewAuthUsecase(users, usecase.NewBcryptPasswordVerifier(), tm, fixedClock{time.Now()}, nopLogger()), tm
}

func TestLogin_Success(t *testing.T) {
	users := &UserRepoMock{}
	u := &model.User{ID: 4, Name: "Rosa", Email: "rosa@libreria.pe", PasswordHash: hashed(t, "secreto123"), Role: model.RoleSeller, TokenVersion: 3, IsActive: true}
	users.On("FindByEmail", mock.Anything, "rosa@libreria.pe").Return(u, nil)
	users.On("TouchLastLogin", mock.Anything, int64(4), mock.AnythingOfType("time.Time")).Return(nil).Once()

	uc, tm := newAuthUC(users)
	out, err := uc.Login(context.Background(), "  Rosa@Libreria.pe ", "secreto123")
	require.NoError(t, err)

	assert.Equal(t, "login successful", out.Message)
	assert.Equal(t, usecase.UserProfile{ID: 4, Name: "Rosa", Email: "rosa@libreria.pe", Role: model.RoleSeller}, out.User)

	claims, err := tm.Parse(out.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(4), claims.UserID)
	assert.Equal(t, model.RoleSeller, claims.Role)
	assert.Equal(t, "Rosa", claims.Name)
	assert.Equal(t, 3, claims.TokenVersion)
	users.AssertExpectations(t)
}

func TestLogin_AccountNotFound(t *testing.T) {
	users := &UserRepoMock{}
	users.On("FindByEmail", mock.Anything, "nadie@libreria.pe").Return(nil, repo.ErrNotFound)

	uc, _ := newAuthUC(users)
	_, err := uc.Login(context.Background(), "nadie@libreria.pe", "x")
	he := httpErr(err)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
	assert.Equal(t, "account not found", he.Message)
}

func TestLogin_IncorrectPassword(t *testing.T) {
	users := &UserRepoMock{}
	users.On("FindByEmail", mock.Anything, "rosa@libreria.pe").
		Return(&model.User{ID: 4, PasswordHash: hashed(t, "secreto123"), Role: model.RoleSeller, IsActive: true}, nil)

	uc, _ := newAuthUC(users)
	_, err := uc.Login(context.Background(), "rosa@libreria.pe", "otra-clave")
	he := httpErr(err)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
	assert.Equal(t, "incorrect password", he.Message)
	users.AssertNotCalled(t, "TouchLastLogin", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_DisabledAccount(t *testing.T) {
	users := &UserRepoMock{}
	users.On("FindByEmail", mock.Anything, "rosa@libreria.pe").
		Return(&model.User{ID: 4, PasswordHash: hashed(t, "secreto123"), Role: model.RoleSeller, IsActive: false}, nil)

	uc, _ := newAuthUC(users)
	_, err := uc.Login(context.Background(), "rosa@libreria.pe", "secreto123")
	assert.Equal(t, http.StatusForbidden, httpErr(err).Status)
}

// 何回失敗してもロックしない
func TestLogin_NoLockoutAfterFailures(t *testing.T) {
	users := &UserRepoMock{}
	u := &model.User{ID: 4, PasswordHash: hashed(t, "secreto123"), Role: model.RoleSeller, IsActive: true}
	users.On("FindByEmail", mock.Anything, "rosa@libreria.pe").Return(u, nil)
	users.On("TouchLastLogin", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	uc, _ := newAuthUC(users)
	for i := 0; i < 10; i++ {
		_, err := uc.Login(context.Background(), "rosa@libreria.pe", "mala")
		require.Error(t, err)
	}
	_, err := uc.Login(context.Background(), "rosa@libreria.pe", "secreto123")
	assert.NoError(t, err)
}

func TestLogin_LastLoginFailureIsNotFatal(t *testing.T) {
	users := &UserRepoMock{}
	users.On("FindByEmail", mock.Anything, "rosa@libreria.pe").
		Return(&model.User{ID: 4, PasswordHash: hashed(t, "secreto123"), Role: model.RoleAdmin, IsActive: true}, nil)
	users.On("TouchLastLogin", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	uc, _ := newAuthUC(users)
	_, err := uc.Login(context.Background(), "rosa@libreria.pe", "secreto123")
	assert.NoError(t, err)
}

func TestLogin_MissingFields(t *testing.T) {
	uc, _ := newAuthUC(&UserRepoMock{})
	_, err := uc.Login(context.Background(), "", "x")
	assert.Equal(t, http.StatusBadRequest, httpErr(err).Status)
}

func TestLogout_BumpsTokenVersion(t *testing.T) {
	users := &UserRepoMock{}
	users.On("IncrementTokenVersion", mock.Anything, int64(4)).Return(nil).Once()

	uc, _ := newAuthUC(users)
	require.NoError(t, uc.Logout(context.Background(), 4))
	users.AssertExpectations(t)
}

func TestMe(t *testing.T) {
	users := &UserRepoMock{}
	users.On("FindByID", mock.Anything, int64(4)).
		Return(&model.User{ID: 4, Name: "Rosa", Email: "rosa@libreria.pe", Role: model.RoleSeller}, nil)
	users.On("FindByID", mock.Anything, int64(5)).Return(nil, repo.ErrNotFound)

	uc, _ := newAuthUC(users)
	p, err := uc.Me(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Rosa", p.Name)

	_, err = uc.Me(context.Background(), 5)
	assert.Equal(t, http.StatusUnauthorized, httpErr(err).Status)
}

// 行単位で保存するユーザーストア（Updateはusers表と同じ列を書く）
type userRows struct {
	mu   sync.Mutex
	rows map[int64]model.User
}

func (s *userRows) Create(ctx context.Context, u *model.User) error { return nil }

func (s *userRows) FindByID(ctx context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (s *userRows) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.rows {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (s *userRows) List(ctx context.Context) ([]model.User, error) { return nil, nil }

func (s *userRows) Update(ctx context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.rows[u.ID]
	row.Name, row.Email, row.Role, row.IsActive = u.Name, u.Email, u.Role, u.IsActive
	s.rows[u.ID] = row
	return nil
}

func (s *userRows) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.rows[id]
	row.LastLoginAt = &at
	s.rows[id] = row
	return nil
}

func (s *userRows) IncrementTokenVersion(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.rows[id]
	row.TokenVersion++
	s.rows[id] = row
	return nil
}

// パスワード照合の最中に別の処理を走らせる
type verifyHook struct {
	during func()
}

func (v verifyHook) Verify(plain, hashed string) bool {
	v.during()
	return plain == "secreto123"
}

// 照合中に管理者が無効化した場合、ログイン後も無効のまま
func TestLogin_DoesNotUndoConcurrentDeactivation(t *testing.T) {
	users := &userRows{rows: map[int64]model.User{
		1: {ID: 1, Name: "Admin", Email: "admin@libreria.pe", Role: model.RoleAdmin, IsActive: true},
		4: {ID: 4, Name: "Rosa", Email: "rosa@libreria.pe", Role: model.RoleSeller, IsActive: true},
	}}
	admin := usecase.NewUserUsecase(users, &nopAudit{}, plainHasher{}, fixedClock{testNow}, nopLogger())

	hook := verifyHook{during: func() {
		require.NoError(t, admin.SetActive(context.Background(), 1, 4, false))
	}}
	tm := token.NewManager("test-secret", 8*time.Hour)
	uc := usecase.NewAuthUsecase(users, hook, tm, fixedClock{time.Now()}, nopLogger())

	_, err := uc.Login(context.Background(), "rosa@libreria.pe", "secreto123")
	require.NoError(t, err)

	after, err := users.FindByID(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, after.IsActive)
	assert.Equal(t, 1, after.TokenVersion)
	assert.NotNil(t, after.LastLoginAt)
}

type nopAudit struct{}

func (nopAudit) Create(ctx context.Context, log model.AuditLog) error { return nil }

func (nopAudit) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, int64, error) {
	return nil, 0, nil
}
