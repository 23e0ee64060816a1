package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const minPasswordLen = 8

var emailCheck = validator.New()

// 管理者によるユーザー管理
type UserUsecase struct {
	users  repo.UserRepository
	audit  repo.AuditLogRepository
	hasher PasswordHasher
	clock  Clock
	logger *zap.Logger
}

func NewUserUsecase(
	users repo.UserRepository,
	audit repo.AuditLogRepository,
	hasher PasswordHasher,
	clock Clock,
	logger *zap.Logger,
) *UserUsecase {
	return &UserUsecase{users: users, audit: audit, hasher: hasher, clock: clock, logger: logger}
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

func (u *UserUsecase) Create(ctx context.Context, in CreateUserInput) (UserProfile, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if name == "" {
		return UserProfile{}, NewHTTPError(http.StatusBadRequest, "nombre required")
	}
	if err := emailCheck.Var(email, "required,email,max=150"); err != nil {
		return UserProfile{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if len(in.Password) < minPasswordLen {
		return UserProfile{}, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	if !in.Role.Valid() {
		return UserProfile{}, NewHTTPError(http.StatusBadRequest, "rol must be ADMIN or VENDEDOR")
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return UserProfile{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
		IsActive:     true,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return UserProfile{}, mapRepoErr(err, "email already registered")
	}

	u.logger.Info("user created", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	return toProfile(user), nil
}

func (u *UserUsecase) List(ctx context.Context) ([]model.User, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return users, nil
}

// 無効化すると発行済みトークンも失効する
func (u *UserUsecase) SetActive(ctx context.Context, actorID int64, userID int64, active bool) error {
	if actorID <= 0 {
		return errUnauthorized()
	}
	if userID <= 0 {
		return errInvalidID()
	}
	if actorID == userID && !active {
		return NewHTTPError(http.StatusBadRequest, "cannot deactivate yourself")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return mapRepoErr(err, "")
	}
	if user.IsActive == active {
		return nil
	}

	before := user.IsActive
	user.IsActive = active
	if err := u.users.Update(ctx, user); err != nil {
		return mapRepoErr(err, "")
	}
	if !active {
		if err := u.users.IncrementTokenVersion(ctx, userID); err != nil {
			return mapRepoErr(err, "")
		}
	}

	if err := u.audit.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       model.AuditActionUpdateUserStatus,
		ResourceType: model.AuditResourceUser,
		ResourceID:   userID,
		BeforeJSON:   fmt.Sprintf(`{"activo":%t}`, before),
		AfterJSON:    fmt.Sprintf(`{"activo":%t}`, active),
		CreatedAt:    u.clock.Now(),
	}); err != nil {
		u.logger.Warn("audit log write failed", zap.Int64("user_id", userID), zap.Error(err))
	}
	return nil
}

// EnsureAdminは起動時に管理者が居なければ作る
func (u *UserUsecase) EnsureAdmin(ctx context.Context, name string, email string, password string) error {
	_, err := u.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err == nil {
		return nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return err
	}

	_, err = u.Create(ctx, CreateUserInput{Name: name, Email: email, Password: password, Role: model.RoleAdmin})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
