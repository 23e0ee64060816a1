package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"bookstore/internal/domain/model"
	"bookstore/internal/observability"
	repo "bookstore/internal/repository"

	"go.uber.org/zap"
)

// JWTを発行する約束
type TokenIssuer interface {
	Issue(user model.User, now time.Time) (token string, expiresAt time.Time, err error)
}

type AuthUsecase struct {
	users    repo.UserRepository
	verifier PasswordVerifier
	issuer   TokenIssuer
	clock    Clock
	logger   *zap.Logger
}

func NewAuthUsecase(
	users repo.UserRepository,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	clock Clock,
	logger *zap.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
		logger:   logger,
	}
}

// パスワードハッシュを含まないユーザー情報
type UserProfile struct {
	ID    int64      `json:"id"`
	Name  string     `json:"nombre"`
	Email string     `json:"email"`
	Role  model.Role `json:"rol"`
}

type LoginOutput struct {
	Message   string      `json:"mensaje"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expira"`
	User      UserProfile `json:"usuario"`
}

func toProfile(u *model.User) UserProfile {
	return UserProfile{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Login verifies the credentials and issues a session token.
// No attempt counting or lockout happens here.
func (u *AuthUsecase) Login(ctx context.Context, email string, password string) (LoginOutput, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	//emailでユーザー取得
	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && user == nil) {
		observability.LoginAttemptsTotal.WithLabelValues("not_found").Inc()
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "account not found")
	}
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//停止ユーザーはログイン不可
	if !user.IsActive {
		observability.LoginAttemptsTotal.WithLabelValues("disabled").Inc()
		return LoginOutput{}, NewHTTPError(http.StatusForbidden, "account disabled")
	}

	//パスワード照合
	if !u.verifier.Verify(password, user.PasswordHash) {
		observability.LoginAttemptsTotal.WithLabelValues("bad_password").Inc()
		u.logger.Info("login failed: incorrect password", zap.Int64("user_id", user.ID))
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "incorrect password")
	}

	now := u.clock.Now()
	tok, exp, err := u.issuer.Issue(*user, now)
	if err != nil {
		u.logger.Error("token issue failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	//最終ログイン時刻（失敗してもログインは通す）
	user.LastLoginAt = &now
	if err := u.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		u.logger.Warn("last login update failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	observability.LoginAttemptsTotal.WithLabelValues("ok").Inc()
	return LoginOutput{
		Message:   "login successful",
		Token:     tok,
		ExpiresAt: exp,
		User:      toProfile(user),
	}, nil
}

func (u *AuthUsecase) Me(ctx context.Context, userID int64) (UserProfile, error) {
	if userID <= 0 {
		return UserProfile{}, errUnauthorized()
	}

	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return UserProfile{}, errUnauthorized()
	}
	if err != nil {
		return UserProfile{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toProfile(user), nil
}

// Logoutはtoken_versionを上げ、発行済みトークンをすべて失効させる
func (u *AuthUsecase) Logout(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return errUnauthorized()
	}
	if err := u.users.IncrementTokenVersion(ctx, userID); err != nil {
		return mapRepoErr(err, "")
	}
	return nil
}
