package usecase

import (
	"errors"
	"fmt"
	"net/http"

	repo "bookstore/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// repositoryのエラーをHTTPErrorへ
// conflictMsgは一意制約違反のときのメッセージ
func mapRepoErr(err error, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, repo.ErrConflict):
		return NewHTTPError(http.StatusConflict, conflictMsg)
	case errors.Is(err, repo.ErrReferenced):
		return NewHTTPError(http.StatusBadRequest, "referenced record does not exist")
	default:
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
}

func errUnauthorized() error {
	return NewHTTPError(http.StatusUnauthorized, "unauthorized")
}

func errInvalidID() error {
	return NewHTTPError(http.StatusBadRequest, "invalid id")
}

// 削除できない（参照されている）ときの400
func errInUse(entity string, n int64, dependents string) error {
	return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("cannot delete %s: %d %s reference it", entity, n, dependents))
}

// numeric(12,2)に収まる金額（負でない・小数2桁まで）
func validMoney(d decimal.Decimal) bool {
	return !d.IsNegative() && d.Equal(d.Round(2))
}
