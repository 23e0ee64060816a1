package usecase

import (
	"context"
	"net/http"
	"time"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"
)

const auditDateLayout = "2006-01-02"

// 管理者向けの監査ログ参照
type AuditUsecase struct {
	logs repo.AuditLogRepository
}

func NewAuditUsecase(logs repo.AuditLogRepository) *AuditUsecase {
	return &AuditUsecase{logs: logs}
}

// 日付はYYYY-MM-DD。Untilはその日の終わりまで含む
type ListAuditInput struct {
	ActorUserID  *int64
	Action       string
	ResourceType string
	ResourceID   *int64
	Since        string
	Until        string
	Page         int
	Limit        int
}

type AuditListOutput struct {
	Items []model.AuditLog `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

func (u *AuditUsecase) List(ctx context.Context, in ListAuditInput) (AuditListOutput, error) {
	if in.Page < 1 {
		return AuditListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 200 {
		return AuditListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	f := repo.AuditLogFilter{
		Page:        repo.Page{Page: in.Page, Limit: in.Limit},
		ActorUserID: in.ActorUserID,
		ResourceID:  in.ResourceID,
	}

	if in.Action != "" {
		a := model.AuditAction(in.Action)
		if !a.Valid() {
			return AuditListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid accion")
		}
		f.Action = &a
	}
	if in.ResourceType != "" {
		rt := model.AuditResourceType(in.ResourceType)
		if rt != model.AuditResourceBook && rt != model.AuditResourceUser {
			return AuditListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid recurso")
		}
		f.ResourceType = &rt
	}

	if in.Since != "" {
		t, err := time.Parse(auditDateLayout, in.Since)
		if err != nil {
			return AuditListOutput{}, NewHTTPError(http.StatusBadRequest, "desde must be YYYY-MM-DD")
		}
		f.Since = &t
	}
	if in.Until != "" {
		t, err := time.Parse(auditDateLayout, in.Until)
		if err != nil {
			return AuditListOutput{}, NewHTTPError(http.StatusBadRequest, "hasta must be YYYY-MM-DD")
		}
		end := t.AddDate(0, 0, 1)
		f.Until = &end
	}
	if f.Since != nil && f.Until != nil && !f.Since.Before(*f.Until) {
		return AuditListOutput{}, NewHTTPError(http.StatusBadRequest, "desde must not be after hasta")
	}

	logs, total, err := u.logs.List(ctx, f)
	if err != nil {
		return AuditListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return AuditListOutput{Items: logs, Total: total, Page: in.Page, Limit: in.Limit}, nil
}
