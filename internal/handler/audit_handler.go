package handler

import (
	"net/http"

	"bookstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuditHandler struct {
	uc *usecase.AuditUsecase
}

func NewAuditHandler(uc *usecase.AuditUsecase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

func (h *AuditHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/auditoria", h.list)
}

// usuario_id / accion / recurso / recurso_id / desde / hasta / page / limit
func (h *AuditHandler) list(c echo.Context) error {
	page, limit, err := pagination(c)
	if err != nil {
		return writeError(c, err)
	}
	actorID, err := queryOptionalID(c, "usuario_id")
	if err != nil {
		return writeError(c, err)
	}
	resourceID, err := queryOptionalID(c, "recurso_id")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListAuditInput{
		ActorUserID:  actorID,
		Action:       c.QueryParam("accion"),
		ResourceType: c.QueryParam("recurso"),
		ResourceID:   resourceID,
		Since:        c.QueryParam("desde"),
		Until:        c.QueryParam("hasta"),
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
