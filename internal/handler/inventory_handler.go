package handler

import (
	"net/http"

	"bookstore/internal/domain/model"
	"bookstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 入出庫の入力
type movementRequest struct {
	BookID   int64  `json:"libro_id" validate:"required,gt=0"`
	Kind     string `json:"tipo_movimiento" validate:"required,oneof=ENTRADA SALIDA"`
	Quantity int64  `json:"cantidad" validate:"gte=1"`
	Reason   string `json:"motivo" validate:"max=255"`
}

type InventoryHandler struct {
	uc *usecase.InventoryUsecase
}

func NewInventoryHandler(uc *usecase.InventoryUsecase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

func (h *InventoryHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/movimientos", h.create)
	g.GET("/movimientos", h.list)
}

func (h *InventoryHandler) create(c echo.Context) error {
	operatorID, err := currentUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req movementRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.RegisterMovement(c.Request().Context(), operatorID, usecase.MovementInput{
		BookID:   req.BookID,
		Kind:     model.MovementKind(req.Kind),
		Quantity: req.Quantity,
		Reason:   req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// libro_idで絞り込み
func (h *InventoryHandler) list(c echo.Context) error {
	page, limit, err := pagination(c)
	if err != nil {
		return writeError(c, err)
	}
	bookID, err := queryOptionalID(c, "libro_id")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.ListMovements(c.Request().Context(), bookID, page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
