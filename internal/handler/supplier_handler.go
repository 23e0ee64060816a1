package handler

import (
	"net/http"

	"bookstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

type supplierRequest struct {
	TaxID       string `json:"ruc" validate:"required,max=20"`
	Name        string `json:"nombre" validate:"required,max=200"`
	ContactName string `json:"contacto" validate:"max=150"`
	Phone       string `json:"telefono" validate:"max=30"`
	Email       string `json:"email" validate:"omitempty,email"`
	Address     string `json:"direccion" validate:"max=255"`
}

func (r supplierRequest) toInput() usecase.SupplierInput {
	return usecase.SupplierInput{
		TaxID:       r.TaxID,
		Name:        r.Name,
		ContactName: r.ContactName,
		Phone:       r.Phone,
		Email:       r.Email,
		Address:     r.Address,
	}
}

// 仕入先は管理者のみ
type SupplierHandler struct {
	uc *usecase.SupplierUsecase
}

func NewSupplierHandler(uc *usecase.SupplierUsecase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

func (h *SupplierHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/proveedores", h.list)
	g.GET("/proveedores/:id", h.detail)
	g.POST("/proveedores", h.create)
	g.PUT("/proveedores/:id", h.update)
	g.DELETE("/proveedores/:id", h.delete)
}

func (h *SupplierHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SupplierHandler) detail(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SupplierHandler) create(c echo.Context) error {
	var req supplierRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *SupplierHandler) update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req supplierRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Update(c.Request().Context(), id, req.toInput()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "updated"})
}

func (h *SupplierHandler) delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "deleted"})
}
