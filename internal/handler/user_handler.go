package handler

import (
	"net/http"

	"bookstore/internal/domain/model"
	"bookstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	uc *usecase.UserUsecase
}

func NewUserHandler(uc *usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

type userCreateRequest struct {
	Name     string `json:"nombre" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"rol" validate:"required,oneof=ADMIN VENDEDOR"`
}

type userStatusRequest struct {
	Active *bool `json:"activo" validate:"required"`
}

func (h *UserHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/usuarios", h.list)
	g.POST("/usuarios", h.create)
	g.PATCH("/usuarios/:id/estado", h.setStatus)
}

func (h *UserHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) create(c echo.Context) error {
	var req userCreateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Create(c.Request().Context(), usecase.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// 有効/無効の切り替え
func (h *UserHandler) setStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	actorID, err := currentUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req userStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	if err := h.uc.SetActive(c.Request().Context(), actorID, id, *req.Active); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "updated"})
}
