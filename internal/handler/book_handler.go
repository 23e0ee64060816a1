package handler

import (
	"net/http"

	"bookstore/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// 書籍の作成/更新の入力
type BookRequest struct {
	ISBN       string          `json:"isbn" validate:"required,max=20"`
	Title      string          `json:"titulo" validate:"required,max=255"`
	AuthorID   int64           `json:"autor_id" validate:"required,gt=0"`
	CategoryID int64           `json:"categoria_id" validate:"required,gt=0"`
	Price      decimal.Decimal `json:"precio"`
	Stock      int64           `json:"stock" validate:"gte=0"`
	MinStock   int64           `json:"stock_minimo" validate:"gte=0"`
}

func (r BookRequest) toInput() usecase.BookInput {
	return usecase.BookInput{
		ISBN:       r.ISBN,
		Title:      r.Title,
		AuthorID:   r.AuthorID,
		CategoryID: r.CategoryID,
		Price:      r.Price,
		Stock:      r.Stock,
		MinStock:   r.MinStock,
	}
}

type BookHandler struct {
	uc *usecase.BookUsecase
}

// DI
func NewBookHandler(uc *usecase.BookUsecase) *BookHandler {
	return &BookHandler{uc: uc}
}

func (h *BookHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/libros", h.list)
	g.GET("/libros/stock-bajo", h.lowStock)
	g.GET("/libros/:id", h.detail)
	g.POST("/libros", h.create)
	g.PUT("/libros/:id", h.update)
	g.DELETE("/libros/:id", h.delete)
}

// 一覧（q / autor_id / categoria_id / page / limit）
func (h *BookHandler) list(c echo.Context) error {
	page, limit, err := pagination(c)
	if err != nil {
		return writeError(c, err)
	}
	authorID, err := queryOptionalID(c, "autor_id")
	if err != nil {
		return writeError(c, err)
	}
	categoryID, err := queryOptionalID(c, "categoria_id")
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListBooksInput{
		Page:       page,
		Limit:      limit,
		Q:          c.QueryParam("q"),
		AuthorID:   authorID,
		CategoryID: categoryID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BookHandler) lowStock(c echo.Context) error {
	out, err := h.uc.LowStock(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BookHandler) detail(c echo.Context) error {
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

func (h *BookHandler) create(c echo.Context) error {
	var req BookRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *BookHandler) update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	actorID, err := currentUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req BookRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	if err := h.uc.Update(c.Request().Context(), actorID, id, req.toInput()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "updated"})
}

func (h *BookHandler) delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	actorID, err := currentUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.uc.Delete(c.Request().Context(), actorID, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "deleted"})
}
