package handler

import (
	"net/http"

	"bookstore/internal/usecase"

	"github.com/labstack/echo/v4"
)

type authorRequest struct {
	Name        string `json:"nombre" validate:"required,max=150"`
	Nationality string `json:"nacionalidad" validate:"max=100"`
}

type categoryRequest struct {
	Name        string `json:"nombre" validate:"required,max=100"`
	Description string `json:"descripcion"`
}

// /api/autores と /api/categorias
type CatalogHandler struct {
	authors    *usecase.AuthorUsecase
	categories *usecase.CategoryUsecase
}

func NewCatalogHandler(authors *usecase.AuthorUsecase, categories *usecase.CategoryUsecase) *CatalogHandler {
	return &CatalogHandler{authors: authors, categories: categories}
}

func (h *CatalogHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/autores", h.listAuthors)
	g.GET("/autores/:id", h.getAuthor)
	g.POST("/autores", h.createAuthor)
	g.PUT("/autores/:id", h.updateAuthor)
	g.DELETE("/autores/:id", h.deleteAuthor)

	g.GET("/categorias", h.listCategories)
	g.GET("/categorias/:id", h.getCategory)
	g.POST("/categorias", h.createCategory)
	g.PUT("/categorias/:id", h.updateCategory)
	g.DELETE("/categorias/:id", h.deleteCategory)
}

func (h *CatalogHandler) listAuthors(c echo.Context) error {
	out, err := h.authors.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) getAuthor(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.authors.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) createAuthor(c echo.Context) error {
	var req authorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.authors.Create(c.Request().Context(), usecase.AuthorInput{Name: req.Name, Nationality: req.Nationality})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CatalogHandler) updateAuthor(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req authorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	if err := h.authors.Update(c.Request().Context(), id, usecase.AuthorInput{Name: req.Name, Nationality: req.Nationality}); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "updated"})
}

func (h *CatalogHandler) deleteAuthor(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.authors.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "deleted"})
}

func (h *CatalogHandler) listCategories(c echo.Context) error {
	out, err := h.categories.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) getCategory(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.categories.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) createCategory(c echo.Context) error {
	var req categoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	out, err := h.categories.Create(c.Request().Context(), usecase.CategoryInput{Name: req.Name, Description: req.Description})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CatalogHandler) updateCategory(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var req categoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}
	if err := h.categories.Update(c.Request().Context(), id, usecase.CategoryInput{Name: req.Name, Description: req.Description}); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "updated"})
}

func (h *CatalogHandler) deleteCategory(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.categories.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "deleted"})
}
