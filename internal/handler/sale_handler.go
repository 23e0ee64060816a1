package handler

import (
	"net/http"

	"bookstore/internal/domain/model"
	"bookstore/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type saleItemRequest struct {
	BookID    int64           `json:"libro_id"`
	Quantity  int64           `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
}

// 空カート・数量などの検証はusecase側（「cart is empty」を返すため）
type saleCreateRequest struct {
	ClientID *int64            `json:"cliente_id"`
	Total    decimal.Decimal   `json:"total"`
	Items    []saleItemRequest `json:"items"`
}

type saleCreatedResponse struct {
	Message string     `json:"mensaje"`
	SaleID  int64      `json:"venta_id"`
	Sale    model.Sale `json:"venta"`
}

type SaleHandler struct {
	uc *usecase.SaleUsecase
}

func NewSaleHandler(uc *usecase.SaleUsecase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

func (h *SaleHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/ventas", h.create)
	g.GET("/ventas", h.list)
	g.GET("/ventas/:id", h.detail)
}

func (h *SaleHandler) create(c echo.Context) error {
	operatorID, err := currentUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req saleCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	in := usecase.CreateSaleInput{
		ClientID: req.ClientID,
		Total:    req.Total,
		Items:    make([]usecase.SaleItemInput, 0, len(req.Items)),
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, usecase.SaleItemInput{
			BookID:    it.BookID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	sale, err := h.uc.CreateSale(c.Request().Context(), operatorID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, saleCreatedResponse{
		Message: "sale recorded",
		SaleID:  sale.ID,
		Sale:    sale,
	})
}

// 新しい順
func (h *SaleHandler) list(c echo.Context) error {
	page, limit, err := pagination(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListSales(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ヘッダ＋明細
func (h *SaleHandler) detail(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetSale(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
