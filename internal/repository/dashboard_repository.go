package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type DashboardTotals struct {
	Books        int64           `db:"books" json:"total_libros"`
	Clients      int64           `db:"clients" json:"total_clientes"`
	UnitsInStock int64           `db:"units_in_stock" json:"unidades_en_stock"`
	SalesToday   int64           `db:"sales_today" json:"ventas_hoy"`
	RevenueToday decimal.Decimal `db:"revenue_today" json:"ingresos_hoy"`
}

type LowStockBook struct {
	ID       int64  `db:"id" json:"id"`
	ISBN     string `db:"isbn" json:"isbn"`
	Title    string `db:"title" json:"titulo"`
	Stock    int64  `db:"stock" json:"stock"`
	MinStock int64  `db:"min_stock" json:"stock_minimo"`
}

type TopBook struct {
	ID        int64           `db:"id" json:"id"`
	Title     string          `db:"title" json:"titulo"`
	UnitsSold int64           `db:"units_sold" json:"unidades_vendidas"`
	Revenue   decimal.Decimal `db:"revenue" json:"ingresos"`
}

type RecentSale struct {
	ID         int64           `db:"id" json:"id"`
	ClientName *string         `db:"client_name" json:"cliente"`
	SellerName string          `db:"seller_name" json:"vendedor"`
	Total      decimal.Decimal `db:"total" json:"total"`
	CreatedAt  time.Time       `db:"created_at" json:"fecha"`
}

// ダッシュボード用の集計（読み取りのみ）
type DashboardRepository interface {
	Totals(ctx context.Context, since time.Time) (DashboardTotals, error)
	LowStock(ctx context.Context, limit int) ([]LowStockBook, error)
	TopSelling(ctx context.Context, limit int) ([]TopBook, error)
	RecentSales(ctx context.Context, limit int) ([]RecentSale, error)
}
