package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	repo "bookstore/internal/repository"

	"github.com/jmoiron/sqlx"
)

// 集計はGORMを通さず生SQL（同じプールを共有）
type DashboardSQLXRepository struct {
	db *sqlx.DB
}

// sqlDBはgormのプール。driver名はpgx（$1形式）
func NewDashboardSQLXRepository(sqlDB *sql.DB) *DashboardSQLXRepository {
	return &DashboardSQLXRepository{db: sqlx.NewDb(sqlDB, "pgx")}
}

const totalsQuery = `
SELECT
	(SELECT COUNT(*) FROM books)                                         AS books,
	(SELECT COUNT(*) FROM clients)                                       AS clients,
	(SELECT COALESCE(SUM(stock), 0)::bigint FROM books)                  AS units_in_stock,
	(SELECT COUNT(*) FROM sales WHERE created_at >= $1)                  AS sales_today,
	(SELECT COALESCE(SUM(total), 0) FROM sales WHERE created_at >= $1)   AS revenue_today`

func (r *DashboardSQLXRepository) Totals(ctx context.Context, since time.Time) (repo.DashboardTotals, error) {
	var t repo.DashboardTotals
	if err := r.db.GetContext(ctx, &t, totalsQuery, since); err != nil {
		return repo.DashboardTotals{}, fmt.Errorf("dashboard totals: %w", err)
	}
	return t, nil
}

func (r *DashboardSQLXRepository) LowStock(ctx context.Context, limit int) ([]repo.LowStockBook, error) {
	out := []repo.LowStockBook{}
	err := r.db.SelectContext(ctx, &out, `
SELECT id, isbn, title, stock, min_stock
FROM books
WHERE stock <= min_stock
ORDER BY stock ASC, id ASC
LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard low stock: %w", err)
	}
	return out, nil
}

func (r *DashboardSQLXRepository) TopSelling(ctx context.Context, limit int) ([]repo.TopBook, error) {
	out := []repo.TopBook{}
	err := r.db.SelectContext(ctx, &out, `
SELECT b.id, b.title,
	SUM(si.quantity)::bigint         AS units_sold,
	SUM(si.quantity * si.unit_price) AS revenue
FROM sale_items si
JOIN books b ON b.id = si.book_id
GROUP BY b.id, b.title
ORDER BY units_sold DESC, b.id ASC
LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard top selling: %w", err)
	}
	return out, nil
}

func (r *DashboardSQLXRepository) RecentSales(ctx context.Context, limit int) ([]repo.RecentSale, error) {
	out := []repo.RecentSale{}
	err := r.db.SelectContext(ctx, &out, `
SELECT s.id, c.name AS client_name, u.name AS seller_name, s.total, s.created_at
FROM sales s
LEFT JOIN clients c ON c.id = s.client_id
JOIN users u ON u.id = s.user_id
ORDER BY s.created_at DESC, s.id DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard recent sales: %w", err)
	}
	return out, nil
}
