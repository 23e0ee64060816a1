package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	repo "bookstore/internal/repository"

	"go.uber.org/zap"
)

// 販売・入出庫のたびに削除する
const dashboardCacheKey = "bookstore:dashboard:v1"

const (
	dashboardTopLimit    = 5
	dashboardRecentLimit = 5
	dashboardLowLimit    = 20
)

type DashboardOutput struct {
	Totals      repo.DashboardTotals `json:"totales"`
	LowStock    []repo.LowStockBook  `json:"stock_bajo"`
	TopSelling  []repo.TopBook       `json:"mas_vendidos"`
	RecentSales []repo.RecentSale    `json:"ventas_recientes"`
	GeneratedAt time.Time            `json:"generado"`
}

type DashboardUsecase struct {
	stats  repo.DashboardRepository
	cache  Cache
	ttl    time.Duration
	clock  Clock
	logger *zap.Logger
}

func NewDashboardUsecase(stats repo.DashboardRepository, cache Cache, ttl time.Duration, clock Clock, logger *zap.Logger) *DashboardUsecase {
	return &DashboardUsecase{stats: stats, cache: cache, ttl: ttl, clock: clock, logger: logger}
}

func (u *DashboardUsecase) Get(ctx context.Context) (DashboardOutput, error) {
	if raw, ok, err := u.cache.Get(ctx, dashboardCacheKey); err != nil {
		u.logger.Warn("dashboard cache read failed", zap.Error(err))
	} else if ok {
		var out DashboardOutput
		if err := json.Unmarshal(raw, &out); err == nil {
			return out, nil
		}
		//壊れたキャッシュは無視して作り直す
	}

	now := u.clock.Now()
	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	totals, err := u.stats.Totals(ctx, startOfDay)
	if err != nil {
		return DashboardOutput{}, u.dbErr("totals", err)
	}
	low, err := u.stats.LowStock(ctx, dashboardLowLimit)
	if err != nil {
		return DashboardOutput{}, u.dbErr("low stock", err)
	}
	top, err := u.stats.TopSelling(ctx, dashboardTopLimit)
	if err != nil {
		return DashboardOutput{}, u.dbErr("top selling", err)
	}
	recent, err := u.stats.RecentSales(ctx, dashboardRecentLimit)
	if err != nil {
		return DashboardOutput{}, u.dbErr("recent sales", err)
	}

	out := DashboardOutput{
		Totals:      totals,
		LowStock:    low,
		TopSelling:  top,
		RecentSales: recent,
		GeneratedAt: now,
	}

	if u.ttl > 0 {
		if raw, err := json.Marshal(out); err == nil {
			if err := u.cache.Set(ctx, dashboardCacheKey, raw, u.ttl); err != nil {
				u.logger.Warn("dashboard cache write failed", zap.Error(err))
			}
		}
	}
	return out, nil
}

func (u *DashboardUsecase) dbErr(part string, err error) error {
	u.logger.Error("dashboard query failed", zap.String("part", part), zap.Error(err))
	return NewHTTPError(http.StatusInternalServerError, "db error")
}
