// Salescope - E-commerce Sales Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salescope

package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/salescope/internal/config"
	"github.com/tomtom215/salescope/internal/models"
)

// Store is the query surface the handlers need from the warehouse.
type Store interface {
	Ping(ctx context.Context) error
	Summary(ctx context.Context) (models.SummaryStats, error)
	MonthlySales(ctx context.Context) (models.MonthlySalesResponse, error)
	TopCities(ctx context.Context, limit int) (models.CitySalesResponse, error)
	TopProducts(ctx context.Context, limit int) (models.ProductSalesResponse, error)
	HourlySales(ctx context.Context) (models.HourlySalesResponse, error)
	CategorySales(ctx context.Context) (models.CategorySalesResponse, error)
	StateSales(ctx context.Context) (models.StateSalesResponse, error)
	DailyTrend(ctx context.Context) (models.DailySalesResponse, error)
}

// Handler serves the query endpoints over the persisted dataset.
type Handler struct {
	store  Store
	cfg    config.APIConfig
	uptime time.Time
}

// NewHandler creates the endpoint handler set.
func NewHandler(store Store, cfg config.APIConfig) *Handler {
	return &Handler{
		store:  store,
		cfg:    cfg,
		uptime: time.Now(),
	}
}

// limitParam parses the optional ?limit query parameter. Absent means the
// configured default; anything non-numeric, zero, negative, or above the
// configured maximum is a client error.
func (h *Handler) limitParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return h.cfg.DefaultTopN, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("limit %q is not an integer", raw)
	}
	if limit < 1 || limit > h.cfg.MaxTopN {
		return 0, fmt.Errorf("limit %d out of range [1, %d]", limit, h.cfg.MaxTopN)
	}
	return limit, nil
}

// HealthLive reports process liveness.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"status": "alive",
		"uptime": time.Since(h.uptime).String(),
	})
}

// HealthReady reports whether the warehouse is reachable.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if err := h.store.Ping(r.Context()); err != nil {
		rw.ServiceUnavailable("warehouse not reachable")
		return
	}
	rw.Success(map[string]interface{}{"status": "ready"})
}

// Index lists the available endpoints at the service root.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"service": "salescope",
		"endpoints": []string{
			"/api/v1/health/live",
			"/api/v1/health/ready",
			"/api/v1/summary",
			"/api/v1/sales/monthly",
			"/api/v1/sales/cities",
			"/api/v1/sales/products",
			"/api/v1/sales/hourly",
			"/api/v1/sales/categories",
			"/api/v1/sales/states",
			"/api/v1/sales/daily",
			"/metrics",
		},
	})
}

// Summary serves the ungrouped headline figures.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	stats, err := h.store.Summary(r.Context())
	if err != nil {
		rw.InternalError(err)
		return
	}
	rw.Success(stats)
}

// MonthlySales serves per-month totals in calendar order.
func (h *Handler) MonthlySales(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	resp, err := h.store.MonthlySales(r.Context())
	if err != nil {
		rw.InternalError(err)
		return
	}
	rw.Success(resp)
}

// TopCities serves the highest-revenue cities, honoring ?limit.
func (h *Handler) TopCities(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	limit, err := h.limitParam(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	resp, err := h.store.TopCities(r.Context(), limit)
	if err != nil {
		rw.InternalError(err)
		return
	}
	rw.Success(resp)
}

// TopProducts serves the highest-revenue products, honoring ?limit.
func (h *Handler) TopProducts(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	limit, err := h.limitParam(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	resp, err := h.store.TopProducts(r.Context(), limit)
	if err != nil {
		rw.InternalError(err)
		return
	}
	rw.Success(resp)
}

// HourlySales serves per-hour totals in hour order.
func (h *Handler) HourlySales(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	resp, err := h.store.HourlySales(r.Context())
	if err != nil {
		rw.InternalError(err)
		return
	}
	rw.Success(resp)
}

// CategorySales serves per-category totals, sales descending.
func (h *Handler) CategorySales(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	resp, err := h.store.CategorySales(r.Context())
	if err != nil {
		rw.InternalError(err)
		return
	}
	rw.Success(resp)
}

// StateSales serves per-state totals, sales descending.
func (h *Handler) StateSales(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	resp, err := h.store.StateSales(r.Context())
	if err != nil {
		rw.InternalError(err)
		return
	}
	rw.Success(resp)
}

// DailyTrend serves per-day totals in date order.
func (h *Handler) DailyTrend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	resp, err := h.store.DailyTrend(r.Context())
	if err != nil {
		rw.InternalError(err)
		return
	}
	rw.Success(resp)
}
