// Salescope - E-commerce Sales Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salescope

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/salescope/internal/metrics"
	"github.com/tomtom215/salescope/internal/models"
)

// Summary returns the ungrouped headline figures for the whole dataset.
func (db *DB) Summary(ctx context.Context) (models.SummaryStats, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	const query = `
	SELECT
		CAST(COALESCE(SUM(sales), 0) AS DOUBLE) AS total_revenue,
		COUNT(*) AS total_orders,
		COALESCE(SUM(quantity), 0) AS total_quantity,
		CAST(COALESCE(AVG(sales), 0) AS DOUBLE) AS avg_order_value,
		COUNT(DISTINCT product) AS unique_products,
		COUNT(DISTINCT city_state) AS unique_cities
	FROM fact_sales`

	var stats models.SummaryStats
	start := time.Now()
	err := db.conn.QueryRowContext(ctx, query).Scan(
		&stats.TotalRevenue, &stats.TotalOrders, &stats.TotalQuantity,
		&stats.AvgOrderValue, &stats.UniqueProducts, &stats.UniqueCities,
	)
	metrics.RecordDBQuery("summary", time.Since(start), err)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return models.SummaryStats{}, fmt.Errorf("failed to query summary: %w", err)
	}
	return stats, nil
}

type groupedRow struct {
	label  string
	sales  float64
	orders int64
}

func scanGrouped(rows *sql.Rows) (groupedRow, error) {
	var r groupedRow
	err := rows.Scan(&r.label, &r.sales, &r.orders)
	return r, err
}

// MonthlySales returns per-month totals in calendar order. The month labels
// come from the summary table, which the pipeline sorts by (year, month).
func (db *DB) MonthlySales(ctx context.Context) (models.MonthlySalesResponse, error) {
	const query = `
	SELECT
		month_name,
		CAST(total_sales AS DOUBLE) AS sales,
		CAST(total_orders AS BIGINT) AS orders
	FROM summary_monthly
	ORDER BY year, month`

	rows, err := queryAndScan(ctx, db, "monthly_sales", query, nil, scanGrouped)
	if err != nil {
		return models.MonthlySalesResponse{}, err
	}

	resp := emptyMonthly(len(rows))
	for _, r := range rows {
		resp.Months = append(resp.Months, r.label)
		resp.Sales = append(resp.Sales, r.sales)
		resp.Orders = append(resp.Orders, r.orders)
	}
	return resp, nil
}

// TopCities returns the limit highest-revenue cities, labeled "City (ST)".
func (db *DB) TopCities(ctx context.Context, limit int) (models.CitySalesResponse, error) {
	const query = `
	SELECT
		city || ' (' || state || ')' AS city_label,
		CAST(total_sales AS DOUBLE) AS sales,
		CAST(total_orders AS BIGINT) AS orders
	FROM summary_city
	ORDER BY total_sales DESC, state, city
	LIMIT ?`

	rows, err := queryAndScan(ctx, db, "top_cities", query, []any{limit}, scanGrouped)
	if err != nil {
		return models.CitySalesResponse{}, err
	}

	resp := models.CitySalesResponse{
		Cities: make([]string, 0, len(rows)),
		Sales:  make([]float64, 0, len(rows)),
		Orders: make([]int64, 0, len(rows)),
	}
	for _, r := range rows {
		resp.Cities = append(resp.Cities, r.label)
		resp.Sales = append(resp.Sales, r.sales)
		resp.Orders = append(resp.Orders, r.orders)
	}
	return resp, nil
}

// TopProducts returns the limit highest-revenue products with quantities.
func (db *DB) TopProducts(ctx context.Context, limit int) (models.ProductSalesResponse, error) {
	const query = `
	SELECT
		product,
		CAST(total_sales AS DOUBLE) AS sales,
		CAST(total_quantity AS BIGINT) AS quantity
	FROM summary_product
	ORDER BY total_sales DESC, product
	LIMIT ?`

	rows, err := queryAndScan(ctx, db, "top_products", query, []any{limit}, scanGrouped)
	if err != nil {
		return models.ProductSalesResponse{}, err
	}

	resp := models.ProductSalesResponse{
		Products: make([]string, 0, len(rows)),
		Sales:    make([]float64, 0, len(rows)),
		Quantity: make([]int64, 0, len(rows)),
	}
	for _, r := range rows {
		resp.Products = append(resp.Products, r.label)
		resp.Sales = append(resp.Sales, r.sales)
		resp.Quantity = append(resp.Quantity, r.orders)
	}
	return resp, nil
}

// HourlySales returns per-hour totals in hour order.
func (db *DB) HourlySales(ctx context.Context) (models.HourlySalesResponse, error) {
	const query = `
	SELECT
		hour,
		CAST(total_sales AS DOUBLE) AS sales,
		CAST(total_orders AS BIGINT) AS orders
	FROM summary_hourly
	ORDER BY hour`

	type hourRow struct {
		hour   int
		sales  float64
		orders int64
	}
	scan := func(rows *sql.Rows) (hourRow, error) {
		var r hourRow
		err := rows.Scan(&r.hour, &r.sales, &r.orders)
		return r, err
	}

	rows, err := queryAndScan(ctx, db, "hourly_sales", query, nil, scan)
	if err != nil {
		return models.HourlySalesResponse{}, err
	}

	resp := models.HourlySalesResponse{
		Hours:  make([]int, 0, len(rows)),
		Sales:  make([]float64, 0, len(rows)),
		Orders: make([]int64, 0, len(rows)),
	}
	for _, r := range rows {
		resp.Hours = append(resp.Hours, r.hour)
		resp.Sales = append(resp.Sales, r.sales)
		resp.Orders = append(resp.Orders, r.orders)
	}
	return resp, nil
}

// CategorySales returns per-category totals, sales descending.
func (db *DB) CategorySales(ctx context.Context) (models.CategorySalesResponse, error) {
	const query = `
	SELECT
		product_category,
		CAST(SUM(sales) AS DOUBLE) AS sales,
		COUNT(*) AS orders
	FROM fact_sales
	GROUP BY product_category
	ORDER BY SUM(sales) DESC, product_category`

	rows, err := queryAndScan(ctx, db, "category_sales", query, nil, scanGrouped)
	if err != nil {
		return models.CategorySalesResponse{}, err
	}

	resp := models.CategorySalesResponse{
		Categories: make([]string, 0, len(rows)),
		Sales:      make([]float64, 0, len(rows)),
		Orders:     make([]int64, 0, len(rows)),
	}
	for _, r := range rows {
		resp.Categories = append(resp.Categories, r.label)
		resp.Sales = append(resp.Sales, r.sales)
		resp.Orders = append(resp.Orders, r.orders)
	}
	return resp, nil
}

// StateSales returns per-state totals, sales descending.
func (db *DB) StateSales(ctx context.Context) (models.StateSalesResponse, error) {
	const query = `
	SELECT
		state,
		CAST(SUM(sales) AS DOUBLE) AS sales,
		COUNT(*) AS orders
	FROM fact_sales
	GROUP BY state
	ORDER BY SUM(sales) DESC, state`

	rows, err := queryAndScan(ctx, db, "state_sales", query, nil, scanGrouped)
	if err != nil {
		return models.StateSalesResponse{}, err
	}

	resp := models.StateSalesResponse{
		States: make([]string, 0, len(rows)),
		Sales:  make([]float64, 0, len(rows)),
		Orders: make([]int64, 0, len(rows)),
	}
	for _, r := range rows {
		resp.States = append(resp.States, r.label)
		resp.Sales = append(resp.Sales, r.sales)
		resp.Orders = append(resp.Orders, r.orders)
	}
	return resp, nil
}

// DailyTrend returns per-day totals in date order.
func (db *DB) DailyTrend(ctx context.Context) (models.DailySalesResponse, error) {
	const query = `
	SELECT
		STRFTIME(order_date, '%Y-%m-%d') AS day,
		CAST(SUM(sales) AS DOUBLE) AS sales,
		COUNT(*) AS orders
	FROM fact_sales
	GROUP BY order_date
	ORDER BY order_date`

	rows, err := queryAndScan(ctx, db, "daily_trend", query, nil, scanGrouped)
	if err != nil {
		return models.DailySalesResponse{}, err
	}

	resp := models.DailySalesResponse{
		Dates:  make([]string, 0, len(rows)),
		Sales:  make([]float64, 0, len(rows)),
		Orders: make([]int64, 0, len(rows)),
	}
	for _, r := range rows {
		resp.Dates = append(resp.Dates, r.label)
		resp.Sales = append(resp.Sales, r.sales)
		resp.Orders = append(resp.Orders, r.orders)
	}
	return resp, nil
}

// FactCount returns the number of canonical records in the warehouse.
func (db *DB) FactCount(ctx context.Context) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var count int64
	start := time.Now()
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM fact_sales").Scan(&count)
	metrics.RecordDBQuery("fact_count", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to count facts: %w", err)
	}
	return count, nil
}

func emptyMonthly(capacity int) models.MonthlySalesResponse {
	return models.MonthlySalesResponse{
		Months: make([]string, 0, capacity),
		Sales:  make([]float64, 0, capacity),
		Orders: make([]int64, 0, capacity),
	}
}
