// Salescope - E-commerce Sales Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salescope

package models

// SummaryStats is the ungrouped dashboard headline figures.
type SummaryStats struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TotalOrders    int64   `json:"total_orders"`
	TotalQuantity  int64   `json:"total_quantity"`
	AvgOrderValue  float64 `json:"avg_order_value"`
	UniqueProducts int64   `json:"unique_products"`
	UniqueCities   int64   `json:"unique_cities"`
}

// MonthlySalesResponse carries per-month aggregates as parallel arrays in
// calendar month order.
type MonthlySalesResponse struct {
	Months []string  `json:"months"`
	Sales  []float64 `json:"sales"`
	Orders []int64   `json:"orders"`
}

// CitySalesResponse carries top-N cities by sales, descending.
// City labels are "City (ST)".
type CitySalesResponse struct {
	Cities []string  `json:"cities"`
	Sales  []float64 `json:"sales"`
	Orders []int64   `json:"orders"`
}

// ProductSalesResponse carries top-N products by sales, descending.
type ProductSalesResponse struct {
	Products []string  `json:"products"`
	Sales    []float64 `json:"sales"`
	Quantity []int64   `json:"quantity"`
}

// HourlySalesResponse carries per-hour aggregates in hour order.
type HourlySalesResponse struct {
	Hours  []int     `json:"hours"`
	Sales  []float64 `json:"sales"`
	Orders []int64   `json:"orders"`
}

// CategorySalesResponse carries per-category aggregates by sales, descending.
type CategorySalesResponse struct {
	Categories []string  `json:"categories"`
	Sales      []float64 `json:"sales"`
	Orders     []int64   `json:"orders"`
}

// StateSalesResponse carries per-state aggregates by sales, descending.
type StateSalesResponse struct {
	States []string  `json:"states"`
	Sales  []float64 `json:"sales"`
	Orders []int64   `json:"orders"`
}

// DailySalesResponse carries the daily trend in date order.
// Dates are YYYY-MM-DD.
type DailySalesResponse struct {
	Dates  []string  `json:"dates"`
	Sales  []float64 `json:"sales"`
	Orders []int64   `json:"orders"`
}
