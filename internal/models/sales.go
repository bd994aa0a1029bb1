// Salescope - E-commerce Sales Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salescope

// Package models defines the canonical sales record, the star-schema
// dimension and summary rows produced by the transform pipeline, and the
// JSON payloads served by the query service.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord is one cleaned, enriched sales transaction. The transform
// pipeline derives every field after OrderedAt from the six raw columns;
// the record is immutable once built.
type SaleRecord struct {
	OrderID   string
	Product   string
	Quantity  int
	UnitPrice decimal.Decimal
	OrderedAt time.Time
	Address   string

	// Derived from Address
	City      string
	State     string
	CityState string // "City (ST)"

	// Derived from OrderedAt
	Year      int
	Month     int
	MonthName string
	Quarter   int
	Day       int
	DayOfWeek string
	Hour      int
	Date      string // YYYY-MM-DD

	// Computed
	Sales      decimal.Decimal // Quantity × UnitPrice, exact
	TimePeriod string          // Night/Morning/Afternoon/Evening bucket
	Category   string          // first-match product category
}

// DateDim is one row of the date dimension, keyed by a dense 1-based
// surrogate key assigned in date order.
type DateDim struct {
	DateKey   int
	Date      string
	Year      int
	Month     int
	MonthName string
	Quarter   int
	Day       int
	DayOfWeek string
}

// TimeDim is one row of the time dimension, keyed in hour order.
type TimeDim struct {
	TimeKey    int
	Hour       int
	TimePeriod string
}

// ProductDim is one row of the product dimension. A product observed at
// multiple unit prices yields one row per distinct price.
type ProductDim struct {
	ProductKey    int
	ProductName   string
	Category      string
	StandardPrice decimal.Decimal
}

// GeographyDim is one row of the geography dimension, keyed in
// (state, city) order.
type GeographyDim struct {
	GeoKey    int
	City      string
	State     string
	CityState string
}

// MonthlySummary aggregates the canonical dataset by calendar month.
type MonthlySummary struct {
	Year          int
	Month         int
	MonthName     string
	TotalOrders   int
	TotalSales    decimal.Decimal
	TotalQuantity int
	AvgOrderValue decimal.Decimal
}

// CitySummary aggregates by city, sorted by total sales descending.
type CitySummary struct {
	City          string
	State         string
	TotalOrders   int
	TotalSales    decimal.Decimal
	TotalQuantity int
	AvgOrderValue decimal.Decimal
}

// ProductSummary aggregates by product, sorted by total sales descending.
type ProductSummary struct {
	Product       string
	Category      string
	TotalOrders   int
	TotalSales    decimal.Decimal
	TotalQuantity int
	AvgPrice      decimal.Decimal // mean unit price across orders
}

// HourlySummary aggregates by hour of day, in hour order.
type HourlySummary struct {
	Hour        int
	TimePeriod  string
	TotalOrders int
	TotalSales  decimal.Decimal
}

// Tables bundles everything one pipeline run produces.
type Tables struct {
	Facts           []SaleRecord
	Dates           []DateDim
	Times           []TimeDim
	Products        []ProductDim
	Geography       []GeographyDim
	Monthly         []MonthlySummary
	Cities          []CitySummary
	ProductsSummary []ProductSummary
	Hourly          []HourlySummary
}
