// Salescope - E-commerce Sales Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salescope

package database

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/salescope/internal/models"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

// testTables builds the three-row reference dataset: two Austin orders in
// March 2019 and one Dallas order, total 35.00.
func testTables(t *testing.T) *models.Tables {
	t.Helper()

	mk := func(id, product, category string, qty int, price string, ts time.Time, city, state string) models.SaleRecord {
		p := dec(t, price)
		return models.SaleRecord{
			OrderID:    id,
			Product:    product,
			Quantity:   qty,
			UnitPrice:  p,
			OrderedAt:  ts,
			City:       city,
			State:      state,
			CityState:  city + " (" + state + ")",
			Year:       ts.Year(),
			Month:      int(ts.Month()),
			MonthName:  ts.Month().String(),
			Quarter:    (int(ts.Month())-1)/3 + 1,
			Day:        ts.Day(),
			DayOfWeek:  ts.Weekday().String(),
			Hour:       ts.Hour(),
			Date:       ts.Format("2006-01-02"),
			Sales:      p.Mul(decimal.NewFromInt(int64(qty))),
			TimePeriod: "Morning (6-12)",
			Category:   category,
		}
	}

	facts := []models.SaleRecord{
		mk("1", "iPhone", "Phones", 2, "10.00", time.Date(2019, 3, 5, 9, 0, 0, 0, time.UTC), "Austin", "TX"),
		mk("2", "USB-C Charging Cable", "Cables & Chargers", 1, "5.00", time.Date(2019, 3, 5, 14, 0, 0, 0, time.UTC), "Austin", "TX"),
		mk("3", "AA Batteries (4-pack)", "Batteries", 4, "2.50", time.Date(2019, 3, 6, 20, 0, 0, 0, time.UTC), "Dallas", "TX"),
	}

	return &models.Tables{
		Facts: facts,
		Dates: []models.DateDim{
			{DateKey: 1, Date: "2019-03-05", Year: 2019, Month: 3, MonthName: "March", Quarter: 1, Day: 5, DayOfWeek: "Tuesday"},
			{DateKey: 2, Date: "2019-03-06", Year: 2019, Month: 3, MonthName: "March", Quarter: 1, Day: 6, DayOfWeek: "Wednesday"},
		},
		Times: []models.TimeDim{
			{TimeKey: 1, Hour: 9, TimePeriod: "Morning (6-12)"},
			{TimeKey: 2, Hour: 14, TimePeriod: "Afternoon (12-18)"},
			{TimeKey: 3, Hour: 20, TimePeriod: "Evening (18-24)"},
		},
		Products: []models.ProductDim{
			{ProductKey: 1, ProductName: "AA Batteries (4-pack)", Category: "Batteries", StandardPrice: dec(t, "2.50")},
			{ProductKey: 2, ProductName: "USB-C Charging Cable", Category: "Cables & Chargers", StandardPrice: dec(t, "5.00")},
			{ProductKey: 3, ProductName: "iPhone", Category: "Phones", StandardPrice: dec(t, "10.00")},
		},
		Geography: []models.GeographyDim{
			{GeoKey: 1, City: "Austin", State: "TX", CityState: "Austin (TX)"},
			{GeoKey: 2, City: "Dallas", State: "TX", CityState: "Dallas (TX)"},
		},
		Monthly: []models.MonthlySummary{
			{Year: 2019, Month: 3, MonthName: "March", TotalOrders: 3, TotalSales: dec(t, "35.00"), TotalQuantity: 7, AvgOrderValue: dec(t, "11.67")},
		},
		Cities: []models.CitySummary{
			{City: "Austin", State: "TX", TotalOrders: 2, TotalSales: dec(t, "25.00"), TotalQuantity: 3, AvgOrderValue: dec(t, "12.50")},
			{City: "Dallas", State: "TX", TotalOrders: 1, TotalSales: dec(t, "10.00"), TotalQuantity: 4, AvgOrderValue: dec(t, "10.00")},
		},
		ProductsSummary: []models.ProductSummary{
			{Product: "iPhone", Category: "Phones", TotalOrders: 1, TotalSales: dec(t, "20.00"), TotalQuantity: 2, AvgPrice: dec(t, "10.00")},
			{Product: "AA Batteries (4-pack)", Category: "Batteries", TotalOrders: 1, TotalSales: dec(t, "10.00"), TotalQuantity: 4, AvgPrice: dec(t, "2.50")},
			{Product: "USB-C Charging Cable", Category: "Cables & Chargers", TotalOrders: 1, TotalSales: dec(t, "5.00"), TotalQuantity: 1, AvgPrice: dec(t, "5.00")},
		},
		Hourly: []models.HourlySummary{
			{Hour: 9, TimePeriod: "Morning (6-12)", TotalOrders: 1, TotalSales: dec(t, "10.00")},
			{Hour: 14, TimePeriod: "Afternoon (12-18)", TotalOrders: 1, TotalSales: dec(t, "5.00")},
			{Hour: 20, TimePeriod: "Evening (18-24)", TotalOrders: 1, TotalSales: dec(t, "10.00")},
		},
	}
}

// openTestDB persists the reference dataset and reopens it read-only.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.duckdb")
	if err := PersistTables(context.Background(), path, testTables(t)); err != nil {
		t.Fatalf("PersistTables: %v", err)
	}
	db, err := OpenReadOnly(path)
	if err != nil {
		t.Fatalf("OpenReadOnly: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSummary(t *testing.T) {
	db := openTestDB(t)

	stats, err := db.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if !almostEqual(stats.TotalRevenue, 35.00) {
		t.Errorf("TotalRevenue = %v, want 35.00", stats.TotalRevenue)
	}
	if stats.TotalOrders != 3 || stats.TotalQuantity != 7 {
		t.Errorf("orders/quantity = %d/%d, want 3/7", stats.TotalOrders, stats.TotalQuantity)
	}
	if stats.UniqueProducts != 3 || stats.UniqueCities != 2 {
		t.Errorf("unique products/cities = %d/%d, want 3/2", stats.UniqueProducts, stats.UniqueCities)
	}
}

func TestMonthlySales(t *testing.T) {
	db := openTestDB(t)

	resp, err := db.MonthlySales(context.Background())
	if err != nil {
		t.Fatalf("MonthlySales: %v", err)
	}
	if len(resp.Months) != 1 || resp.Months[0] != "March" {
		t.Fatalf("Months = %v, want [March]", resp.Months)
	}
	if !almostEqual(resp.Sales[0], 35.00) || resp.Orders[0] != 3 {
		t.Errorf("March = %v/%d, want 35.00/3", resp.Sales[0], resp.Orders[0])
	}
}

func TestTopCities(t *testing.T) {
	db := openTestDB(t)

	resp, err := db.TopCities(context.Background(), 10)
	if err != nil {
		t.Fatalf("TopCities: %v", err)
	}
	wantCities := []string{"Austin (TX)", "Dallas (TX)"}
	if len(resp.Cities) != 2 || resp.Cities[0] != wantCities[0] || resp.Cities[1] != wantCities[1] {
		t.Fatalf("Cities = %v, want %v", resp.Cities, wantCities)
	}
	if !almostEqual(resp.Sales[0], 25.00) || resp.Orders[0] != 2 {
		t.Errorf("Austin = %v/%d, want 25.00/2", resp.Sales[0], resp.Orders[0])
	}

	limited, err := db.TopCities(context.Background(), 1)
	if err != nil {
		t.Fatalf("TopCities limit 1: %v", err)
	}
	if len(limited.Cities) != 1 {
		t.Errorf("limit 1 returned %d cities", len(limited.Cities))
	}
}

func TestTopProducts(t *testing.T) {
	db := openTestDB(t)

	resp, err := db.TopProducts(context.Background(), 2)
	if err != nil {
		t.Fatalf("TopProducts: %v", err)
	}
	if len(resp.Products) != 2 || resp.Products[0] != "iPhone" {
		t.Fatalf("Products = %v, want iPhone first", resp.Products)
	}
	if resp.Quantity[0] != 2 {
		t.Errorf("iPhone quantity = %d, want 2", resp.Quantity[0])
	}
}

func TestHourlySales(t *testing.T) {
	db := openTestDB(t)

	resp, err := db.HourlySales(context.Background())
	if err != nil {
		t.Fatalf("HourlySales: %v", err)
	}
	wantHours := []int{9, 14, 20}
	if len(resp.Hours) != 3 {
		t.Fatalf("Hours = %v, want %v", resp.Hours, wantHours)
	}
	for i, h := range wantHours {
		if resp.Hours[i] != h {
			t.Errorf("Hours[%d] = %d, want %d", i, resp.Hours[i], h)
		}
	}
	if !almostEqual(resp.Sales[0], 10.00) || !almostEqual(resp.Sales[1], 5.00) {
		t.Errorf("Sales = %v, want [10 5 10]", resp.Sales)
	}
}

func TestCategorySales(t *testing.T) {
	db := openTestDB(t)

	resp, err := db.CategorySales(context.Background())
	if err != nil {
		t.Fatalf("CategorySales: %v", err)
	}
	if len(resp.Categories) != 3 || resp.Categories[0] != "Phones" {
		t.Fatalf("Categories = %v, want Phones first", resp.Categories)
	}
}

func TestStateSales(t *testing.T) {
	db := openTestDB(t)

	resp, err := db.StateSales(context.Background())
	if err != nil {
		t.Fatalf("StateSales: %v", err)
	}
	if len(resp.States) != 1 || resp.States[0] != "TX" {
		t.Fatalf("States = %v, want [TX]", resp.States)
	}
	if !almostEqual(resp.Sales[0], 35.00) || resp.Orders[0] != 3 {
		t.Errorf("TX = %v/%d, want 35.00/3", resp.Sales[0], resp.Orders[0])
	}
}

func TestDailyTrend(t *testing.T) {
	db := openTestDB(t)

	resp, err := db.DailyTrend(context.Background())
	if err != nil {
		t.Fatalf("DailyTrend: %v", err)
	}
	wantDates := []string{"2019-03-05", "2019-03-06"}
	if len(resp.Dates) != 2 || resp.Dates[0] != wantDates[0] || resp.Dates[1] != wantDates[1] {
		t.Fatalf("Dates = %v, want %v", resp.Dates, wantDates)
	}
	if !almostEqual(resp.Sales[0], 15.00) || resp.Orders[0] != 2 {
		t.Errorf("day 1 = %v/%d, want 15.00/2", resp.Sales[0], resp.Orders[0])
	}
}

// Per-group sales must sum to the summary total for every grouping.
func TestGroupingsSumToSummaryTotal(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	stats, err := db.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	sum := func(values []float64) float64 {
		var acc float64
		for _, v := range values {
			acc += v
		}
		return acc
	}

	monthly, _ := db.MonthlySales(ctx)
	hourly, _ := db.HourlySales(ctx)
	categories, _ := db.CategorySales(ctx)
	states, _ := db.StateSales(ctx)
	daily, _ := db.DailyTrend(ctx)

	for name, got := range map[string]float64{
		"monthly":    sum(monthly.Sales),
		"hourly":     sum(hourly.Sales),
		"categories": sum(categories.Sales),
		"states":     sum(states.Sales),
		"daily":      sum(daily.Sales),
	} {
		if !almostEqual(got, stats.TotalRevenue) {
			t.Errorf("%s sums to %v, want %v", name, got, stats.TotalRevenue)
		}
	}
}

func TestFactCount(t *testing.T) {
	db := openTestDB(t)

	count, err := db.FactCount(context.Background())
	if err != nil {
		t.Fatalf("FactCount: %v", err)
	}
	if count != 3 {
		t.Errorf("FactCount = %d, want 3", count)
	}
}

func TestOpenReadOnlyMissingFile(t *testing.T) {
	_, err := OpenReadOnly(filepath.Join(t.TempDir(), "absent.duckdb"))
	if err == nil {
		t.Fatal("expected error for missing warehouse file")
	}
}
