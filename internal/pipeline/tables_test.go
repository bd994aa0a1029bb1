// Salescope - E-commerce Sales Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salescope

package pipeline

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/salescope/internal/models"
)

// decimalFromStrings sums decimal strings and returns the total as a
// fixed-point string.
func decimalFromStrings(t *testing.T, values []string) string {
	t.Helper()
	acc := decimal.Zero
	for _, v := range values {
		d, err := decimal.NewFromString(v)
		if err != nil {
			t.Fatalf("bad decimal %q: %v", v, err)
		}
		acc = acc.Add(d)
	}
	return acc.StringFixed(2)
}

// fixtureFacts builds the canonical records for the three-row reference
// dataset: two Austin orders in March and one Dallas order.
func fixtureFacts(t *testing.T) []models.SaleRecord {
	t.Helper()

	rows := []rawRow{
		{OrderID: "1", Product: "iPhone", Quantity: "2", Price: "10.00", Date: "03/05/19 09:00", Address: "123 Main St, Austin, TX 73301"},
		{OrderID: "2", Product: "USB-C Charging Cable", Quantity: "1", Price: "5.00", Date: "03/05/19 14:00", Address: "55 Oak Ave, Austin, TX 73301"},
		{OrderID: "3", Product: "AA Batteries (4-pack)", Quantity: "4", Price: "2.50", Date: "03/06/19 20:00", Address: "9 Elm Rd, Dallas, TX 75001"},
	}

	facts := make([]models.SaleRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := coerceRow(row)
		if err != nil {
			t.Fatalf("coerceRow(%+v): %v", row, err)
		}
		facts = append(facts, rec)
	}
	return facts
}

func TestBuildDateDim(t *testing.T) {
	dims := buildDateDim(fixtureFacts(t))

	if len(dims) != 2 {
		t.Fatalf("got %d date rows, want 2", len(dims))
	}
	if dims[0].Date != "2019-03-05" || dims[1].Date != "2019-03-06" {
		t.Errorf("dates = %q, %q; want 2019-03-05, 2019-03-06", dims[0].Date, dims[1].Date)
	}
	for i, d := range dims {
		if d.DateKey != i+1 {
			t.Errorf("DateKey[%d] = %d, want %d", i, d.DateKey, i+1)
		}
	}
}

func TestBuildTimeDim(t *testing.T) {
	dims := buildTimeDim(fixtureFacts(t))

	wantHours := []int{9, 14, 20}
	wantPeriods := []string{"Morning (6-12)", "Afternoon (12-18)", "Evening (18-24)"}
	if len(dims) != len(wantHours) {
		t.Fatalf("got %d time rows, want %d", len(dims), len(wantHours))
	}
	for i, d := range dims {
		if d.TimeKey != i+1 || d.Hour != wantHours[i] || d.TimePeriod != wantPeriods[i] {
			t.Errorf("row %d = %+v, want key=%d hour=%d period=%q", i, d, i+1, wantHours[i], wantPeriods[i])
		}
	}
}

func TestBuildProductDim(t *testing.T) {
	facts := fixtureFacts(t)
	// Same product at a second price must yield a second dimension row.
	extra, err := coerceRow(rawRow{OrderID: "4", Product: "iPhone", Quantity: "1", Price: "12.00", Date: "03/07/19 10:00", Address: "1 C St, Austin, TX 73301"})
	if err != nil {
		t.Fatal(err)
	}
	facts = append(facts, extra)

	dims := buildProductDim(facts)
	if len(dims) != 4 {
		t.Fatalf("got %d product rows, want 4", len(dims))
	}

	var names []string
	for i, d := range dims {
		if d.ProductKey != i+1 {
			t.Errorf("ProductKey[%d] = %d, want %d", i, d.ProductKey, i+1)
		}
		names = append(names, d.ProductName)
	}
	want := []string{"AA Batteries (4-pack)", "USB-C Charging Cable", "iPhone", "iPhone"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("product order = %v, want %v", names, want)
	}
	// The duplicate product sorts by price within the name.
	if !dims[2].StandardPrice.LessThan(dims[3].StandardPrice) {
		t.Errorf("iPhone prices not ascending: %s then %s", dims[2].StandardPrice, dims[3].StandardPrice)
	}
}

func TestBuildGeographyDim(t *testing.T) {
	dims := buildGeographyDim(fixtureFacts(t))

	if len(dims) != 2 {
		t.Fatalf("got %d geography rows, want 2", len(dims))
	}
	// Both are TX, so city breaks the tie: Austin before Dallas.
	if dims[0].City != "Austin" || dims[1].City != "Dallas" {
		t.Errorf("cities = %q, %q; want Austin, Dallas", dims[0].City, dims[1].City)
	}
	if dims[0].GeoKey != 1 || dims[1].GeoKey != 2 {
		t.Errorf("keys = %d, %d; want 1, 2", dims[0].GeoKey, dims[1].GeoKey)
	}
	if dims[0].CityState != "Austin (TX)" {
		t.Errorf("CityState = %q, want Austin (TX)", dims[0].CityState)
	}
}

func TestBuildMonthlySummary(t *testing.T) {
	rows := buildMonthlySummary(fixtureFacts(t))

	if len(rows) != 1 {
		t.Fatalf("got %d monthly rows, want 1", len(rows))
	}
	m := rows[0]
	if m.Year != 2019 || m.Month != 3 || m.MonthName != "March" {
		t.Errorf("month = %d-%d %q, want 2019-3 March", m.Year, m.Month, m.MonthName)
	}
	if m.TotalOrders != 3 || m.TotalQuantity != 7 {
		t.Errorf("orders/quantity = %d/%d, want 3/7", m.TotalOrders, m.TotalQuantity)
	}
	if got := m.TotalSales.StringFixed(2); got != "35.00" {
		t.Errorf("TotalSales = %s, want 35.00", got)
	}
	// 35.00 / 3 rounded to cents.
	if got := m.AvgOrderValue.StringFixed(2); got != "11.67" {
		t.Errorf("AvgOrderValue = %s, want 11.67", got)
	}
}

func TestBuildCitySummary(t *testing.T) {
	rows := buildCitySummary(fixtureFacts(t))

	if len(rows) != 2 {
		t.Fatalf("got %d city rows, want 2", len(rows))
	}
	if rows[0].City != "Austin" || rows[0].TotalSales.StringFixed(2) != "25.00" || rows[0].TotalOrders != 2 {
		t.Errorf("row 0 = %+v, want Austin 25.00/2", rows[0])
	}
	if rows[1].City != "Dallas" || rows[1].TotalSales.StringFixed(2) != "10.00" || rows[1].TotalOrders != 1 {
		t.Errorf("row 1 = %+v, want Dallas 10.00/1", rows[1])
	}
}

func TestBuildProductSummaryOrder(t *testing.T) {
	rows := buildProductSummary(fixtureFacts(t))

	if len(rows) != 3 {
		t.Fatalf("got %d product rows, want 3", len(rows))
	}
	// iPhone 20.00, Batteries 10.00, Cable 5.00
	want := []string{"iPhone", "AA Batteries (4-pack)", "USB-C Charging Cable"}
	for i, w := range want {
		if rows[i].Product != w {
			t.Errorf("row %d product = %q, want %q", i, rows[i].Product, w)
		}
	}
	if got := rows[1].AvgPrice.StringFixed(2); got != "2.50" {
		t.Errorf("batteries AvgPrice = %s, want 2.50", got)
	}
}

func TestBuildHourlySummary(t *testing.T) {
	rows := buildHourlySummary(fixtureFacts(t))

	want := []struct {
		hour   int
		sales  string
		orders int
	}{
		{9, "10.00", 1},
		{14, "5.00", 1},
		{20, "10.00", 1},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d hourly rows, want %d", len(rows), len(want))
	}
	for i, w := range want {
		if rows[i].Hour != w.hour || rows[i].TotalSales.StringFixed(2) != w.sales || rows[i].TotalOrders != w.orders {
			t.Errorf("row %d = %+v, want hour=%d sales=%s orders=%d", i, rows[i], w.hour, w.sales, w.orders)
		}
	}
}

// The per-group sums of every grouping must equal the dataset total.
func TestGroupingsSumToTotal(t *testing.T) {
	facts := fixtureFacts(t)
	tables := buildTables(facts)

	total := "35.00"

	sum := func(name string, values []string) {
		t.Helper()
		acc := decimalFromStrings(t, values)
		if acc != total {
			t.Errorf("%s sums to %s, want %s", name, acc, total)
		}
	}

	var monthly, cities, products, hourly []string
	for _, r := range tables.Monthly {
		monthly = append(monthly, r.TotalSales.String())
	}
	for _, r := range tables.Cities {
		cities = append(cities, r.TotalSales.String())
	}
	for _, r := range tables.ProductsSummary {
		products = append(products, r.TotalSales.String())
	}
	for _, r := range tables.Hourly {
		hourly = append(hourly, r.TotalSales.String())
	}

	sum("monthly", monthly)
	sum("cities", cities)
	sum("products", products)
	sum("hourly", hourly)
}

func TestFilterYearIdempotent(t *testing.T) {
	facts := fixtureFacts(t)
	old, err := coerceRow(rawRow{OrderID: "9", Product: "iPhone", Quantity: "1", Price: "1.00", Date: "12/30/18 10:00", Address: "2 D St, Austin, TX 73301"})
	if err != nil {
		t.Fatal(err)
	}
	facts = append(facts, old)

	once := filterYear(facts, 2019)
	if len(once) != 3 {
		t.Fatalf("first filter kept %d records, want 3", len(once))
	}
	twice := filterYear(once, 2019)
	if !reflect.DeepEqual(once, twice) {
		t.Error("filtering already-filtered data changed the dataset")
	}
}
