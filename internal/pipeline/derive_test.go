// Salescope - E-commerce Sales Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salescope

package pipeline

import (
	"errors"
	"testing"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name    string
		product string
		want    string
	}{
		{"iphone", "iPhone", "Phones"},
		{"google phone", "Google Phone", "Phones"},
		{"charging cable", "Lightning Charging Cable", "Cables & Chargers"},
		{"usb cable", "USB-C Charging Cable", "Cables & Chargers"},
		{"headphones", "Bose SoundSport Headphones", "Audio"},
		{"earbuds", "Wired Earbuds", "Audio"},
		{"monitor", "27in 4K Gaming Monitor", "Displays"},
		{"tv", "Flatscreen TV", "Displays"},
		{"laptop", "ThinkPad Laptop", "Computers"},
		{"macbook", "Macbook Pro Laptop", "Computers"},
		{"batteries", "AA Batteries (4-pack)", "Batteries"},
		{"unmatched", "LG Washing Machine", "Other"},
		{"empty", "", "Other"},
		// First rule wins: "Phone" outranks "Cable".
		{"phone and cable", "Phone Charging Cable", "Phones"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := categorize(tt.product); got != tt.want {
				t.Errorf("categorize(%q) = %q, want %q", tt.product, got, tt.want)
			}
		})
	}
}

func TestTimePeriodFor(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "Night (0-6)"},
		{5, "Night (0-6)"},
		{6, "Morning (6-12)"},
		{11, "Morning (6-12)"},
		{12, "Afternoon (12-18)"},
		{17, "Afternoon (12-18)"},
		{18, "Evening (18-24)"},
		{23, "Evening (18-24)"},
	}

	for _, tt := range tests {
		if got := timePeriodFor(tt.hour); got != tt.want {
			t.Errorf("timePeriodFor(%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

// Every hour of the day must land in exactly one bucket.
func TestTimePeriodsArePartition(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		matches := 0
		for _, p := range timePeriods {
			if hour >= p.from && hour < p.to {
				matches++
			}
		}
		if matches != 1 {
			t.Errorf("hour %d matched %d buckets, want exactly 1", hour, matches)
		}
	}
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name      string
		address   string
		wantCity  string
		wantState string
		wantErr   bool
	}{
		{"standard", "917 1st St, Dallas, TX 75001", "Dallas", "TX", false},
		{"extra spaces", "123 Main St,  Austin ,  TX 73301", "Austin", "TX", false},
		{"two part city", "1 Pike Pl, New York City, NY 10001", "New York City", "NY", false},
		{"missing segment", "Dallas, TX 75001", "", "", true},
		{"empty", "", "", "", true},
		{"blank city", "917 1st St, , TX 75001", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city, state, err := parseAddress(tt.address)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseAddress(%q) expected error, got city=%q state=%q", tt.address, city, state)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAddress(%q) unexpected error: %v", tt.address, err)
			}
			if city != tt.wantCity || state != tt.wantState {
				t.Errorf("parseAddress(%q) = (%q, %q), want (%q, %q)", tt.address, city, state, tt.wantCity, tt.wantState)
			}
		})
	}
}

func TestParseOrderDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"two digit year", "03/05/19 09:14", true},
		{"four digit year", "03/05/2019 09:14", true},
		{"iso", "2019-03-05 09:14:00", true},
		{"garbage", "not a date", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOrderDate(tt.value)
			if tt.ok && err != nil {
				t.Fatalf("parseOrderDate(%q) unexpected error: %v", tt.value, err)
			}
			if !tt.ok && err == nil {
				t.Fatalf("parseOrderDate(%q) expected error, got %v", tt.value, got)
			}
			if tt.ok && (got.Year() != 2019 || got.Month() != 3 || got.Day() != 5) {
				t.Errorf("parseOrderDate(%q) = %v, want 2019-03-05", tt.value, got)
			}
		})
	}
}

func TestCoerceRow(t *testing.T) {
	row := rawRow{
		File:     "sales_march.csv",
		Line:     2,
		OrderID:  "176558",
		Product:  "USB-C Charging Cable",
		Quantity: "2",
		Price:    "11.95",
		Date:     "03/05/19 09:14",
		Address:  "917 1st St, Dallas, TX 75001",
	}

	rec, err := coerceRow(row)
	if err != nil {
		t.Fatalf("coerceRow returned error: %v", err)
	}

	if rec.Quantity != 2 {
		t.Errorf("Quantity = %d, want 2", rec.Quantity)
	}
	if got := rec.Sales.StringFixed(2); got != "23.90" {
		t.Errorf("Sales = %s, want 23.90", got)
	}
	if rec.City != "Dallas" || rec.State != "TX" {
		t.Errorf("City/State = %q/%q, want Dallas/TX", rec.City, rec.State)
	}
	if rec.CityState != "Dallas (TX)" {
		t.Errorf("CityState = %q, want Dallas (TX)", rec.CityState)
	}
	if rec.Year != 2019 || rec.Month != 3 || rec.Day != 5 {
		t.Errorf("calendar = %d-%d-%d, want 2019-3-5", rec.Year, rec.Month, rec.Day)
	}
	if rec.MonthName != "March" || rec.Quarter != 1 {
		t.Errorf("MonthName/Quarter = %q/%d, want March/1", rec.MonthName, rec.Quarter)
	}
	if rec.DayOfWeek != "Tuesday" {
		t.Errorf("DayOfWeek = %q, want Tuesday", rec.DayOfWeek)
	}
	if rec.Hour != 9 || rec.TimePeriod != "Morning (6-12)" {
		t.Errorf("Hour/TimePeriod = %d/%q, want 9/Morning (6-12)", rec.Hour, rec.TimePeriod)
	}
	if rec.Date != "2019-03-05" {
		t.Errorf("Date = %q, want 2019-03-05", rec.Date)
	}
	if rec.Category != "Cables & Chargers" {
		t.Errorf("Category = %q, want Cables & Chargers", rec.Category)
	}
}

// Exact decimal arithmetic: 0.1 * 3 must be exactly 0.30, not 0.30000000000000004.
func TestCoerceRowExactMoney(t *testing.T) {
	row := rawRow{
		OrderID:  "1",
		Product:  "AA Batteries (4-pack)",
		Quantity: "3",
		Price:    "0.1",
		Date:     "04/01/19 10:00",
		Address:  "1 A St, Austin, TX 73301",
	}
	rec, err := coerceRow(row)
	if err != nil {
		t.Fatalf("coerceRow returned error: %v", err)
	}
	if got := rec.Sales.String(); got != "0.3" {
		t.Errorf("Sales = %s, want 0.3", got)
	}
}

func TestCoerceRowErrors(t *testing.T) {
	valid := rawRow{
		File:     "sales.csv",
		Line:     7,
		OrderID:  "1",
		Product:  "iPhone",
		Quantity: "1",
		Price:    "700.00",
		Date:     "02/10/19 12:00",
		Address:  "5 B St, Dallas, TX 75001",
	}

	tests := []struct {
		name    string
		mutate  func(*rawRow)
		column  string
		address bool
	}{
		{"bad quantity", func(r *rawRow) { r.Quantity = "two" }, colQuantity, false},
		{"negative quantity", func(r *rawRow) { r.Quantity = "-1" }, colQuantity, false},
		{"bad price", func(r *rawRow) { r.Price = "$700" }, colPrice, false},
		{"negative price", func(r *rawRow) { r.Price = "-1.00" }, colPrice, false},
		{"bad date", func(r *rawRow) { r.Date = "yesterday" }, colDate, false},
		{"short address", func(r *rawRow) { r.Address = "Dallas TX" }, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := valid
			tt.mutate(&row)
			_, err := coerceRow(row)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			if tt.address {
				var addrErr *AddressParseError
				if !errors.As(err, &addrErr) {
					t.Fatalf("expected AddressParseError, got %T: %v", err, err)
				}
				if addrErr.File != "sales.csv" || addrErr.Line != 7 {
					t.Errorf("provenance = %s:%d, want sales.csv:7", addrErr.File, addrErr.Line)
				}
				return
			}

			var malformed *MalformedRecordError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedRecordError, got %T: %v", err, err)
			}
			if malformed.Column != tt.column {
				t.Errorf("Column = %q, want %q", malformed.Column, tt.column)
			}
			if malformed.File != "sales.csv" || malformed.Line != 7 {
				t.Errorf("provenance = %s:%d, want sales.csv:7", malformed.File, malformed.Line)
			}
		})
	}
}
