// Salescope - E-commerce Sales Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salescope

package pipeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/salescope/internal/models"
)

// Timestamp layouts accepted in raw exports. The monthly dumps use the
// two-digit-year layout; the four-digit variant shows up in hand-repaired
// files.
var orderDateLayouts = []string{
	"01/02/06 15:04",
	"01/02/2006 15:04",
	"2006-01-02 15:04:05",
}

// coerceRow converts a cleaned raw row into a typed canonical record with
// every derived column populated. Returns MalformedRecordError for values
// that cannot be coerced and AddressParseError for structurally invalid
// addresses; both abort the run.
func coerceRow(row rawRow) (models.SaleRecord, error) {
	var rec models.SaleRecord
	rec.OrderID = strings.TrimSpace(row.OrderID)
	rec.Product = strings.TrimSpace(row.Product)
	rec.Address = strings.TrimSpace(row.Address)

	qty, err := strconv.Atoi(strings.TrimSpace(row.Quantity))
	if err != nil || qty < 0 {
		if err == nil {
			err = fmt.Errorf("negative quantity")
		}
		return rec, &MalformedRecordError{File: row.File, Line: row.Line, Column: colQuantity, Value: row.Quantity, Err: err}
	}
	rec.Quantity = qty

	price, err := decimal.NewFromString(strings.TrimSpace(row.Price))
	if err != nil || price.IsNegative() {
		if err == nil {
			err = fmt.Errorf("negative price")
		}
		return rec, &MalformedRecordError{File: row.File, Line: row.Line, Column: colPrice, Value: row.Price, Err: err}
	}
	rec.UnitPrice = price

	orderedAt, err := parseOrderDate(strings.TrimSpace(row.Date))
	if err != nil {
		return rec, &MalformedRecordError{File: row.File, Line: row.Line, Column: colDate, Value: row.Date, Err: err}
	}
	rec.OrderedAt = orderedAt

	city, state, err := parseAddress(rec.Address)
	if err != nil {
		return rec, &AddressParseError{File: row.File, Line: row.Line, Address: rec.Address}
	}
	rec.City = city
	rec.State = state
	rec.CityState = fmt.Sprintf("%s (%s)", city, state)

	rec.Year = orderedAt.Year()
	rec.Month = int(orderedAt.Month())
	rec.MonthName = orderedAt.Month().String()
	rec.Quarter = (rec.Month-1)/3 + 1
	rec.Day = orderedAt.Day()
	rec.DayOfWeek = orderedAt.Weekday().String()
	rec.Hour = orderedAt.Hour()
	rec.Date = orderedAt.Format("2006-01-02")

	rec.Sales = price.Mul(decimal.NewFromInt(int64(qty)))
	rec.TimePeriod = timePeriodFor(rec.Hour)
	rec.Category = categorize(rec.Product)

	return rec, nil
}

// parseOrderDate tries each accepted layout in order.
func parseOrderDate(value string) (time.Time, error) {
	for _, layout := range orderDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// parseAddress extracts city and state from a purchase address of the form
// "917 1st St, Dallas, TX 75001". Segment 1 is the city; the state code is
// the first whitespace-delimited token of segment 2.
func parseAddress(address string) (city, state string, err error) {
	segments := strings.Split(address, ",")
	if len(segments) < 3 {
		return "", "", fmt.Errorf("expected 3 comma-delimited segments, got %d", len(segments))
	}
	city = strings.TrimSpace(segments[1])
	stateFields := strings.Fields(segments[2])
	if city == "" || len(stateFields) == 0 {
		return "", "", fmt.Errorf("empty city or state segment")
	}
	return city, stateFields[0], nil
}

// timePeriod is one bucket in the hour-of-day partition.
type timePeriod struct {
	from  int // inclusive
	to    int // exclusive
	label string
}

// timePeriods partitions hours 0-23 into four labeled buckets.
var timePeriods = []timePeriod{
	{0, 6, "Night (0-6)"},
	{6, 12, "Morning (6-12)"},
	{12, 18, "Afternoon (12-18)"},
	{18, 24, "Evening (18-24)"},
}

// timePeriodFor buckets an hour of day. The buckets are a total partition,
// so the fallthrough is unreachable for hours 0-23.
func timePeriodFor(hour int) string {
	for _, p := range timePeriods {
		if hour >= p.from && hour < p.to {
			return p.label
		}
	}
	return timePeriods[0].label
}

// categoryRule maps product-name keywords to a category. Rules are evaluated
// in order and the first match wins, so a product mentioning both "Phone" and
// "Cable" lands in Phones.
type categoryRule struct {
	keywords []string
	category string
}

var categoryRules = []categoryRule{
	{[]string{"Phone", "iPhone"}, "Phones"},
	{[]string{"Cable", "Charging"}, "Cables & Chargers"},
	{[]string{"Headphones", "Earbuds"}, "Audio"},
	{[]string{"Monitor", "TV"}, "Displays"},
	{[]string{"Laptop", "Macbook"}, "Computers"},
	{[]string{"Battery", "Batteries"}, "Batteries"},
}

// categoryOther is the catch-all for products matching no keyword.
// Intentional classification, not an error.
const categoryOther = "Other"

// categorize assigns exactly one category to a product name.
func categorize(product string) string {
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(product, kw) {
				return rule.category
			}
		}
	}
	return categoryOther
}
