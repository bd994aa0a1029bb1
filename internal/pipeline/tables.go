// Salescope - E-commerce Sales Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salescope

package pipeline

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tomtom215/salescope/internal/models"
)

// buildTables derives every dimension and summary table from the filtered
// canonical dataset. Surrogate keys are dense, 1-based, and assigned only
// after deduplication and sorting, so identical input always yields
// identical key assignments.
func buildTables(facts []models.SaleRecord) *models.Tables {
	return &models.Tables{
		Facts:           facts,
		Dates:           buildDateDim(facts),
		Times:           buildTimeDim(facts),
		Products:        buildProductDim(facts),
		Geography:       buildGeographyDim(facts),
		Monthly:         buildMonthlySummary(facts),
		Cities:          buildCitySummary(facts),
		ProductsSummary: buildProductSummary(facts),
		Hourly:          buildHourlySummary(facts),
	}
}

// buildDateDim deduplicates calendar dates and keys them in date order.
func buildDateDim(facts []models.SaleRecord) []models.DateDim {
	seen := make(map[string]models.DateDim)
	for _, f := range facts {
		if _, ok := seen[f.Date]; !ok {
			seen[f.Date] = models.DateDim{
				Date:      f.Date,
				Year:      f.Year,
				Month:     f.Month,
				MonthName: f.MonthName,
				Quarter:   f.Quarter,
				Day:       f.Day,
				DayOfWeek: f.DayOfWeek,
			}
		}
	}

	dims := make([]models.DateDim, 0, len(seen))
	for _, d := range seen {
		dims = append(dims, d)
	}
	sort.Slice(dims, func(i, j int) bool { return dims[i].Date < dims[j].Date })
	for i := range dims {
		dims[i].DateKey = i + 1
	}
	return dims
}

// buildTimeDim deduplicates observed hours and keys them in hour order.
func buildTimeDim(facts []models.SaleRecord) []models.TimeDim {
	seen := make(map[int]string)
	for _, f := range facts {
		seen[f.Hour] = f.TimePeriod
	}

	dims := make([]models.TimeDim, 0, len(seen))
	for hour, period := range seen {
		dims = append(dims, models.TimeDim{Hour: hour, TimePeriod: period})
	}
	sort.Slice(dims, func(i, j int) bool { return dims[i].Hour < dims[j].Hour })
	for i := range dims {
		dims[i].TimeKey = i + 1
	}
	return dims
}

// buildProductDim deduplicates (product, category, price) combinations and
// keys them in product-name order. A product observed at several prices
// yields one row per price.
func buildProductDim(facts []models.SaleRecord) []models.ProductDim {
	type productKey struct {
		name     string
		category string
		price    string
	}
	seen := make(map[productKey]models.ProductDim)
	for _, f := range facts {
		key := productKey{f.Product, f.Category, f.UnitPrice.String()}
		if _, ok := seen[key]; !ok {
			seen[key] = models.ProductDim{
				ProductName:   f.Product,
				Category:      f.Category,
				StandardPrice: f.UnitPrice,
			}
		}
	}

	dims := make([]models.ProductDim, 0, len(seen))
	for _, d := range seen {
		dims = append(dims, d)
	}
	sort.Slice(dims, func(i, j int) bool {
		if dims[i].ProductName != dims[j].ProductName {
			return dims[i].ProductName < dims[j].ProductName
		}
		return dims[i].StandardPrice.LessThan(dims[j].StandardPrice)
	})
	for i := range dims {
		dims[i].ProductKey = i + 1
	}
	return dims
}

// buildGeographyDim deduplicates (city, state) pairs and keys them in
// state-then-city order.
func buildGeographyDim(facts []models.SaleRecord) []models.GeographyDim {
	seen := make(map[string]models.GeographyDim)
	for _, f := range facts {
		if _, ok := seen[f.CityState]; !ok {
			seen[f.CityState] = models.GeographyDim{
				City:      f.City,
				State:     f.State,
				CityState: f.CityState,
			}
		}
	}

	dims := make([]models.GeographyDim, 0, len(seen))
	for _, d := range seen {
		dims = append(dims, d)
	}
	sort.Slice(dims, func(i, j int) bool {
		if dims[i].State != dims[j].State {
			return dims[i].State < dims[j].State
		}
		return dims[i].City < dims[j].City
	})
	for i := range dims {
		dims[i].GeoKey = i + 1
	}
	return dims
}

// aggregate accumulates the shared count/sum trio for a group.
type aggregate struct {
	orders   int
	sales    decimal.Decimal
	quantity int
	price    decimal.Decimal // running sum of unit prices, for mean price
}

func (a *aggregate) add(f models.SaleRecord) {
	a.orders++
	a.sales = a.sales.Add(f.Sales)
	a.quantity += f.Quantity
	a.price = a.price.Add(f.UnitPrice)
}

// avgOrderValue is total sales ÷ total orders, rounded to cents.
func (a *aggregate) avgOrderValue() decimal.Decimal {
	return a.sales.DivRound(decimal.NewFromInt(int64(a.orders)), 2)
}

// meanPrice is the mean unit price across orders, rounded to cents.
func (a *aggregate) meanPrice() decimal.Decimal {
	return a.price.DivRound(decimal.NewFromInt(int64(a.orders)), 2)
}

func buildMonthlySummary(facts []models.SaleRecord) []models.MonthlySummary {
	type monthKey struct {
		year  int
		month int
	}
	names := make(map[monthKey]string)
	groups := make(map[monthKey]*aggregate)
	for _, f := range facts {
		key := monthKey{f.Year, f.Month}
		if groups[key] == nil {
			groups[key] = &aggregate{}
			names[key] = f.MonthName
		}
		groups[key].add(f)
	}

	rows := make([]models.MonthlySummary, 0, len(groups))
	for key, agg := range groups {
		rows = append(rows, models.MonthlySummary{
			Year:          key.year,
			Month:         key.month,
			MonthName:     names[key],
			TotalOrders:   agg.orders,
			TotalSales:    agg.sales,
			TotalQuantity: agg.quantity,
			AvgOrderValue: agg.avgOrderValue(),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].Month < rows[j].Month
	})
	return rows
}

func buildCitySummary(facts []models.SaleRecord) []models.CitySummary {
	type cityKey struct {
		city  string
		state string
	}
	groups := make(map[cityKey]*aggregate)
	for _, f := range facts {
		key := cityKey{f.City, f.State}
		if groups[key] == nil {
			groups[key] = &aggregate{}
		}
		groups[key].add(f)
	}

	rows := make([]models.CitySummary, 0, len(groups))
	for key, agg := range groups {
		rows = append(rows, models.CitySummary{
			City:          key.city,
			State:         key.state,
			TotalOrders:   agg.orders,
			TotalSales:    agg.sales,
			TotalQuantity: agg.quantity,
			AvgOrderValue: agg.avgOrderValue(),
		})
	}
	// Sales descending; name ascending as a deterministic tie-break.
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].TotalSales.Equal(rows[j].TotalSales) {
			return rows[i].TotalSales.GreaterThan(rows[j].TotalSales)
		}
		if rows[i].State != rows[j].State {
			return rows[i].State < rows[j].State
		}
		return rows[i].City < rows[j].City
	})
	return rows
}

func buildProductSummary(facts []models.SaleRecord) []models.ProductSummary {
	groups := make(map[string]*aggregate)
	categories := make(map[string]string)
	for _, f := range facts {
		if groups[f.Product] == nil {
			groups[f.Product] = &aggregate{}
			categories[f.Product] = f.Category
		}
		groups[f.Product].add(f)
	}

	rows := make([]models.ProductSummary, 0, len(groups))
	for product, agg := range groups {
		rows = append(rows, models.ProductSummary{
			Product:       product,
			Category:      categories[product],
			TotalOrders:   agg.orders,
			TotalSales:    agg.sales,
			TotalQuantity: agg.quantity,
			AvgPrice:      agg.meanPrice(),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].TotalSales.Equal(rows[j].TotalSales) {
			return rows[i].TotalSales.GreaterThan(rows[j].TotalSales)
		}
		return rows[i].Product < rows[j].Product
	})
	return rows
}

func buildHourlySummary(facts []models.SaleRecord) []models.HourlySummary {
	groups := make(map[int]*aggregate)
	periods := make(map[int]string)
	for _, f := range facts {
		if groups[f.Hour] == nil {
			groups[f.Hour] = &aggregate{}
			periods[f.Hour] = f.TimePeriod
		}
		groups[f.Hour].add(f)
	}

	rows := make([]models.HourlySummary, 0, len(groups))
	for hour, agg := range groups {
		rows = append(rows, models.HourlySummary{
			Hour:        hour,
			TimePeriod:  periods[hour],
			TotalOrders: agg.orders,
			TotalSales:  agg.sales,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Hour < rows[j].Hour })
	return rows
}
