// Salescope - E-commerce Sales Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salescope

package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tomtom215/salescope/internal/models"
)

// Artifact file names written to the output directory.
const (
	fileFactSales      = "FactSales.csv"
	fileDimDate        = "DimDate.csv"
	fileDimTime        = "DimTime.csv"
	fileDimProduct     = "DimProduct.csv"
	fileDimGeography   = "DimGeography.csv"
	fileMonthlySummary = "MonthlySummary.csv"
	fileCitySummary    = "CitySummary.csv"
	fileProductSummary = "ProductSummary.csv"
	fileHourlySummary  = "HourlySummary.csv"
	fileCompleteData   = "SalesData_Complete.csv"
	fileModelReadme    = "DATA_MODEL_README.md"
)

// writeArtifacts writes every table as CSV plus the data-model document
// into dir. Callers hand it a staging directory and rename that into place
// themselves, so the artifact set commits together with the warehouse.
func writeArtifacts(dir string, tables *models.Tables) error {
	writers := []struct {
		name  string
		write func(*csv.Writer) error
	}{
		{fileFactSales, func(w *csv.Writer) error { return writeFactSales(w, tables.Facts) }},
		{fileDimDate, func(w *csv.Writer) error { return writeDimDate(w, tables.Dates) }},
		{fileDimTime, func(w *csv.Writer) error { return writeDimTime(w, tables.Times) }},
		{fileDimProduct, func(w *csv.Writer) error { return writeDimProduct(w, tables.Products) }},
		{fileDimGeography, func(w *csv.Writer) error { return writeDimGeography(w, tables.Geography) }},
		{fileMonthlySummary, func(w *csv.Writer) error { return writeMonthlySummary(w, tables.Monthly) }},
		{fileCitySummary, func(w *csv.Writer) error { return writeCitySummary(w, tables.Cities) }},
		{fileProductSummary, func(w *csv.Writer) error { return writeProductSummary(w, tables.ProductsSummary) }},
		{fileHourlySummary, func(w *csv.Writer) error { return writeHourlySummary(w, tables.Hourly) }},
		{fileCompleteData, func(w *csv.Writer) error { return writeCompleteData(w, tables.Facts) }},
	}
	for _, artifact := range writers {
		if err := writeCSVFile(filepath.Join(dir, artifact.name), artifact.write); err != nil {
			return err
		}
	}

	readme := renderModelReadme(tables)
	if err := os.WriteFile(filepath.Join(dir, fileModelReadme), []byte(readme), 0o640); err != nil {
		return fmt.Errorf("failed to write %s: %w", fileModelReadme, err)
	}
	return nil
}

// writeCSVFile opens path, hands a csv.Writer to fn, and flushes.
func writeCSVFile(path string, fn func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := fn(w); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

func writeFactSales(w *csv.Writer, facts []models.SaleRecord) error {
	if err := w.Write([]string{"OrderID", "OrderDateTime", "OrderDate", "Product", "QuantityOrdered", "PriceEach", "SalesAmount", "City", "State", "ProductCategory"}); err != nil {
		return err
	}
	for _, f := range facts {
		row := []string{
			f.OrderID,
			f.OrderedAt.Format("2006-01-02 15:04:05"),
			f.Date,
			f.Product,
			strconv.Itoa(f.Quantity),
			f.UnitPrice.StringFixed(2),
			f.Sales.StringFixed(2),
			f.City,
			f.State,
			f.Category,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeDimDate(w *csv.Writer, dims []models.DateDim) error {
	if err := w.Write([]string{"DateKey", "Date", "Year", "Month", "MonthName", "Quarter", "Day", "DayOfWeek"}); err != nil {
		return err
	}
	for _, d := range dims {
		row := []string{
			strconv.Itoa(d.DateKey), d.Date, strconv.Itoa(d.Year), strconv.Itoa(d.Month),
			d.MonthName, strconv.Itoa(d.Quarter), strconv.Itoa(d.Day), d.DayOfWeek,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeDimTime(w *csv.Writer, dims []models.TimeDim) error {
	if err := w.Write([]string{"TimeKey", "Hour", "TimePeriod"}); err != nil {
		return err
	}
	for _, d := range dims {
		if err := w.Write([]string{strconv.Itoa(d.TimeKey), strconv.Itoa(d.Hour), d.TimePeriod}); err != nil {
			return err
		}
	}
	return nil
}

func writeDimProduct(w *csv.Writer, dims []models.ProductDim) error {
	if err := w.Write([]string{"ProductKey", "ProductName", "ProductCategory", "StandardPrice"}); err != nil {
		return err
	}
	for _, d := range dims {
		if err := w.Write([]string{strconv.Itoa(d.ProductKey), d.ProductName, d.Category, d.StandardPrice.StringFixed(2)}); err != nil {
			return err
		}
	}
	return nil
}

func writeDimGeography(w *csv.Writer, dims []models.GeographyDim) error {
	if err := w.Write([]string{"GeoKey", "City", "State", "CityState"}); err != nil {
		return err
	}
	for _, d := range dims {
		if err := w.Write([]string{strconv.Itoa(d.GeoKey), d.City, d.State, d.CityState}); err != nil {
			return err
		}
	}
	return nil
}

func writeMonthlySummary(w *csv.Writer, rows []models.MonthlySummary) error {
	if err := w.Write([]string{"Year", "Month", "MonthName", "TotalOrders", "TotalSales", "TotalQuantity", "AvgOrderValue"}); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Year), strconv.Itoa(r.Month), r.MonthName,
			strconv.Itoa(r.TotalOrders), r.TotalSales.StringFixed(2),
			strconv.Itoa(r.TotalQuantity), r.AvgOrderValue.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeCitySummary(w *csv.Writer, rows []models.CitySummary) error {
	if err := w.Write([]string{"City", "State", "TotalOrders", "TotalSales", "TotalQuantity", "AvgOrderValue"}); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{
			r.City, r.State, strconv.Itoa(r.TotalOrders), r.TotalSales.StringFixed(2),
			strconv.Itoa(r.TotalQuantity), r.AvgOrderValue.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeProductSummary(w *csv.Writer, rows []models.ProductSummary) error {
	if err := w.Write([]string{"Product", "ProductCategory", "TotalOrders", "TotalSales", "TotalQuantity", "AvgPrice"}); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{
			r.Product, r.Category, strconv.Itoa(r.TotalOrders), r.TotalSales.StringFixed(2),
			strconv.Itoa(r.TotalQuantity), r.AvgPrice.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeHourlySummary(w *csv.Writer, rows []models.HourlySummary) error {
	if err := w.Write([]string{"Hour", "TimePeriod", "TotalOrders", "TotalSales"}); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{strconv.Itoa(r.Hour), r.TimePeriod, strconv.Itoa(r.TotalOrders), r.TotalSales.StringFixed(2)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// writeCompleteData writes the canonical dataset with every derived column.
func writeCompleteData(w *csv.Writer, facts []models.SaleRecord) error {
	header := []string{
		"OrderID", "Product", "QuantityOrdered", "PriceEach", "OrderDate", "PurchaseAddress",
		"City", "State", "CityState", "Year", "Month", "MonthName", "Quarter", "Day",
		"DayOfWeek", "Hour", "Date", "Sales", "TimePeriod", "ProductCategory",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, f := range facts {
		row := []string{
			f.OrderID, f.Product, strconv.Itoa(f.Quantity), f.UnitPrice.StringFixed(2),
			f.OrderedAt.Format("2006-01-02 15:04:05"), f.Address,
			f.City, f.State, f.CityState, strconv.Itoa(f.Year), strconv.Itoa(f.Month),
			f.MonthName, strconv.Itoa(f.Quarter), strconv.Itoa(f.Day),
			f.DayOfWeek, strconv.Itoa(f.Hour), f.Date, f.Sales.StringFixed(2),
			f.TimePeriod, f.Category,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
