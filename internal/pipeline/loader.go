// Salescope - E-commerce Sales Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salescope

package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tomtom215/salescope/internal/logging"
)

// Raw export column headers. Files may order columns differently; the loader
// maps by header name, but every file must carry exactly this column set.
const (
	colOrderID  = "Order ID"
	colProduct  = "Product"
	colQuantity = "Quantity Ordered"
	colPrice    = "Price Each"
	colDate     = "Order Date"
	colAddress  = "Purchase Address"
)

var requiredColumns = []string{colOrderID, colProduct, colQuantity, colPrice, colDate, colAddress}

// rawRow is one uncoerced transaction line with its provenance, kept so
// coercion and derivation failures can point at the offending file and line.
type rawRow struct {
	File string
	Line int

	OrderID  string
	Product  string
	Quantity string
	Price    string
	Date     string
	Address  string
}

// loadRawFiles reads every *.csv in dir in lexical order and concatenates
// their rows. Returns NoInputDataError for an empty directory and
// SchemaMismatchError when a file's column set differs from the first.
func loadRawFiles(dir string) ([]rawRow, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		files = append(files, entry.Name())
	}
	if len(files) == 0 {
		return nil, &NoInputDataError{Dir: dir}
	}
	// Lexical order keeps concatenation deterministic across runs.
	sort.Strings(files)

	var rows []rawRow
	var schema []string
	for _, name := range files {
		path := filepath.Join(dir, name)
		fileRows, fileSchema, err := loadRawFile(path)
		if err != nil {
			return nil, err
		}
		if schema == nil {
			schema = fileSchema
		} else if !sameColumnSet(schema, fileSchema) {
			return nil, &SchemaMismatchError{File: name, Expected: schema, Actual: fileSchema}
		}
		rows = append(rows, fileRows...)
		logging.Debug().Str("file", name).Int("rows", len(fileRows)).Msg("Loaded input file")
	}

	logging.Info().Int("files", len(files)).Int("rows", len(rows)).Msg("Raw data loaded")
	return rows, nil
}

// loadRawFile reads a single export file and maps its columns by header name.
func loadRawFile(path string) ([]rawRow, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows surface as missing fields in cleaning

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, nil, &SchemaMismatchError{
				File:     filepath.Base(path),
				Expected: requiredColumns,
				Actual:   header,
			}
		}
	}

	name := filepath.Base(path)
	var rows []rawRow
	line := 1
	for {
		record, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s line %d: %w", path, line, err)
		}
		rows = append(rows, rawRow{
			File:     name,
			Line:     line,
			OrderID:  field(record, index[colOrderID]),
			Product:  field(record, index[colProduct]),
			Quantity: field(record, index[colQuantity]),
			Price:    field(record, index[colPrice]),
			Date:     field(record, index[colDate]),
			Address:  field(record, index[colAddress]),
		})
	}

	schema := make([]string, len(header))
	for i, col := range header {
		schema[i] = strings.TrimSpace(col)
	}
	sort.Strings(schema)
	return rows, schema, nil
}

// field returns record[i] or empty string when the row is too short.
func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}

// sameColumnSet compares two sorted column lists.
func sameColumnSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// cleanRows drops header rows that re-appear as data when monthly exports are
// concatenated, then rows with any missing field. Both removals are counted
// and logged; unlike coercion failures these drops are expected in the raw
// exports.
func cleanRows(rows []rawRow) []rawRow {
	cleaned := make([]rawRow, 0, len(rows))
	headerRows, missingField := 0, 0
	for _, row := range rows {
		if strings.TrimSpace(row.OrderID) == colOrderID {
			headerRows++
			continue
		}
		if hasMissingField(row) {
			missingField++
			continue
		}
		cleaned = append(cleaned, row)
	}

	logging.Info().
		Int("input_rows", len(rows)).
		Int("header_rows_dropped", headerRows).
		Int("missing_field_dropped", missingField).
		Int("clean_rows", len(cleaned)).
		Msg("Data cleaned")
	recordDropped("header_row", headerRows)
	recordDropped("missing_field", missingField)
	return cleaned
}

// hasMissingField reports whether any raw column is empty or whitespace.
func hasMissingField(row rawRow) bool {
	for _, v := range []string{row.OrderID, row.Product, row.Quantity, row.Price, row.Date, row.Address} {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
