// Salescope - E-commerce Sales Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salescope

package pipeline

import (
	"fmt"
	"strings"

	"github.com/tomtom215/salescope/internal/models"
)

// renderModelReadme produces the human-readable data-model document written
// next to the CSV artifacts. It documents the star schema, the relationships
// and measures a dashboard should define over it, and the row counts of the
// run that produced it.
func renderModelReadme(tables *models.Tables) string {
	var b strings.Builder

	b.WriteString("# Sales Data Model\n\n")
	b.WriteString("Star-schema dataset produced by the Salescope transform pipeline.\n")
	b.WriteString("All files share surrogate keys that are dense, 1-based, and stable\n")
	b.WriteString("for identical input.\n\n")

	b.WriteString("## Fact Table\n\n")
	fmt.Fprintf(&b, "- `%s` (%d rows): one row per order line, with sales amount,\n", fileFactSales, len(tables.Facts))
	b.WriteString("  city, state, and product category resolved.\n\n")

	b.WriteString("## Dimension Tables\n\n")
	fmt.Fprintf(&b, "- `%s` (%d rows): calendar attributes per distinct order date.\n", fileDimDate, len(tables.Dates))
	fmt.Fprintf(&b, "- `%s` (%d rows): hour of day with its time-period bucket.\n", fileDimTime, len(tables.Times))
	fmt.Fprintf(&b, "- `%s` (%d rows): product name, category, and unit price.\n", fileDimProduct, len(tables.Products))
	fmt.Fprintf(&b, "- `%s` (%d rows): city and state per distinct location.\n\n", fileDimGeography, len(tables.Geography))

	b.WriteString("## Summary Tables\n\n")
	fmt.Fprintf(&b, "- `%s` (%d rows): orders, sales, quantity, and average order value per calendar month.\n", fileMonthlySummary, len(tables.Monthly))
	fmt.Fprintf(&b, "- `%s` (%d rows): per-city totals, sorted by sales descending.\n", fileCitySummary, len(tables.Cities))
	fmt.Fprintf(&b, "- `%s` (%d rows): per-product totals, sorted by sales descending.\n", fileProductSummary, len(tables.ProductsSummary))
	fmt.Fprintf(&b, "- `%s` (%d rows): per-hour totals in hour order.\n\n", fileHourlySummary, len(tables.Hourly))

	b.WriteString("## Relationships\n\n")
	fmt.Fprintf(&b, "- `%s`.OrderDate -> `%s`.Date (many-to-one).\n", fileFactSales, fileDimDate)
	fmt.Fprintf(&b, "- `%s`.Product -> `%s`.ProductName (many-to-one).\n", fileFactSales, fileDimProduct)
	fmt.Fprintf(&b, "- `%s`.City -> `%s`.City (many-to-one).\n\n", fileFactSales, fileDimGeography)

	b.WriteString("## Suggested Measures\n\n")
	b.WriteString("- Total Sales: sum of `SalesAmount`.\n")
	b.WriteString("- Total Orders: count of fact rows.\n")
	b.WriteString("- Total Quantity: sum of `QuantityOrdered`.\n")
	b.WriteString("- Average Order Value: Total Sales divided by Total Orders.\n\n")

	b.WriteString("## Complete Dataset\n\n")
	fmt.Fprintf(&b, "- `%s` (%d rows): the canonical dataset with every derived\n", fileCompleteData, len(tables.Facts))
	b.WriteString("  column (calendar fields, geography, sales amount, time period,\n")
	b.WriteString("  product category).\n\n")

	b.WriteString("## Derived Columns\n\n")
	b.WriteString("- `Sales` = `QuantityOrdered` x `PriceEach`, exact decimal arithmetic.\n")
	b.WriteString("- `TimePeriod`: Night (0-6), Morning (6-12), Afternoon (12-18), Evening (18-24).\n")
	b.WriteString("- `ProductCategory`: first-match keyword rules; unmatched products are `Other`.\n")
	b.WriteString("- `City`/`State`: parsed from the purchase address (street, city, state zip).\n")

	return b.String()
}
