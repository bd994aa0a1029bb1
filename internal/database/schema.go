// Salescope - E-commerce Sales Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salescope

package database

// Warehouse DDL. Money columns use DECIMAL(12,2) so aggregates stay exact
// inside DuckDB; values are converted to float64 only at the JSON boundary.
const schemaSQL = `
CREATE TABLE fact_sales (
	order_id         VARCHAR NOT NULL,
	ordered_at       TIMESTAMP NOT NULL,
	order_date       DATE NOT NULL,
	product          VARCHAR NOT NULL,
	quantity         INTEGER NOT NULL,
	unit_price       DECIMAL(12,2) NOT NULL,
	sales            DECIMAL(12,2) NOT NULL,
	city             VARCHAR NOT NULL,
	state            VARCHAR NOT NULL,
	city_state       VARCHAR NOT NULL,
	year             INTEGER NOT NULL,
	month            INTEGER NOT NULL,
	month_name       VARCHAR NOT NULL,
	quarter          INTEGER NOT NULL,
	day              INTEGER NOT NULL,
	day_of_week      VARCHAR NOT NULL,
	hour             INTEGER NOT NULL,
	time_period      VARCHAR NOT NULL,
	product_category VARCHAR NOT NULL
);

CREATE TABLE dim_date (
	date_key    INTEGER PRIMARY KEY,
	date        DATE NOT NULL,
	year        INTEGER NOT NULL,
	month       INTEGER NOT NULL,
	month_name  VARCHAR NOT NULL,
	quarter     INTEGER NOT NULL,
	day         INTEGER NOT NULL,
	day_of_week VARCHAR NOT NULL
);

CREATE TABLE dim_time (
	time_key    INTEGER PRIMARY KEY,
	hour        INTEGER NOT NULL,
	time_period VARCHAR NOT NULL
);

CREATE TABLE dim_product (
	product_key      INTEGER PRIMARY KEY,
	product_name     VARCHAR NOT NULL,
	product_category VARCHAR NOT NULL,
	standard_price   DECIMAL(12,2) NOT NULL
);

CREATE TABLE dim_geography (
	geo_key    INTEGER PRIMARY KEY,
	city       VARCHAR NOT NULL,
	state      VARCHAR NOT NULL,
	city_state VARCHAR NOT NULL
);

CREATE TABLE summary_monthly (
	year            INTEGER NOT NULL,
	month           INTEGER NOT NULL,
	month_name      VARCHAR NOT NULL,
	total_orders    INTEGER NOT NULL,
	total_sales     DECIMAL(12,2) NOT NULL,
	total_quantity  INTEGER NOT NULL,
	avg_order_value DECIMAL(12,2) NOT NULL
);

CREATE TABLE summary_city (
	city            VARCHAR NOT NULL,
	state           VARCHAR NOT NULL,
	total_orders    INTEGER NOT NULL,
	total_sales     DECIMAL(12,2) NOT NULL,
	total_quantity  INTEGER NOT NULL,
	avg_order_value DECIMAL(12,2) NOT NULL
);

CREATE TABLE summary_product (
	product          VARCHAR NOT NULL,
	product_category VARCHAR NOT NULL,
	total_orders     INTEGER NOT NULL,
	total_sales      DECIMAL(12,2) NOT NULL,
	total_quantity   INTEGER NOT NULL,
	avg_price        DECIMAL(12,2) NOT NULL
);

CREATE TABLE summary_hourly (
	hour         INTEGER NOT NULL,
	time_period  VARCHAR NOT NULL,
	total_orders INTEGER NOT NULL,
	total_sales  DECIMAL(12,2) NOT NULL
);
`
