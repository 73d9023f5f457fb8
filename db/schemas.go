package db

// Every row carries a version column bumped on each update. Writes check the
// version they read, which is how the store rejects stale writers.
var schema = `
CREATE TABLE IF NOT EXISTS customers (
	customer_id UUID PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	surname VARCHAR(255) NOT NULL DEFAULT '',
	username VARCHAR(255) NOT NULL DEFAULT '',
	email VARCHAR(255) NOT NULL,
	shipping_address TEXT NOT NULL DEFAULT '',
	version BIGINT NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS products (
	product_id UUID PRIMARY KEY,
	product_name VARCHAR(255) NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price_cents BIGINT NOT NULL,
	stock_available INT NOT NULL CHECK (stock_available >= 0),
	image_url TEXT NOT NULL DEFAULT '',
	version BIGINT NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS orders (
	order_id UUID PRIMARY KEY,
	customer_id UUID NOT NULL,
	product_id UUID NOT NULL,
	product_name VARCHAR(255) NOT NULL,
	quantity INT NOT NULL,
	unit_price_cents BIGINT NOT NULL,
	order_date_utc TIMESTAMPTZ NOT NULL,
	status VARCHAR(32) NOT NULL,
	version BIGINT NOT NULL DEFAULT 1
);
`
