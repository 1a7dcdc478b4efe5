// Package storage implements the repository ports on MySQL.
//
// Expected schema:
//
//	CREATE TABLE users (
//	    id            BIGINT PRIMARY KEY AUTO_INCREMENT,
//	    name          VARCHAR(255) NOT NULL,
//	    email         VARCHAR(255) NOT NULL UNIQUE,
//	    password_hash VARCHAR(255) NOT NULL,
//	    role          VARCHAR(16)  NOT NULL DEFAULT 'USER',
//	    created_at    DATETIME     NOT NULL,
//	    updated_at    DATETIME     NOT NULL
//	);
//
//	CREATE TABLE products (
//	    id          BIGINT PRIMARY KEY AUTO_INCREMENT,
//	    name        VARCHAR(255)   NOT NULL,
//	    description TEXT           NOT NULL,
//	    price       DECIMAL(10, 2) NOT NULL,
//	    stock       INT            NOT NULL DEFAULT 0,
//	    is_active   BOOLEAN        NOT NULL DEFAULT TRUE,
//	    image_url   VARCHAR(512)   NOT NULL DEFAULT '',
//	    image_key   VARCHAR(255)   NOT NULL DEFAULT '',
//	    created_at  DATETIME       NOT NULL
//	);
//
//	CREATE TABLE orders (
//	    id         BIGINT PRIMARY KEY AUTO_INCREMENT,
//	    user_id    BIGINT         NOT NULL REFERENCES users (id),
//	    status     VARCHAR(16)    NOT NULL,
//	    total      DECIMAL(10, 2) NOT NULL,
//	    created_at DATETIME       NOT NULL
//	);
//
//	CREATE TABLE order_items (
//	    id         BIGINT PRIMARY KEY AUTO_INCREMENT,
//	    order_id   BIGINT         NOT NULL REFERENCES orders (id),
//	    product_id BIGINT         NOT NULL REFERENCES products (id),
//	    quantity   INT            NOT NULL,
//	    unit_price DECIMAL(10, 2) NOT NULL
//	);
//
// Monetary columns are DECIMAL and travel through the driver as strings;
// they are never converted to binary floating point.
package storage
