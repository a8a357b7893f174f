package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"favobot/internal"
	"favobot/internal/util"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS shops (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  normalized TEXT NOT NULL UNIQUE,
  active INTEGER NOT NULL DEFAULT 1,
  dateAdded TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_shops_normalized ON shops(normalized);

CREATE TABLE IF NOT EXISTS products (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  nameNorm TEXT NOT NULL UNIQUE,
  displayName TEXT NOT NULL,
  containerCode TEXT,
  volumeL REAL,
  packSize INTEGER NOT NULL DEFAULT 1,
  promoType TEXT,
  active INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS orders (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  shopId INTEGER,
  chatId INTEGER NOT NULL,
  messageId INTEGER,
  traceId TEXT NOT NULL,
  orderDate TEXT NOT NULL,
  rawText TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(shopId) REFERENCES shops(id)
);
CREATE INDEX IF NOT EXISTS idx_orders_orderDate ON orders(orderDate);

CREATE TABLE IF NOT EXISTS order_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  orderId INTEGER NOT NULL,
  productId INTEGER,
  shop TEXT NOT NULL,
  product TEXT NOT NULL,
  uom TEXT NOT NULL DEFAULT '',
  qty INTEGER,
  promo TEXT NOT NULL DEFAULT '',
  comment TEXT NOT NULL DEFAULT '',
  isAdditional INTEGER NOT NULL DEFAULT 0,
  FOREIGN KEY(orderId) REFERENCES orders(id),
  FOREIGN KEY(productId) REFERENCES products(id)
);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  orderId INTEGER,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(orderId) REFERENCES orders(id)
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// GetOrCreateShop resolves a shop name to its id, creating the row on first
// sight. Returns nil for a blank name.
func (d *DB) GetOrCreateShop(name string) (*int, error) {
	normalized := util.Normalize(name)
	if normalized == "" {
		return nil, nil
	}

	var id int
	err := d.conn.QueryRow(`SELECT id FROM shops WHERE normalized = ?`, normalized).Scan(&id)
	if err == nil {
		return &id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	result, err := d.conn.Exec(`INSERT INTO shops (name, normalized) VALUES (?, ?)`, name, normalized)
	if err != nil {
		return nil, err
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	id = int(newID)
	return &id, nil
}

func (d *DB) ListShops() ([]internal.ShopRow, error) {
	rows, err := d.conn.Query(`SELECT id, name, normalized, active, dateAdded FROM shops ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.ShopRow
	for rows.Next() {
		var row internal.ShopRow
		var active int
		if err := rows.Scan(&row.ID, &row.Name, &row.Normalized, &active, &row.DateAdded); err != nil {
			return nil, err
		}
		row.Active = active != 0
		out = append(out, row)
	}
	return out, rows.Err()
}

// DeleteShop removes a shop together with its orders and their items.
func (d *DB) DeleteShop(id int) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM order_items WHERE orderId IN (SELECT id FROM orders WHERE shopId = ?)`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM orders WHERE shopId = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM shops WHERE id = ?`, id); err != nil {
		return err
	}

	return tx.Commit()
}

// GetOrCreateProduct resolves a product display name to its catalog id,
// creating a minimal row when unseen. Returns nil for a blank name.
func (d *DB) GetOrCreateProduct(displayName string) (*int, error) {
	nameNorm := util.Normalize(displayName)
	if nameNorm == "" {
		return nil, nil
	}

	var id int
	err := d.conn.QueryRow(`SELECT id FROM products WHERE nameNorm = ?`, nameNorm).Scan(&id)
	if err == nil {
		return &id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	result, err := d.conn.Exec(`INSERT INTO products (nameNorm, displayName) VALUES (?, ?)`, nameNorm, displayName)
	if err != nil {
		return nil, err
	}
	newID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	id = int(newID)
	return &id, nil
}

func (d *DB) UpsertProduct(p internal.ProductRow) error {
	_, err := d.conn.Exec(`
INSERT INTO products (nameNorm, displayName, containerCode, volumeL, packSize, promoType, active)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(nameNorm) DO UPDATE SET
  displayName=excluded.displayName,
  containerCode=excluded.containerCode,
  volumeL=excluded.volumeL,
  packSize=excluded.packSize,
  promoType=excluded.promoType,
  active=excluded.active
`, p.NameNorm, p.DisplayName, p.ContainerCode, p.VolumeL, p.PackSize, p.PromoType, boolToInt(p.Active))
	return err
}

func (d *DB) ListProducts() ([]internal.ProductRow, error) {
	rows, err := d.conn.Query(`
SELECT id, nameNorm, displayName, containerCode, volumeL, packSize, promoType, active
FROM products ORDER BY nameNorm`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.ProductRow
	for rows.Next() {
		var p internal.ProductRow
		var active int
		if err := rows.Scan(&p.ID, &p.NameNorm, &p.DisplayName, &p.ContainerCode, &p.VolumeL, &p.PackSize, &p.PromoType, &active); err != nil {
			return nil, err
		}
		p.Active = active != 0
		out = append(out, p)
	}
	return out, rows.Err()
}

// ItemInsert is one order line ready for persistence; ProductID is nil for
// ad hoc items the catalog could not resolve.
type ItemInsert struct {
	internal.Item
	ProductID *int
}

// RecordOrder persists an order and its items in one transaction, so a
// failure never leaves a partially recorded parse.
func (d *DB) RecordOrder(shopID *int, chatID int64, messageID int, traceID, orderDate, rawText string, items []ItemInsert) (int64, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.Exec(`
INSERT INTO orders (shopId, chatId, messageId, traceId, orderDate, rawText)
VALUES (?, ?, ?, ?, ?, ?)
`, shopID, chatID, messageID, traceID, orderDate, rawText)
	if err != nil {
		return 0, err
	}
	orderID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`
INSERT INTO order_items (orderId, productId, shop, product, uom, qty, promo, comment, isAdditional)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, it := range items {
		isAdditional := 0
		if it.ProductID == nil {
			isAdditional = 1
		}
		if _, err := stmt.Exec(orderID, it.ProductID, it.Shop, it.Name, it.UoM, it.Qty, it.Promo, it.Comment, isAdditional); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return orderID, nil
}

// ListItemsByDate returns every recorded item filed under one reporting date,
// the aggregator's input.
func (d *DB) ListItemsByDate(orderDate string) ([]internal.RecordedItem, error) {
	rows, err := d.conn.Query(`
SELECT o.orderDate, i.shop, i.product, i.uom, i.qty, i.promo, i.comment
FROM order_items i
JOIN orders o ON o.id = i.orderId
WHERE o.orderDate = ?
ORDER BY i.id ASC
`, orderDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RecordedItem
	for rows.Next() {
		var item internal.RecordedItem
		var qty sql.NullInt64
		if err := rows.Scan(&item.OrderDate, &item.Shop, &item.Product, &item.UoM, &qty, &item.Promo, &item.Comment); err != nil {
			return nil, err
		}
		if qty.Valid {
			item.Qty = internal.IntPtr(int(qty.Int64))
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (d *DB) InsertRun(traceID string, orderID int64, counts map[string]int) error {
	countsJSON, _ := json.Marshal(counts)
	_, err := d.conn.Exec(`INSERT INTO runs (traceId, orderId, countsJson) VALUES (?, ?, ?)`, traceID, orderID, string(countsJSON))
	return err
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
