package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"wareneingang/internal"
	"wareneingang/internal/util"
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
CREATE TABLE IF NOT EXISTS materials (
  id INTEGER PRIMARY KEY,
  articleNumber TEXT,
  articleNorm TEXT,
  name TEXT NOT NULL,
  unit TEXT,
  price REAL,
  stock REAL NOT NULL DEFAULT 0,
  updatedAt TEXT,
  raw_json TEXT NOT NULL,
  lastSeenAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_materials_name ON materials(name);
CREATE INDEX IF NOT EXISTS idx_materials_articleNorm ON materials(articleNorm);

CREATE TABLE IF NOT EXISTS work_orders (
  id INTEGER PRIMARY KEY,
  label TEXT NOT NULL,
  status TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS work_order_bom (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  orderId INTEGER NOT NULL,
  materialId INTEGER NOT NULL,
  description TEXT,
  quantity REAL,
  FOREIGN KEY(orderId) REFERENCES work_orders(id)
);

CREATE TABLE IF NOT EXISTS work_order_lines (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  orderId INTEGER NOT NULL,
  description TEXT NOT NULL,
  quantity REAL,
  FOREIGN KEY(orderId) REFERENCES work_orders(id)
);

CREATE TABLE IF NOT EXISTS documents (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  provider TEXT NOT NULL,
  messageId TEXT NOT NULL,
  subject TEXT,
  sender TEXT,
  receivedAt TEXT,
  hash TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'fetched',
  rawRef TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(provider, messageId)
);

CREATE TABLE IF NOT EXISTS document_lines (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  documentId INTEGER NOT NULL,
  lineNo INTEGER NOT NULL,
  source TEXT NOT NULL,
  origin TEXT,
  articleNumber TEXT,
  description TEXT NOT NULL,
  quantity REAL NOT NULL,
  unit TEXT,
  unitPrice REAL NOT NULL,
  lineTotal REAL NOT NULL,
  materialId INTEGER,
  confidence REAL NOT NULL DEFAULT 0,
  accepted INTEGER NOT NULL DEFAULT 0,
  suggestionsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(documentId) REFERENCES documents(id)
);

CREATE TABLE IF NOT EXISTS receipts (
  id TEXT PRIMARY KEY,
  supplier TEXT,
  documentNumber TEXT,
  receiptDate TEXT,
  total REAL NOT NULL,
  workOrderId INTEGER,
  createdAt TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS receipt_lines (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  receiptId TEXT NOT NULL,
  lineNo INTEGER NOT NULL,
  articleNumber TEXT,
  description TEXT NOT NULL,
  quantity REAL NOT NULL,
  unit TEXT,
  unitPrice REAL NOT NULL,
  lineTotal REAL NOT NULL,
  materialId INTEGER,
  confidence REAL NOT NULL DEFAULT 0,
  stockUpdated INTEGER NOT NULL DEFAULT 0,
  FOREIGN KEY(receiptId) REFERENCES receipts(id)
);

CREATE TABLE IF NOT EXISTS stock_movements (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  materialId INTEGER NOT NULL,
  delta REAL NOT NULL,
  previousStock REAL NOT NULL,
  newStock REAL NOT NULL,
  source TEXT NOT NULL,
  receiptId TEXT,
  note TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(materialId) REFERENCES materials(id)
);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  documentId INTEGER,
  timingsJson TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(documentId) REFERENCES documents(id)
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

func (d *DB) UpsertMaterials(materials []internal.MaterialRecord) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO materials (id, articleNumber, articleNorm, name, unit, price, stock, updatedAt, raw_json, lastSeenAt)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
  articleNumber=excluded.articleNumber,
  articleNorm=excluded.articleNorm,
  name=excluded.name,
  unit=excluded.unit,
  price=excluded.price,
  stock=excluded.stock,
  updatedAt=excluded.updatedAt,
  raw_json=excluded.raw_json,
  lastSeenAt=CURRENT_TIMESTAMP
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range materials {
		var norm *string
		if m.ArticleNumber != nil {
			norm = util.StringPtr(util.NormalizeArticle(*m.ArticleNumber))
		}
		if _, err := stmt.Exec(m.ID, m.ArticleNumber, norm, m.Name, m.Unit, m.Price, m.Stock, m.UpdatedAt, m.RawJSON); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// UpdateMaterialFields overwrites only the named columns, used by the delta
// sync modes that carry partial payloads.
func (d *DB) UpdateMaterialFields(id int, price, stock *float64, updatedAt *string) error {
	sets := []string{"lastSeenAt = CURRENT_TIMESTAMP"}
	args := []any{}
	if price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *price)
	}
	if stock != nil {
		sets = append(sets, "stock = ?")
		args = append(args, *stock)
	}
	if updatedAt != nil {
		sets = append(sets, "updatedAt = ?")
		args = append(args, *updatedAt)
	}
	args = append(args, id)
	_, err := d.conn.Exec(`UPDATE materials SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	return err
}

func (d *DB) ListMaterials() ([]internal.MaterialRecord, error) {
	rows, err := d.conn.Query(`
SELECT id, articleNumber, name, unit, price, stock, updatedAt, raw_json
FROM materials`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.MaterialRecord
	for rows.Next() {
		var m internal.MaterialRecord
		var unit, raw sql.NullString
		var price, stock sql.NullFloat64
		if err := rows.Scan(&m.ID, &m.ArticleNumber, &m.Name, &unit, &price, &stock, &m.UpdatedAt, &raw); err != nil {
			return nil, err
		}
		m.Unit = unit.String
		m.Price = price.Float64
		m.Stock = stock.Float64
		m.RawJSON = raw.String
		out = append(out, m)
	}

	return out, rows.Err()
}

func (d *DB) GetMaterialByArticle(article string) (*internal.MaterialRecord, error) {
	norm := util.NormalizeArticle(article)
	if norm == "" {
		return nil, nil
	}

	var m internal.MaterialRecord
	var unit, raw sql.NullString
	var price, stock sql.NullFloat64
	err := d.conn.QueryRow(`
SELECT id, articleNumber, name, unit, price, stock, updatedAt, raw_json
FROM materials WHERE articleNorm = ? ORDER BY id ASC LIMIT 1
`, norm).Scan(&m.ID, &m.ArticleNumber, &m.Name, &unit, &price, &stock, &m.UpdatedAt, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m.Unit = unit.String
	m.Price = price.Float64
	m.Stock = stock.Float64
	m.RawJSON = raw.String
	return &m, nil
}

func (d *DB) CountMaterials() (int, error) {
	var n int
	err := d.conn.QueryRow(`SELECT COUNT(*) FROM materials`).Scan(&n)
	return n, err
}

// IncrementStock adds delta to a material's stock inside one transaction and
// returns the resulting level. Unknown material IDs are an error.
func (d *DB) IncrementStock(materialID int, delta float64) (float64, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var stock float64
	err = tx.QueryRow(`SELECT stock FROM materials WHERE id = ?`, materialID).Scan(&stock)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("material not found: id=%d", materialID)
	}
	if err != nil {
		return 0, err
	}

	newStock := stock + delta
	if _, err := tx.Exec(`UPDATE materials SET stock = ? WHERE id = ?`, newStock, materialID); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return newStock, nil
}

func (d *DB) InsertStockMovement(m internal.StockMovement) error {
	_, err := d.conn.Exec(`
INSERT INTO stock_movements (materialId, delta, previousStock, newStock, source, receiptId, note)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, m.MaterialID, m.Delta, m.PreviousStock, m.NewStock, m.Source, nullIfEmpty(m.ReceiptID), nullIfEmpty(m.Note))
	return err
}

// ReplaceWorkOrders swaps the full work-order snapshot, BOM and order lines
// included. Imports are whole-file, so partial updates are not supported.
func (d *DB) ReplaceWorkOrders(orders []internal.WorkOrder) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{
		`DELETE FROM work_order_bom`,
		`DELETE FROM work_order_lines`,
		`DELETE FROM work_orders`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	for _, o := range orders {
		if _, err := tx.Exec(`INSERT INTO work_orders (id, label, status) VALUES (?, ?, ?)`, o.ID, o.Label, string(o.Status)); err != nil {
			return err
		}
		for _, b := range o.BillOfMaterials {
			if _, err := tx.Exec(`INSERT INTO work_order_bom (orderId, materialId, description, quantity) VALUES (?, ?, ?, ?)`,
				o.ID, b.MaterialID, b.Description, b.Quantity); err != nil {
				return err
			}
		}
		for _, l := range o.LineItems {
			if _, err := tx.Exec(`INSERT INTO work_order_lines (orderId, description, quantity) VALUES (?, ?, ?)`,
				o.ID, l.Description, l.Quantity); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (d *DB) ListWorkOrdersByStatus(statuses []internal.WorkOrderStatus) ([]internal.WorkOrder, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(statuses)), ",")
	args := make([]any, 0, len(statuses))
	for _, s := range statuses {
		args = append(args, string(s))
	}

	rows, err := d.conn.Query(`SELECT id, label, status FROM work_orders WHERE status IN (`+placeholders+`) ORDER BY id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.WorkOrder
	for rows.Next() {
		var o internal.WorkOrder
		var status string
		if err := rows.Scan(&o.ID, &o.Label, &status); err != nil {
			return nil, err
		}
		o.Status = internal.WorkOrderStatus(status)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if out[i].BillOfMaterials, err = d.listBOM(out[i].ID); err != nil {
			return nil, err
		}
		if out[i].LineItems, err = d.listOrderLines(out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (d *DB) listBOM(orderID int) ([]internal.BOMEntry, error) {
	rows, err := d.conn.Query(`SELECT materialId, description, quantity FROM work_order_bom WHERE orderId = ? ORDER BY id ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.BOMEntry
	for rows.Next() {
		var b internal.BOMEntry
		var desc sql.NullString
		var qty sql.NullFloat64
		if err := rows.Scan(&b.MaterialID, &desc, &qty); err != nil {
			return nil, err
		}
		b.Description = desc.String
		b.Quantity = qty.Float64
		out = append(out, b)
	}
	return out, rows.Err()
}

func (d *DB) listOrderLines(orderID int) ([]internal.OrderLine, error) {
	rows, err := d.conn.Query(`SELECT description, quantity FROM work_order_lines WHERE orderId = ? ORDER BY id ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.OrderLine
	for rows.Next() {
		var l internal.OrderLine
		var qty sql.NullFloat64
		if err := rows.Scan(&l.Description, &qty); err != nil {
			return nil, err
		}
		l.Quantity = qty.Float64
		out = append(out, l)
	}
	return out, rows.Err()
}

func (d *DB) UpsertDocument(provider, messageID, subject, sender, receivedAt, hash, rawRef, status string) (internal.DocumentRow, error) {
	_, err := d.conn.Exec(`
INSERT INTO documents (provider, messageId, subject, sender, receivedAt, hash, status, rawRef)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(provider, messageId) DO UPDATE SET
  subject=excluded.subject,
  sender=excluded.sender,
  receivedAt=excluded.receivedAt,
  hash=excluded.hash,
  rawRef=excluded.rawRef,
  updatedAt=CURRENT_TIMESTAMP
`, provider, messageID, subject, sender, receivedAt, hash, status, rawRef)
	if err != nil {
		return internal.DocumentRow{}, err
	}

	row, err := d.GetDocumentByProviderMessageID(provider, messageID)
	if err != nil {
		return internal.DocumentRow{}, err
	}
	if row == nil {
		return internal.DocumentRow{}, errors.New("failed to upsert document")
	}
	return *row, nil
}

func (d *DB) GetDocumentByProviderMessageID(provider, messageID string) (*internal.DocumentRow, error) {
	var row internal.DocumentRow
	err := d.conn.QueryRow(`
SELECT id, provider, messageId, subject, sender, receivedAt, hash, status, rawRef
FROM documents WHERE provider = ? AND messageId = ?
`, provider, messageID).Scan(
		&row.ID, &row.Provider, &row.MessageID, &row.Subject, &row.Sender, &row.ReceivedAt, &row.Hash, &row.Status, &row.RawRef,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (d *DB) MustDocumentByProviderMessageID(provider, messageID string) (internal.DocumentRow, error) {
	row, err := d.GetDocumentByProviderMessageID(provider, messageID)
	if err != nil {
		return internal.DocumentRow{}, err
	}
	if row == nil {
		return internal.DocumentRow{}, fmt.Errorf("document not found: provider=%s messageId=%s", provider, messageID)
	}
	return *row, nil
}

func (d *DB) ListDocumentsByStatus(status string, limit int) ([]internal.DocumentRow, error) {
	rows, err := d.conn.Query(`
SELECT id, provider, messageId, subject, sender, receivedAt, hash, status, rawRef
FROM documents WHERE status = ? ORDER BY receivedAt ASC LIMIT ?
`, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.DocumentRow
	for rows.Next() {
		var row internal.DocumentRow
		if err := rows.Scan(&row.ID, &row.Provider, &row.MessageID, &row.Subject, &row.Sender, &row.ReceivedAt, &row.Hash, &row.Status, &row.RawRef); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) UpdateDocumentStatus(documentID int, status string) error {
	_, err := d.conn.Exec(`UPDATE documents SET status = ?, updatedAt = CURRENT_TIMESTAMP WHERE id = ?`, status, documentID)
	return err
}

// ClearDocumentLines removes a document's parsed lines so a reprocess starts
// clean instead of duplicating rows.
func (d *DB) ClearDocumentLines(documentID int) error {
	_, err := d.conn.Exec(`DELETE FROM document_lines WHERE documentId = ?`, documentID)
	return err
}

func (d *DB) InsertDocumentLine(documentID, lineNo int, source, origin string, ri internal.ResolvedItem) (int64, error) {
	suggestionsJSON, _ := json.Marshal(ri.Suggestions)
	var materialID *int
	confidence := 0.0
	accepted := 0
	if ri.Match != nil {
		materialID = util.IntPtr(ri.Match.MaterialID)
		confidence = ri.Match.Confidence
		accepted = 1
	}

	result, err := d.conn.Exec(`
INSERT INTO document_lines (documentId, lineNo, source, origin, articleNumber, description, quantity, unit, unitPrice, lineTotal, materialId, confidence, accepted, suggestionsJson)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, documentID, lineNo, source, origin, ri.Item.ArticleNumber, ri.Item.Description, ri.Item.Quantity, ri.Item.Unit,
		ri.Item.UnitPrice, ri.Item.LineTotal, materialID, confidence, accepted, string(suggestionsJSON))
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (d *DB) InsertReceipt(r internal.GoodsReceipt) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
INSERT INTO receipts (id, supplier, documentNumber, receiptDate, total, workOrderId, createdAt)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, r.ID, r.Supplier, r.DocumentNumber, r.Date, r.Total, r.WorkOrderID, r.CreatedAt); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
INSERT INTO receipt_lines (receiptId, lineNo, articleNumber, description, quantity, unit, unitPrice, lineTotal, materialId, confidence, stockUpdated)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, line := range r.Items {
		updated := 0
		if line.StockUpdated {
			updated = 1
		}
		if _, err := stmt.Exec(r.ID, i+1, line.ArticleNumber, line.Description, line.Quantity, line.Unit,
			line.UnitPrice, line.LineTotal, line.MaterialID, line.Confidence, updated); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) GetReceipt(id string) (*internal.GoodsReceipt, error) {
	var r internal.GoodsReceipt
	err := d.conn.QueryRow(`
SELECT id, supplier, documentNumber, receiptDate, total, workOrderId, createdAt
FROM receipts WHERE id = ?
`, id).Scan(&r.ID, &r.Supplier, &r.DocumentNumber, &r.Date, &r.Total, &r.WorkOrderID, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := d.conn.Query(`
SELECT articleNumber, description, quantity, unit, unitPrice, lineTotal, materialId, confidence, stockUpdated
FROM receipt_lines WHERE receiptId = ? ORDER BY lineNo ASC
`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line internal.ReceiptLine
		var unit sql.NullString
		var updated int
		if err := rows.Scan(&line.ArticleNumber, &line.Description, &line.Quantity, &unit, &line.UnitPrice,
			&line.LineTotal, &line.MaterialID, &line.Confidence, &updated); err != nil {
			return nil, err
		}
		line.Unit = unit.String
		line.StockUpdated = updated == 1
		r.Items = append(r.Items, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (d *DB) InsertRun(traceID string, documentID int, timings map[string]float64, counts map[string]int) error {
	timingsJSON, _ := json.Marshal(timings)
	countsJSON, _ := json.Marshal(counts)
	_, err := d.conn.Exec(`INSERT INTO runs (traceId, documentId, timingsJson, countsJson) VALUES (?, ?, ?, ?)`,
		traceID, documentID, string(timingsJSON), string(countsJSON))
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

func (d *DB) GetExportRows(documentID int) ([]internal.ResultExportRow, error) {
	rows, err := d.conn.Query(`
SELECT
  l.lineNo,
  l.source,
  l.articleNumber,
  l.description,
  l.quantity,
  l.unit,
  l.unitPrice,
  l.lineTotal,
  l.materialId,
  m.name,
  l.confidence,
  l.accepted,
  l.suggestionsJson
FROM document_lines l
LEFT JOIN materials m ON m.id = l.materialId
WHERE l.documentId = ?
ORDER BY l.accepted DESC, l.lineNo ASC
`, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.ResultExportRow
	for rows.Next() {
		var row internal.ResultExportRow
		var unit sql.NullString
		var accepted int
		var suggestionsJSON string
		if err := rows.Scan(
			&row.LineNo,
			&row.Source,
			&row.ArticleNumber,
			&row.Description,
			&row.Quantity,
			&unit,
			&row.UnitPrice,
			&row.LineTotal,
			&row.MaterialID,
			&row.MaterialName,
			&row.Confidence,
			&accepted,
			&suggestionsJSON,
		); err != nil {
			return nil, err
		}
		row.Unit = unit.String
		row.Accepted = accepted == 1

		var suggestions []internal.MatchSuggestion
		_ = json.Unmarshal([]byte(suggestionsJSON), &suggestions)
		if len(suggestions) > 1 {
			row.Suggestion2Name = util.StringPtr(suggestions[1].Label)
			row.Suggestion2Confidence = util.FloatPtr(suggestions[1].Confidence)
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
