package storage

import "wareneingang/internal"

// The pipeline packages take narrow store interfaces; these views adapt the
// one DB handle to each of them without exposing the rest of its surface.

type CatalogView struct{ db *DB }

func (d *DB) Catalog() *CatalogView { return &CatalogView{db: d} }

func (v *CatalogView) GetAll() ([]internal.MaterialRecord, error) {
	return v.db.ListMaterials()
}

func (v *CatalogView) GetByArticleNumber(article string) (*internal.MaterialRecord, error) {
	return v.db.GetMaterialByArticle(article)
}

func (v *CatalogView) IncrementStock(materialID int, delta float64) (float64, error) {
	return v.db.IncrementStock(materialID, delta)
}

func (v *CatalogView) RecordMovement(m internal.StockMovement) error {
	return v.db.InsertStockMovement(m)
}

type OrderView struct{ db *DB }

func (d *DB) Orders() *OrderView { return &OrderView{db: d} }

func (v *OrderView) GetOpenOrders(statuses []internal.WorkOrderStatus) ([]internal.WorkOrder, error) {
	return v.db.ListWorkOrdersByStatus(statuses)
}

type ReceiptView struct{ db *DB }

func (d *DB) Receipts() *ReceiptView { return &ReceiptView{db: d} }

func (v *ReceiptView) Append(r internal.GoodsReceipt) error {
	return v.db.InsertReceipt(r)
}
