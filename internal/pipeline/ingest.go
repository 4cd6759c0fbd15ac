package pipeline

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wareneingang/internal"
	"wareneingang/internal/util"
)

// CatalogStore is the material-catalog collaborator. Stock increments are
// read-modify-write against shared state; the store serializes concurrent
// increments on the same material (the engine holds no locks of its own).
type CatalogStore interface {
	GetAll() ([]internal.MaterialRecord, error)
	GetByArticleNumber(article string) (*internal.MaterialRecord, error)
	IncrementStock(materialID int, delta float64) (float64, error)
	RecordMovement(m internal.StockMovement) error
}

// WorkOrderStore exposes read-only access to open work orders.
type WorkOrderStore interface {
	GetOpenOrders(statuses []internal.WorkOrderStatus) ([]internal.WorkOrder, error)
}

// ReceiptStore persists finished goods receipts.
type ReceiptStore interface {
	Append(r internal.GoodsReceipt) error
}

// Orchestrator composes one ingestion pass: apply accepted matches to stock
// and hand the resulting receipt to the receipt store.
type Orchestrator struct {
	catalog  CatalogStore
	receipts ReceiptStore
	log      *zap.Logger
}

func NewOrchestrator(catalog CatalogStore, receipts ReceiptStore, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{catalog: catalog, receipts: receipts, log: log}
}

// Ingest turns a parsed document plus its resolution into a goods receipt.
// Every item with an accepted match and positive quantity gets one stock
// increment and one movement record; items without a match are kept on the
// receipt with StockUpdated=false for manual reconciliation. A failing
// increment flags its own line and does not abort the remaining items, so
// the call always returns a structurally complete receipt.
func (o *Orchestrator) Ingest(doc internal.ParsedDocument, resolved []internal.ResolvedItem, workOrderID *int) (internal.GoodsReceipt, error) {
	receipt := internal.GoodsReceipt{
		ID:             uuid.NewString(),
		Supplier:       doc.Supplier,
		DocumentNumber: doc.DocumentNumber,
		Date:           doc.Date,
		Items:          make([]internal.ReceiptLine, 0, len(resolved)),
		Total:          doc.Total,
		WorkOrderID:    workOrderID,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	if o.catalog == nil || o.receipts == nil {
		return receipt, errors.New("catalog and receipt stores are required")
	}

	for _, ri := range resolved {
		line := internal.ReceiptLine{ParsedItem: ri.Item}
		if ri.Match != nil {
			line.MaterialID = util.IntPtr(ri.Match.MaterialID)
			line.Confidence = ri.Match.Confidence
		}

		if line.MaterialID != nil && ri.Item.Quantity > 0 {
			if update, err := o.applyStock(receipt.ID, *line.MaterialID, ri.Item.Quantity); err != nil {
				o.log.Warn("stock update failed",
					zap.Int("materialId", *line.MaterialID),
					zap.String("receiptId", receipt.ID),
					zap.Error(err))
			} else {
				line.StockUpdated = true
				receipt.StockUpdates = append(receipt.StockUpdates, update)
			}
		}

		receipt.Items = append(receipt.Items, line)
	}

	if receipt.Total == 0 {
		sum := 0.0
		for _, line := range receipt.Items {
			sum += line.LineTotal
		}
		receipt.Total = util.Round2(sum)
	}

	if err := o.receipts.Append(receipt); err != nil {
		return receipt, err
	}
	return receipt, nil
}

func (o *Orchestrator) applyStock(receiptID string, materialID int, qty float64) (internal.StockUpdate, error) {
	newStock, err := o.catalog.IncrementStock(materialID, qty)
	if err != nil {
		return internal.StockUpdate{}, err
	}
	update := internal.StockUpdate{
		MaterialID:    materialID,
		Delta:         qty,
		PreviousStock: newStock - qty,
		NewStock:      newStock,
	}
	err = o.catalog.RecordMovement(internal.StockMovement{
		MaterialID:    materialID,
		Delta:         qty,
		PreviousStock: update.PreviousStock,
		NewStock:      newStock,
		Source:        "receipt",
		ReceiptID:     receiptID,
	})
	if err != nil {
		// The increment itself went through; a missing movement row is
		// logged but does not invalidate the stock update.
		o.log.Warn("movement record failed", zap.Int("materialId", materialID), zap.Error(err))
	}
	return update, nil
}
