package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"wareneingang/internal"
	"wareneingang/internal/config"
	"wareneingang/internal/storage"
)

type SyncService struct {
	db     *storage.DB
	client *Client
	cfg    config.Config
}

func NewSyncService(db *storage.DB, cfg config.Config) *SyncService {
	return &SyncService{db: db, client: NewClient(cfg), cfg: cfg}
}

func (s *SyncService) InitialSync(ctx context.Context) (int, error) {
	materials, err := s.client.GetMaterialsScrollAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.db.UpsertMaterials(materials); err != nil {
		return 0, err
	}
	_ = s.db.SetMetadata("catalog.last_initial_sync", time.Now().UTC().Format(time.RFC3339))
	return len(materials), nil
}

func (s *SyncService) IncrementalSync(ctx context.Context, mode string) (int, error) {
	materials, err := s.client.GetMaterialsIncremental(ctx, mode)
	if err != nil {
		return 0, err
	}
	if len(materials) > 0 {
		if err := s.db.UpsertMaterials(materials); err != nil {
			return 0, err
		}
	}
	_ = s.db.SetMetadata("catalog.last_incremental_sync."+mode, time.Now().UTC().Format(time.RFC3339))
	return len(materials), nil
}

// workOrderFile is the JSON shape the planning tool exports.
type workOrderFile struct {
	Orders []workOrderJSON `json:"orders"`
}

type workOrderJSON struct {
	ID     int    `json:"id"`
	Label  string `json:"label"`
	Status string `json:"status"`
	BOM    []struct {
		MaterialID  int     `json:"materialId"`
		Description string  `json:"description"`
		Quantity    float64 `json:"quantity"`
	} `json:"bom"`
	Lines []struct {
		Description string  `json:"description"`
		Quantity    float64 `json:"quantity"`
	} `json:"lines"`
}

// ImportWorkOrders replaces the local work-order snapshot from a JSON export.
func (s *SyncService) ImportWorkOrders(path string) (int, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var file workOrderFile
	if err := json.Unmarshal(blob, &file); err != nil {
		return 0, fmt.Errorf("parse work orders: %w", err)
	}

	orders := make([]internal.WorkOrder, 0, len(file.Orders))
	for _, o := range file.Orders {
		order := internal.WorkOrder{
			ID:     o.ID,
			Label:  o.Label,
			Status: internal.WorkOrderStatus(o.Status),
		}
		for _, b := range o.BOM {
			order.BillOfMaterials = append(order.BillOfMaterials, internal.BOMEntry{
				MaterialID:  b.MaterialID,
				Description: b.Description,
				Quantity:    b.Quantity,
			})
		}
		for _, l := range o.Lines {
			order.LineItems = append(order.LineItems, internal.OrderLine{
				Description: l.Description,
				Quantity:    l.Quantity,
			})
		}
		orders = append(orders, order)
	}

	if err := s.db.ReplaceWorkOrders(orders); err != nil {
		return 0, err
	}
	_ = s.db.SetMetadata("orders.last_import", time.Now().UTC().Format(time.RFC3339))
	return len(orders), nil
}
