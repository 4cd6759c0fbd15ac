package pipeline

import (
	"sort"

	"wareneingang/internal"
	"wareneingang/internal/util"
)

const (
	bomIDWeight        = 2.0
	bomDescWeight      = 1.0
	orderLineWeight    = 0.5
	bomDescThreshold   = 0.5
	orderLineThreshold = 0.4
)

func isActionable(status internal.WorkOrderStatus) bool {
	switch status {
	case internal.OrderPlanned, internal.OrderMaterialOrdered, internal.OrderInProgress:
		return true
	}
	return false
}

// SuggestWorkOrders scores open work orders against the resolved items and
// returns attribution suggestions, best first. Orders outside the
// actionable status set and orders with zero score are dropped.
func SuggestWorkOrders(resolved []internal.ResolvedItem, orders []internal.WorkOrder) []internal.JobSuggestion {
	out := make([]internal.JobSuggestion, 0, len(orders))

	for _, order := range orders {
		if !isActionable(order.Status) {
			continue
		}

		score := 0.0
		matched := []internal.MatchedItemRef{}

		for _, bom := range order.BillOfMaterials {
			if ref, ok := matchBOMByID(bom, resolved); ok {
				score += bomIDWeight
				matched = append(matched, ref)
				continue
			}
			if ref, ok := matchByDescription(bom.Description, resolved, bomDescThreshold, "bom-description"); ok {
				score += bomDescWeight
				matched = append(matched, ref)
			}
		}

		for _, line := range order.LineItems {
			if ref, ok := matchByDescription(line.Description, resolved, orderLineThreshold, "order-line"); ok {
				score += orderLineWeight
				matched = append(matched, ref)
			}
		}

		if score == 0 {
			continue
		}
		out = append(out, internal.JobSuggestion{
			WorkOrderID:  order.ID,
			Label:        order.Label,
			Score:        score,
			MatchedItems: matched,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].WorkOrderID < out[j].WorkOrderID
	})
	return out
}

func matchBOMByID(bom internal.BOMEntry, resolved []internal.ResolvedItem) (internal.MatchedItemRef, bool) {
	for i, ri := range resolved {
		if ri.Match != nil && ri.Match.MaterialID == bom.MaterialID {
			return internal.MatchedItemRef{
				LineNo:     i + 1,
				MaterialID: util.IntPtr(bom.MaterialID),
				Via:        "material",
			}, true
		}
	}
	return internal.MatchedItemRef{}, false
}

func matchByDescription(description string, resolved []internal.ResolvedItem, threshold float64, via string) (internal.MatchedItemRef, bool) {
	for i, ri := range resolved {
		if Similarity(description, ri.Item.Description) > threshold {
			return internal.MatchedItemRef{LineNo: i + 1, Via: via}, true
		}
	}
	return internal.MatchedItemRef{}, false
}
