package inventory

import (
	"context"

	appintegration "github.com/shopbridge/backend/internal/application/integration"
	"github.com/shopbridge/backend/internal/domain/inventory"
	"github.com/shopbridge/backend/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ChannelStockService answers stock queries from the channel integration
// layer. Quantities are summed over the warehouses in the integration's
// location scope; an empty scope means every warehouse counts.
type ChannelStockService struct {
	items inventory.InventoryItemRepository
}

// NewChannelStockService creates a new ChannelStockService
func NewChannelStockService(items inventory.InventoryItemRepository) *ChannelStockService {
	return &ChannelStockService{items: items}
}

// OnHand reports the available quantity per variant. Variants without any
// inventory item report zero.
func (s *ChannelStockService) OnHand(ctx context.Context, tenantID uuid.UUID, variantIDs []uuid.UUID, locationIDs []uuid.UUID) (map[uuid.UUID]appintegration.StockLevel, error) {
	scope := make(map[uuid.UUID]struct{}, len(locationIDs))
	for _, id := range locationIDs {
		scope[id] = struct{}{}
	}

	levels := make(map[uuid.UUID]appintegration.StockLevel, len(variantIDs))
	for _, variantID := range variantIDs {
		items, err := s.items.FindByProduct(ctx, tenantID, variantID, shared.Filter{})
		if err != nil {
			return nil, err
		}

		total := decimal.Zero
		for i := range items {
			if len(scope) > 0 {
				if _, ok := scope[items[i].WarehouseID]; !ok {
					continue
				}
			}
			total = total.Add(items[i].AvailableQuantity)
		}
		levels[variantID] = appintegration.StockLevel{Quantity: total}
	}
	return levels, nil
}

// Ensure ChannelStockService implements the StockProvider port
var _ appintegration.StockProvider = (*ChannelStockService)(nil)
