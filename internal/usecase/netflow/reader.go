package netflow

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/LavaJover/shvark-buffer-service/internal/usecase/buffer"
)

// Reader собирает текущие остаток, поставки и квалифицированный спрос
// из хранилища и классифицирует буфер.
type Reader struct {
	inventory domain.InventoryRepository
	orders    domain.OrderRepository
}

func NewReader(inventory domain.InventoryRepository, orders domain.OrderRepository) *Reader {
	return &Reader{inventory: inventory, orders: orders}
}

func (r *Reader) Snapshot(ctx context.Context, b *domain.BufferState) (domain.NetFlowSnapshot, error) {
	onHand, err := r.inventory.LatestOnHand(ctx, b.ProductID, b.LocationID)
	if err != nil {
		return domain.NetFlowSnapshot{}, fmt.Errorf("on-hand: %w", err)
	}
	onOrder, err := r.inventory.OpenSupply(ctx, b.ProductID, b.LocationID)
	if err != nil {
		return domain.NetFlowSnapshot{}, fmt.Errorf("open supply: %w", err)
	}
	qualified, err := r.orders.QualifiedDemand(ctx, b.ProductID, b.LocationID)
	if err != nil {
		return domain.NetFlowSnapshot{}, fmt.Errorf("qualified demand: %w", err)
	}

	return buffer.ClassifyBuffer(b, onHand, onOrder, qualified), nil
}
