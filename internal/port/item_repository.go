package port

import (
	"context"

	"jewelscan/internal/domain"
)

// ItemRepository defines the contract for ledger item persistence.
type ItemRepository interface {
	// CreateBatch inserts all items in one transaction; none are stored on error.
	CreateBatch(ctx context.Context, items []domain.JewelleryItem) error
	GetByCode(ctx context.Context, code string) (*domain.JewelleryItem, error)
	List(ctx context.Context, filter domain.ItemFilter, offset, limit int) ([]domain.JewelleryItem, int, error)
}
