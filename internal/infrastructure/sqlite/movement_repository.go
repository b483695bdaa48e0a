package sqlite

import (
	"context"
	"fmt"

	"github.com/dmorales/batch-records-api/internal/domain/entity"
	"github.com/dmorales/batch-records-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de inventario append-only.
type MovementRepo struct {
	q Querier
}

func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func (r *MovementRepo) Insert(ctx context.Context, mv *entity.StockMovement) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO stock_movements (material_type, material_id, movement_type, quantity, reference_type, reference_id, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		mv.MaterialType, mv.MaterialID, mv.MovementType, mv.Quantity,
		mv.ReferenceType, mv.ReferenceID, mv.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}
