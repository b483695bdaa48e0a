package sqlite

import (
	"context"
	"fmt"

	"github.com/dmorales/batch-records-api/internal/domain/entity"
	"github.com/dmorales/batch-records-api/internal/domain/repository"
)

var _ repository.PackagingMaterialRepository = (*PackagingRepo)(nil)

// PackagingRepo materiales de empaque.
type PackagingRepo struct {
	q Querier
}

func NewPackagingRepository(q Querier) *PackagingRepo {
	return &PackagingRepo{q: q}
}

// ListActive materiales activos ordenados por tipo y nombre.
func (r *PackagingRepo) ListActive(ctx context.Context) ([]*entity.PackagingMaterial, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, code, name, type, unit, stock, is_active
		 FROM packaging_materials WHERE is_active = 1 ORDER BY type, name`)
	if err != nil {
		return nil, fmt.Errorf("list packaging materials: %w", err)
	}
	defer rows.Close()

	var materials []*entity.PackagingMaterial
	for rows.Next() {
		var m entity.PackagingMaterial
		var isActive int
		if err := rows.Scan(&m.ID, &m.Code, &m.Name, &m.Type, &m.Unit, &m.Stock, &isActive); err != nil {
			return nil, fmt.Errorf("scan packaging material: %w", err)
		}
		m.IsActive = isActive != 0
		materials = append(materials, &m)
	}
	return materials, rows.Err()
}
