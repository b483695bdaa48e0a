package sqlite

import (
	"context"
	"fmt"

	"github.com/dmorales/batch-records-api/internal/domain/entity"
	"github.com/dmorales/batch-records-api/internal/domain/repository"
)

var _ repository.FormulationRepository = (*FormulationRepo)(nil)

// FormulationRepo renglones de formulación de productos.
type FormulationRepo struct {
	q Querier
}

func NewFormulationRepository(q Querier) *FormulationRepo {
	return &FormulationRepo{q: q}
}

// ListByProduct renglones ordenados por item_number con los datos de la
// materia prima denormalizados.
func (r *FormulationRepo) ListByProduct(ctx context.Context, productID int64) ([]entity.FormulationItem, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT pf.id, pf.product_id, pf.raw_material_id, pf.item_number, pf.percentage,
		        rm.code, rm.name, rm.unit, rm.stock
		 FROM product_formulation pf
		 JOIN raw_materials rm ON rm.id = pf.raw_material_id
		 WHERE pf.product_id = ?
		 ORDER BY pf.item_number`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("list formulation: %w", err)
	}
	defer rows.Close()

	var items []entity.FormulationItem
	for rows.Next() {
		var it entity.FormulationItem
		err := rows.Scan(
			&it.ID, &it.ProductID, &it.RawMaterialID, &it.ItemNumber, &it.Percentage,
			&it.RawMaterialCode, &it.RawMaterialName, &it.RawMaterialUnit, &it.RawMaterialStock,
		)
		if err != nil {
			return nil, fmt.Errorf("scan formulation item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// DeleteByProduct borra la formulación completa del producto.
func (r *FormulationRepo) DeleteByProduct(ctx context.Context, productID int64) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM product_formulation WHERE product_id = ?`, productID)
	if err != nil {
		return fmt.Errorf("delete formulation: %w", err)
	}
	return nil
}

func (r *FormulationRepo) Insert(ctx context.Context, item *entity.FormulationItem) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO product_formulation (product_id, raw_material_id, item_number, percentage)
		 VALUES (?, ?, ?, ?)`,
		item.ProductID, item.RawMaterialID, item.ItemNumber, item.Percentage,
	)
	if err != nil {
		return fmt.Errorf("insert formulation item: %w", err)
	}
	return nil
}
