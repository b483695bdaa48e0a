package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dmorales/batch-records-api/internal/domain/entity"
	"github.com/dmorales/batch-records-api/internal/domain/repository"
)

var _ repository.BatchFormulationRepository = (*BatchFormulationRepo)(nil)

// BatchFormulationRepo snapshot de formulación de los registros de lote.
type BatchFormulationRepo struct {
	q Querier
}

func NewBatchFormulationRepository(q Querier) *BatchFormulationRepo {
	return &BatchFormulationRepo{q: q}
}

func (r *BatchFormulationRepo) Insert(ctx context.Context, line *entity.BatchFormulationLine) error {
	var actual any
	if line.ActualQuantity != nil {
		actual = *line.ActualQuantity
	}
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO batch_formulation (record_id, raw_material_id, item_number, percentage, theoretical_quantity, actual_quantity, lot_number, dispensed_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		line.RecordID, line.RawMaterialID, line.ItemNumber, line.Percentage,
		line.TheoreticalQuantity, actual, nullString(line.LotNumber), nullString(line.DispensedBy),
	)
	if err != nil {
		return fmt.Errorf("insert batch formulation line: %w", err)
	}
	return nil
}

// ListByRecord renglones del registro ordenados por item_number, con
// nombre y unidad de la materia prima denormalizados.
func (r *BatchFormulationRepo) ListByRecord(ctx context.Context, recordID int64) ([]entity.BatchFormulationLine, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT bf.id, bf.record_id, bf.raw_material_id, bf.item_number, bf.percentage,
		        bf.theoretical_quantity, bf.actual_quantity, bf.lot_number, bf.dispensed_by,
		        rm.name, rm.unit
		 FROM batch_formulation bf
		 JOIN raw_materials rm ON rm.id = bf.raw_material_id
		 WHERE bf.record_id = ?
		 ORDER BY bf.item_number`,
		recordID,
	)
	if err != nil {
		return nil, fmt.Errorf("list batch formulation: %w", err)
	}
	defer rows.Close()

	var lines []entity.BatchFormulationLine
	for rows.Next() {
		var line entity.BatchFormulationLine
		var actual decimal.NullDecimal
		var lotNumber, dispensedBy sql.NullString
		err := rows.Scan(
			&line.ID, &line.RecordID, &line.RawMaterialID, &line.ItemNumber, &line.Percentage,
			&line.TheoreticalQuantity, &actual, &lotNumber, &dispensedBy,
			&line.RawMaterialName, &line.Unit,
		)
		if err != nil {
			return nil, fmt.Errorf("scan batch formulation line: %w", err)
		}
		if actual.Valid {
			line.ActualQuantity = &actual.Decimal
		}
		line.LotNumber = lotNumber.String
		line.DispensedBy = dispensedBy.String
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
