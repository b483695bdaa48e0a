package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmorales/batch-records-api/internal/application/records"
	"github.com/dmorales/batch-records-api/internal/domain/repository"
)

var _ records.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner con la BD.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y
// hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	recordRepo repository.RecordRepository,
	lineRepo repository.BatchFormulationRepository,
	materialRepo repository.RawMaterialRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	recordRepo := NewRecordRepository(tx)
	lineRepo := NewBatchFormulationRepository(tx)
	materialRepo := NewRawMaterialRepository(tx)
	movementRepo := NewMovementRepository(tx)

	if err := fn(recordRepo, lineRepo, materialRepo, movementRepo); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
