package records

import (
	"context"

	"github.com/dmorales/batch-records-api/internal/domain/entity"
	"github.com/dmorales/batch-records-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el alta
// completa de lote: registro + snapshot de formulación + descuento de
// stock + movimientos OUT se confirman o revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		recordRepo repository.RecordRepository,
		lineRepo repository.BatchFormulationRepository,
		materialRepo repository.RawMaterialRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}

// Signer firma los datos de un registro con la llave privada del usuario
// (implementado por infrastructure/signature).
type Signer interface {
	Sign(data []byte, privateKeyEncrypted string) (string, error)
	HashData(data []byte) string
}

// PDFGenerator genera la representación imprimible de un registro
// (implementado por infrastructure/pdf).
type PDFGenerator interface {
	GenerateRecordPDF(ctx context.Context, record *entity.BatchRecord, lines []entity.BatchFormulationLine) ([]byte, error)
}
