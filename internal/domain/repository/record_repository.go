package repository

import (
	"context"

	"github.com/dmorales/batch-records-api/internal/domain/entity"
)

// RecordRepository puerto de persistencia para BatchRecord y su máquina
// de estados. Las transiciones se implementan como UPDATE condicionales:
// si el predicado de guarda no alcanza ninguna fila, la operación
// devuelve domain.ErrNotFound sin distinguir la causa (no existe, no es
// suyo, o ya cambió de estado).
type RecordRepository interface {
	Create(ctx context.Context, r *entity.BatchRecord) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.BatchRecord, error)
	// List devuelve todos los registros; ListByOperator solo los del
	// operador (visibilidad por rol).
	List(ctx context.Context) ([]*entity.BatchRecord, error)
	ListByOperator(ctx context.Context, operatorID int64) ([]*entity.BatchRecord, error)

	// MarkSigned ejecuta la transición draft->signed con la guarda
	// operator_id = operatorID AND status = 'draft'.
	MarkSigned(ctx context.Context, recordID, operatorID int64) error
	// MarkVerified ejecuta la transición signed->approved|rejected con la
	// guarda status = 'signed', estampando verificador y verified_at.
	MarkVerified(ctx context.Context, recordID, verificadorID int64, approved bool) error

	CountByOperator(ctx context.Context, operatorID int64) (int, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}

// BatchFormulationRepository snapshot de formulación de un registro.
type BatchFormulationRepository interface {
	Insert(ctx context.Context, line *entity.BatchFormulationLine) error
	ListByRecord(ctx context.Context, recordID int64) ([]entity.BatchFormulationLine, error)
}

// SignatureRepository firmas digitales aplicadas a registros y llaves
// por usuario.
type SignatureRepository interface {
	InsertRecordSignature(ctx context.Context, s *entity.RecordSignature) error
	GetActiveKey(ctx context.Context, userID int64) (*entity.SignatureKey, error)
	InsertKey(ctx context.Context, k *entity.SignatureKey) error
}
