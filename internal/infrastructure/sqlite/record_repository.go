package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmorales/batch-records-api/internal/domain"
	"github.com/dmorales/batch-records-api/internal/domain/entity"
	"github.com/dmorales/batch-records-api/internal/domain/repository"
)

var _ repository.RecordRepository = (*RecordRepo)(nil)

// RecordRepo registros de lote y su máquina de estados. Las
// transiciones son UPDATE condicionales: la guarda va en el WHERE y
// cero filas afectadas significa ErrNotFound, sin distinguir causa.
type RecordRepo struct {
	q Querier
}

func NewRecordRepository(q Querier) *RecordRepo {
	return &RecordRepo{q: q}
}

const recordSelect = `
	SELECT r.id, r.batch_number, r.operator_id, r.product_name, r.quantity,
	       r.production_date, r.form_data, r.data_hash, r.status,
	       r.verificador_id, r.signed_at, r.verified_at, r.created_at,
	       u.full_name, v.full_name
	FROM records r
	JOIN users u ON u.id = r.operator_id
	LEFT JOIN users v ON v.id = r.verificador_id`

// Create persiste un registro nuevo en draft. BatchNumber es único.
func (r *RecordRepo) Create(ctx context.Context, rec *entity.BatchRecord) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO records (batch_number, operator_id, product_name, quantity, production_date, form_data, data_hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.BatchNumber, rec.OperatorID, rec.ProductName, rec.Quantity,
		rec.ProductionDate, string(rec.FormData), rec.DataHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert record: %w", err)
	}
	return res.LastInsertId()
}

func (r *RecordRepo) GetByID(ctx context.Context, id int64) (*entity.BatchRecord, error) {
	row := r.q.QueryRowContext(ctx, recordSelect+` WHERE r.id = ?`, id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// List todos los registros, más recientes primero.
func (r *RecordRepo) List(ctx context.Context) ([]*entity.BatchRecord, error) {
	return r.listQuery(ctx, recordSelect+` ORDER BY r.created_at DESC`)
}

// ListByOperator solo los registros del operador.
func (r *RecordRepo) ListByOperator(ctx context.Context, operatorID int64) ([]*entity.BatchRecord, error) {
	return r.listQuery(ctx, recordSelect+` WHERE r.operator_id = ? ORDER BY r.created_at DESC`, operatorID)
}

// MarkSigned transición draft -> signed. La guarda exige que el
// registro exista, pertenezca al operador y siga en draft; si no se
// cumple completa, cero filas y ErrNotFound.
func (r *RecordRepo) MarkSigned(ctx context.Context, recordID, operatorID int64) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE records SET status = 'signed', signed_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND operator_id = ? AND status = 'draft'`,
		recordID, operatorID,
	)
	if err != nil {
		return fmt.Errorf("mark record signed: %w", err)
	}
	return requireAffected(res)
}

// MarkVerified transición signed -> approved|rejected, estampando
// verificador y verified_at. Guarda: status = 'signed'.
func (r *RecordRepo) MarkVerified(ctx context.Context, recordID, verificadorID int64, approved bool) error {
	status := entity.StatusRejected
	if approved {
		status = entity.StatusApproved
	}
	res, err := r.q.ExecContext(ctx,
		`UPDATE records SET status = ?, verificador_id = ?, verified_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = 'signed'`,
		status, verificadorID, recordID,
	)
	if err != nil {
		return fmt.Errorf("mark record verified: %w", err)
	}
	return requireAffected(res)
}

func (r *RecordRepo) CountByOperator(ctx context.Context, operatorID int64) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM records WHERE operator_id = ?`, operatorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count records by operator: %w", err)
	}
	return count, nil
}

func (r *RecordRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM records WHERE status = ?`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count records by status: %w", err)
	}
	return count, nil
}

func (r *RecordRepo) listQuery(ctx context.Context, query string, args ...any) ([]*entity.BatchRecord, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []*entity.BatchRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRecord(row rowScanner) (*entity.BatchRecord, error) {
	var rec entity.BatchRecord
	var formData string
	var verificadorID sql.NullInt64
	var signedAt, verifiedAt, verificadorName sql.NullString
	var createdAt string
	err := row.Scan(
		&rec.ID, &rec.BatchNumber, &rec.OperatorID, &rec.ProductName, &rec.Quantity,
		&rec.ProductionDate, &formData, &rec.DataHash, &rec.Status,
		&verificadorID, &signedAt, &verifiedAt, &createdAt,
		&rec.OperatorName, &verificadorName,
	)
	if err != nil {
		return nil, err
	}
	rec.FormData = []byte(formData)
	rec.VerificadorID = int64Ptr(verificadorID)
	rec.SignedAt = parseNullTime(signedAt)
	rec.VerifiedAt = parseNullTime(verifiedAt)
	rec.CreatedAt = parseTime(createdAt)
	rec.VerificadorName = verificadorName.String
	return &rec, nil
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
