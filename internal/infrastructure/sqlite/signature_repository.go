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

var _ repository.SignatureRepository = (*SignatureRepo)(nil)

// SignatureRepo llaves de firma por usuario y firmas aplicadas a
// registros.
type SignatureRepo struct {
	q Querier
}

func NewSignatureRepository(q Querier) *SignatureRepo {
	return &SignatureRepo{q: q}
}

func (r *SignatureRepo) InsertRecordSignature(ctx context.Context, s *entity.RecordSignature) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO record_signatures (record_id, user_id, signature_data, signature_type)
		 VALUES (?, ?, ?, ?)`,
		s.RecordID, s.UserID, s.SignatureData, s.SignatureType,
	)
	if err != nil {
		return fmt.Errorf("insert record signature: %w", err)
	}
	return nil
}

// GetActiveKey llave de firma activa del usuario. ErrNotFound si el
// usuario no tiene llave vigente.
func (r *SignatureRepo) GetActiveKey(ctx context.Context, userID int64) (*entity.SignatureKey, error) {
	var k entity.SignatureKey
	var isActive int
	var createdAt string
	err := r.q.QueryRowContext(ctx,
		`SELECT id, user_id, public_key, private_key_encrypted, is_active, created_at
		 FROM digital_signatures WHERE user_id = ? AND is_active = 1`,
		userID,
	).Scan(&k.ID, &k.UserID, &k.PublicKey, &k.PrivateKeyEncrypted, &isActive, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get signature key: %w", err)
	}
	k.IsActive = isActive != 0
	k.CreatedAt = parseTime(createdAt)
	return &k, nil
}

func (r *SignatureRepo) InsertKey(ctx context.Context, k *entity.SignatureKey) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO digital_signatures (user_id, public_key, private_key_encrypted, is_active)
		 VALUES (?, ?, ?, ?)`,
		k.UserID, k.PublicKey, k.PrivateKeyEncrypted, boolInt(k.IsActive),
	)
	if err != nil {
		return fmt.Errorf("insert signature key: %w", err)
	}
	return nil
}
