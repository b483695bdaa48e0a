package sqlite

import (
	"context"
	"fmt"

	"github.com/dmorales/batch-records-api/internal/domain/entity"
	"github.com/dmorales/batch-records-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo audit trail append-only.
type AuditRepo struct {
	q Querier
}

func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

func (r *AuditRepo) Insert(ctx context.Context, e *entity.AuditEntry) error {
	var details any
	if len(e.Details) > 0 {
		details = string(e.Details)
	}
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO audit_trail (user_id, record_id, action, details, ip_address, user_agent)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		nullInt64(e.UserID), nullInt64(e.RecordID), e.Action, details, e.IPAddress, e.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}
