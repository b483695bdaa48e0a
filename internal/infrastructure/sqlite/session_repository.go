package sqlite

import (
	"context"
	"fmt"

	"github.com/dmorales/batch-records-api/internal/domain/entity"
	"github.com/dmorales/batch-records-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo sesiones informativas de login.
type SessionRepo struct {
	q Querier
}

func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

func (r *SessionRepo) Insert(ctx context.Context, s *entity.UserSession) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO user_sessions (id, user_id, expires_at, ip_address, user_agent)
		 VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.UserID, formatTime(s.ExpiresAt), s.IPAddress, s.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}
