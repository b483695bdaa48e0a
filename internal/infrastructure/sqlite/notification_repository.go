package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmorales/batch-records-api/internal/domain/entity"
	"github.com/dmorales/batch-records-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo avisos de usuario. user_id NULL es un broadcast
// visible para todos.
type NotificationRepo struct {
	q Querier
}

func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

func (r *NotificationRepo) ListForUser(ctx context.Context, userID int64, limit int) ([]*entity.Notification, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, user_id, title, message, type, is_read, created_at
		 FROM notifications
		 WHERE user_id = ? OR user_id IS NULL
		 ORDER BY created_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		var uid sql.NullInt64
		var isRead int
		var createdAt string
		if err := rows.Scan(&n.ID, &uid, &n.Title, &n.Message, &n.Type, &isRead, &createdAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.UserID = int64Ptr(uid)
		n.IsRead = isRead != 0
		n.CreatedAt = parseTime(createdAt)
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

// MarkRead marca como leído solo si el aviso pertenece al usuario.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID int64) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return requireAffected(res)
}
