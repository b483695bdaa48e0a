package repository

import (
	"context"
	"time"

	"github.com/dmorales/batch-records-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para User.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetActiveByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)

	// RegisterFailedLogin incrementa el contador de intentos fallidos y
	// fija lockedUntil (nil = sin bloqueo).
	RegisterFailedLogin(ctx context.Context, userID int64, attempts int, lockedUntil *time.Time) error
	// RegisterSuccessfulLogin limpia el contador y estampa last_login.
	RegisterSuccessfulLogin(ctx context.Context, userID int64) error
}

// SessionRepository sesiones informativas creadas en el login.
type SessionRepository interface {
	Insert(ctx context.Context, s *entity.UserSession) error
}

// AuditRepository audit trail append-only.
type AuditRepository interface {
	Insert(ctx context.Context, e *entity.AuditEntry) error
}

// NotificationRepository avisos de usuario.
type NotificationRepository interface {
	ListForUser(ctx context.Context, userID int64, limit int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) error
}
