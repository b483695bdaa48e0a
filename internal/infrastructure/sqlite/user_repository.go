package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmorales/batch-records-api/internal/domain"
	"github.com/dmorales/batch-records-api/internal/domain/entity"
	"github.com/dmorales/batch-records-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre SQLite.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia de usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, username, email, password_hash, role, full_name, is_active,
	failed_login_attempts, locked_until, last_login, created_at`

// Create persiste un usuario nuevo. Username y email son únicos.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, role, full_name, is_active)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.Username, u.Email, u.PasswordHash, u.Role, u.FullName, boolInt(u.IsActive),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return res.LastInsertId()
}

// GetByID obtiene un usuario por id. Devuelve ErrUserNotFound si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetActiveByUsername obtiene un usuario activo por username.
// Devuelve (nil, nil) si no existe: el login trata la ausencia como
// credenciales inválidas, no como error.
func (r *UserRepo) GetActiveByUsername(ctx context.Context, username string) (*entity.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ? AND is_active = 1`, username)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

// List usuarios ordenados por fecha de alta descendente.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// RegisterFailedLogin fija el contador de intentos y el bloqueo.
func (r *UserRepo) RegisterFailedLogin(ctx context.Context, userID int64, attempts int, lockedUntil *time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE users SET failed_login_attempts = ?, locked_until = ? WHERE id = ?`,
		attempts, nullTimeString(lockedUntil), userID,
	)
	if err != nil {
		return fmt.Errorf("register failed login: %w", err)
	}
	return nil
}

// RegisterSuccessfulLogin limpia el contador y estampa last_login.
func (r *UserRepo) RegisterSuccessfulLogin(ctx context.Context, userID int64) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE users
		 SET failed_login_attempts = 0, locked_until = NULL, last_login = CURRENT_TIMESTAMP
		 WHERE id = ?`, userID,
	)
	if err != nil {
		return fmt.Errorf("register successful login: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*entity.User, error) {
	var u entity.User
	var isActive int
	var lockedUntil, lastLogin sql.NullString
	var createdAt string
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.FullName,
		&isActive, &u.FailedLoginAttempts, &lockedUntil, &lastLogin, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	u.IsActive = isActive != 0
	u.LockedUntil = parseNullTime(lockedUntil)
	u.LastLogin = parseNullTime(lastLogin)
	u.CreatedAt = parseTime(createdAt)
	return &u, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
