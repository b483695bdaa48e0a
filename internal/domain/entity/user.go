package entity

import "time"

// Roles soportados por el sistema. No existe auto-registro: solo un
// admin crea usuarios.
const (
	RoleAdmin       = "admin"
	RoleOperator    = "operator"
	RoleVerificador = "verificador"
)

// ValidRole indica si el rol es uno de los tres soportados.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleOperator || role == RoleVerificador
}

// User usuario del sistema. El bloqueo por intentos fallidos se maneja
// con FailedLoginAttempts y LockedUntil (5 intentos -> 15 minutos).
type User struct {
	ID                  int64
	Username            string
	Email               string
	PasswordHash        string
	Role                string
	FullName            string
	IsActive            bool
	FailedLoginAttempts int
	LockedUntil         *time.Time
	LastLogin           *time.Time
	CreatedAt           time.Time
}

// Locked indica si la cuenta sigue bloqueada en el instante dado.
func (u *User) Locked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

// UserSession sesión creada al iniciar sesión (registro informativo).
type UserSession struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}

// SignatureKey par de llaves RSA del usuario para firma digital de registros.
// La llave privada se guarda cifrada; nunca sale del servidor.
type SignatureKey struct {
	ID                  int64
	UserID              int64
	PublicKey           string // PEM
	PrivateKeyEncrypted string
	IsActive            bool
	CreatedAt           time.Time
}
