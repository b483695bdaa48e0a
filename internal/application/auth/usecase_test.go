package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmorales/batch-records-api/internal/application/audit"
	"github.com/dmorales/batch-records-api/internal/application/auth"
	"github.com/dmorales/batch-records-api/internal/application/dto"
	"github.com/dmorales/batch-records-api/internal/domain"
	"github.com/dmorales/batch-records-api/internal/domain/entity"
	"github.com/dmorales/batch-records-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	nextID int64
	users  map[string]*entity.User // por username
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) (int64, error) {
	if _, dup := r.users[u.Username]; dup {
		return 0, domain.ErrDuplicate
	}
	cp := *u
	cp.ID = r.nextID
	r.nextID++
	r.users[u.Username] = &cp
	return cp.ID, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetActiveByUsername(_ context.Context, username string) (*entity.User, error) {
	u, ok := r.users[username]
	if !ok || !u.IsActive {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) List(context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) RegisterFailedLogin(_ context.Context, userID int64, attempts int, lockedUntil *time.Time) error {
	for _, u := range r.users {
		if u.ID == userID {
			u.FailedLoginAttempts = attempts
			u.LockedUntil = lockedUntil
		}
	}
	return nil
}

func (r *fakeUserRepo) RegisterSuccessfulLogin(_ context.Context, userID int64) error {
	now := time.Now()
	for _, u := range r.users {
		if u.ID == userID {
			u.FailedLoginAttempts = 0
			u.LockedUntil = nil
			u.LastLogin = &now
		}
	}
	return nil
}

type fakeSessionRepo struct{ sessions []entity.UserSession }

func (r *fakeSessionRepo) Insert(_ context.Context, s *entity.UserSession) error {
	r.sessions = append(r.sessions, *s)
	return nil
}

type fakeSigRepo struct{ keys []entity.SignatureKey }

func (r *fakeSigRepo) InsertRecordSignature(context.Context, *entity.RecordSignature) error {
	return nil
}
func (r *fakeSigRepo) GetActiveKey(context.Context, int64) (*entity.SignatureKey, error) {
	return nil, domain.ErrNotFound
}
func (r *fakeSigRepo) InsertKey(_ context.Context, k *entity.SignatureKey) error {
	r.keys = append(r.keys, *k)
	return nil
}

type fakeKeyGen struct{}

func (fakeKeyGen) GenerateKeyPair() (string, string, error) {
	return "-----BEGIN RSA PUBLIC KEY-----\nfake\n-----END RSA PUBLIC KEY-----", "cifrada", nil
}

type fakeAuditRepo struct{ actions []string }

func (r *fakeAuditRepo) Insert(_ context.Context, e *entity.AuditEntry) error {
	r.actions = append(r.actions, e.Action)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc       *auth.AuthUseCase
	users    *fakeUserRepo
	sessions *fakeSessionRepo
	sigs     *fakeSigRepo
	auditLog *fakeAuditRepo
}

var meta = audit.RequestMeta{IPAddress: "10.0.0.1", UserAgent: "test"}

// bcrypt con costo mínimo para que la suite sea rápida.
const testBcryptCost = bcrypt.MinCost

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:    newFakeUserRepo(),
		sessions: &fakeSessionRepo{},
		sigs:     &fakeSigRepo{},
		auditLog: &fakeAuditRepo{},
	}
	auditSvc := audit.NewService(f.auditLog, logger.New(logger.Config{Env: "test", Level: "error"}))
	f.uc = auth.NewAuthUseCase(f.users, f.sessions, f.sigs, fakeKeyGen{}, auditSvc, auth.JWTConfig{
		Secret:     "secreto-de-pruebas",
		ExpMinutes: 60,
		Issuer:     "batch-records-test",
	}, testBcryptCost)
	return f
}

func seedUser(t *testing.T, f *fixture, username, password, role string) int64 {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), testBcryptCost)
	require.NoError(t, err)
	id, err := f.users.Create(context.Background(), &entity.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
		FullName:     "Usuario " + username,
		IsActive:     true,
	})
	require.NoError(t, err)
	return id
}

func login(f *fixture, username, password string) (*dto.LoginResponse, error) {
	return f.uc.Login(context.Background(), dto.LoginRequest{Username: username, Password: password}, meta)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Exitoso(t *testing.T) {
	f := newFixture(t)
	seedUser(t, f, "mruiz", "clave-segura", entity.RoleOperator)

	out, err := login(f, "mruiz", "clave-segura")
	require.NoError(t, err)

	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "mruiz", out.User.Username)
	assert.Equal(t, entity.RoleOperator, out.User.Role)
	require.Len(t, f.sessions.sessions, 1, "el login crea la sesión")
	assert.Equal(t, "10.0.0.1", f.sessions.sessions[0].IPAddress)
	assert.Contains(t, f.auditLog.actions, "login_success")
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	f := newFixture(t)
	seedUser(t, f, "mruiz", "clave-segura", entity.RoleOperator)

	_, err := login(f, "mruiz", "clave-mala")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, 1, f.users.users["mruiz"].FailedLoginAttempts)
	assert.Empty(t, f.sessions.sessions)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := login(f, "fantasma", "lo-que-sea")
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"usuario inexistente responde igual que password malo")
}

func TestLogin_BloqueoAlQuintoFallo(t *testing.T) {
	f := newFixture(t)
	seedUser(t, f, "mruiz", "clave-segura", entity.RoleOperator)

	for i := 0; i < 5; i++ {
		_, err := login(f, "mruiz", "clave-mala")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}
	u := f.users.users["mruiz"]
	assert.Equal(t, 5, u.FailedLoginAttempts)
	require.NotNil(t, u.LockedUntil, "el quinto fallo fija el bloqueo")
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), *u.LockedUntil, time.Minute)

	// Con la cuenta bloqueada ni el password correcto entra.
	_, err := login(f, "mruiz", "clave-segura")
	assert.ErrorIs(t, err, domain.ErrAccountLocked)
}

func TestLogin_ExitoLimpiaContador(t *testing.T) {
	f := newFixture(t)
	seedUser(t, f, "mruiz", "clave-segura", entity.RoleOperator)

	for i := 0; i < 3; i++ {
		_, _ = login(f, "mruiz", "clave-mala")
	}
	require.Equal(t, 3, f.users.users["mruiz"].FailedLoginAttempts)

	_, err := login(f, "mruiz", "clave-segura")
	require.NoError(t, err)
	assert.Equal(t, 0, f.users.users["mruiz"].FailedLoginAttempts)
	assert.NotNil(t, f.users.users["mruiz"].LastLogin)
}

func TestLogin_BloqueoExpirado(t *testing.T) {
	f := newFixture(t)
	seedUser(t, f, "mruiz", "clave-segura", entity.RoleOperator)
	past := time.Now().Add(-time.Minute)
	f.users.users["mruiz"].FailedLoginAttempts = 5
	f.users.users["mruiz"].LockedUntil = &past

	_, err := login(f, "mruiz", "clave-segura")
	assert.NoError(t, err, "un bloqueo vencido no impide el login")
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateUser
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateUser_GeneraLlavesDeFirma(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.CreateUser(context.Background(), 1, dto.CreateUserRequest{
		Username: "jperez",
		Email:    "jperez@example.com",
		Password: "clave-segura",
		Role:     entity.RoleVerificador,
		FullName: "Juan Pérez",
	}, meta)
	require.NoError(t, err)

	assert.Equal(t, entity.RoleVerificador, out.Role)
	require.Len(t, f.sigs.keys, 1, "el alta genera el par de llaves RSA")
	assert.Equal(t, out.ID, f.sigs.keys[0].UserID)
	assert.True(t, f.sigs.keys[0].IsActive)

	// El password queda hasheado, nunca en claro.
	stored := f.users.users["jperez"]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave-segura")))
}

func TestCreateUser_RolInvalido(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateUser(context.Background(), 1, dto.CreateUserRequest{
		Username: "x", Email: "x@example.com", Password: "p", Role: "superadmin", FullName: "X",
	}, meta)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateUser_UsernameDuplicado(t *testing.T) {
	f := newFixture(t)
	seedUser(t, f, "mruiz", "clave", entity.RoleOperator)

	_, err := f.uc.CreateUser(context.Background(), 1, dto.CreateUserRequest{
		Username: "mruiz", Email: "otro@example.com", Password: "p", Role: entity.RoleOperator, FullName: "Otra",
	}, meta)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
