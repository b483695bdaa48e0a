package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmorales/batch-records-api/internal/application/audit"
	"github.com/dmorales/batch-records-api/internal/application/dto"
	"github.com/dmorales/batch-records-api/internal/domain"
	"github.com/dmorales/batch-records-api/internal/domain/entity"
	"github.com/dmorales/batch-records-api/internal/domain/repository"
	"github.com/dmorales/batch-records-api/pkg/jwt"
)

const (
	maxFailedAttempts = 5
	lockDuration      = 15 * time.Minute
	sessionDuration   = 8 * time.Hour
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// KeyGenerator genera el par de llaves de firma digital de un usuario
// nuevo (implementado por infrastructure/signature).
type KeyGenerator interface {
	GenerateKeyPair() (publicPEM, privateEncrypted string, err error)
}

// AuthUseCase casos de uso de autenticación y gestión de usuarios.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	sigRepo     repository.SignatureRepository
	keys        KeyGenerator
	audit       *audit.Service
	jwtCfg      JWTConfig
	bcryptCost  int
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	sigRepo repository.SignatureRepository,
	keys KeyGenerator,
	auditSvc *audit.Service,
	jwtCfg JWTConfig,
	bcryptCost int,
) *AuthUseCase {
	if bcryptCost == 0 {
		bcryptCost = 12
	}
	return &AuthUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		sigRepo:     sigRepo,
		keys:        keys,
		audit:       auditSvc,
		jwtCfg:      jwtCfg,
		bcryptCost:  bcryptCost,
	}
}

// Login verifica credenciales con bloqueo por intentos fallidos:
// al quinto fallo consecutivo la cuenta queda bloqueada 15 minutos.
// En éxito limpia el contador, estampa last_login, crea la sesión y
// emite el JWT (8 horas).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest, meta audit.RequestMeta) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.GetActiveByUsername(ctx, in.Username)
	if err != nil {
		uc.audit.Log(ctx, nil, nil, "login_error", map[string]any{"username": in.Username, "error": err.Error()}, meta)
		return nil, err
	}
	if user == nil {
		uc.audit.Log(ctx, nil, nil, "login_failed", map[string]any{"username": in.Username, "reason": "user_not_found"}, meta)
		return nil, domain.ErrUnauthorized
	}

	now := time.Now()
	if user.Locked(now) {
		uc.audit.Log(ctx, &user.ID, nil, "login_blocked", map[string]any{"reason": "account_locked"}, meta)
		return nil, domain.ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		attempts := user.FailedLoginAttempts + 1
		var lockedUntil *time.Time
		if attempts >= maxFailedAttempts {
			t := now.Add(lockDuration)
			lockedUntil = &t
		}
		if err := uc.userRepo.RegisterFailedLogin(ctx, user.ID, attempts, lockedUntil); err != nil {
			return nil, err
		}
		uc.audit.Log(ctx, &user.ID, nil, "login_failed", map[string]any{"reason": "invalid_password", "attempts": attempts}, meta)
		return nil, domain.ErrUnauthorized
	}

	if err := uc.userRepo.RegisterSuccessfulLogin(ctx, user.ID); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, user.FullName, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	session := &entity.UserSession{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: now.Add(sessionDuration),
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}
	if err := uc.sessionRepo.Insert(ctx, session); err != nil {
		return nil, err
	}

	uc.audit.Log(ctx, &user.ID, nil, "login_success", map[string]any{"sessionId": session.ID}, meta)

	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Logout solo deja constancia en el audit trail; el token expira solo.
func (uc *AuthUseCase) Logout(ctx context.Context, userID int64, tokenPrefix string, meta audit.RequestMeta) {
	uc.audit.Log(ctx, &userID, nil, "logout", map[string]any{"token_prefix": tokenPrefix}, meta)
}

// CreateUser alta de usuario por un admin: valida rol, hashea el
// password y genera el par de llaves RSA para firma digital.
func (uc *AuthUseCase) CreateUser(ctx context.Context, actorID int64, in dto.CreateUserRequest, meta audit.RequestMeta) (*dto.UserResponse, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" || in.Role == "" || in.FullName == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		FullName:     in.FullName,
		IsActive:     true,
	}
	id, err := uc.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	publicPEM, privateEncrypted, err := uc.keys.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	key := &entity.SignatureKey{
		UserID:              id,
		PublicKey:           publicPEM,
		PrivateKeyEncrypted: privateEncrypted,
		IsActive:            true,
	}
	if err := uc.sigRepo.InsertKey(ctx, key); err != nil {
		return nil, err
	}

	uc.audit.Log(ctx, &actorID, nil, "user_created", map[string]any{"newUserId": id, "username": in.Username, "role": in.Role}, meta)

	return toUserResponse(user), nil
}

// ListUsers listado completo (solo admin).
func (uc *AuthUseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}
