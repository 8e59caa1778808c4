package auth

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/astillero-mes/yacht-mes/internal/application/dto"
	"github.com/astillero-mes/yacht-mes/internal/domain"
	"github.com/astillero-mes/yacht-mes/internal/domain/repository"
	"github.com/astillero-mes/yacht-mes/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Recorder registra eventos de login/logout en auditoría. Sus fallos no
// interrumpen la autenticación.
type Recorder interface {
	RecordLogin(ctx context.Context, userID int64, username, ip, userAgent string)
	RecordLogout(ctx context.Context, userID int64, username, ip, userAgent string)
}

// UseCase casos de uso de autenticación: login, refresh, logout y perfil propio.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	recorder Recorder
	log      zerolog.Logger
}

// NewUseCase construye el caso de uso de auth. recorder puede ser nil.
func NewUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, recorder Recorder, log zerolog.Logger) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg, recorder: recorder, log: log}
}

// ClientInfo datos del cliente HTTP para auditoría.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// Login verifica username/password contra el hash bcrypt, exige cuenta activa,
// actualiza last_login_at, emite el JWT y deja rastro en auditoría.
// Credenciales malas y usuario inexistente devuelven el mismo error.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest, client ClientInfo) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrValidation
	}
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		uc.log.Warn().Err(err).Int64("user_id", user.ID).Msg("no se pudo actualizar last_login_at")
	}
	if uc.recorder != nil {
		uc.recorder.RecordLogin(ctx, user.ID, user.Username, client.IP, client.UserAgent)
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   uc.jwtCfg.ExpMinutes * 60,
		User:        *toUserResponse(user),
	}, nil
}

// Refresh emite un token nuevo para un usuario ya autenticado y todavía activo.
func (uc *UseCase) Refresh(ctx context.Context, userID int64) (*dto.RefreshResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   uc.jwtCfg.ExpMinutes * 60,
	}, nil
}

// Logout solo deja rastro en auditoría: el token es stateless y expira solo.
func (uc *UseCase) Logout(ctx context.Context, userID int64, username string, client ClientInfo) {
	if uc.recorder != nil {
		uc.recorder.RecordLogout(ctx, userID, username, client.IP, client.UserAgent)
	}
}

// Me devuelve el perfil del usuario autenticado.
func (uc *UseCase) Me(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}
