package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/recepta-api/internal/application/dto"
	"github.com/tu-usuario/recepta-api/internal/domain"
	"github.com/tu-usuario/recepta-api/internal/domain/entity"
	"github.com/tu-usuario/recepta-api/internal/domain/repository"
	"github.com/tu-usuario/recepta-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: alta de cuenta y login.
type UseCase struct {
	userRepo      repository.UserRepository
	workspaceRepo repository.WorkspaceRepository
	jwtCfg        JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, workspaceRepo repository.WorkspaceRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, workspaceRepo: workspaceRepo, jwtCfg: jwtCfg}
}

// Register crea workspace + usuario en una sola operación de alta: hashea la
// password con bcrypt y devuelve los identificadores asignados por el servidor
// más un token de sesión. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	existing, _ := uc.userRepo.FindByEmail(in.WorkEmail)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	tz := in.Timezone
	if tz == "" {
		tz = "America/Bogota"
	}
	ws := &entity.Workspace{
		ID:           uuid.New().String(),
		BusinessName: in.BusinessName,
		Timezone:     tz,
		Status:       entity.WorkspaceOnboarding,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.workspaceRepo.Create(ws); err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		WorkspaceID:  ws.ID,
		Email:        in.WorkEmail,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, ws.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{
		WorkspaceID: ws.ID,
		UserID:      user.ID,
		Token:       token,
	}, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.WorkspaceID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		WorkspaceID: u.WorkspaceID,
		Email:       u.Email,
		FullName:    u.FullName,
		Status:      u.Status,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
