package session

import (
	"strings"

	"github.com/ehr051/task-manager-api/internal/application/dto"
	"github.com/ehr051/task-manager-api/internal/domain"
	"github.com/ehr051/task-manager-api/internal/domain/repository"
	"github.com/ehr051/task-manager-api/pkg/config"
	"github.com/ehr051/task-manager-api/pkg/jwt"
	"github.com/ehr051/task-manager-api/pkg/logger"
)

// tempUser credencial de respaldo para el modo local.
type tempUser struct {
	Password string
	Name     string
	Role     string
}

// tempUsers tabla fija de usuarios de respaldo. Solo se consulta cuando no hay
// backend remoto disponible; con remoto los usuarios viven en la tabla users.
// El nombre visible es el propio username, igual que en el directorio local
// sembrado, para que ambas vistas coincidan en modo local.
var tempUsers = map[string]tempUser{
	"EHR051": {Password: "R4T4G4T4", Name: "EHR051", Role: "admin"},
	"FGR134": {Password: "R4T4G4T4", Name: "FGR134", Role: "user"},
}

// UseCase resuelve autenticación y sesiones.
type UseCase struct {
	users    repository.UserRepository
	remote   bool
	sessions *Store
	jwtCfg   config.JWTConfig
	log      *logger.Logger
}

// NewUseCase crea el caso de uso de sesión. remote indica si el router de
// persistencia eligió el backend remoto; con false la autenticación usa la
// tabla fija de respaldo.
func NewUseCase(users repository.UserRepository, remote bool, sessions *Store, jwtCfg config.JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{users: users, remote: remote, sessions: sessions, jwtCfg: jwtCfg, log: log}
}

// Normalize normaliza el username ingresado: recorta espacios y pasa a mayúsculas.
func Normalize(username string) string {
	return strings.ToUpper(strings.TrimSpace(username))
}

// Authenticate valida credenciales, emite un token y registra la sesión.
//
// Con backend remoto la verificación es una sola consulta por ambas columnas,
// por lo que no se distingue usuario inexistente de contraseña incorrecta
// (domain.ErrInvalidCredentials en ambos casos). Con la tabla de respaldo sí
// se distinguen (ErrUserNotFound / ErrWrongPassword).
func (uc *UseCase) Authenticate(username, password string) (*dto.LoginResponse, error) {
	username = Normalize(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	var name, role string
	if uc.remote {
		u, err := uc.users.GetByCredentials(username, password)
		if err != nil {
			uc.log.Error().Err(err).Str("username", username).Msg("error consultando credenciales")
			return nil, domain.ErrConnection
		}
		if u == nil {
			return nil, domain.ErrInvalidCredentials
		}
		name, role = u.Name, u.Role
		if role == "" {
			role = "user"
		}
	} else {
		tu, ok := tempUsers[username]
		if !ok {
			return nil, domain.ErrUserNotFound
		}
		if tu.Password != password {
			return nil, domain.ErrWrongPassword
		}
		name, role = tu.Name, tu.Role
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, username, name, role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	uc.sessions.Put(token, Record{Username: username, Name: name, Role: role})

	uc.log.Info().Str("username", username).Bool("remote", uc.remote).Msg("sesión iniciada")
	return &dto.LoginResponse{
		Token: token,
		User:  dto.SessionUser{Username: username, Name: name, Role: role},
	}, nil
}

// CurrentUser devuelve el usuario de la sesión asociada al token.
// El token debe ser válido y la sesión seguir registrada (logout la revoca).
func (uc *UseCase) CurrentUser(token string) (*dto.SessionUser, error) {
	username, name, role, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if _, ok := uc.sessions.Get(token); !ok {
		return nil, domain.ErrUnauthorized
	}
	return &dto.SessionUser{Username: username, Name: name, Role: role}, nil
}

// Logout cierra la sesión del token de forma incondicional: limpia el registro
// aunque el token sea inválido o la sesión ya no exista.
func (uc *UseCase) Logout(token string) {
	uc.sessions.Delete(token)
}
