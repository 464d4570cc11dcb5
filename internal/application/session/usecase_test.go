package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehr051/task-manager-api/internal/application/session"
	"github.com/ehr051/task-manager-api/internal/domain"
	"github.com/ehr051/task-manager-api/internal/domain/entity"
	"github.com/ehr051/task-manager-api/pkg/config"
	"github.com/ehr051/task-manager-api/pkg/logger"
)

var testJWT = config.JWTConfig{
	Secret:     "test-secret-key-for-unit-tests",
	Expiration: 60,
	Issuer:     "task-manager-test",
}

// fakeUserRepo respaldo remoto simulado para los tests de sesión.
type fakeUserRepo struct {
	users map[string]*entity.User // username -> user (password en texto plano)
	err   error
}

func (f *fakeUserRepo) Create(*entity.User) error { return nil }

func (f *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	return f.users[username], nil
}

func (f *fakeUserRepo) GetByCredentials(username, password string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u := f.users[username]
	if u == nil || u.Password != password {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUserRepo) List() ([]*entity.User, error) { return nil, nil }

func localUseCase(t *testing.T) *session.UseCase {
	t.Helper()
	return session.NewUseCase(&fakeUserRepo{}, false, session.NewStore(), testJWT, logger.Nop())
}

// El username se normaliza: espacios recortados y mayúsculas.
func TestAuthenticate_NormalizaUsername(t *testing.T) {
	uc := localUseCase(t)

	out, err := uc.Authenticate("  ehr051 ", "R4T4G4T4")
	require.NoError(t, err)
	assert.Equal(t, "EHR051", out.User.Username)
	assert.Equal(t, "EHR051", out.User.Name, "en modo local el nombre visible es el username, como en el directorio sembrado")
	assert.Equal(t, "admin", out.User.Role)
	assert.NotEmpty(t, out.Token)
}

// En modo local se distingue usuario inexistente de contraseña incorrecta.
func TestAuthenticate_ErroresDistintosEnModoLocal(t *testing.T) {
	uc := localUseCase(t)

	_, err := uc.Authenticate("NOEXISTE", "x")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Authenticate("FGR134", "incorrecta")
	assert.ErrorIs(t, err, domain.ErrWrongPassword)
}

// En modo remoto la verificación es una sola consulta: sin coincidencia es
// siempre credenciales inválidas, y un fallo de red es error de conexión.
func TestAuthenticate_ModoRemoto(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*entity.User{
		"EHR051": {Username: "EHR051", Name: "Emilio", Password: "secreta", Role: entity.RoleAdmin},
	}}
	uc := session.NewUseCase(repo, true, session.NewStore(), testJWT, logger.Nop())

	out, err := uc.Authenticate("ehr051", "secreta")
	require.NoError(t, err)
	assert.Equal(t, "EHR051", out.User.Username)

	_, err = uc.Authenticate("EHR051", "otra")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	repo.err = domain.ErrBackendUnavailable
	_, err = uc.Authenticate("EHR051", "secreta")
	assert.ErrorIs(t, err, domain.ErrConnection)
}

// Logout revoca la sesión aunque el token siga siendo criptográficamente válido.
func TestLogout_RevocaSesion(t *testing.T) {
	uc := localUseCase(t)

	out, err := uc.Authenticate("EHR051", "R4T4G4T4")
	require.NoError(t, err)

	user, err := uc.CurrentUser(out.Token)
	require.NoError(t, err)
	assert.Equal(t, "EHR051", user.Username)

	uc.Logout(out.Token)

	_, err = uc.CurrentUser(out.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Logout repetido o con token basura no falla.
	uc.Logout(out.Token)
	uc.Logout("token-invalido")
}

// Credenciales vacías se rechazan antes de consultar cualquier backend.
func TestAuthenticate_EntradaVacia(t *testing.T) {
	uc := localUseCase(t)

	_, err := uc.Authenticate("", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Authenticate("EHR051", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
