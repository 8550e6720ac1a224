package service

import (
	"context"
	"testing"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/config"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/dto"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authEnv struct {
	usuarioRepo *stubUsuarioRepo
	cargoRepo   *stubCargoRepo
	auth        AuthService
}

func newAuthEnv() *authEnv {
	e := &authEnv{
		usuarioRepo: newStubUsuarioRepo(),
		cargoRepo:   newStubCargoRepo(),
	}
	cfg := &config.Config{
		JWTSecret:          "clave-de-prueba",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	e.auth = NewAuthService(e.usuarioRepo, e.cargoRepo, cfg, nil)
	return e
}

func (e *authEnv) seedUsuario(username, password, rol string) *model.Usuario {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.Usuario{
		Username:     username,
		Nombre:       "Usuario de Prueba",
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       true,
	}
	_ = e.usuarioRepo.Create(context.Background(), u)
	return u
}

func TestLogin_OK(t *testing.T) {
	e := newAuthEnv()
	e.seedUsuario("jquispe", "secreto123", model.RolVendedor)

	resp, err := e.auth.Login(context.Background(), dto.LoginRequest{
		Username: "jquispe",
		Password: "secreto123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "jquispe", resp.Usuario.Username)
	assert.Equal(t, model.RolVendedor, resp.Usuario.Rol)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	e := newAuthEnv()
	e.seedUsuario("jquispe", "secreto123", model.RolVendedor)

	_, err := e.auth.Login(context.Background(), dto.LoginRequest{
		Username: "jquispe",
		Password: "otracosa",
	})
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)
}

func TestLogin_UsuarioDesactivado(t *testing.T) {
	e := newAuthEnv()
	u := e.seedUsuario("jquispe", "secreto123", model.RolVendedor)
	require.NoError(t, e.auth.DesactivarUsuario(context.Background(), u.ID))

	_, err := e.auth.Login(context.Background(), dto.LoginRequest{
		Username: "jquispe",
		Password: "secreto123",
	})
	assert.ErrorIs(t, err, ErrCredencialesInvalidas)
}

func TestRefresh_EmiteTokensNuevos(t *testing.T) {
	e := newAuthEnv()
	e.seedUsuario("admin", "secreto123", model.RolAdministrador)

	login, err := e.auth.Login(context.Background(), dto.LoginRequest{
		Username: "admin",
		Password: "secreto123",
	})
	require.NoError(t, err)

	resp, err := e.auth.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "admin", resp.Usuario.Username)
}

func TestRefresh_TokenInvalido(t *testing.T) {
	e := newAuthEnv()
	_, err := e.auth.Refresh(context.Background(), "no-es-un-jwt")
	assert.Error(t, err)
}

func TestCrearUsuario_GeneraPasswordSiFalta(t *testing.T) {
	e := newAuthEnv()

	resp, err := e.auth.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "vendedor1",
		Nombre:   "Rosa Mamani",
		Email:    "rosa@example.com",
		Rol:      model.RolVendedor,
	})
	require.NoError(t, err)
	assert.Equal(t, "vendedor1", resp.Username)
	assert.True(t, resp.Activo)

	stored, err := e.usuarioRepo.FindByUsername(context.Background(), "vendedor1")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestCrearUsuario_UsernameEnUso(t *testing.T) {
	e := newAuthEnv()
	e.seedUsuario("vendedor1", "secreto123", model.RolVendedor)

	_, err := e.auth.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "vendedor1",
		Nombre:   "Otro Nombre",
		Email:    "otro@example.com",
		Rol:      model.RolVendedor,
		Password: "secreto456",
	})
	assert.ErrorIs(t, err, ErrUsernameEnUso)
}

func TestCrearUsuario_CargoInexistente(t *testing.T) {
	e := newAuthEnv()

	_, err := e.auth.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "vendedor2",
		Nombre:   "Luis Huamán",
		Email:    "luis@example.com",
		Rol:      model.RolVendedor,
		Password: "secreto123",
		CargoID:  "0c1d7f3a-9f3a-4a6e-9a9e-000000000000",
	})
	assert.Error(t, err)
}

func TestActualizarUsuario_CambiaRol(t *testing.T) {
	e := newAuthEnv()
	u := e.seedUsuario("jquispe", "secreto123", model.RolVendedor)

	rol := model.RolAdministrador
	resp, err := e.auth.ActualizarUsuario(context.Background(), u.ID, dto.ActualizarUsuarioRequest{
		Rol: &rol,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RolAdministrador, resp.Rol)

	stored, _ := e.usuarioRepo.FindByID(context.Background(), u.ID)
	assert.Equal(t, model.RolAdministrador, stored.Rol)
}

func TestReactivarUsuario(t *testing.T) {
	e := newAuthEnv()
	u := e.seedUsuario("jquispe", "secreto123", model.RolVendedor)

	require.NoError(t, e.auth.DesactivarUsuario(context.Background(), u.ID))
	require.NoError(t, e.auth.ReactivarUsuario(context.Background(), u.ID))

	_, err := e.auth.Login(context.Background(), dto.LoginRequest{
		Username: "jquispe",
		Password: "secreto123",
	})
	assert.NoError(t, err)
}
