package service_test

import (
	"context"
	"testing"

	"github.com/Spartan-876/Acuamont-System-sub000/internal/config"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/dto"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/model"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (service.AuthService, *stubUsuarioRepo, *config.Config) {
	t.Helper()
	usuarios := newStubUsuarioRepo()
	cfg := &config.Config{
		JWTSecret:          "clave-de-prueba",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("agua2026"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, usuarios.Create(context.Background(), &model.Usuario{
		ID: uuid.New(), Username: "admin", Nombre: "Administrador",
		PasswordHash: string(hash), Rol: "administrador", Activo: true,
	}))

	return service.NewAuthService(usuarios, cfg), usuarios, cfg
}

func TestLogin(t *testing.T) {
	svc, _, cfg := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "agua2026"})
	require.NoError(t, err)

	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, cfg.JWTExpirationHours*3600, resp.ExpiresIn)
	assert.Equal(t, "admin", resp.User.Username)
	assert.Equal(t, "administrador", resp.User.Rol)
	assert.NotEmpty(t, resp.RefreshToken)

	// El token firmado lleva los claims que consume el middleware
	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "admin", claims["username"])
	assert.Equal(t, "administrador", claims["rol"])
}

func TestLoginPasswordIncorrecta(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "otra"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credenciales")
}

func TestLoginUsuarioInexistente(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "agua2026"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credenciales")
}

func TestLoginUsuarioInactivo(t *testing.T) {
	svc, usuarios, _ := newAuthFixture(t)
	for _, u := range usuarios.usuarios {
		u.Activo = false
	}

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "agua2026"})
	require.Error(t, err)
}

func TestRefresh(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "agua2026"})
	require.NoError(t, err)

	renovado, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, login.User.ID, renovado.User.ID)
	assert.NotEmpty(t, renovado.AccessToken)
}

func TestRefreshTokenInvalido(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	require.Error(t, err)
}

func TestRefreshUsuarioDesactivado(t *testing.T) {
	svc, usuarios, _ := newAuthFixture(t)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "agua2026"})
	require.NoError(t, err)

	for _, u := range usuarios.usuarios {
		u.Activo = false
	}

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	require.Error(t, err)
}

func TestCrearUsuario(t *testing.T) {
	svc, usuarios, _ := newAuthFixture(t)

	resp, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "vendedor1", Nombre: "Vendedor Uno",
		Password: "secreto123", Rol: "vendedor",
	})
	require.NoError(t, err)
	assert.Equal(t, "vendedor1", resp.Username)
	assert.True(t, resp.Activo)

	// La contraseña queda hasheada, nunca en claro
	guardado, err := usuarios.FindByUsername(context.Background(), "vendedor1")
	require.NoError(t, err)
	assert.NotEqual(t, "secreto123", guardado.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(guardado.PasswordHash), []byte("secreto123")))

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "vendedor1", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "vendedor", login.User.Rol)
}

func TestActualizarUsuarioCambiaPassword(t *testing.T) {
	svc, usuarios, _ := newAuthFixture(t)
	var adminID uuid.UUID
	for id := range usuarios.usuarios {
		adminID = id
	}

	_, err := svc.ActualizarUsuario(context.Background(), adminID, dto.ActualizarUsuarioRequest{
		Password: "nueva-clave-9",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "agua2026"})
	require.Error(t, err, "la clave anterior deja de servir")
	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "nueva-clave-9"})
	require.NoError(t, err)
}

func TestDesactivarYReactivarUsuario(t *testing.T) {
	svc, usuarios, _ := newAuthFixture(t)
	var adminID uuid.UUID
	for id := range usuarios.usuarios {
		adminID = id
	}

	require.NoError(t, svc.DesactivarUsuario(context.Background(), adminID))
	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "agua2026"})
	require.Error(t, err)

	require.NoError(t, svc.ReactivarUsuario(context.Background(), adminID))
	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "agua2026"})
	require.NoError(t, err)
}
