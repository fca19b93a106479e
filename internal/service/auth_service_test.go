package service

import (
	"context"
	"testing"

	"github.com/vibesind/vibes-gestion/internal/config"
	"github.com/vibesind/vibes-gestion/internal/dto"
	"github.com/vibesind/vibes-gestion/internal/model"
	"github.com/vibesind/vibes-gestion/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Activo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = false
	return nil
}

func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = true
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func authTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "secreto-de-test",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
}

func TestLoginYRefresh(t *testing.T) {
	ctx := context.Background()
	repo := newStubUsuarioRepo()
	svc := NewAuthService(repo, authTestConfig())

	_, err := svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "vendedora",
		Nombre:   "Lucía Fernández",
		Password: "claveSegura1",
		Rol:      "vendedor",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, dto.LoginRequest{Username: "vendedora", Password: "claveSegura1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "vendedor", resp.User.Rol)

	renovado, err := svc.Refresh(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)
	assert.Equal(t, resp.User.ID, renovado.User.ID)
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	ctx := context.Background()
	repo := newStubUsuarioRepo()
	svc := NewAuthService(repo, authTestConfig())

	_, err := svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "vendedora",
		Nombre:   "Lucía Fernández",
		Password: "claveSegura1",
		Rol:      "vendedor",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "vendedora", Password: "otraClave"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credenciales invalidas")

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "noexiste", Password: "claveSegura1"})
	require.Error(t, err)
}

func TestRefreshTokenInvalido(t *testing.T) {
	svc := NewAuthService(newStubUsuarioRepo(), authTestConfig())
	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	require.Error(t, err)
}

func TestRefreshUsuarioDesactivado(t *testing.T) {
	ctx := context.Background()
	repo := newStubUsuarioRepo()
	svc := NewAuthService(repo, authTestConfig())

	user, err := svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "vendedora",
		Nombre:   "Lucía Fernández",
		Password: "claveSegura1",
		Rol:      "vendedor",
	})
	require.NoError(t, err)
	resp, err := svc.Login(ctx, dto.LoginRequest{Username: "vendedora", Password: "claveSegura1"})
	require.NoError(t, err)

	id, err := uuid.Parse(user.ID)
	require.NoError(t, err)
	require.NoError(t, svc.DesactivarUsuario(ctx, id))

	_, err = svc.Refresh(ctx, resp.RefreshToken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inactivo")
}

func TestListarUsuarios(t *testing.T) {
	ctx := context.Background()
	repo := newStubUsuarioRepo()
	svc := NewAuthService(repo, authTestConfig())

	activo, err := svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "activa", Nombre: "Lucía Fernández", Password: "claveSegura1", Rol: "vendedor",
	})
	require.NoError(t, err)
	baja, err := svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "baja", Nombre: "Pedro Ríos", Password: "claveSegura1", Rol: "admin",
	})
	require.NoError(t, err)

	id, err := uuid.Parse(baja.ID)
	require.NoError(t, err)
	require.NoError(t, svc.DesactivarUsuario(ctx, id))

	activos, err := svc.ListarUsuarios(ctx, false)
	require.NoError(t, err)
	require.Len(t, activos, 1)
	assert.Equal(t, activo.ID, activos[0].ID)

	todos, err := svc.ListarUsuarios(ctx, true)
	require.NoError(t, err)
	assert.Len(t, todos, 2)

	require.NoError(t, svc.ReactivarUsuario(ctx, id))
	activos, err = svc.ListarUsuarios(ctx, false)
	require.NoError(t, err)
	assert.Len(t, activos, 2)
}

func TestActualizarUsuarioCambiaPassword(t *testing.T) {
	ctx := context.Background()
	repo := newStubUsuarioRepo()
	svc := NewAuthService(repo, authTestConfig())

	user, err := svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "vendedora", Nombre: "Lucía Fernández", Password: "claveSegura1", Rol: "vendedor",
	})
	require.NoError(t, err)
	id, err := uuid.Parse(user.ID)
	require.NoError(t, err)

	_, err = svc.ActualizarUsuario(ctx, id, dto.ActualizarUsuarioRequest{Password: "claveNueva22", Rol: "admin"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "vendedora", Password: "claveSegura1"})
	require.Error(t, err)
	resp, err := svc.Login(ctx, dto.LoginRequest{Username: "vendedora", Password: "claveNueva22"})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.User.Rol)
}
