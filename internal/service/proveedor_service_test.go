package service

import (
	"context"
	"testing"

	"github.com/vibesind/vibes-gestion/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListarProveedoresFiltraPorNombre(t *testing.T) {
	ctx := context.Background()
	repo := newStubProveedorRepo()
	repo.agregar("Textil del Sur")
	repo.agregar("Avíos Norte")
	repo.agregar("Distribuidora Textil Oeste")
	svc := NewProveedorService(repo)

	todos, err := svc.Listar(ctx, "")
	require.NoError(t, err)
	assert.Len(t, todos, 3)

	filtrados, err := svc.Listar(ctx, "textil")
	require.NoError(t, err)
	require.Len(t, filtrados, 2)
	assert.Equal(t, "Distribuidora Textil Oeste", filtrados[0].Nombre)
	assert.Equal(t, "Textil del Sur", filtrados[1].Nombre)
}

func TestCrearYActualizarProveedor(t *testing.T) {
	ctx := context.Background()
	repo := newStubProveedorRepo()
	svc := NewProveedorService(repo)

	contacto := "Laura"
	resp, err := svc.Crear(ctx, dto.GuardarProveedorRequest{Nombre: "Textil del Sur", Contacto: &contacto})
	require.NoError(t, err)
	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)

	resp, err = svc.Actualizar(ctx, id, dto.GuardarProveedorRequest{Nombre: "Textil del Sur SRL"})
	require.NoError(t, err)
	assert.Equal(t, "Textil del Sur SRL", resp.Nombre)

	_, err = svc.Actualizar(ctx, uuid.New(), dto.GuardarProveedorRequest{Nombre: "Otro"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no encontrado")
}
