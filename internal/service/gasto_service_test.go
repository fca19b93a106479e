package service

import (
	"context"
	"testing"

	"github.com/vibesind/vibes-gestion/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gastoRequest(fecha string) dto.GuardarGastoRequest {
	return dto.GuardarGastoRequest{
		Fecha:       fecha,
		Categoria:   "alquiler",
		Descripcion: "Alquiler del local",
		Monto:       decimal.NewFromInt(450000),
		MetodoPago:  "transferencia",
	}
}

func TestCrearGasto(t *testing.T) {
	ctx := context.Background()
	svc := NewGastoService(newStubGastoRepo())

	resp, err := svc.Crear(ctx, uuid.New(), gastoRequest("2026-08-01"))
	require.NoError(t, err)
	assert.Equal(t, "GAS-000001", resp.NumeroGasto)
	assert.Equal(t, "2026-08-01", resp.Fecha)
	assert.True(t, resp.Monto.Equal(decimal.NewFromInt(450000)))

	// The sequential number keeps advancing.
	resp2, err := svc.Crear(ctx, uuid.New(), gastoRequest("2026-08-02"))
	require.NoError(t, err)
	assert.Equal(t, "GAS-000002", resp2.NumeroGasto)
}

func TestCrearGastoFechaInvalida(t *testing.T) {
	svc := NewGastoService(newStubGastoRepo())
	_, err := svc.Crear(context.Background(), uuid.New(), gastoRequest("01/08/2026"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fecha inválida")
}

func TestActualizarGastoNumeroInmutable(t *testing.T) {
	ctx := context.Background()
	svc := NewGastoService(newStubGastoRepo())

	resp, err := svc.Crear(ctx, uuid.New(), gastoRequest("2026-08-01"))
	require.NoError(t, err)
	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)

	req := gastoRequest("2026-08-05")
	req.Descripcion = "Alquiler + expensas"
	req.Monto = decimal.NewFromInt(480000)
	actualizado, err := svc.Actualizar(ctx, id, req)
	require.NoError(t, err)

	assert.Equal(t, resp.NumeroGasto, actualizado.NumeroGasto)
	assert.Equal(t, "Alquiler + expensas", actualizado.Descripcion)
	assert.Equal(t, "2026-08-05", actualizado.Fecha)
	assert.True(t, actualizado.Monto.Equal(decimal.NewFromInt(480000)))
}

func TestEliminarGasto(t *testing.T) {
	ctx := context.Background()
	repo := newStubGastoRepo()
	svc := NewGastoService(repo)

	resp, err := svc.Crear(ctx, uuid.New(), gastoRequest("2026-08-01"))
	require.NoError(t, err)
	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Eliminar(ctx, id))
	_, err = svc.ObtenerPorID(ctx, id)
	require.Error(t, err)

	err = svc.Eliminar(ctx, id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gasto no encontrado")
}
