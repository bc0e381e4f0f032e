package carrera

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/internal/domain/types"
	"github.com/beetracked/fleet-ops/internal/rowstore"
	"github.com/beetracked/fleet-ops/internal/service/events"
	"github.com/beetracked/fleet-ops/pkg/logger"
)

const driversSheet = "drivers-spreadsheet"

func newService(sheetID string) (*CarreraService, *rowstore.Memory) {
	store := rowstore.NewMemory()
	s := NewCarreraService(store, events.Nop{}, sheetID, logger.NewDiscard())
	s.now = func() time.Time {
		return time.Date(2026, 1, 15, 14, 30, 0, 0, time.UTC)
	}
	return s, store
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	s, store := newService(driversSheet)

	id, title, err := s.Register(ctx, models.CarreraCreate{
		Abejita:      "Patricia",
		Fecha:        "2026-01-15",
		Cliente:      "Hotel Norte",
		LugarRecojo:  "Aeropuerto",
		LugarDestino: "Centro",
		Distancia:    12.3,
		Precio:       45,
	})
	require.NoError(t, err)
	assert.Equal(t, "0", id)
	assert.Equal(t, "Patricia", title)

	rows, err := store.DataRows(ctx, driversSheet, title)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Aeropuerto", rows[0][6])
	assert.Equal(t, "45", rows[0][10])
	assert.Equal(t, "no", rows[0][14])
}

func TestRegisterPorHoraBlanksRoute(t *testing.T) {
	ctx := context.Background()
	s, store := newService(driversSheet)

	_, title, err := s.Register(ctx, models.CarreraCreate{
		Abejita:      "Patricia",
		Fecha:        "2026-01-15",
		Cliente:      "Hotel Norte",
		LugarRecojo:  "Aeropuerto",
		LugarDestino: "Centro",
		Distancia:    12.3,
		Precio:       80,
		PorHora:      true,
	})
	require.NoError(t, err)

	rows, err := store.DataRows(ctx, driversSheet, title)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0][6], "hourly rides have no pickup")
	assert.Empty(t, rows[0][7], "hourly rides have no destination")
	assert.Equal(t, "0", rows[0][9], "hourly rides have no distance")
	assert.Equal(t, "si", rows[0][14])
}

func TestByDriverDateFilter(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(driversSheet)

	for _, fecha := range []string{"2026-01-14", "2026-01-15", "2026-01-15"} {
		_, _, err := s.Register(ctx, models.CarreraCreate{
			Abejita: "Patricia",
			Fecha:   fecha,
			Cliente: "X",
			Precio:  10,
		})
		require.NoError(t, err)
	}

	all, err := s.ByDriver(ctx, "patricia", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := s.ByDriver(ctx, "patricia", "2026-01-15")
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	none, err := s.ByDriver(ctx, "desconocido", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNotConfigured(t *testing.T) {
	ctx := context.Background()
	s, _ := newService("")

	_, _, err := s.Register(ctx, models.CarreraCreate{Abejita: "x"})
	assert.ErrorIs(t, err, types.ErrRidesSheetNotConfigured)

	_, err = s.ByDriver(ctx, "x", "")
	assert.ErrorIs(t, err, types.ErrRidesSheetNotConfigured)
}
