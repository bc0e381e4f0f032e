package ecodelivery

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

const bikersSheet = "bikers-spreadsheet"

type stubPhotos struct {
	configured bool
}

func (p *stubPhotos) Configured() bool { return p.configured }

func (p *stubPhotos) UploadEcoTurnoPhoto(_ context.Context, _, username string, momento types.Momento) (string, error) {
	return "https://bucket/turnos/" + username + "_" + string(momento), nil
}

func (p *stubPhotos) UploadEcoDeliveryPhoto(_ context.Context, _, username string) (string, error) {
	return "https://bucket/deliveries/" + username, nil
}

func newService(bikersSheetID string) (*EcoService, *rowstore.Memory) {
	store := rowstore.NewMemory()
	store.Seed(Sheet, [][]string{models.EcoTurnoHeaders})
	s := NewEcoService(store, store, &stubPhotos{configured: true}, events.Nop{}, bikersSheetID, logger.NewDiscard())
	s.now = func() time.Time {
		return time.Date(2026, 1, 15, 14, 30, 0, 0, time.UTC)
	}
	return s, store
}

func TestOpenTurnoZeroBasedIDs(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(bikersSheet)

	lat, lng := -17.78, -63.18
	id, err := s.OpenTurno(ctx, models.EcoTurnoOpen{
		Usuario:         " ana ",
		FechaInicio:     "2026-01-15",
		HoraInicio:      "08:00",
		LatInicio:       &lat,
		LngInicio:       &lng,
		TimestampInicio: "1768485600000",
	})
	require.NoError(t, err)
	assert.Equal(t, "0", id)

	id, err = s.OpenTurno(ctx, models.EcoTurnoOpen{Usuario: "luis", FechaInicio: "2026-01-15", HoraInicio: "09:00", TimestampInicio: "1768489200000"})
	require.NoError(t, err)
	assert.Equal(t, "1", id)
}

func TestCloseTurno(t *testing.T) {
	ctx := context.Background()
	s, store := newService(bikersSheet)

	_, err := s.OpenTurno(ctx, models.EcoTurnoOpen{Usuario: "ana", FechaInicio: "2026-01-15", HoraInicio: "08:00", TimestampInicio: "1"})
	require.NoError(t, err)

	err = s.CloseTurno(ctx, models.EcoTurnoClose{
		TurnoID:         "0",
		FechaCierre:     "2026-01-15",
		HoraCierre:      "17:00",
		TimestampCierre: "2",
	})
	require.NoError(t, err)

	rec, err := store.FindByID(ctx, Sheet, "0")
	require.NoError(t, err)
	assert.Equal(t, "CERRADO", rec["Estado"])
	assert.Equal(t, "ana", rec["Usuario"], "opening fields survive the close")
	assert.Equal(t, "17:00", rec["Hora Cierre"])
}

func TestCloseTurnoMissing(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(bikersSheet)

	err := s.CloseTurno(ctx, models.EcoTurnoClose{TurnoID: "7", FechaCierre: "x", HoraCierre: "y", TimestampCierre: "z"})
	assert.ErrorIs(t, err, types.ErrShiftNotFound)
}

func TestUploadPhotosRequireS3(t *testing.T) {
	ctx := context.Background()
	store := rowstore.NewMemory()
	s := NewEcoService(store, store, &stubPhotos{configured: false}, events.Nop{}, bikersSheet, logger.NewDiscard())

	_, err := s.UploadTurnoPhoto(ctx, "data:...", "ana", types.MomentoInicio)
	assert.ErrorIs(t, err, types.ErrS3NotConfigured)

	_, err = s.UploadDeliveryPhoto(ctx, "data:...", "ana")
	assert.ErrorIs(t, err, types.ErrS3NotConfigured)
}

func TestRegisterDeliveryCreatesTab(t *testing.T) {
	ctx := context.Background()
	s, store := newService(bikersSheet)

	id, title, err := s.RegisterDelivery(ctx, models.DeliveryCreate{
		BikerName:    "Juan/Perez",
		Cliente:      "Cafe Central",
		LugarOrigen:  "Plaza",
		LugarDestino: "Equipetrol",
		Distancia:    3.5,
		PorHora:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, "0", id)
	assert.Equal(t, "Juan Perez", title, "tab title is sanitized")

	rows, err := store.DataRows(ctx, bikersSheet, title)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sí", rows[0][10])
	assert.Equal(t, "2026-01-15", rows[0][2], "fecha defaults to today")

	// second delivery on the same tab gets the next id
	id, _, err = s.RegisterDelivery(ctx, models.DeliveryCreate{
		BikerName:    "Juan/Perez",
		Cliente:      "Otra",
		LugarOrigen:  "A",
		LugarDestino: "B",
		Distancia:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, "1", id)
}

func TestDeliveries(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(bikersSheet)

	_, _, err := s.RegisterDelivery(ctx, models.DeliveryCreate{
		BikerName:    "ana",
		Cliente:      "Cafe",
		LugarOrigen:  "Plaza",
		LugarDestino: "Norte",
		Distancia:    2.4,
	})
	require.NoError(t, err)

	// tab lookup ignores case and padding
	deliveries, err := s.Deliveries(ctx, "  ANA ")
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	assert.Equal(t, "Cafe", deliveries[0].Cliente)
	assert.Equal(t, 2.4, deliveries[0].Distancia)
	assert.False(t, deliveries[0].PorHora)

	// unknown biker means no deliveries, not an error
	deliveries, err = s.Deliveries(ctx, "nadie")
	require.NoError(t, err)
	assert.Empty(t, deliveries)
}

func TestBikersSheetNotConfigured(t *testing.T) {
	ctx := context.Background()
	s, _ := newService("")

	_, err := s.Deliveries(ctx, "ana")
	assert.ErrorIs(t, err, types.ErrBikersSheetNotConfigured)

	_, _, err = s.RegisterDelivery(ctx, models.DeliveryCreate{BikerName: "ana"})
	assert.ErrorIs(t, err, types.ErrBikersSheetNotConfigured)
}
