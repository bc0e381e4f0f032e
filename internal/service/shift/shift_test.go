package shift

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

type stubPhotos struct {
	configured bool
	fail       bool
	uploaded   []string
}

func (p *stubPhotos) Configured() bool { return p.configured }

func (p *stubPhotos) UploadTurnoPhoto(_ context.Context, _, turnoID string, tipo types.PhotoKind, momento types.Momento) (string, error) {
	if p.fail {
		return "", assert.AnError
	}
	url := "https://bucket/" + string(tipo) + "/" + turnoID + "_" + string(momento)
	p.uploaded = append(p.uploaded, url)
	return url, nil
}

func newService(photos *stubPhotos) (*ShiftService, *rowstore.Memory) {
	store := rowstore.NewMemory()
	store.Seed(Sheet, [][]string{models.TurnoHeaders})
	s := NewShiftService(store, photos, events.Nop{}, logger.NewDiscard())
	s.now = func() time.Time {
		return time.Date(2026, 1, 15, 14, 30, 0, 0, time.UTC)
	}
	return s, store
}

func TestOpenAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(&stubPhotos{})

	first, err := s.Open(ctx, models.TurnoOpen{Abejita: "Patricia", Auto: "ABC-123", AperturaCaja: 100})
	require.NoError(t, err)
	assert.Equal(t, "1", first.ID)

	second, err := s.Open(ctx, models.TurnoOpen{Abejita: "Carla", Auto: "XYZ-789", AperturaCaja: 50})
	require.NoError(t, err)
	assert.Equal(t, "2", second.ID)
}

func TestOpenRow(t *testing.T) {
	ctx := context.Background()
	s, store := newService(&stubPhotos{})

	turno, err := s.Open(ctx, models.TurnoOpen{
		Abejita:         "Patricia",
		Auto:            "ABC-123",
		AperturaCaja:    100.5,
		Kilometraje:     "45000",
		HoraInicio:      "08:00",
		UbicacionInicio: &models.LatLng{Lat: -17.78, Lng: -63.18},
	})
	require.NoError(t, err)

	assert.Equal(t, "ninguno", turno.DanosInicio)
	assert.Equal(t, "100.5", turno.AperturaCaja)
	assert.Equal(t, "-17.78", turno.LatInicio)
	assert.Equal(t, string(types.ShiftOpen), turno.Estado)
	assert.Equal(t, "2026-01-15", turno.FechaInicio)

	rec, err := store.FindByID(ctx, Sheet, "1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Patricia", rec["Abejita"])
	assert.Equal(t, "INICIADO", rec["Estado"])
}

func TestCloseComputesDiferencia(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(&stubPhotos{})

	_, err := s.Open(ctx, models.TurnoOpen{Abejita: "Patricia", Auto: "ABC-123", AperturaCaja: 100})
	require.NoError(t, err)

	closed, err := s.Close(ctx, "1", models.TurnoClose{CierreCaja: 150, QR: 20, HoraCierre: "18:00"})
	require.NoError(t, err)

	// diferencia is the sum of the three amounts, not a delta
	assert.Equal(t, "270.00", closed.Diferencia)
	assert.Equal(t, string(types.ShiftClosed), closed.Estado)
	assert.Equal(t, "Patricia", closed.Abejita, "opening fields survive the close")
}

func TestCloseMissingShift(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(&stubPhotos{})

	_, err := s.Close(ctx, "99", models.TurnoClose{CierreCaja: 10})
	assert.ErrorIs(t, err, types.ErrShiftNotFound)
}

func TestCloseTwice(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(&stubPhotos{})

	_, err := s.Open(ctx, models.TurnoOpen{Abejita: "Patricia", Auto: "ABC-123", AperturaCaja: 100})
	require.NoError(t, err)

	_, err = s.Close(ctx, "1", models.TurnoClose{CierreCaja: 150})
	require.NoError(t, err)

	_, err = s.Close(ctx, "1", models.TurnoClose{CierreCaja: 150})
	assert.ErrorIs(t, err, types.ErrShiftAlreadyClosed)
}

func TestOpenSurvivesPhotoFailure(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(&stubPhotos{configured: true, fail: true})

	turno, err := s.Open(ctx, models.TurnoOpen{
		Abejita:      "Patricia",
		Auto:         "ABC-123",
		AperturaCaja: 100,
		FotoPantalla: "data:image/png;base64,eA==",
	})
	require.NoError(t, err, "photo failures must not block the shift")
	assert.Empty(t, turno.FotoTableroInicio)
}

func TestOpenUploadsPhotos(t *testing.T) {
	ctx := context.Background()
	photos := &stubPhotos{configured: true}
	s, _ := newService(photos)

	turno, err := s.Open(ctx, models.TurnoOpen{
		Abejita:      "Patricia",
		Auto:         "ABC-123",
		AperturaCaja: 100,
		FotoPantalla: "data:image/png;base64,eA==",
		FotoExterior: "data:image/png;base64,eQ==",
	})
	require.NoError(t, err)
	assert.Contains(t, turno.FotoTableroInicio, "tablero")
	assert.Contains(t, turno.FotoExteriorInicio, "danos")
	assert.Len(t, photos.uploaded, 2)
}

func TestListAndGet(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(&stubPhotos{})

	_, err := s.Open(ctx, models.TurnoOpen{Abejita: "Patricia", Auto: "ABC-123", AperturaCaja: 100})
	require.NoError(t, err)

	records, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Patricia", records[0]["Abejita"])

	rec, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "ABC-123", rec["Auto (Placa)"])

	_, err = s.Get(ctx, "42")
	assert.ErrorIs(t, err, types.ErrShiftNotFound)
}
