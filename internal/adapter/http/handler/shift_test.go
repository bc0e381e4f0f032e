package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetracked/fleet-ops/internal/adapter/http/handler/dto"
	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/internal/domain/types"
	"github.com/beetracked/fleet-ops/internal/rowstore"
	"github.com/beetracked/fleet-ops/pkg/logger"
)

type stubShifts struct {
	closeErr error
}

func (s *stubShifts) Open(ctx context.Context, req models.TurnoOpen) (models.Turno, error) {
	return models.Turno{
		ID:         "3",
		Abejita:    req.Abejita,
		Auto:       req.Auto,
		HoraInicio: req.HoraInicio,
		Estado:     string(types.ShiftOpen),
	}, nil
}

func (s *stubShifts) Close(ctx context.Context, id string, req models.TurnoClose) (models.Turno, error) {
	if s.closeErr != nil {
		return models.Turno{}, s.closeErr
	}
	return models.Turno{
		ID:         id,
		Diferencia: "175.50",
		HoraCierre: "18:00",
		Estado:     string(types.ShiftClosed),
	}, nil
}

func (s *stubShifts) List(ctx context.Context) ([]rowstore.Record, error) {
	return []rowstore.Record{{"ID": "1", "Abejita": "Maya"}}, nil
}

func (s *stubShifts) Get(ctx context.Context, id string) (rowstore.Record, error) {
	if id != "1" {
		return nil, types.ErrShiftNotFound
	}
	return rowstore.Record{"ID": "1", "Abejita": "Maya"}, nil
}

func TestIniciar(t *testing.T) {
	h := NewShift(&stubShifts{}, logger.NewDiscard())

	rr := postJSON(t, h.Iniciar, "/api/turnos/iniciar",
		`{"abejita":"Maya","auto":"ABC-123","aperturaCaja":100.5,"horaInicio":"08:00"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Turno iniciado exitosamente", body["message"])

	data := body["data"].(map[string]any)
	assert.Equal(t, float64(3), data["id"])
	assert.Equal(t, "Maya", data["abejita"])
	assert.Equal(t, 100.5, data["aperturaCaja"])
	assert.Equal(t, string(types.ShiftOpen), data["estado"])
}

func TestIniciarMissingFields(t *testing.T) {
	h := NewShift(&stubShifts{}, logger.NewDiscard())

	rr := postJSON(t, h.Iniciar, "/api/turnos/iniciar", `{"abejita":"Maya"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, dto.MsgTurnoOpenMissing, decodeBody(t, rr)["error"])
}

func TestCerrar(t *testing.T) {
	h := NewShift(&stubShifts{}, logger.NewDiscard())
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/turnos/{id}/cerrar", h.Cerrar)

	req := httptest.NewRequest(http.MethodPost, "/api/turnos/3/cerrar",
		strings.NewReader(`{"cierreCaja":250.75,"qr":25.25}`))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	assert.Equal(t, "Turno cerrado exitosamente", body["message"])

	data := body["data"].(map[string]any)
	assert.Equal(t, float64(3), data["id"])
	assert.Equal(t, 250.75, data["cierreCaja"])
	assert.Equal(t, 25.25, data["qr"])
	assert.Equal(t, "175.50", data["diferencia"])
	assert.Equal(t, string(types.ShiftClosed), data["estado"])
}

func TestCerrarMissingCierre(t *testing.T) {
	h := NewShift(&stubShifts{}, logger.NewDiscard())

	// Zero counts as missing, same as an absent field.
	for _, body := range []string{`{"qr":25}`, `{"cierreCaja":0,"qr":25}`} {
		rr := postJSON(t, h.Cerrar, "/api/turnos/3/cerrar", body)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, dto.MsgTurnoCloseMissing, decodeBody(t, rr)["error"])
	}
}

func TestCerrarErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"not found", types.ErrShiftNotFound, http.StatusNotFound},
		{"already closed", types.ErrShiftAlreadyClosed, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewShift(&stubShifts{closeErr: tt.err}, logger.NewDiscard())

			rr := postJSON(t, h.Cerrar, "/api/turnos/99/cerrar", `{"cierreCaja":10}`)
			require.Equal(t, tt.wantCode, rr.Code)

			body := decodeBody(t, rr)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.err.Error(), body["error"])
		})
	}
}

func TestGetNotFound(t *testing.T) {
	h := NewShift(&stubShifts{}, logger.NewDiscard())
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/turnos/{id}", h.Get)

	req := httptest.NewRequest(http.MethodGet, "/api/turnos/99", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, types.ErrShiftNotFound.Error(), decodeBody(t, rr)["error"])
}

func TestNotFoundRoute(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rr := httptest.NewRecorder()
	NotFound(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Route not found", decodeBody(t, rr)["error"])
}

func TestHealthCheck(t *testing.T) {
	h := NewHealth(logger.NewDiscard())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	h.HealthCheck(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "bee-tracked API is running", body["message"])
}
