package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/beetracked/fleet-ops/internal/adapter/http/handler/dto"
	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/internal/rowstore"
	"github.com/beetracked/fleet-ops/pkg/logger"
	wrap "github.com/beetracked/fleet-ops/pkg/logger/wrapper"
	"github.com/beetracked/fleet-ops/pkg/validator"
)

type ShiftService interface {
	Open(ctx context.Context, req models.TurnoOpen) (models.Turno, error)
	Close(ctx context.Context, id string, req models.TurnoClose) (models.Turno, error)
	List(ctx context.Context) ([]rowstore.Record, error)
	Get(ctx context.Context, id string) (rowstore.Record, error)
}

type Shift struct {
	shifts ShiftService
	l      logger.Logger
}

func NewShift(service ShiftService, l logger.Logger) *Shift {
	return &Shift{
		shifts: service,
		l:      l,
	}
}

// Iniciar godoc
// @Summary      Open a BeeZero shift
// @Tags         Turnos
// @Accept       json
// @Produce      json
// @Param        request  body  dto.TurnoOpenRequest  true  "shift opening data"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Router       /api/turnos/iniciar [post]
func (h *Shift) Iniciar(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "turno_iniciar")

	req := &dto.TurnoOpenRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateTurnoOpen(v, req)
	if !v.Valid() {
		badRequestResponse(w, dto.MsgTurnoOpenMissing)
		return
	}

	open := req.ToModel()
	turno, err := h.shifts.Open(ctx, open)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to open shift", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	id, _ := strconv.Atoi(turno.ID)
	response := envelope{
		"success": true,
		"message": "Turno iniciado exitosamente",
		"data": envelope{
			"id":           id,
			"abejita":      turno.Abejita,
			"auto":         turno.Auto,
			"aperturaCaja": open.AperturaCaja,
			"horaInicio":   turno.HoraInicio,
			"estado":       turno.Estado,
		},
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Cerrar godoc
// @Summary      Close a BeeZero shift
// @Tags         Turnos
// @Accept       json
// @Produce      json
// @Param        id       path  string                 true  "shift id"
// @Param        request  body  dto.TurnoCloseRequest  true  "shift closing data"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/turnos/{id}/cerrar [post]
func (h *Shift) Cerrar(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "turno_cerrar")

	id := r.PathValue("id")

	req := &dto.TurnoCloseRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateTurnoClose(v, req)
	if !v.Valid() {
		badRequestResponse(w, dto.MsgTurnoCloseMissing)
		return
	}

	closeReq := req.ToModel()
	turno, err := h.shifts.Close(ctx, id, closeReq)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to close shift", err, "turno_id", id)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	idNum, _ := strconv.Atoi(turno.ID)
	response := envelope{
		"success": true,
		"message": "Turno cerrado exitosamente",
		"data": envelope{
			"id":         idNum,
			"cierreCaja": closeReq.CierreCaja,
			"qr":         closeReq.QR,
			"diferencia": turno.Diferencia,
			"horaCierre": turno.HoraCierre,
			"estado":     turno.Estado,
		},
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// List godoc
// @Summary      List BeeZero shifts
// @Tags         Turnos
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/turnos [get]
func (h *Shift) List(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "turno_list")

	records, err := h.shifts.List(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to list shifts", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"success": true,
		"data":    records,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Get godoc
// @Summary      Get one BeeZero shift
// @Tags         Turnos
// @Produce      json
// @Param        id  path  string  true  "shift id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/turnos/{id} [get]
func (h *Shift) Get(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "turno_get")

	id := r.PathValue("id")

	record, err := h.shifts.Get(ctx, id)
	if err != nil {
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"success": true,
		"data":    record,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
