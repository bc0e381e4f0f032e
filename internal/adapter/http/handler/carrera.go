package handler

import (
	"context"
	"net/http"

	"github.com/beetracked/fleet-ops/internal/adapter/http/handler/dto"
	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/pkg/logger"
	wrap "github.com/beetracked/fleet-ops/pkg/logger/wrapper"
	"github.com/beetracked/fleet-ops/pkg/validator"
)

type CarreraService interface {
	Register(ctx context.Context, req models.CarreraCreate) (string, string, error)
	ByDriver(ctx context.Context, driverName, fecha string) ([]models.Carrera, error)
}

type Carrera struct {
	carreras CarreraService
	l        logger.Logger
}

func NewCarrera(service CarreraService, l logger.Logger) *Carrera {
	return &Carrera{
		carreras: service,
		l:        l,
	}
}

// Register godoc
// @Summary      Register a BeeZero ride
// @Tags         Carreras
// @Accept       json
// @Produce      json
// @Param        request  body  dto.CarreraRegisterRequest  true  "ride data"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      503  {object}  map[string]any
// @Router       /api/beezero/carreras/registrar [post]
func (h *Carrera) Register(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "carrera_registrar")

	req := &dto.CarreraRegisterRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateCarreraRegister(v, req)
	if !v.Valid() {
		badRequestResponse(w, dto.MsgCarreraRegisterMissing)
		return
	}

	carreraID, sheetTitle, err := h.carreras.Register(ctx, req.ToModel())
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to register ride", err, "abejita", req.Abejita)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"success":    true,
		"carreraId":  carreraID,
		"sheetTitle": sheetTitle,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// ByDriver godoc
// @Summary      List a driver's rides
// @Tags         Carreras
// @Produce      json
// @Param        driverName  path   string  true   "driver name"
// @Param        fecha       query  string  false  "filter by date (YYYY-MM-DD)"
// @Success      200  {object}  map[string]any
// @Failure      503  {object}  map[string]any
// @Router       /api/beezero/carreras/{driverName} [get]
func (h *Carrera) ByDriver(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "carrera_list")

	driverName := r.PathValue("driverName")
	fecha := r.URL.Query().Get("fecha")

	carreras, err := h.carreras.ByDriver(ctx, driverName, fecha)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to list rides", err, "driver", driverName)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"success":  true,
		"carreras": carreras,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Placeholder godoc
// @Summary      Carreras placeholder
// @Tags         Carreras
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/carreras [get]
func (h *Carrera) Placeholder(w http.ResponseWriter, r *http.Request) {
	response := envelope{
		"success": true,
		"message": "Carreras endpoint - Coming soon",
		"data":    []any{},
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		internalErrorResponse(w, "failed to write JSON response")
	}
}
