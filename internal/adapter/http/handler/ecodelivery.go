package handler

import (
	"context"
	"net/http"

	"github.com/beetracked/fleet-ops/internal/adapter/http/handler/dto"
	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/internal/domain/types"
	"github.com/beetracked/fleet-ops/pkg/logger"
	wrap "github.com/beetracked/fleet-ops/pkg/logger/wrapper"
	"github.com/beetracked/fleet-ops/pkg/validator"
)

type EcoService interface {
	OpenTurno(ctx context.Context, req models.EcoTurnoOpen) (string, error)
	CloseTurno(ctx context.Context, req models.EcoTurnoClose) error
	UploadTurnoPhoto(ctx context.Context, dataURL, username string, momento types.Momento) (string, error)
	UploadDeliveryPhoto(ctx context.Context, dataURL, username string) (string, error)
	Deliveries(ctx context.Context, bikerName string) ([]models.Delivery, error)
	RegisterDelivery(ctx context.Context, req models.DeliveryCreate) (string, string, error)
}

type Ecodelivery struct {
	eco EcoService
	l   logger.Logger
}

func NewEcodelivery(service EcoService, l logger.Logger) *Ecodelivery {
	return &Ecodelivery{
		eco: service,
		l:   l,
	}
}

// UploadPhoto godoc
// @Summary      Upload a biker shift photo
// @Tags         Ecodelivery
// @Accept       json
// @Produce      json
// @Param        request  body  dto.UploadPhotoRequest  true  "photo data URL"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      503  {object}  map[string]any
// @Router       /api/ecodelivery/upload-photo [post]
func (h *Ecodelivery) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "eco_upload_photo")

	req := &dto.UploadPhotoRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateUploadPhoto(v, req)
	if !v.Valid() {
		badRequestResponse(w, dto.MsgUploadPhotoMissing)
		return
	}
	if !dto.ValidMomento(req.Momento) {
		badRequestResponse(w, dto.MsgMomentoInvalid)
		return
	}

	url, err := h.eco.UploadTurnoPhoto(ctx, req.DataURL, req.Username, types.Momento(req.Momento))
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to upload shift photo", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"success": true,
		"url":     url,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// UploadDeliveryPhoto godoc
// @Summary      Upload a delivery photo
// @Tags         Ecodelivery
// @Accept       json
// @Produce      json
// @Param        request  body  dto.UploadDeliveryPhotoRequest  true  "photo data URL"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      503  {object}  map[string]any
// @Router       /api/ecodelivery/upload-delivery-photo [post]
func (h *Ecodelivery) UploadDeliveryPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "eco_upload_delivery_photo")

	req := &dto.UploadDeliveryPhotoRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateUploadDeliveryPhoto(v, req)
	if !v.Valid() {
		badRequestResponse(w, dto.MsgUploadDeliveryPhotoMissing)
		return
	}

	url, err := h.eco.UploadDeliveryPhoto(ctx, req.DataURL, req.Username)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to upload delivery photo", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"success": true,
		"url":     url,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// TurnoIniciar godoc
// @Summary      Open a biker shift
// @Tags         Ecodelivery
// @Accept       json
// @Produce      json
// @Param        request  body  dto.EcoTurnoOpenRequest  true  "shift opening data"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Router       /api/ecodelivery/turnos/iniciar [post]
func (h *Ecodelivery) TurnoIniciar(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "eco_turno_iniciar")

	req := &dto.EcoTurnoOpenRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateEcoTurnoOpen(v, req)
	if !v.Valid() {
		badRequestResponse(w, dto.MsgEcoTurnoOpenMissing)
		return
	}

	turnoID, err := h.eco.OpenTurno(ctx, req.ToModel())
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to open biker shift", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"success": true,
		"turnoId": turnoID,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// TurnoCerrar godoc
// @Summary      Close a biker shift
// @Tags         Ecodelivery
// @Accept       json
// @Produce      json
// @Param        request  body  dto.EcoTurnoCloseRequest  true  "shift closing data"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/ecodelivery/turnos/cerrar [post]
func (h *Ecodelivery) TurnoCerrar(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "eco_turno_cerrar")

	req := &dto.EcoTurnoCloseRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateEcoTurnoClose(v, req)
	if !v.Valid() {
		badRequestResponse(w, dto.MsgEcoTurnoCloseMissing)
		return
	}

	if err := h.eco.CloseTurno(ctx, req.ToModel()); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to close biker shift", err, "turno_id", req.TurnoID.String())
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"success": true,
		"message": "Turno cerrado registrado",
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Deliveries godoc
// @Summary      List a biker's deliveries
// @Tags         Ecodelivery
// @Produce      json
// @Param        bikerName  path  string  true  "biker name"
// @Success      200  {object}  map[string]any
// @Failure      503  {object}  map[string]any
// @Router       /api/ecodelivery/deliveries/{bikerName} [get]
func (h *Ecodelivery) Deliveries(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "eco_deliveries")

	bikerName := r.PathValue("bikerName")

	deliveries, err := h.eco.Deliveries(ctx, bikerName)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to list deliveries", err, "biker", bikerName)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"success":    true,
		"deliveries": deliveries,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// RegisterDelivery godoc
// @Summary      Register a delivery
// @Tags         Ecodelivery
// @Accept       json
// @Produce      json
// @Param        request  body  dto.DeliveryRegisterRequest  true  "delivery data"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      503  {object}  map[string]any
// @Router       /api/ecodelivery/deliveries/registrar [post]
func (h *Ecodelivery) RegisterDelivery(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "eco_delivery_registrar")

	req := &dto.DeliveryRegisterRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateDeliveryRegister(v, req)
	if !v.Valid() {
		badRequestResponse(w, dto.MsgDeliveryRegisterMissing)
		return
	}

	deliveryID, sheetTitle, err := h.eco.RegisterDelivery(ctx, req.ToModel())
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to register delivery", err, "biker", req.BikerName)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"success":    true,
		"deliveryId": deliveryID,
		"sheetTitle": sheetTitle,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
