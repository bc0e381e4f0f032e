package dto

import (
	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/internal/domain/types"
	"github.com/beetracked/fleet-ops/pkg/validator"
)

const (
	MsgUploadPhotoMissing         = "Faltan dataUrl, username o momento (inicio/cierre)"
	MsgMomentoInvalid             = `momento debe ser "inicio" o "cierre"`
	MsgUploadDeliveryPhotoMissing = "Faltan dataUrl o username"
	MsgEcoTurnoOpenMissing        = "Faltan usuario, fechaInicio, horaInicio o timestampInicio"
	MsgEcoTurnoCloseMissing       = "Faltan turnoId, fechaCierre, horaCierre o timestampCierre"
	MsgDeliveryRegisterMissing    = "Faltan bikerName, cliente, lugarOrigen, lugarDestino o distancia"
)

type UploadPhotoRequest struct {
	SessionRef

	DataURL  string `json:"dataUrl"`
	Username string `json:"username"`
	Momento  string `json:"momento"`
}

type UploadDeliveryPhotoRequest struct {
	SessionRef

	DataURL  string `json:"dataUrl"`
	Username string `json:"username"`
}

type EcoTurnoOpenRequest struct {
	SessionRef

	Usuario         string     `json:"usuario"`
	FechaInicio     string     `json:"fechaInicio"`
	HoraInicio      string     `json:"horaInicio"`
	LatInicio       *float64   `json:"latInicio"`
	LngInicio       *float64   `json:"lngInicio"`
	TimestampInicio FlexString `json:"timestampInicio"`
	FotoInicio      string     `json:"fotoInicio"`
}

func (r *EcoTurnoOpenRequest) ToModel() models.EcoTurnoOpen {
	return models.EcoTurnoOpen{
		Usuario:         r.Usuario,
		FechaInicio:     r.FechaInicio,
		HoraInicio:      r.HoraInicio,
		LatInicio:       r.LatInicio,
		LngInicio:       r.LngInicio,
		TimestampInicio: r.TimestampInicio.String(),
		FotoInicio:      r.FotoInicio,
	}
}

type EcoTurnoCloseRequest struct {
	SessionRef

	TurnoID         FlexString `json:"turnoId"`
	FechaCierre     string     `json:"fechaCierre"`
	HoraCierre      string     `json:"horaCierre"`
	LatCierre       *float64   `json:"latCierre"`
	LngCierre       *float64   `json:"lngCierre"`
	TimestampCierre FlexString `json:"timestampCierre"`
	FotoCierre      string     `json:"fotoCierre"`
}

func (r *EcoTurnoCloseRequest) ToModel() models.EcoTurnoClose {
	return models.EcoTurnoClose{
		TurnoID:         r.TurnoID.String(),
		FechaCierre:     r.FechaCierre,
		HoraCierre:      r.HoraCierre,
		LatCierre:       r.LatCierre,
		LngCierre:       r.LngCierre,
		TimestampCierre: r.TimestampCierre.String(),
		FotoCierre:      r.FotoCierre,
	}
}

type DeliveryRegisterRequest struct {
	SessionRef

	BikerName    string     `json:"bikerName"`
	Cliente      string     `json:"cliente"`
	LugarOrigen  string     `json:"lugarOrigen"`
	LugarDestino string     `json:"lugarDestino"`
	Distancia    *float64   `json:"distancia"`
	PorHora      bool       `json:"porHora"`
	Notas        string     `json:"notas"`
	Fecha        string     `json:"fecha"`
	Hora         string     `json:"hora"`
	HoraInicio   string     `json:"horaInicio"`
	HoraFin      string     `json:"horaFin"`
	Foto         string     `json:"foto"`
	Timestamp    FlexString `json:"timestamp"`
}

func (r *DeliveryRegisterRequest) ToModel() models.DeliveryCreate {
	var distancia float64
	if r.Distancia != nil {
		distancia = *r.Distancia
	}
	return models.DeliveryCreate{
		BikerName:     r.BikerName,
		Cliente:       r.Cliente,
		LugarOrigen:   r.LugarOrigen,
		LugarDestino:  r.LugarDestino,
		Distancia:     distancia,
		PorHora:       r.PorHora,
		Notas:         r.Notas,
		FechaRegistro: r.Fecha,
		HoraRegistro:  r.Hora,
		HoraInicio:    r.HoraInicio,
		HoraFin:       r.HoraFin,
		Foto:          r.Foto,
	}
}

func ValidateUploadPhoto(v *validator.Validator, req *UploadPhotoRequest) {
	v.Check(req.DataURL != "", "dataUrl", "must be provided")
	v.Check(req.Username != "", "username", "must be provided")
	v.Check(req.Momento != "", "momento", "must be provided")
}

// ValidMomento reports whether momento names a known shift moment.
func ValidMomento(momento string) bool {
	return momento == string(types.MomentoInicio) || momento == string(types.MomentoCierre)
}

func ValidateUploadDeliveryPhoto(v *validator.Validator, req *UploadDeliveryPhotoRequest) {
	v.Check(req.DataURL != "", "dataUrl", "must be provided")
	v.Check(req.Username != "", "username", "must be provided")
}

func ValidateEcoTurnoOpen(v *validator.Validator, req *EcoTurnoOpenRequest) {
	v.Check(req.Usuario != "", "usuario", "must be provided")
	v.Check(req.FechaInicio != "", "fechaInicio", "must be provided")
	v.Check(req.HoraInicio != "", "horaInicio", "must be provided")
	v.Check(req.TimestampInicio != "", "timestampInicio", "must be provided")
}

func ValidateEcoTurnoClose(v *validator.Validator, req *EcoTurnoCloseRequest) {
	v.Check(req.TurnoID != "", "turnoId", "must be provided")
	v.Check(req.FechaCierre != "", "fechaCierre", "must be provided")
	v.Check(req.HoraCierre != "", "horaCierre", "must be provided")
	v.Check(req.TimestampCierre != "", "timestampCierre", "must be provided")
}

func ValidateDeliveryRegister(v *validator.Validator, req *DeliveryRegisterRequest) {
	v.Check(req.BikerName != "", "bikerName", "must be provided")
	v.Check(req.Cliente != "", "cliente", "must be provided")
	v.Check(req.LugarOrigen != "", "lugarOrigen", "must be provided")
	v.Check(req.LugarDestino != "", "lugarDestino", "must be provided")
	v.Check(req.Distancia != nil, "distancia", "must be provided")
}
