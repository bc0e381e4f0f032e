package dto

import (
	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/pkg/validator"
)

const (
	MsgTurnoOpenMissing  = "Faltan campos requeridos: abejita, auto, aperturaCaja"
	MsgTurnoCloseMissing = "El cierre de caja es requerido"
)

type TurnoOpenRequest struct {
	SessionRef

	Abejita         string     `json:"abejita"`
	Auto            string     `json:"auto"`
	AperturaCaja    *float64   `json:"aperturaCaja"`
	Kilometraje     FlexString `json:"kilometraje"`
	DanosAuto       string     `json:"danosAuto"`
	FotoPantalla    string     `json:"fotoPantalla"`
	FotoExterior    string     `json:"fotoExterior"`
	HoraInicio      string     `json:"horaInicio"`
	UbicacionInicio *Location  `json:"ubicacionInicio"`
}

func (r *TurnoOpenRequest) ToModel() models.TurnoOpen {
	var apertura float64
	if r.AperturaCaja != nil {
		apertura = *r.AperturaCaja
	}
	return models.TurnoOpen{
		Abejita:         r.Abejita,
		Auto:            r.Auto,
		AperturaCaja:    apertura,
		Kilometraje:     r.Kilometraje.String(),
		DanosAuto:       r.DanosAuto,
		FotoPantalla:    r.FotoPantalla,
		FotoExterior:    r.FotoExterior,
		HoraInicio:      r.HoraInicio,
		UbicacionInicio: r.UbicacionInicio.ToModel(),
	}
}

type TurnoCloseRequest struct {
	SessionRef

	CierreCaja    *float64   `json:"cierreCaja"`
	QR            float64    `json:"qr"`
	Kilometraje   FlexString `json:"kilometraje"`
	DanosAuto     string     `json:"danosAuto"`
	FotoPantalla  string     `json:"fotoPantalla"`
	FotoExterior  string     `json:"fotoExterior"`
	HoraCierre    string     `json:"horaCierre"`
	UbicacionFin  *Location  `json:"ubicacionFin"`
	Observaciones string     `json:"observaciones"`
}

func (r *TurnoCloseRequest) ToModel() models.TurnoClose {
	var cierre float64
	if r.CierreCaja != nil {
		cierre = *r.CierreCaja
	}
	return models.TurnoClose{
		CierreCaja:    cierre,
		QR:            r.QR,
		Kilometraje:   r.Kilometraje.String(),
		DanosAuto:     r.DanosAuto,
		FotoPantalla:  r.FotoPantalla,
		FotoExterior:  r.FotoExterior,
		HoraCierre:    r.HoraCierre,
		UbicacionFin:  r.UbicacionFin.ToModel(),
		Observaciones: r.Observaciones,
	}
}

func ValidateTurnoOpen(v *validator.Validator, req *TurnoOpenRequest) {
	v.Check(req.Abejita != "", "abejita", "must be provided")
	v.Check(req.Auto != "", "auto", "must be provided")
	v.Check(req.AperturaCaja != nil, "aperturaCaja", "must be provided")
}

func ValidateTurnoClose(v *validator.Validator, req *TurnoCloseRequest) {
	// Zero is rejected like a missing value, a real closing always has cash.
	v.Check(req.CierreCaja != nil && *req.CierreCaja != 0, "cierreCaja", "must be provided")
}
