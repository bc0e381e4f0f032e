package dto

import (
	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/pkg/validator"
)

const MsgCarreraRegisterMissing = "Faltan abejita, fecha, cliente, lugarRecojo, lugarDestino o precio"

type CarreraRegisterRequest struct {
	SessionRef

	Abejita       string   `json:"abejita"`
	Fecha         string   `json:"fecha"`
	Cliente       string   `json:"cliente"`
	HoraInicio    string   `json:"horaInicio"`
	HoraFin       string   `json:"horaFin"`
	LugarRecojo   string   `json:"lugarRecojo"`
	LugarDestino  string   `json:"lugarDestino"`
	Tiempo        string   `json:"tiempo"`
	Distancia     *float64 `json:"distancia"`
	Precio        *float64 `json:"precio"`
	Observaciones string   `json:"observaciones"`
	Foto          string   `json:"foto"`
	PorHora       bool     `json:"porHora"`
}

func (r *CarreraRegisterRequest) ToModel() models.CarreraCreate {
	var distancia, precio float64
	if r.Distancia != nil {
		distancia = *r.Distancia
	}
	if r.Precio != nil {
		precio = *r.Precio
	}
	return models.CarreraCreate{
		Abejita:       r.Abejita,
		Fecha:         r.Fecha,
		Cliente:       r.Cliente,
		HoraInicio:    r.HoraInicio,
		HoraFin:       r.HoraFin,
		LugarRecojo:   r.LugarRecojo,
		LugarDestino:  r.LugarDestino,
		Tiempo:        r.Tiempo,
		Distancia:     distancia,
		Precio:        precio,
		Observaciones: r.Observaciones,
		Foto:          r.Foto,
		PorHora:       r.PorHora,
	}
}

func ValidateCarreraRegister(v *validator.Validator, req *CarreraRegisterRequest) {
	v.Check(req.Abejita != "", "abejita", "must be provided")
	v.Check(req.Fecha != "", "fecha", "must be provided")
	v.Check(req.Cliente != "", "cliente", "must be provided")
	v.Check(req.LugarRecojo != "", "lugarRecojo", "must be provided")
	v.Check(req.LugarDestino != "", "lugarDestino", "must be provided")
	v.Check(req.Precio != nil, "precio", "must be provided")
}
