package models

import "strconv"

// DeliveryHeaders is the header row written when a biker tab is created
// in the Carreras_bikers spreadsheet.
var DeliveryHeaders = []string{
	"DeliveryId",
	"Biker",
	"Fecha Registro",
	"Hora Registro",
	"Cliente",
	"Lugar Origen",
	"Hora Inicio",
	"Lugar Destino",
	"Hora Fin",
	"Distancia (km)",
	"Por Hora",
	"Notas",
	"Foto",
}

// Delivery is one row of a biker's tab, shaped for the API response.
type Delivery struct {
	ID          string  `json:"id"`
	Biker       string  `json:"biker"`
	Fecha       string  `json:"fecha"`
	Hora        string  `json:"hora"`
	Cliente     string  `json:"cliente"`
	LugarOrigen string  `json:"lugarOrigen"`
	HoraInicio  string  `json:"horaInicio"`
	LugarDest   string  `json:"lugarDestino"`
	HoraFin     string  `json:"horaFin"`
	Distancia   float64 `json:"distancia"`
	PorHora     bool    `json:"porHora"`
	Notas       string  `json:"notas"`
	Foto        string  `json:"foto"`
}

// DeliveryFromRow maps a raw sheet row to a Delivery. Short rows are
// padded with empty cells, unparseable distances become 0.
func DeliveryFromRow(row []string) Delivery {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	dist, _ := strconv.ParseFloat(cell(9), 64)
	return Delivery{
		ID:          cell(0),
		Biker:       cell(1),
		Fecha:       cell(2),
		Hora:        cell(3),
		Cliente:     cell(4),
		LugarOrigen: cell(5),
		HoraInicio:  cell(6),
		LugarDest:   cell(7),
		HoraFin:     cell(8),
		Distancia:   dist,
		PorHora:     cell(10) == "Sí",
		Notas:       cell(11),
		Foto:        cell(12),
	}
}

// DeliveryCreate carries the fields needed to register a delivery.
type DeliveryCreate struct {
	BikerName     string
	Cliente       string
	LugarOrigen   string
	LugarDestino  string
	Distancia     float64
	PorHora       bool
	Notas         string
	FechaRegistro string
	HoraRegistro  string
	HoraInicio    string
	HoraFin       string
	Foto          string
}

// Row serializes the delivery in sheet column order.
func (d DeliveryCreate) Row(id int) []string {
	porHora := "No"
	if d.PorHora {
		porHora = "Sí"
	}
	return []string{
		strconv.Itoa(id),
		d.BikerName,
		d.FechaRegistro,
		d.HoraRegistro,
		d.Cliente,
		d.LugarOrigen,
		d.HoraInicio,
		d.LugarDestino,
		d.HoraFin,
		strconv.FormatFloat(d.Distancia, 'f', -1, 64),
		porHora,
		d.Notas,
		d.Foto,
	}
}
