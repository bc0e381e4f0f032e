package models

import "strconv"

// CarreraHeaders is the header row written when a driver tab is created
// in the Carreras_drivers spreadsheet.
var CarreraHeaders = []string{
	"CarreraId",
	"Abejita",
	"Fecha",
	"Cliente",
	"Hora Inicio",
	"Hora Fin",
	"Lugar Recojo",
	"Lugar Destino",
	"Tiempo",
	"Distancia (km)",
	"Precio (Bs)",
	"Observaciones",
	"Foto",
	"Timestamp Creación",
	"Por hora",
}

// Carrera is one row of a driver's tab, shaped for the API response.
type Carrera struct {
	CarreraID     string  `json:"carreraId"`
	Abejita       string  `json:"abejita"`
	Fecha         string  `json:"fecha"`
	Cliente       string  `json:"cliente"`
	HoraInicio    string  `json:"horaInicio"`
	HoraFin       string  `json:"horaFin"`
	LugarRecojo   string  `json:"lugarRecojo"`
	LugarDestino  string  `json:"lugarDestino"`
	Tiempo        string  `json:"tiempo"`
	Distancia     float64 `json:"distancia"`
	Precio        float64 `json:"precio"`
	Observaciones string  `json:"observaciones"`
	Foto          string  `json:"foto"`
	CreadoEn      string  `json:"timestampCreacion"`
	PorHora       bool    `json:"porHora"`
}

// CarreraFromRow maps a raw sheet row to a Carrera.
func CarreraFromRow(row []string) Carrera {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	dist, _ := strconv.ParseFloat(cell(9), 64)
	precio, _ := strconv.ParseFloat(cell(10), 64)
	return Carrera{
		CarreraID:     cell(0),
		Abejita:       cell(1),
		Fecha:         cell(2),
		Cliente:       cell(3),
		HoraInicio:    cell(4),
		HoraFin:       cell(5),
		LugarRecojo:   cell(6),
		LugarDestino:  cell(7),
		Tiempo:        cell(8),
		Distancia:     dist,
		Precio:        precio,
		Observaciones: cell(11),
		Foto:          cell(12),
		CreadoEn:      cell(13),
		PorHora:       cell(14) == "si",
	}
}

// CarreraCreate carries the fields needed to register a ride.
type CarreraCreate struct {
	Abejita       string
	Fecha         string
	Cliente       string
	HoraInicio    string
	HoraFin       string
	LugarRecojo   string
	LugarDestino  string
	Tiempo        string
	Distancia     float64
	Precio        float64
	Observaciones string
	Foto          string
	PorHora       bool
}

// Row serializes the ride in sheet column order. Hourly rides blank out
// pickup, destination and distance.
func (c CarreraCreate) Row(id int, creadoEn string) []string {
	recojo, destino := c.LugarRecojo, c.LugarDestino
	distancia := strconv.FormatFloat(c.Distancia, 'f', -1, 64)
	porHora := "no"
	if c.PorHora {
		recojo, destino = "", ""
		distancia = "0"
		porHora = "si"
	}
	return []string{
		strconv.Itoa(id),
		c.Abejita,
		c.Fecha,
		c.Cliente,
		c.HoraInicio,
		c.HoraFin,
		recojo,
		destino,
		c.Tiempo,
		distancia,
		strconv.FormatFloat(c.Precio, 'f', -1, 64),
		c.Observaciones,
		c.Foto,
		creadoEn,
		porHora,
	}
}
