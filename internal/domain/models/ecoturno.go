package models

// EcoTurnoHeaders is the column layout of the Ecodelivery shift sheet.
var EcoTurnoHeaders = []string{
	"TurnoId",
	"Usuario",
	"Fecha Inicio",
	"Hora Inicio",
	"Lat Inicio",
	"Lng Inicio",
	"Timestamp Inicio",
	"Foto Inicio",
	"Fecha Cierre",
	"Hora Cierre",
	"Lat Cierre",
	"Lng Cierre",
	"Timestamp Cierre",
	"Foto Cierre",
	"Estado",
	"Timestamp Creación",
	"Timestamp Actualización",
}

// EcoTurno is one Ecodelivery shift row.
type EcoTurno struct {
	TurnoID         string
	Usuario         string
	FechaInicio     string
	HoraInicio      string
	LatInicio       string
	LngInicio       string
	TimestampInicio string
	FotoInicio      string
	FechaCierre     string
	HoraCierre      string
	LatCierre       string
	LngCierre       string
	TimestampCierre string
	FotoCierre      string
	Estado          string
	CreadoEn        string
	ActualizadoEn   string
}

func (t EcoTurno) Row() []string {
	return []string{
		t.TurnoID,
		t.Usuario,
		t.FechaInicio,
		t.HoraInicio,
		t.LatInicio,
		t.LngInicio,
		t.TimestampInicio,
		t.FotoInicio,
		t.FechaCierre,
		t.HoraCierre,
		t.LatCierre,
		t.LngCierre,
		t.TimestampCierre,
		t.FotoCierre,
		t.Estado,
		t.CreadoEn,
		t.ActualizadoEn,
	}
}

// EcoTurnoOpen carries the fields needed to open an Ecodelivery shift.
type EcoTurnoOpen struct {
	Usuario         string
	FechaInicio     string
	HoraInicio      string
	LatInicio       *float64
	LngInicio       *float64
	TimestampInicio string
	FotoInicio      string
}

// EcoTurnoClose carries the fields needed to close an Ecodelivery shift.
type EcoTurnoClose struct {
	TurnoID         string
	FechaCierre     string
	HoraCierre      string
	LatCierre       *float64
	LngCierre       *float64
	TimestampCierre string
	FotoCierre      string
}

func EcoTurnoFromRecord(rec map[string]string) EcoTurno {
	id := rec["TurnoId"]
	if id == "" {
		// some older sheets carry the header in lowercase
		id = rec["turnoId"]
	}
	return EcoTurno{
		TurnoID:         id,
		Usuario:         rec["Usuario"],
		FechaInicio:     rec["Fecha Inicio"],
		HoraInicio:      rec["Hora Inicio"],
		LatInicio:       rec["Lat Inicio"],
		LngInicio:       rec["Lng Inicio"],
		TimestampInicio: rec["Timestamp Inicio"],
		FotoInicio:      rec["Foto Inicio"],
		FechaCierre:     rec["Fecha Cierre"],
		HoraCierre:      rec["Hora Cierre"],
		LatCierre:       rec["Lat Cierre"],
		LngCierre:       rec["Lng Cierre"],
		TimestampCierre: rec["Timestamp Cierre"],
		FotoCierre:      rec["Foto Cierre"],
		Estado:          rec["Estado"],
		CreadoEn:        rec["Timestamp Creación"],
		ActualizadoEn:   rec["Timestamp Actualización"],
	}
}
