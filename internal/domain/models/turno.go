package models

// TurnoHeaders is the column layout of the BeeZero shift sheet,
// columns A through AA. Row values are written in exactly this order.
var TurnoHeaders = []string{
	"ID",
	"Abejita",
	"Auto (Placa)",
	"Kilometraje Inicio",
	"Kilometraje Cierre",
	"Apertura Caja (Bs)",
	"Cierre Caja (Bs)",
	"QR (Bs)",
	"Diferencia (Bs)",
	"Daños Auto Inicio",
	"Daños Auto Cierre",
	"Foto Tablero Inicio",
	"Foto Exterior Inicio",
	"Foto Tablero Cierre",
	"Foto Exterior Cierre",
	"Hora Inicio",
	"Hora Cierre",
	"Fecha Inicio",
	"Fecha Cierre",
	"Ubicación Inicio (Lat)",
	"Ubicación Inicio (Lng)",
	"Ubicación Cierre (Lat)",
	"Ubicación Cierre (Lng)",
	"Observaciones",
	"Estado",
	"Timestamp Creación",
	"Timestamp Actualización",
}

// Turno is one BeeZero shift row. Every field mirrors a sheet cell, so
// everything is kept as the string the cell holds.
type Turno struct {
	ID                 string
	Abejita            string
	Auto               string
	KilometrajeInicio  string
	KilometrajeCierre  string
	AperturaCaja       string
	CierreCaja         string
	QR                 string
	Diferencia         string
	DanosInicio        string
	DanosCierre        string
	FotoTableroInicio  string
	FotoExteriorInicio string
	FotoTableroCierre  string
	FotoExteriorCierre string
	HoraInicio         string
	HoraCierre         string
	FechaInicio        string
	FechaCierre        string
	LatInicio          string
	LngInicio          string
	LatCierre          string
	LngCierre          string
	Observaciones      string
	Estado             string
	CreadoEn           string
	ActualizadoEn      string
}

// Row serializes the shift in sheet column order.
func (t Turno) Row() []string {
	return []string{
		t.ID,
		t.Abejita,
		t.Auto,
		t.KilometrajeInicio,
		t.KilometrajeCierre,
		t.AperturaCaja,
		t.CierreCaja,
		t.QR,
		t.Diferencia,
		t.DanosInicio,
		t.DanosCierre,
		t.FotoTableroInicio,
		t.FotoExteriorInicio,
		t.FotoTableroCierre,
		t.FotoExteriorCierre,
		t.HoraInicio,
		t.HoraCierre,
		t.FechaInicio,
		t.FechaCierre,
		t.LatInicio,
		t.LngInicio,
		t.LatCierre,
		t.LngCierre,
		t.Observaciones,
		t.Estado,
		t.CreadoEn,
		t.ActualizadoEn,
	}
}

// TurnoOpen carries the fields needed to open a BeeZero shift.
type TurnoOpen struct {
	Abejita         string
	Auto            string
	AperturaCaja    float64
	Kilometraje     string
	DanosAuto       string
	FotoPantalla    string // data URL
	FotoExterior    string // data URL
	HoraInicio      string
	UbicacionInicio *LatLng
}

// TurnoClose carries the fields needed to close a BeeZero shift.
type TurnoClose struct {
	CierreCaja    float64
	QR            float64
	Kilometraje   string
	DanosAuto     string
	FotoPantalla  string // data URL
	FotoExterior  string // data URL
	HoraCierre    string
	UbicacionFin  *LatLng
	Observaciones string
}

// TurnoFromRecord maps a header-keyed record back into a Turno.
// Missing columns come back as empty strings.
func TurnoFromRecord(rec map[string]string) Turno {
	return Turno{
		ID:                 rec["ID"],
		Abejita:            rec["Abejita"],
		Auto:               rec["Auto (Placa)"],
		KilometrajeInicio:  rec["Kilometraje Inicio"],
		KilometrajeCierre:  rec["Kilometraje Cierre"],
		AperturaCaja:       rec["Apertura Caja (Bs)"],
		CierreCaja:         rec["Cierre Caja (Bs)"],
		QR:                 rec["QR (Bs)"],
		Diferencia:         rec["Diferencia (Bs)"],
		DanosInicio:        rec["Daños Auto Inicio"],
		DanosCierre:        rec["Daños Auto Cierre"],
		FotoTableroInicio:  rec["Foto Tablero Inicio"],
		FotoExteriorInicio: rec["Foto Exterior Inicio"],
		FotoTableroCierre:  rec["Foto Tablero Cierre"],
		FotoExteriorCierre: rec["Foto Exterior Cierre"],
		HoraInicio:         rec["Hora Inicio"],
		HoraCierre:         rec["Hora Cierre"],
		FechaInicio:        rec["Fecha Inicio"],
		FechaCierre:        rec["Fecha Cierre"],
		LatInicio:          rec["Ubicación Inicio (Lat)"],
		LngInicio:          rec["Ubicación Inicio (Lng)"],
		LatCierre:          rec["Ubicación Cierre (Lat)"],
		LngCierre:          rec["Ubicación Cierre (Lng)"],
		Observaciones:      rec["Observaciones"],
		Estado:             rec["Estado"],
		CreadoEn:           rec["Timestamp Creación"],
		ActualizadoEn:      rec["Timestamp Actualización"],
	}
}
