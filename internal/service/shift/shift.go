package shift

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/internal/domain/types"
	"github.com/beetracked/fleet-ops/internal/rowstore"
	"github.com/beetracked/fleet-ops/internal/service/events"
	"github.com/beetracked/fleet-ops/pkg/logger"
	wrap "github.com/beetracked/fleet-ops/pkg/logger/wrapper"
	"github.com/beetracked/fleet-ops/pkg/metrics"
)

const (
	serviceName = "fleet-ops"
	fleetName   = "beezero"

	// Sheet is the tab holding BeeZero shifts.
	Sheet = "BeeZero"
)

// ShiftService opens and closes BeeZero driver shifts. Shift ids are
// dense and sequential: id = number of rows, so the first data row gets
// id 1. The mutex keeps two concurrent opens in this process from
// claiming the same id; concurrent writers in other processes can still
// collide, which the operators accept for a sheet this size.
type ShiftService struct {
	store  Store
	photos PhotoUploader
	events events.Publisher
	log    logger.Logger

	mu  sync.Mutex
	now func() time.Time
}

func NewShiftService(store Store, photos PhotoUploader, pub events.Publisher, log logger.Logger) *ShiftService {
	return &ShiftService{
		store:  store,
		photos: photos,
		events: pub,
		log:    log,
		now:    time.Now,
	}
}

// Open registers the start of a shift and returns the stored row.
// Photo uploads are best effort: a failed upload leaves the URL cell
// empty and the shift still opens.
func (s *ShiftService) Open(ctx context.Context, req models.TurnoOpen) (models.Turno, error) {
	ctx = wrap.WithAction(ctx, "shift_open")

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.store.Rows(ctx, Sheet)
	if err != nil {
		return models.Turno{}, wrap.Error(ctx, err)
	}
	// row 1 is the header, so the next id equals the row count
	id := strconv.Itoa(len(rows))

	now := s.now().UTC()
	nowISO := now.Format(time.RFC3339)
	fecha := now.Format("2006-01-02")

	var fotoTablero, fotoExterior string
	if s.photos.Configured() {
		if req.FotoPantalla != "" {
			fotoTablero, err = s.photos.UploadTurnoPhoto(ctx, req.FotoPantalla, id, types.PhotoTablero, types.MomentoInicio)
			if err != nil {
				s.log.Error(ctx, "failed to upload dashboard photo", err, "turno_id", id)
				fotoTablero = ""
			}
		}
		if req.FotoExterior != "" {
			fotoExterior, err = s.photos.UploadTurnoPhoto(ctx, req.FotoExterior, id, types.PhotoDanos, types.MomentoInicio)
			if err != nil {
				s.log.Error(ctx, "failed to upload exterior photo", err, "turno_id", id)
				fotoExterior = ""
			}
		}
	}

	danos := req.DanosAuto
	if danos == "" {
		danos = "ninguno"
	}

	turno := models.Turno{
		ID:                 id,
		Abejita:            req.Abejita,
		Auto:               req.Auto,
		KilometrajeInicio:  req.Kilometraje,
		AperturaCaja:       formatMonto(req.AperturaCaja),
		DanosInicio:        danos,
		FotoTableroInicio:  fotoTablero,
		FotoExteriorInicio: fotoExterior,
		HoraInicio:         req.HoraInicio,
		FechaInicio:        fecha,
		LatInicio:          formatCoord(req.UbicacionInicio, func(l models.LatLng) float64 { return l.Lat }),
		LngInicio:          formatCoord(req.UbicacionInicio, func(l models.LatLng) float64 { return l.Lng }),
		Estado:             string(types.ShiftOpen),
		CreadoEn:           nowISO,
		ActualizadoEn:      nowISO,
	}

	if err := s.store.Append(ctx, Sheet, turno.Row()); err != nil {
		return models.Turno{}, wrap.Error(ctx, err)
	}

	metrics.ShiftsTotal.WithLabelValues(serviceName, fleetName, "open").Inc()
	s.publish(ctx, types.EventShiftStarted, req.Abejita, map[string]any{
		"id":   id,
		"auto": req.Auto,
	})

	s.log.Info(ctx, "shift opened", "turno_id", id, "abejita", req.Abejita)
	return turno, nil
}

// Close finishes an open shift. The cash difference is the sum of the
// opening amount, QR payments and the closing amount.
func (s *ShiftService) Close(ctx context.Context, id string, req models.TurnoClose) (models.Turno, error) {
	ctx = wrap.WithAction(ctx, "shift_close")

	rec, err := s.store.FindByID(ctx, Sheet, id)
	if err != nil {
		return models.Turno{}, wrap.Error(ctx, err)
	}
	if rec == nil {
		return models.Turno{}, types.ErrShiftNotFound
	}

	existing := models.TurnoFromRecord(rec)
	if existing.Estado == string(types.ShiftClosed) {
		return models.Turno{}, types.ErrShiftAlreadyClosed
	}

	now := s.now().UTC()
	nowISO := now.Format(time.RFC3339)

	apertura, _ := strconv.ParseFloat(existing.AperturaCaja, 64)
	diferencia := apertura + req.QR + req.CierreCaja

	var fotoTablero, fotoExterior string
	if s.photos.Configured() {
		if req.FotoPantalla != "" {
			fotoTablero, err = s.photos.UploadTurnoPhoto(ctx, req.FotoPantalla, id, types.PhotoTablero, types.MomentoCierre)
			if err != nil {
				s.log.Error(ctx, "failed to upload dashboard photo", err, "turno_id", id)
				fotoTablero = ""
			}
		}
		if req.FotoExterior != "" {
			fotoExterior, err = s.photos.UploadTurnoPhoto(ctx, req.FotoExterior, id, types.PhotoDanos, types.MomentoCierre)
			if err != nil {
				s.log.Error(ctx, "failed to upload exterior photo", err, "turno_id", id)
				fotoExterior = ""
			}
		}
	}

	danos := req.DanosAuto
	if danos == "" {
		danos = "ninguno"
	}

	closed := existing
	closed.KilometrajeCierre = req.Kilometraje
	closed.CierreCaja = formatMonto(req.CierreCaja)
	closed.QR = formatMonto(req.QR)
	closed.Diferencia = strconv.FormatFloat(diferencia, 'f', 2, 64)
	closed.DanosCierre = danos
	closed.FotoTableroCierre = fotoTablero
	closed.FotoExteriorCierre = fotoExterior
	closed.HoraCierre = req.HoraCierre
	closed.FechaCierre = now.Format("2006-01-02")
	closed.LatCierre = formatCoord(req.UbicacionFin, func(l models.LatLng) float64 { return l.Lat })
	closed.LngCierre = formatCoord(req.UbicacionFin, func(l models.LatLng) float64 { return l.Lng })
	closed.Observaciones = req.Observaciones
	closed.Estado = string(types.ShiftClosed)
	closed.ActualizadoEn = nowISO

	if err := s.store.UpdateByID(ctx, Sheet, id, closed.Row()); err != nil {
		return models.Turno{}, wrap.Error(ctx, err)
	}

	metrics.ShiftsTotal.WithLabelValues(serviceName, fleetName, "close").Inc()
	s.publish(ctx, types.EventShiftClosed, existing.Abejita, map[string]any{
		"id":         id,
		"diferencia": closed.Diferencia,
	})

	s.log.Info(ctx, "shift closed", "turno_id", id, "diferencia", closed.Diferencia)
	return closed, nil
}

// List returns every shift row keyed by the sheet headers.
func (s *ShiftService) List(ctx context.Context) ([]rowstore.Record, error) {
	ctx = wrap.WithAction(ctx, "shift_list")

	rows, err := s.store.Rows(ctx, Sheet)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	if len(rows) == 0 {
		return []rowstore.Record{}, nil
	}

	headers := rows[0]
	records := make([]rowstore.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, rowstore.ZipRecord(headers, row))
	}
	return records, nil
}

// Get returns one shift row by id.
func (s *ShiftService) Get(ctx context.Context, id string) (rowstore.Record, error) {
	ctx = wrap.WithAction(ctx, "shift_get")

	rec, err := s.store.FindByID(ctx, Sheet, id)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	if rec == nil {
		return nil, types.ErrShiftNotFound
	}
	return rec, nil
}

func (s *ShiftService) publish(ctx context.Context, eventType types.EventType, actor string, payload map[string]any) {
	if err := s.events.Publish(ctx, events.New(eventType, fleetName, actor, payload)); err != nil {
		s.log.Error(ctx, "failed to publish fleet event", err)
	}
}

func formatMonto(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatCoord(l *models.LatLng, pick func(models.LatLng) float64) string {
	if l == nil {
		return ""
	}
	return strconv.FormatFloat(pick(*l), 'f', -1, 64)
}
