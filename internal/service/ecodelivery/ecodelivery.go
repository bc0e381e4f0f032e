package ecodelivery

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/internal/domain/types"
	"github.com/beetracked/fleet-ops/internal/service/events"
	"github.com/beetracked/fleet-ops/pkg/logger"
	wrap "github.com/beetracked/fleet-ops/pkg/logger/wrapper"
	"github.com/beetracked/fleet-ops/pkg/metrics"
)

const (
	serviceName = "fleet-ops"
	fleetName   = "ecodelivery"

	// Sheet is the tab holding Ecodelivery shifts.
	Sheet = "Ecodelivery"
)

// EcoService covers the Ecodelivery fleet: biker shifts in the default
// spreadsheet and per-biker delivery tabs in the Carreras_bikers
// spreadsheet.
type EcoService struct {
	store        Store
	spreadsheets SpreadsheetStore
	photos       PhotoUploader
	events       events.Publisher
	log          logger.Logger

	// bikersSheetID is the Carreras_bikers spreadsheet. Empty means the
	// delivery endpoints are unavailable.
	bikersSheetID string

	mu  sync.Mutex
	now func() time.Time
}

func NewEcoService(store Store, spreadsheets SpreadsheetStore, photos PhotoUploader, pub events.Publisher, bikersSheetID string, log logger.Logger) *EcoService {
	return &EcoService{
		store:         store,
		spreadsheets:  spreadsheets,
		photos:        photos,
		events:        pub,
		bikersSheetID: bikersSheetID,
		log:           log,
		now:           time.Now,
	}
}

// OpenTurno registers the start of a biker shift. Ids are dense and
// zero-based: id = number of data rows.
func (s *EcoService) OpenTurno(ctx context.Context, req models.EcoTurnoOpen) (string, error) {
	ctx = wrap.WithAction(ctx, "eco_shift_open")

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.store.Rows(ctx, Sheet)
	if err != nil {
		return "", wrap.Error(ctx, err)
	}
	id := 0
	if len(rows) > 0 {
		id = len(rows) - 1
	}

	nowISO := s.now().UTC().Format(time.RFC3339)
	turno := models.EcoTurno{
		TurnoID:         strconv.Itoa(id),
		Usuario:         strings.TrimSpace(req.Usuario),
		FechaInicio:     req.FechaInicio,
		HoraInicio:      req.HoraInicio,
		LatInicio:       formatCoord(req.LatInicio),
		LngInicio:       formatCoord(req.LngInicio),
		TimestampInicio: req.TimestampInicio,
		FotoInicio:      req.FotoInicio,
		Estado:          string(types.ShiftOpen),
		CreadoEn:        nowISO,
		ActualizadoEn:   nowISO,
	}

	if err := s.store.Append(ctx, Sheet, turno.Row()); err != nil {
		return "", wrap.Error(ctx, err)
	}

	metrics.ShiftsTotal.WithLabelValues(serviceName, fleetName, "open").Inc()
	s.publish(ctx, types.EventShiftStarted, turno.Usuario, map[string]any{"turnoId": turno.TurnoID})

	s.log.Info(ctx, "eco shift opened", "turno_id", turno.TurnoID, "usuario", turno.Usuario)
	return turno.TurnoID, nil
}

// CloseTurno fills in the closing half of a shift row.
func (s *EcoService) CloseTurno(ctx context.Context, req models.EcoTurnoClose) error {
	ctx = wrap.WithAction(ctx, "eco_shift_close")

	rec, err := s.store.FindByID(ctx, Sheet, req.TurnoID)
	if err != nil {
		return wrap.Error(ctx, err)
	}
	if rec == nil {
		return types.ErrShiftNotFound
	}

	existing := models.EcoTurnoFromRecord(rec)
	if existing.TurnoID == "" {
		existing.TurnoID = req.TurnoID
	}

	closed := existing
	closed.FechaCierre = req.FechaCierre
	closed.HoraCierre = req.HoraCierre
	closed.LatCierre = formatCoord(req.LatCierre)
	closed.LngCierre = formatCoord(req.LngCierre)
	closed.TimestampCierre = req.TimestampCierre
	closed.FotoCierre = req.FotoCierre
	closed.Estado = string(types.ShiftClosed)
	closed.ActualizadoEn = s.now().UTC().Format(time.RFC3339)

	if err := s.store.UpdateByID(ctx, Sheet, req.TurnoID, closed.Row()); err != nil {
		return wrap.Error(ctx, err)
	}

	metrics.ShiftsTotal.WithLabelValues(serviceName, fleetName, "close").Inc()
	s.publish(ctx, types.EventShiftClosed, existing.Usuario, map[string]any{"turnoId": req.TurnoID})

	s.log.Info(ctx, "eco shift closed", "turno_id", req.TurnoID)
	return nil
}

// UploadTurnoPhoto stores a shift photo. Requires S3 to be configured.
func (s *EcoService) UploadTurnoPhoto(ctx context.Context, dataURL, username string, momento types.Momento) (string, error) {
	ctx = wrap.WithAction(ctx, "eco_shift_photo")

	if !s.photos.Configured() {
		return "", types.ErrS3NotConfigured
	}
	return s.photos.UploadEcoTurnoPhoto(ctx, dataURL, strings.TrimSpace(username), momento)
}

// UploadDeliveryPhoto stores a delivery photo. Requires S3 to be
// configured.
func (s *EcoService) UploadDeliveryPhoto(ctx context.Context, dataURL, username string) (string, error) {
	ctx = wrap.WithAction(ctx, "eco_delivery_photo")

	if !s.photos.Configured() {
		return "", types.ErrS3NotConfigured
	}
	return s.photos.UploadEcoDeliveryPhoto(ctx, dataURL, strings.TrimSpace(username))
}

// Deliveries returns every delivery in the biker's tab. A biker without
// a tab has no deliveries yet, which is not an error.
func (s *EcoService) Deliveries(ctx context.Context, bikerName string) ([]models.Delivery, error) {
	ctx = wrap.WithAction(ctx, "eco_deliveries_list")

	if s.bikersSheetID == "" {
		return nil, types.ErrBikersSheetNotConfigured
	}

	titles, err := s.spreadsheets.SheetTitles(ctx, s.bikersSheetID)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	want := strings.ToLower(strings.TrimSpace(bikerName))
	found := ""
	for _, t := range titles {
		if strings.ToLower(t) == want {
			found = t
			break
		}
	}
	if found == "" {
		return []models.Delivery{}, nil
	}

	rows, err := s.spreadsheets.DataRows(ctx, s.bikersSheetID, found)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	deliveries := make([]models.Delivery, 0, len(rows))
	for _, row := range rows {
		deliveries = append(deliveries, models.DeliveryFromRow(row))
	}
	return deliveries, nil
}

// RegisterDelivery appends a delivery to the biker's tab, creating the
// tab on first use. Ids are dense and zero-based per tab.
func (s *EcoService) RegisterDelivery(ctx context.Context, req models.DeliveryCreate) (string, string, error) {
	ctx = wrap.WithAction(ctx, "eco_delivery_register")

	if s.bikersSheetID == "" {
		return "", "", types.ErrBikersSheetNotConfigured
	}

	now := s.now()
	if req.FechaRegistro == "" {
		req.FechaRegistro = now.UTC().Format("2006-01-02")
	}
	if req.HoraRegistro == "" {
		req.HoraRegistro = now.Format("15:04")
	}
	req.BikerName = strings.TrimSpace(req.BikerName)
	req.Cliente = strings.TrimSpace(req.Cliente)
	req.LugarOrigen = strings.TrimSpace(req.LugarOrigen)
	req.LugarDestino = strings.TrimSpace(req.LugarDestino)
	req.Notas = strings.TrimSpace(req.Notas)

	s.mu.Lock()
	defer s.mu.Unlock()

	sheetTitle, err := s.spreadsheets.EnsureSheet(ctx, s.bikersSheetID, req.BikerName, models.DeliveryHeaders)
	if err != nil {
		return "", "", wrap.Error(ctx, err)
	}

	count, err := s.spreadsheets.RowCount(ctx, s.bikersSheetID, sheetTitle)
	if err != nil {
		return "", "", wrap.Error(ctx, err)
	}
	id := 0
	if count > 1 {
		id = count - 1
	}

	if err := s.spreadsheets.AppendTo(ctx, s.bikersSheetID, sheetTitle, req.Row(id)); err != nil {
		return "", "", wrap.Error(ctx, err)
	}

	metrics.DeliveriesTotal.WithLabelValues(serviceName, fleetName).Inc()
	s.publish(ctx, types.EventDeliveryRegistered, req.BikerName, map[string]any{
		"deliveryId": id,
		"cliente":    req.Cliente,
	})

	s.log.Info(ctx, "delivery registered", "delivery_id", id, "biker", req.BikerName)
	return strconv.Itoa(id), sheetTitle, nil
}

func (s *EcoService) publish(ctx context.Context, eventType types.EventType, actor string, payload map[string]any) {
	if err := s.events.Publish(ctx, events.New(eventType, fleetName, actor, payload)); err != nil {
		s.log.Error(ctx, "failed to publish fleet event", err)
	}
}

func formatCoord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
