package carrera

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
	fleetName   = "beezero"
)

// CarreraService records BeeZero rides in per-driver tabs of the
// Carreras_drivers spreadsheet.
type CarreraService struct {
	spreadsheets SpreadsheetStore
	events       events.Publisher
	log          logger.Logger

	// driversSheetID is the Carreras_drivers spreadsheet. Empty means
	// the ride endpoints are unavailable.
	driversSheetID string

	mu  sync.Mutex
	now func() time.Time
}

func NewCarreraService(spreadsheets SpreadsheetStore, pub events.Publisher, driversSheetID string, log logger.Logger) *CarreraService {
	return &CarreraService{
		spreadsheets:   spreadsheets,
		events:         pub,
		driversSheetID: driversSheetID,
		log:            log,
		now:            time.Now,
	}
}

// Register appends a ride to the driver's tab, creating the tab on
// first use. Ids are dense and zero-based per tab.
func (s *CarreraService) Register(ctx context.Context, req models.CarreraCreate) (string, string, error) {
	ctx = wrap.WithAction(ctx, "carrera_register")

	if s.driversSheetID == "" {
		return "", "", types.ErrRidesSheetNotConfigured
	}

	req.Abejita = strings.TrimSpace(req.Abejita)
	req.Fecha = strings.TrimSpace(req.Fecha)
	req.Cliente = strings.TrimSpace(req.Cliente)
	req.HoraInicio = strings.TrimSpace(req.HoraInicio)
	req.HoraFin = strings.TrimSpace(req.HoraFin)
	req.LugarRecojo = strings.TrimSpace(req.LugarRecojo)
	req.LugarDestino = strings.TrimSpace(req.LugarDestino)
	req.Tiempo = strings.TrimSpace(req.Tiempo)
	req.Observaciones = strings.TrimSpace(req.Observaciones)

	s.mu.Lock()
	defer s.mu.Unlock()

	sheetTitle, err := s.spreadsheets.EnsureSheet(ctx, s.driversSheetID, req.Abejita, models.CarreraHeaders)
	if err != nil {
		return "", "", wrap.Error(ctx, err)
	}

	count, err := s.spreadsheets.RowCount(ctx, s.driversSheetID, sheetTitle)
	if err != nil {
		return "", "", wrap.Error(ctx, err)
	}
	id := 0
	if count > 1 {
		id = count - 1
	}

	creadoEn := s.now().UTC().Format(time.RFC3339)
	if err := s.spreadsheets.AppendTo(ctx, s.driversSheetID, sheetTitle, req.Row(id, creadoEn)); err != nil {
		return "", "", wrap.Error(ctx, err)
	}

	metrics.DeliveriesTotal.WithLabelValues(serviceName, fleetName).Inc()
	s.publish(ctx, types.EventCarreraRegistered, req.Abejita, map[string]any{
		"carreraId": id,
		"cliente":   req.Cliente,
	})

	s.log.Info(ctx, "carrera registered", "carrera_id", id, "abejita", req.Abejita)
	return strconv.Itoa(id), sheetTitle, nil
}

// ByDriver returns the driver's rides, optionally filtered to one date
// (YYYY-MM-DD). A driver without a tab has no rides yet.
func (s *CarreraService) ByDriver(ctx context.Context, driverName, fecha string) ([]models.Carrera, error) {
	ctx = wrap.WithAction(ctx, "carrera_list")

	if s.driversSheetID == "" {
		return nil, types.ErrRidesSheetNotConfigured
	}

	titles, err := s.spreadsheets.SheetTitles(ctx, s.driversSheetID)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	want := strings.ToLower(strings.TrimSpace(driverName))
	found := ""
	for _, t := range titles {
		if strings.ToLower(t) == want {
			found = t
			break
		}
	}
	if found == "" {
		return []models.Carrera{}, nil
	}

	rows, err := s.spreadsheets.DataRows(ctx, s.driversSheetID, found)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	carreras := make([]models.Carrera, 0, len(rows))
	for _, row := range rows {
		carreras = append(carreras, models.CarreraFromRow(row))
	}

	if fecha == "" {
		return carreras, nil
	}

	fechaStr := strings.TrimSpace(fecha)
	if len(fechaStr) > 10 {
		fechaStr = fechaStr[:10]
	}
	filtered := make([]models.Carrera, 0, len(carreras))
	for _, c := range carreras {
		d := c.Fecha
		if len(d) > 10 {
			d = d[:10]
		}
		if d == fechaStr {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func (s *CarreraService) publish(ctx context.Context, eventType types.EventType, actor string, payload map[string]any) {
	if err := s.events.Publish(ctx, events.New(eventType, fleetName, actor, payload)); err != nil {
		s.log.Error(ctx, "failed to publish fleet event", err)
	}
}
