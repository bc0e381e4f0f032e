package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/beetracked/fleet-ops/config"
	"github.com/beetracked/fleet-ops/internal/adapter/http/handler"
	"github.com/beetracked/fleet-ops/internal/adapter/http/middleware"
	"github.com/beetracked/fleet-ops/internal/adapter/http/ws"
	"github.com/beetracked/fleet-ops/pkg/logger"
	wrap "github.com/beetracked/fleet-ops/pkg/logger/wrapper"
)

const (
	serviceName     = "fleet-ops"
	serverIPAddress = "%s:%s"
)

// Photo uploads ride in request bodies as base64 JSON, so the read and
// write windows stay generous. The websocket feed clears the deadlines
// itself on upgrade.
const (
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 2 * time.Minute
)

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *handlers
	m      *middleware.Middleware

	addr string
	cfg  config.Config
	log  logger.Logger
}

type handlers struct {
	health   *handler.Health
	auth     *handler.Auth
	shift    *handler.Shift
	eco      *handler.Ecodelivery
	carrera  *handler.Carrera
	sessions *handler.Sessions
	feed     *ws.Feed
}

func New(
	cfg config.Config,
	authService handler.AuthService,
	shiftService handler.ShiftService,
	ecoService handler.EcoService,
	carreraService handler.CarreraService,
	registry handler.SessionStatsProvider,
	sessions middleware.SessionRegistry,
	tokens middleware.TokenVerifier,
	feed *ws.Feed,
	log logger.Logger,
) (*API, error) {
	if authService == nil {
		return nil, errors.New("auth service is required")
	}
	if sessions == nil {
		return nil, errors.New("session registry is required")
	}

	addr := fmt.Sprintf(serverIPAddress, "0.0.0.0", cfg.Server.Port)

	routes := &handlers{
		health:   handler.NewHealth(log),
		auth:     handler.NewAuth(authService, log),
		shift:    handler.NewShift(shiftService, log),
		eco:      handler.NewEcodelivery(ecoService, log),
		carrera:  handler.NewCarrera(carreraService, log),
		sessions: handler.NewSessions(registry, log),
		feed:     feed,
	}

	api := &API{
		mux:    http.NewServeMux(),
		routes: routes,
		m:      middleware.NewMiddleware(sessions, tokens, log),
		addr:   addr,
		cfg:    cfg,
		log:    log,
	}

	api.server = &http.Server{
		Addr:              api.addr,
		Handler:           api.withMiddleware(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	api.setupRoutes()

	return api, nil
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}

// withMiddleware applies middlewares to the mux
func (a *API) withMiddleware() http.Handler {
	h := a.m.OptionalAuth(a.mux)
	h = a.m.Metrics(serviceName)(h)
	h = a.m.Logging(h)
	h = a.m.CORS(a.cfg.Server.FrontendURL)(h)
	h = a.m.RequestID(h)
	return a.m.Recover(h)
}
