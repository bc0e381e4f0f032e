package handler

import (
	"net/http"

	"github.com/beetracked/fleet-ops/pkg/logger"
	wrap "github.com/beetracked/fleet-ops/pkg/logger/wrapper"
)

type Health struct {
	log logger.Logger
}

func NewHealth(log logger.Logger) *Health {
	return &Health{log: log}
}

// HealthCheck godoc
// @Summary      Health Check
// @Description  Returns the health status of the service
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Health) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "health_check")

	response := envelope{
		"status":  "ok",
		"message": "bee-tracked API is running",
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.log.Error(ctx, "healthcheck", err)
	}
}
