package handler

import (
	"net/http"

	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/pkg/logger"
	wrap "github.com/beetracked/fleet-ops/pkg/logger/wrapper"
)

type SessionStatsProvider interface {
	Stats() models.SessionStats
}

type Sessions struct {
	registry SessionStatsProvider
	l        logger.Logger
}

func NewSessions(registry SessionStatsProvider, l logger.Logger) *Sessions {
	return &Sessions{
		registry: registry,
		l:        l,
	}
}

// Stats godoc
// @Summary      Active session stats
// @Description  Returns the active sessions and their inactivity times
// @Tags         Sessions
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/auth/sessions [get]
func (h *Sessions) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "session_stats")

	stats := h.registry.Stats()

	response := envelope{
		"success": true,
		"stats":   stats,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
