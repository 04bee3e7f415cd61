package v1

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/hrygo/filemap/plugin/graph"
)

// GetGraph builds the knowledge graph and returns its interchange document.
// GET /api/v1/graph?mode=tags|files|full
func (s *APIV1Service) GetGraph(c echo.Context) error {
	mode := c.QueryParam("mode")
	if mode == "" {
		mode = graph.ModeFull
	}

	g, err := s.Builder.Build(c.Request().Context(), mode)
	if err != nil {
		if errors.Is(err, graph.ErrInvalidMode) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid mode: " + mode})
		}
		slog.Error("failed to build graph", "mode", mode, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to build graph"})
	}

	return c.JSON(http.StatusOK, g.ExportJSON())
}

// GetGraphStats returns aggregate statistics of the knowledge graph.
// GET /api/v1/graph/stats?mode=tags|files|full
func (s *APIV1Service) GetGraphStats(c echo.Context) error {
	mode := c.QueryParam("mode")
	if mode == "" {
		mode = graph.ModeFull
	}

	g, err := s.Builder.Build(c.Request().Context(), mode)
	if err != nil {
		if errors.Is(err, graph.ErrInvalidMode) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid mode: " + mode})
		}
		slog.Error("failed to build graph", "mode", mode, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to build graph"})
	}

	return c.JSON(http.StatusOK, g.Stats())
}

// parsePositiveInt parses a query parameter into a non-negative int with a
// default for the empty string.
func parsePositiveInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.Errorf("invalid value %q", raw)
	}
	return n, nil
}
