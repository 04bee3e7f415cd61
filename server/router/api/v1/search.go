package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/filemap/store"
)

// SearchResultResponse is a search hit with its relevance score.
type SearchResultResponse struct {
	File  FileResponse `json:"file"`
	Score float64      `json:"score"`
}

// SearchFiles performs full-text search over file names and content.
// GET /api/v1/search?q=&limit=
func (s *APIV1Service) SearchFiles(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing query parameter q"})
	}

	limit, err := parsePositiveInt(c.QueryParam("limit"), 10)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit"})
	}

	results, err := s.Store.SearchFiles(c.Request().Context(), &store.SearchFilesOptions{Query: query, Limit: limit})
	if err != nil {
		slog.Error("failed to search files", "query", query, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to search files"})
	}

	response := make([]SearchResultResponse, 0, len(results))
	for _, result := range results {
		response = append(response, SearchResultResponse{
			File:  toFileResponse(result.File),
			Score: result.Score,
		})
	}
	return c.JSON(http.StatusOK, response)
}
