package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/filemap/store"
)

// TagResponse is the JSON form of a tag.
type TagResponse struct {
	UID         string `json:"uid"`
	Name        string `json:"name"`
	CategoryUID string `json:"category_uid,omitempty"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	UsageCount  int    `json:"usage_count"`
	CreatedTs   int64  `json:"created_ts"`
}

// ListTags lists tags, optionally filtered by category.
// GET /api/v1/tags?category=
func (s *APIV1Service) ListTags(c echo.Context) error {
	find := &store.FindTag{}
	if categoryUID := c.QueryParam("category"); categoryUID != "" {
		find.CategoryUID = &categoryUID
	}

	tags, err := s.Store.ListTags(c.Request().Context(), find)
	if err != nil {
		slog.Error("failed to list tags", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list tags"})
	}

	response := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		response = append(response, TagResponse{
			UID:         tag.UID,
			Name:        tag.Name,
			CategoryUID: tag.CategoryUID,
			Description: tag.Description,
			Color:       tag.Color,
			UsageCount:  tag.UsageCount,
			CreatedTs:   tag.CreatedTs,
		})
	}
	return c.JSON(http.StatusOK, response)
}
