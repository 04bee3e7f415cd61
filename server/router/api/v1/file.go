package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/filemap/store"
)

// FileResponse is the JSON form of a file record.
type FileResponse struct {
	UID       string   `json:"uid"`
	Name      string   `json:"name"`
	Path      string   `json:"path"`
	Managed   bool     `json:"managed"`
	Size      int64    `json:"size"`
	MimeType  string   `json:"mime_type"`
	Hash      string   `json:"hash"`
	Notes     string   `json:"notes,omitempty"`
	CreatedTs int64    `json:"created_ts"`
	UpdatedTs int64    `json:"updated_ts"`
	Tags      []string `json:"tags"`
}

func toFileResponse(file *store.File) FileResponse {
	tags := file.Tags
	if tags == nil {
		tags = []string{}
	}
	return FileResponse{
		UID:       file.UID,
		Name:      file.Name,
		Path:      file.Path,
		Managed:   file.Managed,
		Size:      file.Size,
		MimeType:  file.MimeType,
		Hash:      file.Hash,
		Notes:     file.Notes,
		CreatedTs: file.CreatedTs,
		UpdatedTs: file.UpdatedTs,
		Tags:      tags,
	}
}

// ListFiles lists file records.
// GET /api/v1/files?tag=&limit=&offset=
func (s *APIV1Service) ListFiles(c echo.Context) error {
	find := &store.FindFile{}
	if tagUID := c.QueryParam("tag"); tagUID != "" {
		find.TagUID = &tagUID
	}

	limit, err := parsePositiveInt(c.QueryParam("limit"), 0)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit"})
	}
	if limit > 0 {
		find.Limit = &limit
		offset, err := parsePositiveInt(c.QueryParam("offset"), 0)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid offset"})
		}
		if offset > 0 {
			find.Offset = &offset
		}
	}

	files, err := s.Store.ListFiles(c.Request().Context(), find)
	if err != nil {
		slog.Error("failed to list files", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list files"})
	}

	response := make([]FileResponse, 0, len(files))
	for _, file := range files {
		response = append(response, toFileResponse(file))
	}
	return c.JSON(http.StatusOK, response)
}
