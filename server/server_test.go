package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hrygo/filemap/internal/profile"
	"github.com/hrygo/filemap/store"
	storetest "github.com/hrygo/filemap/store/test"
)

func newTestServer(ctx context.Context, t *testing.T) (*Server, *store.Store) {
	t.Helper()
	s := storetest.NewTestingStore(ctx, t)
	p := &profile.Profile{Mode: "dev", Addr: "127.0.0.1", Port: 0, Driver: "sqlite"}
	return NewServer(p, s), s
}

func doRequest(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(context.Background(), t)

	rec := doRequest(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Service ready.", rec.Body.String())
}

func TestGetGraph(t *testing.T) {
	ctx := context.Background()
	srv, s := newTestServer(ctx, t)

	for _, uid := range []string{"tag-a", "tag-b"} {
		_, err := s.CreateTag(ctx, &store.Tag{UID: uid, Name: uid})
		require.NoError(t, err)
	}
	for _, fileUID := range []string{"file-1", "file-2"} {
		_, err := s.CreateFile(ctx, &store.File{UID: fileUID, Name: fileUID, Path: "/" + fileUID})
		require.NoError(t, err)
		require.NoError(t, s.AddFileTag(ctx, fileUID, "tag-a"))
		require.NoError(t, s.AddFileTag(ctx, fileUID, "tag-b"))
	}

	rec := doRequest(t, srv, "/api/v1/graph?mode=tags")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Nodes []map[string]any `json:"nodes"`
		Edges []map[string]any `json:"edges"`
		Stats map[string]any   `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Nodes, 2)
	require.Len(t, payload.Edges, 1)
	require.EqualValues(t, 2, payload.Stats["total_nodes"])
}

func TestGetGraphInvalidMode(t *testing.T) {
	srv, _ := newTestServer(context.Background(), t)

	rec := doRequest(t, srv, "/api/v1/graph?mode=bogus")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetGraphStats(t *testing.T) {
	srv, _ := newTestServer(context.Background(), t)

	rec := doRequest(t, srv, "/api/v1/graph/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	require.EqualValues(t, 0, stats["total_nodes"])
	require.EqualValues(t, 0, stats["connected_components"])
}

func TestListEndpoints(t *testing.T) {
	ctx := context.Background()
	srv, s := newTestServer(ctx, t)

	_, err := s.CreateTag(ctx, &store.Tag{UID: "tag-a", Name: "a"})
	require.NoError(t, err)
	_, err = s.CreateFile(ctx, &store.File{UID: "file-1", Name: "one.md", Path: "/one.md"})
	require.NoError(t, err)

	rec := doRequest(t, srv, "/api/v1/tags")
	require.Equal(t, http.StatusOK, rec.Code)
	var tags []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tags))
	require.Len(t, tags, 1)

	rec = doRequest(t, srv, "/api/v1/files")
	require.Equal(t, http.StatusOK, rec.Code)
	var files []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &files))
	require.Len(t, files, 1)
	require.Equal(t, "one.md", files[0]["name"])

	rec = doRequest(t, srv, "/api/v1/files?limit=bogus")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchEndpoint(t *testing.T) {
	ctx := context.Background()
	srv, s := newTestServer(ctx, t)

	_, err := s.CreateFile(ctx, &store.File{UID: "file-1", Name: "notes.md", Path: "/notes.md"})
	require.NoError(t, err)
	require.NoError(t, s.UpsertFileContent(ctx, "file-1", "orchestration with kubernetes"))

	rec := doRequest(t, srv, "/api/v1/search?q=kubernetes")
	require.Equal(t, http.StatusOK, rec.Code)
	var results []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)

	rec = doRequest(t, srv, "/api/v1/search")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
