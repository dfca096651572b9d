package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/msomdec/items-api/internal/handler"
	"github.com/msomdec/items-api/internal/repository/sqlite"
	"github.com/msomdec/items-api/internal/service"
)

const testDeploymentHost = "items.example.com"

type testServer struct {
	*httptest.Server
	db *sqlite.DB
}

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	t.Cleanup(func() { db.Close() })
	return db
}

// newTestServer serves the full router over a fresh SQLite database.
// authLimit of zero leaves signup and login unlimited.
func newTestServer(t *testing.T, authLimit int) *testServer {
	t.Helper()
	return newTestServerWithProxy(t, authLimit, false)
}

func newTestServerWithProxy(t *testing.T, authLimit int, trustProxy bool) *testServer {
	t.Helper()
	db := newTestDB(t)

	// Use cost 4 for fast tests.
	auth := service.NewAuthService(db.Users(), service.NewBcryptHasher(4))
	items := service.NewItemService(db.Items())

	var limiter *service.TokenBucket
	if authLimit > 0 {
		limiter = service.NewTokenBucket(authLimit)
		t.Cleanup(limiter.Stop)
	}

	router := handler.NewRouter(auth, items, db, handler.NewOriginPolicy(testDeploymentHost), limiter, trustProxy)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, db: db}
}

// do sends a JSON request and returns the response with its body already
// read into raw.
func (s *testServer) do(t *testing.T, method, path string, body any, header http.Header) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req, err := http.NewRequest(method, s.URL+path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw bytes.Buffer
	_, err = raw.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, raw.Bytes()
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), "body: %s", raw)
	return v
}

func messageOf(t *testing.T, raw []byte) string {
	t.Helper()
	return decode[map[string]string](t, raw)["message"]
}

func (s *testServer) signup(t *testing.T, name, email, password string) handler.UserDTO {
	t.Helper()
	resp, raw := s.do(t, http.MethodPost, "/users", map[string]string{
		"name": name, "email": email, "password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", raw)
	return decode[handler.UserDTO](t, raw)
}

func (s *testServer) createItem(t *testing.T, body map[string]string) handler.ItemDTO {
	t.Helper()
	resp, raw := s.do(t, http.MethodPost, "/items", body, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", raw)
	return decode[handler.ItemDTO](t, raw)
}
