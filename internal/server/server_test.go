package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/udisondev/zzzcalc/internal/calc"
	"github.com/udisondev/zzzcalc/internal/config"
	"github.com/udisondev/zzzcalc/internal/data"
	"github.com/udisondev/zzzcalc/internal/db"
	"github.com/udisondev/zzzcalc/internal/marginal"
	"github.com/udisondev/zzzcalc/internal/model"
)

func testServer(t *testing.T, cfg config.Server) *Server {
	t.Helper()

	ctx := context.Background()
	database, err := db.Open(ctx, config.Database{Dialect: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, database.Migrate(ctx))
	return New(cfg, db.NewBuildStore(database))
}

func buildBody(t *testing.T, b *model.Build) *bytes.Reader {
	t.Helper()

	raw, err := b.EncodeDocument()
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func TestPreviewEndpoint(t *testing.T) {
	srv := testServer(t, config.Defaults())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	b := model.Defaults()
	b.Agent.Atk = 1000
	b.Agent.Crit.Rate = 0
	b.Agent.Crit.Dmg = 0

	resp, err := http.Post(ts.URL+"/api/preview", "application/json", buildBody(t, b))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got calc.Preview
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, model.ModeStandard, got.Mode)
	assert.Greater(t, got.Output, 0.0)
}

func TestPreviewRejectsMalformedDocument(t *testing.T) {
	srv := testServer(t, config.Defaults())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/preview", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMarginalsEndpoint(t *testing.T) {
	srv := testServer(t, config.Defaults())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	b := model.Defaults()
	b.Marginal.CustomApplied = map[string]model.Delta{
		data.StatAtk: {Kind: data.KindFlat, Value: 100},
	}

	resp, err := http.Post(ts.URL+"/api/marginals", "application/json", buildBody(t, b))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got marginal.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.NotEmpty(t, got.Rows)

	var sawAtk bool
	for _, row := range got.Rows {
		if row.Key == data.StatAtk {
			sawAtk = true
			assert.Equal(t, 100.0, row.Applied.Value)
		}
	}
	assert.True(t, sawAtk)
}

func TestStatsEndpoint(t *testing.T) {
	srv := testServer(t, config.Defaults())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []data.StatMeta
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Len(t, got, len(data.StatRegistry()))
}

func TestBuildCRUD(t *testing.T) {
	srv := testServer(t, config.Defaults())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	client := ts.Client()

	b := model.Defaults()
	b.Agent.Atk = 1234

	put, err := http.NewRequest(http.MethodPut, ts.URL+"/api/builds/main", buildBody(t, b))
	require.NoError(t, err)
	resp, err := client.Do(put)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/builds/main")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got model.Build
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	resp.Body.Close()
	assert.Equal(t, 1234.0, got.Agent.Atk)

	resp, err = http.Get(ts.URL + "/api/builds")
	require.NoError(t, err)
	var infos []db.BuildInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&infos))
	resp.Body.Close()
	require.Len(t, infos, 1)
	assert.Equal(t, "main", infos[0].Name)

	del, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/builds/main", nil)
	require.NoError(t, err)
	resp, err = client.Do(del)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/builds/main")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMutationsRequireKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := config.Defaults()
	cfg.APIKeyHash = string(hash)

	srv := testServer(t, cfg)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	client := ts.Client()

	put, err := http.NewRequest(http.MethodPut, ts.URL+"/api/builds/locked", buildBody(t, model.Defaults()))
	require.NoError(t, err)
	resp, err := client.Do(put)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	put, err = http.NewRequest(http.MethodPut, ts.URL+"/api/builds/locked", buildBody(t, model.Defaults()))
	require.NoError(t, err)
	put.Header.Set("X-API-Key", "hunter2")
	resp, err = client.Do(put)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Reads stay open.
	resp, err = http.Get(ts.URL + "/api/builds")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebsocketRecompute(t *testing.T) {
	srv := testServer(t, config.Defaults())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	b := model.Defaults()
	b.Agent.Atk = 1000
	raw, err := b.EncodeDocument()
	require.NoError(t, err)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, raw))

	var answer wsAnswer
	require.NoError(t, conn.ReadJSON(&answer))
	assert.Greater(t, answer.Preview.Output, 0.0)
	assert.NotEmpty(t, answer.Marginals.Rows)

	// Malformed frame gets an error reply, session survives.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{broken")))
	var why wsError
	require.NoError(t, conn.ReadJSON(&why))
	assert.NotEmpty(t, why.Error)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, raw))
	require.NoError(t, conn.ReadJSON(&answer))
	assert.Greater(t, answer.Preview.Output, 0.0)
}
