package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tileroute/gridworld"
	"github.com/katalvlaran/tileroute/world"
)

func TestStepviz_Session(t *testing.T) {
	g := gridworld.MustFromASCII([]string{
		"~~~~~",
		"~~.~~",
		"~~~~~",
	}, gridworld.DefaultOptions())
	srv := httptest.NewServer(newApp(g, slog.New(slog.NewTextHandler(io.Discard, nil))).router())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?mode=water&from=0,1&to=4,1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var snap snapshot
	require.NoError(t, conn.WriteJSON(command{Op: "step", N: 1}))
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, "searching", snap.Status)
	assert.Equal(t, 1, snap.Expanded)
	assert.Contains(t, snap.Closed, world.T(0, 1))
	assert.NotEmpty(t, snap.Frontier)

	require.NoError(t, conn.WriteJSON(command{Op: "step", N: 1000}))
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, "succeeded", snap.Status)
	assert.Equal(t, 6, snap.Cost)
	assert.Equal(t, world.T(4, 1), snap.Path[len(snap.Path)-1])

	require.NoError(t, conn.WriteJSON(command{Op: "init"}))
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Equal(t, "searching", snap.Status)
	assert.Zero(t, snap.Expanded)

	require.NoError(t, conn.WriteJSON(command{Op: "jump"}))
	require.NoError(t, conn.ReadJSON(&snap))
	assert.Contains(t, snap.Error, "jump")
}

func TestStepviz_BadQuery(t *testing.T) {
	g := gridworld.MustFromASCII([]string{"~~"}, gridworld.DefaultOptions())
	srv := httptest.NewServer(newApp(g, slog.New(slog.NewTextHandler(io.Discard, nil))).router())
	defer srv.Close()

	for _, q := range []string{"from=0,0", "from=0,0&to=1,0&mode=teleport", "from=a,b&to=1,0"} {
		resp, err := http.Get(srv.URL + "/ws?" + q)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}

	resp, err := http.Get(srv.URL + "/map")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestParseTile(t *testing.T) {
	tile, err := parseTile(" 3, 7")
	require.NoError(t, err)
	assert.Equal(t, world.T(3, 7), tile)
	_, err = parseTile("3")
	assert.ErrorIs(t, err, errBadQuery)
}
