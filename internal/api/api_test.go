package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/auctiongame-go/internal/api"
	"github.com/mcoot/auctiongame-go/internal/api/response"
	"github.com/mcoot/auctiongame-go/internal/factory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		PlayerService:     app.PlayerService,
		RoomService:       app.RoomService,
		AuctionController: app.AuctionController,
		HubManager:        app.HubManager,
	})

	return &testServer{handler: router}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) createPlayer(t *testing.T, name string) response.Player {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/players", map[string]string{"display_name": name})
	require.Equal(t, http.StatusCreated, rr.Code)

	var p response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	return p
}

// createSession drives two players through room setup and game start
func (ts *testServer) createSession(t *testing.T) (response.Session, response.Player, response.Player) {
	t.Helper()

	alice := ts.createPlayer(t, "Alice")
	bob := ts.createPlayer(t, "Bob")

	rr := ts.request(http.MethodPost, "/api/v1/rooms", map[string]string{"player_id": alice.ID})
	require.Equal(t, http.StatusCreated, rr.Code)
	var room response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &room))

	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+room.ID+"/join", map[string]string{"player_id": bob.ID})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+room.ID+"/start", map[string]string{"player_id": alice.ID})
	require.Equal(t, http.StatusCreated, rr.Code)

	var sess response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sess))
	return sess, alice, bob
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreatePlayer(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players", map[string]string{"display_name": "Alice"})
	assert.Equal(t, http.StatusCreated, rr.Code)

	var p response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, "Alice", p.DisplayName)
	assert.NotEmpty(t, p.ID)

	// Posting the same name again returns the same player
	rr = ts.request(http.MethodPost, "/api/v1/players", map[string]string{"display_name": "Alice"})
	require.Equal(t, http.StatusCreated, rr.Code)
	var again response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &again))
	assert.Equal(t, p.ID, again.ID)
}

func TestCreatePlayerValidation(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_REQUEST")
}

func TestGetMissingPlayer(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "PLAYER_NOT_FOUND")
}

func TestRoomLifecycle(t *testing.T) {
	ts := newTestServer(t)

	alice := ts.createPlayer(t, "Alice")
	bob := ts.createPlayer(t, "Bob")

	rr := ts.request(http.MethodPost, "/api/v1/rooms", map[string]string{"player_id": alice.ID})
	require.Equal(t, http.StatusCreated, rr.Code)
	var room response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &room))
	assert.Equal(t, alice.ID, room.OwnerID)
	assert.Len(t, room.Players, 1)

	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+room.ID+"/join", map[string]string{"player_id": bob.ID})
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &room))
	assert.Len(t, room.Players, 2)

	// Joining twice conflicts
	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+room.ID+"/join", map[string]string{"player_id": bob.ID})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "ALREADY_IN_ROOM")

	rr = ts.request(http.MethodGet, "/api/v1/rooms", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var rooms []response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rooms))
	assert.Len(t, rooms, 1)
}

func TestStartGameRequiresOwner(t *testing.T) {
	ts := newTestServer(t)

	alice := ts.createPlayer(t, "Alice")
	bob := ts.createPlayer(t, "Bob")

	rr := ts.request(http.MethodPost, "/api/v1/rooms", map[string]string{"player_id": alice.ID})
	require.Equal(t, http.StatusCreated, rr.Code)
	var room response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &room))

	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+room.ID+"/join", map[string]string{"player_id": bob.ID})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+room.ID+"/start", map[string]string{"player_id": bob.ID})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_ROOM_OWNER")
}

func TestStartGameRequiresEnoughPlayers(t *testing.T) {
	ts := newTestServer(t)

	alice := ts.createPlayer(t, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/rooms", map[string]string{"player_id": alice.ID})
	require.Equal(t, http.StatusCreated, rr.Code)
	var room response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &room))

	rr = ts.request(http.MethodPost, "/api/v1/rooms/"+room.ID+"/start", map[string]string{"player_id": alice.ID})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "INSUFFICIENT_PLAYERS")
}

func TestSessionFlow(t *testing.T) {
	ts := newTestServer(t)

	sess, alice, _ := ts.createSession(t)
	assert.Equal(t, "in_progress", sess.State)
	assert.Equal(t, 100, sess.CurrentPrice)
	assert.NotEmpty(t, sess.CurrentItem)
	// 2 players -> 4 items, one already up for auction
	assert.Equal(t, 3, sess.ItemsLeft)
	require.Len(t, sess.Stats, 2)
	assert.Equal(t, 100, sess.Stats[0].Money)

	// The game start consumed the room
	rr := ts.request(http.MethodGet, "/api/v1/rooms", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var rooms []response.Room
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rooms))
	assert.Empty(t, rooms)

	// A tick knocks between 1 and 10 off the price
	rr = ts.request(http.MethodPost, "/api/v1/sessions/"+sess.ID+"/tick", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var ticked response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ticked))
	assert.Less(t, ticked.CurrentPrice, 100)
	assert.GreaterOrEqual(t, ticked.CurrentPrice, 90)
	assert.Equal(t, 100-ticked.CurrentPrice, ticked.LastDecrement)

	// Alice buys the current item at the ticked price
	firstItem := ticked.CurrentItem
	rr = ts.request(http.MethodPost, "/api/v1/sessions/"+sess.ID+"/purchase", map[string]string{"player_id": alice.ID})
	require.Equal(t, http.StatusOK, rr.Code)
	var bought response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &bought))
	assert.Equal(t, 2, bought.ItemsLeft)
	assert.NotEqual(t, firstItem, bought.CurrentItem)
	assert.Equal(t, 100, bought.CurrentPrice)

	var aliceStat response.PlayerStat
	for _, st := range bought.Stats {
		if st.PlayerID == alice.ID {
			aliceStat = st
		}
	}
	assert.Equal(t, []string{firstItem}, aliceStat.OwnedItems)
	if aliceStat.Money != 100 {
		// Not a joker hit, so she paid the ticked price
		assert.Equal(t, 100-ticked.CurrentPrice, aliceStat.Money)
	}

	// Winner endpoint reports a non-final leader while running
	rr = ts.request(http.MethodGet, "/api/v1/sessions/"+sess.ID+"/winner", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var winner response.Winner
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &winner))
	assert.False(t, winner.Final)
	assert.NotEmpty(t, winner.PlayerID)
}

func TestBuyJokerValidation(t *testing.T) {
	ts := newTestServer(t)

	sess, alice, _ := ts.createSession(t)

	rr := ts.request(http.MethodPost, "/api/v1/sessions/"+sess.ID+"/joker",
		map[string]any{"player_id": alice.ID, "value": 11})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_JOKER_VALUE")

	rr = ts.request(http.MethodPost, "/api/v1/sessions/"+sess.ID+"/joker",
		map[string]any{"player_id": alice.ID, "value": 7})
	require.Equal(t, http.StatusOK, rr.Code)
	var after response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &after))

	for _, st := range after.Stats {
		if st.PlayerID == alice.ID {
			assert.Equal(t, 70, st.Money)
		}
	}
}

func TestSessionNotFound(t *testing.T) {
	ts := newTestServer(t)

	for _, tc := range []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/v1/sessions/NOPE", nil},
		{http.MethodPost, "/api/v1/sessions/NOPE/tick", nil},
		{http.MethodPost, "/api/v1/sessions/NOPE/purchase", map[string]string{"player_id": "x"}},
		{http.MethodPost, "/api/v1/sessions/NOPE/joker", map[string]any{"player_id": "x", "value": 5}},
		{http.MethodGet, "/api/v1/sessions/NOPE/winner", nil},
	} {
		rr := ts.request(tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, rr.Code, fmt.Sprintf("%s %s", tc.method, tc.path))
		assert.Contains(t, rr.Body.String(), "SESSION_NOT_FOUND")
	}
}

func TestRemoveSession(t *testing.T) {
	ts := newTestServer(t)

	sess, _, _ := ts.createSession(t)

	rr := ts.request(http.MethodDelete, "/api/v1/sessions/"+sess.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/sessions/"+sess.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
