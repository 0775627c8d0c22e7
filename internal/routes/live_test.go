package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/handlers"
	"github.com/BruksfildServices01/barber-queue/internal/middleware"
)

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	out := map[string]any{}
	require.NoError(t, conn.ReadJSON(&out))
	return out
}

// readUntil skips frames from refreshes that were already in flight.
func readUntil(t *testing.T, conn *websocket.Conn, match func(map[string]any) bool) map[string]any {
	t.Helper()
	for i := 0; i < 10; i++ {
		if frame := readFrame(t, conn); match(frame) {
			return frame
		}
	}
	t.Fatal("expected frame never arrived")
	return nil
}

func TestBarberLiveFeed(t *testing.T) {
	s := newServer(t)
	token, serviceID := s.seed(t, "navalha", "ze@navalha.com")
	id, _, err := middleware.ParseToken(s.secret, token)
	require.NoError(t, err)

	srv := httptest.NewServer(s.r)
	defer srv.Close()

	conn := dial(t, srv, "/api/me/queue/live?token="+token)

	// snapshot inicial
	view := readFrame(t, conn)
	assert.Empty(t, view["entries"])
	assert.Equal(t, 1, s.hub.SubscriberCount(id))

	code, body := s.do(t, http.MethodPost, "/api/me/queue", token, map[string]any{
		"name": "Carlos", "phone": "11999990000", "service_id": serviceID,
	})
	require.Equal(t, http.StatusCreated, code, body)

	view = readUntil(t, conn, func(f map[string]any) bool {
		list, _ := f["entries"].([]any)
		return len(list) == 1
	})
	entries := view["entries"].([]any)
	assert.Equal(t, "Carlos", entries[0].(map[string]any)["name"])

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return s.hub.SubscriberCount(id) == 0 },
		2*time.Second, 10*time.Millisecond)
}

func TestBarberLiveFeedNeedsToken(t *testing.T) {
	s := newServer(t)
	srv := httptest.NewServer(s.r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/me/queue/live"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestEntryLiveFeedEndsWhenRemoved(t *testing.T) {
	s := newServer(t)
	token, serviceID := s.seed(t, "navalha", "ze@navalha.com")
	id, _, err := middleware.ParseToken(s.secret, token)
	require.NoError(t, err)

	code, body := s.do(t, http.MethodPost, "/api/public/navalha/queue", "", map[string]any{
		"name": "Bruno", "phone": "11988887777", "service_id": serviceID,
	})
	require.Equal(t, http.StatusCreated, code, body)
	entryID := body["id"].(string)

	srv := httptest.NewServer(s.r)
	defer srv.Close()

	conn := dial(t, srv, "/api/public/navalha/queue/"+entryID+"/live")
	defer conn.Close()

	frame := readFrame(t, conn)
	assert.Equal(t, "waiting", frame["status"])
	assert.EqualValues(t, 1, frame["position"])

	code, _ = s.do(t, http.MethodDelete, "/api/me/queue/"+entryID, token, nil)
	require.Equal(t, http.StatusNoContent, code)

	frame = readUntil(t, conn, func(f map[string]any) bool { return f["status"] == handlers.StatusRemoved })
	assert.Equal(t, entryID, frame["id"])

	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)

	assert.Eventually(t, func() bool { return s.hub.SubscriberCount(id) == 0 },
		2*time.Second, 10*time.Millisecond)
}

func TestEntryLiveFeedUnknownEntry(t *testing.T) {
	s := newServer(t)
	s.seed(t, "navalha", "ze@navalha.com")

	srv := httptest.NewServer(s.r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/public/navalha/queue/nope/live"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
