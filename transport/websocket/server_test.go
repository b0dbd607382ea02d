package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/repository"
	"github.com/rocketscienceinc/tictactoe/internal/session"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
)

type testServer struct {
	url       string
	scoresFor repository.ScoresFactory
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	scoresFor := repository.MemorySessionScores()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	server := New(logger, scoresFor, tictactoe.Settings{
		ComputerDelay: time.Millisecond,
		Intn:          func(int) int { return 0 },
	})

	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)

	return &testServer{
		url:       "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws",
		scoresFor: scoresFor,
	}
}

func (that *testServer) dial(t *testing.T, header http.Header) (*websocket.Conn, *http.Response) {
	t.Helper()

	conn, resp, err := websocket.DefaultDialer.Dial(that.url, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn, resp
}

func send(t *testing.T, conn *websocket.Conn, action string, payload any) {
	t.Helper()

	msg := Message{Action: action}
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		msg.Payload = raw
	}

	require.NoError(t, conn.WriteJSON(msg))
}

// collectUntil - reads messages up to and including the first one with action.
func collectUntil(t *testing.T, conn *websocket.Conn, action string) []Message {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var messages []Message
	for {
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))

		messages = append(messages, msg)
		if msg.Action == action {
			return messages
		}
	}
}

func last(messages []Message) Message {
	return messages[len(messages)-1]
}

func find(messages []Message, action string) []Message {
	var found []Message
	for _, msg := range messages {
		if msg.Action == action {
			found = append(found, msg)
		}
	}

	return found
}

func sessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()

	for _, cookie := range resp.Cookies() {
		if cookie.Name == session.CookieName {
			return cookie.Value
		}
	}

	t.Fatalf("no %s cookie in the handshake response", session.CookieName)

	return ""
}

func TestServer_ConnectShowsSetupScreen(t *testing.T) {
	srv := newTestServer(t)

	// When: a browser connects without a session
	conn, resp := srv.dial(t, nil)

	// Then: a session cookie is issued and the initial state is pushed
	_, err := uuid.Parse(sessionCookie(t, resp))
	require.NoError(t, err)

	messages := collectUntil(t, conn, actionHomeButton)

	assert.JSONEq(t, `{"x":0,"o":0}`, string(find(messages, actionScores)[0].Payload))
	assert.JSONEq(t, `{"x":"Player 1","o":"Player 2"}`, string(find(messages, actionPlayers)[0].Payload))
	assert.JSONEq(t, `{"screen":"setup"}`, string(find(messages, actionScreen)[0].Payload))
	assert.JSONEq(t, `{"visible":false}`, string(last(messages).Payload))
}

func TestServer_ReusesSessionScores(t *testing.T) {
	srv := newTestServer(t)

	// Given: a session with saved scores
	sessionID := uuid.NewString()
	require.NoError(t, srv.scoresFor(sessionID).Save(context.Background(), entity.Scores{X: 2, O: 1}))

	header := http.Header{}
	header.Add("Cookie", (&http.Cookie{Name: session.CookieName, Value: sessionID}).String())

	// When: the browser reconnects with its cookie
	conn, resp := srv.dial(t, header)

	// Then: no new cookie is issued and the saved scores are shown
	assert.Empty(t, resp.Cookies())

	messages := collectUntil(t, conn, actionScores)
	assert.JSONEq(t, `{"x":2,"o":1}`, string(last(messages).Payload))
}

func TestServer_PlayToWin(t *testing.T) {
	srv := newTestServer(t)
	conn, resp := srv.dial(t, nil)
	sessionID := sessionCookie(t, resp)
	collectUntil(t, conn, actionHomeButton)

	// Given: a game between two named players
	send(t, conn, actionSetup, setupPayload{PlayerX: " Ana ", PlayerO: ""})
	messages := collectUntil(t, conn, actionStatus)

	assert.JSONEq(t, `{"x":"Ana","o":"Player 2"}`, string(find(messages, actionPlayers)[0].Payload))
	assert.JSONEq(t, `{"screen":"game"}`, string(find(messages, actionScreen)[0].Payload))
	assert.Len(t, find(messages, actionBoardClear), 1)
	assert.JSONEq(t, `{"text":"Ana's turn (X)"}`, string(last(messages).Payload))

	// When: X completes the top row
	for _, cell := range []int{0, 3, 1, 4} {
		send(t, conn, actionTurn, map[string]int{"cell": cell})
		collectUntil(t, conn, actionStatus)
	}
	send(t, conn, actionTurn, map[string]int{"cell": 2})
	messages = collectUntil(t, conn, actionVibrate)

	// Then: the line is highlighted, the win announced and the scores saved
	assert.JSONEq(t, `{"cell":2,"mark":"X"}`, string(find(messages, actionBoardMark)[0].Payload))
	assert.JSONEq(t, `{"text":"Ana (X) wins!"}`, string(find(messages, actionStatus)[0].Payload))
	assert.JSONEq(t, `{"x":1,"o":0}`, string(find(messages, actionScores)[0].Payload))
	assert.JSONEq(t, `{"cells":[0,1,2]}`, string(find(messages, actionBoardHighlight)[0].Payload))
	assert.JSONEq(t, `{"visible":true}`, string(find(messages, actionHomeButton)[0].Payload))
	assert.Len(t, find(messages, actionSound), 1)
	assert.JSONEq(t, `{"pattern_ms":[200,100,200]}`, string(last(messages).Payload))

	require.Eventually(t, func() bool {
		scores, err := srv.scoresFor(sessionID).Load(context.Background())
		return err == nil && scores == entity.Scores{X: 1}
	}, time.Second, 5*time.Millisecond)

	// When: the player goes home
	send(t, conn, actionHome, nil)
	messages = collectUntil(t, conn, actionHomeButton)

	// Then
	assert.JSONEq(t, `{"screen":"setup"}`, string(find(messages, actionScreen)[0].Payload))
}

func TestServer_VsComputer(t *testing.T) {
	srv := newTestServer(t)
	conn, _ := srv.dial(t, nil)
	collectUntil(t, conn, actionHomeButton)

	send(t, conn, actionSetup, nil)
	collectUntil(t, conn, actionStatus)

	// Given: a game against the computer
	send(t, conn, actionRestart, restartPayload{VsComputer: true})
	messages := collectUntil(t, conn, actionStatus)
	assert.JSONEq(t, `{"x":"Player 1","o":"Computer"}`, string(find(messages, actionPlayers)[0].Payload))

	// When: X takes the centre
	send(t, conn, actionTurn, map[string]int{"cell": 4})

	// Then: the computer answers on its own on the first free cell
	var marks []Message
	for len(marks) < 2 {
		marks = append(marks, find(collectUntil(t, conn, actionBoardMark), actionBoardMark)...)
	}

	assert.JSONEq(t, `{"cell":4,"mark":"X"}`, string(marks[0].Payload))
	assert.JSONEq(t, `{"cell":0,"mark":"O"}`, string(marks[1].Payload))
}

func TestServer_RejectsBadMessages(t *testing.T) {
	srv := newTestServer(t)
	conn, _ := srv.dial(t, nil)
	collectUntil(t, conn, actionHomeButton)

	testCases := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{name: "Not JSON", raw: `{"action":`, wantErr: "invalid message"},
		{name: "Unknown action", raw: `{"action":"game:fly"}`, wantErr: `unknown action "game:fly"`},
		{name: "Turn without cell", raw: `{"action":"game:turn","payload":{}}`, wantErr: ErrCellRequired.Error()},
		{name: "Undecodable payload", raw: `{"action":"game:restart","payload":{"vs_computer":"yes"}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// When
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(tc.raw)))

			// Then: an error message comes back and the connection stays usable
			var payload errorPayload
			require.NoError(t, json.Unmarshal(last(collectUntil(t, conn, actionError)).Payload, &payload))

			if tc.wantErr != "" {
				assert.Equal(t, tc.wantErr, payload.Message)
			} else {
				assert.Contains(t, payload.Message, "failed to decode game:restart payload")
			}
		})
	}
}

func TestServer_IgnoresInvalidMoves(t *testing.T) {
	srv := newTestServer(t)
	conn, _ := srv.dial(t, nil)
	collectUntil(t, conn, actionHomeButton)

	send(t, conn, actionSetup, nil)
	collectUntil(t, conn, actionStatus)

	send(t, conn, actionTurn, map[string]int{"cell": 4})
	collectUntil(t, conn, actionStatus)

	// When: O picks the occupied centre and then an off-board cell
	send(t, conn, actionTurn, map[string]int{"cell": 4})
	send(t, conn, actionTurn, map[string]int{"cell": 9})
	send(t, conn, actionTurn, map[string]int{"cell": 8})

	// Then: only the valid move produces output
	messages := collectUntil(t, conn, actionStatus)
	assert.Len(t, messages, 2)
	assert.JSONEq(t, `{"cell":8,"mark":"O"}`, string(messages[0].Payload))
}

func TestServer_ResetScores(t *testing.T) {
	srv := newTestServer(t)

	sessionID := uuid.NewString()
	require.NoError(t, srv.scoresFor(sessionID).Save(context.Background(), entity.Scores{X: 5, O: 4}))

	header := http.Header{}
	header.Add("Cookie", (&http.Cookie{Name: session.CookieName, Value: sessionID}).String())

	conn, _ := srv.dial(t, header)
	collectUntil(t, conn, actionHomeButton)

	// When
	send(t, conn, actionResetScores, struct{}{})
	messages := collectUntil(t, conn, actionStatus)

	// Then
	assert.JSONEq(t, `{"x":0,"o":0}`, string(find(messages, actionScores)[0].Payload))
	assert.JSONEq(t, `{"text":"Scores reset! Start a new game."}`, string(last(messages).Payload))

	scores, err := srv.scoresFor(sessionID).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.Scores{}, scores)
}

func TestServer_TurnAfterHomeIsIgnored(t *testing.T) {
	srv := newTestServer(t)
	conn, resp := srv.dial(t, nil)
	sessionID := sessionCookie(t, resp)
	collectUntil(t, conn, actionHomeButton)

	// Given: X is one move from winning when the player goes home
	send(t, conn, actionSetup, nil)
	collectUntil(t, conn, actionStatus)

	for _, cell := range []int{0, 3, 1, 4} {
		send(t, conn, actionTurn, map[string]int{"cell": cell})
		collectUntil(t, conn, actionStatus)
	}

	send(t, conn, actionHome, nil)
	collectUntil(t, conn, actionHomeButton)

	// When: the winning cell arrives from the setup screen
	send(t, conn, actionTurn, map[string]int{"cell": 2})
	send(t, conn, "game:fly", nil)

	// Then: the next message is the error for the unknown action and nothing was scored
	messages := collectUntil(t, conn, actionError)
	assert.Len(t, messages, 1)

	_, err := srv.scoresFor(sessionID).Load(context.Background())
	require.ErrorIs(t, err, apperror.ErrScoresNotFound)
}
