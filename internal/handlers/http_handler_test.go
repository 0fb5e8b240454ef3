package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"connect4engine/internal/boardtest"
	"connect4engine/internal/bot"
	"connect4engine/internal/models"
	"connect4engine/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newTestRouter() (*gin.Engine, *services.AnalyticsService) {
	gin.SetMode(gin.TestMode)
	as := services.NewAnalyticsService()
	es := services.NewEngineServiceWithBot(bot.New(bot.Config{}), as)
	return NewRouter(es, as, nil), as
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestChooseMoveFromGrid(t *testing.T) {
	r, as := newTestRouter()

	w, env := do(t, r, http.MethodPost, "/api/move", models.MoveRequest{Board: models.NewBoard().Grid()})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, env.Success)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var resp models.MoveResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, 3, resp.Column)
	assert.Equal(t, 18, resp.Score)
	assert.Greater(t, resp.Nodes, uint64(0))

	assert.Equal(t, 1, as.GetStatistics().Decisions)
}

func TestChooseMoveFromEncodedBoard(t *testing.T) {
	r, _ := newTestRouter()
	board := boardtest.Board(
		"XX.....",
		"OOO...X",
	)

	w, env := do(t, r, http.MethodPost, "/api/move", models.MoveRequest{Encoded: board.Encode()})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.MoveResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, 3, resp.Column)
	assert.Equal(t, bot.WinScore, resp.Score)
}

func TestChooseMoveErrors(t *testing.T) {
	r, _ := newTestRouter()

	floating := models.NewBoard().Grid()
	floating[0][0] = 1

	won := boardtest.Board(
		"XXX....",
		"OOOO...",
	)

	cases := []struct {
		name   string
		body   interface{}
		status int
		code   string
	}{
		{"no body", nil, http.StatusBadRequest, "INVALID_REQUEST"},
		{"missing board", models.MoveRequest{}, http.StatusBadRequest, "INVALID_BOARD"},
		{"both forms", models.MoveRequest{Board: models.NewBoard().Grid(), Encoded: "0"}, http.StatusBadRequest, "INVALID_BOARD"},
		{"floating piece", models.MoveRequest{Board: floating}, http.StatusBadRequest, "INVALID_BOARD"},
		{"bad encoding", models.MoveRequest{Encoded: "1,2,3"}, http.StatusBadRequest, "INVALID_BOARD"},
		{"full board", models.MoveRequest{Board: boardtest.Drawn().Grid()}, http.StatusUnprocessableEntity, "NO_LEGAL_MOVES"},
		{"game over", models.MoveRequest{Board: won.Grid()}, http.StatusUnprocessableEntity, "GAME_OVER"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := do(t, r, http.MethodPost, "/api/move", tc.body)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
			assert.False(t, env.Success)
			assert.Equal(t, tc.code, env.Error.Code)
		})
	}
}

func TestHealthAndAnalytics(t *testing.T) {
	r, _ := newTestRouter()

	w, _ := do(t, r, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","depth":5}`, w.Body.String())

	do(t, r, http.MethodPost, "/api/move", models.MoveRequest{Board: models.NewBoard().Grid()})

	w, env := do(t, r, http.MethodGet, "/api/analytics/columns", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cols struct {
		Columns []services.PopularColumn `json:"columns"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cols))
	require.Len(t, cols.Columns, 1)
	assert.Equal(t, 3, cols.Columns[0].Column)

	w, env = do(t, r, http.MethodGet, "/api/analytics/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats services.GameAnalytics
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 1, stats.Decisions)
}
