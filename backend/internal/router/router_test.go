package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kudosboards/kudos/backend/internal/setup"
	"github.com/kudosboards/kudos/shared/api"
	"github.com/kudosboards/kudos/shared/config"
	"github.com/kudosboards/kudos/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Public: config.Public{
			HTTP:               config.HTTP{Port: 8080, ReadTimeout: time.Second, WriteTimeout: time.Second},
			Storage:            config.Storage{Driver: config.DriverBadger},
			JwtTTL:             time.Hour,
			CorsOrigins:        []string{"http://localhost:3000"},
			BoardNameMaxLen:    100,
			MessageTextMaxLen:  2000,
			WriteRatePerSecond: 0,
		},
		Private: config.Private{JwtKey: "test-key"},
	}
}

type testServer struct {
	t       *testing.T
	handler http.Handler
	deps    *setup.Dependencies
}

func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()
	ctx := context.Background()
	deps, err := setup.SetupDependencies(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { deps.Close(ctx) })
	return &testServer{t: t, handler: New(deps), deps: deps}
}

func (s *testServer) user(id string) string {
	s.t.Helper()
	user := domain.User{Id: id, Username: id}
	require.NoError(s.t, s.deps.Store.SaveUser(context.Background(), user))
	token, err := s.deps.Jwt.NewToken(user)
	require.NoError(s.t, err)
	return token
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "192.0.2.1:1234"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func TestKudosFlow(t *testing.T) {
	s := newTestServer(t, testConfig())
	alice := s.user("alice")
	bob := s.user("bob")

	rr := s.do(http.MethodPost, "/v1/boards", alice, api.CreateBoardRequest{Name: "Team", AccessLevel: "private"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created api.IdResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	boardPath := "/v1/boards/" + created.Id
	assert.Equal(t, boardPath, rr.Header().Get("Location"))

	// private board is hidden from anonymous callers and non-members
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, boardPath, "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, boardPath, bob, nil).Code)

	require.Equal(t, http.StatusOK, s.do(http.MethodPut, boardPath+"/members/bob", alice, nil).Code)
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, boardPath, bob, nil).Code)

	rr = s.do(http.MethodPost, boardPath+"/messages", bob, api.MessageRequest{Text: "thanks for the **review**"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var msg api.IdResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &msg))
	msgPath := boardPath + "/messages/" + msg.Id

	// only the owner edits
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPut, msgPath, alice, api.MessageRequest{Text: "hijack"}).Code)
	require.Equal(t, http.StatusOK, s.do(http.MethodPut, msgPath, bob, api.MessageRequest{Text: "thanks for the *review*"}).Code)

	rr = s.do(http.MethodGet, boardPath, alice, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var board api.BoardResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &board))
	require.Len(t, board.Messages, 1)
	assert.Equal(t, "thanks for the *review*", board.Messages[0].Text)
	assert.Contains(t, board.Messages[0].Html, "<em>review</em>")

	require.Equal(t, http.StatusOK, s.do(http.MethodDelete, msgPath, bob, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, msgPath, bob, nil).Code)
}

func TestListing(t *testing.T) {
	s := newTestServer(t, testConfig())
	alice := s.user("alice")

	for _, level := range []string{"PUBLIC", "LINK", "PRIVATE"} {
		rr := s.do(http.MethodPost, "/v1/boards", alice, api.CreateBoardRequest{Name: level, AccessLevel: level})
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	var anon api.BoardListResponse
	rr := s.do(http.MethodGet, "/v1/boards", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &anon))
	require.Len(t, anon.Boards, 1)
	assert.Equal(t, domain.AccessPublic, anon.Boards[0].AccessLevel)

	var mine api.BoardListResponse
	rr = s.do(http.MethodGet, "/v1/boards", alice, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &mine))
	assert.Len(t, mine.Boards, 3)
}

func TestInvalidTokenIsAnonymous(t *testing.T) {
	s := newTestServer(t, testConfig())

	rr := s.do(http.MethodPost, "/v1/boards", "not-a-token", api.CreateBoardRequest{Name: "Team", AccessLevel: "PUBLIC"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = s.do(http.MethodGet, "/v1/boards", "not-a-token", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestWriteRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Public.WriteRatePerSecond = 0.001
	cfg.Public.WriteBurst = 1
	s := newTestServer(t, cfg)
	alice := s.user("alice")

	body := api.CreateBoardRequest{Name: "Team", AccessLevel: "PUBLIC"}
	assert.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/v1/boards", alice, body).Code)
	assert.Equal(t, http.StatusTooManyRequests, s.do(http.MethodPost, "/v1/boards", alice, body).Code)
	// reads are not limited
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/v1/boards", alice, nil).Code)
}

func TestProbesAndMetrics(t *testing.T) {
	s := newTestServer(t, testConfig())

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/ready", "", nil).Code)

	rr := s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "kudos_http_requests_total")
}

func TestSecurityHeadersAndCORS(t *testing.T) {
	s := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodOptions, "/v1/boards", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))

	rr = s.do(http.MethodGet, "/v1/boards", "", nil)
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
}
