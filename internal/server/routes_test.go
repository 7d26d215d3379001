package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cardwall/backend/internal/auth"
	"github.com/cardwall/backend/internal/problem"
	"github.com/cardwall/backend/internal/ratelimit"
	"github.com/cardwall/backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- fakes ---

type fakeDB struct {
	status string
}

func (f fakeDB) Health() map[string]string { return map[string]string{"status": f.status} }
func (f fakeDB) Close() error              { return nil }
func (f fakeDB) GetDB() *gorm.DB           { return nil }

type stubCardService struct {
	resp    *service.CardResponse
	list    []service.CardResponse
	err     error
	movedID uint
}

func (s *stubCardService) CreateCard(_ context.Context, _ uint, _ service.CreateCardRequest) (*service.CardResponse, error) {
	return s.resp, s.err
}

func (s *stubCardService) GetCardByID(_ context.Context, _ uint) (*service.CardResponse, error) {
	return s.resp, s.err
}

func (s *stubCardService) GetAllCards(_ context.Context) ([]service.CardResponse, error) {
	return s.list, s.err
}

func (s *stubCardService) MoveCard(_ context.Context, id uint, _ service.MoveCardRequest) (*service.CardResponse, error) {
	s.movedID = id
	return s.resp, s.err
}

func (s *stubCardService) DeleteCard(_ context.Context, _ uint) error { return s.err }

type stubAuthService struct {
	user  *service.UserResponse
	token *service.TokenResponse
	err   error
}

func (s *stubAuthService) Register(_ context.Context, _ service.RegisterRequest) (*service.UserResponse, error) {
	return s.user, s.err
}

func (s *stubAuthService) Login(_ context.Context, _ service.LoginRequest) (*service.TokenResponse, error) {
	return s.token, s.err
}

type stubItemService struct {
	resp *service.ItemResponse
	err  error
}

func (s *stubItemService) CreateItem(_ context.Context, _ service.CreateItemRequest) (*service.ItemResponse, error) {
	return s.resp, s.err
}

func (s *stubItemService) GetItemByID(_ context.Context, _ uint) (*service.ItemResponse, error) {
	return s.resp, s.err
}

// --- helpers ---

type testServer struct {
	*Server
	handler http.Handler
	tokens  *auth.TokenManager
}

func newTestServer(cards service.CardService, authSvc service.AuthService, items service.ItemService, cardLimit int) *testServer {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	s := &Server{
		cardService: cards,
		authService: authSvc,
		itemService: items,
		tokens:      tokens,
		db:          fakeDB{status: "up"},
		cardLimiter: ratelimit.New(cardLimit, time.Minute),
		authLimiter: ratelimit.New(100, time.Minute),
	}
	return &testServer{Server: s, handler: s.RegisterRoutes(), tokens: tokens}
}

func (ts *testServer) request(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) validToken(t *testing.T) string {
	t.Helper()
	token, _, err := ts.tokens.Issue(1, "alex@example.com")
	require.NoError(t, err)
	return token
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) problem.Details {
	t.Helper()
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
	var p problem.Details
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Len(t, p.CorrelationID, 36, "correlation_id should be a UUID")
	return p
}

// --- tests ---

func TestHealth(t *testing.T) {
	ts := newTestServer(&stubCardService{}, &stubAuthService{}, &stubItemService{}, 100)

	rec := ts.request(t, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"up"`)
}

func TestHealth_DatabaseDown(t *testing.T) {
	ts := newTestServer(&stubCardService{}, &stubAuthService{}, &stubItemService{}, 100)
	ts.Server.db = fakeDB{status: "down"}
	ts.handler = ts.Server.RegisterRoutes()

	rec := ts.request(t, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCreateCard_RequiresAuth(t *testing.T) {
	ts := newTestServer(&stubCardService{}, &stubAuthService{}, &stubItemService{}, 100)

	rec := ts.request(t, http.MethodPost, "/cards", `{"title":"My first idea","column":"todo"}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, "Unauthorized", p.Title)
}

func TestCreateCard_RejectsBadToken(t *testing.T) {
	ts := newTestServer(&stubCardService{}, &stubAuthService{}, &stubItemService{}, 100)

	rec := ts.request(t, http.MethodPost, "/cards", `{"title":"My first idea","column":"todo"}`, "not.a.token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateCard_Success(t *testing.T) {
	cards := &stubCardService{resp: &service.CardResponse{ID: 1, Title: "My first idea", Column: "todo"}}
	ts := newTestServer(cards, &stubAuthService{}, &stubItemService{}, 100)

	rec := ts.request(t, http.MethodPost, "/cards", `{"title":"My first idea","column":"todo"}`, ts.validToken(t))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"My first idea"`)
}

func TestCreateCard_ValidationProblem(t *testing.T) {
	cards := &stubCardService{err: &service.ValidationError{Field: "title", Message: "must be between 3 and 255 characters"}}
	ts := newTestServer(cards, &stubAuthService{}, &stubItemService{}, 100)

	rec := ts.request(t, http.MethodPost, "/cards", `{"title":"ab","column":"todo"}`, ts.validToken(t))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, "Validation Error", p.Title)
	assert.Equal(t, http.StatusUnprocessableEntity, p.Status)
}

func TestCreateCard_RateLimited(t *testing.T) {
	cards := &stubCardService{resp: &service.CardResponse{ID: 1, Title: "Card", Column: "todo"}}
	ts := newTestServer(cards, &stubAuthService{}, &stubItemService{}, 2)
	token := ts.validToken(t)

	for i := 0; i < 2; i++ {
		rec := ts.request(t, http.MethodPost, "/cards", `{"title":"Card","column":"todo"}`, token)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := ts.request(t, http.MethodPost, "/cards", `{"title":"Card","column":"todo"}`, token)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, "Rate Limit Exceeded", p.Title)
}

func TestCreateCard_MalformedJSON(t *testing.T) {
	ts := newTestServer(&stubCardService{}, &stubAuthService{}, &stubItemService{}, 100)

	rec := ts.request(t, http.MethodPost, "/cards", `{"title":`, ts.validToken(t))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	decodeProblem(t, rec)
}

func TestCreateCard_UnknownField(t *testing.T) {
	ts := newTestServer(&stubCardService{}, &stubAuthService{}, &stubItemService{}, 100)

	rec := ts.request(t, http.MethodPost, "/cards", `{"title":"ok title","column":"todo","owner":"x"}`, ts.validToken(t))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	p := decodeProblem(t, rec)
	assert.Contains(t, p.Detail, "unknown field")
}

func TestGetCard_NotFound(t *testing.T) {
	cards := &stubCardService{err: service.ErrCardNotFound}
	ts := newTestServer(cards, &stubAuthService{}, &stubItemService{}, 100)

	rec := ts.request(t, http.MethodGet, "/cards/42", "", ts.validToken(t))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, "Not Found", p.Title)
}

func TestMoveCard(t *testing.T) {
	cards := &stubCardService{resp: &service.CardResponse{ID: 5, Title: "Card", Column: "done", Position: 0}}
	ts := newTestServer(cards, &stubAuthService{}, &stubItemService{}, 100)

	rec := ts.request(t, http.MethodPatch, "/cards/5/move", `{"column_id":"done","position":0}`, ts.validToken(t))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(5), cards.movedID)
	assert.Contains(t, rec.Body.String(), `"column":"done"`)
}

func TestMoveCard_BadID(t *testing.T) {
	ts := newTestServer(&stubCardService{}, &stubAuthService{}, &stubItemService{}, 100)

	rec := ts.request(t, http.MethodPatch, "/cards/abc/move", `{"column_id":"done","position":0}`, ts.validToken(t))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteCard(t *testing.T) {
	ts := newTestServer(&stubCardService{}, &stubAuthService{}, &stubItemService{}, 100)

	rec := ts.request(t, http.MethodDelete, "/cards/5", "", ts.validToken(t))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRegister(t *testing.T) {
	authSvc := &stubAuthService{user: &service.UserResponse{ID: 1, Email: "alex@example.com"}}
	ts := newTestServer(&stubCardService{}, authSvc, &stubItemService{}, 100)

	rec := ts.request(t, http.MethodPost, "/auth/register", `{"email":"alex@example.com","password":"correct horse battery"}`, "")

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegister_Conflict(t *testing.T) {
	authSvc := &stubAuthService{err: service.ErrEmailTaken}
	ts := newTestServer(&stubCardService{}, authSvc, &stubItemService{}, 100)

	rec := ts.request(t, http.MethodPost, "/auth/register", `{"email":"alex@example.com","password":"correct horse battery"}`, "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, "Conflict", p.Title)
}

func TestLogin(t *testing.T) {
	authSvc := &stubAuthService{token: &service.TokenResponse{AccessToken: "tok", TokenType: "Bearer", ExpiresIn: 3600}}
	ts := newTestServer(&stubCardService{}, authSvc, &stubItemService{}, 100)

	rec := ts.request(t, http.MethodPost, "/auth/login", `{"email":"alex@example.com","password":"correct horse battery"}`, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"tok"`)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	authSvc := &stubAuthService{err: service.ErrInvalidCredentials}
	ts := newTestServer(&stubCardService{}, authSvc, &stubItemService{}, 100)

	rec := ts.request(t, http.MethodPost, "/auth/login", `{"email":"alex@example.com","password":"wrong"}`, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateItem(t *testing.T) {
	items := &stubItemService{resp: &service.ItemResponse{ID: 1, Name: "widget"}}
	ts := newTestServer(&stubCardService{}, &stubAuthService{}, items, 100)

	rec := ts.request(t, http.MethodPost, "/items", `{"name":"widget"}`, "")

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestGetItem_NotFound(t *testing.T) {
	items := &stubItemService{err: service.ErrItemNotFound}
	ts := newTestServer(&stubCardService{}, &stubAuthService{}, items, 100)

	rec := ts.request(t, http.MethodGet, "/items/42", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestItems_EmptyBody(t *testing.T) {
	ts := newTestServer(&stubCardService{}, &stubAuthService{}, &stubItemService{}, 100)

	rec := ts.request(t, http.MethodPost, "/items", "", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	p := decodeProblem(t, rec)
	assert.Contains(t, p.Detail, "must not be empty")
}
