package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"docvault/internal/config"
	"docvault/internal/handler"
	"docvault/internal/middleware"
	"docvault/internal/model"
	"docvault/internal/router"
	"docvault/internal/service"
)

// In-memory stores standing in for the pgx repositories. They enforce the
// same uniqueness rules the database constraints do.

type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: map[int64]model.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, username string, passwordHash string, hasAccess bool, isAdmin bool) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return model.User{}, model.ErrUserAlreadyExists
		}
	}

	u := model.User{
		ID:           s.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		HasAccess:    hasAccess,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[u.ID] = u
	s.nextID++
	return u, nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id int64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) FindByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (s *fakeUserStore) SetAccess(_ context.Context, id int64, hasAccess bool) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	u.HasAccess = hasAccess
	s.users[id] = u
	return u, nil
}

func (s *fakeUserStore) UpsertAdmin(_ context.Context, username string, passwordHash string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, u := range s.users {
		if u.Username == username {
			u.PasswordHash = passwordHash
			u.HasAccess = true
			u.IsAdmin = true
			s.users[id] = u
			return u, nil
		}
	}

	u := model.User{
		ID:           s.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		HasAccess:    true,
		IsAdmin:      true,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[u.ID] = u
	s.nextID++
	return u, nil
}

func (s *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

type fakeDocumentStore struct {
	mu     sync.Mutex
	nextID int64
	docs   map[int64]model.Document
	users  *fakeUserStore
}

func newFakeDocumentStore(users *fakeUserStore) *fakeDocumentStore {
	return &fakeDocumentStore{nextID: 1, docs: map[int64]model.Document{}, users: users}
}

func (s *fakeDocumentStore) Insert(_ context.Context, d model.Document) (model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.docs {
		if existing.PublicID == d.PublicID {
			return model.Document{}, model.ErrPublicIDTaken
		}
	}

	d.ID = s.nextID
	d.CreatedAt = time.Now().UTC()
	s.docs[d.ID] = d
	s.nextID++
	return d, nil
}

func (s *fakeDocumentStore) FindByID(_ context.Context, id int64) (model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.docs[id]
	if !ok {
		return model.Document{}, model.ErrDocumentNotFound
	}
	return d, nil
}

func (s *fakeDocumentStore) FindByPublicID(_ context.Context, publicID string) (model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.docs {
		if d.PublicID == publicID {
			return d, nil
		}
	}
	return model.Document{}, model.ErrDocumentNotFound
}

func (s *fakeDocumentStore) ListByOwner(_ context.Context, ownerID int64) ([]model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := make([]model.Document, 0)
	for _, d := range s.docs {
		if d.OwnerID == ownerID {
			docs = append(docs, d)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID > docs[j].ID })
	return docs, nil
}

func (s *fakeDocumentStore) ListAll(_ context.Context) ([]model.DocumentSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summaries := make([]model.DocumentSummary, 0, len(s.docs))
	for _, d := range s.docs {
		username := ""
		if owner, err := s.users.FindByID(context.Background(), d.OwnerID); err == nil {
			username = owner.Username
		}
		summaries = append(summaries, model.DocumentSummary{
			ID:         d.ID,
			PublicID:   d.PublicID,
			Username:   username,
			Name:       d.Name,
			Surname:    d.Surname,
			NationalID: d.NationalID,
			CreatedAt:  d.CreatedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID > summaries[j].ID })
	return summaries, nil
}

// newTestServer wires the real services, middleware and router over the
// in-memory stores and seeds the admin account.
func newTestServer(t *testing.T) (*httptest.Server, *fakeUserStore) {
	t.Helper()

	users := newFakeUserStore()
	documents := newFakeDocumentStore(users)

	tokens, err := service.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)
	authService := service.NewAuthService(users, tokens)
	documentService := service.NewDocumentService(documents)

	require.NoError(t, authService.EnsureSeedAdmin(context.Background(), "root", "rootpw"))

	cfg := &config.Config{
		ServerPort:       "8080",
		RequestTimeout:   30 * time.Second,
		CORSOrigins:      []string{"*"},
		RateLimitRPM:     10000,
		AuthRateLimitRPM: 10000,
		WebRoot:          t.TempDir(),
	}

	srv := httptest.NewServer(router.New(cfg, middleware.NewAuthMiddleware(tokens), router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Document: handler.NewDocumentHandler(documentService),
		Admin:    handler.NewAdminHandler(authService, documentService),
		Static:   handler.NewStaticHandler(cfg.WebRoot),
		Health: func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		},
	}))
	t.Cleanup(srv.Close)

	return srv, users
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *model.APIError `json:"error"`
}

func doJSON(t *testing.T, method string, url string, token string, payload any) (int, envelope) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed
}

func login(t *testing.T, baseURL string, username string, password string) string {
	t.Helper()

	status, resp := doJSON(t, http.MethodPost, baseURL+"/api/auth/login", "", model.LoginRequest{
		Username: username,
		Password: password,
	})
	require.Equal(t, http.StatusOK, status)

	var result model.LoginResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	require.NotEmpty(t, result.Token)
	return result.Token
}

// registerWithAccess creates a user and has the seeded admin grant access.
func registerWithAccess(t *testing.T, baseURL string, username string, password string) int64 {
	t.Helper()

	status, resp := doJSON(t, http.MethodPost, baseURL+"/api/auth/create-user", "", model.CreateUserRequest{
		Username: username,
		Password: password,
	})
	require.Equal(t, http.StatusCreated, status)

	var account model.Account
	require.NoError(t, json.Unmarshal(resp.Data, &account))

	adminToken := login(t, baseURL, "root", "rootpw")
	status, _ = doJSON(t, http.MethodPut, baseURL+"/api/admin/users/"+formatID(account.ID)+"/access",
		adminToken, map[string]bool{"has_access": true})
	require.Equal(t, http.StatusOK, status)

	return account.ID
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
